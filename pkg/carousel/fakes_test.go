package carousel

import (
	"testing"
	"time"

	"github.com/decker502/carousel/pkg/config"
	"github.com/decker502/carousel/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeElement 记录写入的变换
type fakeElement struct {
	width      float64
	transforms []Transform
}

func (e *fakeElement) RenderedWidth() float64     { return e.width }
func (e *fakeElement) ApplyTransform(t Transform) { e.transforms = append(e.transforms, t) }

func (e *fakeElement) lastTransform() (Transform, bool) {
	if len(e.transforms) == 0 {
		return Transform{}, false
	}
	return e.transforms[len(e.transforms)-1], true
}

// observableElement 支持尺寸观察的容器
type observableElement struct {
	fakeElement
	callbacks    []func()
	disconnected int
}

type fakeObserver struct{ el *observableElement }

func (o fakeObserver) Disconnect() {
	o.el.disconnected++
	o.el.callbacks = nil
}

func (e *observableElement) ObserveResize(cb func()) ResizeObserver {
	e.callbacks = append(e.callbacks, cb)
	return fakeObserver{el: e}
}

func (e *observableElement) resize(width float64) {
	e.width = width
	for _, cb := range e.callbacks {
		cb()
	}
}

// fakeEventSource 按注册顺序同步分发事件
type fakeEventSource struct {
	nextID    ListenerID
	listeners map[EventType]map[ListenerID]Listener
	removed   int
}

func newFakeEventSource() *fakeEventSource {
	return &fakeEventSource{listeners: make(map[EventType]map[ListenerID]Listener)}
}

func (s *fakeEventSource) AddEventListener(t EventType, l Listener) ListenerID {
	s.nextID++
	if s.listeners[t] == nil {
		s.listeners[t] = make(map[ListenerID]Listener)
	}
	s.listeners[t][s.nextID] = l
	return s.nextID
}

func (s *fakeEventSource) RemoveEventListener(t EventType, id ListenerID) {
	if _, ok := s.listeners[t][id]; ok {
		s.removed++
	}
	delete(s.listeners[t], id)
}

func (s *fakeEventSource) count() int {
	n := 0
	for _, m := range s.listeners {
		n += len(m)
	}
	return n
}

func (s *fakeEventSource) dispatch(t EventType, e Event) {
	for _, l := range s.listeners[t] {
		l(e)
	}
}

func (s *fakeEventSource) touch(t EventType, x, y float64) *TouchEvent {
	e := &TouchEvent{}
	if t != EventTouchEnd {
		e.Touches = []Touch{{ID: 1, PageX: x, PageY: y}}
	}
	s.dispatch(t, e)
	return e
}

func (s *fakeEventSource) mouse(t EventType, x float64) *PointerEvent {
	e := &PointerEvent{PageX: x}
	s.dispatch(t, e)
	return e
}

func (s *fakeEventSource) wheelEvent(dx, dy float64) *WheelEvent {
	e := &WheelEvent{DeltaX: dx, DeltaY: dy}
	s.dispatch(EventWheel, e)
	return e
}

// harness 组合一个轮播和它的协作者
type harness struct {
	t      *testing.T
	loop   *scheduler.Loop
	el     *observableElement
	events *fakeEventSource
	c      *Carousel
	now    time.Time
}

func newHarness(t *testing.T, mutate func(*config.CarouselConfig)) *harness {
	t.Helper()
	cfg := config.DefaultCarouselConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		t:      t,
		loop:   scheduler.NewLoop(epoch),
		el:     &observableElement{fakeElement: fakeElement{width: 2000}},
		events: newFakeEventSource(),
		now:    epoch,
	}
	c, err := New(Options{
		Container:      h.el,
		TouchContainer: h.events,
		Scheduler:      h.loop,
		Config:         cfg,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	h.c = c
	return h
}

// step 推进时钟并执行一帧，模拟一次 ebiten Update
func (h *harness) step(d time.Duration) {
	h.now = h.now.Add(d)
	h.loop.Advance(h.now)
	h.loop.RunFrame()
}

// run 以 1ms 步长运行 d
func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += time.Millisecond {
		h.step(time.Millisecond)
	}
}
