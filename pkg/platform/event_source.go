package platform

import (
	"image"

	"github.com/decker502/carousel/pkg/carousel"
	"github.com/hajimehoshi/ebiten/v2"
)

// WheelLinePixels 每格滚轮对应的像素位移
const WheelLinePixels = 40.0

type listenerEntry struct {
	id carousel.ListenerID
	fn carousel.Listener
}

// EventSource 轮询 ebiten 输入并分发 DOM 风格事件
//
// 事件只在容器区域内产生：
//   - 触点在区域内按下才被跟踪，离开区域后继续跟踪直到抬起
//   - 鼠标事件只在光标位于区域内时分发，离开时分发一次 mouseleave
//   - 滚轮只在光标位于区域内时分发
type EventSource struct {
	input  InputReader
	bounds image.Rectangle

	nextID    carousel.ListenerID
	listeners map[carousel.EventType][]listenerEntry

	// 按按下顺序跟踪的触点，第一个为主触点
	touchOrder []ebiten.TouchID
	touchPos   map[ebiten.TouchID]image.Point

	buttonPressed bool
	cursorInside  bool
	cursor        image.Point

	dispatched int
}

var _ carousel.EventSource = (*EventSource)(nil)

// NewEventSource 创建事件源
func NewEventSource(input InputReader) *EventSource {
	return &EventSource{
		input:     input,
		listeners: make(map[carousel.EventType][]listenerEntry),
		touchPos:  make(map[ebiten.TouchID]image.Point),
	}
}

// SetBounds 设置容器在屏幕上的区域
func (s *EventSource) SetBounds(r image.Rectangle) {
	s.bounds = r
}

// AddEventListener 注册监听，按注册顺序分发
func (s *EventSource) AddEventListener(t carousel.EventType, l carousel.Listener) carousel.ListenerID {
	s.nextID++
	s.listeners[t] = append(s.listeners[t], listenerEntry{id: s.nextID, fn: l})
	return s.nextID
}

// RemoveEventListener 解除监听；对未知句柄无副作用
func (s *EventSource) RemoveEventListener(t carousel.EventType, id carousel.ListenerID) {
	entries := s.listeners[t]
	for i, e := range entries {
		if e.id == id {
			s.listeners[t] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// ListenerCount 当前监听数量
func (s *EventSource) ListenerCount() int {
	n := 0
	for _, entries := range s.listeners {
		n += len(entries)
	}
	return n
}

// Dispatched 已分发的事件数量（不含无监听的事件）
func (s *EventSource) Dispatched() int {
	return s.dispatched
}

func (s *EventSource) dispatch(t carousel.EventType, e carousel.Event) {
	entries := s.listeners[t]
	if len(entries) == 0 {
		return
	}
	// 监听中可能解除监听，分发快照
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	s.dispatched++
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// Poll 读取本帧输入并分发事件，每个 Update 调用一次
func (s *EventSource) Poll() {
	s.pollTouches()
	s.pollMouse()
	s.pollWheel()
}

func (s *EventSource) touches() []carousel.Touch {
	list := make([]carousel.Touch, 0, len(s.touchOrder))
	for _, id := range s.touchOrder {
		p := s.touchPos[id]
		list = append(list, carousel.Touch{ID: int(id), PageX: float64(p.X), PageY: float64(p.Y)})
	}
	return list
}

func (s *EventSource) pollTouches() {
	current := make(map[ebiten.TouchID]image.Point)
	var pressedOrder []ebiten.TouchID
	for _, id := range s.input.TouchIDs() {
		x, y := s.input.TouchPosition(id)
		current[id] = image.Pt(x, y)
		pressedOrder = append(pressedOrder, id)
	}

	// 1. 抬起
	ended := false
	kept := s.touchOrder[:0]
	for _, id := range s.touchOrder {
		if _, ok := current[id]; ok {
			kept = append(kept, id)
			continue
		}
		delete(s.touchPos, id)
		ended = true
	}
	s.touchOrder = kept
	if ended {
		s.dispatch(carousel.EventTouchEnd, &carousel.TouchEvent{Touches: s.touches()})
	}

	// 2. 移动（已跟踪触点位置变化）
	moved := false
	for _, id := range s.touchOrder {
		if p := current[id]; p != s.touchPos[id] {
			s.touchPos[id] = p
			moved = true
		}
	}

	// 3. 按下（只跟踪在区域内按下的触点）
	for _, id := range pressedOrder {
		if _, tracked := s.touchPos[id]; tracked {
			continue
		}
		p := current[id]
		if !p.In(s.bounds) {
			continue
		}
		s.touchOrder = append(s.touchOrder, id)
		s.touchPos[id] = p
		s.dispatch(carousel.EventTouchStart, &carousel.TouchEvent{Touches: s.touches()})
	}

	if moved {
		s.dispatch(carousel.EventTouchMove, &carousel.TouchEvent{Touches: s.touches()})
	}
}

func (s *EventSource) pollMouse() {
	x, y := s.input.CursorPosition()
	p := image.Pt(x, y)
	inside := p.In(s.bounds)
	pressed := s.input.LeftButtonPressed()
	movedTo := p != s.cursor

	event := func() *carousel.PointerEvent {
		return &carousel.PointerEvent{PageX: float64(x), PageY: float64(y)}
	}

	if inside {
		if movedTo {
			s.dispatch(carousel.EventMouseMove, event())
		}
		if pressed && !s.buttonPressed {
			s.dispatch(carousel.EventMouseDown, event())
		}
		if !pressed && s.buttonPressed {
			s.dispatch(carousel.EventMouseUp, event())
		}
	} else if s.cursorInside {
		s.dispatch(carousel.EventMouseLeave, event())
	}

	s.cursor = p
	s.cursorInside = inside
	s.buttonPressed = pressed
}

func (s *EventSource) pollWheel() {
	xoff, yoff := s.input.Wheel()
	if xoff == 0 && yoff == 0 {
		return
	}
	if !s.cursorInside {
		return
	}
	// ebiten 向上滚动为正，DOM 向下滚动为正
	s.dispatch(carousel.EventWheel, &carousel.WheelEvent{
		DeltaX: -xoff * WheelLinePixels,
		DeltaY: -yoff * WheelLinePixels,
	})
}
