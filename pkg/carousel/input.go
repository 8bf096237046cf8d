package carousel

import (
	"math"

	"github.com/decker502/carousel/pkg/config"
)

// interactionSink 交互开始/结束的接收方，由 Carousel 实现
type interactionSink interface {
	interactionStarted()
	interactionEnded()
	wheelScrolled()
}

// InputTranslator 把触摸、拖拽、滚轮位移转换为 SetPosition 调用
type InputTranslator struct {
	state *State
	sink  interactionSink

	touchAxis           config.TouchAxis
	scrollVelocityRatio float64
	maxScrollMovement   float64

	// 上一次的触点/指针位置，位移按增量计算
	touchX, touchY float64
	dragX          float64
}

func newInputTranslator(state *State, sink interactionSink, cfg config.CarouselConfig) *InputTranslator {
	return &InputTranslator{
		state:               state,
		sink:                sink,
		touchAxis:           cfg.TouchAxis,
		scrollVelocityRatio: cfg.ScrollVelocityRatio,
		maxScrollMovement:   cfg.MaxScrollMovement,
	}
}

// suppress 阻止平台默认的滚动/选中行为
func suppress(e Event) {
	e.PreventDefault()
	e.StopPropagation()
}

// DominantAxisDelta 选择滚轮位移的主轴
//
// 取绝对值较大的轴（相等时取 X）。max > 0 且任一轴达到 max 时，
// 结果被限制为 ±max 并保留符号；max <= 0 表示不限制。
func DominantAxisDelta(deltaX, deltaY, max float64) float64 {
	v := deltaY
	if math.Abs(deltaX) >= math.Abs(deltaY) {
		v = deltaX
	}
	if max > 0 && (math.Abs(deltaX) >= max || math.Abs(deltaY) >= max) {
		return math.Copysign(max, v)
	}
	return v
}

// wheelStep 按滚轮规则计算下一位置：主轴位移乘以倍率后从偏移量中减去
func (t *InputTranslator) wheelStep(deltaX, deltaY float64) float64 {
	delta := DominantAxisDelta(deltaX, deltaY, t.maxScrollMovement) * t.scrollVelocityRatio
	return t.state.Offset - delta
}

// scroll 程序化滚动，不影响自动播放
func (t *InputTranslator) scroll(delta float64) float64 {
	return t.state.SetPosition(t.wheelStep(delta, 0))
}

func (t *InputTranslator) onTouchStart(e Event) {
	suppress(e)
	t.state.TouchInProgress = true
	t.sink.interactionStarted()

	if te, ok := e.(*TouchEvent); ok && len(te.Touches) > 0 {
		t.touchX, t.touchY = te.Touches[0].PageX, te.Touches[0].PageY
	}
}

func (t *InputTranslator) onTouchMove(e Event) {
	suppress(e)
	if !t.state.TouchInProgress {
		return
	}
	te, ok := e.(*TouchEvent)
	if !ok || len(te.Touches) == 0 {
		return
	}

	touch := te.Touches[0]
	delta := touch.PageX - t.touchX
	if t.touchAxis == config.TouchAxisBoth {
		delta += touch.PageY - t.touchY
	}
	t.touchX, t.touchY = touch.PageX, touch.PageY
	t.state.SetPosition(t.state.Offset + delta)
}

func (t *InputTranslator) onTouchEnd(e Event) {
	suppress(e)
	if !t.state.TouchInProgress {
		return
	}
	t.state.TouchInProgress = false
	t.sink.interactionEnded()
}

func (t *InputTranslator) onDragStart(e Event) {
	suppress(e)
	t.state.DragInProgress = true
	t.sink.interactionStarted()

	if pe, ok := e.(*PointerEvent); ok {
		t.dragX = pe.PageX
	}
}

func (t *InputTranslator) onDragMove(e Event) {
	suppress(e)
	if !t.state.DragInProgress {
		return
	}
	pe, ok := e.(*PointerEvent)
	if !ok {
		return
	}

	delta := pe.PageX - t.dragX
	t.dragX = pe.PageX
	t.state.SetPosition(t.state.Offset + delta)
}

func (t *InputTranslator) onDragEnd(e Event) {
	suppress(e)
	if !t.state.DragInProgress {
		return
	}
	t.state.DragInProgress = false
	t.sink.interactionEnded()
}

func (t *InputTranslator) onWheel(e Event) {
	suppress(e)
	we, ok := e.(*WheelEvent)
	if !ok {
		return
	}
	t.sink.interactionStarted()
	t.state.SetPosition(t.wheelStep(we.DeltaX, we.DeltaY))
	t.sink.wheelScrolled()
}
