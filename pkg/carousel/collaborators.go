package carousel

import (
	"fmt"
	"strconv"
)

// Transform 写入容器的平移变换
type Transform struct {
	X, Y, Z float64
}

// String 返回 translate3d 形式的变换字符串
func (t Transform) String() string {
	return fmt.Sprintf("translate3d(%spx, %spx, %spx)", formatPx(t.X), formatPx(t.Y), formatPx(t.Z))
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Element 被平移的容器
type Element interface {
	// RenderedWidth 同步返回容器当前渲染宽度（两份内容的总宽）
	RenderedWidth() float64
	// ApplyTransform 写入容器的视觉变换
	ApplyTransform(t Transform)
}

// ResizeObserver 尺寸观察订阅
type ResizeObserver interface {
	Disconnect()
}

// ResizeObservable 可选能力：容器支持尺寸变化通知
// 未实现该接口的 Element 不做尺寸同步
type ResizeObservable interface {
	ObserveResize(callback func()) ResizeObserver
}

// EventType 输入事件类型（沿用 DOM 事件名）
type EventType string

const (
	EventTouchStart EventType = "touchstart"
	EventTouchMove  EventType = "touchmove"
	EventTouchEnd   EventType = "touchend"
	EventMouseDown  EventType = "mousedown"
	EventMouseMove  EventType = "mousemove"
	EventMouseUp    EventType = "mouseup"
	EventMouseLeave EventType = "mouseleave"
	EventWheel      EventType = "wheel"
)

// Event 输入事件的公共能力
type Event interface {
	PreventDefault()
	StopPropagation()
}

// Listener 事件处理函数
type Listener func(e Event)

// ListenerID 监听句柄，用于解除监听
type ListenerID uint64

// EventSource 事件源
type EventSource interface {
	AddEventListener(t EventType, l Listener) ListenerID
	RemoveEventListener(t EventType, id ListenerID)
}

// EventBase 实现 Event 的标志位，供具体事件嵌入
type EventBase struct {
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault 阻止平台默认行为（滚动、选中）
func (e *EventBase) PreventDefault() { e.defaultPrevented = true }

// StopPropagation 阻止事件继续分发
func (e *EventBase) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented 是否已阻止默认行为
func (e *EventBase) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped 是否已阻止分发
func (e *EventBase) PropagationStopped() bool { return e.propagationStopped }

// Touch 单个触点
type Touch struct {
	ID           int
	PageX, PageY float64
}

// TouchEvent 触摸事件
// Touches 为当前仍在屏幕上的触点，touchend 时可能为空
type TouchEvent struct {
	EventBase
	Touches []Touch
}

// PointerEvent 鼠标事件
type PointerEvent struct {
	EventBase
	PageX, PageY float64
}

// WheelEvent 滚轮事件，位移单位为像素
// DeltaY > 0 表示向下滚动
type WheelEvent struct {
	EventBase
	DeltaX, DeltaY float64
}
