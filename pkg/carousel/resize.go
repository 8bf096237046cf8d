package carousel

import (
	"log"
	"time"

	"github.com/decker502/carousel/pkg/scheduler"
)

// ResizeReconciler 在容器尺寸变化后重新计算 TotalWidth
// 只写 TotalWidth，不影响偏移量、播放状态或交互标志
type ResizeReconciler struct {
	state     *State
	container Element

	debounce *scheduler.Debouncer
	observer ResizeObserver
}

func newResizeReconciler(state *State, container Element, timers scheduler.Timers, delay time.Duration) *ResizeReconciler {
	r := &ResizeReconciler{
		state:     state,
		container: container,
	}
	r.debounce = scheduler.NewDebouncer(timers, delay, r.Update)
	return r
}

// Connect 检测容器是否支持尺寸观察，支持则开始观察
//
// 返回：
//   - 是否已开始观察
func (r *ResizeReconciler) Connect() bool {
	if r.observer != nil {
		return true
	}
	observable, ok := r.container.(ResizeObservable)
	if !ok {
		log.Printf("[Resize] Container has no resize observation, width stays %.1f", r.state.TotalWidth)
		return false
	}
	r.observer = observable.ObserveResize(r.debounce.Trigger)
	return r.observer != nil
}

// Update 立即按容器当前渲染宽度重算 TotalWidth
func (r *ResizeReconciler) Update() {
	width := r.container.RenderedWidth() / 2
	if width != r.state.TotalWidth {
		log.Printf("[Resize] TotalWidth %.1f -> %.1f", r.state.TotalWidth, width)
	}
	r.state.TotalWidth = width
}

// Disconnect 停止观察并取消未执行的重算
func (r *ResizeReconciler) Disconnect() {
	r.debounce.Cancel()
	if r.observer != nil {
		r.observer.Disconnect()
		r.observer = nil
	}
}
