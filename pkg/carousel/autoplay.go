package carousel

import (
	"log"
	"time"

	"github.com/decker502/carousel/pkg/scheduler"
)

// AutoplayState 自动播放状态
type AutoplayState int

const (
	// AutoplayStopped 初始状态，也是 Stop()/Destroy() 后的状态
	AutoplayStopped AutoplayState = iota
	// AutoplayPlaying 每个 tick 推进偏移量
	AutoplayPlaying
	// AutoplayPaused 因用户交互暂停，交互结束后恢复
	AutoplayPaused
)

// String 返回状态名称
func (s AutoplayState) String() string {
	switch s {
	case AutoplayStopped:
		return "stopped"
	case AutoplayPlaying:
		return "playing"
	case AutoplayPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// AutoplayController 自动播放状态机
//
//	Stopped → Playing ⇄ Paused
//
// 任意状态都可以通过 Stop() 回到 Stopped。
type AutoplayController struct {
	state  *State
	status AutoplayState

	resumeDelay time.Duration
	resume      *scheduler.Debouncer

	// onPlaying 进入 Playing 时调用（启动渲染循环）
	onPlaying func()
}

func newAutoplayController(state *State, timers scheduler.Timers, resumeDelay time.Duration, onPlaying func()) *AutoplayController {
	a := &AutoplayController{
		state:       state,
		resumeDelay: resumeDelay,
		onPlaying:   onPlaying,
	}
	a.resume = scheduler.NewDebouncer(timers, resumeDelay, a.resumeNow)
	return a
}

// Status 当前状态
func (a *AutoplayController) Status() AutoplayState {
	return a.status
}

// Playing 是否处于 Playing
func (a *AutoplayController) Playing() bool {
	return a.status == AutoplayPlaying
}

func (a *AutoplayController) setStatus(s AutoplayState) {
	if a.status != s {
		log.Printf("[Autoplay] %s -> %s", a.status, s)
	}
	a.status = s
	a.state.IsPlaying = s == AutoplayPlaying
}

// Play Stopped/Paused → Playing
func (a *AutoplayController) Play() {
	a.resume.Cancel()
	a.setStatus(AutoplayPlaying)
	if a.onPlaying != nil {
		a.onPlaying()
	}
}

// Stop 任意状态 → Stopped，可重复调用
func (a *AutoplayController) Stop() {
	a.resume.Cancel()
	a.setStatus(AutoplayStopped)
}

// Pause 交互开始时同步暂停
// Stopped 保持 Stopped；同时取消尚未执行的恢复
func (a *AutoplayController) Pause() {
	a.resume.Cancel()
	if a.status == AutoplayPlaying {
		a.setStatus(AutoplayPaused)
	}
}

// RequestResume 交互结束后请求恢复
//
// 参数：
//   - immediate: resumeDelay 为 0 时是否允许同步恢复（滚轮没有结束事件，总是走定时器）
func (a *AutoplayController) RequestResume(immediate bool) {
	if a.status != AutoplayPaused {
		return
	}
	if immediate && a.resumeDelay <= 0 {
		a.resume.Cancel()
		a.resumeNow()
		return
	}
	a.resume.Trigger()
}

// resumeNow 仅在仍处于 Paused 且没有进行中的交互时恢复
func (a *AutoplayController) resumeNow() {
	if a.status != AutoplayPaused || a.state.InProgress() {
		return
	}
	a.setStatus(AutoplayPlaying)
	if a.onPlaying != nil {
		a.onPlaying()
	}
}

// Advance 每个渲染 tick 调用，Playing 时向左推进 OffsetPerTick
func (a *AutoplayController) Advance() {
	if a.status != AutoplayPlaying {
		return
	}
	a.state.SetPosition(a.state.Offset - a.state.OffsetPerTick)
}

// cancel 取消未执行的恢复，销毁时调用
func (a *AutoplayController) cancel() {
	a.resume.Cancel()
}
