package carousel

import (
	"time"

	"github.com/decker502/carousel/pkg/scheduler"
)

// RenderLoop 可取消的自我重排调度链
//
//	timer(tickInterval) → frame → paint (+autoplay advance) → timer ...
//
// 链上任意时刻最多只有一个定时器句柄和一个帧句柄。
// 链在不再活跃（未播放且无交互）时自然停止，由 Kick() 重新启动。
type RenderLoop struct {
	sched    scheduler.Scheduler
	interval time.Duration

	container Element
	state     *State

	// active 是否需要继续调度
	active func() bool
	// advance 绘制后调用，仅在自动播放分支推进偏移量
	advance func()
	// playing 当前是否处于自动播放分支
	playing func() bool

	timer scheduler.TimerID
	frame scheduler.FrameID

	cancelled bool
	paints    int
}

// Kick 在链空闲且活跃时启动一轮调度
func (r *RenderLoop) Kick() {
	if r.cancelled || r.timer != 0 || r.frame != 0 {
		return
	}
	if !r.active() {
		return
	}
	r.timer = r.sched.SetTimeout(r.interval, r.onTimer)
}

// Invalidate 请求一次绘制
// 链空闲时直接排一帧；链在运行时下一帧本来就会绘制
func (r *RenderLoop) Invalidate() {
	if r.cancelled || r.timer != 0 || r.frame != 0 {
		return
	}
	r.frame = r.sched.RequestFrame(r.onFrame)
}

func (r *RenderLoop) onTimer() {
	r.timer = 0
	if r.cancelled {
		return
	}
	r.frame = r.sched.RequestFrame(r.onFrame)
}

func (r *RenderLoop) onFrame() {
	r.frame = 0
	if r.cancelled {
		return
	}

	r.container.ApplyTransform(Transform{X: r.state.Offset})
	r.paints++

	if r.playing() {
		r.advance()
	}
	r.Kick()
}

// Running 是否有未完成的句柄
func (r *RenderLoop) Running() bool {
	return r.timer != 0 || r.frame != 0
}

// Paints 已执行的绘制次数
func (r *RenderLoop) Paints() int {
	return r.paints
}

// Cancel 清除两个句柄并永久关闭调度链
func (r *RenderLoop) Cancel() {
	r.cancelled = true
	if r.timer != 0 {
		r.sched.ClearTimeout(r.timer)
		r.timer = 0
	}
	if r.frame != 0 {
		r.sched.CancelFrame(r.frame)
		r.frame = 0
	}
}
