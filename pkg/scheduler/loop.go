// Package scheduler 提供单线程协作式的定时器与帧回调调度
//
// 所有回调都在调用 Advance() / RunFrame() 的 goroutine 上同步执行，
// 通常就是 ebiten 的 Update()。因此使用者无需加锁。
//
// 语义参照浏览器的 setTimeout / requestAnimationFrame：
//   - SetTimeout 注册的回调在 Advance(now) 推进到截止时间后触发
//   - RequestFrame 注册的回调在下一次 RunFrame() 时触发
//   - 帧回调中再次 RequestFrame 注册的回调在下一帧执行
package scheduler

import (
	"time"
)

// TimerID 定时器句柄，0 为无效句柄
type TimerID uint64

// FrameID 帧回调句柄，0 为无效句柄
type FrameID uint64

// Timers 定时器能力
type Timers interface {
	SetTimeout(d time.Duration, fn func()) TimerID
	ClearTimeout(id TimerID)
}

// Frames 帧回调能力
type Frames interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Scheduler 定时器 + 帧回调
type Scheduler interface {
	Timers
	Frames
}

type timer struct {
	id       TimerID
	deadline time.Time
	fn       func()
}

// Loop 单线程调度器
type Loop struct {
	now    time.Time
	nextID uint64

	timers map[TimerID]*timer

	frames     map[FrameID]func()
	frameOrder []FrameID
}

var _ Scheduler = (*Loop)(nil)

// NewLoop 创建调度器
//
// 参数：
//   - start: 初始时钟
func NewLoop(start time.Time) *Loop {
	return &Loop{
		now:    start,
		nextID: 1, // 0 保留为无效句柄
		timers: make(map[TimerID]*timer),
		frames: make(map[FrameID]func()),
	}
}

func (l *Loop) allocID() uint64 {
	id := l.nextID
	l.nextID++
	return id
}

// Now 返回调度器当前时钟
func (l *Loop) Now() time.Time {
	return l.now
}

// SetTimeout 注册一个在 d 之后触发的回调
// d <= 0 时在下一次 Advance 触发
func (l *Loop) SetTimeout(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	id := TimerID(l.allocID())
	l.timers[id] = &timer{id: id, deadline: l.now.Add(d), fn: fn}
	return id
}

// ClearTimeout 取消定时器；对无效或已触发的句柄无副作用
func (l *Loop) ClearTimeout(id TimerID) {
	delete(l.timers, id)
}

// RequestFrame 注册下一帧回调
func (l *Loop) RequestFrame(fn func()) FrameID {
	id := FrameID(l.allocID())
	l.frames[id] = fn
	l.frameOrder = append(l.frameOrder, id)
	return id
}

// CancelFrame 取消帧回调；对无效或已执行的句柄无副作用
func (l *Loop) CancelFrame(id FrameID) {
	delete(l.frames, id)
}

// Advance 推进时钟并触发所有到期定时器
//
// 定时器按截止时间触发，相同截止时间按注册顺序。
// 回调中新注册的定时器不会在本次 Advance 中触发，即使已经到期。
// 时钟不会倒退。
//
// 返回：
//   - 本次触发的定时器数量
func (l *Loop) Advance(now time.Time) int {
	if now.After(l.now) {
		l.now = now
	}
	limit := TimerID(l.nextID)

	fired := 0
	for {
		next := l.nextDue(limit)
		if next == nil {
			return fired
		}
		delete(l.timers, next.id)
		fired++
		next.fn()
	}
}

// nextDue 返回最早到期且在 limit 之前注册的定时器
func (l *Loop) nextDue(limit TimerID) *timer {
	var best *timer
	for _, t := range l.timers {
		if t.id >= limit || t.deadline.After(l.now) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// RunFrame 执行当前排队的帧回调
//
// 返回：
//   - 本帧执行的回调数量
func (l *Loop) RunFrame() int {
	order := l.frameOrder
	l.frameOrder = nil

	ran := 0
	for _, id := range order {
		fn, ok := l.frames[id]
		if !ok {
			continue
		}
		delete(l.frames, id)
		ran++
		fn()
	}
	return ran
}

// PendingTimers 返回未触发的定时器数量
func (l *Loop) PendingTimers() int {
	return len(l.timers)
}

// PendingFrames 返回未执行的帧回调数量
func (l *Loop) PendingFrames() int {
	return len(l.frames)
}
