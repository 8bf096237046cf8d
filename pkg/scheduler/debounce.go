package scheduler

import "time"

// Debouncer 在最后一次 Trigger 之后静默 delay 才执行 fn
// 连续的 Trigger 合并为一次执行
type Debouncer struct {
	timers  Timers
	delay   time.Duration
	fn      func()
	pending TimerID
}

// NewDebouncer 创建防抖器
func NewDebouncer(timers Timers, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		timers: timers,
		delay:  delay,
		fn:     fn,
	}
}

// Trigger 重新开始静默计时
func (d *Debouncer) Trigger() {
	d.Cancel()
	d.pending = d.timers.SetTimeout(d.delay, d.fire)
}

// Cancel 取消未执行的调用
func (d *Debouncer) Cancel() {
	if d.pending != 0 {
		d.timers.ClearTimeout(d.pending)
		d.pending = 0
	}
}

// Flush 立即执行未执行的调用
//
// 返回：
//   - 是否有调用被执行
func (d *Debouncer) Flush() bool {
	if d.pending == 0 {
		return false
	}
	d.Cancel()
	d.fn()
	return true
}

// Pending 是否有未执行的调用
func (d *Debouncer) Pending() bool {
	return d.pending != 0
}

func (d *Debouncer) fire() {
	d.pending = 0
	d.fn()
}
