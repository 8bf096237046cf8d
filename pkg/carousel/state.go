// Package carousel 实现无限循环的横向媒体条
//
// 容器中的内容被复制为两份，偏移量在 (-TotalWidth, 0] 内循环，
// 使得回绕边界在视觉上不可见。用户可以通过触摸、鼠标拖拽或滚轮
// 改变位置，空闲时自动播放持续向左推进。
//
// 所有方法都必须在同一个 goroutine 上调用（ebiten 的 Update）。
package carousel

import "math"

// State 轮播状态
// 由一个 Carousel 独占，只在调度 goroutine 上修改
type State struct {
	// Offset 当前水平平移量
	Offset float64

	// TotalWidth 一份内容的宽度（容器总宽的一半），即回绕周期
	// 容器尚未布局时可能为 0
	TotalWidth float64

	IsPlaying       bool
	DragInProgress  bool
	TouchInProgress bool

	// OffsetPerTick 每个自动播放 tick 减去的位移
	OffsetPerTick float64
}

// InProgress 是否有交互正在进行
func (s *State) InProgress() bool {
	return s.DragInProgress || s.TouchInProgress
}

// SetPosition 按回绕规则写入新的偏移量
//
// 规则：
//   - next >= 0: 越过右边界，向左回绕一个周期 Offset = next - TotalWidth
//   - |next| >= TotalWidth: 越过左边界，Offset = -(TotalWidth + next)
//   - 其他: Offset = next
//
// 回绕不截断越界量，接缝处不会停顿。非有限值被忽略。
//
// 返回：
//   - 写入后的偏移量
func (s *State) SetPosition(next float64) float64 {
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return s.Offset
	}

	switch {
	case next >= 0:
		s.Offset = next - s.TotalWidth
	case math.Abs(next) >= s.TotalWidth:
		s.Offset = -(s.TotalWidth + next)
	default:
		s.Offset = next
	}
	return s.Offset
}
