// Package platform 把 ebiten 的输入与绘制适配为轮播所需的协作者
//
//   - EventSource: 每帧轮询触摸/鼠标/滚轮，转换为 DOM 风格的事件
//   - StripElement: 媒体条容器，提供渲染宽度、接收平移变换、绘制双份内容
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputReader 每帧的原始输入
// 生产环境使用 EbitenInput，测试中使用假实现
type InputReader interface {
	TouchIDs() []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	CursorPosition() (int, int)
	LeftButtonPressed() bool
	Wheel() (float64, float64)
}

// EbitenInput 直接读取 ebiten 的输入状态
// 只能在 ebiten 的 Update 中调用
type EbitenInput struct {
	touchIDs []ebiten.TouchID
}

// NewEbitenInput 创建 ebiten 输入读取器
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// TouchIDs 当前所有活动触点
func (in *EbitenInput) TouchIDs() []ebiten.TouchID {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	return in.touchIDs
}

// TouchPosition 触点位置
func (in *EbitenInput) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

// CursorPosition 鼠标位置
func (in *EbitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// LeftButtonPressed 鼠标左键是否按下
func (in *EbitenInput) LeftButtonPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Wheel 本帧滚轮偏移
func (in *EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}
