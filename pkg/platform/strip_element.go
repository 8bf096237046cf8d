package platform

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/decker502/carousel/pkg/carousel"
	"github.com/decker502/carousel/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// stripCopies 容器中内容的份数，两份保证回绕处无缝
const stripCopies = 2

type tile struct {
	label string
	color color.RGBA
	width float64 // 基准高度下的宽度
}

// StripElement 媒体条容器
//
// 条目按视口高度等比缩放。视口变化导致渲染宽度变化时
// 通知所有尺寸观察者。
type StripElement struct {
	tiles       []tile
	gap         float64
	baseHeight  float64
	heightRatio float64

	viewportW, viewportH int
	scale                float64

	transform carousel.Transform

	nextObserver int
	observers    map[int]func()

	pixel *ebiten.Image
}

var (
	_ carousel.Element          = (*StripElement)(nil)
	_ carousel.ResizeObservable = (*StripElement)(nil)
)

// NewStripElement 根据配置创建媒体条
func NewStripElement(cfg config.StripConfig) (*StripElement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &StripElement{
		gap:         cfg.Gap,
		baseHeight:  cfg.BaseHeight,
		heightRatio: cfg.HeightRatio,
		scale:       1,
		observers:   make(map[int]func()),
	}
	for _, item := range cfg.Items {
		c, err := item.RGBA()
		if err != nil {
			return nil, fmt.Errorf("strip item %s: %w", item.Label, err)
		}
		e.tiles = append(e.tiles, tile{label: item.Label, color: c, width: item.Width})
	}
	return e, nil
}

// contentWidth 一份内容在基准高度下的宽度（每个条目后跟一个间距）
func (e *StripElement) contentWidth() float64 {
	w := 0.0
	for _, t := range e.tiles {
		w += t.width + e.gap
	}
	return w
}

// RenderedWidth 两份内容的渲染总宽
func (e *StripElement) RenderedWidth() float64 {
	return e.contentWidth() * e.scale * stripCopies
}

// Height 媒体条的渲染高度
func (e *StripElement) Height() float64 {
	return e.baseHeight * e.scale
}

// SetViewport 视口尺寸变化时由 Layout 调用
func (e *StripElement) SetViewport(w, h int) {
	if w == e.viewportW && h == e.viewportH {
		return
	}
	before := e.RenderedWidth()
	e.viewportW, e.viewportH = w, h
	e.scale = float64(h) * e.heightRatio / e.baseHeight
	if e.RenderedWidth() != before {
		log.Printf("[Strip] Viewport %dx%d, rendered width %.1f -> %.1f", w, h, before, e.RenderedWidth())
		e.notifyResize()
	}
}

// Bounds 媒体条在屏幕上的区域（横向铺满视口，纵向居中）
func (e *StripElement) Bounds() image.Rectangle {
	h := int(e.Height())
	top := (e.viewportH - h) / 2
	return image.Rect(0, top, e.viewportW, top+h)
}

// ApplyTransform 记录平移，下一次 Draw 生效
func (e *StripElement) ApplyTransform(t carousel.Transform) {
	e.transform = t
}

// Transform 最近一次写入的平移
func (e *StripElement) Transform() carousel.Transform {
	return e.transform
}

type stripObserver struct {
	el *StripElement
	id int
}

// Disconnect 停止观察
func (o stripObserver) Disconnect() {
	delete(o.el.observers, o.id)
}

// ObserveResize 注册尺寸变化回调
func (e *StripElement) ObserveResize(callback func()) carousel.ResizeObserver {
	e.nextObserver++
	e.observers[e.nextObserver] = callback
	return stripObserver{el: e, id: e.nextObserver}
}

func (e *StripElement) notifyResize() {
	for _, cb := range e.observers {
		cb()
	}
}

// Draw 按当前平移绘制两份内容
func (e *StripElement) Draw(screen *ebiten.Image) {
	if e.pixel == nil {
		e.pixel = ebiten.NewImage(1, 1)
		e.pixel.Fill(color.White)
	}

	bounds := e.Bounds()
	top := float64(bounds.Min.Y)
	height := e.Height()
	x := e.transform.X // Z 不参与二维绘制

	for copyIndex := 0; copyIndex < stripCopies; copyIndex++ {
		for _, t := range e.tiles {
			w := t.width * e.scale
			if x+w >= 0 && x < float64(e.viewportW) {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(w, height)
				op.GeoM.Translate(x, top+e.transform.Y)
				op.ColorScale.ScaleWithColor(t.color)
				screen.DrawImage(e.pixel, op)
				ebitenutil.DebugPrintAt(screen, t.label, int(x)+8, int(top+e.transform.Y)+8)
			}
			x += w + e.gap*e.scale
		}
	}
}
