package carousel

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/carousel/pkg/config"
	"github.com/decker502/carousel/pkg/scheduler"
)

// 构造时的协作者缺失错误
var (
	ErrNilContainer   = errors.New("carousel: container is nil")
	ErrNilEventSource = errors.New("carousel: touch container is nil")
	ErrNilScheduler   = errors.New("carousel: scheduler is nil")
)

// Options 构造参数
type Options struct {
	// Container 被平移、被测量的容器
	Container Element
	// TouchContainer 监听输入事件的元素
	TouchContainer EventSource
	// Scheduler 定时器与帧回调
	Scheduler scheduler.Scheduler
	// Config 行为配置，零值字段不会自动补默认值，请从 config.DefaultCarouselConfig() 开始修改
	Config config.CarouselConfig
}

// listenerGroup 一组成对注册/解除的监听
type listenerGroup struct {
	ids map[EventType]ListenerID
}

// Carousel 无限循环媒体条控制器
type Carousel struct {
	cfg            config.CarouselConfig
	container      Element
	touchContainer EventSource

	state      State
	translator *InputTranslator
	autoplay   *AutoplayController
	loop       *RenderLoop
	resize     *ResizeReconciler

	touch listenerGroup
	drag  listenerGroup
	wheel listenerGroup

	destroyed bool
}

// New 创建轮播控制器
//
// 初始 TotalWidth 取容器渲染宽度的一半，偏移量为 0，自动播放处于 Stopped。
// 如果容器支持尺寸观察，立即开始观察。
//
// 返回：
//   - error: 协作者缺失或配置非法
func New(opts Options) (*Carousel, error) {
	if opts.Container == nil {
		return nil, ErrNilContainer
	}
	if opts.TouchContainer == nil {
		return nil, ErrNilEventSource
	}
	if opts.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("carousel: %w", err)
	}

	c := &Carousel{
		cfg:            opts.Config,
		container:      opts.Container,
		touchContainer: opts.TouchContainer,
	}
	c.state = State{
		TotalWidth:    opts.Container.RenderedWidth() / 2,
		OffsetPerTick: opts.Config.OffsetPerTick,
	}

	c.translator = newInputTranslator(&c.state, c, opts.Config)
	c.loop = &RenderLoop{
		sched:     opts.Scheduler,
		interval:  opts.Config.TickInterval(),
		container: opts.Container,
		state:     &c.state,
	}
	c.autoplay = newAutoplayController(&c.state, opts.Scheduler, opts.Config.ResumeDelay(), c.loop.Kick)
	c.loop.active = c.active
	c.loop.playing = c.autoplay.Playing
	c.loop.advance = c.autoplay.Advance

	c.resize = newResizeReconciler(&c.state, opts.Container, opts.Scheduler, opts.Config.ResizeDebounce())
	c.resize.Connect()

	log.Printf("[Carousel] Created: totalWidth=%.1f, tick=%v, resumeDelay=%v",
		c.state.TotalWidth, c.loop.interval, opts.Config.ResumeDelay())
	return c, nil
}

// active 自动播放中或有交互进行中
func (c *Carousel) active() bool {
	return c.autoplay.Playing() || c.state.InProgress()
}

// interactionStarted 交互开始：同步暂停自动播放，保证交互期间继续绘制
func (c *Carousel) interactionStarted() {
	c.autoplay.Pause()
	c.loop.Kick()
}

// interactionEnded 拖拽/触摸结束
func (c *Carousel) interactionEnded() {
	c.autoplay.RequestResume(true)
}

// wheelScrolled 滚轮没有结束事件，经静默期后恢复
func (c *Carousel) wheelScrolled() {
	c.autoplay.RequestResume(false)
	// 已停止的轮播不会被 Kick 启动，仍需刷新一次位置
	c.loop.Invalidate()
}

// Play 开始自动播放
func (c *Carousel) Play() {
	if c.destroyed {
		return
	}
	c.autoplay.Play()
}

// Stop 停止自动播放，可重复调用
func (c *Carousel) Stop() {
	if c.destroyed {
		return
	}
	c.autoplay.Stop()
}

// Scroll 程序化滚动 delta 像素，按滚轮规则换算（倍率、上限、方向取反）
//
// 返回：
//   - 滚动后的偏移量
func (c *Carousel) Scroll(delta float64) float64 {
	if c.destroyed {
		return c.state.Offset
	}
	offset := c.translator.scroll(delta)
	c.loop.Invalidate()
	return offset
}

// Update 立即按容器当前尺寸重算 TotalWidth
func (c *Carousel) Update() {
	if c.destroyed {
		return
	}
	c.resize.Update()
}

// TrackInteractionSources 监听触摸、拖拽以及（若启用）滚轮事件
func (c *Carousel) TrackInteractionSources() {
	c.ListenTouchEvents()
	c.ListenDragEvents()
	if c.cfg.WheelEnabled {
		c.ListenWheelEvent()
	}
}

func (c *Carousel) listen(g *listenerGroup, handlers map[EventType]Listener) {
	if c.destroyed || g.ids != nil {
		return
	}
	g.ids = make(map[EventType]ListenerID, len(handlers))
	for t, h := range handlers {
		g.ids[t] = c.touchContainer.AddEventListener(t, h)
	}
}

func (c *Carousel) unlisten(g *listenerGroup) {
	for t, id := range g.ids {
		c.touchContainer.RemoveEventListener(t, id)
	}
	g.ids = nil
}

// ListenTouchEvents 监听 touchstart/touchmove/touchend
func (c *Carousel) ListenTouchEvents() {
	c.listen(&c.touch, map[EventType]Listener{
		EventTouchStart: c.translator.onTouchStart,
		EventTouchMove:  c.translator.onTouchMove,
		EventTouchEnd:   c.translator.onTouchEnd,
	})
}

// UnlistenTouchEvents 解除触摸监听
func (c *Carousel) UnlistenTouchEvents() { c.unlisten(&c.touch) }

// ListenDragEvents 监听 mousedown/mousemove/mouseup/mouseleave
func (c *Carousel) ListenDragEvents() {
	c.listen(&c.drag, map[EventType]Listener{
		EventMouseDown:  c.translator.onDragStart,
		EventMouseMove:  c.translator.onDragMove,
		EventMouseUp:    c.translator.onDragEnd,
		EventMouseLeave: c.translator.onDragEnd,
	})
}

// UnlistenDragEvents 解除拖拽监听
func (c *Carousel) UnlistenDragEvents() { c.unlisten(&c.drag) }

// ListenWheelEvent 监听滚轮
func (c *Carousel) ListenWheelEvent() {
	c.listen(&c.wheel, map[EventType]Listener{
		EventWheel: c.translator.onWheel,
	})
}

// UnlistenWheelEvent 解除滚轮监听
func (c *Carousel) UnlistenWheelEvent() { c.unlisten(&c.wheel) }

// Destroy 解除所有监听、停止观察、取消所有定时器与帧回调
// 返回后不会再有任何变换写入容器。可重复调用。
func (c *Carousel) Destroy() {
	if c.destroyed {
		return
	}
	c.UnlistenTouchEvents()
	c.UnlistenDragEvents()
	c.UnlistenWheelEvent()
	c.autoplay.Stop()
	c.autoplay.cancel()
	c.resize.Disconnect()
	c.loop.Cancel()
	c.destroyed = true
	log.Printf("[Carousel] Destroyed at offset %.1f", c.state.Offset)
}

// Destroyed 是否已销毁
func (c *Carousel) Destroyed() bool {
	return c.destroyed
}

// Offset 当前偏移量
func (c *Carousel) Offset() float64 {
	return c.state.Offset
}

// TotalWidth 当前回绕周期
func (c *Carousel) TotalWidth() float64 {
	return c.state.TotalWidth
}

// Snapshot 返回状态副本
func (c *Carousel) Snapshot() State {
	return c.state
}

// AutoplayState 自动播放状态
func (c *Carousel) AutoplayState() AutoplayState {
	return c.autoplay.Status()
}

// Rendering 渲染链是否有未完成的调度
func (c *Carousel) Rendering() bool {
	return c.loop.Running()
}
