// Package app 提供轮播应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/carousel/pkg/carousel"
	"github.com/decker502/carousel/pkg/config"
	"github.com/decker502/carousel/pkg/game"
	"github.com/decker502/carousel/pkg/platform"
	"github.com/decker502/carousel/pkg/scheduler"
	"github.com/decker502/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 默认窗口尺寸
const (
	WindowWidth  = 960
	WindowHeight = 540
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "carousel"

// nudgePixels 方向键一次程序化滚动的距离
const nudgePixels = 120.0

var background = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 轮播配置文件，为空使用 config.DefaultConfigPath
	ConfigPath string
	// TargetFPS 大于 0 时覆盖配置文件中的帧率
	TargetFPS float64
	// Paused 启动时不自动播放（覆盖已保存的设置）
	Paused bool
}

// App 实现 ebiten.Game 接口
type App struct {
	loop     *scheduler.Loop
	events   *platform.EventSource
	strip    *platform.StripElement
	carousel *carousel.Carousel
	settings *game.SettingsManager

	verbose bool
	clock   func() time.Time
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	file, err := config.LoadCarouselFile(path)
	if err != nil {
		return nil, fmt.Errorf("轮播配置加载失败: %w", err)
	}
	if cfg.TargetFPS > 0 {
		file.Carousel.TargetFPS = cfg.TargetFPS
	}
	if utils.IsMobile() {
		// 移动端没有滚轮
		file.Carousel.WheelEnabled = false
	}

	settings, _ := game.NewSettingsManager(game.OpenStorage(StorageAppName))
	if cfg.Paused {
		settings.SetAutoplay(false)
	}

	a, err := newApp(file, settings, platform.NewEbitenInput(), time.Now)
	if err != nil {
		return nil, err
	}
	a.verbose = cfg.Verbose

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// newApp 组装调度器、事件源、媒体条与轮播
func newApp(file *config.CarouselFile, settings *game.SettingsManager, input platform.InputReader, clock func() time.Time) (*App, error) {
	strip, err := platform.NewStripElement(file.Strip)
	if err != nil {
		return nil, fmt.Errorf("媒体条创建失败: %w", err)
	}
	// 构造前先布局，初始 TotalWidth 即为实际宽度
	strip.SetViewport(WindowWidth, WindowHeight)

	events := platform.NewEventSource(input)
	events.SetBounds(strip.Bounds())

	loop := scheduler.NewLoop(clock())
	c, err := carousel.New(carousel.Options{
		Container:      strip,
		TouchContainer: events,
		Scheduler:      loop,
		Config:         file.Carousel,
	})
	if err != nil {
		return nil, fmt.Errorf("轮播创建失败: %w", err)
	}
	c.TrackInteractionSources()

	if settings.GetSettings().Autoplay {
		c.Play()
	}
	log.Printf("[App] Carousel ready: autoplay=%v, totalWidth=%.1f", settings.GetSettings().Autoplay, c.TotalWidth())

	return &App{
		loop:     loop,
		events:   events,
		strip:    strip,
		carousel: c,
		settings: settings,
		clock:    clock,
	}, nil
}

// Update 轮询输入、触发到期定时器、执行帧回调
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if err := a.handleKeys(); err != nil {
		return err
	}
	a.tick()
	return nil
}

// tick 按 输入 → 定时器 → 帧回调 的顺序推进一次
func (a *App) tick() {
	a.events.Poll()
	a.loop.Advance(a.clock())
	a.loop.RunFrame()
}

func (a *App) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.Close()
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.ToggleAutoplay()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.carousel.Scroll(-nudgePixels)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.carousel.Scroll(nudgePixels)
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.ToggleFullscreen()
	}
	return nil
}

// ToggleAutoplay 切换自动播放并保存设置
func (a *App) ToggleAutoplay() {
	playing := a.carousel.AutoplayState() != carousel.AutoplayStopped
	if playing {
		a.carousel.Stop()
	} else {
		a.carousel.Play()
	}
	a.settings.SetAutoplay(!playing)
	a.saveSettings()
}

// ToggleFullscreen 切换全屏并保存设置
func (a *App) ToggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	a.settings.SetFullscreen(fullscreen)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Close 销毁轮播，之后不会再有任何变换写入
func (a *App) Close() {
	a.carousel.Destroy()
}

// Draw 绘制媒体条与状态栏
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	a.strip.Draw(screen)

	s := a.carousel.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  offset=%.1f  width=%.1f  %s\n[space] play/stop  [<-/->] scroll  [F11] fullscreen  [esc] quit",
		a.carousel.AutoplayState(), s.Offset, s.TotalWidth, a.strip.Transform()))
}

// Layout 以窗口实际尺寸作为逻辑尺寸，视口变化会触发媒体条的尺寸观察
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return WindowWidth, WindowHeight
	}
	a.strip.SetViewport(outsideWidth, outsideHeight)
	a.events.SetBounds(a.strip.Bounds())
	return outsideWidth, outsideHeight
}

// Carousel 返回轮播控制器
func (a *App) Carousel() *carousel.Carousel {
	return a.carousel
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// IsTermination 判断 RunGame 返回的错误是否为正常退出
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
