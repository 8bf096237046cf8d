package main

import (
	"flag"
	"log"

	"github.com/decker502/carousel/pkg/app"
	"github.com/decker502/carousel/pkg/config"
	"github.com/decker502/carousel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "轮播配置文件（data/ 下的路径从嵌入资源读取）")
	verbose := flag.Bool("verbose", false, "输出详细日志")
	fps := flag.Float64("fps", 0, "覆盖配置中的目标帧率")
	paused := flag.Bool("paused", false, "启动时不自动播放")
	flag.Parse()

	embedded.Init(dataFS)

	carouselApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		TargetFPS:  *fps,
		Paused:     *paused,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Carousel")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(carouselApp); err != nil && !app.IsTermination(err) {
		log.Fatal(err)
	}
	carouselApp.Close()
}
