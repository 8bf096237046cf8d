package app

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/carousel/pkg/carousel"
	"github.com/decker502/carousel/pkg/config"
	"github.com/decker502/carousel/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// idleInput 没有任何输入
type idleInput struct{}

func (idleInput) TouchIDs() []ebiten.TouchID              { return nil }
func (idleInput) TouchPosition(ebiten.TouchID) (int, int) { return 0, 0 }
func (idleInput) CursorPosition() (int, int)              { return -1, -1 }
func (idleInput) LeftButtonPressed() bool                 { return false }
func (idleInput) Wheel() (float64, float64)               { return 0, 0 }

func testFile() *config.CarouselFile {
	file := config.DefaultCarouselFile()
	file.Strip.Items = []config.MediaItem{
		{Label: "a", Color: "#102030", Width: 400},
		{Label: "b", Color: "#405060", Width: 600},
	}
	return file
}

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T, autoplay bool) (*App, *manualClock) {
	t.Helper()
	settings, _ := game.NewSettingsManager(nil)
	settings.SetAutoplay(autoplay)

	clock := &manualClock{now: time.Unix(0, 0)}
	a, err := newApp(testFile(), settings, idleInput{}, clock.Now)
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	return a, clock
}

func TestNewApp_InvalidStrip(t *testing.T) {
	file := testFile()
	file.Strip.Items[0].Width = 0
	settings, _ := game.NewSettingsManager(nil)

	if _, err := newApp(file, settings, idleInput{}, time.Now); err == nil {
		t.Error("expected error for invalid strip config")
	}
}

func TestNewApp_InitialWidthUsesWindowLayout(t *testing.T) {
	a, _ := newTestApp(t, true)

	// 窗口高 540 * 0.5 / 200 = 1.35 倍
	want := 1350.0
	if got := a.Carousel().TotalWidth(); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalWidth: got %v, want %v", got, want)
	}
}

func TestApp_TickAdvancesAutoplay(t *testing.T) {
	a, clock := newTestApp(t, true)

	for i := 0; i < 60; i++ {
		clock.now = clock.now.Add(17 * time.Millisecond)
		a.tick()
	}

	if got := a.Carousel().Offset(); got >= 0 {
		t.Errorf("expected autoplay to move the strip left, offset %v", got)
	}
	if got := a.strip.Transform().X; got > 0 || got <= -a.Carousel().TotalWidth() {
		t.Errorf("painted transform out of range: %v", got)
	}
}

func TestApp_PausedStartPaintsOnce(t *testing.T) {
	a, clock := newTestApp(t, false)

	clock.now = clock.now.Add(time.Second)
	a.tick()

	if a.Carousel().AutoplayState() != carousel.AutoplayStopped {
		t.Errorf("expected stopped, got %v", a.Carousel().AutoplayState())
	}
	if a.Carousel().Offset() != 0 {
		t.Errorf("paused start moved the strip: %v", a.Carousel().Offset())
	}
}

func TestApp_ToggleAutoplay(t *testing.T) {
	a, _ := newTestApp(t, true)

	a.ToggleAutoplay()
	if a.Carousel().AutoplayState() != carousel.AutoplayStopped {
		t.Errorf("expected stopped after toggle, got %v", a.Carousel().AutoplayState())
	}
	if a.settings.GetSettings().Autoplay {
		t.Error("autoplay setting should follow the toggle")
	}

	a.ToggleAutoplay()
	if a.Carousel().AutoplayState() != carousel.AutoplayPlaying {
		t.Errorf("expected playing after second toggle, got %v", a.Carousel().AutoplayState())
	}
}

func TestApp_LayoutReconcilesWidth(t *testing.T) {
	a, clock := newTestApp(t, true)
	before := a.Carousel().TotalWidth()

	a.Layout(WindowWidth, WindowHeight*2)
	clock.now = clock.now.Add(time.Second)
	a.tick()

	if got := a.Carousel().TotalWidth(); math.Abs(got-before*2) > 1e-9 {
		t.Errorf("TotalWidth after resize: got %v, want %v", got, before*2)
	}
}

func TestApp_CloseStopsPainting(t *testing.T) {
	a, clock := newTestApp(t, true)
	a.Close()

	clock.now = clock.now.Add(time.Second)
	a.tick()

	if got := a.strip.Transform(); got != (carousel.Transform{}) {
		t.Errorf("painted after Close(): %v", got)
	}
}
