package carousel

import (
	"testing"

	"github.com/decker502/carousel/pkg/config"
)

func TestDominantAxisDelta(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		max    float64
		want   float64
	}{
		{"x dominant below max", 40, 5, 250, 40},
		{"y dominant below max keeps sign", 5, -40, 250, -40},
		{"tie picks x", 5, -5, 250, 5},
		{"x over max clamps", 300, 10, 250, 250},
		{"y over max clamps negative", -10, -400, 250, -250},
		{"x exactly max", 250, 0, 250, 250},
		{"y dominant over max", 10, 260, 250, 250},
		{"negative x over max", -260, 10, 250, -250},
		{"no clamp when max disabled", -300, 0, 0, -300},
		{"zero deltas", 0, 0, 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantAxisDelta(tt.dx, tt.dy, tt.max); got != tt.want {
				t.Errorf("DominantAxisDelta(%v, %v, %v): got %v, want %v", tt.dx, tt.dy, tt.max, got, tt.want)
			}
		})
	}
}

func TestWheel_SubtractsDominantAxis(t *testing.T) {
	h := newHarness(t, func(c *config.CarouselConfig) { c.MaxScrollMovement = 250 })
	h.c.TrackInteractionSources()
	h.c.state.Offset = -100

	h.events.wheelEvent(40, 5)

	if got := h.c.Offset(); got != -140 {
		t.Errorf("expected offset -140 after wheel, got %v", got)
	}
}

func TestWheel_VelocityRatioAndClamp(t *testing.T) {
	h := newHarness(t, func(c *config.CarouselConfig) {
		c.MaxScrollMovement = 100
		c.ScrollVelocityRatio = 2
	})
	h.c.TrackInteractionSources()
	h.c.state.Offset = -500

	// 位移被限制为 -100，再乘以倍率 2，取反后 +200
	h.events.wheelEvent(0, -900)

	if got := h.c.Offset(); got != -300 {
		t.Errorf("expected offset -300, got %v", got)
	}
}

func TestDrag_IncrementalDelta(t *testing.T) {
	h := newHarness(t, nil)
	h.c.TrackInteractionSources()

	h.events.mouse(EventMouseDown, 100)
	if !h.c.state.DragInProgress {
		t.Fatal("expected drag in progress after mousedown")
	}

	h.events.mouse(EventMouseMove, 130)
	// 30 >= 0，向左回绕
	if got := h.c.Offset(); got != 30-1000 {
		t.Fatalf("expected offset %v, got %v", 30-1000.0, got)
	}

	h.events.mouse(EventMouseMove, 120)
	if got := h.c.Offset(); got != -980 {
		t.Errorf("expected incremental delta -10 → offset -980, got %v", got)
	}

	h.events.mouse(EventMouseUp, 120)
	if h.c.state.DragInProgress {
		t.Error("expected drag to end on mouseup")
	}

	h.events.mouse(EventMouseMove, 500)
	if got := h.c.Offset(); got != -980 {
		t.Errorf("move after mouseup must be ignored, offset %v", got)
	}
}

func TestDrag_MouseLeaveEndsDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.c.TrackInteractionSources()

	h.events.mouse(EventMouseDown, 0)
	h.events.mouse(EventMouseLeave, 0)
	if h.c.state.DragInProgress {
		t.Error("expected mouseleave to end the drag")
	}
}

func TestTouch_AxisPolicy(t *testing.T) {
	tests := []struct {
		name string
		axis config.TouchAxis
		want float64
	}{
		{"both axes summed", config.TouchAxisBoth, -500 + 10 + 5},
		{"horizontal only", config.TouchAxisHorizontal, -500 + 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, func(c *config.CarouselConfig) { c.TouchAxis = tt.axis })
			h.c.TrackInteractionSources()
			h.c.state.Offset = -500

			h.events.touch(EventTouchStart, 10, 10)
			h.events.touch(EventTouchMove, 20, 15)

			if got := h.c.Offset(); got != tt.want {
				t.Errorf("expected offset %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTouch_IncrementalAndEnd(t *testing.T) {
	h := newHarness(t, func(c *config.CarouselConfig) { c.TouchAxis = config.TouchAxisHorizontal })
	h.c.TrackInteractionSources()
	h.c.state.Offset = -500

	h.events.touch(EventTouchStart, 100, 0)
	h.events.touch(EventTouchMove, 90, 0)
	h.events.touch(EventTouchMove, 70, 0)
	if got := h.c.Offset(); got != -530 {
		t.Fatalf("expected offset -530 after two moves, got %v", got)
	}

	h.events.touch(EventTouchEnd, 0, 0)
	if h.c.state.TouchInProgress {
		t.Error("expected touch to end")
	}

	// touchend 之后的 move 被忽略
	h.events.touch(EventTouchMove, 0, 0)
	if got := h.c.Offset(); got != -530 {
		t.Errorf("move after touchend must be ignored, offset %v", got)
	}
}

func TestHandlers_SuppressDefaultBehavior(t *testing.T) {
	h := newHarness(t, nil)
	h.c.TrackInteractionSources()

	events := []*EventBase{
		&h.events.touch(EventTouchStart, 1, 1).EventBase,
		&h.events.touch(EventTouchMove, 2, 2).EventBase,
		&h.events.touch(EventTouchEnd, 0, 0).EventBase,
		&h.events.mouse(EventMouseMove, 5).EventBase, // 无拖拽时也要阻止默认行为
		&h.events.mouse(EventMouseDown, 5).EventBase,
		&h.events.mouse(EventMouseUp, 5).EventBase,
		&h.events.mouse(EventMouseLeave, 5).EventBase,
		&h.events.wheelEvent(1, 1).EventBase,
	}

	for i, e := range events {
		if !e.DefaultPrevented() {
			t.Errorf("event %d: default not prevented", i)
		}
		if !e.PropagationStopped() {
			t.Errorf("event %d: propagation not stopped", i)
		}
	}
}

func TestTouchAndDrag_LastWriterWins(t *testing.T) {
	h := newHarness(t, func(c *config.CarouselConfig) { c.TouchAxis = config.TouchAxisHorizontal })
	h.c.TrackInteractionSources()
	h.c.state.Offset = -500

	h.events.touch(EventTouchStart, 0, 0)
	h.events.mouse(EventMouseDown, 0)
	h.events.touch(EventTouchMove, -10, 0)
	h.events.mouse(EventMouseMove, -20)

	if got := h.c.Offset(); got != -530 {
		t.Errorf("expected both sources applied sequentially (-530), got %v", got)
	}
	if !h.c.state.TouchInProgress || !h.c.state.DragInProgress {
		t.Error("expected both flags set")
	}
}
