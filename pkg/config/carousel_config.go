package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/decker502/carousel/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件路径（嵌入资源）
const DefaultConfigPath = "data/carousel.yaml"

// TouchAxis 触摸位移的计算方式
type TouchAxis string

const (
	// TouchAxisBoth 水平与垂直位移相加（默认）
	TouchAxisBoth TouchAxis = "both"
	// TouchAxisHorizontal 仅使用水平位移
	TouchAxisHorizontal TouchAxis = "horizontal"
)

// 默认值
const (
	DefaultTargetFPS           = 60.0
	DefaultScrollVelocityRatio = 1.0
	DefaultMaxScrollMovement   = 0.0 // 0 = 不限制
	DefaultResumeDelayMs       = 500
	DefaultResizeDebounceMs    = 500
	DefaultOffsetPerTick       = 0.5

	DefaultStripBaseHeight  = 200.0
	DefaultStripHeightRatio = 0.5
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid carousel config")

// CarouselConfig 轮播行为配置
// 构造后不可变，由 carousel.New 读取
type CarouselConfig struct {
	// TargetFPS 目标帧率，决定自动播放的 tick 间隔
	TargetFPS float64 `yaml:"targetFps"`

	// ScrollVelocityRatio 滚轮位移倍率
	ScrollVelocityRatio float64 `yaml:"scrollVelocityRatio"`

	// MaxScrollMovement 单次滚轮位移上限（像素）
	// <= 0 表示不限制
	MaxScrollMovement float64 `yaml:"maxScrollMovement"`

	// ResumeDelayMs 交互结束后恢复自动播放的静默期（毫秒）
	// 0 表示拖拽/触摸结束后立即恢复
	ResumeDelayMs int `yaml:"resumeDelayMs"`

	// ResizeDebounceMs 尺寸变化信号的防抖时间（毫秒）
	ResizeDebounceMs int `yaml:"resizeDebounceMs"`

	// OffsetPerTick 每个自动播放 tick 的位移量
	OffsetPerTick float64 `yaml:"offsetPerTick"`

	// TouchAxis 触摸位移计算方式: "both" | "horizontal"
	TouchAxis TouchAxis `yaml:"touchAxis"`

	// WheelEnabled 是否监听滚轮事件
	WheelEnabled bool `yaml:"wheelEnabled"`
}

// MediaItem 媒体条中的一个条目
type MediaItem struct {
	Label string  `yaml:"label"`
	Color string  `yaml:"color"` // "#rrggbb"
	Width float64 `yaml:"width"` // 基准高度下的宽度（像素）
}

// StripConfig 媒体条内容配置
type StripConfig struct {
	// BaseHeight 条目宽度所对应的基准高度
	BaseHeight float64 `yaml:"baseHeight"`

	// HeightRatio 媒体条高度占视口高度的比例
	HeightRatio float64 `yaml:"heightRatio"`

	// Gap 条目间距（基准高度下）
	Gap float64 `yaml:"gap"`

	Items []MediaItem `yaml:"items"`
}

// CarouselFile 配置文件顶层结构
type CarouselFile struct {
	Carousel CarouselConfig `yaml:"carousel"`
	Strip    StripConfig    `yaml:"strip"`
}

// DefaultCarouselConfig 返回默认轮播配置
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{
		TargetFPS:           DefaultTargetFPS,
		ScrollVelocityRatio: DefaultScrollVelocityRatio,
		MaxScrollMovement:   DefaultMaxScrollMovement,
		ResumeDelayMs:       DefaultResumeDelayMs,
		ResizeDebounceMs:    DefaultResizeDebounceMs,
		OffsetPerTick:       DefaultOffsetPerTick,
		TouchAxis:           TouchAxisBoth,
		WheelEnabled:        true,
	}
}

// DefaultCarouselFile 返回默认配置文件内容（无媒体条目）
func DefaultCarouselFile() *CarouselFile {
	return &CarouselFile{
		Carousel: DefaultCarouselConfig(),
		Strip: StripConfig{
			BaseHeight:  DefaultStripBaseHeight,
			HeightRatio: DefaultStripHeightRatio,
		},
	}
}

// TickInterval 自动播放 tick 间隔: ceil(1000/fps) 毫秒
func (c CarouselConfig) TickInterval() time.Duration {
	fps := c.TargetFPS
	if fps <= 0 {
		fps = DefaultTargetFPS
	}
	return time.Duration(math.Ceil(1000/fps)) * time.Millisecond
}

// ResumeDelay 恢复自动播放的静默期
func (c CarouselConfig) ResumeDelay() time.Duration {
	return time.Duration(c.ResumeDelayMs) * time.Millisecond
}

// ResizeDebounce 尺寸变化防抖时间
func (c CarouselConfig) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// Validate 校验配置
func (c CarouselConfig) Validate() error {
	if c.TargetFPS <= 0 || math.IsNaN(c.TargetFPS) || math.IsInf(c.TargetFPS, 0) {
		return fmt.Errorf("%w: targetFps must be positive, got %v", ErrInvalidConfig, c.TargetFPS)
	}
	if c.ResumeDelayMs < 0 {
		return fmt.Errorf("%w: resumeDelayMs must not be negative, got %d", ErrInvalidConfig, c.ResumeDelayMs)
	}
	if c.ResizeDebounceMs < 0 {
		return fmt.Errorf("%w: resizeDebounceMs must not be negative, got %d", ErrInvalidConfig, c.ResizeDebounceMs)
	}
	if math.IsNaN(c.OffsetPerTick) || math.IsInf(c.OffsetPerTick, 0) {
		return fmt.Errorf("%w: offsetPerTick must be finite", ErrInvalidConfig)
	}
	switch c.TouchAxis {
	case TouchAxisBoth, TouchAxisHorizontal:
	default:
		return fmt.Errorf("%w: unknown touchAxis %q", ErrInvalidConfig, c.TouchAxis)
	}
	return nil
}

// Validate 校验媒体条配置
func (s StripConfig) Validate() error {
	if s.BaseHeight <= 0 {
		return fmt.Errorf("%w: strip baseHeight must be positive, got %v", ErrInvalidConfig, s.BaseHeight)
	}
	if s.HeightRatio <= 0 || s.HeightRatio > 1 {
		return fmt.Errorf("%w: strip heightRatio must be in (0, 1], got %v", ErrInvalidConfig, s.HeightRatio)
	}
	for i, item := range s.Items {
		if item.Width <= 0 {
			return fmt.Errorf("%w: strip item %d (%s) width must be positive", ErrInvalidConfig, i, item.Label)
		}
		if _, err := item.RGBA(); err != nil {
			return fmt.Errorf("%w: strip item %d (%s): %v", ErrInvalidConfig, i, item.Label, err)
		}
	}
	return nil
}

// RGBA 解析 "#rrggbb" 颜色
func (m MediaItem) RGBA() (color.RGBA, error) {
	hex := strings.TrimPrefix(m.Color, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", m.Color)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", m.Color, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ParseCarouselFile 解析 YAML 配置
// 未出现的字段保留默认值
func ParseCarouselFile(data []byte) (*CarouselFile, error) {
	file := DefaultCarouselFile()
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse carousel config YAML: %w", err)
	}
	if err := file.Carousel.Validate(); err != nil {
		return nil, err
	}
	if err := file.Strip.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}

// LoadCarouselFile 加载配置文件
// 优先从嵌入资源读取，不存在时回退到本地文件系统
func LoadCarouselFile(path string) (*CarouselFile, error) {
	var (
		data []byte
		err  error
	)
	if embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel config file %s: %w", path, err)
	}

	file, err := ParseCarouselFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[Config] Loaded %s: fps=%.0f, tick=%v, items=%d",
		path, file.Carousel.TargetFPS, file.Carousel.TickInterval(), len(file.Strip.Items))
	return file, nil
}
