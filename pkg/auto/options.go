package auto

import "time"

// Option 单次操作的配置选项
type Option func(*Options)

// Options 查找/点击操作配置
type Options struct {
	// Timeout 等待超时时间，<= 0 表示只探测一次不重试
	Timeout time.Duration
	// Interval 轮询间隔
	Interval time.Duration
	// Region 搜索区域 (nil 表示全屏)
	Region *Region
	// MatchMode 文字匹配模式
	MatchMode MatchMode
	// CaseSensitive 文字匹配是否区分大小写，默认不区分
	CaseSensitive bool
	// MinConfidence OCR 置信度硬阈值，低于该值的结果直接丢弃
	MinConfidence float64
	// Threshold 图像/检测匹配阈值 (0-1)
	Threshold float64
	// Grayscale 模板匹配是否使用灰度（更快）
	Grayscale bool
	// ColorTolerance 颜色查找的单通道容差 (0-255)，0 表示精确匹配
	ColorTolerance int
	// ClickOffset 点击偏移量
	ClickOffset Point
	// DoubleClick 是否双击
	DoubleClick bool
	// RightClick 是否右键点击
	RightClick bool
}

// DefaultOptions 默认配置
func DefaultOptions() *Options {
	return &Options{
		Timeout:       5 * time.Second,
		Interval:      DefaultPollInterval,
		MatchMode:     MatchContains,
		CaseSensitive: false,
		MinConfidence: 0.5,
		Threshold:     0.8,
		Grayscale:     true,
	}
}

// ApplyOptions 应用配置选项
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout 设置超时时间
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithInterval 设置轮询间隔
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		o.Interval = d
	}
}

// WithRegion 设置搜索区域
func WithRegion(left, top, width, height int) Option {
	return func(o *Options) {
		r := NewRegion(left, top, width, height)
		o.Region = &r
	}
}

// WithMatchMode 设置文字匹配模式
func WithMatchMode(mode MatchMode) Option {
	return func(o *Options) {
		o.MatchMode = mode
	}
}

// WithCaseSensitive 设置区分大小写
func WithCaseSensitive() Option {
	return func(o *Options) {
		o.CaseSensitive = true
	}
}

// WithMinConfidence 设置 OCR 置信度阈值
func WithMinConfidence(c float64) Option {
	return func(o *Options) {
		o.MinConfidence = c
	}
}

// WithThreshold 设置图像匹配阈值
func WithThreshold(t float64) Option {
	return func(o *Options) {
		o.Threshold = t
	}
}

// WithColorMatching 模板匹配使用彩色图像（默认灰度）
func WithColorMatching() Option {
	return func(o *Options) {
		o.Grayscale = false
	}
}

// WithColorTolerance 设置颜色查找的单通道容差
func WithColorTolerance(tolerance int) Option {
	return func(o *Options) {
		o.ColorTolerance = tolerance
	}
}

// WithClickOffset 设置点击偏移量
func WithClickOffset(x, y int) Option {
	return func(o *Options) {
		o.ClickOffset = Point{X: x, Y: y}
	}
}

// WithDoubleClick 设置双击
func WithDoubleClick() Option {
	return func(o *Options) {
		o.DoubleClick = true
	}
}

// WithRightClick 设置右键点击
func WithRightClick() Option {
	return func(o *Options) {
		o.RightClick = true
	}
}
