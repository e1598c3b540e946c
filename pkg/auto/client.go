package auto

import (
	"image"
	"sync"

	"github.com/zoeyai/kronsteen/internal/logger"
	"github.com/zoeyai/kronsteen/pkg/config"
	"github.com/zoeyai/kronsteen/pkg/screen"
	"github.com/zoeyai/kronsteen/pkg/vision/cv"
	"github.com/zoeyai/kronsteen/pkg/vision/detect"
	"github.com/zoeyai/kronsteen/pkg/vision/ocr"
)

// Client 自动化客户端。所有查找和输入操作都通过 Client 进行，
// 依赖（OCR 引擎、检测器、拦截器）在构造时显式注入，不使用包级全局状态。
type Client struct {
	settings *config.Settings
	log      *logger.Logger
	hooks    []Hook
	monitor  *FocusMonitor

	ocrKind   ocr.EngineKind
	ocrEngine ocr.Engine
	ocrOnce   sync.Once
	ocrErr    error

	detector *detect.Detector

	templateMu    sync.Mutex
	templateCache map[string]*cv.Template
}

// ClientOption 客户端构造选项
type ClientOption func(*Client)

// WithSettings 使用指定配置（默认从配置文件和环境变量加载）
func WithSettings(s *config.Settings) ClientOption {
	return func(c *Client) {
		c.settings = s
	}
}

// WithLogger 使用指定 logger
func WithLogger(log *logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// WithOCRKind 选择 OCR 引擎类型（引擎在首次文字操作时创建）
func WithOCRKind(kind ocr.EngineKind) ClientOption {
	return func(c *Client) {
		c.ocrKind = kind
	}
}

// WithOCREngine 注入已创建的 OCR 引擎
func WithOCREngine(engine ocr.Engine) ClientOption {
	return func(c *Client) {
		c.ocrEngine = engine
	}
}

// WithDetector 注入目标检测器，启用 FindObject 系列操作
func WithDetector(d *detect.Detector) ClientOption {
	return func(c *Client) {
		c.detector = d
	}
}

// WithHook 追加操作拦截器，按注册顺序执行
func WithHook(h Hook) ClientOption {
	return func(c *Client) {
		c.hooks = append(c.hooks, h)
	}
}

// WithFailureScreenshots 操作失败时自动保存全屏截图到指定目录
func WithFailureScreenshots(dir string) ClientOption {
	return func(c *Client) {
		c.hooks = append(c.hooks, NewScreenshotHook(dir, c.log))
	}
}

// WithFocusGuard 启用窗口焦点守卫：目标窗口失焦时所有被跟踪操作阻塞等待
func WithFocusGuard(windowName string) ClientOption {
	return func(c *Client) {
		c.monitor = NewFocusMonitor(windowName, 0, c.log)
		c.monitor.Start()
		c.hooks = append(c.hooks, &FocusGateHook{Monitor: c.monitor})
	}
}

// New 创建自动化客户端
func New(opts ...ClientOption) *Client {
	settings, err := config.Load()
	if err != nil {
		logger.Warn("加载配置失败，使用默认配置: %v", err)
	}

	c := &Client{
		settings:      settings,
		log:           logger.Default(),
		templateCache: make(map[string]*cv.Template),
	}

	if kind, err := ocr.ParseEngineKind(settings.OCREngine); err == nil {
		c.ocrKind = kind
	}

	for _, opt := range opts {
		opt(c)
	}

	// 日志拦截器始终最先执行
	c.hooks = append([]Hook{NewLoggingHook(c.log)}, c.hooks...)
	return c
}

// Settings 客户端当前配置
func (c *Client) Settings() *config.Settings {
	return c.settings
}

// FocusMonitor 返回焦点监控器（未启用焦点守卫时为 nil）
func (c *Client) FocusMonitor() *FocusMonitor {
	return c.monitor
}

// Close 释放客户端持有的资源
func (c *Client) Close() error {
	if c.monitor != nil {
		c.monitor.Stop()
	}

	c.templateMu.Lock()
	for _, t := range c.templateCache {
		t.Close()
	}
	c.templateCache = make(map[string]*cv.Template)
	c.templateMu.Unlock()

	if c.detector != nil {
		c.detector.Close()
	}

	if c.ocrEngine != nil {
		return c.ocrEngine.Close()
	}
	return nil
}

// run 通过拦截器链执行一个被跟踪操作
func (c *Client) run(a Action, fn func() error) error {
	return runHooks(c.hooks, a, fn)
}

// applyOptions 以客户端配置为基础应用操作选项
func (c *Client) applyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	if c.settings != nil {
		o.Timeout = c.settings.Timeout()
		o.Interval = c.settings.Interval()
		o.MinConfidence = c.settings.MinConfidence
		o.Threshold = c.settings.Threshold
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newOCREngine 包装 ocr.NewEngine 以便测试
var newOCREngine = ocr.NewEngine

// ensureOCR 获取 OCR 引擎，首次调用时按配置的引擎类型创建。
// 创建失败的错误会被缓存，后续调用直接返回。
// 调用方在进入轮询前调用，保证配置错误不参与重试。
func (c *Client) ensureOCR() (ocr.Engine, error) {
	c.ocrOnce.Do(func() {
		if c.ocrEngine != nil {
			return
		}
		engine, err := newOCREngine(c.ocrKind, ocr.DefaultConfig())
		if err != nil {
			c.ocrErr = &ConfigError{Component: "ocr", Reason: "初始化 OCR 引擎失败", Err: err}
			return
		}
		c.ocrEngine = engine
	})
	return c.ocrEngine, c.ocrErr
}

// loadTemplate 加载模板并缓存
func (c *Client) loadTemplate(path string) (*cv.Template, error) {
	c.templateMu.Lock()
	defer c.templateMu.Unlock()

	if t, ok := c.templateCache[path]; ok {
		return t, nil
	}

	t, err := cv.LoadTemplate(path)
	if err != nil {
		return nil, &ConfigError{Component: "template", Reason: "加载模板失败", Err: err}
	}
	c.templateCache[path] = t
	return t, nil
}

// captureForMatch 包装 screen.CaptureForMatch 以便测试
var captureForMatch = screen.CaptureForMatch

// capture 按选项截取搜索区域
func (c *Client) capture(o *Options) (image.Image, screen.CaptureMeta, error) {
	var rect *image.Rectangle
	if o.Region != nil {
		r := image.Rect(o.Region.Left, o.Region.Top,
			o.Region.Left+o.Region.Width, o.Region.Top+o.Region.Height)
		rect = &r
	}
	return captureForMatch(rect)
}

// regionFromMeta 将截图空间的矩形换算为屏幕空间的 Region
func regionFromMeta(meta screen.CaptureMeta, box image.Rectangle) Region {
	x, y, w, h := meta.AdjustRegion(box.Min.X, box.Min.Y, box.Dx(), box.Dy())
	return NewRegion(x, y, w, h)
}
