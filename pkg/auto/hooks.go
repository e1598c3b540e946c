package auto

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/zoeyai/kronsteen/internal/logger"
	"github.com/zoeyai/kronsteen/pkg/screen"
)

// Action 描述一次被跟踪的自动化操作
type Action struct {
	// Name 操作名称 (如 "click_text")
	Name string
	// Detail 操作参数摘要（查询文字、模板路径、坐标等）
	Detail string
}

// Hook 操作拦截器。客户端按注册顺序在每个被跟踪操作前后依次调用，
// 取代隐式的装饰器包装。Before 返回错误会中止操作。
type Hook interface {
	Before(a Action) error
	After(a Action, err error, elapsed time.Duration)
}

// LoggingHook 把每个操作的执行结果写入事件日志
type LoggingHook struct {
	Log *logger.Logger
}

// NewLoggingHook 创建日志拦截器（log 为 nil 时使用默认 logger）
func NewLoggingHook(log *logger.Logger) *LoggingHook {
	if log == nil {
		log = logger.Default()
	}
	return &LoggingHook{Log: log}
}

func (h *LoggingHook) Before(a Action) error {
	h.Log.Debug("-> %s %s", a.Name, a.Detail)
	return nil
}

func (h *LoggingHook) After(a Action, err error, elapsed time.Duration) {
	detail := a.Detail
	if err != nil {
		detail = fmt.Sprintf("%s: %v", a.Detail, err)
	}
	h.Log.LogEvent("ACT", err == nil, float64(elapsed.Milliseconds()), fmt.Sprintf("%s %s", a.Name, detail))
}

// FocusGateHook 在每个被跟踪操作前检查被监控窗口是否处于前台，
// 失焦时阻塞等待（见 FocusMonitor）
type FocusGateHook struct {
	Monitor *FocusMonitor
}

func (h *FocusGateHook) Before(a Action) error {
	if h.Monitor != nil {
		h.Monitor.CheckAndWait()
	}
	return nil
}

func (h *FocusGateHook) After(a Action, err error, elapsed time.Duration) {}

// ScreenshotHook 在操作失败后抓取全屏截图，便于事后排查。
// OnSuccess 为 true 时成功的操作也会截图。
type ScreenshotHook struct {
	// Dir 截图保存目录
	Dir string
	// OnSuccess 成功时是否也截图
	OnSuccess bool
	Log       *logger.Logger
}

// NewScreenshotHook 创建失败截图拦截器（log 为 nil 时使用默认 logger）
func NewScreenshotHook(dir string, log *logger.Logger) *ScreenshotHook {
	if log == nil {
		log = logger.Default()
	}
	return &ScreenshotHook{Dir: dir, Log: log}
}

func (h *ScreenshotHook) Before(a Action) error { return nil }

func (h *ScreenshotHook) After(a Action, err error, elapsed time.Duration) {
	if err == nil && !h.OnSuccess {
		return
	}
	img, _, capErr := captureForMatch(nil)
	if capErr != nil {
		h.Log.Warn("操作截图失败: %v", capErr)
		return
	}
	name := fmt.Sprintf("%s_%s.png", a.Name, time.Now().Format("20060102_150405.000"))
	path := filepath.Join(h.Dir, name)
	if saveErr := screen.SavePNG(img, path); saveErr != nil {
		h.Log.Warn("操作截图保存失败: %v", saveErr)
		return
	}
	h.Log.Debug("操作截图已保存: %s", path)
}

// runHooks 按顺序执行 Before，全部通过后执行 fn，再逆序执行 After
func runHooks(hooks []Hook, a Action, fn func() error) error {
	for _, h := range hooks {
		if err := h.Before(a); err != nil {
			return fmt.Errorf("操作 %s 被拦截: %w", a.Name, err)
		}
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].After(a, err, elapsed)
	}
	return err
}
