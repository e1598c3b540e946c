package auto

import (
	"strings"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/kronsteen/internal/logger"
)

// activeWindowTitle 获取当前前台窗口标题，测试时可替换
var activeWindowTitle = func() string {
	return robotgo.GetTitle()
}

// GetActiveWindowTitle 获取当前活动窗口标题
func GetActiveWindowTitle() string {
	return activeWindowTitle()
}

// IsWindowActive 检查指定名称的窗口是否处于前台
// partialMatch 为 true 时做不区分大小写的包含匹配
func IsWindowActive(windowName string, partialMatch bool) bool {
	title := activeWindowTitle()
	if title == "" {
		return false
	}
	if partialMatch {
		return strings.Contains(strings.ToLower(title), strings.ToLower(windowName))
	}
	return strings.EqualFold(title, windowName)
}

// FocusMonitor 窗口焦点监控。
// 只有"未暂停"和"已暂停"两种状态，按固定间隔轮询前台窗口，
// 没有迟滞或防抖。监控目标失焦时 CheckAndWait 阻塞，重新聚焦后立即返回。
type FocusMonitor struct {
	// WindowName 被监控的窗口名称
	WindowName string
	// CheckInterval 焦点检查间隔
	CheckInterval time.Duration
	// PartialMatch 是否做部分匹配（默认 true）
	PartialMatch bool

	log *logger.Logger

	mu         sync.Mutex
	monitoring bool
	paused     bool
}

// NewFocusMonitor 创建焦点监控器
func NewFocusMonitor(windowName string, checkInterval time.Duration, log *logger.Logger) *FocusMonitor {
	if checkInterval <= 0 {
		checkInterval = 500 * time.Millisecond
	}
	if log == nil {
		log = logger.Default()
	}
	return &FocusMonitor{
		WindowName:    windowName,
		CheckInterval: checkInterval,
		PartialMatch:  true,
		log:           log,
	}
}

// Start 开始监控
func (m *FocusMonitor) Start() {
	m.mu.Lock()
	m.monitoring = true
	m.mu.Unlock()
	m.log.Info("开始监控窗口焦点: %q", m.WindowName)
}

// Stop 停止监控并清除暂停状态
func (m *FocusMonitor) Stop() {
	m.mu.Lock()
	m.monitoring = false
	m.paused = false
	m.mu.Unlock()
	m.log.Info("停止监控窗口焦点: %q", m.WindowName)
}

// IsMonitoring 是否正在监控
func (m *FocusMonitor) IsMonitoring() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.monitoring
}

// IsPaused 自动化是否因失焦而暂停
func (m *FocusMonitor) IsPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// CheckAndWait 检查被监控窗口是否处于前台，失焦时阻塞等待直到重新聚焦。
// 在每个主要自动化操作前调用。
func (m *FocusMonitor) CheckAndWait() {
	if !m.IsMonitoring() {
		return
	}

	for m.IsMonitoring() {
		if IsWindowActive(m.WindowName, m.PartialMatch) {
			m.mu.Lock()
			wasPaused := m.paused
			m.paused = false
			m.mu.Unlock()
			if wasPaused {
				m.log.Info("窗口 %q 重新获得焦点, 恢复自动化", m.WindowName)
			}
			return
		}

		m.mu.Lock()
		wasPaused := m.paused
		m.paused = true
		m.mu.Unlock()
		if !wasPaused {
			m.log.Warn("窗口 %q 失去焦点, 暂停自动化", m.WindowName)
		}

		time.Sleep(m.CheckInterval)
	}
}
