package auto

import (
	"sync/atomic"
	"testing"
	"time"
)

// stubActiveWindow 替换前台窗口标题来源
func stubActiveWindow(t *testing.T, title *atomic.Value) {
	t.Helper()
	orig := activeWindowTitle
	activeWindowTitle = func() string {
		return title.Load().(string)
	}
	t.Cleanup(func() { activeWindowTitle = orig })
}

func TestIsWindowActive(t *testing.T) {
	var title atomic.Value
	title.Store("Google Chrome - 收件箱")
	stubActiveWindow(t, &title)

	if !IsWindowActive("chrome", true) {
		t.Error("部分匹配应忽略大小写命中")
	}
	if IsWindowActive("chrome", false) {
		t.Error("完全匹配不应命中部分标题")
	}
	if !IsWindowActive("Google Chrome - 收件箱", false) {
		t.Error("完全匹配应命中相同标题")
	}

	title.Store("")
	if IsWindowActive("chrome", true) {
		t.Error("空标题不应命中")
	}
}

func TestCheckAndWaitNotMonitoring(t *testing.T) {
	var title atomic.Value
	title.Store("Other")
	stubActiveWindow(t, &title)

	m := NewFocusMonitor("Finder", 10*time.Millisecond, nil)

	// 未开始监控时应立即返回
	done := make(chan struct{})
	go func() {
		m.CheckAndWait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("未监控时 CheckAndWait 不应阻塞")
	}
}

func TestCheckAndWaitBlocksUntilFocus(t *testing.T) {
	var title atomic.Value
	title.Store("Chrome")
	stubActiveWindow(t, &title)

	m := NewFocusMonitor("Finder", 10*time.Millisecond, nil)
	m.Start()
	defer m.Stop()

	done := make(chan struct{})
	go func() {
		m.CheckAndWait()
		close(done)
	}()

	// 目标窗口失焦，应保持阻塞并进入暂停状态
	time.Sleep(50 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("失焦时 CheckAndWait 不应返回")
	default:
	}
	if !m.IsPaused() {
		t.Error("失焦时应处于暂停状态")
	}

	// 重新聚焦后应立即返回并清除暂停状态
	title.Store("Finder - 下载")
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("重新聚焦后 CheckAndWait 应返回")
	}
	if m.IsPaused() {
		t.Error("恢复后不应处于暂停状态")
	}
}

func TestCheckAndWaitExitsOnStop(t *testing.T) {
	var title atomic.Value
	title.Store("Other")
	stubActiveWindow(t, &title)

	m := NewFocusMonitor("Finder", 10*time.Millisecond, nil)
	m.Start()

	done := make(chan struct{})
	go func() {
		m.CheckAndWait()
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	m.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("停止监控后 CheckAndWait 应退出")
	}
}

func TestFocusMonitorDefaults(t *testing.T) {
	m := NewFocusMonitor("微信", 0, nil)

	if m.CheckInterval != 500*time.Millisecond {
		t.Errorf("默认检查间隔应为 500ms, 实际为 %s", m.CheckInterval)
	}
	if !m.PartialMatch {
		t.Error("默认应为部分匹配")
	}
	if m.IsMonitoring() {
		t.Error("创建后不应自动开始监控")
	}
}
