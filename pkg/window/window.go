// Package window 提供窗口枚举、激活、等待和截图功能
package window

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/kronsteen/internal/logger"
	"github.com/zoeyai/kronsteen/pkg/auto"
	"github.com/zoeyai/kronsteen/pkg/screen"
)

// Info 窗口信息。
// 使用 PID 作为窗口标识符，robotgo 在 Windows 上内部转换为 hwnd。
type Info struct {
	PID    int         `json:"pid"`
	Title  string      `json:"title"`
	Bounds auto.Region `json:"bounds"`
}

// List 获取窗口列表
// filter: 可选的过滤条件，按窗口标题或进程名称做不区分大小写的包含匹配
func List(filter ...string) ([]Info, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	filterStr := ""
	if len(filter) > 0 {
		filterStr = strings.ToLower(filter[0])
	}

	var windows []Info

	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}

		if filterStr != "" {
			name, _ := robotgo.FindName(pid)
			if !strings.Contains(strings.ToLower(title), filterStr) &&
				!strings.Contains(strings.ToLower(name), filterStr) {
				continue
			}
		}

		x, y, w, h := robotgo.GetBounds(pid)

		windows = append(windows, Info{
			PID:    pid,
			Title:  title,
			Bounds: auto.NewRegion(x, y, w, h),
		})
	}

	return windows, nil
}

// FindByTitle 按标题查找窗口（部分匹配，返回第一个）
func FindByTitle(title string) (*Info, error) {
	windows, err := List(title)
	if err != nil {
		return nil, err
	}

	if len(windows) == 0 {
		return nil, &auto.NotFoundError{Kind: auto.KindWindow, Query: title}
	}

	return &windows[0], nil
}

// FindByPID 按 PID 获取窗口信息
func FindByPID(pid int) (*Info, error) {
	title := robotgo.GetTitle(pid)
	if title == "" {
		return nil, fmt.Errorf("未找到 PID=%d 的窗口", pid)
	}

	x, y, w, h := robotgo.GetBounds(pid)
	return &Info{
		PID:    pid,
		Title:  title,
		Bounds: auto.NewRegion(x, y, w, h),
	}, nil
}

// WaitFor 等待标题匹配的窗口出现。
// timeout 和 interval 语义与 auto.Poll 一致：timeout <= 0 时只探测一次。
func WaitFor(title string, opts ...auto.Option) (*Info, error) {
	o := auto.ApplyOptions(opts...)

	return auto.Poll(o.Timeout, o.Interval,
		func() (*Info, error) {
			w, err := FindByTitle(title)
			if auto.IsNotFound(err) {
				return nil, nil
			}
			return w, err
		},
		func() error {
			return &auto.NotFoundError{Kind: auto.KindWindow, Query: title, Timeout: o.Timeout}
		})
}

// ActiveTitle 返回当前前台窗口的标题
func ActiveTitle() string {
	return robotgo.GetTitle()
}

// Activate 将窗口置于前台
func Activate(pid int) error {
	if err := robotgo.ActivePid(pid); err != nil {
		logger.LogEvent("WIN", false, 0, fmt.Sprintf("激活窗口失败 PID=%d", pid))
		return fmt.Errorf("激活窗口失败: %w", err)
	}
	logger.LogEvent("WIN", true, 0, fmt.Sprintf("激活窗口 PID=%d", pid))
	return nil
}

// ActivateByTitle 查找标题匹配的窗口并置于前台
func ActivateByTitle(title string) (*Info, error) {
	w, err := FindByTitle(title)
	if err != nil {
		return nil, err
	}
	if err := Activate(w.PID); err != nil {
		return nil, err
	}
	return w, nil
}

// Minimize 最小化窗口
func Minimize(pid int) {
	robotgo.MinWindow(pid)
}

// Maximize 最大化窗口
func Maximize(pid int) {
	robotgo.MaxWindow(pid)
}

// CloseByPID 关闭窗口
func CloseByPID(pid int) {
	robotgo.CloseWindow(pid)
}

// Capture 截取窗口截图
func Capture(pid int) (image.Image, error) {
	x, y, w, h := robotgo.GetBounds(pid)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("无法获取窗口边界: PID=%d", pid)
	}

	return screen.CaptureRegion(x, y, w, h)
}

// ClickIn 激活窗口并点击窗口内的相对位置
// relX, relY 相对于窗口左上角
func ClickIn(c *auto.Client, pid int, relX, relY int, opts ...auto.Option) error {
	x, y, _, _ := robotgo.GetBounds(pid)
	if x == 0 && y == 0 {
		return fmt.Errorf("无法获取窗口位置: PID=%d", pid)
	}

	if err := Activate(pid); err != nil {
		return err
	}

	return c.ClickAt(x+relX, y+relY, opts...)
}
