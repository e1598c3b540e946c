// Package auto 提供桌面 UI 自动化的核心能力：
// 屏幕元素查找（OCR 文字 / 模板图像 / 颜色 / 目标检测）、轮询等待、
// 鼠标键盘输入和窗口焦点守卫。
// 截图、视觉算法、窗口和应用管理分布在 screen, vision, window, launcher 包中。
package auto

import (
	"time"

	"github.com/go-vgo/robotgo"
)

// Sleep 休眠
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// MilliSleep 毫秒休眠
func MilliSleep(ms int) {
	robotgo.MilliSleep(ms)
}
