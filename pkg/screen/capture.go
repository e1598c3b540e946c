// Package screen 提供屏幕截图、坐标换算和图像编码功能
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// CaptureScreen 截取全屏
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureRegion 截取屏幕区域，坐标使用截图物理像素
func CaptureRegion(x, y, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("无效的截图区域: %dx%d", width, height)
	}
	inputX, inputY, inputW, inputH := NormalizeRegionForInput(x, y, width, height)
	img, err := robotgo.CaptureImg(inputX, inputY, inputW, inputH)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

// CaptureDisplay 截取指定显示器（编号从 0 开始）
func CaptureDisplay(displayID int) (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if displayID < 0 || displayID >= n {
		return nil, fmt.Errorf("显示器编号越界: %d (共 %d 个)", displayID, n)
	}
	img, err := screenshot.CaptureDisplay(displayID)
	if err != nil {
		return nil, fmt.Errorf("截取显示器 %d 失败: %w", displayID, err)
	}
	return img, nil
}

// GetDisplayBounds 获取指定显示器的边界
func GetDisplayBounds(displayID int) (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if displayID < 0 || displayID >= n {
		return image.Rectangle{}, fmt.Errorf("显示器编号越界: %d (共 %d 个)", displayID, n)
	}
	return screenshot.GetDisplayBounds(displayID), nil
}

// GetScreenSize 获取主屏幕尺寸（物理像素，与截图分辨率一致）
func GetScreenSize() (width, height int) {
	return GetPhysicalScreenSize()
}

// GetDisplayCount 获取显示器数量
func GetDisplayCount() int {
	return robotgo.DisplaysNum()
}
