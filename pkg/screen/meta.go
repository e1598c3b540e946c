package screen

import (
	"fmt"
	"image"
)

// CaptureMeta 截图元信息，描述截图像素空间到屏幕坐标的换算。
// 匹配结果坐标 * Scale + Offset = 屏幕物理坐标。
type CaptureMeta struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX int
	OffsetY int
}

// CaptureForMatch 截图用于视觉匹配。region 为 nil 时截取全屏。
// 返回图像和换算元信息。
func CaptureForMatch(region *image.Rectangle) (image.Image, CaptureMeta, error) {
	var img image.Image
	var err error

	if region != nil {
		img, err = CaptureRegion(region.Min.X, region.Min.Y, region.Dx(), region.Dy())
	} else {
		img, err = CaptureScreen()
	}
	if err != nil {
		return nil, CaptureMeta{}, fmt.Errorf("匹配截图失败: %w", err)
	}

	return img, BuildCaptureMeta(img, region), nil
}

// BuildCaptureMeta 根据截图实际尺寸与期望尺寸构建换算元信息
func BuildCaptureMeta(img image.Image, region *image.Rectangle) CaptureMeta {
	bounds := img.Bounds()
	imgW := bounds.Dx()
	imgH := bounds.Dy()

	expectedW, expectedH := GetScreenSize()
	offsetX, offsetY := 0, 0
	if region != nil {
		expectedW = region.Dx()
		expectedH = region.Dy()
		offsetX = region.Min.X
		offsetY = region.Min.Y
	}

	scaleX := 1.0
	if expectedW > 0 && imgW > 0 {
		scaleX = float64(expectedW) / float64(imgW)
	}
	scaleY := 1.0
	if expectedH > 0 && imgH > 0 {
		scaleY = float64(expectedH) / float64(imgH)
	}

	return CaptureMeta{
		ScaleX:  scaleX,
		ScaleY:  scaleY,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// AdjustPoint 将匹配结果的点坐标换算为屏幕坐标
func (m CaptureMeta) AdjustPoint(x, y int) (int, int) {
	return ScaleInt(x, m.ScaleX) + m.OffsetX, ScaleInt(y, m.ScaleY) + m.OffsetY
}

// AdjustRegion 将匹配结果的区域换算为屏幕坐标
func (m CaptureMeta) AdjustRegion(x, y, width, height int) (int, int, int, int) {
	nx, ny := m.AdjustPoint(x, y)
	return nx, ny, ScaleInt(width, m.ScaleX), ScaleInt(height, m.ScaleY)
}
