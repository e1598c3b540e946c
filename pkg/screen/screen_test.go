package screen

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
)

func makeTestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	return img
}

func TestBuildCaptureMetaRegion(t *testing.T) {
	// 区域 100x50，截图为 2 倍物理像素 200x100
	img := makeTestImage(200, 100)
	region := image.Rect(10, 20, 110, 70)

	meta := BuildCaptureMeta(img, &region)

	if meta.ScaleX != 0.5 || meta.ScaleY != 0.5 {
		t.Errorf("缩放比应为 0.5, 实际为 %v x %v", meta.ScaleX, meta.ScaleY)
	}
	if meta.OffsetX != 10 || meta.OffsetY != 20 {
		t.Errorf("偏移应为 (10,20), 实际为 (%d,%d)", meta.OffsetX, meta.OffsetY)
	}

	// 截图内坐标 (100, 60) → 屏幕坐标 (10+50, 20+30)
	x, y := meta.AdjustPoint(100, 60)
	if x != 60 || y != 50 {
		t.Errorf("调整后坐标应为 (60,50), 实际为 (%d,%d)", x, y)
	}
}

func TestBuildCaptureMetaNoScale(t *testing.T) {
	img := makeTestImage(100, 50)
	region := image.Rect(0, 0, 100, 50)

	meta := BuildCaptureMeta(img, &region)

	if meta.ScaleX != 1.0 || meta.ScaleY != 1.0 {
		t.Errorf("无缩放时比例应为 1.0, 实际为 %v x %v", meta.ScaleX, meta.ScaleY)
	}

	x, y, w, h := meta.AdjustRegion(5, 10, 20, 30)
	if x != 5 || y != 10 || w != 20 || h != 30 {
		t.Errorf("无缩放时区域不应变化: (%d,%d,%d,%d)", x, y, w, h)
	}
}

func TestImageToBase64(t *testing.T) {
	img := makeTestImage(10, 10)

	s, err := ImageToBase64(img, "png", 0)
	if err != nil {
		t.Fatalf("PNG 编码失败: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/png;base64,") {
		t.Errorf("PNG Base64 前缀错误: %s", s[:30])
	}

	s, err = ImageToBase64(img, "", 0)
	if err != nil {
		t.Fatalf("默认编码失败: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/jpeg;base64,") {
		t.Errorf("默认应为 JPEG: %s", s[:30])
	}

	if _, err := ImageToBase64(img, "bmp", 0); err == nil {
		t.Error("不支持的格式应报错")
	}
	if _, err := ImageToBase64(nil, "png", 0); err == nil {
		t.Error("空图像应报错")
	}
}

func TestSaveAndLoadPNG(t *testing.T) {
	img := makeTestImage(20, 20)
	path := filepath.Join(t.TempDir(), "sub", "test.png")

	if err := SavePNG(img, path); err != nil {
		t.Fatalf("保存 PNG 失败: %v", err)
	}

	loaded, err := LoadPNG(path)
	if err != nil {
		t.Fatalf("加载 PNG 失败: %v", err)
	}

	if loaded.Bounds().Dx() != 20 || loaded.Bounds().Dy() != 20 {
		t.Errorf("加载后尺寸不一致: %v", loaded.Bounds())
	}
}

func TestAnnotate(t *testing.T) {
	img := makeTestImage(100, 100)

	annotated := Annotate(img, []Annotation{
		{X: 10, Y: 10, Width: 30, Height: 20, Label: "确定", Confidence: 0.95},
	})

	if annotated == nil {
		t.Fatal("标注结果不应为空")
	}

	// 边框像素应为红色
	r, g, b, _ := annotated.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("边框像素应为红色, 实际为 (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	// 原图不应被修改
	_, g2, _, _ := img.At(10, 10).RGBA()
	if g2>>8 != 10 {
		t.Error("原图不应被修改")
	}
}

func TestScaleInt(t *testing.T) {
	if ScaleInt(100, 1.5) != 150 {
		t.Error("ScaleInt(100, 1.5) 应为 150")
	}
	if ScaleInt(100, 0) != 100 {
		t.Error("非法缩放因子应返回原值")
	}
	if ScaleInt(3, 0.5) != 2 {
		t.Error("ScaleInt(3, 0.5) 应四舍五入为 2")
	}
}
