package auto

import (
	"image"
	"image/color"
	"testing"

	"github.com/zoeyai/kronsteen/pkg/config"
	"github.com/zoeyai/kronsteen/pkg/screen"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		input   string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8800", 255, 136, 0, false},
		{"ff8800", 255, 136, 0, false},
		{" #00ff00 ", 0, 255, 0, false},
		// 三位简写按位展开
		{"#F80", 255, 136, 0, false},
		{"fff", 255, 255, 255, false},
		{"#GGGGGG", 0, 0, 0, true},
		{"#FF88", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, c := range cases {
		r, g, b, err := parseHexColor(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseHexColor(%q) 应报错", c.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexColor(%q) 报错: %v", c.input, err)
			continue
		}
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d)", c.input, r, g, b)
		}
	}
}

// stubColorCapture 替换截屏为带一个红色像素的图像
func stubColorCapture(t *testing.T) {
	t.Helper()
	orig := captureForMatch
	captureForMatch = func(rect *image.Rectangle) (image.Image, screen.CaptureMeta, error) {
		img := image.NewRGBA(image.Rect(0, 0, 50, 50))
		for y := 0; y < 50; y++ {
			for x := 0; x < 50; x++ {
				img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
			}
		}
		img.Set(5, 7, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		return img, screen.CaptureMeta{ScaleX: 1, ScaleY: 1}, nil
	}
	t.Cleanup(func() { captureForMatch = orig })
}

func TestFindColor(t *testing.T) {
	stubColorCapture(t)

	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	match, err := c.FindColor("#FF0000", WithTimeout(0))
	if err != nil {
		t.Fatalf("查找失败: %v", err)
	}

	if match.Region.Left != 5 || match.Region.Top != 7 {
		t.Errorf("命中位置应为 (5,7), 实际为 %s", match.Region)
	}
	if match.Region.Width != 1 || match.Region.Height != 1 {
		t.Errorf("颜色匹配区域应为 1x1, 实际为 %s", match.Region)
	}
	if match.ColorHex != "#FF0000" {
		t.Errorf("颜色值应归一为大写带井号: %s", match.ColorHex)
	}
}

func TestFindColorShortHex(t *testing.T) {
	stubColorCapture(t)

	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	match, err := c.FindColor("#F00", WithTimeout(0))
	if err != nil {
		t.Fatalf("三位简写应可命中: %v", err)
	}
	if match.Region.Left != 5 || match.Region.Top != 7 {
		t.Errorf("命中位置应为 (5,7), 实际为 %s", match.Region)
	}
	if match.ColorHex != "#FF0000" {
		t.Errorf("简写应归一为六位: %s", match.ColorHex)
	}
}

func TestFindColorNotFound(t *testing.T) {
	stubColorCapture(t)

	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	_, err := c.FindColor("#00FF00", WithTimeout(0))
	if err == nil {
		t.Fatal("不存在的颜色应报错")
	}
	if !IsNotFound(err) {
		t.Errorf("错误类型应为 NotFoundError: %v", err)
	}
}

func TestFindColorWithTolerance(t *testing.T) {
	stubColorCapture(t)

	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	// 背景色为 (30,30,30)，容差 40 内可命中 (0,0,0) 查询
	match, err := c.FindColor("#000000", WithTimeout(0), WithColorTolerance(40))
	if err != nil {
		t.Fatalf("容差内应命中: %v", err)
	}
	if match.Region.Left != 0 || match.Region.Top != 0 {
		t.Errorf("应命中第一个像素, 实际为 %s", match.Region)
	}

	// 容差 10 不足以命中
	if _, err := c.FindColor("#000000", WithTimeout(0), WithColorTolerance(10)); err == nil {
		t.Error("容差不足时不应命中")
	}
}

func TestFindColorInvalidHex(t *testing.T) {
	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	if _, err := c.FindColor("red", WithTimeout(0)); err == nil {
		t.Error("无效颜色值应报错")
	}
}
