package auto

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// FindColor 在屏幕上查找指定颜色的像素，在超时时间内轮询直到找到。
// colorHex 形如 "#FF8800" 或 "FF8800"。匹配结果的 Region 为 1x1 像素。
func (c *Client) FindColor(colorHex string, opts ...Option) (*ColorMatch, error) {
	o := c.applyOptions(opts...)

	r, g, b, err := parseHexColor(colorHex)
	if err != nil {
		return nil, err
	}

	var match *ColorMatch
	runErr := c.run(Action{Name: "find_color", Detail: colorHex}, func() error {
		m, err := Poll(o.Timeout, o.Interval,
			func() (*ColorMatch, error) { return c.probeColor(colorHex, r, g, b, o) },
			func() error {
				return &NotFoundError{Kind: KindColor, Query: colorHex, Timeout: o.Timeout}
			})
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}
	return match, nil
}

// ColorExists 检查颜色当前是否在屏幕上（单次探测，不等待）
func (c *Client) ColorExists(colorHex string, opts ...Option) bool {
	opts = append(opts, WithTimeout(0))
	match, _ := c.FindColor(colorHex, opts...)
	return match != nil
}

// ClickColor 查找并点击指定颜色的像素
func (c *Client) ClickColor(colorHex string, opts ...Option) error {
	o := c.applyOptions(opts...)

	r, g, b, err := parseHexColor(colorHex)
	if err != nil {
		return err
	}

	return c.run(Action{Name: "click_color", Detail: colorHex}, func() error {
		match, err := Poll(o.Timeout, o.Interval,
			func() (*ColorMatch, error) { return c.probeColor(colorHex, r, g, b, o) },
			func() error {
				return &NotFoundError{Kind: KindColor, Query: colorHex, Timeout: o.Timeout}
			})
		if err != nil {
			return err
		}

		center := match.Region.Center()
		return c.clickAt(center.X+o.ClickOffset.X, center.Y+o.ClickOffset.Y, o)
	})
}

// probeColor 单次截图扫描像素，按行优先返回第一个满足容差的像素
func (c *Client) probeColor(colorHex string, r, g, b uint8, o *Options) (*ColorMatch, error) {
	img, meta, err := c.capture(o)
	if err != nil {
		return nil, err
	}

	tolerance := o.ColorTolerance
	bounds := img.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			if colorClose(uint8(pr>>8), r, tolerance) &&
				colorClose(uint8(pg>>8), g, tolerance) &&
				colorClose(uint8(pb>>8), b, tolerance) {
				px, py := meta.AdjustPoint(x-bounds.Min.X, y-bounds.Min.Y)
				return &ColorMatch{
					ColorHex: normalizeHex(colorHex),
					Region:   NewRegion(px, py, 1, 1),
				}, nil
			}
		}
	}
	return nil, nil
}

// GetPixelColor 获取屏幕指定位置的颜色，返回 "#RRGGBB"
func (c *Client) GetPixelColor(x, y int) (string, error) {
	img, err := c.captureRegionAt(x, y)
	if err != nil {
		return "", err
	}
	r, g, b, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8)), nil
}

func (c *Client) captureRegionAt(x, y int) (image.Image, error) {
	o := &Options{}
	r := NewRegion(x, y, 1, 1)
	o.Region = &r
	img, _, err := c.capture(o)
	return img, err
}

func colorClose(a, b uint8, tolerance int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// parseHexColor 解析 "#RRGGBB" 或 "RRGGBB"，
// 三位简写 "#RGB" 按位展开为 "#RRGGBB"
func parseHexColor(s string) (r, g, b uint8, err error) {
	hex := expandHex(s)
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("无效的颜色值: %s", s)
	}

	v, parseErr := strconv.ParseUint(hex, 16, 32)
	if parseErr != nil {
		return 0, 0, 0, fmt.Errorf("无效的颜色值: %s", s)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// expandHex 去掉前缀 "#" 并把三位简写展开为六位
func expandHex(s string) string {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		return string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return hex
}

func normalizeHex(s string) string {
	return "#" + strings.ToUpper(expandHex(s))
}
