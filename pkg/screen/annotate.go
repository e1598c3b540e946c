package screen

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Annotation 调试截图上的一个标注框
type Annotation struct {
	X, Y, Width, Height int
	Label               string
	Confidence          float64
}

var annotateFont *truetype.Font

// loadAnnotateFont 加载标注字体，优先使用支持中文的系统字体
func loadAnnotateFont() *truetype.Font {
	if annotateFont != nil {
		return annotateFont
	}

	fontPaths := []string{
		// macOS
		"/System/Library/Fonts/STHeiti Medium.ttc",
		"/System/Library/Fonts/STHeiti Light.ttc",
		"/System/Library/Fonts/PingFang.ttc",
		"/Library/Fonts/Arial Unicode.ttf",
		// Windows
		"C:\\Windows\\Fonts\\msyh.ttc",
		"C:\\Windows\\Fonts\\simhei.ttf",
		// Linux
		"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	}

	for _, path := range fontPaths {
		fontBytes, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(fontBytes)
		if err != nil {
			continue
		}
		annotateFont = f
		return f
	}
	return nil
}

// Annotate 在截图副本上绘制标注框和标签，用于调试输出
func Annotate(img image.Image, annotations []Annotation) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	for _, a := range annotations {
		drawRect(rgba, a.X, a.Y, a.Width, a.Height, boxColor)
		if a.Label != "" {
			drawLabel(rgba, a.X, a.Y-18, a.Label, 14, boxColor)
		}
	}
	return rgba
}

// drawRect 绘制矩形边框，线宽 2 像素
func drawRect(img *image.RGBA, x, y, w, h int, col color.Color) {
	for t := 0; t < 2; t++ {
		for i := x; i <= x+w; i++ {
			setPixel(img, i, y+t, col)
			setPixel(img, i, y+h-t, col)
		}
		for j := y; j <= y+h; j++ {
			setPixel(img, x+t, j, col)
			setPixel(img, x+w-t, j, col)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}

// drawLabel 在图像上绘制文字标签
func drawLabel(img *image.RGBA, x, y int, text string, fontSize float64, col color.Color) {
	f := loadAnnotateFont()
	if f == nil {
		// 字体加载失败，回退到不绘制
		return
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(col))
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(x, y+int(c.PointToFixed(fontSize)>>6))
	c.DrawString(text, pt)
}
