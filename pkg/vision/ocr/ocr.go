// Package ocr 提供屏幕文字识别功能，支持 PaddleOCR 和 Tesseract 两种引擎。
//
// 引擎在构造时选定，运行时不做可用性分支判断：
//
//	engine, err := ocr.NewEngine(ocr.EnginePaddle, ocr.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	results, err := engine.Recognize(img)
//	for _, r := range results {
//	    fmt.Printf("文字: %s, 置信度: %.2f\n", r.Text, r.Confidence)
//	}
package ocr

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// EngineKind OCR 引擎类型
type EngineKind int

const (
	// EnginePaddle PaddleOCR (ONNX Runtime)，对中文效果好
	EnginePaddle EngineKind = iota
	// EngineTesseract Tesseract，需要系统安装 libtesseract
	EngineTesseract
)

func (k EngineKind) String() string {
	switch k {
	case EnginePaddle:
		return "paddle"
	case EngineTesseract:
		return "tesseract"
	default:
		return "unknown"
	}
}

// ParseEngineKind 解析引擎名称
func ParseEngineKind(s string) (EngineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paddle", "paddleocr", "":
		return EnginePaddle, nil
	case "tesseract", "tess":
		return EngineTesseract, nil
	default:
		return EnginePaddle, fmt.Errorf("未知的 OCR 引擎: %s", s)
	}
}

// Result 单条 OCR 识别结果
type Result struct {
	// Text 识别的文字内容
	Text string `json:"text"`
	// Confidence 识别置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Box 文字边界框（截图像素坐标）
	Box image.Rectangle `json:"box"`
}

// Center 返回边界框中心点
func (r Result) Center() image.Point {
	return image.Point{
		X: (r.Box.Min.X + r.Box.Max.X) / 2,
		Y: (r.Box.Min.Y + r.Box.Max.Y) / 2,
	}
}

// Engine OCR 引擎
type Engine interface {
	// Recognize 识别图像中的所有文字
	Recognize(img image.Image) ([]Result, error)
	// Close 释放引擎资源
	Close() error
}

// NewEngine 根据引擎类型构造 OCR 引擎。
// 依赖缺失（模型文件、动态库）在此处报错，之后的调用不再检查。
func NewEngine(kind EngineKind, config Config) (Engine, error) {
	switch kind {
	case EnginePaddle:
		return newPaddleEngine(config)
	case EngineTesseract:
		return newTesseractEngine(config)
	default:
		return nil, fmt.Errorf("未知的 OCR 引擎类型: %d", kind)
	}
}

// IsAvailable 检查指定引擎的依赖是否就绪
func IsAvailable(kind EngineKind) bool {
	switch kind {
	case EnginePaddle:
		config := DefaultConfig()
		return fileExists(config.OnnxRuntimeLibPath) &&
			fileExists(config.DetModelPath) &&
			fileExists(config.RecModelPath) &&
			fileExists(config.DictPath)
	case EngineTesseract:
		return tesseractAvailable()
	default:
		return false
	}
}

// AllText 拼接识别结果中的所有文字
func AllText(results []Result) string {
	var texts []string
	for _, r := range results {
		if r.Text != "" {
			texts = append(texts, r.Text)
		}
	}
	return strings.Join(texts, " ")
}
