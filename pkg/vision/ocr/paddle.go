package ocr

import (
	"fmt"
	"image"
	"sync"
	"time"

	goocr "github.com/getcharzp/go-ocr"

	"github.com/zoeyai/kronsteen/internal/logger"
)

// paddleEngine 基于 go-ocr (PaddleOCR ONNX) 的识别引擎
type paddleEngine struct {
	engine goocr.Engine
	mu     sync.Mutex
}

func newPaddleEngine(config Config) (Engine, error) {
	ocrConfig := goocr.Config{
		OnnxRuntimeLibPath: config.OnnxRuntimeLibPath,
		DetModelPath:       config.DetModelPath,
		RecModelPath:       config.RecModelPath,
		DictPath:           config.DictPath,
	}

	engine, err := goocr.NewPaddleOcrEngine(ocrConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 PaddleOCR 引擎失败: %w", err)
	}

	logger.Info("PaddleOCR 引擎初始化成功")

	return &paddleEngine{engine: engine}, nil
}

// Recognize 识别图像中的所有文字
func (p *paddleEngine) Recognize(img image.Image) ([]Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine == nil {
		return nil, fmt.Errorf("OCR 引擎已关闭")
	}

	startTime := time.Now()

	raw, err := p.engine.RunOCR(img)
	if err != nil {
		elapsed := float64(time.Since(startTime).Milliseconds())
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("OCR 识别失败: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, r := range raw {
		// go-ocr RecResult: Box [4]int{x1, y1, x2, y2}, Text string, Score float32
		results = append(results, Result{
			Text:       r.Text,
			Confidence: float64(r.Score),
			Box:        image.Rect(r.Box[0], r.Box[1], r.Box[2], r.Box[3]),
		})
	}

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个文本", len(results)))

	return results, nil
}

// Close 释放资源
func (p *paddleEngine) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine != nil {
		p.engine.Destroy()
		p.engine = nil
	}
	return nil
}
