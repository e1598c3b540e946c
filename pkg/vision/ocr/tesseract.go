package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/zoeyai/kronsteen/internal/logger"
)

// tesseractEngine 基于 gosseract (libtesseract) 的识别引擎
type tesseractEngine struct {
	client *gosseract.Client
	mu     sync.Mutex
}

func newTesseractEngine(config Config) (Engine, error) {
	client := gosseract.NewClient()

	langs := config.Languages
	if len(langs) == 0 {
		langs = []string{"chi_sim", "eng"}
	}
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("设置 Tesseract 语言失败 (%s): %w", strings.Join(langs, "+"), err)
	}

	logger.Info("Tesseract 引擎初始化成功 (语言: %s)", strings.Join(langs, "+"))

	return &tesseractEngine{client: client}, nil
}

// Recognize 识别图像中的所有文字，按单词返回边界框
func (t *tesseractEngine) Recognize(img image.Image) ([]Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == nil {
		return nil, fmt.Errorf("OCR 引擎已关闭")
	}

	startTime := time.Now()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码图像失败: %w", err)
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("设置识别图像失败: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		elapsed := float64(time.Since(startTime).Milliseconds())
		logger.LogEvent("OCR", false, elapsed, "识别失败")
		return nil, fmt.Errorf("OCR 识别失败: %w", err)
	}

	results := make([]Result, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		results = append(results, Result{
			Text: word,
			// gosseract 置信度为 0-100，统一归一到 0-1
			Confidence: b.Confidence / 100.0,
			Box:        b.Box,
		})
	}

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("OCR", true, elapsed, fmt.Sprintf("识别到 %d 个文本", len(results)))

	return results, nil
}

// Close 释放资源
func (t *tesseractEngine) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client != nil {
		err := t.client.Close()
		t.client = nil
		return err
	}
	return nil
}

// tesseractAvailable 检查 libtesseract 是否就绪
func tesseractAvailable() bool {
	langs, err := gosseract.GetAvailableLanguages()
	return err == nil && len(langs) > 0
}
