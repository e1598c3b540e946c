package auto

import (
	"fmt"
	"strings"

	"github.com/zoeyai/kronsteen/pkg/vision/ocr"
)

// FindText 查找屏幕上的文字，在超时时间内轮询直到找到。
// Timeout <= 0 时只探测一次。
// OCR 引擎不可用属于配置错误，进入轮询前立即返回，不参与重试。
func (c *Client) FindText(text string, opts ...Option) (*TextMatch, error) {
	o := c.applyOptions(opts...)

	var match *TextMatch
	err := c.run(Action{Name: "find_text", Detail: text}, func() error {
		engine, err := c.ensureOCR()
		if err != nil {
			return err
		}

		m, err := Poll(o.Timeout, o.Interval,
			func() (*TextMatch, error) { return c.probeText(engine, text, o) },
			func() error { return &NotFoundError{Kind: KindText, Query: text, Timeout: o.Timeout} })
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// WaitForText 等待文字出现，等同于 FindText 但显式传入超时
func (c *Client) WaitForText(text string, opts ...Option) (*TextMatch, error) {
	return c.FindText(text, opts...)
}

// WaitForTextGone 等待文字从屏幕上消失
func (c *Client) WaitForTextGone(text string, opts ...Option) error {
	o := c.applyOptions(opts...)

	return c.run(Action{Name: "wait_text_gone", Detail: text}, func() error {
		engine, err := c.ensureOCR()
		if err != nil {
			return err
		}

		_, err = Poll(o.Timeout, o.Interval,
			func() (*struct{}, error) {
				m, err := c.probeText(engine, text, o)
				if err != nil {
					return nil, err
				}
				if m == nil {
					// 文字已消失
					return &struct{}{}, nil
				}
				return nil, nil
			},
			func() error { return fmt.Errorf("等待文字消失超时: %s (等待 %s)", text, o.Timeout) })
		return err
	})
}

// TextExists 检查文字当前是否在屏幕上（单次探测，不等待）
func (c *Client) TextExists(text string, opts ...Option) bool {
	opts = append(opts, WithTimeout(0))
	match, _ := c.FindText(text, opts...)
	return match != nil
}

// FindAllText 查找当前屏幕上所有匹配的文字（单次截图，不轮询）
func (c *Client) FindAllText(text string, opts ...Option) ([]TextMatch, error) {
	o := c.applyOptions(opts...)

	var matches []TextMatch
	err := c.run(Action{Name: "find_all_text", Detail: text}, func() error {
		engine, err := c.ensureOCR()
		if err != nil {
			return err
		}

		found, err := c.probeAllText(engine, text, o)
		if err != nil {
			return err
		}
		matches = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ClickText 查找并点击文字
func (c *Client) ClickText(text string, opts ...Option) error {
	o := c.applyOptions(opts...)

	return c.run(Action{Name: "click_text", Detail: text}, func() error {
		engine, err := c.ensureOCR()
		if err != nil {
			return err
		}

		match, err := Poll(o.Timeout, o.Interval,
			func() (*TextMatch, error) { return c.probeText(engine, text, o) },
			func() error { return &NotFoundError{Kind: KindText, Query: text, Timeout: o.Timeout} })
		if err != nil {
			return err
		}

		center := match.Region.Center()
		return c.clickAt(center.X+o.ClickOffset.X, center.Y+o.ClickOffset.Y, o)
	})
}

// ReadText 识别搜索区域内的所有文字并拼接返回
func (c *Client) ReadText(opts ...Option) (string, error) {
	o := c.applyOptions(opts...)

	var text string
	err := c.run(Action{Name: "read_text", Detail: regionDetail(o)}, func() error {
		engine, err := c.ensureOCR()
		if err != nil {
			return err
		}

		img, _, err := c.capture(o)
		if err != nil {
			return err
		}

		results, err := engine.Recognize(img)
		if err != nil {
			return err
		}

		var kept []string
		for _, r := range results {
			if r.Confidence >= o.MinConfidence && r.Text != "" {
				kept = append(kept, r.Text)
			}
		}
		text = strings.Join(kept, " ")
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// probeText 单次截图查找文字，返回第一个满足匹配模式和置信度阈值的结果
func (c *Client) probeText(engine ocr.Engine, query string, o *Options) (*TextMatch, error) {
	matches, err := c.probeAllText(engine, query, o)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// probeAllText 单次截图查找所有匹配文字
func (c *Client) probeAllText(engine ocr.Engine, query string, o *Options) ([]TextMatch, error) {
	img, meta, err := c.capture(o)
	if err != nil {
		return nil, err
	}

	results, err := engine.Recognize(img)
	if err != nil {
		return nil, fmt.Errorf("OCR 识别失败: %w", err)
	}

	var matches []TextMatch
	for _, r := range results {
		// 置信度低于阈值的结果直接丢弃，不参与匹配
		if r.Confidence < o.MinConfidence {
			continue
		}

		ok, err := matchText(query, r.Text, o.MatchMode, o.CaseSensitive)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		matches = append(matches, TextMatch{
			Text:       r.Text,
			Confidence: r.Confidence,
			Region:     regionFromMeta(meta, r.Box),
		})
	}
	return matches, nil
}

func regionDetail(o *Options) string {
	if o.Region == nil {
		return "全屏"
	}
	return o.Region.String()
}
