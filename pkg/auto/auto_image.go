package auto

import (
	"path/filepath"

	"github.com/zoeyai/kronsteen/pkg/vision/cv"
)

// FindTemplate 在屏幕上查找模板图像，在超时时间内轮询直到相似度达到阈值。
// Timeout <= 0 时只探测一次。
// 模板加载失败属于配置错误，进入轮询前立即返回，不参与重试。
func (c *Client) FindTemplate(templatePath string, opts ...Option) (*ImageMatch, error) {
	o := c.applyOptions(opts...)

	var match *ImageMatch
	err := c.run(Action{Name: "find_template", Detail: filepath.Base(templatePath)}, func() error {
		template, err := c.loadTemplate(templatePath)
		if err != nil {
			return err
		}

		m, err := Poll(o.Timeout, o.Interval,
			func() (*ImageMatch, error) { return c.probeTemplate(template, templatePath, o) },
			func() error {
				return &NotFoundError{Kind: KindImage, Query: templatePath, Timeout: o.Timeout}
			})
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

// WaitForTemplate 等待模板图像出现，等同于 FindTemplate
func (c *Client) WaitForTemplate(templatePath string, opts ...Option) (*ImageMatch, error) {
	return c.FindTemplate(templatePath, opts...)
}

// TemplateExists 检查模板当前是否在屏幕上（单次探测，不等待）
func (c *Client) TemplateExists(templatePath string, opts ...Option) bool {
	opts = append(opts, WithTimeout(0))
	match, _ := c.FindTemplate(templatePath, opts...)
	return match != nil
}

// FindAllTemplates 查找当前屏幕上模板的所有匹配位置（单次截图，按相似度降序）
func (c *Client) FindAllTemplates(templatePath string, opts ...Option) ([]ImageMatch, error) {
	o := c.applyOptions(opts...)

	var matches []ImageMatch
	err := c.run(Action{Name: "find_all_templates", Detail: filepath.Base(templatePath)}, func() error {
		template, err := c.loadTemplate(templatePath)
		if err != nil {
			return err
		}

		img, meta, err := c.capture(o)
		if err != nil {
			return err
		}

		results, err := template.FindAllIn(img, o.Threshold, o.Grayscale)
		if err != nil {
			return err
		}

		for _, r := range results {
			matches = append(matches, ImageMatch{
				TemplatePath: templatePath,
				Confidence:   r.Confidence,
				Region:       regionFromMeta(meta, r.Bounds),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ClickTemplate 查找并点击模板图像
func (c *Client) ClickTemplate(templatePath string, opts ...Option) error {
	o := c.applyOptions(opts...)

	return c.run(Action{Name: "click_template", Detail: filepath.Base(templatePath)}, func() error {
		template, err := c.loadTemplate(templatePath)
		if err != nil {
			return err
		}

		match, err := Poll(o.Timeout, o.Interval,
			func() (*ImageMatch, error) { return c.probeTemplate(template, templatePath, o) },
			func() error {
				return &NotFoundError{Kind: KindImage, Query: templatePath, Timeout: o.Timeout}
			})
		if err != nil {
			return err
		}

		center := match.Region.Center()
		return c.clickAt(center.X+o.ClickOffset.X, center.Y+o.ClickOffset.Y, o)
	})
}

// probeTemplate 单次截图查找模板最佳匹配
func (c *Client) probeTemplate(template *cv.Template, templatePath string, o *Options) (*ImageMatch, error) {
	img, meta, err := c.capture(o)
	if err != nil {
		return nil, err
	}

	result, err := template.FindIn(img, o.Threshold, o.Grayscale)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	return &ImageMatch{
		TemplatePath: templatePath,
		Confidence:   result.Confidence,
		Region:       regionFromMeta(meta, result.Bounds),
	}, nil
}
