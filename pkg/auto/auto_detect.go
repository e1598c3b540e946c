package auto

// ObjectMatch 目标检测匹配结果
type ObjectMatch struct {
	// ClassName 检测到的元素类别
	ClassName string `json:"class_name"`
	// Confidence 检测置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Region 检测框（屏幕坐标）
	Region Region `json:"region"`
}

// FindObject 用目标检测模型查找界面元素，在超时时间内轮询直到找到。
// 需要在构造客户端时通过 WithDetector 注入检测器，
// 缺少检测器属于配置错误，进入轮询前立即返回，不参与重试。
func (c *Client) FindObject(className string, opts ...Option) (*ObjectMatch, error) {
	o := c.applyOptions(opts...)

	var match *ObjectMatch
	err := c.run(Action{Name: "find_object", Detail: className}, func() error {
		if err := c.requireDetector(); err != nil {
			return err
		}

		m, err := Poll(o.Timeout, o.Interval,
			func() (*ObjectMatch, error) { return c.probeObject(className, o) },
			func() error {
				return &NotFoundError{Kind: KindObject, Query: className, Timeout: o.Timeout}
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

// WaitForObject 等待界面元素出现，等同于 FindObject
func (c *Client) WaitForObject(className string, opts ...Option) (*ObjectMatch, error) {
	return c.FindObject(className, opts...)
}

// FindAllObjects 检测当前屏幕上指定类别的所有元素（单次截图）。
// className 为空时返回所有类别的检测结果。
func (c *Client) FindAllObjects(className string, opts ...Option) ([]ObjectMatch, error) {
	o := c.applyOptions(opts...)

	var matches []ObjectMatch
	err := c.run(Action{Name: "find_all_objects", Detail: className}, func() error {
		if err := c.requireDetector(); err != nil {
			return err
		}

		found, err := c.probeAllObjects(className, o)
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

// ClickObject 查找并点击界面元素
func (c *Client) ClickObject(className string, opts ...Option) error {
	o := c.applyOptions(opts...)

	return c.run(Action{Name: "click_object", Detail: className}, func() error {
		if err := c.requireDetector(); err != nil {
			return err
		}

		match, err := Poll(o.Timeout, o.Interval,
			func() (*ObjectMatch, error) { return c.probeObject(className, o) },
			func() error {
				return &NotFoundError{Kind: KindObject, Query: className, Timeout: o.Timeout}
			})
		if err != nil {
			return err
		}

		center := match.Region.Center()
		return c.clickAt(center.X+o.ClickOffset.X, center.Y+o.ClickOffset.Y, o)
	})
}

// probeObject 单次截图检测，返回置信度最高的匹配
func (c *Client) probeObject(className string, o *Options) (*ObjectMatch, error) {
	matches, err := c.probeAllObjects(className, o)
	if err != nil {
		return nil, err
	}

	var best *ObjectMatch
	for i := range matches {
		if best == nil || matches[i].Confidence > best.Confidence {
			best = &matches[i]
		}
	}
	return best, nil
}

// requireDetector 检查检测器是否已注入，在进入轮询前调用
func (c *Client) requireDetector() error {
	if c.detector == nil {
		return &ConfigError{Component: "detect", Reason: "未注入目标检测器"}
	}
	return nil
}

// probeAllObjects 单次截图检测所有匹配元素，调用方需保证检测器已注入
func (c *Client) probeAllObjects(className string, o *Options) ([]ObjectMatch, error) {
	img, meta, err := c.capture(o)
	if err != nil {
		return nil, err
	}

	detections, err := c.detector.Detect(img, o.Threshold)
	if err != nil {
		return nil, err
	}

	var matches []ObjectMatch
	for _, d := range detections {
		if className != "" && d.ClassName != className {
			continue
		}
		matches = append(matches, ObjectMatch{
			ClassName:  d.ClassName,
			Confidence: d.Confidence,
			Region:     regionFromMeta(meta, d.Bounds),
		})
	}
	return matches, nil
}
