package auto

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode 文字匹配模式（封闭集合，不提供模糊匹配）
type MatchMode string

const (
	// MatchContains 包含匹配（默认）
	MatchContains MatchMode = "contains"
	// MatchEquals 完全相等
	MatchEquals MatchMode = "equals"
	// MatchStartsWith 前缀匹配
	MatchStartsWith MatchMode = "starts-with"
	// MatchRegex 正则匹配
	MatchRegex MatchMode = "regex"
)

// ParseMatchMode 解析匹配模式字符串
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case MatchContains, MatchEquals, MatchStartsWith, MatchRegex:
		return MatchMode(s), nil
	}
	return "", fmt.Errorf("不支持的匹配模式: %q (可选: contains, equals, starts-with, regex)", s)
}

// TextMatch OCR 文字匹配结果
type TextMatch struct {
	// Text 识别到的文字内容
	Text string `json:"text"`
	// Confidence 识别置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Region 文字所在区域
	Region Region `json:"region"`
}

// ImageMatch 模板图像匹配结果
type ImageMatch struct {
	// TemplatePath 模板文件路径
	TemplatePath string `json:"template_path"`
	// Confidence 匹配置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Region 匹配区域
	Region Region `json:"region"`
}

// ColorMatch 颜色匹配结果
type ColorMatch struct {
	// ColorHex 十六进制颜色值 (如 "#ff0000")
	ColorHex string `json:"color_hex"`
	// Region 命中像素所在区域 (1x1)
	Region Region `json:"region"`
}

// matchText 按指定模式比较候选文字与查询串
func matchText(query, candidate string, mode MatchMode, caseSensitive bool) (bool, error) {
	left := candidate
	right := query
	if !caseSensitive {
		left = strings.ToLower(candidate)
		right = strings.ToLower(query)
	}

	switch mode {
	case MatchEquals:
		return left == right, nil
	case MatchContains, "":
		return strings.Contains(left, right), nil
	case MatchStartsWith:
		return strings.HasPrefix(left, right), nil
	case MatchRegex:
		pattern := query
		if !caseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("无效的正则表达式 %q: %w", query, err)
		}
		return re.MatchString(candidate), nil
	}
	return false, fmt.Errorf("不支持的匹配模式: %q", mode)
}
