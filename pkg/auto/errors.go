package auto

import (
	"errors"
	"fmt"
	"time"
)

// 查找目标类别，用于 NotFoundError 的错误信息
const (
	KindText   = "文字"
	KindImage  = "图像"
	KindColor  = "颜色"
	KindObject = "目标"
	KindWindow = "窗口"
)

// NotFoundError 表示在超时时间内未找到目标。
// 错误信息始终包含未命中的查询条件和等待时长。
type NotFoundError struct {
	// Kind 目标类别 (KindText, KindImage, ...)
	Kind string
	// Query 查询条件（查询文字、模板路径或颜色值）
	Query string
	// Timeout 等待的超时时间
	Timeout time.Duration
}

func (e *NotFoundError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("未找到%s: %q (等待 %s)", e.Kind, e.Query, e.Timeout)
	}
	return fmt.Sprintf("未找到%s: %q", e.Kind, e.Query)
}

// ConfigError 表示请求的引擎/后端不可用或配置错误。
// 在构造阶段立即返回，不参与重试。
type ConfigError struct {
	Component string
	Reason    string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 配置错误: %s: %v", e.Component, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s 配置错误: %s", e.Component, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsNotFound 判断错误是否为未找到类错误
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
