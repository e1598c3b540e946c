package auto

import (
	"errors"
	"time"
)

// DefaultPollInterval 默认轮询间隔
const DefaultPollInterval = 500 * time.Millisecond

// Probe 表示一次同步的"截图 + 判定"尝试。
// 返回 (nil, nil) 表示本轮未命中；返回错误视为瞬时失败，会被记录并继续重试。
type Probe[T any] func() (*T, error)

// Poll 在 timeout 时间内以固定间隔 interval 反复执行 probe，
// 返回第一个命中结果。
//
// 约定：
//   - timeout <= 0 时只执行一次 probe，不做任何等待；
//   - probe 命中后立即返回，不再等待；
//   - probe 报错不会中止等待，错误被记录；到达截止时间后，
//     若存在已记录的错误则返回最后一个，否则返回 notFound()；
//   - ConfigError 不属于瞬时失败，立即返回，不重试；
//   - interval 固定不变，不随失败退避；
//   - 等待过程只能通过截止时间退出，没有内部取消信号，
//     需要提前退出的调用方应在外层自行处理。
func Poll[T any](timeout, interval time.Duration, probe Probe[T], notFound func() error) (*T, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	deadline := time.Now().Add(timeout)
	var lastErr error

	for {
		result, err := probe()
		if err != nil {
			// 配置错误没有恢复的可能，重试没有意义
			var ce *ConfigError
			if errors.As(err, &ce) {
				return nil, err
			}
			lastErr = err
		} else if result != nil {
			return result, nil
		}

		if timeout <= 0 || !time.Now().Before(deadline) {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, notFound()
		}

		time.Sleep(interval)
	}
}
