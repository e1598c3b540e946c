package auto

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPollFoundImmediately(t *testing.T) {
	calls := 0
	result, err := Poll(time.Second, 10*time.Millisecond,
		func() (*int, error) {
			calls++
			v := 42
			return &v, nil
		},
		func() error { return fmt.Errorf("未找到") })

	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if *result != 42 {
		t.Errorf("结果应为 42, 实际为 %d", *result)
	}
	if calls != 1 {
		t.Errorf("找到后不应继续探测, 实际探测 %d 次", calls)
	}
}

func TestPollZeroTimeoutSingleProbe(t *testing.T) {
	calls := 0
	start := time.Now()

	_, err := Poll(0, 500*time.Millisecond,
		func() (*int, error) {
			calls++
			return nil, nil
		},
		func() error { return fmt.Errorf("未找到") })

	if err == nil {
		t.Fatal("未找到时应报错")
	}
	if calls != 1 {
		t.Errorf("超时 <= 0 应只探测一次, 实际 %d 次", calls)
	}
	// 单次探测不应等待轮询间隔
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("单次探测不应休眠, 耗时 %s", elapsed)
	}
}

func TestPollTimeout(t *testing.T) {
	timeout := 100 * time.Millisecond
	interval := 20 * time.Millisecond
	start := time.Now()

	_, err := Poll(timeout, interval,
		func() (*int, error) { return nil, nil },
		func() error { return fmt.Errorf("等待超时") })

	if err == nil {
		t.Fatal("超时应报错")
	}

	elapsed := time.Since(start)
	if elapsed < timeout {
		t.Errorf("不应在超时前返回, 耗时 %s", elapsed)
	}
	if elapsed > timeout+interval+50*time.Millisecond {
		t.Errorf("超时后应尽快返回, 耗时 %s", elapsed)
	}
}

func TestPollLastErrorWins(t *testing.T) {
	probeErr := errors.New("截屏失败")

	_, err := Poll(50*time.Millisecond, 10*time.Millisecond,
		func() (*int, error) { return nil, probeErr },
		func() error { return fmt.Errorf("未找到") })

	if !errors.Is(err, probeErr) {
		t.Errorf("应返回最后一次探测错误, 实际为 %v", err)
	}
}

func TestPollRecoversAfterError(t *testing.T) {
	calls := 0
	result, err := Poll(time.Second, 10*time.Millisecond,
		func() (*int, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("瞬时错误")
			}
			v := 7
			return &v, nil
		},
		func() error { return fmt.Errorf("未找到") })

	if err != nil {
		t.Fatalf("恢复后不应报错: %v", err)
	}
	if *result != 7 {
		t.Errorf("结果应为 7, 实际为 %d", *result)
	}
}

func TestPollConfigErrorNotRetried(t *testing.T) {
	calls := 0
	configErr := &ConfigError{Component: "ocr", Reason: "初始化 OCR 引擎失败"}
	start := time.Now()

	_, err := Poll(3*time.Second, 10*time.Millisecond,
		func() (*int, error) {
			calls++
			return nil, configErr
		},
		func() error { return fmt.Errorf("未找到") })

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("应返回配置错误, 实际为 %v", err)
	}
	if calls != 1 {
		t.Errorf("配置错误不应重试, 实际探测 %d 次", calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("配置错误应立即返回, 耗时 %s", elapsed)
	}
}

func TestPollDefaultInterval(t *testing.T) {
	// interval <= 0 时回退到默认间隔，不会忙等
	calls := 0

	Poll(50*time.Millisecond, 0,
		func() (*int, error) {
			calls++
			return nil, nil
		},
		func() error { return fmt.Errorf("未找到") })

	if calls > 2 {
		t.Errorf("默认间隔下 50ms 内不应探测 %d 次", calls)
	}
}
