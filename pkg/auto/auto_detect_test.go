package auto

import (
	"errors"
	"testing"
	"time"

	"github.com/zoeyai/kronsteen/pkg/config"
)

func TestFindObjectWithoutDetectorFailsFast(t *testing.T) {
	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	start := time.Now()
	_, err := c.FindObject("button", WithTimeout(3*time.Second))
	elapsed := time.Since(start)

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("缺少检测器应返回配置错误, 实际为 %v", err)
	}
	if ce.Component != "detect" {
		t.Errorf("错误组件应为 detect, 实际为 %s", ce.Component)
	}
	// 配置错误不应等到超时才返回
	if elapsed > 500*time.Millisecond {
		t.Errorf("配置错误应立即返回, 耗时 %s", elapsed)
	}
}

func TestClickObjectWithoutDetectorFailsFast(t *testing.T) {
	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	start := time.Now()
	err := c.ClickObject("button", WithTimeout(3*time.Second))

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("缺少检测器应返回配置错误, 实际为 %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("配置错误应立即返回, 耗时 %s", elapsed)
	}
}

func TestFindAllObjectsWithoutDetector(t *testing.T) {
	c := New(WithSettings(config.DefaultSettings()))
	defer c.Close()

	_, err := c.FindAllObjects("", WithTimeout(0))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("缺少检测器应返回配置错误, 实际为 %v", err)
	}
}
