package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.DefaultTimeout != 5.0 {
		t.Errorf("默认超时应为 5.0, 实际为 %v", settings.DefaultTimeout)
	}
	if settings.RetryInterval != 0.5 {
		t.Errorf("默认轮询间隔应为 0.5, 实际为 %v", settings.RetryInterval)
	}
	if settings.MinConfidence != 0.5 {
		t.Errorf("默认置信度应为 0.5, 实际为 %v", settings.MinConfidence)
	}
	if settings.Threshold != 0.8 {
		t.Errorf("默认阈值应为 0.8, 实际为 %v", settings.Threshold)
	}
	if settings.OCREngine != "paddle" {
		t.Errorf("默认 OCR 引擎应为 paddle, 实际为 %s", settings.OCREngine)
	}

	t.Logf("默认配置: %+v", settings)
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	settings := &Settings{
		DefaultTimeout: 10.0,
		RetryInterval:  1.0,
		MinConfidence:  0.7,
		Threshold:      0.9,
		OCREngine:      "tesseract",
		ScreenshotDir:  filepath.Join(tempDir, "shots"),
	}

	if err := manager.Save(settings); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if loaded.DefaultTimeout != settings.DefaultTimeout {
		t.Errorf("DefaultTimeout 不一致: %v != %v", loaded.DefaultTimeout, settings.DefaultTimeout)
	}
	if loaded.OCREngine != settings.OCREngine {
		t.Errorf("OCREngine 不一致: %s != %s", loaded.OCREngine, settings.OCREngine)
	}
	if loaded.Threshold != settings.Threshold {
		t.Errorf("Threshold 不一致: %v != %v", loaded.Threshold, settings.Threshold)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	settings, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}

	if settings.DefaultTimeout != 5.0 {
		t.Errorf("应返回默认配置, DefaultTimeout 实际为 %v", settings.DefaultTimeout)
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	err := os.WriteFile(manager.GetConfigFile(), []byte("not valid json{"), 0600)
	if err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	settings, err := manager.Load()
	if err == nil {
		t.Error("损坏的配置文件应返回错误")
	}
	if settings == nil || settings.DefaultTimeout != 5.0 {
		t.Error("损坏时应回退到默认配置")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KRONSTEEN_DEFAULT_TIMEOUT", "12.5")
	t.Setenv("KRONSTEEN_OCR_ENGINE", "tesseract")
	t.Setenv("KRONSTEEN_DEFAULT_CONFIDENCE", "0.9")

	settings := DefaultSettings()
	settings.ApplyEnv()

	if settings.DefaultTimeout != 12.5 {
		t.Errorf("环境变量超时未生效: %v", settings.DefaultTimeout)
	}
	if settings.OCREngine != "tesseract" {
		t.Errorf("环境变量 OCR 引擎未生效: %s", settings.OCREngine)
	}
	if settings.MinConfidence != 0.9 {
		t.Errorf("环境变量置信度未生效: %v", settings.MinConfidence)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("KRONSTEEN_DEFAULT_TIMEOUT", "abc")
	t.Setenv("KRONSTEEN_DEFAULT_CONFIDENCE", "1.5")

	settings := DefaultSettings()
	settings.ApplyEnv()

	if settings.DefaultTimeout != 5.0 {
		t.Errorf("非法超时值不应生效: %v", settings.DefaultTimeout)
	}
	if settings.MinConfidence != 0.5 {
		t.Errorf("越界置信度不应生效: %v", settings.MinConfidence)
	}
}

func TestClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := manager.Save(DefaultSettings()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 重复清除不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("重复清除不应报错: %v", err)
	}
}
