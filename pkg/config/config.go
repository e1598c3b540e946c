// Package config 提供自动化参数的配置管理
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Settings 自动化全局配置
type Settings struct {
	// DefaultTimeout 查找操作的默认超时（秒）
	DefaultTimeout float64 `json:"default_timeout"`
	// RetryInterval 轮询间隔（秒）
	RetryInterval float64 `json:"retry_interval"`
	// MinConfidence OCR 识别结果的最低置信度 (0-1)
	MinConfidence float64 `json:"min_confidence"`
	// Threshold 模板匹配的相似度阈值 (0-1)
	Threshold float64 `json:"threshold"`
	// OCREngine OCR 引擎: paddle / tesseract
	OCREngine string `json:"ocr_engine"`
	// ScreenshotDir 截图保存目录
	ScreenshotDir string `json:"screenshot_dir"`
	// LogDir 日志目录
	LogDir string `json:"log_dir"`
}

// DefaultSettings 默认配置
func DefaultSettings() *Settings {
	return &Settings{
		DefaultTimeout: 5.0,
		RetryInterval:  0.5,
		MinConfidence:  0.5,
		Threshold:      0.8,
		OCREngine:      "paddle",
		ScreenshotDir:  "",
		LogDir:         "",
	}
}

// Timeout 默认超时的 time.Duration 形式
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.DefaultTimeout * float64(time.Second))
}

// Interval 轮询间隔的 time.Duration 形式
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.RetryInterval * float64(time.Second))
}

// ApplyEnv 读取环境变量覆盖配置，环境变量优先于配置文件
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("KRONSTEEN_DEFAULT_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.DefaultTimeout = f
		}
	}
	if v := os.Getenv("KRONSTEEN_RETRY_INTERVAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.RetryInterval = f
		}
	}
	if v := os.Getenv("KRONSTEEN_DEFAULT_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			s.MinConfidence = f
		}
	}
	if v := os.Getenv("KRONSTEEN_OCR_ENGINE"); v != "" {
		s.OCREngine = v
	}
	if v := os.Getenv("KRONSTEEN_SCREENSHOT_DIR"); v != "" {
		s.ScreenshotDir = v
	}
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，配置保存在 ~/.kronsteen 下
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".kronsteen")
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认配置。
// 环境变量始终在文件之后应用。
func (m *Manager) Load() (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := DefaultSettings()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		settings.ApplyEnv()
		return settings, nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		settings.ApplyEnv()
		return settings, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		fresh := DefaultSettings()
		fresh.ApplyEnv()
		return fresh, fmt.Errorf("解析配置文件失败: %w", err)
	}

	settings.ApplyEnv()
	return settings, nil
}

// Save 保存配置
func (m *Manager) Save(settings *Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Settings, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(settings *Settings) error {
	return defaultManager.Save(settings)
}
