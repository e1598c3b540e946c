// Package launcher 提供桌面应用的查找、启动和关闭功能
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/zoeyai/kronsteen/internal/logger"
)

// 常用应用别名，按平台映射到实际的应用名或可执行文件
var appAliases = map[string]map[string]string{
	"darwin": {
		"chrome":  "Google Chrome",
		"edge":    "Microsoft Edge",
		"firefox": "Firefox",
		"safari":  "Safari",
		"vscode":  "Visual Studio Code",
		"wechat":  "WeChat",
	},
	"windows": {
		"chrome":  "chrome.exe",
		"edge":    "msedge.exe",
		"firefox": "firefox.exe",
		"vscode":  "Code.exe",
		"wechat":  "WeChat.exe",
	},
	"linux": {
		"chrome":  "google-chrome",
		"edge":    "microsoft-edge",
		"firefox": "firefox",
		"vscode":  "code",
	},
}

// resolveAlias 解析应用别名
func resolveAlias(name string) string {
	if aliases, ok := appAliases[runtime.GOOS]; ok {
		if resolved, ok := aliases[strings.ToLower(name)]; ok {
			return resolved
		}
	}
	return name
}

// FindApplication 查找应用，返回应用路径或可执行文件路径。
// 支持别名（chrome, edge, firefox...）、绝对路径和应用名。
func FindApplication(name string) (string, error) {
	name = resolveAlias(name)

	// 绝对路径直接检查
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		return "", fmt.Errorf("应用不存在: %s", name)
	}

	switch runtime.GOOS {
	case "darwin":
		return findApplicationDarwin(name)
	case "windows":
		return findApplicationWindows(name)
	default:
		return findApplicationLinux(name)
	}
}

// findApplicationDarwin 在标准目录中查找 .app bundle
func findApplicationDarwin(name string) (string, error) {
	appName := name
	if !strings.HasSuffix(appName, ".app") {
		appName += ".app"
	}

	dirs := []string{
		"/Applications",
		"/System/Applications",
		filepath.Join(os.Getenv("HOME"), "Applications"),
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, appName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("未找到应用: %s", name)
}

// findApplicationWindows 在 Program Files 和 PATH 中查找可执行文件
func findApplicationWindows(name string) (string, error) {
	exeName := name
	if !strings.HasSuffix(strings.ToLower(exeName), ".exe") {
		exeName += ".exe"
	}

	if path, err := exec.LookPath(exeName); err == nil {
		return path, nil
	}

	roots := []string{
		os.Getenv("ProgramFiles"),
		os.Getenv("ProgramFiles(x86)"),
		filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs"),
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		var found string
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || found != "" {
				return filepath.SkipDir
			}
			if !info.IsDir() && strings.EqualFold(info.Name(), exeName) {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("未找到应用: %s", name)
}

// findApplicationLinux 在 PATH 和标准目录中查找可执行文件
func findApplicationLinux(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	dirs := []string{"/usr/bin", "/usr/local/bin", "/snap/bin", "/opt"}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("未找到应用: %s", name)
}

// Launch 启动应用并返回进程 PID。
// 应用已在运行时不重复启动，返回现有进程的 PID。
func Launch(name string, args ...string) (int, error) {
	resolved := resolveAlias(name)

	procName := processNameOf(resolved)
	if matches, err := FindProcess(procName); err == nil && len(matches) > 0 {
		logger.Info("应用已在运行: %s (PID=%d)", name, matches[0].PID)
		return matches[0].PID, nil
	}

	path, err := FindApplication(name)
	if err != nil {
		return 0, err
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" && len(args) == 0 {
		cmd = exec.Command("open", "-a", path)
	} else {
		// macOS 带参数启动时直接执行 bundle 内的可执行文件
		cmd = exec.Command(path, args...)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("启动应用失败: %w", err)
	}

	logger.Info("已启动应用: %s", path)

	// macOS 的 open 命令立即退出，真实 PID 需要按进程名查找
	if runtime.GOOS == "darwin" {
		return waitForProcess(procName, 10*time.Second)
	}

	go cmd.Wait()
	return cmd.Process.Pid, nil
}

// LaunchAndWait 启动应用并等待其进程出现
func LaunchAndWait(name string, timeout time.Duration) (int, error) {
	pid, err := Launch(name)
	if err != nil {
		return 0, err
	}
	if IsProcessRunning(pid) {
		return pid, nil
	}
	return waitForProcess(processNameOf(resolveAlias(name)), timeout)
}

// waitForProcess 轮询等待进程出现
func waitForProcess(procName string, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	for {
		if matches, err := FindProcess(procName); err == nil && len(matches) > 0 {
			return matches[0].PID, nil
		}
		if !time.Now().Before(deadline) {
			return 0, fmt.Errorf("等待应用进程超时: %s", procName)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

// processNameOf 从应用名/路径推断进程名
func processNameOf(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".app")
	base = strings.TrimSuffix(base, ".exe")
	return base
}

// Close 关闭应用。
// macOS 上先尝试 osascript 正常退出，失败后终止进程；其他平台直接终止进程。
func Close(name string) error {
	resolved := resolveAlias(name)
	procName := processNameOf(resolved)

	if runtime.GOOS == "darwin" {
		appName := strings.TrimSuffix(resolved, ".app")
		if err := exec.Command("osascript", "-e",
			fmt.Sprintf(`quit app %q`, appName)).Run(); err == nil {
			logger.Info("已退出应用: %s", name)
			return nil
		}
	}

	matches, err := FindProcess(procName)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("应用未在运行: %s", name)
	}

	for _, m := range matches {
		if err := KillProcess(m.PID); err != nil {
			return fmt.Errorf("终止进程失败 (PID=%d): %w", m.PID, err)
		}
	}

	logger.Info("已关闭应用: %s (%d 个进程)", name, len(matches))
	return nil
}
