package launcher

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveAlias(t *testing.T) {
	resolved := resolveAlias("chrome")
	if resolved == "chrome" && runtime.GOOS != "linux" {
		t.Errorf("chrome 别名应被解析, 实际为 %s", resolved)
	}

	// 未知名称原样返回
	if resolveAlias("myapp") != "myapp" {
		t.Error("未知名称应原样返回")
	}

	// 别名不区分大小写
	if resolveAlias("Chrome") != resolveAlias("chrome") {
		t.Error("别名解析应不区分大小写")
	}
}

func TestProcessNameOf(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Google Chrome.app", "Google Chrome"},
		{"/Applications/Safari.app", "Safari"},
		{"chrome.exe", "chrome"},
		{`C:\Program Files\app\foo.exe`, "foo"},
		{"firefox", "firefox"},
	}

	for _, c := range cases {
		if got := processNameOf(c.input); got != c.want {
			// Windows 路径分隔符在其他平台不拆分，跳过该用例
			if runtime.GOOS != "windows" && filepath.Base(c.input) == c.input {
				t.Errorf("processNameOf(%q) = %q, 期望 %q", c.input, got, c.want)
			}
		}
	}
}

func TestFindApplicationNotFound(t *testing.T) {
	_, err := FindApplication("kronsteen-不存在的应用-xyzzy")
	if err == nil {
		t.Fatal("不存在的应用应报错")
	}
}

func TestFindApplicationAbsolutePath(t *testing.T) {
	// 存在的绝对路径直接返回
	path := filepath.Join(t.TempDir(), "fakeapp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	found, err := FindApplication(path)
	if err != nil {
		t.Fatalf("存在的绝对路径不应报错: %v", err)
	}
	if found != path {
		t.Errorf("应返回原路径: %s", found)
	}

	// 不存在的绝对路径报错
	if _, err := FindApplication(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("不存在的绝对路径应报错")
	}
}

func TestListProcesses(t *testing.T) {
	processes, err := ListProcesses()
	if err != nil {
		t.Fatalf("获取进程列表失败: %v", err)
	}
	if len(processes) == 0 {
		t.Fatal("进程列表不应为空")
	}
}

func TestFindProcessSelf(t *testing.T) {
	// 测试进程自身一定在运行
	if !IsProcessRunning(os.Getpid()) {
		t.Error("当前进程应在运行")
	}
	if IsProcessRunning(999999999) {
		t.Error("不存在的 PID 不应在运行")
	}
}

func TestCloseNotRunning(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skipf("macOS 上 osascript 可能静默成功，跳过")
	}
	if err := Close("kronsteen-不存在的应用-xyzzy"); err == nil {
		t.Error("未运行的应用应报错")
	}
}
