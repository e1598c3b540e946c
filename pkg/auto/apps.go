package auto

import (
	"fmt"
	"strings"

	"github.com/zoeyai/kronsteen/pkg/launcher"
)

// Launch 启动应用并返回进程 PID（应用已在运行时返回现有 PID）
func (c *Client) Launch(name string, args ...string) (int, error) {
	var pid int
	detail := name
	if len(args) > 0 {
		detail = fmt.Sprintf("%s %s", name, strings.Join(args, " "))
	}
	err := c.run(Action{Name: "launch", Detail: detail}, func() error {
		var launchErr error
		pid, launchErr = launcher.Launch(name, args...)
		return launchErr
	})
	return pid, err
}

// CloseApp 关闭指定名称的应用
func (c *Client) CloseApp(name string) error {
	return c.run(Action{Name: "close_app", Detail: name}, func() error {
		return launcher.Close(name)
	})
}
