package auto

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/kronsteen/pkg/screen"
)

// ==================== 鼠标操作 ====================

// MoveTo 移动鼠标到指定位置（截图物理坐标）
func (c *Client) MoveTo(x, y int) {
	nx, ny := screen.NormalizePointForInput(x, y)
	robotgo.Move(nx, ny)
}

// MoveSmooth 平滑移动鼠标
func (c *Client) MoveSmooth(x, y int) {
	nx, ny := screen.NormalizePointForInput(x, y)
	robotgo.MoveSmooth(nx, ny)
}

// Click 在当前位置点击
func (c *Client) Click(button ...string) error {
	btn := "left"
	if len(button) > 0 {
		btn = button[0]
	}
	return c.run(Action{Name: "click", Detail: btn}, func() error {
		robotgo.Click(btn, false)
		return nil
	})
}

// DoubleClick 在当前位置双击
func (c *Client) DoubleClick() error {
	return c.run(Action{Name: "double_click", Detail: "left"}, func() error {
		robotgo.Click("left", true)
		return nil
	})
}

// RightClick 在当前位置右键点击
func (c *Client) RightClick() error {
	return c.run(Action{Name: "right_click", Detail: "right"}, func() error {
		robotgo.Click("right", false)
		return nil
	})
}

// ClickAt 在指定位置点击
func (c *Client) ClickAt(x, y int, opts ...Option) error {
	o := c.applyOptions(opts...)
	return c.run(Action{Name: "click_at", Detail: fmt.Sprintf("(%d, %d)", x, y)}, func() error {
		return c.clickAt(x, y, o)
	})
}

// clickAt 内部点击实现，不经过拦截器（调用方已在拦截器内）
func (c *Client) clickAt(x, y int, o *Options) error {
	c.MoveTo(x, y)
	time.Sleep(50 * time.Millisecond) // 短暂延迟确保鼠标到位

	if o.RightClick {
		robotgo.Click("right", false)
	} else if o.DoubleClick {
		robotgo.Click("left", true)
	} else {
		robotgo.Click("left", false)
	}
	return nil
}

// DragTo 从当前位置拖拽到指定位置
func (c *Client) DragTo(x, y int) error {
	return c.run(Action{Name: "drag_to", Detail: fmt.Sprintf("(%d, %d)", x, y)}, func() error {
		nx, ny := screen.NormalizePointForInput(x, y)
		robotgo.DragSmooth(nx, ny)
		return nil
	})
}

// Scroll 滚动
func (c *Client) Scroll(x, y int) {
	robotgo.Scroll(x, y)
}

// ScrollUp 向上滚动
func (c *Client) ScrollUp(lines int) {
	robotgo.ScrollDir(lines, "up")
}

// ScrollDown 向下滚动
func (c *Client) ScrollDown(lines int) {
	robotgo.ScrollDir(lines, "down")
}

// MousePosition 获取鼠标位置（截图物理坐标）
func (c *Client) MousePosition() (x, y int) {
	mx, my := robotgo.Location()
	return screen.NormalizePointForScreen(mx, my)
}

// ==================== 键盘操作 ====================

// TypeText 输入文字
func (c *Client) TypeText(text string) error {
	return c.run(Action{Name: "type_text", Detail: fmt.Sprintf("%d 字符", len([]rune(text)))}, func() error {
		robotgo.TypeStr(text)
		return nil
	})
}

// KeyTap 按键，可带修饰键: c.KeyTap("a", "cmd")
func (c *Client) KeyTap(key string, modifiers ...string) error {
	return c.run(Action{Name: "key_tap", Detail: key}, func() error {
		if len(modifiers) > 0 {
			return robotgo.KeyTap(key, modifiers)
		}
		return robotgo.KeyTap(key)
	})
}

// HotKey 组合键，最后一个为主键: c.HotKey("ctrl", "shift", "s")
func (c *Client) HotKey(keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("组合键不能为空")
	}
	return c.run(Action{Name: "hot_key", Detail: fmt.Sprintf("%v", keys)}, func() error {
		if len(keys) == 1 {
			return robotgo.KeyTap(keys[0])
		}
		return robotgo.KeyTap(keys[len(keys)-1], keys[:len(keys)-1])
	})
}

// KeyDown 按下键
func (c *Client) KeyDown(key string) error {
	return robotgo.KeyToggle(key, "down")
}

// KeyUp 释放键
func (c *Client) KeyUp(key string) error {
	return robotgo.KeyToggle(key, "up")
}

// ==================== 剪贴板操作 ====================

// CopyToClipboard 复制到剪贴板
func (c *Client) CopyToClipboard(text string) error {
	return robotgo.WriteAll(text)
}

// ReadClipboard 读取剪贴板
func (c *Client) ReadClipboard() (string, error) {
	return robotgo.ReadAll()
}

// PasteText 通过剪贴板粘贴文字（比逐字输入快，适合长文本和中文）
func (c *Client) PasteText(text string) error {
	return c.run(Action{Name: "paste_text", Detail: fmt.Sprintf("%d 字符", len([]rune(text)))}, func() error {
		if err := robotgo.WriteAll(text); err != nil {
			return fmt.Errorf("写入剪贴板失败: %w", err)
		}
		robotgo.MilliSleep(50)
		return pasteKeyTap()
	})
}

// pasteKeyTap 触发系统粘贴快捷键
func pasteKeyTap() error {
	if runtime.GOOS == "darwin" {
		return robotgo.KeyTap("v", "cmd")
	}
	return robotgo.KeyTap("v", "ctrl")
}
