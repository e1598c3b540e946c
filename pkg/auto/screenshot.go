package auto

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/zoeyai/kronsteen/pkg/screen"
)

// Screenshot 截取屏幕，支持 WithRegion 限定区域
func (c *Client) Screenshot(opts ...Option) (image.Image, error) {
	o := c.applyOptions(opts...)
	img, _, err := c.capture(o)
	return img, err
}

// SaveScreenshot 截取屏幕并保存为 PNG。
// path 为空时保存到配置的截图目录，文件名带时间戳。
func (c *Client) SaveScreenshot(path string, opts ...Option) (string, error) {
	img, err := c.Screenshot(opts...)
	if err != nil {
		return "", err
	}

	if path == "" {
		dir := c.screenshotDir()
		path = filepath.Join(dir, fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405")))
	}

	if err := screen.SavePNG(img, path); err != nil {
		return "", err
	}

	c.log.Info("截图已保存: %s", path)
	return path, nil
}

// SaveDebugScreenshot 截图并标注查找结果，用于排查匹配问题
func (c *Client) SaveDebugScreenshot(path string, annotations []screen.Annotation, opts ...Option) (string, error) {
	img, err := c.Screenshot(opts...)
	if err != nil {
		return "", err
	}

	annotated := screen.Annotate(img, annotations)

	if path == "" {
		dir := c.screenshotDir()
		path = filepath.Join(dir, fmt.Sprintf("debug_%s.png", time.Now().Format("20060102_150405")))
	}

	if err := screen.SavePNG(annotated, path); err != nil {
		return "", err
	}
	return path, nil
}

// screenshotDir 截图保存目录，未配置时使用 ~/.kronsteen/screenshots
func (c *Client) screenshotDir() string {
	if c.settings != nil && c.settings.ScreenshotDir != "" {
		return c.settings.ScreenshotDir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".kronsteen", "screenshots")
}
