package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zoeyai/kronsteen/internal/logger"
	"github.com/zoeyai/kronsteen/pkg/auto"
	"github.com/zoeyai/kronsteen/pkg/launcher"
	"github.com/zoeyai/kronsteen/pkg/vision/ocr"
	"github.com/zoeyai/kronsteen/pkg/window"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		findText     = flag.String("find-text", "", "查找屏幕文字")
		clickText    = flag.String("click-text", "", "查找并点击文字")
		findTemplate = flag.String("find-template", "", "查找模板图像 (PNG 路径)")
		screenshot   = flag.String("screenshot", "", "截图并保存到指定路径 (空字符串用默认目录)")
		launchApp    = flag.String("launch", "", "启动应用")
		closeApp     = flag.String("close", "", "关闭应用")
		listWindows  = flag.Bool("windows", false, "列出窗口")
		monitorWin   = flag.String("monitor", "", "启用焦点守卫的窗口名称")
		timeoutSec   = flag.Float64("timeout", 5, "查找超时 (秒)")
		regionStr    = flag.String("region", "", "搜索区域: left,top,width,height")
		matchMode    = flag.String("mode", "contains", "文字匹配模式: contains|equals|starts-with|regex")
		ocrEngine    = flag.String("ocr", "", "OCR 引擎: paddle|tesseract")
		verbose      = flag.Bool("verbose", false, "输出调试日志")
		showVersion  = flag.Bool("version", false, "显示版本信息")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("kronsteen v%s (build %s, commit %s)\n", Version, BuildTime, GitCommit)
		return
	}

	if *verbose {
		logger.Default().SetLevel(logger.DEBUG)
	}

	switch {
	case *launchApp != "":
		pid, err := launcher.Launch(*launchApp)
		exitOnError(err)
		fmt.Printf("已启动: %s (PID=%d)\n", *launchApp, pid)
		return

	case *closeApp != "":
		exitOnError(launcher.Close(*closeApp))
		fmt.Printf("已关闭: %s\n", *closeApp)
		return

	case *listWindows:
		windows, err := window.List(flag.Args()...)
		exitOnError(err)
		for _, w := range windows {
			fmt.Printf("%8d  %-40q  %s\n", w.PID, w.Title, w.Bounds)
		}
		return
	}

	opts, err := buildOptions(*timeoutSec, *regionStr, *matchMode)
	exitOnError(err)

	clientOpts := buildClientOptions(*monitorWin, *ocrEngine)
	client := auto.New(clientOpts...)
	defer client.Close()

	switch {
	case *findText != "":
		match, err := client.FindText(*findText, opts...)
		exitOnError(err)
		fmt.Printf("找到文字 %q: %s (置信度 %.2f)\n", match.Text, match.Region, match.Confidence)

	case *clickText != "":
		exitOnError(client.ClickText(*clickText, opts...))
		fmt.Printf("已点击文字: %s\n", *clickText)

	case *findTemplate != "":
		match, err := client.FindTemplate(*findTemplate, opts...)
		exitOnError(err)
		fmt.Printf("找到模板: %s (相似度 %.2f)\n", match.Region, match.Confidence)

	case flagSet("screenshot"):
		path, err := client.SaveScreenshot(*screenshot, opts...)
		exitOnError(err)
		fmt.Printf("截图已保存: %s\n", path)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

// buildOptions 把命令行参数转换为操作选项
func buildOptions(timeoutSec float64, regionStr, matchMode string) ([]auto.Option, error) {
	opts := []auto.Option{
		auto.WithTimeout(time.Duration(timeoutSec * float64(time.Second))),
	}

	if regionStr != "" {
		parts := strings.Split(regionStr, ",")
		values := make([]int, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("无效的区域参数: %s", regionStr)
			}
			values = append(values, v)
		}
		region, err := auto.RegionFromSequence(values)
		if err != nil {
			return nil, err
		}
		opts = append(opts, auto.WithRegion(region.Left, region.Top, region.Width, region.Height))
	}

	mode, err := auto.ParseMatchMode(matchMode)
	if err != nil {
		return nil, err
	}
	opts = append(opts, auto.WithMatchMode(mode))

	return opts, nil
}

// buildClientOptions 把命令行参数转换为客户端选项
func buildClientOptions(monitorWin, ocrEngine string) []auto.ClientOption {
	var opts []auto.ClientOption

	if monitorWin != "" {
		opts = append(opts, auto.WithFocusGuard(monitorWin))
	}
	if ocrEngine != "" {
		kind, err := ocr.ParseEngineKind(ocrEngine)
		exitOnError(err)
		opts = append(opts, auto.WithOCRKind(kind))
	}
	return opts
}

// flagSet 检查命令行是否显式传入了某个参数
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}
