package ocr

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config OCR 引擎配置
type Config struct {
	// OnnxRuntimeLibPath ONNX Runtime 动态库路径（Paddle 引擎）
	OnnxRuntimeLibPath string
	// DetModelPath 检测模型路径（Paddle 引擎）
	DetModelPath string
	// RecModelPath 识别模型路径（Paddle 引擎）
	RecModelPath string
	// DictPath 字典文件路径（Paddle 引擎）
	DictPath string
	// Languages Tesseract 语言包，默认 ["chi_sim", "eng"]
	Languages []string
}

// DefaultConfig 默认配置，自动探测模型文件位置
func DefaultConfig() Config {
	return Config{
		OnnxRuntimeLibPath: getDefaultOnnxRuntimePath(),
		DetModelPath:       getDefaultModelPath("det.onnx"),
		RecModelPath:       getDefaultModelPath("rec.onnx"),
		DictPath:           getDefaultModelPath("dict.txt"),
		Languages:          []string{"chi_sim", "eng"},
	}
}

// getExecutableDir 获取可执行文件所在目录
func getExecutableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	// 解析符号链接
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "."
	}
	return filepath.Dir(execPath)
}

// getResourcesDir 获取资源目录（跨平台）
func getResourcesDir() string {
	execDir := getExecutableDir()

	if runtime.GOOS == "darwin" {
		// macOS .app bundle: Contents/MacOS/<bin> 与 Contents/Resources/models
		resourcesDir := filepath.Join(execDir, "..", "Resources")
		if fileExists(resourcesDir) {
			return resourcesDir
		}
	}

	return execDir
}

// getDefaultOnnxRuntimePath 获取默认的 ONNX Runtime 库路径
func getDefaultOnnxRuntimePath() string {
	execDir := getExecutableDir()
	resourcesDir := getResourcesDir()

	var paths []string

	switch runtime.GOOS {
	case "darwin":
		frameworksDir := filepath.Join(execDir, "..", "Frameworks")
		paths = []string{
			filepath.Join(frameworksDir, "libonnxruntime.dylib"),
			filepath.Join(execDir, "libonnxruntime.dylib"),
			filepath.Join(resourcesDir, "lib", "onnxruntime_arm64.dylib"),
			filepath.Join(resourcesDir, "lib", "onnxruntime_amd64.dylib"),
			"models/lib/onnxruntime_arm64.dylib",
			"models/lib/onnxruntime_amd64.dylib",
		}
	case "windows":
		paths = []string{
			filepath.Join(execDir, "onnxruntime.dll"),
			filepath.Join(resourcesDir, "onnxruntime.dll"),
			"models/lib/onnxruntime.dll",
			"onnxruntime.dll",
		}
	default:
		paths = []string{
			filepath.Join(execDir, "libonnxruntime.so"),
			filepath.Join(resourcesDir, "lib", "onnxruntime_arm64.so"),
			filepath.Join(resourcesDir, "lib", "onnxruntime_amd64.so"),
			"models/lib/onnxruntime_arm64.so",
			"models/lib/onnxruntime_amd64.so",
			"./lib/onnxruntime.so",
		}
	}

	for _, p := range paths {
		if fileExists(p) {
			return p
		}
	}

	return paths[len(paths)-1]
}

// getDefaultModelPath 获取默认的模型路径
func getDefaultModelPath(filename string) string {
	execDir := getExecutableDir()
	resourcesDir := getResourcesDir()

	paths := []string{
		// 打包后的路径
		filepath.Join(resourcesDir, "models", "paddle_weights", filename),
		filepath.Join(execDir, "models", "paddle_weights", filename),
		// 开发时的相对路径
		filepath.Join("models", "paddle_weights", filename),
	}

	for _, p := range paths {
		if fileExists(p) {
			return p
		}
	}

	return paths[0]
}

// fileExists 检查文件是否存在
func fileExists(path string) bool {
	_, err := statFile(path)
	return err == nil
}

// statFile 包装 os.Stat 以便测试
var statFile = func(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
