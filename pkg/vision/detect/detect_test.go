package detect

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDetectorMissingModel(t *testing.T) {
	_, err := NewDetector("/nonexistent/model.onnx")
	if err == nil {
		t.Fatal("模型不存在应报错")
	}
}

func TestLoadClassNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.txt")
	content := "button\ninput\n\ncheckbox\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	classes, err := loadClassNames(path)
	if err != nil {
		t.Fatalf("读取类别失败: %v", err)
	}

	want := []string{"button", "input", "checkbox"}
	if len(classes) != len(want) {
		t.Fatalf("类别数量应为 %d, 实际 %d", len(want), len(classes))
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("类别 %d 应为 %s, 实际为 %s", i, want[i], classes[i])
		}
	}
}

func TestDetectionCenter(t *testing.T) {
	d := Detection{Bounds: image.Rect(10, 20, 30, 60)}
	c := d.Center()
	if c.X != 20 || c.Y != 40 {
		t.Errorf("中心点应为 (20,40), 实际为 %v", c)
	}
}

func TestClassNameFallback(t *testing.T) {
	d := &Detector{classes: []string{"button"}}
	if d.className(0) != "button" {
		t.Errorf("已知类别名错误: %s", d.className(0))
	}
	if d.className(5) != "class_5" {
		t.Errorf("未知类别应退化为 class_<id>: %s", d.className(5))
	}
}

func TestDetectOnModel(t *testing.T) {
	modelPath := os.Getenv("KRONSTEEN_TEST_DETECT_MODEL")
	if modelPath == "" {
		t.Skipf("未设置 KRONSTEEN_TEST_DETECT_MODEL，跳过模型推理测试")
	}

	detector, err := NewDetector(modelPath)
	if err != nil {
		t.Fatalf("加载模型失败: %v", err)
	}
	defer detector.Close()

	img := image.NewRGBA(image.Rect(0, 0, 640, 640))
	detections, err := detector.Detect(img, 0.5)
	if err != nil {
		t.Fatalf("检测失败: %v", err)
	}

	for _, d := range detections {
		if d.Confidence < 0.5 {
			t.Errorf("检测结果置信度低于阈值: %+v", d)
		}
	}
}
