// Package detect 提供基于 ONNX 模型的界面元素目标检测。
//
// 模型为 YOLO 风格的单输出检测网络，输出形状 [1, 4+类别数, 锚点数]。
// 类别名称从与模型同目录的 classes.txt 读取（每行一个）。
package detect

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/zoeyai/kronsteen/internal/logger"
	"github.com/zoeyai/kronsteen/pkg/vision/cv"
)

const (
	// inputSize 模型输入边长
	inputSize = 640
	// nmsThreshold 非极大值抑制的 IoU 阈值
	nmsThreshold = 0.45
)

// Detection 单个检测结果
type Detection struct {
	// ClassName 类别名称
	ClassName string `json:"class_name"`
	// Confidence 检测置信度 (0-1)
	Confidence float64 `json:"confidence"`
	// Bounds 检测框（输入图像像素坐标）
	Bounds image.Rectangle `json:"bounds"`
}

// Center 检测框中心点
func (d Detection) Center() image.Point {
	return image.Point{
		X: (d.Bounds.Min.X + d.Bounds.Max.X) / 2,
		Y: (d.Bounds.Min.Y + d.Bounds.Max.Y) / 2,
	}
}

// Detector ONNX 目标检测器
type Detector struct {
	net     gocv.Net
	classes []string
	mu      sync.Mutex
	closed  bool
}

// NewDetector 加载 ONNX 检测模型。
// classes.txt 缺失时类别名退化为 "class_<id>"。
func NewDetector(modelPath string) (*Detector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("检测模型不存在: %s", modelPath)
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("加载检测模型失败: %s", modelPath)
	}

	classes, err := loadClassNames(filepath.Join(filepath.Dir(modelPath), "classes.txt"))
	if err != nil {
		logger.Warn("读取类别文件失败: %v", err)
	}

	logger.Info("检测模型加载成功: %s (%d 个类别)", modelPath, len(classes))

	return &Detector{net: net, classes: classes}, nil
}

// Detect 在图像中检测界面元素，返回置信度不低于 minConfidence 的结果
func (d *Detector) Detect(img image.Image, minConfidence float64) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, fmt.Errorf("检测器已关闭")
	}

	startTime := time.Now()

	mat, err := cv.ImageToMat(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	srcW := mat.Cols()
	srcH := mat.Rows()

	blob := gocv.BlobFromImage(mat, 1.0/255.0,
		image.Point{X: inputSize, Y: inputSize},
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	detections := d.decodeOutput(output, srcW, srcH, minConfidence)

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("DET", len(detections) > 0, elapsed, fmt.Sprintf("检测到 %d 个元素", len(detections)))

	return detections, nil
}

// decodeOutput 解析 YOLO 输出 [1, 4+numClasses, numAnchors]
func (d *Detector) decodeOutput(output gocv.Mat, srcW, srcH int, minConfidence float64) []Detection {
	sizes := output.Size()
	if len(sizes) != 3 {
		return nil
	}
	rows := sizes[1]
	anchors := sizes[2]
	numClasses := rows - 4
	if numClasses <= 0 {
		return nil
	}

	reshaped := output.Reshape(1, rows)
	defer reshaped.Close()

	scaleX := float64(srcW) / float64(inputSize)
	scaleY := float64(srcH) / float64(inputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for a := 0; a < anchors; a++ {
		bestClass := -1
		bestScore := float32(0)
		for c := 0; c < numClasses; c++ {
			score := reshaped.GetFloatAt(4+c, a)
			if score > bestScore {
				bestScore = score
				bestClass = c
			}
		}
		if bestClass < 0 || float64(bestScore) < minConfidence {
			continue
		}

		cx := float64(reshaped.GetFloatAt(0, a)) * scaleX
		cy := float64(reshaped.GetFloatAt(1, a)) * scaleY
		w := float64(reshaped.GetFloatAt(2, a)) * scaleX
		h := float64(reshaped.GetFloatAt(3, a)) * scaleY

		boxes = append(boxes, image.Rect(
			int(cx-w/2), int(cy-h/2),
			int(cx+w/2), int(cy+h/2)))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return nil
	}

	indices := gocv.NMSBoxes(boxes, scores, float32(minConfidence), nmsThreshold)

	detections := make([]Detection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, Detection{
			ClassName:  d.className(classIDs[idx]),
			Confidence: float64(scores[idx]),
			Bounds:     boxes[idx],
		})
	}
	return detections
}

// className 获取类别名称
func (d *Detector) className(id int) string {
	if id >= 0 && id < len(d.classes) {
		return d.classes[id]
	}
	return fmt.Sprintf("class_%d", id)
}

// Classes 模型支持的类别名称列表
func (d *Detector) Classes() []string {
	return d.classes
}

// Close 释放模型资源
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.net.Close()
}

// loadClassNames 从文件读取类别名称，每行一个
func loadClassNames(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var classes []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			classes = append(classes, name)
		}
	}
	return classes, scanner.Err()
}
