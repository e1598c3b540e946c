package cv

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/zoeyai/kronsteen/internal/logger"
)

// MaxResultCount 单次匹配返回的最大结果数量
const MaxResultCount = 10

// MatchResult 模板匹配结果
type MatchResult struct {
	// Center 匹配到的中心点坐标
	Center image.Point `json:"center"`
	// Bounds 匹配区域
	Bounds image.Rectangle `json:"bounds"`
	// Confidence 匹配相似度 (0-1)
	Confidence float64 `json:"confidence"`
	// Time 匹配耗时（毫秒）
	Time float64 `json:"time,omitempty"`
}

// ImageSizeError 模板大于搜索图像
type ImageSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("模板尺寸 %dx%d 大于源图像 %dx%d",
		e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}

// Template 预加载的匹配模板
type Template struct {
	mat  gocv.Mat
	path string
}

// LoadTemplate 从文件加载模板
func LoadTemplate(path string) (*Template, error) {
	mat, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return &Template{mat: mat, path: path}, nil
}

// NewTemplate 从图像创建模板
func NewTemplate(img image.Image) (*Template, error) {
	mat, err := ImageToMat(img)
	if err != nil {
		return nil, err
	}
	return &Template{mat: mat}, nil
}

// Path 模板来源文件路径
func (t *Template) Path() string {
	return t.path
}

// Size 模板尺寸 (width, height)
func (t *Template) Size() (int, int) {
	return t.mat.Cols(), t.mat.Rows()
}

// Close 释放模板资源
func (t *Template) Close() error {
	if !t.mat.Empty() {
		return t.mat.Close()
	}
	return nil
}

// FindIn 在源图像中查找模板的最佳匹配。
// grayscale 为 true 时使用灰度匹配（更快），false 时用 RGB 三通道校验置信度。
// 相似度低于 threshold 时返回 nil。
func (t *Template) FindIn(source image.Image, threshold float64, grayscale bool) (*MatchResult, error) {
	srcMat, err := ImageToMat(source)
	if err != nil {
		return nil, err
	}
	defer srcMat.Close()

	return t.findInMat(srcMat, threshold, grayscale)
}

// FindAllIn 在源图像中查找所有匹配，按相似度降序返回
func (t *Template) FindAllIn(source image.Image, threshold float64, grayscale bool) ([]*MatchResult, error) {
	srcMat, err := ImageToMat(source)
	if err != nil {
		return nil, err
	}
	defer srcMat.Close()

	startTime := time.Now()

	if err := checkSourceLargerThanSearch(srcMat, t.mat); err != nil {
		return nil, err
	}

	result := t.matchMatrix(srcMat)
	defer result.Close()

	h, w := t.mat.Rows(), t.mat.Cols()
	var results []*MatchResult

	for len(results) < MaxResultCount {
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

		confidence := t.confidence(srcMat, maxLoc, maxVal, w, h, grayscale)
		if confidence < threshold {
			break
		}

		elapsed := float64(time.Since(startTime).Milliseconds())
		results = append(results, newMatchResult(maxLoc, w, h, confidence, elapsed))

		// 屏蔽已匹配区域，继续找下一个
		gocv.Rectangle(&result,
			image.Rect(maxLoc.X-w/2, maxLoc.Y-h/2, maxLoc.X+w/2, maxLoc.Y+h/2),
			color.RGBA{0, 0, 0, 255}, -1)
	}

	elapsed := float64(time.Since(startTime).Milliseconds())
	logger.LogEvent("CV", len(results) > 0, elapsed, fmt.Sprintf("匹配到 %d 处", len(results)))

	return results, nil
}

func (t *Template) findInMat(srcMat gocv.Mat, threshold float64, grayscale bool) (*MatchResult, error) {
	startTime := time.Now()

	if err := checkSourceLargerThanSearch(srcMat, t.mat); err != nil {
		return nil, err
	}

	result := t.matchMatrix(srcMat)
	defer result.Close()

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	h, w := t.mat.Rows(), t.mat.Cols()
	confidence := t.confidence(srcMat, maxLoc, maxVal, w, h, grayscale)

	elapsed := float64(time.Since(startTime).Milliseconds())

	if confidence < threshold {
		logger.LogEvent("CV", false, elapsed, fmt.Sprintf("最高相似度 %.3f 低于阈值 %.3f", confidence, threshold))
		return nil, nil
	}

	logger.LogEvent("CV", true, elapsed, fmt.Sprintf("相似度 %.3f", confidence))
	return newMatchResult(maxLoc, w, h, confidence, elapsed), nil
}

// matchMatrix 计算模板匹配结果矩阵（灰度 TM_CCOEFF_NORMED）
func (t *Template) matchMatrix(srcMat gocv.Mat) gocv.Mat {
	srcGray := ToGray(srcMat)
	searchGray := ToGray(t.mat)
	defer srcGray.Close()
	defer searchGray.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, gocv.NewMat())
	return result
}

// confidence 计算匹配置信度
func (t *Template) confidence(srcMat gocv.Mat, maxLoc image.Point, maxVal float32, w, h int, grayscale bool) float64 {
	if grayscale {
		return float64(maxVal)
	}
	// RGB 三通道校验
	crop := CropMat(srcMat, image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+w, maxLoc.Y+h))
	defer crop.Close()
	return CalRGBConfidence(crop, t.mat)
}

func newMatchResult(topLeft image.Point, w, h int, confidence, elapsed float64) *MatchResult {
	return &MatchResult{
		Center:     image.Point{X: topLeft.X + w/2, Y: topLeft.Y + h/2},
		Bounds:     image.Rect(topLeft.X, topLeft.Y, topLeft.X+w, topLeft.Y+h),
		Confidence: confidence,
		Time:       elapsed,
	}
}

// checkSourceLargerThanSearch 检查源图像是否大于模板
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{search.Cols(), search.Rows()},
		}
	}
	return nil
}
