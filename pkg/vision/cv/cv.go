// Package cv 提供基于 OpenCV 的模板图像匹配功能
//
// 基本用法:
//
//	template, err := cv.LoadTemplate("button.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer template.Close()
//
//	result, err := template.FindIn(screenImg, 0.8, true)
//	if result != nil {
//	    fmt.Printf("找到位置: (%d, %d), 相似度 %.2f\n",
//	        result.Center.X, result.Center.Y, result.Confidence)
//	}
package cv

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// ReadImage 读取图像文件
func ReadImage(filename string) (gocv.Mat, error) {
	mat := gocv.IMRead(filename, gocv.IMReadColor)
	if mat.Empty() {
		return mat, fmt.Errorf("无法读取图像: %s", filename)
	}
	return mat, nil
}

// WriteImage 保存图像文件
func WriteImage(filename string, img gocv.Mat) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if ok := gocv.IMWrite(filename, img); !ok {
		return fmt.Errorf("保存图像失败: %s", filename)
	}
	return nil
}

// ToGray 转换为灰度图
func ToGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	return dst
}

// ImageToMat 将 image.Image 转换为 gocv.Mat (BGR)
func ImageToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("图像转换失败: %w", err)
	}
	dst := gocv.NewMat()
	gocv.CvtColor(mat, &dst, gocv.ColorRGBToBGR)
	mat.Close()
	return dst, nil
}

// MatToImage 将 gocv.Mat 转换为 image.Image
func MatToImage(mat gocv.Mat) (image.Image, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat 转换失败: %w", err)
	}
	return img, nil
}

// CropMat 裁剪图像区域，自动收缩越界边界
func CropMat(img gocv.Mat, rect image.Rectangle) gocv.Mat {
	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	rect = rect.Intersect(bounds)
	region := img.Region(rect)
	defer region.Close()
	return region.Clone()
}
