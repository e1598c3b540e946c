package auto

import "fmt"

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 表示屏幕像素坐标下的矩形区域，值类型，创建后不再修改。
// 约定 Width >= 0 且 Height >= 0。
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRegion 创建矩形区域
func NewRegion(left, top, width, height int) Region {
	return Region{Left: left, Top: top, Width: width, Height: height}
}

// RegionFromCorners 从左上角和右下角两点创建矩形
func RegionFromCorners(topLeft, bottomRight Point) Region {
	return Region{
		Left:   topLeft.X,
		Top:    topLeft.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: bottomRight.Y - topLeft.Y,
	}
}

// RegionFromSequence 从 [left, top, width, height] 四元组创建矩形
func RegionFromSequence(values []int) (Region, error) {
	if len(values) != 4 {
		return Region{}, fmt.Errorf("区域序列必须包含四个整数, 实际 %d 个", len(values))
	}
	return Region{Left: values[0], Top: values[1], Width: values[2], Height: values[3]}, nil
}

// AsTuple 返回 [left, top, width, height] 四元组
func (r Region) AsTuple() [4]int {
	return [4]int{r.Left, r.Top, r.Width, r.Height}
}

// ToBox 返回 [left, top, right, bottom] 边界框
func (r Region) ToBox() [4]int {
	return [4]int{r.Left, r.Top, r.Left + r.Width, r.Top + r.Height}
}

// Center 返回矩形中心点
func (r Region) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Area 返回矩形面积
func (r Region) Area() int {
	return r.Width * r.Height
}

// Expand 返回四边各外扩 padding 像素后的新矩形
func (r Region) Expand(padding int) Region {
	return Region{
		Left:   r.Left - padding,
		Top:    r.Top - padding,
		Width:  r.Width + padding*2,
		Height: r.Height + padding*2,
	}
}

// String 返回字符串表示
func (r Region) String() string {
	return fmt.Sprintf("Region(%d, %d, %dx%d)", r.Left, r.Top, r.Width, r.Height)
}
