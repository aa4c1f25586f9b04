package components

import (
	"image/color"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

// TooltipComponent 悬停提示
// 挂在工具栏按钮上；悬停 Delay 秒后显示，离开后再保留 Linger 秒
//
// 提示框布局（从上到下）：
//  1. 标题（浅色）
//  2. 正文（自动换行）
type TooltipComponent struct {
	Title string
	Text  string

	// HoverTime 当前连续悬停时长
	HoverTime float64
	// LingerLeft 离开后剩余的保留时间
	LingerLeft float64
	IsVisible  bool

	TitleColor      color.Color
	TextColor       color.Color
	BackgroundColor color.Color
	BorderColor     color.Color

	// 位置和尺寸（屏幕坐标，由 TooltipSystem 计算）
	X, Y          float64
	Width, Height float64
	Lines         []string

	// Owner 提示所属实体
	Owner ecs.EntityID
}

// NewTooltipComponent 创建带默认配色的提示组件
func NewTooltipComponent(owner ecs.EntityID, title, body string) *TooltipComponent {
	return &TooltipComponent{
		Title:           title,
		Text:            body,
		TitleColor:      color.RGBA{R: 255, G: 230, B: 140, A: 255},
		TextColor:       color.RGBA{R: 230, G: 230, B: 230, A: 255},
		BackgroundColor: color.RGBA{R: 20, G: 20, B: 28, A: 230},
		BorderColor:     color.RGBA{R: 90, G: 90, B: 110, A: 255},
		Owner:           owner,
	}
}
