package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/leveleditor/pkg/tool"
)

// ToolbarButtonComponent 工具栏上的工具按钮（屏幕坐标）
type ToolbarButtonComponent struct {
	Tool tool.Tool

	X, Y     float64
	Size     float64
	IconSize float64

	// 按钮背景，按状态选择；Pressed 同时用于当前激活的工具
	NormalImage  *ebiten.Image
	HoverImage   *ebiten.Image
	PressedImage *ebiten.Image
	Icon         *ebiten.Image

	State UIState
	// Active 是否为当前工具
	Active bool
}

// Contains 屏幕点是否落在按钮内
func (b *ToolbarButtonComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Size && y >= b.Y && y < b.Y+b.Size
}
