package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
type SpriteComponent struct {
	Image *ebiten.Image

	// CustomWidth/CustomHeight 非 0 时覆盖图像尺寸
	CustomWidth  float64
	CustomHeight float64

	// AnchorX/AnchorY 锚点相对图像中心的偏移，取值 -0.5 ~ 0.5
	// (0, 0) 为中心，(-0.5, -0.5) 为左上角
	AnchorX float64
	AnchorY float64
}
