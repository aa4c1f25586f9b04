package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
)

// ToolbarRenderSystem 绘制工具栏按钮和工具提示
type ToolbarRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
	lineHeight    float64
	padding       float64
}

// NewToolbarRenderSystem 创建工具栏渲染系统
func NewToolbarRenderSystem(em *ecs.EntityManager, face text.Face, lineHeight, padding float64) *ToolbarRenderSystem {
	return &ToolbarRenderSystem{
		entityManager: em,
		face:          face,
		lineHeight:    lineHeight,
		padding:       padding,
	}
}

// Draw 先画按钮，再画提示（提示在最上层）
func (s *ToolbarRenderSystem) Draw(screen *ebiten.Image) {
	em := s.entityManager
	buttons := ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](em)

	for _, id := range buttons {
		btn, _ := ecs.GetComponent[*components.ToolbarButtonComponent](em, id)
		s.drawButton(screen, btn)
	}
	for _, id := range buttons {
		if tip, ok := ecs.GetComponent[*components.TooltipComponent](em, id); ok && tip.IsVisible {
			s.drawTooltip(screen, tip)
		}
	}
}

func (s *ToolbarRenderSystem) drawButton(screen *ebiten.Image, btn *components.ToolbarButtonComponent) {
	bg := btn.NormalImage
	switch {
	case btn.Active || btn.State == components.UIClicked:
		bg = btn.PressedImage
	case btn.State == components.UIHovered:
		bg = btn.HoverImage
	}

	if bg != nil {
		drawImageInBox(screen, bg, btn.X, btn.Y, btn.Size)
	} else {
		fill := color.RGBA{R: 50, G: 50, B: 60, A: 230}
		if btn.Active {
			fill = color.RGBA{R: 90, G: 110, B: 160, A: 240}
		} else if btn.State == components.UIHovered {
			fill = color.RGBA{R: 70, G: 70, B: 85, A: 240}
		}
		vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.Size), float32(btn.Size), fill, false)
	}

	if btn.Icon != nil {
		inset := (btn.Size - btn.IconSize) / 2
		drawImageInBox(screen, btn.Icon, btn.X+inset, btn.Y+inset, btn.IconSize)
	}
}

// drawImageInBox 把图像缩放到 size×size 绘制在 (x, y)
func drawImageInBox(screen, img *ebiten.Image, x, y, size float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *ToolbarRenderSystem) drawTooltip(screen *ebiten.Image, tip *components.TooltipComponent) {
	x, y, w, h := float32(tip.X), float32(tip.Y), float32(tip.Width), float32(tip.Height)
	vector.DrawFilledRect(screen, x, y, w, h, tip.BackgroundColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, tip.BorderColor, false)

	if s.face == nil {
		return
	}
	for i, line := range tip.Lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(tip.X+s.padding, tip.Y+s.padding+float64(i)*s.lineHeight)
		if i == 0 {
			op.ColorScale.ScaleWithColor(tip.TitleColor)
		} else {
			op.ColorScale.ScaleWithColor(tip.TextColor)
		}
		text.Draw(screen, line, s.face, op)
	}
}
