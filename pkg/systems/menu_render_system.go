package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
)

var (
	menuBackground  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	menuItemNormal  = color.RGBA{A: 255}
	menuItemHovered = color.RGBA{R: 60, G: 60, B: 90, A: 255}
	menuItemPressed = color.RGBA{R: 90, G: 110, B: 160, A: 255}
	menuItemText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// MenuRenderSystem 绘制菜单栏和展开的子菜单
type MenuRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
	padding       float64
}

// NewMenuRenderSystem 创建菜单渲染系统
func NewMenuRenderSystem(em *ecs.EntityManager, face text.Face, padding float64) *MenuRenderSystem {
	return &MenuRenderSystem{entityManager: em, face: face, padding: padding}
}

// Draw 菜单栏在下，子菜单按层级依次叠在上面
func (s *MenuRenderSystem) Draw(screen *ebiten.Image) {
	em := s.entityManager
	for _, id := range VisibleMenus(em) {
		menu, _ := ecs.GetComponent[*components.MenuComponent](em, id)
		vector.DrawFilledRect(screen, float32(menu.X)-1, float32(menu.Y)-1, float32(menu.Width)+2, float32(menu.Height)+2, menuBackground, false)
		for _, itemID := range menu.Items {
			item, ok := ecs.GetComponent[*components.MenuItemComponent](em, itemID)
			if !ok {
				continue
			}
			s.drawItem(screen, item, menu.Horizontal)
		}
	}
}

func (s *MenuRenderSystem) drawItem(screen *ebiten.Image, item *components.MenuItemComponent, inBar bool) {
	bg := menuItemNormal
	switch item.State {
	case components.UIHovered:
		bg = menuItemHovered
	case components.UIClicked:
		bg = menuItemPressed
	}
	vector.DrawFilledRect(screen, float32(item.X)+1, float32(item.Y)+1, float32(item.Width)-2, float32(item.Height)-2, bg, false)

	if s.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(item.X+s.padding, item.Y+s.padding)
	op.ColorScale.ScaleWithColor(menuItemText)
	text.Draw(screen, ItemText(item, inBar), s.face, op)
}
