package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

var (
	panelBorderColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panelTitleColor    = color.RGBA{A: 255}
	panelTitleText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panelContentColor  = color.RGBA{R: 191, G: 191, B: 191, A: 255}
	panelContentText   = color.RGBA{A: 255}
	panelDraggingColor = color.RGBA{R: 40, G: 40, B: 60, A: 255}
)

// PanelRenderSystem 按叠放次序绘制浮动面板
type PanelRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
	padding       float64
}

// NewPanelRenderSystem 创建面板渲染系统
func NewPanelRenderSystem(em *ecs.EntityManager, face text.Face, padding float64) *PanelRenderSystem {
	return &PanelRenderSystem{entityManager: em, face: face, padding: padding}
}

// Draw 绘制所有可见面板
func (s *PanelRenderSystem) Draw(screen *ebiten.Image) {
	em := s.entityManager
	for _, id := range SortedPanels(em) {
		p, _ := ecs.GetComponent[*components.PanelComponent](em, id)
		if p.Hidden {
			continue
		}
		s.drawPanel(screen, p)
	}
}

func (s *PanelRenderSystem) drawPanel(screen *ebiten.Image, p *components.PanelComponent) {
	x, y, w := float32(p.X), float32(p.Y), float32(p.Width)
	vector.DrawFilledRect(screen, x-2, y-2, w+4, float32(p.Height())+4, panelBorderColor, false)

	titleBg := panelTitleColor
	if p.Dragging {
		titleBg = panelDraggingColor
	}
	vector.DrawFilledRect(screen, x, y, w, float32(p.TitleHeight), titleBg, false)
	s.drawLine(screen, p.Title, p.X+s.padding, p.Y+s.padding, panelTitleText)

	if p.Collapsed {
		return
	}
	vector.DrawFilledRect(screen, x, y+float32(p.TitleHeight), w, float32(p.ContentHeight), panelContentColor, false)
	lineH := utils.LineHeight(s.face)
	top := p.Y + p.TitleHeight + s.padding
	for i, line := range p.Lines {
		s.drawLine(screen, line, p.X+s.padding, top+float64(i)*lineH, panelContentText)
	}
}

func (s *PanelRenderSystem) drawLine(screen *ebiten.Image, line string, x, y float64, c color.Color) {
	if s.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, line, s.face, op)
}
