package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	backgroundColor = color.RGBA{R: 32, G: 36, B: 44, A: 255}
	statusTextColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Draw 绘制场景内容，编辑器打开时再叠加高亮、工具栏和状态栏
func (s *EditorScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	cam := s.cameraSystem.WorldToScreen()
	s.worldRender.Draw(screen, cam)

	if !s.state.Active {
		s.drawStatus(screen, "F1: open editor")
		return
	}
	s.highlightRender.Draw(screen, cam)
	s.panelRender.Draw(screen)
	s.toolbarRender.Draw(screen)
	s.menuRender.Draw(screen)
	s.drawStatus(screen, s.statusLine())
}

func (s *EditorScene) statusLine() string {
	line := fmt.Sprintf("tool: %s  zoom: %.2f  selected: %d", s.tools.Current(), s.cameraSystem.Camera().Zoom, len(s.SelectedTargets()))
	if t := s.PendingTarget(); t != 0 {
		line += fmt.Sprintf("  pending: %d", t)
	}
	if s.state.SelectedTilemap != 0 {
		line += fmt.Sprintf("  tilemap: %d", s.state.SelectedTilemap)
	}
	return line
}

// drawStatus 左下角单行状态文字
func (s *EditorScene) drawStatus(screen *ebiten.Image, line string) {
	if s.statusFace == nil {
		return
	}
	m := s.statusFace.Metrics()
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(s.viewH)-8-(m.HAscent+m.HDescent))
	op.ColorScale.ScaleWithColor(statusTextColor)
	text.Draw(screen, line, s.statusFace, op)
}
