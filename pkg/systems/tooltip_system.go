package systems

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// tooltipCursorOffset 提示框与指针之间的距离
const tooltipCursorOffset = 16.0

// TooltipSystem 工具提示的计时和布局
//
// 悬停 Delay 秒后显示；离开后再保留 Linger 秒。
// 提示框放在指针所在半屏的另一侧（左右、上下分别判断），避免超出窗口。
type TooltipSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.TooltipConfig
	face          text.Face
	viewW, viewH  int

	// Enabled 偏好中的提示开关
	Enabled bool
}

// NewTooltipSystem 创建提示系统，face 用于测量文本
func NewTooltipSystem(em *ecs.EntityManager, cfg config.TooltipConfig, face text.Face, viewW, viewH int) *TooltipSystem {
	return &TooltipSystem{
		entityManager: em,
		cfg:           cfg,
		face:          face,
		viewW:         viewW,
		viewH:         viewH,
		Enabled:       true,
	}
}

// SetViewport 窗口尺寸变化
func (s *TooltipSystem) SetViewport(w, h int) {
	s.viewW, s.viewH = w, h
}

// LineHeight 行高
func (s *TooltipSystem) LineHeight() float64 {
	return utils.LineHeight(s.face)
}

// Update 更新所有工具栏按钮上的提示
func (s *TooltipSystem) Update(dt float64, in *utils.FrameInput) {
	em := s.entityManager
	x, y := float64(in.CursorX), float64(in.CursorY)

	for _, id := range ecs.GetEntitiesWith2[*components.TooltipComponent, *components.ToolbarButtonComponent](em) {
		tip, _ := ecs.GetComponent[*components.TooltipComponent](em, id)
		btn, _ := ecs.GetComponent[*components.ToolbarButtonComponent](em, id)

		if !s.Enabled {
			tip.IsVisible = false
			tip.HoverTime = 0
			continue
		}

		if btn.Contains(x, y) {
			tip.HoverTime += dt
			if tip.HoverTime >= s.cfg.Delay {
				tip.IsVisible = true
				tip.LingerLeft = s.cfg.Linger
				s.layout(tip, x, y)
			}
			continue
		}

		tip.HoverTime = 0
		if tip.IsVisible {
			tip.LingerLeft -= dt
			if tip.LingerLeft <= 0 {
				tip.IsVisible = false
				tip.LingerLeft = 0
			}
		}
	}
}

// layout 计算提示框尺寸和位置
func (s *TooltipSystem) layout(tip *components.TooltipComponent, cx, cy float64) {
	pad := s.cfg.Padding
	lineH := s.LineHeight()

	lines := append([]string{tip.Title}, utils.WrapText(tip.Text, s.face, s.cfg.MaxWidth)...)
	w, h := utils.MeasureLines(lines, s.face, lineH)
	tip.Lines = lines
	tip.Width = w + 2*pad
	tip.Height = h + 2*pad

	// 指针在右半屏时提示框放在左侧，在下半屏时放在上方
	if cx > float64(s.viewW)/2 {
		tip.X = cx - tooltipCursorOffset - tip.Width
	} else {
		tip.X = cx + tooltipCursorOffset
	}
	if cy > float64(s.viewH)/2 {
		tip.Y = cy - tooltipCursorOffset - tip.Height
	} else {
		tip.Y = cy + tooltipCursorOffset
	}

	tip.X = clampRange(tip.X, 0, float64(s.viewW)-tip.Width)
	tip.Y = clampRange(tip.Y, 0, float64(s.viewH)-tip.Height)
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
