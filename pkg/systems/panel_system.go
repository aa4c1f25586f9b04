package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// panelGrabMargin 面板拖出窗口时至少保留在窗口内的宽度
const panelGrabMargin = 24.0

// PanelSpec 创建面板的参数
type PanelSpec struct {
	Title   string
	X, Y    float64
	Lines   []string
	Content func() []string
	Hidden  bool
}

// PanelSystem 浮动面板的交互系统
//
// 职责：
//   - 点击面板时将其置顶，并吞掉这次点击
//   - 按住标题栏拖动面板
//   - 双击标题栏折叠/展开内容区
//   - 刷新面板内容并计算内容区高度
type PanelSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.PanelConfig
	face          text.Face
	viewW, viewH  int

	lastX, lastY int
	hasLast      bool
}

// NewPanelSystem 创建面板系统，face 用于计算行高
func NewPanelSystem(em *ecs.EntityManager, cfg config.PanelConfig, face text.Face, viewW, viewH int) *PanelSystem {
	return &PanelSystem{
		entityManager: em,
		cfg:           cfg,
		face:          face,
		viewW:         viewW,
		viewH:         viewH,
	}
}

// Spawn 创建面板实体，后创建的面板叠在上面
func (s *PanelSystem) Spawn(specs ...PanelSpec) []ecs.EntityID {
	em := s.entityManager
	order := len(SortedPanels(em))
	ids := make([]ecs.EntityID, 0, len(specs))

	for _, spec := range specs {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PanelComponent{
			Title:           spec.Title,
			X:               spec.X,
			Y:               spec.Y,
			Width:           s.cfg.Width,
			TitleHeight:     s.titleHeight(),
			Lines:           spec.Lines,
			Content:         spec.Content,
			Hidden:          spec.Hidden,
			Order:           order,
			SinceTitleClick: -1,
		})
		ecs.AddComponent(em, id, &components.EditorCleanupComponent{})
		ids = append(ids, id)
		order++
	}
	s.Refresh()
	log.Printf("[PanelSystem] Spawned %d panels", len(ids))
	return ids
}

func (s *PanelSystem) titleHeight() float64 {
	return utils.LineHeight(s.face) + 2*s.cfg.Padding
}

// SetViewport 窗口尺寸变化
func (s *PanelSystem) SetViewport(w, h int) {
	s.viewW, s.viewH = w, h
}

// SortedPanels 所有面板按叠放次序升序（次序相同按 EntityID）
func SortedPanels(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith1[*components.PanelComponent](em)
	sort.SliceStable(ids, func(i, j int) bool {
		a, _ := ecs.GetComponent[*components.PanelComponent](em, ids[i])
		b, _ := ecs.GetComponent[*components.PanelComponent](em, ids[j])
		return a.Order < b.Order
	})
	return ids
}

// Update 处理拖动、置顶和双击折叠
// 返回指针是否在面板上，以及点击是否被面板消费
func (s *PanelSystem) Update(dt float64, in *utils.FrameInput) (overUI, consumed bool) {
	em := s.entityManager
	x, y := float64(in.CursorX), float64(in.CursorY)

	var dx, dy float64
	if s.hasLast {
		dx, dy = float64(in.CursorX-s.lastX), float64(in.CursorY-s.lastY)
	}
	s.lastX, s.lastY, s.hasLast = in.CursorX, in.CursorY, true

	panels := SortedPanels(em)

	for _, id := range panels {
		p, _ := ecs.GetComponent[*components.PanelComponent](em, id)
		if !p.Dragging {
			continue
		}
		if !in.PointerDown || p.Hidden {
			p.Dragging = false
			continue
		}
		p.X += dx
		p.Y += dy
		s.clampToView(p)
		overUI = true
	}

	var top ecs.EntityID
	for i := len(panels) - 1; i >= 0; i-- {
		p, _ := ecs.GetComponent[*components.PanelComponent](em, panels[i])
		if !p.Hidden && p.Contains(x, y) {
			top = panels[i]
			break
		}
	}
	if top != 0 {
		overUI = true
	}

	clicked := ecs.EntityID(0)
	if in.ConfirmPressed && top != 0 {
		consumed = true
		p, _ := ecs.GetComponent[*components.PanelComponent](em, top)
		s.focus(top)
		if p.TitleContains(x, y) {
			clicked = top
			if p.SinceTitleClick >= 0 && p.SinceTitleClick <= s.cfg.DoubleClick {
				p.Collapsed = !p.Collapsed
				log.Printf("[PanelSystem] Panel %q collapsed=%v", p.Title, p.Collapsed)
			}
			p.SinceTitleClick = 0
			p.Dragging = true
		}
	}

	// 只在没有点击的帧计时
	for _, id := range panels {
		if id == clicked {
			continue
		}
		p, _ := ecs.GetComponent[*components.PanelComponent](em, id)
		if p.SinceTitleClick < 0 {
			continue
		}
		p.SinceTitleClick += dt
		if p.SinceTitleClick > s.cfg.DoubleClick {
			p.SinceTitleClick = -1
		}
	}
	return overUI, consumed
}

// focus 把面板移到最上层，然后把次序归一化为从 0 开始
func (s *PanelSystem) focus(id ecs.EntityID) {
	em := s.entityManager
	panels := SortedPanels(em)
	if len(panels) == 0 || panels[len(panels)-1] == id {
		return
	}

	first, _ := ecs.GetComponent[*components.PanelComponent](em, panels[0])
	last, _ := ecs.GetComponent[*components.PanelComponent](em, panels[len(panels)-1])
	minOrder, maxOrder := first.Order, last.Order

	target, _ := ecs.GetComponent[*components.PanelComponent](em, id)
	target.Order = maxOrder + 1
	for _, pid := range panels {
		p, _ := ecs.GetComponent[*components.PanelComponent](em, pid)
		p.Order -= minOrder
	}
}

// clampToView 标题栏至少有一部分留在窗口内，保证面板还能拖回来
func (s *PanelSystem) clampToView(p *components.PanelComponent) {
	if s.viewW <= 0 || s.viewH <= 0 {
		return
	}
	p.X = clampRange(p.X, panelGrabMargin-p.Width, float64(s.viewW)-panelGrabMargin)
	p.Y = clampRange(p.Y, 0, float64(s.viewH)-p.TitleHeight)
}

// Refresh 刷新面板内容和内容区高度
// 在本帧选择结果确定之后调用
func (s *PanelSystem) Refresh() {
	em := s.entityManager
	lineH := utils.LineHeight(s.face)
	for _, id := range ecs.GetEntitiesWith1[*components.PanelComponent](em) {
		p, _ := ecs.GetComponent[*components.PanelComponent](em, id)
		if p.Content != nil {
			p.Lines = p.Content()
		}
		p.ContentHeight = float64(max(len(p.Lines), 1))*lineH + 2*s.cfg.Padding
	}
}

// SetHidden 显示或隐藏面板
func (s *PanelSystem) SetHidden(id ecs.EntityID, hidden bool) {
	if p, ok := ecs.GetComponent[*components.PanelComponent](s.entityManager, id); ok {
		p.Hidden = hidden
		if hidden {
			p.Dragging = false
		}
	}
}

// IsHidden 面板不存在时也视为隐藏
func (s *PanelSystem) IsHidden(id ecs.EntityID) bool {
	p, ok := ecs.GetComponent[*components.PanelComponent](s.entityManager, id)
	return !ok || p.Hidden
}

// Reset 编辑器退出后面板已被统一清理
func (s *PanelSystem) Reset() {
	s.hasLast = false
}

// SelectionInspectorLines 选择检查面板的内容：每个选中实体一行
func SelectionInspectorLines(em *ecs.EntityManager, state *game.EditorState) []string {
	targets := ecs.GetEntitiesWith1[*components.SelectedComponent](em)
	lines := make([]string, 0, len(targets)+1)
	for _, id := range targets {
		gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		if !ok {
			lines = append(lines, fmt.Sprintf("#%d", id))
			continue
		}
		pos := utils.Translation(gt.Matrix)
		lines = append(lines, fmt.Sprintf("#%d  (%.0f, %.0f)  z=%.2f", id, pos.X, pos.Y, gt.Z))
	}
	if len(lines) == 0 {
		lines = append(lines, "Nothing selected")
	}
	if state != nil && state.SelectedTilemap != 0 {
		lines = append(lines, fmt.Sprintf("Tilemap #%d", state.SelectedTilemap))
	}
	return lines
}
