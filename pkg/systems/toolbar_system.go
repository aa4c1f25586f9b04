package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/tool"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// ImageSource 按资源键获取图像
type ImageSource interface {
	GetImageByID(id string) *ebiten.Image
}

// 工具栏按钮背景的资源键
const (
	ButtonNormalImageKey  = "editor.image.button.normal"
	ButtonHoverImageKey   = "editor.image.button.hover"
	ButtonPressedImageKey = "editor.image.button.pressed"
)

// ToolbarSystem 工具栏交互系统
//
// 职责：
//   - 在屏幕右上角为每个工具创建一个按钮
//   - 更新按钮的悬停/按下/激活状态
//   - 点击按钮时请求切换工具，并吞掉这次点击
type ToolbarSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	tools         *tool.State
	cfg           config.ToolbarConfig
	viewW         int

	buttons []ecs.EntityID
}

// NewToolbarSystem 创建工具栏系统（按钮由 Spawn 创建）
func NewToolbarSystem(em *ecs.EntityManager, state *game.EditorState, tools *tool.State, cfg config.ToolbarConfig, viewW int) *ToolbarSystem {
	return &ToolbarSystem{
		entityManager: em,
		state:         state,
		tools:         tools,
		cfg:           cfg,
		viewW:         viewW,
	}
}

// Spawn 创建工具栏按钮，images 可为 nil（不加载图像）
func (s *ToolbarSystem) Spawn(images ImageSource) {
	em := s.entityManager
	s.buttons = s.buttons[:0]

	n := len(tool.All)
	for i, t := range tool.All {
		id := em.CreateEntity()
		btn := &components.ToolbarButtonComponent{
			Tool:     t,
			X:        s.buttonX(i, n),
			Y:        s.cfg.Margin,
			Size:     s.cfg.ButtonSize,
			IconSize: s.cfg.IconSize,
		}
		if images != nil {
			btn.NormalImage = images.GetImageByID(ButtonNormalImageKey)
			btn.HoverImage = images.GetImageByID(ButtonHoverImageKey)
			btn.PressedImage = images.GetImageByID(ButtonPressedImageKey)
			btn.Icon = images.GetImageByID(t.IconKey())
		}
		tip := t.Tooltip()
		ecs.AddComponent(em, id, btn)
		ecs.AddComponent(em, id, components.NewTooltipComponent(id, tip.Title, tip.Text))
		ecs.AddComponent(em, id, &components.EditorCleanupComponent{})
		s.buttons = append(s.buttons, id)
	}
	log.Printf("[ToolbarSystem] Spawned %d tool buttons", n)
}

// buttonX 第 i 个按钮的 x，整排按钮靠右对齐
func (s *ToolbarSystem) buttonX(i, n int) float64 {
	step := s.cfg.ButtonSize + s.cfg.Margin
	return float64(s.viewW) - float64(n-i)*step
}

// SetViewport 窗口宽度变化时重新布局
func (s *ToolbarSystem) SetViewport(w int) {
	s.viewW = w
	for i, id := range s.buttons {
		if btn, ok := ecs.GetComponent[*components.ToolbarButtonComponent](s.entityManager, id); ok {
			btn.X = s.buttonX(i, len(s.buttons))
		}
	}
}

// Update 更新按钮状态；返回指针是否在工具栏上，以及点击是否被工具栏消费
func (s *ToolbarSystem) Update(in *utils.FrameInput) (overUI, consumed bool) {
	em := s.entityManager
	x, y := float64(in.CursorX), float64(in.CursorY)
	current := s.tools.Current()

	for _, id := range ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](em) {
		btn, _ := ecs.GetComponent[*components.ToolbarButtonComponent](em, id)
		btn.Active = btn.Tool == current

		if !btn.Contains(x, y) {
			btn.State = components.UINormal
			continue
		}
		overUI = true
		switch {
		case in.ConfirmPressed:
			btn.State = components.UIClicked
			consumed = true
			if btn.Tool != current {
				s.tools.Set(btn.Tool)
				log.Printf("[ToolbarSystem] Tool %s requested", btn.Tool)
			}
		case in.PointerDown:
			btn.State = components.UIClicked
		default:
			btn.State = components.UIHovered
		}
	}

	s.state.PointerOverUI = overUI
	return overUI, consumed
}

// Reset 编辑器退出后按钮已被统一清理
func (s *ToolbarSystem) Reset() {
	s.buttons = s.buttons[:0]
}
