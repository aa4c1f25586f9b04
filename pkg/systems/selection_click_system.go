package systems

import (
	"log"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// SelectionClickSystem 处理选择模式下的确认点击
//
// 同一次点击：
//  1. 如果（确认之前）注册表为空，取消命中的所有选择
//  2. 把待定目标提升为选择，并从注册表移除
//
// 步骤 1 先观察注册表，所以确认造成的清空不会在同一帧触发取消选择。
type SelectionClickSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	sessions      SessionProvider
}

// NewSelectionClickSystem 创建点击系统
func NewSelectionClickSystem(em *ecs.EntityManager, state *game.EditorState, sessions SessionProvider) *SelectionClickSystem {
	return &SelectionClickSystem{entityManager: em, state: state, sessions: sessions}
}

// Update 处理本帧的确认输入
func (s *SelectionClickSystem) Update(in *utils.FrameInput) {
	session := s.sessions.Session()
	if session == nil || !in.ConfirmPressed {
		return
	}

	if session.Registry.IsEmpty() {
		s.deselectUnderCursor()
	}
	s.confirm(session)
}

// confirm 把待定目标提升为选择
func (s *SelectionClickSystem) confirm(session *selection.Session) {
	em := s.entityManager
	target := session.Cursor.Target()
	defer session.Cursor.Clear()

	if target == 0 {
		return
	}
	cand, ok := session.Registry.Get(target)
	if !ok {
		return
	}
	gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, target)
	if !ok || !em.Exists(target) {
		return
	}
	session.Registry.Apply(selection.Remove(target))

	if sel, ok := ecs.GetComponent[*components.SelectedComponent](em, target); ok && em.Exists(sel.Selection) {
		return
	}

	highlight := em.CreateEntity()
	ecs.AddComponent(em, highlight, &components.SelectionComponent{Target: target})
	ecs.AddComponent(em, highlight, &components.SelectionBoundsComponent{Rect: cand.Rect})
	ecs.AddComponent(em, highlight, &components.SelectionColorComponent{Color: selection.WithAlpha(cand.Color, session.SelectionAlpha)})
	ecs.AddComponent(em, highlight, &components.GlobalTransformComponent{Matrix: gt.Matrix, Z: gt.Z})
	ecs.AddComponent(em, highlight, &components.EditorCleanupComponent{})
	ecs.AddComponent(em, target, &components.SelectedComponent{Selection: highlight})

	log.Printf("[SelectionClickSystem] Selected entity %d (highlight %d)", target, highlight)
}

// deselectUnderCursor 取消所有包含世界光标的选择
func (s *SelectionClickSystem) deselectUnderCursor() {
	if !s.state.CursorValid {
		return
	}
	em := s.entityManager

	var hits []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith3[*components.SelectionComponent, *components.SelectionBoundsComponent, *components.GlobalTransformComponent](em) {
		bounds, _ := ecs.GetComponent[*components.SelectionBoundsComponent](em, id)
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		local, ok := utils.WorldToLocal(gt.Matrix, s.state.WorldCursor)
		if ok && utils.RectContains(bounds.Rect, local) {
			hits = append(hits, id)
		}
	}

	for _, highlight := range hits {
		sel, _ := ecs.GetComponent[*components.SelectionComponent](em, highlight)
		if marker, ok := ecs.GetComponent[*components.SelectedComponent](em, sel.Target); ok && marker.Selection == highlight {
			ecs.RemoveComponent[*components.SelectedComponent](em, sel.Target)
		}
		destroyWithChildren(em, highlight)
		log.Printf("[SelectionClickSystem] Deselected entity %d (highlight %d)", sel.Target, highlight)
	}
}
