package systems

import (
	"log"

	"seehuhn.de/go/geom/vec"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// TranslateToolSystem 平移工具：按住指针拖动所有选中实体
//
// 世界坐标的位移换算到父实体空间后再加到局部平移上，
// 因此带旋转/缩放的父实体下的子实体也跟随指针移动。
type TranslateToolSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
}

// NewTranslateToolSystem 创建平移工具系统
func NewTranslateToolSystem(em *ecs.EntityManager, state *game.EditorState) *TranslateToolSystem {
	return &TranslateToolSystem{entityManager: em, state: state}
}

// Update 在变换传播之前运行
func (s *TranslateToolSystem) Update(in *utils.FrameInput) {
	em := s.entityManager

	if !in.PointerDown {
		if s.state.Dragging {
			log.Printf("[TranslateToolSystem] Drag finished")
		}
		s.state.Dragging = false
		return
	}

	selected := ecs.GetEntitiesWith2[*components.SelectedComponent, *components.TransformComponent](em)
	if in.ConfirmPressed && s.state.CursorValid && len(selected) > 0 {
		s.state.Dragging = true
		log.Printf("[TranslateToolSystem] Dragging %d entities", len(selected))
		return
	}
	if !s.state.Dragging {
		return
	}

	delta := s.state.CursorDelta()
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	for _, id := range selected {
		tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		// 祖先已经在移动，子实体跟着走
		if s.hasSelectedAncestor(tf.Parent) {
			continue
		}
		d := s.parentSpaceDelta(tf.Parent, delta)
		tf.X += d.X
		tf.Y += d.Y
	}
}

// hasSelectedAncestor 从 parent 开始沿父链查找选中的实体
func (s *TranslateToolSystem) hasSelectedAncestor(parent ecs.EntityID) bool {
	em := s.entityManager
	seen := make(map[ecs.EntityID]bool)
	for id := parent; id != 0 && !seen[id]; {
		seen[id] = true
		if ecs.HasComponent[*components.SelectedComponent](em, id) {
			return true
		}
		tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			return false
		}
		id = tf.Parent
	}
	return false
}

// parentSpaceDelta 把世界位移换算到父实体的局部空间
func (s *TranslateToolSystem) parentSpaceDelta(parent ecs.EntityID, delta vec.Vec2) vec.Vec2 {
	if parent == 0 {
		return delta
	}
	gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, parent)
	if !ok {
		return delta
	}
	inv, ok := utils.Invert(gt.Matrix)
	if !ok {
		return delta
	}
	return utils.ApplyLinear(inv, delta)
}
