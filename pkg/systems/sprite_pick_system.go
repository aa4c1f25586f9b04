package systems

import (
	"image/color"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
)

// SpritePickSystem 精灵的候选生产者
// 用精灵包围盒（考虑锚点和自定义尺寸）测试世界光标
type SpritePickSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	sessions      SessionProvider
	color         color.NRGBA

	tracker hoverTracker
}

// NewSpritePickSystem 创建精灵拾取系统，c 为候选高亮颜色
func NewSpritePickSystem(em *ecs.EntityManager, state *game.EditorState, sessions SessionProvider, c color.NRGBA) *SpritePickSystem {
	return &SpritePickSystem{
		entityManager: em,
		state:         state,
		sessions:      sessions,
		color:         c,
		tracker:       newHoverTracker(),
	}
}

// Update 向会话的 Inbox 推送本帧的候选事件
func (s *SpritePickSystem) Update() {
	session := s.sessions.Session()
	if session == nil {
		return
	}
	em := s.entityManager
	s.tracker.begin(session)

	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.GlobalTransformComponent](em) {
		// 已选中的实体和编辑器自身的实体不再作为候选
		if isEditorEntity(em, id) || ecs.HasComponent[*components.SelectedComponent](em, id) {
			continue
		}
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
		bounds, ok := SpriteBounds(sprite)
		if !ok {
			continue
		}
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		s.tracker.test(id, gt.Matrix, bounds, s.state.WorldCursor, s.state.CursorValid, s.color)
	}

	s.tracker.finish()
}
