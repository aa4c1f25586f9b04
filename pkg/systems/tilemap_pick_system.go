package systems

import (
	"image/color"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
)

// TilemapPickSystem 瓦片地图的候选生产者
// 只支持方形网格，其他网格类型不产生候选
type TilemapPickSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	sessions      SessionProvider
	color         color.NRGBA

	tracker hoverTracker
}

// NewTilemapPickSystem 创建瓦片地图拾取系统
func NewTilemapPickSystem(em *ecs.EntityManager, state *game.EditorState, sessions SessionProvider, c color.NRGBA) *TilemapPickSystem {
	return &TilemapPickSystem{
		entityManager: em,
		state:         state,
		sessions:      sessions,
		color:         c,
		tracker:       newHoverTracker(),
	}
}

// Update 向会话的 Inbox 推送本帧的候选事件
func (s *TilemapPickSystem) Update() {
	session := s.sessions.Session()
	if session == nil {
		return
	}
	em := s.entityManager
	s.tracker.begin(session)

	for _, id := range ecs.GetEntitiesWith2[*components.TilemapComponent, *components.GlobalTransformComponent](em) {
		if isEditorEntity(em, id) || ecs.HasComponent[*components.SelectedComponent](em, id) {
			continue
		}
		tm, _ := ecs.GetComponent[*components.TilemapComponent](em, id)
		if tm.Type != components.TilemapSquare {
			continue
		}
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		s.tracker.test(id, gt.Matrix, TilemapBounds(tm), s.state.WorldCursor, s.state.CursorValid, s.color)
	}

	s.tracker.finish()
}
