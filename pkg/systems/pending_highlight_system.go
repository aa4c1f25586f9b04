package systems

import (
	"seehuhn.de/go/geom/rect"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/selection"
)

// PendingHighlightSystem 让待定高亮代理与待定候选保持一致
//
// 只在待定目标变化、或本帧收到该目标的 Insert 时复制矩形和颜色；
// 没有待定目标（或目标不在注册表中）时清空为空矩形 + 透明色。
type PendingHighlightSystem struct {
	entityManager *ecs.EntityManager
	sessions      SessionProvider

	session    *selection.Session
	lastTarget ecs.EntityID
}

// NewPendingHighlightSystem 创建待定高亮系统
func NewPendingHighlightSystem(em *ecs.EntityManager, sessions SessionProvider) *PendingHighlightSystem {
	return &PendingHighlightSystem{entityManager: em, sessions: sessions}
}

// Update 更新待定高亮代理
func (s *PendingHighlightSystem) Update() {
	session := s.sessions.Session()
	if session != s.session {
		s.session = session
		s.lastTarget = 0
	}
	if session == nil {
		return
	}

	em := s.entityManager
	bounds, ok1 := ecs.GetComponent[*components.SelectionBoundsComponent](em, session.PendingHighlight)
	col, ok2 := ecs.GetComponent[*components.SelectionColorComponent](em, session.PendingHighlight)
	if !ok1 || !ok2 {
		return
	}

	target := session.Cursor.Target()
	cand, inRegistry := session.Registry.Get(target)
	if target == 0 || !inRegistry {
		bounds.Rect = rect.Rect{}
		col.Color = selection.Transparent
		s.lastTarget = 0
		return
	}

	if target != s.lastTarget || session.Registry.WasInserted(target) {
		bounds.Rect = cand.Rect
		col.Color = selection.WithAlpha(cand.Color, session.PendingAlpha)
	}
	s.lastTarget = target
}
