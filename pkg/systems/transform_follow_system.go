package systems

import (
	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/selection"
)

// TransformFollowSystem 在变换传播之后让高亮贴住目标
//
//   - 选择高亮：目标世界变换本帧变化时复制
//   - 待定高亮：目标世界变换变化或待定目标本身变化时复制
//
// 目标不存在时保留代理上一次的变换。
type TransformFollowSystem struct {
	entityManager *ecs.EntityManager
	sessions      SessionProvider

	session        *selection.Session
	pendingTracked ecs.EntityID
}

// NewTransformFollowSystem 创建跟随系统
func NewTransformFollowSystem(em *ecs.EntityManager, sessions SessionProvider) *TransformFollowSystem {
	return &TransformFollowSystem{entityManager: em, sessions: sessions}
}

// Update 同步所有高亮代理的世界变换
func (s *TransformFollowSystem) Update() {
	em := s.entityManager

	for _, id := range ecs.GetEntitiesWith2[*components.SelectionComponent, *components.GlobalTransformComponent](em) {
		sel, _ := ecs.GetComponent[*components.SelectionComponent](em, id)
		target, ok := s.targetTransform(sel.Target)
		if !ok || !target.Changed {
			continue
		}
		proxy, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		proxy.Matrix = target.Matrix
		proxy.Z = target.Z
	}

	s.followPending()
}

func (s *TransformFollowSystem) followPending() {
	session := s.sessions.Session()
	if session != s.session {
		s.session = session
		s.pendingTracked = 0
	}
	if session == nil {
		return
	}

	pending := session.Cursor.Target()
	targetChanged := pending != s.pendingTracked
	s.pendingTracked = pending
	if pending == 0 {
		return
	}

	target, ok := s.targetTransform(pending)
	if !ok || !(target.Changed || targetChanged) {
		return
	}
	proxy, ok := ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, session.PendingHighlight)
	if !ok {
		return
	}
	proxy.Matrix = target.Matrix
	proxy.Z = target.Z
}

// targetTransform 弱引用解析：目标可能已被删除
func (s *TransformFollowSystem) targetTransform(target ecs.EntityID) (*components.GlobalTransformComponent, bool) {
	if !s.entityManager.Exists(target) {
		return nil, false
	}
	return ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, target)
}
