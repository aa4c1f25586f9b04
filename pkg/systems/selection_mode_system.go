package systems

import (
	"log"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/selection"
)

// SelectionModeSystem 管理选择会话的生命周期
//
// 进入 SelectEntities 工具时创建会话（Registry、Cursor、Inbox、待定高亮），
// 离开时同步销毁。会话不是全局状态，其他系统通过 Session() 获取。
type SelectionModeSystem struct {
	entityManager *ecs.EntityManager
	opts          selection.Options
	session       *selection.Session
}

// NewSelectionModeSystem 创建会话管理系统（初始不在选择模式）
func NewSelectionModeSystem(em *ecs.EntityManager, opts selection.Options) *SelectionModeSystem {
	return &SelectionModeSystem{entityManager: em, opts: opts}
}

// Session 当前会话，不在选择模式时为 nil
func (s *SelectionModeSystem) Session() *selection.Session {
	return s.session
}

// Active 是否在选择模式
func (s *SelectionModeSystem) Active() bool {
	return s.session != nil
}

// Enter 进入选择模式，已在选择模式时无操作
func (s *SelectionModeSystem) Enter() {
	if s.session != nil {
		return
	}
	em := s.entityManager
	s.session = selection.NewSession(s.opts)

	proxy := em.CreateEntity()
	ecs.AddComponent(em, proxy, &components.PendingHighlightComponent{})
	ecs.AddComponent(em, proxy, &components.SelectionBoundsComponent{})
	ecs.AddComponent(em, proxy, &components.SelectionColorComponent{Color: selection.Transparent})
	ecs.AddComponent(em, proxy, components.NewGlobalTransform())
	ecs.AddComponent(em, proxy, &components.EditorCleanupComponent{})
	s.session.PendingHighlight = proxy

	log.Printf("[SelectionModeSystem] Entered selection mode (pending highlight %d)", proxy)
}

// Exit 离开选择模式：销毁待定高亮并丢弃会话
// 已确认的选择高亮保留
func (s *SelectionModeSystem) Exit() {
	if s.session == nil {
		return
	}
	if s.session.PendingHighlight != 0 {
		s.entityManager.DestroyEntity(s.session.PendingHighlight)
	}
	log.Printf("[SelectionModeSystem] Left selection mode (%d candidates dropped)", s.session.Registry.Len())
	s.session = nil
}

// CleanupEditor 退出编辑器：销毁所有编辑器实体，移除所有选中标记
func CleanupEditor(em *ecs.EntityManager) {
	cleaned := 0
	for _, id := range ecs.GetEntitiesWith1[*components.EditorCleanupComponent](em) {
		em.DestroyEntity(id)
		cleaned++
	}
	selected := 0
	for _, id := range ecs.GetEntitiesWith1[*components.SelectedComponent](em) {
		ecs.RemoveComponent[*components.SelectedComponent](em, id)
		selected++
	}
	log.Printf("[EditorCleanup] Destroyed %d editor entities, cleared %d selections", cleaned, selected)
}
