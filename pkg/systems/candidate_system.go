package systems

import (
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// CandidateSystem 在所有生产者之后运行：
// 封闭 Inbox，按到达顺序把本帧事件应用到注册表，
// 然后根据滚轮步进和注册表变化重新确定待定目标。
type CandidateSystem struct {
	entityManager *ecs.EntityManager
	sessions      SessionProvider
}

// NewCandidateSystem 创建候选系统
func NewCandidateSystem(em *ecs.EntityManager, sessions SessionProvider) *CandidateSystem {
	return &CandidateSystem{entityManager: em, sessions: sessions}
}

// Update 汇总候选并更新消歧游标
func (s *CandidateSystem) Update(in *utils.FrameInput) {
	session := s.sessions.Session()
	if session == nil {
		return
	}

	session.Inbox.Seal()
	session.Registry.ApplyAll(session.Inbox.Drain())

	step := session.Scroll.Step(in.Scroll)
	session.Cursor.Update(session.Registry, step, DepthOf(s.entityManager))
}
