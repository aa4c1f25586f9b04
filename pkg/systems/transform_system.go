package systems

import (
	"log"

	"seehuhn.de/go/geom/matrix"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// TransformSystem 把局部变换沿父子链传播为世界变换
//
// 没有 TransformComponent 的实体（高亮代理）不受影响，
// 它们的世界变换由 TransformFollowSystem 维护。
type TransformSystem struct {
	entityManager *ecs.EntityManager

	// 单次 Update 内的计算结果
	resolved map[ecs.EntityID]worldXform
	visiting map[ecs.EntityID]bool
	// 已报告过循环的实体，避免每帧刷日志
	cycleLogged map[ecs.EntityID]bool
}

type worldXform struct {
	m matrix.Matrix
	z float64
}

// NewTransformSystem 创建变换传播系统
func NewTransformSystem(em *ecs.EntityManager) *TransformSystem {
	return &TransformSystem{
		entityManager: em,
		cycleLogged:   make(map[ecs.EntityID]bool),
	}
}

// Update 计算所有实体的世界变换，并设置 Changed 标志
func (s *TransformSystem) Update() {
	em := s.entityManager
	s.resolved = make(map[ecs.EntityID]worldXform)
	s.visiting = make(map[ecs.EntityID]bool)

	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](em) {
		w := s.resolve(id)

		gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		if !ok {
			ecs.AddComponent(em, id, &components.GlobalTransformComponent{Matrix: w.m, Z: w.z, Changed: true})
			continue
		}
		gt.Changed = gt.Matrix != w.m || gt.Z != w.z
		gt.Matrix = w.m
		gt.Z = w.z
	}
}

// resolve 递归计算世界变换
func (s *TransformSystem) resolve(id ecs.EntityID) worldXform {
	if w, ok := s.resolved[id]; ok {
		return w
	}
	em := s.entityManager

	tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		// 父实体没有局部变换时，直接使用它已有的世界变换
		if gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, id); ok {
			return worldXform{m: gt.Matrix, z: gt.Z}
		}
		return worldXform{m: matrix.Identity}
	}

	local := worldXform{
		m: utils.ComposeTRS(tf.X, tf.Y, tf.Rotation, tf.ScaleX, tf.ScaleY),
		z: tf.Z,
	}

	w := local
	if tf.Parent != 0 && em.Exists(tf.Parent) {
		if s.visiting[id] {
			if !s.cycleLogged[id] {
				log.Printf("[TransformSystem] Warning: parent cycle at entity %d, treating as root", id)
				s.cycleLogged[id] = true
			}
			return local
		}
		s.visiting[id] = true
		parent := s.resolve(tf.Parent)
		delete(s.visiting, id)

		w = worldXform{
			m: utils.Concat(local.m, parent.m),
			z: local.z + parent.z,
		}
	}

	s.resolved[id] = w
	return w
}
