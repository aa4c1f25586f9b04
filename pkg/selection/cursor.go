package selection

import (
	"sort"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

// DepthFunc 解析目标当前世界变换的 z 值
// 目标无法解析（已删除、还没有世界变换）时返回 ok=false
type DepthFunc func(target ecs.EntityID) (z float64, ok bool)

// Cursor 消歧游标：在所有候选中选出唯一的"待定"目标
//
// 不变量：target 非 0 时一定是注册表中的键。
type Cursor struct {
	target       ecs.EntityID
	seenRevision uint64
}

// NewCursor 创建没有待定目标的游标
func NewCursor() *Cursor {
	return &Cursor{}
}

// Target 当前待定目标，0 表示没有
func (c *Cursor) Target() ecs.EntityID {
	return c.target
}

// HasTarget 是否有待定目标
func (c *Cursor) HasTarget() bool {
	return c.target != 0
}

// Clear 无条件清除待定目标
func (c *Cursor) Clear() {
	c.target = 0
}

// Update 在滚轮产生非零步进或注册表发生变化时重新计算待定目标
// 返回是否进行了重新计算
func (c *Cursor) Update(reg *Registry, step int, depth DepthFunc) bool {
	if step == 0 && reg.Revision() == c.seenRevision {
		return false
	}
	c.seenRevision = reg.Revision()

	order := SortCandidates(reg, depth)
	if len(order) == 0 {
		c.target = 0
		return true
	}

	idx := 0
	for i, id := range order {
		if id == c.target {
			idx = i
			break
		}
	}
	c.target = order[wrapIndex(idx+step, len(order))]
	return true
}

// SortCandidates 按 z 升序排列可解析的候选，z 相同时按 EntityID 升序
func SortCandidates(reg *Registry, depth DepthFunc) []ecs.EntityID {
	type keyed struct {
		id ecs.EntityID
		z  float64
	}
	list := make([]keyed, 0, reg.Len())
	for id := range reg.entries {
		z, ok := depth(id)
		if !ok {
			continue
		}
		list = append(list, keyed{id: id, z: z})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].z != list[j].z {
			return list[i].z < list[j].z
		}
		return list[i].id < list[j].id
	})

	out := make([]ecs.EntityID, len(list))
	for i, k := range list {
		out[i] = k.id
	}
	return out
}

// wrapIndex 双向取模：小于 0 回绕到末尾，大于等于 n 回绕到开头
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
