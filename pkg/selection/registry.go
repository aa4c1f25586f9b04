package selection

import (
	"image/color"
	"sort"

	"github.com/gonewx/leveleditor/pkg/ecs"
	"seehuhn.de/go/geom/rect"
)

// Candidate 候选项：高亮颜色 + 局部包围矩形
type Candidate struct {
	Color color.NRGBA
	Rect  rect.Rect
}

// Registry 候选注册表
//
// 每个目标最多出现一次；Insert 覆盖已存在的条目，Remove 不存在的键是空操作。
// 退化矩形（min > max）照常接受，下游的包含测试自然会全部拒绝。
type Registry struct {
	entries map[ecs.EntityID]Candidate
	// revision 每次实际修改都会递增，作为"本帧是否变化"的信号
	revision uint64
	// inserted 最近一次 ApplyAll 中收到过 Insert 的目标
	inserted map[ecs.EntityID]struct{}
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[ecs.EntityID]Candidate),
		inserted: make(map[ecs.EntityID]struct{}),
	}
}

// Apply 应用单条事件，返回注册表是否被修改
func (r *Registry) Apply(ev CandidateEvent) bool {
	switch ev.Kind {
	case EventInsert:
		r.entries[ev.Target] = Candidate{Color: ev.Color, Rect: ev.Rect}
		r.inserted[ev.Target] = struct{}{}
		r.revision++
		return true
	case EventRemove:
		if _, ok := r.entries[ev.Target]; !ok {
			return false
		}
		delete(r.entries, ev.Target)
		delete(r.inserted, ev.Target)
		r.revision++
		return true
	}
	return false
}

// ApplyAll 按事件顺序（而非目标顺序）应用一帧的事件
// 返回本次是否有任何修改
func (r *Registry) ApplyAll(events []CandidateEvent) bool {
	clear(r.inserted)
	changed := false
	for _, ev := range events {
		if r.Apply(ev) {
			changed = true
		}
	}
	return changed
}

// Get 查询候选项
func (r *Registry) Get(target ecs.EntityID) (Candidate, bool) {
	c, ok := r.entries[target]
	return c, ok
}

// Contains 目标是否在注册表中
func (r *Registry) Contains(target ecs.EntityID) bool {
	_, ok := r.entries[target]
	return ok
}

// WasInserted 最近一次 ApplyAll 中是否收到过该目标的 Insert
func (r *Registry) WasInserted(target ecs.EntityID) bool {
	_, ok := r.inserted[target]
	return ok
}

// Len 候选数量
func (r *Registry) Len() int {
	return len(r.entries)
}

// IsEmpty 是否没有任何候选
func (r *Registry) IsEmpty() bool {
	return len(r.entries) == 0
}

// Revision 修改计数
func (r *Registry) Revision() uint64 {
	return r.revision
}

// Targets 返回所有目标，按 EntityID 升序
func (r *Registry) Targets() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear 清空注册表
func (r *Registry) Clear() {
	if len(r.entries) == 0 {
		return
	}
	clear(r.entries)
	clear(r.inserted)
	r.revision++
}
