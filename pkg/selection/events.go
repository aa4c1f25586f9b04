package selection

import (
	"image/color"

	"github.com/gonewx/leveleditor/pkg/ecs"
	"seehuhn.de/go/geom/rect"
)

// EventKind 候选事件类型
type EventKind int

const (
	// EventInsert 目标当前与指针重叠（每帧重复断言）
	EventInsert EventKind = iota
	// EventRemove 目标在本帧不再与指针重叠
	EventRemove
)

func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "Insert"
	case EventRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// CandidateEvent 生产者每帧为每个目标发出的一条事件
type CandidateEvent struct {
	Kind   EventKind
	Target ecs.EntityID
	// Color 和 Rect 仅对 EventInsert 有意义
	Color color.NRGBA
	Rect  rect.Rect // 目标局部空间中的包围矩形
}

// Insert 构造插入事件
func Insert(target ecs.EntityID, c color.NRGBA, r rect.Rect) CandidateEvent {
	return CandidateEvent{Kind: EventInsert, Target: target, Color: c, Rect: r}
}

// Remove 构造移除事件
func Remove(target ecs.EntityID) CandidateEvent {
	return CandidateEvent{Kind: EventRemove, Target: target}
}
