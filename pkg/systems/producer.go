package systems

import (
	"image/color"
	"sort"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// hoverTracker 候选生产者的公共部分
//
// 约定：重叠期间每帧发出 Insert；停止重叠（或目标消失）的那一帧发出一次 Remove。
type hoverTracker struct {
	hovered map[ecs.EntityID]bool
	seen    map[ecs.EntityID]bool
	session *selection.Session
}

func newHoverTracker() hoverTracker {
	return hoverTracker{
		hovered: make(map[ecs.EntityID]bool),
		seen:    make(map[ecs.EntityID]bool),
	}
}

// begin 开始一帧；会话变化时丢弃旧的悬停记录
func (h *hoverTracker) begin(s *selection.Session) {
	if s != h.session {
		h.hovered = make(map[ecs.EntityID]bool)
		h.session = s
	}
	clear(h.seen)
}

// test 对一个目标做命中测试并发出事件
func (h *hoverTracker) test(id ecs.EntityID, world matrix.Matrix, bounds rect.Rect, cursor vec.Vec2, cursorValid bool, c color.NRGBA) {
	h.seen[id] = true

	overlapping := false
	if cursorValid {
		if local, ok := utils.WorldToLocal(world, cursor); ok {
			overlapping = utils.RectContains(bounds, local)
		}
	}

	switch {
	case overlapping:
		h.session.Inbox.Push(selection.Insert(id, c, bounds))
		h.hovered[id] = true
	case h.hovered[id]:
		h.session.Inbox.Push(selection.Remove(id))
		delete(h.hovered, id)
	}
}

// finish 为本帧没有出现的悬停目标发出 Remove
func (h *hoverTracker) finish() {
	var gone []ecs.EntityID
	for id := range h.hovered {
		if !h.seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		h.session.Inbox.Push(selection.Remove(id))
		delete(h.hovered, id)
	}
}
