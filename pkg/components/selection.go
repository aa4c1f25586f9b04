package components

import (
	"image/color"

	"seehuhn.de/go/geom/rect"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

// SelectionComponent 已确认选择的高亮代理
// Target 是弱引用，目标可能已被删除
type SelectionComponent struct {
	Target ecs.EntityID
}

// SelectedComponent 挂在被选中的实体上，指回它的高亮代理
type SelectedComponent struct {
	Selection ecs.EntityID
}

// PendingHighlightComponent 标记待定高亮代理（每个选择会话一个）
type PendingHighlightComponent struct{}

// SelectionBoundsComponent 高亮代理在目标局部空间中的包围矩形
type SelectionBoundsComponent struct {
	Rect rect.Rect
}

// SelectionColorComponent 高亮颜色（alpha 已按用途调整）
type SelectionColorComponent struct {
	Color color.NRGBA
}

// EditorCleanupComponent 退出编辑器时需要销毁的实体
type EditorCleanupComponent struct{}

// TilemapOutlineComponent 当前活动瓦片地图的轮廓覆盖层
type TilemapOutlineComponent struct {
	Tilemap ecs.EntityID
}
