package systems

import (
	"seehuhn.de/go/geom/rect"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/selection"
)

// SessionProvider 提供当前的选择会话
// 不在 SelectEntities 工具下时返回 nil
type SessionProvider interface {
	Session() *selection.Session
}

// DepthOf 从世界变换解析目标的 z
func DepthOf(em *ecs.EntityManager) selection.DepthFunc {
	return func(target ecs.EntityID) (float64, bool) {
		if !em.Exists(target) {
			return 0, false
		}
		gt, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, target)
		if !ok {
			return 0, false
		}
		return gt.Z, true
	}
}

// isEditorEntity 高亮代理和覆盖层不参与拾取
func isEditorEntity(em *ecs.EntityManager, id ecs.EntityID) bool {
	return ecs.HasComponent[*components.EditorCleanupComponent](em, id)
}

// SpriteBounds 精灵在局部空间中的包围矩形
// 尺寸优先使用 CustomWidth/CustomHeight，否则使用图像尺寸
func SpriteBounds(sprite *components.SpriteComponent) (rect.Rect, bool) {
	w, h := sprite.CustomWidth, sprite.CustomHeight
	if (w == 0 || h == 0) && sprite.Image != nil {
		b := sprite.Image.Bounds()
		if w == 0 {
			w = float64(b.Dx())
		}
		if h == 0 {
			h = float64(b.Dy())
		}
	}
	if w <= 0 || h <= 0 {
		return rect.Rect{}, false
	}
	ax, ay := sprite.AnchorX, sprite.AnchorY
	return rect.Rect{
		LLx: (-0.5 - ax) * w,
		LLy: (-0.5 - ay) * h,
		URx: (0.5 - ax) * w,
		URy: (0.5 - ay) * h,
	}, true
}

// TilemapBounds 方形瓦片地图的网格范围
// 格子以中心对齐，因此范围是 [-grid/2, size*grid - grid/2]
func TilemapBounds(tm *components.TilemapComponent) rect.Rect {
	return rect.Rect{
		LLx: -tm.GridW / 2,
		LLy: -tm.GridH / 2,
		URx: float64(tm.Cols)*tm.GridW - tm.GridW/2,
		URy: float64(tm.Rows)*tm.GridH - tm.GridH/2,
	}
}

// destroyWithChildren 销毁实体及其直接子实体
func destroyWithChildren(em *ecs.EntityManager, id ecs.EntityID) {
	for _, child := range ecs.GetEntitiesWith1[*components.TransformComponent](em) {
		tf, _ := ecs.GetComponent[*components.TransformComponent](em, child)
		if tf.Parent == id {
			em.DestroyEntity(child)
		}
	}
	em.DestroyEntity(id)
}
