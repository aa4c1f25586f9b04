package systems

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"seehuhn.de/go/geom/vec"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// outlineWidth 瓦片地图轮廓线宽（屏幕像素）
const outlineWidth = 2

// HighlightRenderSystem 绘制高亮代理和瓦片地图轮廓
// 空矩形和完全透明的代理不绘制
type HighlightRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewHighlightRenderSystem 创建高亮渲染系统
func NewHighlightRenderSystem(em *ecs.EntityManager) *HighlightRenderSystem {
	return &HighlightRenderSystem{entityManager: em}
}

// Draw 按 z 顺序绘制所有高亮
func (s *HighlightRenderSystem) Draw(screen *ebiten.Image, camera ebiten.GeoM) {
	em := s.entityManager

	ids := ecs.GetEntitiesWith3[*components.SelectionBoundsComponent, *components.SelectionColorComponent, *components.GlobalTransformComponent](em)
	sort.SliceStable(ids, func(i, j int) bool {
		gi, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, ids[i])
		gj, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, ids[j])
		return gi.Z < gj.Z
	})

	for _, id := range ids {
		bounds, _ := ecs.GetComponent[*components.SelectionBoundsComponent](em, id)
		col, _ := ecs.GetComponent[*components.SelectionColorComponent](em, id)
		if col.Color.A == 0 || utils.RectIsEmpty(bounds.Rect) {
			continue
		}
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		drawLocalRect(screen, bounds.Rect, gt.Matrix, camera, col.Color)
	}

	s.drawTilemapOutlines(screen, camera)
}

func (s *HighlightRenderSystem) drawTilemapOutlines(screen *ebiten.Image, camera ebiten.GeoM) {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.TilemapOutlineComponent, *components.SelectionColorComponent](em) {
		outline, _ := ecs.GetComponent[*components.TilemapOutlineComponent](em, id)
		col, _ := ecs.GetComponent[*components.SelectionColorComponent](em, id)
		tm, ok1 := ecs.GetComponent[*components.TilemapComponent](em, outline.Tilemap)
		gt, ok2 := ecs.GetComponent[*components.GlobalTransformComponent](em, outline.Tilemap)
		if !ok1 || !ok2 {
			continue
		}

		r := TilemapBounds(tm)
		corners := [4]vec.Vec2{
			{X: r.LLx, Y: r.LLy},
			{X: r.URx, Y: r.LLy},
			{X: r.URx, Y: r.URy},
			{X: r.LLx, Y: r.URy},
		}
		var pts [4][2]float64
		for i, c := range corners {
			w := utils.ApplyPoint(gt.Matrix, c)
			pts[i][0], pts[i][1] = camera.Apply(w.X, w.Y)
		}
		for i := range pts {
			a, b := pts[i], pts[(i+1)%4]
			vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), outlineWidth, col.Color, true)
		}
	}
}
