package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/rect"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// WorldRenderSystem 绘制场景内容（精灵和瓦片地图），按世界 z 升序
type WorldRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewWorldRenderSystem 创建场景渲染系统
func NewWorldRenderSystem(em *ecs.EntityManager) *WorldRenderSystem {
	return &WorldRenderSystem{entityManager: em}
}

// Draw 绘制所有可见实体
func (s *WorldRenderSystem) Draw(screen *ebiten.Image, camera ebiten.GeoM) {
	em := s.entityManager

	var ids []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.GlobalTransformComponent](em) {
		if isEditorEntity(em, id) {
			continue
		}
		if ecs.HasComponent[*components.SpriteComponent](em, id) || ecs.HasComponent[*components.TilemapComponent](em, id) {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		gi, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, ids[i])
		gj, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, ids[j])
		return gi.Z < gj.Z
	})

	for _, id := range ids {
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		if tm, ok := ecs.GetComponent[*components.TilemapComponent](em, id); ok {
			s.drawTilemap(screen, tm, gt, camera)
		}
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
			s.drawSprite(screen, sprite, gt, camera)
		}
	}
}

func (s *WorldRenderSystem) drawSprite(screen *ebiten.Image, sprite *components.SpriteComponent, gt *components.GlobalTransformComponent, camera ebiten.GeoM) {
	bounds, ok := SpriteBounds(sprite)
	if !ok {
		return
	}
	if sprite.Image == nil {
		drawLocalRect(screen, bounds, gt.Matrix, camera, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		return
	}

	w, h := utils.RectSize(bounds)
	ib := sprite.Image.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(ib.Dx()), h/float64(ib.Dy()))
	op.GeoM.Translate(bounds.LLx, bounds.LLy)
	op.GeoM.Concat(utils.GeoMFromMatrix(gt.Matrix))
	op.GeoM.Concat(camera)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite.Image, op)
}

func (s *WorldRenderSystem) drawTilemap(screen *ebiten.Image, tm *components.TilemapComponent, gt *components.GlobalTransformComponent, camera ebiten.GeoM) {
	// 非方形地图也按矩形网格绘制，只是不参与拾取
	for r := 0; r < tm.Rows; r++ {
		for c := 0; c < tm.Cols; c++ {
			i := r*tm.Cols + c
			if i >= len(tm.Filled) || !tm.Filled[i] {
				continue
			}
			cx, cy := float64(c)*tm.GridW, float64(r)*tm.GridH
			cell := rect.Rect{
				LLx: cx - tm.TileW/2,
				LLy: cy - tm.TileH/2,
				URx: cx + tm.TileW/2,
				URy: cy + tm.TileH/2,
			}
			drawLocalRect(screen, cell, gt.Matrix, camera, tm.Color)
		}
	}
}
