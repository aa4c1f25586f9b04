package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/entities"
)

// 示例图像的资源键
const (
	DemoCrateImageKey = "demo.image.crate"
	DemoGemImageKey   = "demo.image.gem"
	DemoPlankImageKey = "demo.image.plank"
)

const demoGrid = 32.0

// DemoEntities 示例内容中各实体的 ID
type DemoEntities struct {
	Back    ecs.EntityID // z=1，与 Front 重叠
	Front   ecs.EntityID // z=2
	Rotated ecs.EntityID
	Parent  ecs.EntityID
	Child   ecs.EntityID
	Tilemap ecs.EntityID // 方形网格
	IsoMap  ecs.EntityID // 等距网格，不可选
}

// SpawnDemo 创建示例内容：重叠精灵、旋转精灵、父子精灵和两个瓦片地图
// loader 为 nil 时精灵以纯色矩形绘制
func SpawnDemo(em *ecs.EntityManager, loader entities.ImageLoader) (DemoEntities, error) {
	var d DemoEntities
	var err error

	spawn := func(dst *ecs.EntityID, spec entities.SpriteSpec) {
		if err != nil {
			return
		}
		*dst, err = entities.NewSpriteEntity(em, loader, spec)
	}
	spawn(&d.Back, entities.SpriteSpec{ImageKey: DemoCrateImageKey, X: -200, Y: 0, Z: 1, Width: 120, Height: 120})
	spawn(&d.Front, entities.SpriteSpec{ImageKey: DemoGemImageKey, X: -150, Y: 40, Z: 2, Width: 120, Height: 120})
	spawn(&d.Rotated, entities.SpriteSpec{ImageKey: DemoPlankImageKey, X: 150, Y: -80, Z: 1, Rotation: math.Pi / 6, Width: 160, Height: 60})
	spawn(&d.Parent, entities.SpriteSpec{ImageKey: DemoCrateImageKey, X: 150, Y: 150, Z: 1, Rotation: math.Pi / 8, Width: 80, Height: 80})
	spawn(&d.Child, entities.SpriteSpec{ImageKey: DemoGemImageKey, X: 70, Y: 0, Z: 0.5, Width: 40, Height: 40, Parent: d.Parent})
	if err != nil {
		return d, fmt.Errorf("failed to spawn demo sprite: %w", err)
	}

	d.Tilemap, err = entities.NewTilemapEntity(em, entities.TilemapSpec{
		X: -450, Y: -250,
		Cols: 6, Rows: 4,
		Grid: demoGrid, Tile: demoGrid - 2,
		Type:   components.TilemapSquare,
		Color:  color.NRGBA{R: 70, G: 130, B: 90, A: 255},
		Filled: entities.CheckerPattern(6, 4, 3),
	})
	if err != nil {
		return d, fmt.Errorf("failed to spawn demo tilemap: %w", err)
	}

	d.IsoMap, err = entities.NewTilemapEntity(em, entities.TilemapSpec{
		X: 350, Y: -250,
		Cols: 4, Rows: 4,
		Grid: demoGrid, Tile: demoGrid - 2,
		Type:   components.TilemapIsometric,
		Color:  color.NRGBA{R: 90, G: 90, B: 140, A: 255},
		Filled: entities.CheckerPattern(4, 4, 3),
	})
	if err != nil {
		return d, fmt.Errorf("failed to spawn demo tilemap: %w", err)
	}
	return d, nil
}
