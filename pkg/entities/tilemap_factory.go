package entities

import (
	"fmt"
	"image/color"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
)

// TilemapSpec 瓦片地图实体参数
type TilemapSpec struct {
	X, Y, Z    float64
	Cols, Rows int
	// Grid 格子间距，Tile 格子绘制尺寸（通常略小于间距）
	Grid, Tile float64
	Type       components.TilemapType
	Color      color.NRGBA
	// Filled 可为 nil（全部为空）；非 nil 时长度必须是 Cols*Rows
	Filled []bool
}

// NewTilemapEntity 创建瓦片地图实体
func NewTilemapEntity(em *ecs.EntityManager, spec TilemapSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spec.Cols <= 0 || spec.Rows <= 0 {
		return 0, fmt.Errorf("invalid tilemap size %dx%d", spec.Cols, spec.Rows)
	}
	if spec.Grid <= 0 {
		return 0, fmt.Errorf("grid size must be positive, got %v", spec.Grid)
	}
	filled := spec.Filled
	if filled == nil {
		filled = make([]bool, spec.Cols*spec.Rows)
	}
	if len(filled) != spec.Cols*spec.Rows {
		return 0, fmt.Errorf("filled has %d cells, want %d", len(filled), spec.Cols*spec.Rows)
	}
	tile := spec.Tile
	if tile <= 0 {
		tile = spec.Grid
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(spec.X, spec.Y, spec.Z))
	ecs.AddComponent(em, id, &components.TilemapComponent{
		Cols:   spec.Cols,
		Rows:   spec.Rows,
		GridW:  spec.Grid,
		GridH:  spec.Grid,
		TileW:  tile,
		TileH:  tile,
		Type:   spec.Type,
		Filled: filled,
		Color:  spec.Color,
	})
	return id, nil
}

// CheckerPattern 棋盘式的填充图案，每 period 个格子空一个
func CheckerPattern(cols, rows, period int) []bool {
	filled := make([]bool, cols*rows)
	if period <= 0 {
		return filled
	}
	for i := range filled {
		r, c := i/cols, i%cols
		filled[i] = (r+c)%period != 0
	}
	return filled
}
