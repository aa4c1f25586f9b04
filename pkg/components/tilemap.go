package components

import "image/color"

// TilemapType 瓦片地图的网格类型
type TilemapType int

const (
	TilemapSquare TilemapType = iota
	TilemapIsometric
	TilemapHexagon
)

func (t TilemapType) String() string {
	switch t {
	case TilemapSquare:
		return "square"
	case TilemapIsometric:
		return "isometric"
	case TilemapHexagon:
		return "hexagon"
	}
	return "unknown"
}

// TilemapComponent 瓦片地图
// 格子 (0, 0) 的中心位于实体原点，格子 (c, r) 的中心位于 (c*GridW, r*GridH)
type TilemapComponent struct {
	Cols, Rows   int
	GridW, GridH float64
	TileW, TileH float64
	Type         TilemapType

	// Filled 已铺设的格子，下标 r*Cols + c
	Filled []bool
	Color  color.NRGBA
}
