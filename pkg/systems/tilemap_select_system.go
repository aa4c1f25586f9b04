package systems

import (
	"image/color"
	"log"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// TilemapSelectSystem 选择活动瓦片地图的工具
//
// 点击时选中包含光标的最上层（z 最大）方形瓦片地图，点击空白处清除选择。
// 选中的地图带一个轮廓覆盖层实体。
type TilemapSelectSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	outlineColor  color.NRGBA

	outline ecs.EntityID
	// warned 已警告过的非方形地图
	warned map[ecs.EntityID]bool
}

// NewTilemapSelectSystem 创建瓦片地图选择系统
func NewTilemapSelectSystem(em *ecs.EntityManager, state *game.EditorState, outlineColor color.NRGBA) *TilemapSelectSystem {
	return &TilemapSelectSystem{
		entityManager: em,
		state:         state,
		outlineColor:  outlineColor,
		warned:        make(map[ecs.EntityID]bool),
	}
}

// Update 处理点击，并在选中的地图被删除时清除选择
func (s *TilemapSelectSystem) Update(in *utils.FrameInput) {
	em := s.entityManager

	if s.state.SelectedTilemap != 0 && !em.Exists(s.state.SelectedTilemap) {
		s.setSelected(0)
	}
	if !in.ConfirmPressed || !s.state.CursorValid {
		return
	}
	s.setSelected(s.pick())
}

// pick 返回光标下最上层的方形瓦片地图
func (s *TilemapSelectSystem) pick() ecs.EntityID {
	em := s.entityManager
	var best ecs.EntityID
	bestZ := 0.0

	for _, id := range ecs.GetEntitiesWith2[*components.TilemapComponent, *components.GlobalTransformComponent](em) {
		tm, _ := ecs.GetComponent[*components.TilemapComponent](em, id)
		if tm.Type != components.TilemapSquare {
			if !s.warned[id] {
				log.Printf("[TilemapSelectSystem] Warning: %s tilemap %d is not supported, skipping", tm.Type, id)
				s.warned[id] = true
			}
			continue
		}
		gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
		local, ok := utils.WorldToLocal(gt.Matrix, s.state.WorldCursor)
		if !ok || !utils.RectContains(TilemapBounds(tm), local) {
			continue
		}
		// 实体按 id 升序遍历，z 相同时后创建的在上层
		if best == 0 || gt.Z >= bestZ {
			best, bestZ = id, gt.Z
		}
	}
	return best
}

func (s *TilemapSelectSystem) setSelected(id ecs.EntityID) {
	em := s.entityManager
	if id == s.state.SelectedTilemap && (id == 0 || em.Exists(s.outline)) {
		return
	}

	if s.outline != 0 {
		em.DestroyEntity(s.outline)
		s.outline = 0
	}
	s.state.SelectedTilemap = id
	if id == 0 {
		log.Printf("[TilemapSelectSystem] Tilemap selection cleared")
		return
	}

	s.outline = em.CreateEntity()
	ecs.AddComponent(em, s.outline, &components.TilemapOutlineComponent{Tilemap: id})
	ecs.AddComponent(em, s.outline, &components.SelectionColorComponent{Color: s.outlineColor})
	ecs.AddComponent(em, s.outline, &components.EditorCleanupComponent{})
	log.Printf("[TilemapSelectSystem] Selected tilemap %d", id)
}

// Reset 编辑器退出后轮廓实体已被统一清理
func (s *TilemapSelectSystem) Reset() {
	s.outline = 0
	s.state.SelectedTilemap = 0
}
