package game

import (
	"seehuhn.de/go/geom/vec"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

// EditorState 编辑器在帧之间共享的状态
// 由 EditorScene 持有，不是全局单例
type EditorState struct {
	// Active 编辑器覆盖层是否打开
	Active bool

	// WorldCursor 本帧指针的世界坐标，整帧只计算一次
	WorldCursor vec.Vec2
	// PrevWorldCursor 上一帧的世界坐标，用于拖动
	PrevWorldCursor vec.Vec2
	// CursorValid 指针是否在视口内（被工具栏占用时也为 false）
	CursorValid bool
	// PointerOverUI 指针位于工具栏等编辑器界面上
	PointerOverUI bool

	// SelectedTilemap 当前活动的瓦片地图，0 表示没有
	SelectedTilemap ecs.EntityID

	// Dragging 平移工具是否在拖动
	Dragging bool
}

// NewEditorState 创建初始状态
func NewEditorState() *EditorState {
	return &EditorState{Active: true}
}

// CursorDelta 本帧世界坐标相对上一帧的位移
func (s *EditorState) CursorDelta() vec.Vec2 {
	return vec.Vec2{
		X: s.WorldCursor.X - s.PrevWorldCursor.X,
		Y: s.WorldCursor.Y - s.PrevWorldCursor.Y,
	}
}
