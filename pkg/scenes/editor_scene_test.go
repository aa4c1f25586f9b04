package scenes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/systems"
	"github.com/gonewx/leveleditor/pkg/tool"
	"github.com/gonewx/leveleditor/pkg/utils"
)

const frameDT = 1.0 / 60

func newTestScene(t *testing.T, initial tool.Tool) *EditorScene {
	t.Helper()
	return NewEditorScene(config.DefaultEditorConfig(), nil, nil, initial)
}

// at 世界坐标 (x, y) 对应的屏幕输入（默认镜头对准原点，视口 1280×720）
func at(x, y int) utils.FrameInput {
	return utils.FrameInput{CursorX: 640 + x, CursorY: 360 + y}
}

func clickAt(x, y int) utils.FrameInput {
	in := at(x, y)
	in.ConfirmPressed = true
	in.PointerDown = true
	return in
}

func scrollAt(x, y int, delta float64) utils.FrameInput {
	in := at(x, y)
	in.Scroll = []selection.ScrollEvent{{Unit: selection.ScrollLine, Delta: delta}}
	return in
}

func addSprite(s *EditorScene, x, y, z float64) ecs.EntityID {
	em := s.EntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(x, y, z))
	ecs.AddComponent(em, id, &components.SpriteComponent{CustomWidth: 100, CustomHeight: 100})
	return id
}

func TestEditorScene_OverlappingSpritesEndToEnd(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	back := addSprite(s, 0, 0, 1)
	front := addSprite(s, 20, 0, 2)

	s.Step(frameDT, at(10, 0))
	require.True(t, s.HasPending())
	assert.Equal(t, back, s.PendingTarget(), "lowest z anchors the cycle")

	s.Step(frameDT, scrollAt(10, 0, 1))
	assert.Equal(t, front, s.PendingTarget())

	s.Step(frameDT, clickAt(10, 0))
	assert.Equal(t, []ecs.EntityID{front}, s.SelectedTargets())
	assert.True(t, s.HasSelection())
	assert.False(t, s.HasPending(), "confirm clears the pending target")

	s.Step(frameDT, at(10, 0))
	assert.Equal(t, back, s.PendingTarget())
}

func TestEditorScene_ToolbarClickDoesNotReachWorld(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	// 放在工具栏下面的精灵
	addSprite(s, 582, -326, 1)

	in := utils.FrameInput{CursorX: 1222, CursorY: 10, ConfirmPressed: true, PointerDown: true}
	s.Step(frameDT, in)
	assert.False(t, s.HasSelection())
	assert.False(t, s.State().CursorValid)

	s.Step(frameDT, utils.FrameInput{CursorX: 1222, CursorY: 10})
	assert.Equal(t, tool.SelectTilemap, s.CurrentTool())
	assert.False(t, s.HasPending())
}

func TestEditorScene_ToolSwitchKeepsSelections(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	id := addSprite(s, 0, 0, 1)

	s.Step(frameDT, at(0, 0))
	s.Step(frameDT, clickAt(0, 0))
	require.Equal(t, []ecs.EntityID{id}, s.SelectedTargets())

	in := at(0, 0)
	in.ToolShortcut, in.HasToolShortcut = tool.Translation, true
	s.Step(frameDT, in)
	assert.Equal(t, tool.Translation, s.CurrentTool())
	assert.False(t, s.HasPending())
	assert.Equal(t, []ecs.EntityID{id}, s.SelectedTargets())

	// 拖动选中的精灵，高亮同一帧跟随
	s.Step(frameDT, clickAt(0, 0))
	require.True(t, s.State().Dragging)
	drag := at(50, 20)
	drag.PointerDown = true
	s.Step(frameDT, drag)

	em := s.EntityManager()
	tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	assert.InDelta(t, 50, tf.X, 1e-9)
	assert.InDelta(t, 20, tf.Y, 1e-9)

	sel, _ := ecs.GetComponent[*components.SelectedComponent](em, id)
	gt, _ := ecs.GetComponent[*components.GlobalTransformComponent](em, sel.Selection)
	assert.Equal(t, 50.0, utils.Translation(gt.Matrix).X)

	s.Step(frameDT, at(50, 20))
	assert.False(t, s.State().Dragging)
}

func TestEditorScene_TilemapTool(t *testing.T) {
	s := newTestScene(t, tool.SelectTilemap)
	demo := s.LoadDemo()

	// 方形地图原点在 (-450, -250)
	s.Step(frameDT, clickAt(-440, -240))
	assert.Equal(t, demo.Tilemap, s.State().SelectedTilemap)
	assert.False(t, s.HasSelection(), "tilemap tool never creates entity selections")

	// 等距地图不可选
	s.Step(frameDT, clickAt(360, -240))
	assert.Equal(t, ecs.EntityID(0), s.State().SelectedTilemap)
}

func TestEditorScene_ToggleEditorCleansUp(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	id := addSprite(s, 0, 0, 1)
	s.Step(frameDT, at(0, 0))
	s.Step(frameDT, clickAt(0, 0))
	require.True(t, s.HasSelection())

	s.Step(frameDT, utils.FrameInput{ToggleEditor: true})
	em := s.EntityManager()
	assert.False(t, s.State().Active)
	assert.False(t, s.HasSelection())
	assert.Empty(t, ecs.GetEntitiesWith1[*components.EditorCleanupComponent](em))
	assert.Empty(t, ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](em))
	assert.True(t, em.Exists(id))

	// 关闭时点击不选择任何东西
	s.Step(frameDT, clickAt(0, 0))
	assert.False(t, s.HasSelection())

	s.Step(frameDT, utils.FrameInput{ToggleEditor: true})
	assert.True(t, s.State().Active)
	assert.Len(t, ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](em), len(tool.All))
	s.Step(frameDT, at(0, 0))
	assert.Equal(t, id, s.PendingTarget())
}

func TestEditorScene_DemoIsPickable(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	demo := s.LoadDemo()

	// Back (-200, 0) 与 Front (-150, 40) 的重叠区域
	s.Step(frameDT, at(-170, 20))
	assert.Equal(t, demo.Back, s.PendingTarget())
	s.Step(frameDT, scrollAt(-170, 20, -1))
	assert.Equal(t, demo.Front, s.PendingTarget())

	// 子精灵在旋转的父精灵下
	childGT, ok := ecs.GetComponent[*components.GlobalTransformComponent](s.EntityManager(), demo.Child)
	require.True(t, ok)
	p := utils.Translation(childGT.Matrix)
	s.Step(frameDT, at(int(p.X), int(p.Y)))
	assert.Equal(t, demo.Child, s.PendingTarget())
}

func TestEditorScene_SaveOnExitWritesPrefs(t *testing.T) {
	pm := game.NewPrefsManager(nil)
	s := NewEditorScene(config.DefaultEditorConfig(), nil, pm, tool.SelectEntities)

	in := utils.FrameInput{ToolShortcut: tool.SelectTilemap, HasToolShortcut: true, PanX: 1}
	s.Step(0.5, in)

	assert.True(t, s.SaveOnExit())
	assert.Equal(t, tool.SelectTilemap, pm.LastTool())
	assert.Greater(t, pm.Prefs().CameraX, 0.0)
}

func TestEditorScene_StartClosed(t *testing.T) {
	cfg := config.DefaultEditorConfig()
	closed := false
	cfg.Editor.StartInEditor = &closed

	s := NewEditorScene(cfg, nil, nil, tool.SelectEntities)
	assert.False(t, s.State().Active)
	assert.Empty(t, ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](s.EntityManager()))
	assert.False(t, s.HasPending())
}

func TestEditorScene_MenuSwitchesTool(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	require.NotZero(t, s.MenuBar())

	// 菜单栏 Tools，然后子菜单第二项
	s.Step(frameDT, utils.FrameInput{CursorX: 10, CursorY: 10, ConfirmPressed: true, PointerDown: true})
	s.Step(frameDT, utils.FrameInput{CursorX: 10, CursorY: 50, ConfirmPressed: true, PointerDown: true})
	s.Step(frameDT, utils.FrameInput{CursorX: 10, CursorY: 50})
	assert.Equal(t, tool.Translation, s.CurrentTool())
	assert.Len(t, systems.VisibleMenus(s.EntityManager()), 1, "action closes the submenu")
}

func TestEditorScene_PanelClickDoesNotReachWorld(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	// 放在选择面板下面的精灵，屏幕 (100, 500)
	addSprite(s, -540, 140, 1)

	in := utils.FrameInput{CursorX: 100, CursorY: 500, ConfirmPressed: true, PointerDown: true}
	s.Step(frameDT, in)
	assert.False(t, s.HasPending())
	assert.False(t, s.HasSelection())
	assert.False(t, s.State().CursorValid)
}

func TestEditorScene_SelectionPanelListsSelection(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	em := s.EntityManager()
	panel, ok := ecs.GetComponent[*components.PanelComponent](em, s.SelectionPanel())
	require.True(t, ok)
	assert.Equal(t, []string{"Nothing selected"}, panel.Lines)

	id := addSprite(s, 0, 0, 1)
	s.Step(frameDT, at(0, 0))
	s.Step(frameDT, clickAt(0, 0))
	require.Len(t, panel.Lines, 1)
	assert.Equal(t, fmt.Sprintf("#%d  (0, 0)  z=1.00", id), panel.Lines[0])
}

func TestEditorScene_ToggleEditorRespawnsMenusAndPanels(t *testing.T) {
	s := newTestScene(t, tool.SelectEntities)
	em := s.EntityManager()
	require.Len(t, ecs.GetEntitiesWith1[*components.PanelComponent](em), 2)

	s.Step(frameDT, utils.FrameInput{ToggleEditor: true})
	assert.Empty(t, ecs.GetEntitiesWith1[*components.PanelComponent](em))
	assert.Empty(t, ecs.GetEntitiesWith1[*components.MenuComponent](em))
	assert.Empty(t, ecs.GetEntitiesWith1[*components.MenuItemComponent](em))
	assert.Zero(t, s.MenuBar())

	s.Step(frameDT, utils.FrameInput{ToggleEditor: true})
	assert.Len(t, ecs.GetEntitiesWith1[*components.PanelComponent](em), 2)
	assert.NotZero(t, s.MenuBar())
	assert.True(t, em.Exists(s.SelectionPanel()))
}
