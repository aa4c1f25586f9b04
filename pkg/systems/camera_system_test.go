package systems

import (
	"math"
	"testing"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/utils"
)

func testCameraConfig() config.CameraConfig {
	return config.CameraConfig{PanSpeed: 600, ZoomStep: 2, MinZoom: 0.5, MaxZoom: 4, InitialZoom: 1}
}

// TestCameraSystem_NewCameraSystem 测试镜头系统的创建
func TestCameraSystem_NewCameraSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCameraSystem(em, game.NewEditorState(), testCameraConfig(), 800, 600)

	cam, ok := ecs.GetComponent[*components.EditorCameraComponent](em, cs.cameraEntity)
	if !ok {
		t.Fatal("EditorCameraComponent not added to camera entity")
	}
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("unexpected initial camera %+v", *cam)
	}
	if w, h := cs.Viewport(); w != 800 || h != 600 {
		t.Errorf("Viewport = %dx%d, want 800x600", w, h)
	}
}

// TestCameraSystem_WorldCursor 测试世界光标换算
func TestCameraSystem_WorldCursor(t *testing.T) {
	em := ecs.NewEntityManager()
	state := game.NewEditorState()
	cs := NewCameraSystem(em, state, testCameraConfig(), 800, 600)

	cs.Update(0, &utils.FrameInput{CursorX: 400, CursorY: 300})
	if state.WorldCursor.X != 0 || state.WorldCursor.Y != 0 {
		t.Errorf("viewport center should map to camera center, got %v", state.WorldCursor)
	}
	if !state.CursorValid {
		t.Error("cursor inside the viewport should be valid")
	}

	cs.SetView(100, 50, 2)
	cs.Update(0, &utils.FrameInput{CursorX: 600, CursorY: 300})
	if state.WorldCursor.X != 200 || state.WorldCursor.Y != 50 {
		t.Errorf("WorldCursor = %v, want (200, 50)", state.WorldCursor)
	}
	if state.PrevWorldCursor.X != 0 {
		t.Errorf("PrevWorldCursor should keep last frame's value, got %v", state.PrevWorldCursor)
	}

	// 世界 → 屏幕与屏幕 → 世界互逆
	sx, sy := cs.WorldToScreen().Apply(200, 50)
	if math.Abs(sx-600) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Errorf("WorldToScreen(200, 50) = (%.1f, %.1f), want (600, 300)", sx, sy)
	}
}

func TestCameraSystem_CursorValidity(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		overUI bool
		want   bool
	}{
		{"视口内", 10, 10, false, true},
		{"视口外", -1, 10, false, false},
		{"右边界外", 800, 10, false, false},
		{"在工具栏上", 10, 10, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := game.NewEditorState()
			state.PointerOverUI = tt.overUI
			cs := NewCameraSystem(ecs.NewEntityManager(), state, testCameraConfig(), 800, 600)
			cs.Update(0, &utils.FrameInput{CursorX: tt.x, CursorY: tt.y})
			if state.CursorValid != tt.want {
				t.Errorf("CursorValid = %v, want %v", state.CursorValid, tt.want)
			}
		})
	}
}

func TestCameraSystem_PanAndZoom(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewCameraSystem(em, game.NewEditorState(), testCameraConfig(), 800, 600)

	cs.Update(0.5, &utils.FrameInput{PanX: 1})
	if got := cs.Camera().X; got != 300 {
		t.Errorf("camera X after pan = %v, want 300", got)
	}

	cs.Update(0, &utils.FrameInput{ZoomIn: true})
	if got := cs.Camera().Zoom; got != 2 {
		t.Errorf("zoom = %v, want 2", got)
	}
	// 放大后平移速度按缩放折算
	cs.Update(0.5, &utils.FrameInput{PanY: -1})
	if got := cs.Camera().Y; got != -150 {
		t.Errorf("camera Y = %v, want -150", got)
	}

	for i := 0; i < 5; i++ {
		cs.Update(0, &utils.FrameInput{ZoomIn: true})
	}
	if got := cs.Camera().Zoom; got != 4 {
		t.Errorf("zoom should clamp to max 4, got %v", got)
	}
	for i := 0; i < 10; i++ {
		cs.Update(0, &utils.FrameInput{ZoomOut: true})
	}
	if got := cs.Camera().Zoom; got != 0.5 {
		t.Errorf("zoom should clamp to min 0.5, got %v", got)
	}
}
