package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/leveleditor/pkg/tool"
)

// openTestStorage 在临时 HOME 下打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultPrefs 测试默认偏好
func TestDefaultPrefs(t *testing.T) {
	p := DefaultPrefs()
	if p.LastTool != "select" {
		t.Errorf("LastTool: got %q, want select", p.LastTool)
	}
	if p.CameraZoom != 1 {
		t.Errorf("CameraZoom: got %v, want 1", p.CameraZoom)
	}
	if !p.TooltipsEnabled {
		t.Error("TooltipsEnabled: got false, want true")
	}
}

// TestPrefsManagerNilGdata 测试降级模式
func TestPrefsManagerNilGdata(t *testing.T) {
	pm := NewPrefsManager(nil)
	if pm.LastTool() != tool.SelectEntities {
		t.Errorf("LastTool: got %v", pm.LastTool())
	}

	pm.SetLastTool(tool.Translation)
	if err := pm.Save(); err != nil {
		t.Errorf("Save in degraded mode should not fail: %v", err)
	}
	if pm.LastTool() != tool.Translation {
		t.Error("in-memory prefs should keep the change")
	}
}

// TestPrefsLoadSave 测试保存后重新加载
func TestPrefsLoadSave(t *testing.T) {
	m := openTestStorage(t, "test_editor_prefs")

	pm1 := NewPrefsManager(m)
	if pm1.HasSavedPrefs() {
		t.Error("fresh storage should not report saved prefs")
	}
	pm1.SetLastTool(tool.SelectTilemap)
	pm1.SetCamera(120, -40, 2)
	pm1.SetTooltipsEnabled(false)
	if err := pm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	pm2 := NewPrefsManager(m)
	if !pm2.HasSavedPrefs() {
		t.Error("prefs loaded from storage should report saved")
	}
	p := pm2.Prefs()
	if pm2.LastTool() != tool.SelectTilemap {
		t.Errorf("LastTool: got %v, want tilemap", pm2.LastTool())
	}
	if p.CameraX != 120 || p.CameraY != -40 || p.CameraZoom != 2 {
		t.Errorf("camera: got (%v, %v, %v)", p.CameraX, p.CameraY, p.CameraZoom)
	}
	if p.TooltipsEnabled {
		t.Error("TooltipsEnabled: got true, want false")
	}
}

// TestPrefsLoadRepairsBadValues 测试加载时修正非法值
func TestPrefsLoadRepairsBadValues(t *testing.T) {
	m := openTestStorage(t, "test_editor_prefs_repair")

	data := []byte("lastTool: lasso\ncameraZoom: -3\n")
	if err := m.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	pm := NewPrefsManager(m)
	if pm.LastTool() != tool.SelectEntities {
		t.Errorf("unknown tool should fall back to select, got %v", pm.LastTool())
	}
	if pm.Prefs().CameraZoom != 1 {
		t.Errorf("non-positive zoom should fall back to 1, got %v", pm.Prefs().CameraZoom)
	}
	if !pm.Prefs().TooltipsEnabled {
		t.Error("missing fields keep their defaults")
	}
}

// TestPrefsLoadCorrupt 测试数据损坏时使用默认值
func TestPrefsLoadCorrupt(t *testing.T) {
	m := openTestStorage(t, "test_editor_prefs_corrupt")

	if err := m.SaveObjectProp(prefsObject, prefsProperty, []byte("lastTool: [")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	pm := &PrefsManager{gdataManager: m, prefs: DefaultPrefs()}
	if err := pm.Load(); err == nil {
		t.Error("corrupt prefs should return an error")
	}
	if pm.LastTool() != tool.SelectEntities {
		t.Error("corrupt prefs should reset to defaults")
	}
}

func TestSetCameraIgnoresBadZoom(t *testing.T) {
	pm := NewPrefsManager(nil)
	pm.SetCamera(1, 2, 0)
	if pm.Prefs().CameraZoom != 1 {
		t.Errorf("zoom 0 must be ignored, got %v", pm.Prefs().CameraZoom)
	}
}
