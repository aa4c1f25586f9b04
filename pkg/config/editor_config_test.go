package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/tool"
)

func TestParseEditorConfigDefaults(t *testing.T) {
	cfg, err := ParseEditorConfig([]byte("{}"), "test")
	if err != nil {
		t.Fatalf("ParseEditorConfig error: %v", err)
	}

	if cfg.Window.Width != DefaultWindowWidth || cfg.Window.Height != DefaultWindowHeight {
		t.Errorf("window = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Selection.PendingAlpha != selection.DefaultPendingAlpha {
		t.Errorf("pendingAlpha = %v", cfg.Selection.PendingAlpha)
	}
	if cfg.Selection.SelectionAlpha != selection.DefaultSelectionAlpha {
		t.Errorf("selectionAlpha = %v", cfg.Selection.SelectionAlpha)
	}
	if cfg.Selection.ScrollPixelThreshold != selection.DefaultPixelThreshold {
		t.Errorf("scrollPixelThreshold = %v", cfg.Selection.ScrollPixelThreshold)
	}
	if cfg.Input.ScrollUnit() != selection.ScrollLine {
		t.Errorf("default wheel unit should be line")
	}
	if cfg.InitialTool() != tool.SelectEntities {
		t.Errorf("initial tool = %v", cfg.InitialTool())
	}
	if cfg.Editor.StartInEditor == nil || !*cfg.Editor.StartInEditor {
		t.Error("startInEditor should default to true")
	}
	want := color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	if cfg.Selection.SpriteCandidateColor.NRGBA != want {
		t.Errorf("sprite candidate color = %v, want %v", cfg.Selection.SpriteCandidateColor.NRGBA, want)
	}
	if cfg.Panel.Width != DefaultPanelWidth || cfg.Panel.DoubleClick != DefaultPanelDoubleClick {
		t.Errorf("panel = %+v", cfg.Panel)
	}
	if cfg.Menu.Padding != DefaultMenuPadding {
		t.Errorf("menu padding = %v", cfg.Menu.Padding)
	}
}

func TestParseEditorConfigValues(t *testing.T) {
	yamlData := `
window:
  width: 800
  height: 600
  title: Test
editor:
  initialTool: translate
  startInEditor: false
selection:
  pendingAlpha: 0.3
  scrollPixelThreshold: 32
  spriteCandidateColor: "#336699"
  tilemapCandidateColor: "#11223380"
input:
  wheelUnit: pixel
  wheelLinePixels: 10
camera:
  minZoom: 0.5
  maxZoom: 4
`
	cfg, err := ParseEditorConfig([]byte(yamlData), "test")
	if err != nil {
		t.Fatalf("ParseEditorConfig error: %v", err)
	}

	if cfg.Window.Title != "Test" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
	if cfg.InitialTool() != tool.Translation {
		t.Errorf("initial tool = %v", cfg.InitialTool())
	}
	if *cfg.Editor.StartInEditor {
		t.Error("startInEditor should be false")
	}
	if cfg.Input.ScrollUnit() != selection.ScrollPixel {
		t.Error("wheel unit should be pixel")
	}
	if c := cfg.Selection.SpriteCandidateColor.NRGBA; c != (color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}) {
		t.Errorf("sprite color = %v", c)
	}
	if c := cfg.Selection.TilemapCandidateColor.NRGBA; c.A != 0x80 || c.R != 0x11 {
		t.Errorf("tilemap color = %v", c)
	}

	opts := cfg.SessionOptions()
	if opts.PixelThreshold != 32 || opts.PendingAlpha != 0.3 || opts.SelectionAlpha != selection.DefaultSelectionAlpha {
		t.Errorf("session options = %+v", opts)
	}
}

func TestParseEditorConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{"未知工具", "editor:\n  initialTool: lasso\n", "initialTool"},
		{"透明度超出范围", "selection:\n  pendingAlpha: 1.5\n", "pendingAlpha"},
		{"滚轮单位非法", "input:\n  wheelUnit: page\n", "wheelUnit"},
		{"缩放范围颠倒", "camera:\n  minZoom: 4\n  maxZoom: 2\n", "zoom range"},
		{"缩放步长过小", "camera:\n  zoomStep: 0.5\n", "zoomStep"},
		{"图标大于按钮", "toolbar:\n  buttonSize: 32\n  iconSize: 48\n", "iconSize"},
		{"面板尺寸为负", "panel:\n  width: -10\n", "panel"},
		{"菜单边距为负", "menu:\n  padding: -1\n", "menu.padding"},
		{"颜色格式错误", "selection:\n  spriteCandidateColor: \"pink\"\n", "color"},
		{"YAML 语法错误", "window: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEditorConfig([]byte(tt.yaml), "test")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q should mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestLoadEditorConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor_config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEditorConfig(path)
	if err != nil {
		t.Fatalf("LoadEditorConfig error: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("width = %d, want 640", cfg.Window.Width)
	}

	if _, err := LoadEditorConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, false},
		{"#0f0", color.NRGBA{G: 255, A: 255}, false},
		{"#0000ff40", color.NRGBA{B: 255, A: 0x40}, false},
		{"#0000ffzz", color.NRGBA{}, true},
		{"red", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error: %v", tt.in, err)
			}
			if got.NRGBA != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got.NRGBA, tt.want)
			}
		})
	}

	if s := MustHexColor("#102030").String(); s != "#102030ff" {
		t.Errorf("String() = %q", s)
	}
}
