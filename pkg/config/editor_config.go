package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/tool"
)

// EditorConfig 编辑器配置（data/editor_config.yaml）
type EditorConfig struct {
	Window    WindowConfig    `yaml:"window"`
	Editor    StartupConfig   `yaml:"editor"`
	Selection SelectionConfig `yaml:"selection"`
	Input     InputConfig     `yaml:"input"`
	Camera    CameraConfig    `yaml:"camera"`
	Toolbar   ToolbarConfig   `yaml:"toolbar"`
	Tooltip   TooltipConfig   `yaml:"tooltip"`
	Panel     PanelConfig     `yaml:"panel"`
	Menu      MenuConfig      `yaml:"menu"`
}

// WindowConfig 窗口
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// StartupConfig 启动参数
type StartupConfig struct {
	// InitialTool 启动时的工具（select / translate / tilemap）
	InitialTool string `yaml:"initialTool"`
	// StartInEditor 启动后直接进入编辑器
	StartInEditor *bool `yaml:"startInEditor"`
}

// SelectionConfig 选择相关参数
type SelectionConfig struct {
	PendingAlpha         float64 `yaml:"pendingAlpha"`
	SelectionAlpha       float64 `yaml:"selectionAlpha"`
	ScrollPixelThreshold float64 `yaml:"scrollPixelThreshold"`

	SpriteCandidateColor  *HexColor `yaml:"spriteCandidateColor"`
	TilemapCandidateColor *HexColor `yaml:"tilemapCandidateColor"`
	TilemapOutlineColor   *HexColor `yaml:"tilemapOutlineColor"`
}

// InputConfig 输入参数
type InputConfig struct {
	// WheelUnit 滚轮事件单位："line" 或 "pixel"
	WheelUnit string `yaml:"wheelUnit"`
	// WheelLinePixels 像素模式下每个刻度的像素数
	WheelLinePixels float64 `yaml:"wheelLinePixels"`
}

// CameraConfig 编辑器镜头
type CameraConfig struct {
	// PanSpeed 平移速度（屏幕像素/秒）
	PanSpeed    float64 `yaml:"panSpeed"`
	ZoomStep    float64 `yaml:"zoomStep"`
	MinZoom     float64 `yaml:"minZoom"`
	MaxZoom     float64 `yaml:"maxZoom"`
	InitialZoom float64 `yaml:"initialZoom"`
}

// ToolbarConfig 工具栏布局
type ToolbarConfig struct {
	ButtonSize float64 `yaml:"buttonSize"`
	IconSize   float64 `yaml:"iconSize"`
	Margin     float64 `yaml:"margin"`
}

// TooltipConfig 工具提示
type TooltipConfig struct {
	// Delay 悬停多久后显示（秒）
	Delay float64 `yaml:"delay"`
	// Linger 离开后保留多久（秒）
	Linger   float64 `yaml:"linger"`
	Padding  float64 `yaml:"padding"`
	MaxWidth float64 `yaml:"maxWidth"`
}

// PanelConfig 浮动面板
type PanelConfig struct {
	Width   float64 `yaml:"width"`
	Padding float64 `yaml:"padding"`
	// DoubleClick 标题栏两次点击的最大间隔（秒），双击折叠/展开内容
	DoubleClick float64 `yaml:"doubleClick"`
}

// MenuConfig 顶部菜单栏
type MenuConfig struct {
	Padding float64 `yaml:"padding"`
}

// 默认值
const (
	DefaultWindowWidth        = 1280
	DefaultWindowHeight       = 720
	DefaultWindowTitle        = "Level Editor"
	DefaultWheelLinePixels    = 20.0
	DefaultPanSpeed           = 600.0
	DefaultZoomStep           = 1.25
	DefaultMinZoom            = 0.25
	DefaultMaxZoom            = 8.0
	DefaultToolbarButtonSize  = 64.0
	DefaultToolbarIconSize    = 48.0
	DefaultToolbarMargin      = 4.0
	DefaultTooltipDelay       = 0.5
	DefaultTooltipLinger      = 0.25
	DefaultTooltipPadding     = 8.0
	DefaultTooltipMaxWidth    = 320.0
	DefaultPanelWidth         = 240.0
	DefaultPanelPadding       = 4.0
	DefaultPanelDoubleClick   = 0.3
	DefaultMenuPadding        = 4.0
	WheelUnitLine             = "line"
	WheelUnitPixel            = "pixel"
	defaultSpriteCandidate    = "#ff00ff"
	defaultTilemapCandidate   = "#00ff00"
	defaultTilemapOutline     = "#ffd700"
	defaultStartInEditorValue = true
)

// DefaultEditorConfig 全部使用默认值的配置
func DefaultEditorConfig() *EditorConfig {
	cfg := &EditorConfig{}
	applyEditorDefaults(cfg)
	return cfg
}

// LoadEditorConfig 从文件加载编辑器配置
func LoadEditorConfig(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config file %s: %w", path, err)
	}
	return ParseEditorConfig(data, path)
}

// ParseEditorConfig 解析 YAML 数据，source 仅用于错误信息
func ParseEditorConfig(data []byte, source string) (*EditorConfig, error) {
	var cfg EditorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML from %s: %w", source, err)
	}

	applyEditorDefaults(&cfg)

	if err := validateEditorConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid editor config in %s: %w", source, err)
	}
	return &cfg, nil
}

// applyEditorDefaults 为缺失的字段设置默认值
func applyEditorDefaults(cfg *EditorConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = DefaultWindowTitle
	}

	if cfg.Editor.InitialTool == "" {
		cfg.Editor.InitialTool = tool.SelectEntities.String()
	}
	if cfg.Editor.StartInEditor == nil {
		v := defaultStartInEditorValue
		cfg.Editor.StartInEditor = &v
	}

	s := &cfg.Selection
	if s.PendingAlpha == 0 {
		s.PendingAlpha = selection.DefaultPendingAlpha
	}
	if s.SelectionAlpha == 0 {
		s.SelectionAlpha = selection.DefaultSelectionAlpha
	}
	if s.ScrollPixelThreshold == 0 {
		s.ScrollPixelThreshold = selection.DefaultPixelThreshold
	}
	if s.SpriteCandidateColor == nil {
		c := MustHexColor(defaultSpriteCandidate)
		s.SpriteCandidateColor = &c
	}
	if s.TilemapCandidateColor == nil {
		c := MustHexColor(defaultTilemapCandidate)
		s.TilemapCandidateColor = &c
	}
	if s.TilemapOutlineColor == nil {
		c := MustHexColor(defaultTilemapOutline)
		s.TilemapOutlineColor = &c
	}

	if cfg.Input.WheelUnit == "" {
		cfg.Input.WheelUnit = WheelUnitLine
	}
	if cfg.Input.WheelLinePixels == 0 {
		cfg.Input.WheelLinePixels = DefaultWheelLinePixels
	}

	c := &cfg.Camera
	if c.PanSpeed == 0 {
		c.PanSpeed = DefaultPanSpeed
	}
	if c.ZoomStep == 0 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.MinZoom == 0 {
		c.MinZoom = DefaultMinZoom
	}
	if c.MaxZoom == 0 {
		c.MaxZoom = DefaultMaxZoom
	}
	if c.InitialZoom == 0 {
		c.InitialZoom = 1
	}

	if cfg.Toolbar.ButtonSize == 0 {
		cfg.Toolbar.ButtonSize = DefaultToolbarButtonSize
	}
	if cfg.Toolbar.IconSize == 0 {
		cfg.Toolbar.IconSize = DefaultToolbarIconSize
	}
	if cfg.Toolbar.Margin == 0 {
		cfg.Toolbar.Margin = DefaultToolbarMargin
	}

	if cfg.Tooltip.Delay == 0 {
		cfg.Tooltip.Delay = DefaultTooltipDelay
	}
	if cfg.Tooltip.Linger == 0 {
		cfg.Tooltip.Linger = DefaultTooltipLinger
	}
	if cfg.Tooltip.Padding == 0 {
		cfg.Tooltip.Padding = DefaultTooltipPadding
	}
	if cfg.Tooltip.MaxWidth == 0 {
		cfg.Tooltip.MaxWidth = DefaultTooltipMaxWidth
	}

	if cfg.Panel.Width == 0 {
		cfg.Panel.Width = DefaultPanelWidth
	}
	if cfg.Panel.Padding == 0 {
		cfg.Panel.Padding = DefaultPanelPadding
	}
	if cfg.Panel.DoubleClick == 0 {
		cfg.Panel.DoubleClick = DefaultPanelDoubleClick
	}
	if cfg.Menu.Padding == 0 {
		cfg.Menu.Padding = DefaultMenuPadding
	}
}

// validateEditorConfig 验证配置的合法性
func validateEditorConfig(cfg *EditorConfig) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if _, err := tool.ParseTool(cfg.Editor.InitialTool); err != nil {
		return fmt.Errorf("editor.initialTool: %w", err)
	}

	if err := validateAlpha("selection.pendingAlpha", cfg.Selection.PendingAlpha); err != nil {
		return err
	}
	if err := validateAlpha("selection.selectionAlpha", cfg.Selection.SelectionAlpha); err != nil {
		return err
	}
	if cfg.Selection.ScrollPixelThreshold < 0 {
		return fmt.Errorf("selection.scrollPixelThreshold must not be negative, got %v", cfg.Selection.ScrollPixelThreshold)
	}

	switch cfg.Input.WheelUnit {
	case WheelUnitLine, WheelUnitPixel:
	default:
		return fmt.Errorf("input.wheelUnit must be %q or %q, got %q", WheelUnitLine, WheelUnitPixel, cfg.Input.WheelUnit)
	}
	if cfg.Input.WheelLinePixels < 0 {
		return fmt.Errorf("input.wheelLinePixels must not be negative, got %v", cfg.Input.WheelLinePixels)
	}

	c := cfg.Camera
	if c.MinZoom < 0 || c.MaxZoom < c.MinZoom {
		return fmt.Errorf("camera zoom range [%v, %v] is invalid", c.MinZoom, c.MaxZoom)
	}
	if c.ZoomStep <= 1 {
		return fmt.Errorf("camera.zoomStep must be greater than 1, got %v", c.ZoomStep)
	}
	if c.InitialZoom < c.MinZoom || c.InitialZoom > c.MaxZoom {
		return fmt.Errorf("camera.initialZoom %v is outside [%v, %v]", c.InitialZoom, c.MinZoom, c.MaxZoom)
	}

	if cfg.Toolbar.IconSize > cfg.Toolbar.ButtonSize {
		return fmt.Errorf("toolbar.iconSize (%v) must not exceed toolbar.buttonSize (%v)", cfg.Toolbar.IconSize, cfg.Toolbar.ButtonSize)
	}
	if cfg.Tooltip.Delay < 0 || cfg.Tooltip.Linger < 0 {
		return fmt.Errorf("tooltip timings must not be negative")
	}
	if cfg.Panel.Width < 0 || cfg.Panel.Padding < 0 || cfg.Panel.DoubleClick < 0 {
		return fmt.Errorf("panel sizes and timings must not be negative")
	}
	if cfg.Menu.Padding < 0 {
		return fmt.Errorf("menu.padding must not be negative, got %v", cfg.Menu.Padding)
	}
	return nil
}

func validateAlpha(field string, a float64) error {
	if a <= 0 || a > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", field, a)
	}
	return nil
}

// ScrollUnit 配置的滚轮单位
func (c InputConfig) ScrollUnit() selection.ScrollUnit {
	if c.WheelUnit == WheelUnitPixel {
		return selection.ScrollPixel
	}
	return selection.ScrollLine
}

// InitialTool 解析后的启动工具
func (c *EditorConfig) InitialTool() tool.Tool {
	t, _ := tool.ParseTool(c.Editor.InitialTool)
	return t
}

// SessionOptions 选择会话参数
func (c *EditorConfig) SessionOptions() selection.Options {
	return selection.Options{
		PixelThreshold: c.Selection.ScrollPixelThreshold,
		PendingAlpha:   c.Selection.PendingAlpha,
		SelectionAlpha: c.Selection.SelectionAlpha,
	}
}
