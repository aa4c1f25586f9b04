// Package app 提供编辑器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置和资源清单、
// 打开偏好存储、创建场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/scenes"
	"github.com/gonewx/leveleditor/pkg/tool"
)

// 内置数据文件路径
const (
	DefaultConfigPath = "data/editor_config.yaml"
	AssetManifestPath = "data/editor_assets.yaml"
	DefaultAppName    = "gonewx-leveleditor"
)

// 资源组
const (
	editorResourceGroup = "editor"
	demoResourceGroup   = "demo"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 编辑器配置文件，为空时使用内置的 data/editor_config.yaml
	ConfigPath string
	// Tool 启动工具（select / translate / tilemap），为空时使用上次的工具
	Tool string
	// AppName 偏好存储使用的应用名，为空时使用 DefaultAppName
	AppName string
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	window       config.WindowConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// viewportAware 能响应窗口尺寸变化的场景
type viewportAware interface {
	SetViewport(w, h int)
}

// NewApp 创建并初始化编辑器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	editorCfg, err := loadEditorConfig(cfg.ConfigPath, game.DefaultFileReader)
	if err != nil {
		return nil, err
	}

	resourceManager := game.NewResourceManager(game.DefaultFileReader)
	if err := resourceManager.LoadResourceConfig(AssetManifestPath); err != nil {
		return nil, fmt.Errorf("资源清单加载失败: %w", err)
	}
	if err := resourceManager.LoadResourceGroup(editorResourceGroup); err != nil {
		return nil, fmt.Errorf("编辑器资源加载失败: %w", err)
	}
	if err := resourceManager.LoadResourceGroup(demoResourceGroup); err != nil {
		// 示例图像缺失时以占位图绘制
		log.Printf("[App] Warning: demo resources not loaded: %v", err)
	}

	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}
	storage, err := game.OpenPrefsStorage(appName)
	if err != nil {
		log.Printf("[App] Warning: %v (prefs will not be saved)", err)
	}
	prefsManager := game.NewPrefsManager(storage)

	initial, err := resolveInitialTool(cfg.Tool, prefsManager, editorCfg)
	if err != nil {
		return nil, err
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != scenes.EditorSceneName {
			return nil
		}
		scene := scenes.NewEditorScene(editorCfg, resourceManager, prefsManager, initial)
		scene.LoadDemo()
		return scene
	})
	if !sceneManager.LoadScene(scenes.EditorSceneName) {
		return nil, errors.New("无法创建编辑器场景")
	}

	log.Printf("[App] Started with tool %s", initial)
	return &App{
		sceneManager: sceneManager,
		window:       editorCfg.Window,
		verbose:      cfg.Verbose,
	}, nil
}

// loadEditorConfig 加载编辑器配置
// path 为空时读取内置配置；内置配置不存在时使用默认值
func loadEditorConfig(path string, readFile game.FileReader) (*config.EditorConfig, error) {
	if path != "" {
		cfg, err := config.LoadEditorConfig(path)
		if err != nil {
			return nil, fmt.Errorf("编辑器配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded editor config from %s", path)
		return cfg, nil
	}

	data, err := readFile(DefaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] %s not found, using defaults", DefaultConfigPath)
		return config.DefaultEditorConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("编辑器配置读取失败: %w", err)
	}
	cfg, err := config.ParseEditorConfig(data, DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("编辑器配置加载失败: %w", err)
	}
	return cfg, nil
}

// resolveInitialTool 启动工具的优先级：命令行 > 上次使用的工具 > 配置文件
func resolveInitialTool(flagValue string, pm *game.PrefsManager, cfg *config.EditorConfig) (tool.Tool, error) {
	if flagValue != "" {
		t, err := tool.ParseTool(flagValue)
		if err != nil {
			return 0, fmt.Errorf("invalid -tool: %w", err)
		}
		return t, nil
	}
	if pm != nil && pm.HasSavedPrefs() {
		return pm.LastTool(), nil
	}
	return cfg.InitialTool(), nil
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.window.Width, a.window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制编辑器画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，编辑器视口随之变化
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.window.Width, a.window.Height
	}
	if s, ok := a.sceneManager.GetCurrentScene().(viewportAware); ok {
		s.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Window 窗口配置
func (a *App) Window() config.WindowConfig {
	return a.window
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存偏好
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
