package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/leveleditor/pkg/tool"
)

// EditorPrefs 编辑器偏好设置
// 只保存用户习惯，不保存场景数据
type EditorPrefs struct {
	LastTool        string  `yaml:"lastTool"`
	CameraX         float64 `yaml:"cameraX"`
	CameraY         float64 `yaml:"cameraY"`
	CameraZoom      float64 `yaml:"cameraZoom"`
	TooltipsEnabled bool    `yaml:"tooltipsEnabled"`
}

// DefaultPrefs 返回默认偏好
func DefaultPrefs() *EditorPrefs {
	return &EditorPrefs{
		LastTool:        tool.SelectEntities.String(),
		CameraZoom:      1,
		TooltipsEnabled: true,
	}
}

// PrefsManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type PrefsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	prefs        *EditorPrefs
	// saved 存储中是否有已保存的偏好
	saved bool
}

// 存储路径常量
const (
	prefsObject   = "editor"
	prefsProperty = "prefs"
)

// OpenPrefsStorage 打开 gdata 存储
// 失败时返回 nil 和错误，调用方可以用 nil 进入降级模式
func OpenPrefsStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs storage: %w", err)
	}
	return m, nil
}

// NewPrefsManager 创建偏好管理器
// gdataManager 可为 nil（降级模式，仅内存偏好）
func NewPrefsManager(gdataManager *gdata.Manager) *PrefsManager {
	pm := &PrefsManager{
		gdataManager: gdataManager,
		prefs:        DefaultPrefs(),
	}

	if err := pm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认偏好
		log.Printf("[PrefsManager] Warning: Failed to load prefs: %v (using defaults)", err)
	}
	return pm
}

// Load 从 gdata 加载偏好
// gdataManager 为 nil 或数据不存在时使用默认值
func (pm *PrefsManager) Load() error {
	if pm.gdataManager == nil {
		pm.prefs = DefaultPrefs()
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		pm.prefs = DefaultPrefs()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		pm.prefs = DefaultPrefs()
		return fmt.Errorf("failed to load prefs: %w", err)
	}

	loaded := DefaultPrefs()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		pm.prefs = DefaultPrefs()
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	if _, err := tool.ParseTool(loaded.LastTool); err != nil {
		log.Printf("[PrefsManager] Warning: ignoring saved tool: %v", err)
		loaded.LastTool = tool.SelectEntities.String()
	}
	if loaded.CameraZoom <= 0 {
		loaded.CameraZoom = 1
	}

	pm.prefs = loaded
	pm.saved = true
	log.Printf("[PrefsManager] Prefs loaded successfully")
	return nil
}

// Save 保存偏好到 gdata
// 降级模式下直接返回 nil
func (pm *PrefsManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}

	pm.saved = true
	log.Printf("[PrefsManager] Prefs saved successfully")
	return nil
}

// HasSavedPrefs 偏好是否来自存储（而不是默认值）
func (pm *PrefsManager) HasSavedPrefs() bool {
	return pm.saved
}

// Prefs 当前偏好
func (pm *PrefsManager) Prefs() *EditorPrefs {
	return pm.prefs
}

// LastTool 上次使用的工具
func (pm *PrefsManager) LastTool() tool.Tool {
	t, _ := tool.ParseTool(pm.prefs.LastTool)
	return t
}

// SetLastTool 仅修改内存，需调用 Save() 持久化
func (pm *PrefsManager) SetLastTool(t tool.Tool) {
	pm.prefs.LastTool = t.String()
}

// SetCamera 记录镜头位置和缩放
func (pm *PrefsManager) SetCamera(x, y, zoom float64) {
	pm.prefs.CameraX = x
	pm.prefs.CameraY = y
	if zoom > 0 {
		pm.prefs.CameraZoom = zoom
	}
}

// SetTooltipsEnabled 工具提示开关
func (pm *PrefsManager) SetTooltipsEnabled(enabled bool) {
	pm.prefs.TooltipsEnabled = enabled
}
