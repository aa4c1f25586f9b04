package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// CameraSystem 编辑器镜头和世界光标
//
// 每帧：
//   - 键盘平移、缩放镜头
//   - 把屏幕指针换算为世界坐标，写入 EditorState.WorldCursor
//
// 世界光标整帧只计算一次，所有拾取和工具都读取同一个值。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	state         *game.EditorState
	cfg           config.CameraConfig
	cameraEntity  ecs.EntityID

	viewW, viewH int
}

// NewCameraSystem 创建镜头系统和镜头实体
func NewCameraSystem(em *ecs.EntityManager, state *game.EditorState, cfg config.CameraConfig, viewW, viewH int) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		state:         state,
		cfg:           cfg,
		viewW:         viewW,
		viewH:         viewH,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.EditorCameraComponent{
		Zoom: clampZoom(cfg.InitialZoom, cfg),
	})
	return cs
}

// Camera 镜头组件
func (cs *CameraSystem) Camera() *components.EditorCameraComponent {
	cam, ok := ecs.GetComponent[*components.EditorCameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		// 镜头实体不应被删除；被删除时重建
		cs.cameraEntity = cs.entityManager.CreateEntity()
		cam = &components.EditorCameraComponent{Zoom: 1}
		ecs.AddComponent(cs.entityManager, cs.cameraEntity, cam)
	}
	return cam
}

// SetView 设置镜头位置和缩放（用于恢复偏好）
func (cs *CameraSystem) SetView(x, y, zoom float64) {
	cam := cs.Camera()
	cam.X, cam.Y = x, y
	cam.Zoom = clampZoom(zoom, cs.cfg)
}

// SetViewport 窗口尺寸变化
func (cs *CameraSystem) SetViewport(w, h int) {
	cs.viewW, cs.viewH = w, h
}

// Viewport 当前视口尺寸
func (cs *CameraSystem) Viewport() (int, int) {
	return cs.viewW, cs.viewH
}

// Update 移动镜头并更新世界光标
func (cs *CameraSystem) Update(dt float64, in *utils.FrameInput) {
	cam := cs.Camera()

	if in.PanX != 0 || in.PanY != 0 {
		speed := cs.cfg.PanSpeed * dt / cam.Zoom
		cam.X += in.PanX * speed
		cam.Y += in.PanY * speed
	}
	if in.ZoomIn {
		cam.Zoom = clampZoom(cam.Zoom*cs.cfg.ZoomStep, cs.cfg)
	}
	if in.ZoomOut {
		cam.Zoom = clampZoom(cam.Zoom/cs.cfg.ZoomStep, cs.cfg)
	}

	cs.state.PrevWorldCursor = cs.state.WorldCursor
	cs.state.WorldCursor = utils.ScreenToWorld(float64(in.CursorX), float64(in.CursorY), cam.X, cam.Y, cam.Zoom, cs.viewW, cs.viewH)

	inView := in.CursorX >= 0 && in.CursorY >= 0 && in.CursorX < cs.viewW && in.CursorY < cs.viewH
	cs.state.CursorValid = inView && !cs.state.PointerOverUI
}

// WorldToScreen 世界 → 屏幕的 GeoM
func (cs *CameraSystem) WorldToScreen() ebiten.GeoM {
	cam := cs.Camera()
	return utils.WorldToScreenGeoM(cam.X, cam.Y, cam.Zoom, cs.viewW, cs.viewH)
}

func clampZoom(z float64, cfg config.CameraConfig) float64 {
	if z <= 0 {
		z = 1
	}
	if cfg.MinZoom > 0 {
		z = math.Max(z, cfg.MinZoom)
	}
	if cfg.MaxZoom > 0 {
		z = math.Min(z, cfg.MaxZoom)
	}
	return z
}
