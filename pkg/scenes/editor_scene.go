package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/entities"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/systems"
	"github.com/gonewx/leveleditor/pkg/tool"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// TooltipFontKey 工具提示字体的资源键
const TooltipFontKey = "editor.font.tooltip"

// EditorVersion 显示在"About Editor"面板中
const EditorVersion = "0.1.0"

// 面板的初始位置（左下角，避开示例内容）
const (
	selectionPanelX = 8
	selectionPanelY = 480
	aboutPanelX     = 8
	aboutPanelY     = 600
)

// EditorScene 编辑器覆盖层场景
//
// 每帧的系统顺序（见 Step）：
//
//	工具切换 → 菜单 → 面板 → 工具栏 → 镜头/世界光标 → 平移工具 → 变换传播 →
//	候选生产者 → 候选汇总/消歧 → 待定高亮 → 确认/取消选择 →
//	高亮跟随 → 面板内容 → 工具提示 → 清理已删除实体
type EditorScene struct {
	resourceManager *game.ResourceManager // 可为 nil（测试中不加载资源）
	prefsManager    *game.PrefsManager    // 可为 nil
	cfg             *config.EditorConfig

	entityManager *ecs.EntityManager
	state         *game.EditorState
	tools         *tool.State
	inputOpts     utils.InputOptions
	viewW, viewH  int

	selectionMode   *systems.SelectionModeSystem
	cameraSystem    *systems.CameraSystem
	translateTool   *systems.TranslateToolSystem
	transformSystem *systems.TransformSystem
	spritePick      *systems.SpritePickSystem
	tilemapPick     *systems.TilemapPickSystem
	candidates      *systems.CandidateSystem
	pendingSystem   *systems.PendingHighlightSystem
	clickSystem     *systems.SelectionClickSystem
	tilemapSelect   *systems.TilemapSelectSystem
	followSystem    *systems.TransformFollowSystem
	toolbarSystem   *systems.ToolbarSystem
	tooltipSystem   *systems.TooltipSystem
	menuSystem      *systems.MenuSystem
	panelSystem     *systems.PanelSystem

	worldRender     *systems.WorldRenderSystem
	highlightRender *systems.HighlightRenderSystem
	toolbarRender   *systems.ToolbarRenderSystem
	menuRender      *systems.MenuRenderSystem
	panelRender     *systems.PanelRenderSystem

	selectionPanel ecs.EntityID
	aboutPanel     ecs.EntityID

	statusFace text.Face
}

// NewEditorScene 创建编辑器场景
//
// Parameters:
//   - cfg: 编辑器配置（已应用默认值）
//   - rm: 资源管理器，nil 时不加载任何图像
//   - pm: 偏好管理器，nil 时不恢复也不保存偏好
//   - initial: 启动时的工具
func NewEditorScene(cfg *config.EditorConfig, rm *game.ResourceManager, pm *game.PrefsManager, initial tool.Tool) *EditorScene {
	if cfg == nil {
		cfg = config.DefaultEditorConfig()
	}
	em := ecs.NewEntityManager()
	state := game.NewEditorState()
	if cfg.Editor.StartInEditor != nil {
		state.Active = *cfg.Editor.StartInEditor
	}

	s := &EditorScene{
		resourceManager: rm,
		prefsManager:    pm,
		cfg:             cfg,
		entityManager:   em,
		state:           state,
		tools:           tool.NewState(initial),
		inputOpts: utils.InputOptions{
			WheelUnit:       cfg.Input.ScrollUnit(),
			WheelLinePixels: cfg.Input.WheelLinePixels,
		},
		viewW: cfg.Window.Width,
		viewH: cfg.Window.Height,
	}

	face := s.tooltipFace()
	s.statusFace = face

	s.selectionMode = systems.NewSelectionModeSystem(em, cfg.SessionOptions())
	s.cameraSystem = systems.NewCameraSystem(em, state, cfg.Camera, s.viewW, s.viewH)
	s.translateTool = systems.NewTranslateToolSystem(em, state)
	s.transformSystem = systems.NewTransformSystem(em)
	s.spritePick = systems.NewSpritePickSystem(em, state, s.selectionMode, cfg.Selection.SpriteCandidateColor.NRGBA)
	s.tilemapPick = systems.NewTilemapPickSystem(em, state, s.selectionMode, cfg.Selection.TilemapCandidateColor.NRGBA)
	s.candidates = systems.NewCandidateSystem(em, s.selectionMode)
	s.pendingSystem = systems.NewPendingHighlightSystem(em, s.selectionMode)
	s.clickSystem = systems.NewSelectionClickSystem(em, state, s.selectionMode)
	s.tilemapSelect = systems.NewTilemapSelectSystem(em, state, cfg.Selection.TilemapOutlineColor.NRGBA)
	s.followSystem = systems.NewTransformFollowSystem(em, s.selectionMode)
	s.toolbarSystem = systems.NewToolbarSystem(em, state, s.tools, cfg.Toolbar, s.viewW)
	s.tooltipSystem = systems.NewTooltipSystem(em, cfg.Tooltip, face, s.viewW, s.viewH)
	s.menuSystem = systems.NewMenuSystem(em, cfg.Menu, face)
	s.panelSystem = systems.NewPanelSystem(em, cfg.Panel, face, s.viewW, s.viewH)

	s.worldRender = systems.NewWorldRenderSystem(em)
	s.highlightRender = systems.NewHighlightRenderSystem(em)
	s.toolbarRender = systems.NewToolbarRenderSystem(em, face, s.tooltipSystem.LineHeight(), cfg.Tooltip.Padding)
	s.menuRender = systems.NewMenuRenderSystem(em, face, cfg.Menu.Padding)
	s.panelRender = systems.NewPanelRenderSystem(em, face, cfg.Panel.Padding)

	if pm != nil {
		p := pm.Prefs()
		s.cameraSystem.SetView(p.CameraX, p.CameraY, p.CameraZoom)
		s.tooltipSystem.Enabled = p.TooltipsEnabled
	}

	if state.Active {
		s.openEditor()
	}
	log.Printf("[EditorScene] Created (tool=%s, editor active=%v)", initial, state.Active)
	return s
}

// tooltipFace 从资源管理器获取提示字体，没有资源管理器时使用内置位图字体
func (s *EditorScene) tooltipFace() text.Face {
	if s.resourceManager != nil {
		return s.resourceManager.GetFont(TooltipFontKey)
	}
	return text.NewGoXFace(basicfont.Face7x13)
}

// imageSource 资源管理器为 nil 时返回无类型 nil
func (s *EditorScene) imageSource() systems.ImageSource {
	if s.resourceManager == nil {
		return nil
	}
	return s.resourceManager
}

// LoadDemo 生成示例内容
func (s *EditorScene) LoadDemo() DemoEntities {
	var loader entities.ImageLoader
	if s.resourceManager != nil {
		loader = s.resourceManager
	}
	demo, err := SpawnDemo(s.entityManager, loader)
	if err != nil {
		log.Printf("[EditorScene] Warning: %v", err)
	}
	s.transformSystem.Update()
	return demo
}

// Update 读取输入并推进一帧
func (s *EditorScene) Update(deltaTime float64) {
	s.Step(deltaTime, utils.ReadFrameInput(s.inputOpts))
}

// Step 用给定输入推进一帧
func (s *EditorScene) Step(dt float64, in utils.FrameInput) {
	em := s.entityManager

	if in.ToggleEditor {
		s.SetEditorActive(!s.state.Active)
	}
	if !s.state.Active {
		s.cameraSystem.Update(dt, &in)
		s.transformSystem.Update()
		em.RemoveMarkedEntities()
		return
	}

	if in.HasToolShortcut {
		s.tools.Set(in.ToolShortcut)
	}
	s.applyToolChange()

	// 菜单在最上层，其次是面板，最后是工具栏；被消费的点击不再往下传
	menuOver, consumed := s.menuSystem.Update(&in)
	if consumed {
		in.ConfirmPressed = false
	}
	panelOver, consumed := s.panelSystem.Update(dt, &in)
	if consumed {
		in.ConfirmPressed = false
	}
	if _, consumed := s.toolbarSystem.Update(&in); consumed {
		in.ConfirmPressed = false
	}
	s.state.PointerOverUI = s.state.PointerOverUI || menuOver || panelOver
	s.cameraSystem.Update(dt, &in)

	current := s.tools.Current()
	if current == tool.Translation {
		s.translateTool.Update(&in)
	}
	s.transformSystem.Update()

	// 不在选择模式时以下系统读到的会话为 nil，直接跳过
	s.spritePick.Update()
	s.tilemapPick.Update()
	s.candidates.Update(&in)
	s.pendingSystem.Update()

	switch current {
	case tool.SelectEntities:
		s.clickSystem.Update(&in)
	case tool.SelectTilemap:
		s.tilemapSelect.Update(&in)
	}

	s.followSystem.Update()
	s.panelSystem.Refresh()
	s.tooltipSystem.Update(dt, &in)
	em.RemoveMarkedEntities()
}

// applyToolChange 执行排队的工具切换，并同步运行退出/进入钩子
func (s *EditorScene) applyToolChange() {
	prev, cur, changed := s.tools.Apply()
	if !changed {
		return
	}
	s.exitTool(prev)
	s.enterTool(cur)
	if s.prefsManager != nil {
		s.prefsManager.SetLastTool(cur)
	}
	log.Printf("[EditorScene] Tool changed: %s -> %s", prev, cur)
}

func (s *EditorScene) enterTool(t tool.Tool) {
	if t == tool.SelectEntities {
		s.selectionMode.Enter()
	}
}

func (s *EditorScene) exitTool(t tool.Tool) {
	switch t {
	case tool.SelectEntities:
		s.selectionMode.Exit()
	case tool.Translation:
		s.state.Dragging = false
	}
}

// SetEditorActive 打开或关闭编辑器覆盖层
// 关闭时销毁所有编辑器实体并清除所有选择
func (s *EditorScene) SetEditorActive(active bool) {
	if active == s.state.Active {
		return
	}
	if active {
		s.state.Active = true
		s.openEditor()
		log.Printf("[EditorScene] Editor opened")
		return
	}

	s.selectionMode.Exit()
	systems.CleanupEditor(s.entityManager)
	s.toolbarSystem.Reset()
	s.menuSystem.Reset()
	s.panelSystem.Reset()
	s.tilemapSelect.Reset()
	s.state.Active = false
	s.state.Dragging = false
	s.state.PointerOverUI = false
	log.Printf("[EditorScene] Editor closed")
}

func (s *EditorScene) openEditor() {
	s.toolbarSystem.Spawn(s.imageSource())
	s.menuSystem.Spawn(s.menuSpecs())
	panels := s.panelSystem.Spawn(
		systems.PanelSpec{
			Title: "Selection",
			X:     selectionPanelX,
			Y:     selectionPanelY,
			Content: func() []string {
				return systems.SelectionInspectorLines(s.entityManager, s.state)
			},
		},
		systems.PanelSpec{
			Title: "About Editor",
			X:     aboutPanelX,
			Y:     aboutPanelY,
			Lines: []string{
				"Editor Version: " + EditorVersion,
				"F1: close editor, 1/2/3: tools",
				"Wheel: cycle overlapping entities",
			},
		},
	)
	s.selectionPanel, s.aboutPanel = panels[0], panels[1]
	s.enterTool(s.tools.Current())
}

// menuSpecs 顶部菜单栏：Tools 切换工具，View 控制提示、镜头和面板
func (s *EditorScene) menuSpecs() []systems.MenuSpec {
	toolItems := make([]systems.MenuSpec, 0, len(tool.All))
	for _, t := range tool.All {
		toolItems = append(toolItems, systems.MenuSpec{
			Label:   t.Tooltip().Title,
			OnClick: func() { s.tools.Set(t) },
			Checked: func() bool { return s.tools.Current() == t },
		})
	}

	return []systems.MenuSpec{
		{Label: "Tools", Items: toolItems},
		{Label: "View", Items: []systems.MenuSpec{
			{
				Label:   "Tooltips",
				OnClick: func() { s.tooltipSystem.Enabled = !s.tooltipSystem.Enabled },
				Checked: func() bool { return s.tooltipSystem.Enabled },
			},
			{
				Label:   "Reset Camera",
				OnClick: func() { s.cameraSystem.SetView(0, 0, s.cfg.Camera.InitialZoom) },
			},
			{Label: "Panels", Items: []systems.MenuSpec{
				s.panelToggle("Selection", func() ecs.EntityID { return s.selectionPanel }),
				s.panelToggle("About Editor", func() ecs.EntityID { return s.aboutPanel }),
			}},
		}},
	}
}

// panelToggle 显示/隐藏面板的菜单项；面板在菜单之后创建，因此按需取 ID
func (s *EditorScene) panelToggle(label string, panel func() ecs.EntityID) systems.MenuSpec {
	return systems.MenuSpec{
		Label: label,
		OnClick: func() {
			id := panel()
			s.panelSystem.SetHidden(id, !s.panelSystem.IsHidden(id))
		},
		Checked: func() bool { return !s.panelSystem.IsHidden(panel()) },
	}
}

// SetViewport 窗口尺寸变化
func (s *EditorScene) SetViewport(w, h int) {
	if w == s.viewW && h == s.viewH {
		return
	}
	s.viewW, s.viewH = w, h
	s.cameraSystem.SetViewport(w, h)
	s.toolbarSystem.SetViewport(w)
	s.tooltipSystem.SetViewport(w, h)
	s.panelSystem.SetViewport(w, h)
}

// OnEnter 场景激活
func (s *EditorScene) OnEnter() {
	log.Printf("[EditorScene] Enter")
}

// OnExit 场景被替换
func (s *EditorScene) OnExit() {
	s.SetEditorActive(false)
	s.entityManager.RemoveMarkedEntities()
}

// SaveOnExit 保存工具和镜头偏好
func (s *EditorScene) SaveOnExit() bool {
	if s.prefsManager == nil {
		return true
	}
	cam := s.cameraSystem.Camera()
	s.prefsManager.SetLastTool(s.tools.Current())
	s.prefsManager.SetCamera(cam.X, cam.Y, cam.Zoom)
	s.prefsManager.SetTooltipsEnabled(s.tooltipSystem.Enabled)
	if err := s.prefsManager.Save(); err != nil {
		log.Printf("[EditorScene] Warning: failed to save prefs: %v", err)
		return false
	}
	return true
}

// SelectedTargets 所有被选中的实体，按 EntityID 升序
func (s *EditorScene) SelectedTargets() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.SelectedComponent](s.entityManager)
}

// HasSelection 是否存在已确认的选择
func (s *EditorScene) HasSelection() bool {
	return len(s.SelectedTargets()) > 0
}

// HasPending 选择模式下是否有待定目标
func (s *EditorScene) HasPending() bool {
	session := s.selectionMode.Session()
	return session != nil && session.HasPending()
}

// PendingTarget 当前待定目标，0 表示没有
func (s *EditorScene) PendingTarget() ecs.EntityID {
	session := s.selectionMode.Session()
	if session == nil {
		return 0
	}
	return session.Cursor.Target()
}

// CurrentTool 当前工具
func (s *EditorScene) CurrentTool() tool.Tool {
	return s.tools.Current()
}

// EntityManager 场景的实体管理器
func (s *EditorScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// SelectionPanel 选择检查面板，编辑器关闭时为已销毁的实体
func (s *EditorScene) SelectionPanel() ecs.EntityID {
	return s.selectionPanel
}

// MenuBar 顶部菜单栏
func (s *EditorScene) MenuBar() ecs.EntityID {
	return s.menuSystem.Bar()
}

// State 编辑器状态
func (s *EditorScene) State() *game.EditorState {
	return s.state
}
