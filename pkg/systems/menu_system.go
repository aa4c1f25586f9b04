package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

// 菜单项的装饰文字，布局和绘制共用
const (
	MenuCheckOn        = "[x] "
	MenuCheckOff       = "[ ] "
	MenuSubmenuMarker  = " >"
	menuBarItemSpacing = 2.0
)

// MenuSpec 菜单项定义；Items 非空时为子菜单
type MenuSpec struct {
	Label   string
	OnClick func()
	Checked func() bool
	Items   []MenuSpec
}

// MenuSystem 顶部菜单栏和多级子菜单
//
// 点击菜单栏项或子菜单项展开其子菜单（菜单栏下方 / 菜单项右侧），
// 同一时间只显示一条子菜单链。点击动作项执行回调后收起所有子菜单；
// 点击菜单以外的位置也会收起子菜单。
type MenuSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.MenuConfig
	face          text.Face

	bar ecs.EntityID
}

// NewMenuSystem 创建菜单系统，face 用于测量菜单文字
func NewMenuSystem(em *ecs.EntityManager, cfg config.MenuConfig, face text.Face) *MenuSystem {
	return &MenuSystem{entityManager: em, cfg: cfg, face: face}
}

// Spawn 在窗口左上角创建菜单栏
func (s *MenuSystem) Spawn(items []MenuSpec) ecs.EntityID {
	s.bar = s.spawnMenu(0, true, true, items)
	s.place(s.bar, 0, 0)
	log.Printf("[MenuSystem] Spawned menu bar with %d items", len(items))
	return s.bar
}

// Bar 菜单栏实体，未创建时为 0
func (s *MenuSystem) Bar() ecs.EntityID {
	return s.bar
}

func (s *MenuSystem) spawnMenu(parent ecs.EntityID, horizontal, visible bool, specs []MenuSpec) ecs.EntityID {
	em := s.entityManager
	menuID := em.CreateEntity()
	menu := &components.MenuComponent{
		Parent:     parent,
		Horizontal: horizontal,
		Visible:    visible,
	}
	ecs.AddComponent(em, menuID, menu)
	ecs.AddComponent(em, menuID, &components.EditorCleanupComponent{})

	for _, spec := range specs {
		itemID := em.CreateEntity()
		item := &components.MenuItemComponent{
			Menu:    menuID,
			Label:   spec.Label,
			OnClick: spec.OnClick,
			Checked: spec.Checked,
		}
		ecs.AddComponent(em, itemID, item)
		ecs.AddComponent(em, itemID, &components.EditorCleanupComponent{})
		if len(spec.Items) > 0 {
			item.Submenu = s.spawnMenu(menuID, false, false, spec.Items)
		}
		menu.Items = append(menu.Items, itemID)
	}
	return menuID
}

// ItemText 菜单项显示的完整文字
func ItemText(item *components.MenuItemComponent, inBar bool) string {
	label := item.Label
	if item.Checked != nil {
		if item.Checked() {
			label = MenuCheckOn + label
		} else {
			label = MenuCheckOff + label
		}
	}
	if item.Submenu != 0 && !inBar {
		label += MenuSubmenuMarker
	}
	return label
}

// place 把菜单放在 (x, y) 并排列菜单项
func (s *MenuSystem) place(menuID ecs.EntityID, x, y float64) {
	em := s.entityManager
	menu, ok := ecs.GetComponent[*components.MenuComponent](em, menuID)
	if !ok {
		return
	}
	pad := s.cfg.Padding
	itemH := utils.LineHeight(s.face) + 2*pad
	menu.X, menu.Y = x, y

	if menu.Horizontal {
		cx := x
		for _, id := range menu.Items {
			item, _ := ecs.GetComponent[*components.MenuItemComponent](em, id)
			item.X, item.Y = cx, y
			item.Width = utils.MeasureTextWidth(ItemText(item, true), s.face) + 2*pad
			item.Height = itemH
			cx += item.Width + menuBarItemSpacing
		}
		menu.Width, menu.Height = cx-x, itemH
		return
	}

	width := 0.0
	for _, id := range menu.Items {
		item, _ := ecs.GetComponent[*components.MenuItemComponent](em, id)
		width = max(width, utils.MeasureTextWidth(ItemText(item, false), s.face)+2*pad)
	}
	for i, id := range menu.Items {
		item, _ := ecs.GetComponent[*components.MenuItemComponent](em, id)
		item.X, item.Y = x, y+float64(i)*itemH
		item.Width, item.Height = width, itemH
	}
	menu.Width, menu.Height = width, float64(len(menu.Items))*itemH
}

// VisibleMenus 可见菜单，按绘制顺序（菜单栏在最下层，越深的子菜单越靠上）
func VisibleMenus(em *ecs.EntityManager) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.MenuComponent](em) {
		menu, _ := ecs.GetComponent[*components.MenuComponent](em, id)
		if menu.Visible {
			out = append(out, id)
		}
	}
	return out
}

// Update 更新菜单项状态并处理点击
// 返回指针是否在菜单上，以及点击是否被菜单消费
func (s *MenuSystem) Update(in *utils.FrameInput) (overUI, consumed bool) {
	em := s.entityManager
	x, y := float64(in.CursorX), float64(in.CursorY)

	menus := VisibleMenus(em)
	var hit ecs.EntityID
	for i := len(menus) - 1; i >= 0 && hit == 0; i-- {
		menu, _ := ecs.GetComponent[*components.MenuComponent](em, menus[i])
		if !menu.Contains(x, y) {
			continue
		}
		overUI = true
		for _, id := range menu.Items {
			item, _ := ecs.GetComponent[*components.MenuItemComponent](em, id)
			if item.Contains(x, y) {
				hit = id
				break
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.MenuItemComponent](em) {
		item, _ := ecs.GetComponent[*components.MenuItemComponent](em, id)
		switch {
		case id != hit:
			item.State = components.UINormal
		case in.PointerDown:
			item.State = components.UIClicked
		default:
			item.State = components.UIHovered
		}
	}

	if !in.ConfirmPressed {
		return overUI, false
	}
	if hit == 0 {
		s.CloseSubmenus()
		return overUI, overUI
	}

	item, _ := ecs.GetComponent[*components.MenuItemComponent](em, hit)
	if item.Submenu != 0 {
		s.openSubmenu(item)
		return true, true
	}
	s.CloseSubmenus()
	if item.OnClick != nil {
		log.Printf("[MenuSystem] %q clicked", item.Label)
		item.OnClick()
	}
	return true, true
}

// openSubmenu 只显示这个子菜单以及它所在的菜单链
func (s *MenuSystem) openSubmenu(item *components.MenuItemComponent) {
	em := s.entityManager
	parent, ok := ecs.GetComponent[*components.MenuComponent](em, item.Menu)
	if !ok {
		return
	}
	if parent.Horizontal {
		s.place(item.Submenu, item.X, item.Y+item.Height)
	} else {
		s.place(item.Submenu, item.X+item.Width, item.Y)
	}

	s.CloseSubmenus()
	for id := item.Submenu; id != 0; {
		menu, ok := ecs.GetComponent[*components.MenuComponent](em, id)
		if !ok {
			log.Printf("[MenuSystem] Warning: broken submenu chain at %d", id)
			return
		}
		menu.Visible = true
		id = menu.Parent
	}
}

// CloseSubmenus 收起所有子菜单，菜单栏保持显示
func (s *MenuSystem) CloseSubmenus() {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.MenuComponent](em) {
		menu, _ := ecs.GetComponent[*components.MenuComponent](em, id)
		if menu.Parent != 0 {
			menu.Visible = false
		}
	}
}

// Reset 编辑器退出后菜单已被统一清理
func (s *MenuSystem) Reset() {
	s.bar = 0
}
