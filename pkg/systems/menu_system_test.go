package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/utils"
)

type testMenu struct {
	em      *ecs.EntityManager
	ms      *MenuSystem
	clicked []string
	checked bool
}

// Face7x13：每个字符 7px，行高 13，padding 4 时菜单项高 21
//
//	菜单栏：File [0,36)  Edit [38,74)
//	File 子菜单 (0,21) 宽 64：New, Recent >
//	Recent 子菜单 (64,42) 宽 43：a.lvl
func newTestMenu(t *testing.T) *testMenu {
	t.Helper()
	tm := &testMenu{em: ecs.NewEntityManager()}
	tm.ms = NewMenuSystem(tm.em, config.MenuConfig{Padding: 4}, text.NewGoXFace(basicfont.Face7x13))

	record := func(label string) func() {
		return func() { tm.clicked = append(tm.clicked, label) }
	}
	tm.ms.Spawn([]MenuSpec{
		{Label: "File", Items: []MenuSpec{
			{Label: "New", OnClick: record("New")},
			{Label: "Recent", Items: []MenuSpec{
				{Label: "a.lvl", OnClick: record("a.lvl")},
			}},
		}},
		{Label: "Edit", OnClick: record("Edit")},
	})
	return tm
}

// item 按标签查找菜单项
func (tm *testMenu) item(t *testing.T, label string) *components.MenuItemComponent {
	t.Helper()
	for _, id := range ecs.GetEntitiesWith1[*components.MenuItemComponent](tm.em) {
		item, _ := ecs.GetComponent[*components.MenuItemComponent](tm.em, id)
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func (tm *testMenu) menu(id ecs.EntityID) *components.MenuComponent {
	m, _ := ecs.GetComponent[*components.MenuComponent](tm.em, id)
	return m
}

func TestMenuSystem_BarLayout(t *testing.T) {
	tm := newTestMenu(t)

	file, edit := tm.item(t, "File"), tm.item(t, "Edit")
	if file.X != 0 || file.Width != 36 || file.Height != 21 {
		t.Errorf("File at x=%v w=%v h=%v, want 0/36/21", file.X, file.Width, file.Height)
	}
	if edit.X != 38 || edit.Width != 36 {
		t.Errorf("Edit at x=%v w=%v, want 38/36", edit.X, edit.Width)
	}
	if got := VisibleMenus(tm.em); len(got) != 1 || got[0] != tm.ms.Bar() {
		t.Errorf("only the bar is visible at start, got %v", got)
	}
}

func TestMenuSystem_OpenSubmenuChain(t *testing.T) {
	tm := newTestMenu(t)

	over, consumed := tm.ms.Update(press(10, 10))
	if !over || !consumed {
		t.Fatalf("click on File: over=%v consumed=%v", over, consumed)
	}
	fileMenu := tm.menu(tm.item(t, "File").Submenu)
	if !fileMenu.Visible {
		t.Fatal("File submenu should open")
	}
	if fileMenu.X != 0 || fileMenu.Y != 21 || fileMenu.Width != 64 {
		t.Errorf("File submenu at (%v, %v) w=%v, want (0, 21) w=64", fileMenu.X, fileMenu.Y, fileMenu.Width)
	}

	// 子菜单项在父菜单项右侧展开
	tm.ms.Update(press(10, 47))
	recent := tm.menu(tm.item(t, "Recent").Submenu)
	if !recent.Visible || !fileMenu.Visible {
		t.Fatalf("chain visible: recent=%v file=%v", recent.Visible, fileMenu.Visible)
	}
	if recent.X != 64 || recent.Y != 42 {
		t.Errorf("Recent submenu at (%v, %v), want (64, 42)", recent.X, recent.Y)
	}
	if got := len(VisibleMenus(tm.em)); got != 3 {
		t.Errorf("visible menus = %d, want 3", got)
	}

	// 动作项执行后收起整条子菜单链
	over, consumed = tm.ms.Update(press(70, 47))
	if !over || !consumed {
		t.Errorf("click on a.lvl: over=%v consumed=%v", over, consumed)
	}
	if len(tm.clicked) != 1 || tm.clicked[0] != "a.lvl" {
		t.Errorf("clicked = %v, want [a.lvl]", tm.clicked)
	}
	if recent.Visible || fileMenu.Visible {
		t.Error("submenus should close after an action")
	}
}

func TestMenuSystem_SwitchingBarItemClosesOtherSubmenu(t *testing.T) {
	tm := newTestMenu(t)

	tm.ms.Update(press(10, 10))
	tm.ms.Update(press(10, 47))
	tm.ms.Update(press(50, 10))

	if tm.menu(tm.item(t, "File").Submenu).Visible || tm.menu(tm.item(t, "Recent").Submenu).Visible {
		t.Error("clicking another bar item closes open submenus")
	}
	if len(tm.clicked) != 1 || tm.clicked[0] != "Edit" {
		t.Errorf("clicked = %v, want [Edit]", tm.clicked)
	}
}

func TestMenuSystem_ClickOutsideClosesSubmenus(t *testing.T) {
	tm := newTestMenu(t)
	tm.ms.Update(press(10, 10))

	over, consumed := tm.ms.Update(press(600, 400))
	if over || consumed {
		t.Errorf("outside click: over=%v consumed=%v, want false/false", over, consumed)
	}
	if tm.menu(tm.item(t, "File").Submenu).Visible {
		t.Error("outside click should close the submenu")
	}
	if !tm.menu(tm.ms.Bar()).Visible {
		t.Error("the bar stays visible")
	}
	if len(tm.clicked) != 0 {
		t.Errorf("no action should run, got %v", tm.clicked)
	}
}

func TestMenuSystem_ClosedSubmenuIgnoresClicks(t *testing.T) {
	tm := newTestMenu(t)

	// New 所在位置，子菜单未展开
	over, _ := tm.ms.Update(press(10, 30))
	if over {
		t.Error("hidden submenus are not hit")
	}
	if len(tm.clicked) != 0 {
		t.Errorf("clicked = %v, want none", tm.clicked)
	}
}

func TestMenuSystem_ItemStates(t *testing.T) {
	tm := newTestMenu(t)
	file, edit := tm.item(t, "File"), tm.item(t, "Edit")

	tm.ms.Update(&utils.FrameInput{CursorX: 40, CursorY: 10})
	if edit.State != components.UIHovered || file.State != components.UINormal {
		t.Errorf("hover: edit=%s file=%s", edit.State, file.State)
	}
	tm.ms.Update(&utils.FrameInput{CursorX: 40, CursorY: 10, PointerDown: true})
	if edit.State != components.UIClicked {
		t.Errorf("pressed: edit=%s, want clicked", edit.State)
	}
	// 两个菜单栏项之间的间隙属于菜单栏但不属于任何菜单项
	over, _ := tm.ms.Update(&utils.FrameInput{CursorX: 37, CursorY: 10})
	if !over || edit.State != components.UINormal || file.State != components.UINormal {
		t.Errorf("gap: over=%v edit=%s file=%s", over, edit.State, file.State)
	}
}

func TestItemText(t *testing.T) {
	on := true
	tests := []struct {
		name  string
		item  components.MenuItemComponent
		inBar bool
		want  string
	}{
		{"普通项", components.MenuItemComponent{Label: "New"}, false, "New"},
		{"勾选", components.MenuItemComponent{Label: "Grid", Checked: func() bool { return on }}, false, MenuCheckOn + "Grid"},
		{"未勾选", components.MenuItemComponent{Label: "Grid", Checked: func() bool { return !on }}, false, MenuCheckOff + "Grid"},
		{"子菜单", components.MenuItemComponent{Label: "Panels", Submenu: 5}, false, "Panels" + MenuSubmenuMarker},
		{"菜单栏上的子菜单", components.MenuItemComponent{Label: "View", Submenu: 5}, true, "View"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemText(&tt.item, tt.inBar); got != tt.want {
				t.Errorf("ItemText = %q, want %q", got, tt.want)
			}
		})
	}
}
