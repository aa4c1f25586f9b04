package components

import (
	"github.com/gonewx/leveleditor/pkg/ecs"
)

// MenuComponent 菜单容器：顶部菜单栏或弹出的子菜单（屏幕坐标）
type MenuComponent struct {
	// Parent 上级菜单，0 表示顶层菜单栏
	Parent ecs.EntityID
	// Items 菜单项，按显示顺序
	Items []ecs.EntityID
	// Horizontal 菜单项横向排列（菜单栏）
	Horizontal bool
	Visible    bool

	X, Y          float64
	Width, Height float64
}

// Contains 屏幕点是否落在菜单内
func (m *MenuComponent) Contains(x, y float64) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// MenuItemComponent 菜单项
// 带 Submenu 的项点击后展开子菜单，否则执行 OnClick
type MenuItemComponent struct {
	Menu  ecs.EntityID
	Label string

	Submenu ecs.EntityID
	OnClick func()
	// Checked 勾选状态，nil 表示不可勾选
	Checked func() bool

	X, Y          float64
	Width, Height float64

	State UIState
}

// Contains 屏幕点是否落在菜单项内
func (i *MenuItemComponent) Contains(x, y float64) bool {
	return x >= i.X && x < i.X+i.Width && y >= i.Y && y < i.Y+i.Height
}

// IsChecked 可勾选且当前为勾选状态
func (i *MenuItemComponent) IsChecked() bool {
	return i.Checked != nil && i.Checked()
}
