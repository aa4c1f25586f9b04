package components

// PanelComponent 浮动面板（屏幕坐标）
//
// 面板由标题栏和内容区组成：
//   - 拖动标题栏移动面板
//   - 双击标题栏折叠/展开内容区
//   - 点击面板任意位置将其置顶
type PanelComponent struct {
	Title string

	X, Y        float64
	Width       float64
	TitleHeight float64
	// ContentHeight 内容区高度，由 PanelSystem 按行数计算
	ContentHeight float64

	// Lines 内容文字，每行一条
	Lines []string
	// Content 每帧刷新 Lines，可为 nil（内容固定）
	Content func() []string

	Collapsed bool
	Hidden    bool

	// Order 叠放次序，越大越靠上；置顶后整体归一化为从 0 开始
	Order int

	Dragging bool
	// SinceTitleClick 距上次点击标题栏的时间（秒），小于 0 表示没有在等待第二次点击
	SinceTitleClick float64
}

// Height 面板当前高度（折叠时只有标题栏）
func (p *PanelComponent) Height() float64 {
	if p.Collapsed {
		return p.TitleHeight
	}
	return p.TitleHeight + p.ContentHeight
}

// Contains 屏幕点是否落在面板内
func (p *PanelComponent) Contains(x, y float64) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height()
}

// TitleContains 屏幕点是否落在标题栏内
func (p *PanelComponent) TitleContains(x, y float64) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.TitleHeight
}
