package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/leveleditor/pkg/selection"
	"github.com/gonewx/leveleditor/pkg/tool"
)

// FrameInput 一帧的输入快照
//
// 编辑器的所有系统只读取这个结构，不直接访问 ebiten 的输入函数，
// 因此测试可以直接构造输入来驱动整个流水线。
type FrameInput struct {
	// 指针位置（屏幕坐标），触摸优先于鼠标
	CursorX, CursorY int

	// ConfirmPressed 本帧刚刚按下（边沿触发）
	ConfirmPressed bool
	// PointerDown 指针处于按下状态
	PointerDown bool

	// Scroll 本帧的滚动事件，带单位和符号
	Scroll []selection.ScrollEvent

	// PanX/PanY 镜头平移方向，取值 -1、0、1
	PanX, PanY float64
	ZoomIn     bool
	ZoomOut    bool

	// ToolShortcut 数字键切换工具
	ToolShortcut    tool.Tool
	HasToolShortcut bool

	// ToggleEditor 进入/退出编辑器
	ToggleEditor bool
}

// InputOptions 读取输入时的参数
type InputOptions struct {
	// WheelUnit 平台滚轮事件的单位
	WheelUnit selection.ScrollUnit
	// WheelLinePixels 像素模式下每个滚轮刻度对应的像素数
	WheelLinePixels float64
}

// toolKeys 数字键到工具的映射
var toolKeys = []struct {
	key  ebiten.Key
	tool tool.Tool
}{
	{ebiten.KeyDigit1, tool.SelectEntities},
	{ebiten.KeyDigit2, tool.Translation},
	{ebiten.KeyDigit3, tool.SelectTilemap},
}

// ReadFrameInput 从 ebiten 读取本帧输入
// 必须在 ebiten.Game.Update 中调用
func ReadFrameInput(opts InputOptions) FrameInput {
	in := FrameInput{}

	// 首先检查触摸输入（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		in.ConfirmPressed = true
		in.PointerDown = true
		in.CursorX, in.CursorY = ebiten.TouchPosition(touchIDs[0])
	} else if allTouchIDs := ebiten.AppendTouchIDs(nil); len(allTouchIDs) > 0 {
		in.PointerDown = true
		in.CursorX, in.CursorY = ebiten.TouchPosition(allTouchIDs[0])
	} else {
		// 其次是鼠标（桌面设备）
		in.CursorX, in.CursorY = ebiten.CursorPosition()
		in.ConfirmPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.PointerDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	_, wheelY := ebiten.Wheel()
	in.Scroll = WheelToScrollEvents(wheelY, opts)

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.PanX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.PanX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.PanY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.PanY++
	}
	in.ZoomIn = inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd)
	in.ZoomOut = inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract)

	for _, k := range toolKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			in.ToolShortcut = k.tool
			in.HasToolShortcut = true
			break
		}
	}
	in.ToggleEditor = inpututil.IsKeyJustPressed(ebiten.KeyF1)

	return in
}

// WheelToScrollEvents 把 ebiten 的滚轮偏移转换为带单位的滚动事件
//
// ebiten 不区分滚轮的来源（鼠标滚轮 / 触控板），单位由配置决定：
// 行模式下直接使用偏移量；像素模式下乘以 WheelLinePixels。
func WheelToScrollEvents(wheelY float64, opts InputOptions) []selection.ScrollEvent {
	if wheelY == 0 {
		return nil
	}
	if opts.WheelUnit == selection.ScrollPixel {
		perLine := opts.WheelLinePixels
		if perLine <= 0 {
			perLine = 1
		}
		return []selection.ScrollEvent{{Unit: selection.ScrollPixel, Delta: wheelY * perLine}}
	}
	return []selection.ScrollEvent{{Unit: selection.ScrollLine, Delta: wheelY}}
}
