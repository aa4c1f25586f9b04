// Package tool 定义编辑器工具模式
//
// 工具决定哪些系统在本帧运行。Tools 是工具集合的位掩码，
// 用于"只在这些工具下运行"的判断。
package tool

import (
	"fmt"
	"strings"
)

// Tool 编辑器工具
// 数值用作位掩码中的位序号，最大 63
type Tool uint8

const (
	// SelectEntities 点击选择实体（默认工具）
	SelectEntities Tool = 0
	// Translation 拖动已选实体，修改其 Transform 的平移
	Translation Tool = 1
	// SelectTilemap 选择当前活动的瓦片地图
	SelectTilemap Tool = 16
)

// All 所有工具，按工具栏显示顺序
var All = []Tool{SelectEntities, Translation, SelectTilemap}

// TooltipText 工具提示的标题和正文
type TooltipText struct {
	Title string
	Text  string
}

func (t Tool) String() string {
	switch t {
	case SelectEntities:
		return "select"
	case Translation:
		return "translate"
	case SelectTilemap:
		return "tilemap"
	default:
		return fmt.Sprintf("tool(%d)", uint8(t))
	}
}

// ParseTool 解析工具名（与 String 对应，大小写不敏感）
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "selectentities":
		return SelectEntities, nil
	case "translate", "translation":
		return Translation, nil
	case "tilemap", "selecttilemap":
		return SelectTilemap, nil
	}
	return SelectEntities, fmt.Errorf("unknown tool %q", s)
}

// Tooltip 工具栏按钮的提示文本
func (t Tool) Tooltip() TooltipText {
	switch t {
	case SelectEntities:
		return TooltipText{
			Title: "Select Entities",
			Text:  "Click on entities to select them.\nScroll to cycle through overlapping entities.\nThen, use other tools to manipulate the selected entities.",
		}
	case Translation:
		return TooltipText{
			Title: "Move/Translate (Transform Editing)",
			Text:  "Move entities with the mouse, changing the translation of their Transform.",
		}
	case SelectTilemap:
		return TooltipText{
			Title: "Select the Active Tilemap",
			Text:  "Tilemap editing tools will operate on the currently selected tilemap.",
		}
	}
	return TooltipText{Title: t.String()}
}

// IconKey 工具图标在资源清单中的键
func (t Tool) IconKey() string {
	switch t {
	case SelectEntities:
		return "editor.image.icon.tool.selectentities"
	case Translation:
		return "editor.image.icon.tool.translation"
	case SelectTilemap:
		return "editor.image.icon.tool.selecttilemap"
	}
	return ""
}

// Tools 工具集合（位掩码）
type Tools uint64

// Of 由若干工具构造集合
func Of(tools ...Tool) Tools {
	var set Tools
	for _, t := range tools {
		set = set.With(t)
	}
	return set
}

// With 返回加入 t 之后的集合
func (s Tools) With(t Tool) Tools {
	return s | 1<<uint(t)
}

// Union 集合并
func (s Tools) Union(o Tools) Tools {
	return s | o
}

// Contains 集合是否包含 t
func (s Tools) Contains(t Tool) bool {
	return s&(1<<uint(t)) != 0
}
