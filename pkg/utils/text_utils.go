package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将工具提示文本按指定宽度换行
//
// 换行规则:
//   - 文本中的 '\n' 总是断行
//   - 优先在空格处断行
//   - 单个单词超过最大宽度时单独占一行（不拆分单词）
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if MeasureTextWidth(candidate, face) > maxWidth {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

// MeasureTextWidth 测量单行文本宽度
func MeasureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// MeasureLines 测量多行文本的最大宽度和总高度
func MeasureLines(lines []string, face text.Face, lineSpacing float64) (w, h float64) {
	for _, l := range lines {
		w = max(w, MeasureTextWidth(l, face))
	}
	return w, float64(len(lines)) * lineSpacing
}

// DefaultLineHeight 没有字体时使用的行高（basicfont 7x13）
const DefaultLineHeight = 13.0

// LineHeight 字体的行高，face 为 nil 时返回 DefaultLineHeight
func LineHeight(face text.Face) float64 {
	if face == nil {
		return DefaultLineHeight
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
