package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// HexColor YAML 中的十六进制颜色
// 支持 "#rgb"、"#rrggbb" 和带 alpha 的 "#rrggbbaa"
type HexColor struct {
	color.NRGBA
}

// ParseHexColor 解析十六进制颜色
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return HexColor{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return HexColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return HexColor{color.NRGBA{R: r, G: g, B: b, A: alpha}}, nil
}

// MustHexColor 解析编译期常量颜色，失败时 panic
func MustHexColor(s string) HexColor {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String 输出 "#rrggbbaa"
func (h HexColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", h.R, h.G, h.B, h.A)
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: color must be a string: %w", value.Line, err)
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*h = c
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (h HexColor) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}
