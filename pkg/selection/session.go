package selection

import (
	"image/color"
	"math"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

const (
	// DefaultPendingAlpha 待定高亮的透明度
	DefaultPendingAlpha = 0.25
	// DefaultSelectionAlpha 已确认选择高亮的透明度
	DefaultSelectionAlpha = 0.5
)

// Transparent 完全透明的颜色，用于清空待定高亮
var Transparent = color.NRGBA{}

// WithAlpha 返回替换了 alpha 的颜色，a 取值 0.0 ~ 1.0
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	c.A = uint8(math.Round(a * 255))
	return c
}

// Options 会话参数
type Options struct {
	PixelThreshold float64
	PendingAlpha   float64
	SelectionAlpha float64
}

// Session 一次选择工具会话的全部状态
// 进入 SelectEntities 工具时创建，离开时整体销毁，不存在进程级全局状态。
type Session struct {
	Inbox    *Inbox
	Registry *Registry
	Cursor   *Cursor
	Scroll   *ScrollAccumulator

	// PendingHighlight 待定高亮代理实体，由系统层创建和销毁
	PendingHighlight ecs.EntityID

	PendingAlpha   float64
	SelectionAlpha float64
}

// NewSession 创建新会话
func NewSession(opts Options) *Session {
	if opts.PendingAlpha <= 0 {
		opts.PendingAlpha = DefaultPendingAlpha
	}
	if opts.SelectionAlpha <= 0 {
		opts.SelectionAlpha = DefaultSelectionAlpha
	}
	return &Session{
		Inbox:          NewInbox(),
		Registry:       NewRegistry(),
		Cursor:         NewCursor(),
		Scroll:         NewScrollAccumulator(opts.PixelThreshold),
		PendingAlpha:   opts.PendingAlpha,
		SelectionAlpha: opts.SelectionAlpha,
	}
}

// HasPending 是否存在待定目标
func (s *Session) HasPending() bool {
	return s.Cursor.HasTarget()
}
