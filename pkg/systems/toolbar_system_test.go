package systems

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/config"
	"github.com/gonewx/leveleditor/pkg/ecs"
	"github.com/gonewx/leveleditor/pkg/game"
	"github.com/gonewx/leveleditor/pkg/tool"
	"github.com/gonewx/leveleditor/pkg/utils"
)

func newTestToolbar(t *testing.T) (*ecs.EntityManager, *game.EditorState, *tool.State, *ToolbarSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	state := game.NewEditorState()
	tools := tool.NewState(tool.SelectEntities)
	tb := NewToolbarSystem(em, state, tools, config.ToolbarConfig{ButtonSize: 64, IconSize: 48, Margin: 4}, 1280)
	tb.Spawn(nil)
	return em, state, tools, tb
}

func buttonFor(em *ecs.EntityManager, tl tool.Tool) *components.ToolbarButtonComponent {
	for _, id := range ecs.GetEntitiesWith1[*components.ToolbarButtonComponent](em) {
		btn, _ := ecs.GetComponent[*components.ToolbarButtonComponent](em, id)
		if btn.Tool == tl {
			return btn
		}
	}
	return nil
}

func TestToolbarSystem_Layout(t *testing.T) {
	em, _, _, tb := newTestToolbar(t)

	want := map[tool.Tool]float64{
		tool.SelectEntities: 1076,
		tool.Translation:    1144,
		tool.SelectTilemap:  1212,
	}
	for tl, x := range want {
		btn := buttonFor(em, tl)
		if btn == nil {
			t.Fatalf("no button for %s", tl)
		}
		if btn.X != x || btn.Y != 4 {
			t.Errorf("%s button at (%v, %v), want (%v, 4)", tl, btn.X, btn.Y, x)
		}
	}

	tb.SetViewport(800)
	if got := buttonFor(em, tool.SelectTilemap).X; got != 732 {
		t.Errorf("after resize last button X = %v, want 732", got)
	}
}

func TestToolbarSystem_ClickRequestsTool(t *testing.T) {
	em, state, tools, tb := newTestToolbar(t)

	overUI, consumed := tb.Update(&utils.FrameInput{CursorX: 1150, CursorY: 10, ConfirmPressed: true, PointerDown: true})
	if !overUI || !consumed {
		t.Fatalf("click on a button: overUI=%v consumed=%v", overUI, consumed)
	}
	if !state.PointerOverUI {
		t.Error("PointerOverUI should be set")
	}
	next, queued := tools.Pending()
	if !queued || next != tool.Translation {
		t.Errorf("Pending = (%s, %v), want (translate, true)", next, queued)
	}
	if btn := buttonFor(em, tool.Translation); btn.State != components.UIClicked {
		t.Errorf("button state = %s, want clicked", btn.State)
	}

	tools.Apply()
	tb.Update(&utils.FrameInput{CursorX: 10, CursorY: 300})
	if !buttonFor(em, tool.Translation).Active || buttonFor(em, tool.SelectEntities).Active {
		t.Error("only the current tool's button should be active")
	}
	if state.PointerOverUI {
		t.Error("PointerOverUI should clear when the pointer leaves the toolbar")
	}
}

func TestToolbarSystem_ClickOnCurrentToolIsConsumedOnly(t *testing.T) {
	_, _, tools, tb := newTestToolbar(t)

	_, consumed := tb.Update(&utils.FrameInput{CursorX: 1080, CursorY: 10, ConfirmPressed: true})
	if !consumed {
		t.Error("click on the toolbar should always be consumed")
	}
	if _, queued := tools.Pending(); queued {
		t.Error("clicking the current tool should not queue a switch")
	}
}

func TestToolbarSystem_HoverState(t *testing.T) {
	em, _, _, tb := newTestToolbar(t)

	tb.Update(&utils.FrameInput{CursorX: 1220, CursorY: 20})
	if got := buttonFor(em, tool.SelectTilemap).State; got != components.UIHovered {
		t.Errorf("state = %s, want hovered", got)
	}
	// 半开区间：右边缘不属于按钮
	tb.Update(&utils.FrameInput{CursorX: 1276, CursorY: 20})
	if got := buttonFor(em, tool.SelectTilemap).State; got != components.UINormal {
		t.Errorf("state = %s, want normal", got)
	}
}

func TestTooltipSystem_DelayLingerAndPlacement(t *testing.T) {
	em, _, _, _ := newTestToolbar(t)
	face := text.NewGoXFace(basicfont.Face7x13)
	ts := NewTooltipSystem(em, config.TooltipConfig{Delay: 0.5, Linger: 0.25, Padding: 8, MaxWidth: 200}, face, 1280, 720)

	hover := &utils.FrameInput{CursorX: 1250, CursorY: 20}
	tip := func() *components.TooltipComponent {
		for _, id := range ecs.GetEntitiesWith1[*components.TooltipComponent](em) {
			btn, _ := ecs.GetComponent[*components.ToolbarButtonComponent](em, id)
			if btn.Tool == tool.SelectTilemap {
				c, _ := ecs.GetComponent[*components.TooltipComponent](em, id)
				return c
			}
		}
		t.Fatal("tooltip not found")
		return nil
	}

	ts.Update(0.3, hover)
	if tip().IsVisible {
		t.Fatal("tooltip should wait for the hover delay")
	}
	ts.Update(0.3, hover)
	c := tip()
	if !c.IsVisible {
		t.Fatal("tooltip should show after the delay")
	}
	if len(c.Lines) < 2 || c.Lines[0] != tool.SelectTilemap.Tooltip().Title {
		t.Errorf("first line should be the title, got %q", c.Lines)
	}

	// 指针在右上：提示框在指针左下方，不超出窗口
	if c.X+c.Width > 1250 {
		t.Errorf("tooltip right edge %.1f should be left of the pointer", c.X+c.Width)
	}
	if c.Y != 36 {
		t.Errorf("tooltip Y = %.1f, want 36", c.Y)
	}
	if c.X < 0 || c.Width > 200+16 {
		t.Errorf("tooltip box out of range: X=%.1f W=%.1f", c.X, c.Width)
	}

	away := &utils.FrameInput{CursorX: 100, CursorY: 400}
	ts.Update(0.1, away)
	if !tip().IsVisible {
		t.Error("tooltip should linger after the pointer leaves")
	}
	ts.Update(0.2, away)
	if tip().IsVisible {
		t.Error("tooltip should hide once the linger time is over")
	}

	ts.Enabled = false
	ts.Update(1, hover)
	if tip().IsVisible {
		t.Error("disabled tooltips never show")
	}
}
