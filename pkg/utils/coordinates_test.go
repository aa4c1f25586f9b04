package utils

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b vec.Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

// TestComposeTRS 测试 平移×旋转×缩放 的组合顺序
func TestComposeTRS(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.Matrix
		in   vec.Vec2
		want vec.Vec2
	}{
		{"单位变换", ComposeTRS(0, 0, 0, 1, 1), vec.Vec2{X: 3, Y: 4}, vec.Vec2{X: 3, Y: 4}},
		{"纯平移", ComposeTRS(10, -5, 0, 1, 1), vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 11, Y: -4}},
		{"缩放后平移", ComposeTRS(10, 0, 0, 2, 3), vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 12, Y: 3}},
		{"旋转90度", ComposeTRS(0, 0, math.Pi/2, 1, 1), vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 1}},
		{"缩放先于旋转", ComposeTRS(0, 0, math.Pi/2, 2, 1), vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 0, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPoint(tt.m, tt.in)
			if !nearVec(got, tt.want) {
				t.Errorf("ApplyPoint = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConcatAppliesChildFirst(t *testing.T) {
	child := ComposeTRS(5, 0, 0, 1, 1)
	parent := ComposeTRS(0, 0, math.Pi/2, 2, 2)

	got := ApplyPoint(Concat(child, parent), vec.Vec2{})
	// 子变换把原点移到 (5,0)，父变换旋转 90° 并放大 2 倍 → (0,10)
	want := vec.Vec2{X: 0, Y: 10}
	if !nearVec(got, want) {
		t.Errorf("Concat = %+v, want %+v", got, want)
	}

	identity := Concat(child, matrix.Identity)
	if identity != child {
		t.Errorf("Concat with identity parent should not change child: %v", identity)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := ComposeTRS(12, -7, 0.7, 1.5, 0.5)
	inv, ok := Invert(m)
	if !ok {
		t.Fatal("Invert failed for a regular matrix")
	}
	p := vec.Vec2{X: 3.25, Y: -8}
	back := ApplyPoint(inv, ApplyPoint(m, p))
	if !nearVec(back, p) {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
}

func TestInvertSingular(t *testing.T) {
	if _, ok := Invert(ComposeTRS(1, 1, 0, 0, 1)); ok {
		t.Error("zero scale must not be invertible")
	}
	if _, ok := WorldToLocal(matrix.Matrix{}, vec.Vec2{}); ok {
		t.Error("WorldToLocal on zero matrix must fail")
	}
}

func TestRectContains(t *testing.T) {
	r := rect.Rect{LLx: -1, LLy: -2, URx: 1, URy: 2}
	tests := []struct {
		name string
		p    vec.Vec2
		want bool
	}{
		{"中心", vec.Vec2{}, true},
		{"边界上", vec.Vec2{X: 1, Y: 2}, true},
		{"右侧外", vec.Vec2{X: 1.01, Y: 0}, false},
		{"下方外", vec.Vec2{X: 0, Y: -2.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectContains(r, tt.p); got != tt.want {
				t.Errorf("RectContains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	inverted := rect.Rect{LLx: 1, LLy: 1, URx: -1, URy: -1}
	if RectContains(inverted, vec.Vec2{}) {
		t.Error("degenerate rect must not contain anything")
	}
	if !RectIsEmpty(inverted) || !RectIsEmpty(rect.Rect{}) {
		t.Error("inverted and zero rects are empty")
	}
	if RectIsEmpty(r) {
		t.Error("regular rect is not empty")
	}
	if w, h := RectSize(r); w != 2 || h != 4 {
		t.Errorf("RectSize = %v x %v, want 2 x 4", w, h)
	}
}

func TestGeoMFromMatrixMatchesApplyPoint(t *testing.T) {
	m := ComposeTRS(4, 9, 0.3, 2, 0.5)
	g := GeoMFromMatrix(m)

	p := vec.Vec2{X: 1.5, Y: -2}
	gx, gy := g.Apply(p.X, p.Y)
	want := ApplyPoint(m, p)
	if !near(gx, want.X) || !near(gy, want.Y) {
		t.Errorf("GeoM.Apply = (%v, %v), want %+v", gx, gy, want)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	const viewW, viewH = 800, 600
	camX, camY, zoom := 120.0, -40.0, 2.0

	world := ScreenToWorld(400, 300, camX, camY, zoom, viewW, viewH)
	if !nearVec(world, vec.Vec2{X: camX, Y: camY}) {
		t.Errorf("viewport center should map to camera position, got %+v", world)
	}

	world = ScreenToWorld(500, 100, camX, camY, zoom, viewW, viewH)
	g := WorldToScreenGeoM(camX, camY, zoom, viewW, viewH)
	sx, sy := g.Apply(world.X, world.Y)
	if !near(sx, 500) || !near(sy, 100) {
		t.Errorf("round trip screen = (%v, %v), want (500, 100)", sx, sy)
	}

	// 非法缩放按 1 处理
	world = ScreenToWorld(400, 300, 0, 0, 0, viewW, viewH)
	if !nearVec(world, vec.Vec2{}) {
		t.Errorf("zero zoom should fall back to 1, got %+v", world)
	}
}
