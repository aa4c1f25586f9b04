// Package utils 提供编辑器常用的工具函数
//
// coordinates.go 提供二维仿射变换和坐标转换工具。
//
// # 坐标系统概述
//
//   - **局部坐标**：实体自身空间，包围矩形（rect.Rect）在此空间定义
//   - **世界坐标**：场景空间，GlobalTransformComponent.Matrix 把局部坐标映射到世界坐标
//   - **屏幕坐标**：游戏窗口左上角为原点，由编辑器镜头（中心 + 缩放）决定
//
// # 矩阵约定
//
// matrix.Matrix 为 [a b c d e f]，把点 (x, y) 映射为
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// 与 ebiten.GeoM 的元素对应关系见 GeoMFromMatrix。
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ComposeTRS 组合 平移 × 旋转 × 缩放（先缩放，再旋转，最后平移）
// rotation 单位为弧度
func ComposeTRS(x, y, rotation, scaleX, scaleY float64) matrix.Matrix {
	sin, cos := math.Sincos(rotation)
	return matrix.Matrix{
		scaleX * cos, scaleX * sin,
		-scaleY * sin, scaleY * cos,
		x, y,
	}
}

// Concat 返回"先应用 child，再应用 parent"的复合变换
func Concat(child, parent matrix.Matrix) matrix.Matrix {
	a1, b1, c1, d1, e1, f1 := child[0], child[1], child[2], child[3], child[4], child[5]
	a2, b2, c2, d2, e2, f2 := parent[0], parent[1], parent[2], parent[3], parent[4], parent[5]
	return matrix.Matrix{
		a2*a1 + c2*b1,
		b2*a1 + d2*b1,
		a2*c1 + c2*d1,
		b2*c1 + d2*d1,
		a2*e1 + c2*f1 + e2,
		b2*e1 + d2*f1 + f2,
	}
}

// ApplyPoint 用矩阵变换一个点
func ApplyPoint(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyLinear 只应用矩阵的 2×2 线性部分（用于方向/位移向量）
func ApplyLinear(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Invert 求逆矩阵，奇异矩阵（缩放为 0）返回 false
func Invert(m matrix.Matrix) (matrix.Matrix, bool) {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	det := a*d - b*c
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, false
	}
	return matrix.Matrix{
		d / det,
		-b / det,
		-c / det,
		a / det,
		(c*f - d*e) / det,
		(b*e - a*f) / det,
	}, true
}

// WorldToLocal 把世界坐标点变换到 m 所描述的局部空间
func WorldToLocal(m matrix.Matrix, p vec.Vec2) (vec.Vec2, bool) {
	inv, ok := Invert(m)
	if !ok {
		return vec.Vec2{}, false
	}
	return ApplyPoint(inv, p), true
}

// Translation 返回矩阵的平移部分
func Translation(m matrix.Matrix) vec.Vec2 {
	return vec.Vec2{X: m[4], Y: m[5]}
}

// RectContains 闭区间包含测试
// min > max 的退化矩形对任何点都返回 false
func RectContains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.Y >= r.LLy && p.X <= r.URx && p.Y <= r.URy
}

// RectIsEmpty 面积为 0 或为负的矩形
func RectIsEmpty(r rect.Rect) bool {
	return r.URx <= r.LLx || r.URy <= r.LLy
}

// RectSize 返回矩形宽高
func RectSize(r rect.Rect) (w, h float64) {
	return r.URx - r.LLx, r.URy - r.LLy
}

// GeoMFromMatrix 把 matrix.Matrix 转为 ebiten.GeoM
func GeoMFromMatrix(m matrix.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// ScreenToWorld 屏幕坐标 → 世界坐标
// 镜头 (camX, camY) 对准视口中心，zoom > 1 表示放大
func ScreenToWorld(screenX, screenY, camX, camY, zoom float64, viewW, viewH int) vec.Vec2 {
	if zoom <= 0 {
		zoom = 1
	}
	return vec.Vec2{
		X: camX + (screenX-float64(viewW)/2)/zoom,
		Y: camY + (screenY-float64(viewH)/2)/zoom,
	}
}

// WorldToScreenGeoM 返回把世界坐标映射到屏幕坐标的 GeoM（ScreenToWorld 的逆）
func WorldToScreenGeoM(camX, camY, zoom float64, viewW, viewH int) ebiten.GeoM {
	if zoom <= 0 {
		zoom = 1
	}
	var g ebiten.GeoM
	g.Translate(-camX, -camY)
	g.Scale(zoom, zoom)
	g.Translate(float64(viewW)/2, float64(viewH)/2)
	return g
}
