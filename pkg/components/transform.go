package components

import (
	"seehuhn.de/go/geom/matrix"

	"github.com/gonewx/leveleditor/pkg/ecs"
)

// TransformComponent 实体相对父实体的局部变换
// Parent 为 0 时相对世界
type TransformComponent struct {
	X, Y float64
	// Z 绘制和拾取顺序，子实体的 Z 累加到父实体上
	Z float64
	// Rotation 旋转角度（弧度）
	Rotation float64
	ScaleX   float64
	ScaleY   float64

	Parent ecs.EntityID
}

// NewTransform 创建单位缩放的局部变换
func NewTransform(x, y, z float64) *TransformComponent {
	return &TransformComponent{X: x, Y: y, Z: z, ScaleX: 1, ScaleY: 1}
}

// GlobalTransformComponent 实体的世界变换
// 由 TransformSystem 计算；高亮代理没有 TransformComponent，
// 其世界变换直接由跟随系统从目标复制。
type GlobalTransformComponent struct {
	Matrix matrix.Matrix
	Z      float64

	// Changed 本帧世界变换是否发生了变化
	Changed bool
}

// NewGlobalTransform 创建单位矩阵的世界变换
func NewGlobalTransform() *GlobalTransformComponent {
	return &GlobalTransformComponent{Matrix: matrix.Identity}
}
