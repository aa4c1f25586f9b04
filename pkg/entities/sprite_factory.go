package entities

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/leveleditor/pkg/components"
	"github.com/gonewx/leveleditor/pkg/ecs"
)

// ImageLoader 按资源键获取图像（由 game.ResourceManager 实现）
type ImageLoader interface {
	GetImageByID(id string) *ebiten.Image
}

// SpriteSpec 精灵实体参数
type SpriteSpec struct {
	// ImageKey 图像资源键，为空或 loader 为 nil 时精灵以纯色矩形绘制
	ImageKey string
	X, Y, Z  float64
	Rotation float64
	// Width, Height 显示尺寸，0 表示使用图像尺寸
	Width, Height float64
	// Parent 父实体，0 表示根实体
	Parent ecs.EntityID
}

// NewSpriteEntity 创建精灵实体
//
// 参数:
//   - em: 实体管理器
//   - loader: 图像来源，可为 nil
//   - spec: 位置、层级和尺寸
//
// 没有图像时必须给出 Width 和 Height，否则无法进行拾取测试。
func NewSpriteEntity(em *ecs.EntityManager, loader ImageLoader, spec SpriteSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spec.Width < 0 || spec.Height < 0 {
		return 0, fmt.Errorf("invalid sprite size %vx%v", spec.Width, spec.Height)
	}
	if spec.Parent != 0 && !em.Exists(spec.Parent) {
		return 0, fmt.Errorf("parent entity %d does not exist", spec.Parent)
	}

	sprite := &components.SpriteComponent{
		CustomWidth:  spec.Width,
		CustomHeight: spec.Height,
	}
	if loader != nil && spec.ImageKey != "" {
		sprite.Image = loader.GetImageByID(spec.ImageKey)
	}
	if sprite.Image == nil && (spec.Width == 0 || spec.Height == 0) {
		return 0, fmt.Errorf("sprite %q has no image and no explicit size", spec.ImageKey)
	}

	id := em.CreateEntity()
	tf := components.NewTransform(spec.X, spec.Y, spec.Z)
	tf.Rotation = spec.Rotation
	tf.Parent = spec.Parent
	ecs.AddComponent(em, id, tf)
	ecs.AddComponent(em, id, sprite)
	return id, nil
}
