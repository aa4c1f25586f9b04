package systems

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"github.com/gonewx/leveleditor/pkg/utils"
)

var (
	whiteImageOnce sync.Once
	whiteSubImage  *ebiten.Image
)

// whitePixel 1×1 白色图像，缩放后用于绘制任意矩形
// 取 3×3 图像的中心像素，避免线性过滤时采样到边缘
func whitePixel() *ebiten.Image {
	whiteImageOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// drawLocalRect 把局部矩形经世界矩阵和镜头变换后填充为 c
func drawLocalRect(screen *ebiten.Image, r rect.Rect, world matrix.Matrix, camera ebiten.GeoM, c color.Color) {
	w, h := utils.RectSize(r)
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(r.LLx, r.LLy)
	op.GeoM.Concat(utils.GeoMFromMatrix(world))
	op.GeoM.Concat(camera)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(whitePixel(), op)
}
