package components

// EditorCameraComponent 编辑器镜头
// X/Y 为视口中心对应的世界坐标
type EditorCameraComponent struct {
	X, Y float64
	Zoom float64
}
