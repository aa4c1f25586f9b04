package scenes

import (
	"github.com/gonewx/leveleditor/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景名称，供 SceneFactory 使用
const (
	EditorSceneName = "editor"
)
