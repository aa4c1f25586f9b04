package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/leveleditor/pkg/app"
	"github.com/gonewx/leveleditor/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "详细日志")
	configPath = flag.String("config", "", "编辑器配置文件路径（默认使用内置配置）")
	toolName   = flag.String("tool", "", "启动工具: select / translate / tilemap")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	editor, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Tool:       *toolName,
	})
	if err != nil {
		log.Fatalf("编辑器初始化失败: %v", err)
	}

	window := editor.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(editor)

	// 窗口关闭时保存偏好
	if !editor.GetSceneManager().SaveCurrent() {
		log.Printf("[main] Warning: failed to save editor prefs")
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
