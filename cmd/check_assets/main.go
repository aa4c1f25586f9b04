// cmd/check_assets/main.go
// 检查资源清单中的每个图像文件：是否存在、能否解码，并输出 MD5 和尺寸
//
// 用法（在仓库根目录）：
//
//	go run ./cmd/check_assets
//	go run ./cmd/check_assets --manifest=data/editor_assets.yaml --root=.
package main

import (
	"bytes"
	"crypto/md5"
	"flag"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"

	"github.com/gonewx/leveleditor/pkg/embedded"
	"github.com/gonewx/leveleditor/pkg/game"
)

var (
	manifestPath = flag.String("manifest", "data/editor_assets.yaml", "资源清单路径")
	root         = flag.String("root", ".", "仓库根目录（包含 assets/ 和 data/）")
)

func main() {
	flag.Parse()

	fsys := os.DirFS(*root)
	embedded.Init(fsys, fsys)

	rm := game.NewResourceManager(game.DefaultFileReader)
	if err := rm.LoadResourceConfig(*manifestPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, id := range rm.ImageIDs() {
		path, _ := rm.ImagePath(id)
		data, err := embedded.ReadFile(path)
		if err != nil {
			fmt.Printf("✗ %-40s %s: %v\n", id, path, err)
			failed++
			continue
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			fmt.Printf("✗ %-40s %s: decode failed: %v\n", id, path, err)
			failed++
			continue
		}
		fmt.Printf("✓ %-40s %s %dx%d %s %d bytes MD5 %x\n", id, path, cfg.Width, cfg.Height, format, len(data), md5.Sum(data))
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d images failed\n", failed, len(rm.ImageIDs()))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d images OK\n", len(rm.ImageIDs()))
}
