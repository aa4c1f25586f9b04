package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/leveleditor/pkg/embedded"
)

// FileReader reads a resource file by path.
type FileReader func(path string) ([]byte, error)

// DefaultFileReader reads from the embedded file systems when they are
// initialized, and from disk otherwise.
func DefaultFileReader(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// ResourceManager is responsible for centralized management of editor assets.
// Images and fonts are opaque handles looked up by string key; the key -> path
// mapping comes from the YAML manifest.
//
// This implementation is NOT thread-safe. It is only used from the ebiten
// game loop.
//
// Usage:
//
//	rm := NewResourceManager(DefaultFileReader)
//	if err := rm.LoadResourceConfig("data/editor_assets.yaml"); err != nil {
//	    return err
//	}
//	icon := rm.GetImageByID("editor.image.icon.tool.translation")
type ResourceManager struct {
	readFile FileReader

	imageCache map[string]*ebiten.Image // path -> Image
	fontCache  map[string]text.Face     // resource ID -> Face

	config      *ResourceConfig
	resourceMap map[string]string // Resource ID -> file path
	fontSpecs   map[string]FontResource

	placeholder *ebiten.Image
}

// NewResourceManager creates a ResourceManager reading files with readFile.
func NewResourceManager(readFile FileReader) *ResourceManager {
	if readFile == nil {
		readFile = DefaultFileReader
	}
	return &ResourceManager{
		readFile:    readFile,
		imageCache:  make(map[string]*ebiten.Image),
		fontCache:   make(map[string]text.Face),
		resourceMap: make(map[string]string),
		fontSpecs:   make(map[string]FontResource),
	}
}

// LoadResourceConfig loads and indexes the asset manifest.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.readFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	rm.config = cfg
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded %d resource ids from %s", len(rm.resourceMap)+len(rm.fontSpecs), configPath)
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	editor.image.button.normal -> assets/images/editor/button_normal.png
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	rm.fontSpecs = make(map[string]FontResource)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}
		for _, font := range group.Fonts {
			rm.fontSpecs[font.ID] = font
		}
	}
}

// ImageIDs returns every image ID defined by the manifest, sorted.
func (rm *ResourceManager) ImageIDs() []string {
	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasResource reports whether the manifest defines id.
func (rm *ResourceManager) HasResource(id string) bool {
	if _, ok := rm.resourceMap[id]; ok {
		return true
	}
	_, ok := rm.fontSpecs[id]
	return ok
}

// ImagePath returns the resolved file path of an image resource.
func (rm *ResourceManager) ImagePath(id string) (string, bool) {
	p, ok := rm.resourceMap[id]
	return p, ok
}

// LoadImage loads an image file and caches it by path.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID loads an image resource using its resource ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// GetImageByID returns the image for id, loading it on first use.
// Missing or broken resources are logged once and replaced by a
// magenta placeholder so the editor keeps running.
func (rm *ResourceManager) GetImageByID(resourceID string) *ebiten.Image {
	img, err := rm.LoadImageByID(resourceID)
	if err == nil {
		return img
	}
	log.Printf("[ResourceManager] Warning: %v (using placeholder)", err)
	if filePath, ok := rm.resourceMap[resourceID]; ok {
		rm.imageCache[filePath] = rm.placeholderImage()
	}
	return rm.placeholderImage()
}

func (rm *ResourceManager) placeholderImage() *ebiten.Image {
	if rm.placeholder == nil {
		rm.placeholder = ebiten.NewImage(16, 16)
		rm.placeholder.Fill(color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return rm.placeholder
}

// GetFont returns the font face for id. Unknown ids fall back to the
// bundled bitmap font.
func (rm *ResourceManager) GetFont(resourceID string) text.Face {
	if face, ok := rm.fontCache[resourceID]; ok {
		return face
	}

	face, err := rm.loadFont(resourceID)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v (using basic font)", err)
		face = text.NewGoXFace(basicfont.Face7x13)
	}
	rm.fontCache[resourceID] = face
	return face
}

func (rm *ResourceManager) loadFont(resourceID string) (text.Face, error) {
	spec, ok := rm.fontSpecs[resourceID]
	if !ok {
		return nil, fmt.Errorf("font resource ID not found: %s", resourceID)
	}
	if spec.Path == BuiltinBasicFont {
		return text.NewGoXFace(basicfont.Face7x13), nil
	}

	fullPath := buildFullPath(rm.config.BasePath, spec.Path)
	data, err := rm.readFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", fullPath, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", fullPath, err)
	}
	size := spec.Size
	if size <= 0 {
		size = 14
	}
	return &text.GoTextFace{Source: source, Size: size, Direction: text.DirectionLeftToRight}, nil
}

// LoadResourceGroup loads every image of a group.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}
	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}
	return nil
}
