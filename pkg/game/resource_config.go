package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the asset manifest loaded from YAML.
// It defines the structure of data/editor_assets.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
//
// Example:
//
//	editor:
//	  images:
//	    - id: editor.image.button.normal
//	      path: images/editor/button_normal
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource represents a single image resource definition.
//
//   - ID: asset key (e.g., "editor.image.icon.tool.selectentities")
//   - Path: path relative to base_path; ".png" is appended when there is no extension
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource represents a single font resource definition.
// Path "builtin:basic" selects the bundled 7x13 bitmap font.
type FontResource struct {
	ID   string  `yaml:"id"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size,omitempty"`
}

// BuiltinBasicFont font path of the bundled bitmap font
const BuiltinBasicFont = "builtin:basic"

// ParseResourceConfig parses the YAML manifest and checks that IDs are unique.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}

	seen := make(map[string]string)
	for name, group := range cfg.Groups {
		for _, img := range group.Images {
			if err := checkResourceID(seen, img.ID, name); err != nil {
				return nil, err
			}
		}
		for _, font := range group.Fonts {
			if err := checkResourceID(seen, font.ID, name); err != nil {
				return nil, err
			}
		}
	}
	return &cfg, nil
}

func checkResourceID(seen map[string]string, id, group string) error {
	if id == "" {
		return fmt.Errorf("resource without id in group %s", group)
	}
	if prev, dup := seen[id]; dup {
		return fmt.Errorf("duplicate resource id %s in groups %s and %s", id, prev, group)
	}
	seen[id] = group
	return nil
}

// buildFullPath constructs the full file path for a resource.
//
//	buildFullPath("assets", "images/editor/button.png") -> "assets/images/editor/button.png"
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
