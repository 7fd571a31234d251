package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Create for names with no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name accepted by Create
	DisplayName string // Human readable name
	Description string
}

type sceneConstructor func(capacity int, overrides CameraOverrides) (*Scene, error)

type builtinScene struct {
	info   SceneInfo
	create sceneConstructor
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info:   SceneInfo{ID: "default", DisplayName: "Default", Description: "Magenta sphere, two mirrors and a white ground"},
		create: NewDefaultScene,
	},
	"triangle": {
		info:   SceneInfo{ID: "triangle", DisplayName: "Triangle", Description: "Default scene with a red triangle"},
		create: NewTriangleScene,
	},
	"mirrors": {
		info:   SceneInfo{ID: "mirrors", DisplayName: "Mirrors", Description: "Two facing mirror spheres that hit the reflection depth limit"},
		create: NewMirrorsScene,
	},
	"classic": {
		info:   SceneInfo{ID: "classic", DisplayName: "Classic", Description: "Two matte spheres on a blue ground"},
		create: NewClassicScene,
	},
}

// ListBuiltinScenes returns all built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the named built-in scene
func Create(name string, capacity int, overrides CameraOverrides) (*Scene, error) {
	s, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return s.create(capacity, overrides)
}
