package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Stage identifies one of the progressive demos.
type Stage int

const (
	StageDiffuse Stage = iota + 1
	StageNormal
	StageLighting
	StageParallax
	StageTangent
)

var stageNames = map[Stage]string{
	StageDiffuse:  "diffuse",
	StageNormal:   "normal",
	StageLighting: "lighting",
	StageParallax: "parallax",
	StageTangent:  "tangent",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s names a known demo.
func (s Stage) Valid() bool {
	_, ok := stageNames[s]
	return ok
}

// ParseStage accepts either the stage name or its number.
func ParseStage(v string) (Stage, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, err := strconv.Atoi(v); err == nil {
		s := Stage(n)
		if s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("unknown stage %d", n)
	}
	for s, name := range stageNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", v)
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type Camera struct {
	Center      mgl32.Vec3 `yaml:"center"`
	Up          mgl32.Vec3 `yaml:"up"`
	Distance    float32    `yaml:"distance"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	Theta       float32    `yaml:"theta"` // radians around Up
	Phi         float32    `yaml:"phi"`   // radians above the horizon
	Fov         float32    `yaml:"fov"`   // degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

type Light struct {
	Color       mgl32.Vec3 `yaml:"color"`
	Intensity   float32    `yaml:"intensity"`
	Radius      float32    `yaml:"radius"`
	Falloff     float32    `yaml:"falloff"`
	OrbitRadius float32    `yaml:"orbit_radius"`
	Height      float32    `yaml:"height"`
	Speed       float32    `yaml:"speed"`
}

type Material struct {
	Shininess        float32 `yaml:"shininess"`
	Roughness        float32 `yaml:"roughness"`
	Albedo           float32 `yaml:"albedo"`
	Tiling           float32 `yaml:"tiling"`
	HeightScale      float32 `yaml:"height_scale"`
	SpecularStrength float32 `yaml:"specular_strength"`
	Ambient          float32 `yaml:"ambient"`
}

// Textures lists the image files a demo loads. Empty entries are not loaded.
type Textures struct {
	Dir          string `yaml:"dir"`
	Diffuse      string `yaml:"diffuse"`
	Normal       string `yaml:"normal"`
	Specular     string `yaml:"specular"`
	Displacement string `yaml:"displacement"`
}

// Path resolves a texture file relative to Dir.
func (t Textures) Path(file string) string {
	if file == "" || filepath.IsAbs(file) || t.Dir == "" {
		return file
	}
	return filepath.Join(t.Dir, file)
}

// Demo is the full set of constants one demo runs with.
type Demo struct {
	Stage     Stage    `yaml:"-"`
	Window    Window   `yaml:"window"`
	Camera    Camera   `yaml:"camera"`
	Light     Light    `yaml:"light"`
	Material  Material `yaml:"material"`
	Textures  Textures `yaml:"textures"`
	QuadDepth float32  `yaml:"quad_depth"`
	QuadScale float32  `yaml:"quad_scale"`
	Sway      float32  `yaml:"sway"` // radians of model rotation about Y
	Seed      int64    `yaml:"seed"` // procedural texture seed
}

// Default returns the built-in constants for a stage.
func Default(stage Stage) Demo {
	d := Demo{
		Stage: stage,
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "brickwall - " + stage.String(),
			VSync:  true,
		},
		Camera: Camera{
			Center:      mgl32.Vec3{0, 0, 4},
			Up:          mgl32.Vec3{0, 1, 0},
			Distance:    5,
			MinDistance: 1.5,
			MaxDistance: 50,
			Fov:         45,
			Near:        0.01,
			Far:         1000,
		},
		Light: Light{
			Color:       mgl32.Vec3{1, 1, 1},
			Intensity:   6,
			Radius:      2.5,
			Falloff:     0.05,
			OrbitRadius: 1.2,
			Height:      1,
			Speed:       1,
		},
		Material: Material{
			Shininess:        20,
			Roughness:        0.8,
			Albedo:           0.95,
			Tiling:           1,
			HeightScale:      0.04,
			SpecularStrength: 0.4,
			Ambient:          0.08,
		},
		Textures: Textures{
			Dir:     "textures",
			Diffuse: "brick-diffuse.jpg",
			Normal:  "brick-normal.png",
		},
		QuadDepth: 4,
		QuadScale: 1,
		Seed:      1,
	}

	if stage >= StageLighting {
		d.Textures.Specular = "brick-specular.png"
		d.Sway = 0.35
	}
	if stage >= StageParallax {
		d.Textures.Displacement = "brick-displacement.png"
	}
	return d
}

// Load overlays the YAML file at path on the stage defaults. An empty path or a
// missing file yields the defaults.
func Load(path string, stage Stage) (Demo, error) {
	d := Default(stage)
	if path == "" {
		return d, d.Validate()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return d, d.Validate()
	}
	if err != nil {
		return d, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse config %s: %w", path, err)
	}
	d.Stage = stage
	return d, d.Validate()
}

// Validate rejects values no demo can render with.
func (d Demo) Validate() error {
	switch {
	case !d.Stage.Valid():
		return fmt.Errorf("invalid stage %d", int(d.Stage))
	case d.Window.Width <= 0 || d.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", d.Window.Width, d.Window.Height)
	case d.Camera.Distance <= 0:
		return errors.New("camera distance must be positive")
	case d.Camera.MinDistance <= 0 || d.Camera.MinDistance > d.Camera.MaxDistance:
		return fmt.Errorf("camera distance range [%g, %g] is invalid", d.Camera.MinDistance, d.Camera.MaxDistance)
	case d.Camera.Fov <= 0 || d.Camera.Fov >= 180:
		return fmt.Errorf("camera fov must be in (0, 180) degrees, got %g", d.Camera.Fov)
	case d.Camera.Near <= 0 || d.Camera.Near >= d.Camera.Far:
		return fmt.Errorf("camera clip range [%g, %g] is invalid", d.Camera.Near, d.Camera.Far)
	case d.Camera.Up.Len() == 0:
		return errors.New("camera up vector must be non-zero")
	case d.Light.Radius <= 0:
		return errors.New("light radius must be positive")
	case d.Light.Falloff < 0 || d.Light.Falloff >= 1:
		return fmt.Errorf("light falloff must be in [0, 1), got %g", d.Light.Falloff)
	case d.Material.HeightScale < 0:
		return errors.New("height scale must not be negative")
	case d.Material.Tiling <= 0:
		return errors.New("tiling must be positive")
	case d.QuadScale <= 0:
		return errors.New("quad scale must be positive")
	case d.Textures.Diffuse == "":
		return errors.New("a diffuse texture is required")
	}
	return nil
}
