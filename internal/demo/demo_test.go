package demo

import (
	"brickwall/internal/config"
	"brickwall/internal/loader"
	"brickwall/internal/renderer"
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestManifestPerStage(t *testing.T) {
	cases := []struct {
		stage config.Stage
		names []string
	}{
		{config.StageDiffuse, []string{DiffuseMap, NormalMap}},
		{config.StageLighting, []string{DiffuseMap, NormalMap, SpecularMap}},
		{config.StageTangent, []string{DiffuseMap, NormalMap, SpecularMap, DisplacementMap}},
	}
	for _, c := range cases {
		m := Manifest(config.Default(c.stage).Textures)
		if len(m) != len(c.names) {
			t.Errorf("%s: expected %d entries, got %d", c.stage, len(c.names), len(m))
			continue
		}
		for i, name := range c.names {
			if m[i].Name != name {
				t.Errorf("%s: entry %d is %q, expected %q", c.stage, i, m[i].Name, name)
			}
		}
	}
}

func TestManifestResolvesPaths(t *testing.T) {
	m := Manifest(config.Textures{Dir: "assets", Diffuse: "wall.jpg"})

	if len(m) != 1 {
		t.Fatalf("Expected one entry, got %d", len(m))
	}
	if want := filepath.Join("assets", "wall.jpg"); m[0].Path != want {
		t.Errorf("Expected path %s, got %s", want, m[0].Path)
	}
}

func TestProceduralFallbackNames(t *testing.T) {
	fallback := ProceduralFallback(3)

	for _, name := range []string{DiffuseMap, NormalMap, SpecularMap, DisplacementMap} {
		img, err := fallback(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if img.Rect.Dx() == 0 {
			t.Errorf("%s: empty image", name)
		}
	}

	if _, err := fallback("albedo"); err == nil {
		t.Error("Expected an error for an unknown map")
	}
}

func TestNewLightStartsOnOrbit(t *testing.T) {
	cfg := config.Default(config.StageLighting)
	center := WallCenter(cfg)

	light := NewLight(cfg.Light, center)

	want := center.Add(mgl32.Vec3{0, cfg.Light.OrbitRadius, cfg.Light.Height})
	if !light.Position.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected light at %v, got %v", want, light.Position)
	}
	if light.Falloff != cfg.Light.Falloff {
		t.Errorf("Falloff not applied: %f", light.Falloff)
	}
}

func TestConfigureTextureOverride(t *testing.T) {
	cfg, err := Configure(config.StageNormal, Options{TextureDir: "elsewhere"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Textures.Dir != "elsewhere" {
		t.Errorf("Expected texture dir override, got %s", cfg.Textures.Dir)
	}
	if cfg.Stage != config.StageNormal {
		t.Errorf("Expected stage %s, got %s", config.StageNormal, cfg.Stage)
	}
}

func TestConfigureBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Configure(config.StageDiffuse, Options{ConfigPath: path}); err == nil {
		t.Error("Expected a parse error")
	}
}

func uniform(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestProbeColorDiffuseStage(t *testing.T) {
	cfg := config.Default(config.StageDiffuse)
	tex := renderer.Textures{Diffuse: uniform(color.RGBA{255, 0, 0, 255})}

	c := ProbeColor(cfg, tex)

	if !c.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Diffuse stage should return the texel, got %v", c)
	}
}

func TestProbeColorNormalStageFlatWall(t *testing.T) {
	cfg := config.Default(config.StageNormal)
	flat := uniform(color.RGBA{128, 128, 255, 255})
	white := uniform(color.RGBA{255, 255, 255, 255})

	c := ProbeColor(cfg, renderer.Textures{Diffuse: white, Normal: flat})

	// At t=0 the light sits above and in front of the centre.
	l := NewLight(cfg.Light, WallCenter(cfg)).Position.Sub(WallCenter(cfg)).Normalize()
	want := cfg.Material.Ambient + l.Z()
	if d := c.X() - want; d > 0.01 || d < -0.01 {
		t.Errorf("Expected %f, got %f", want, c.X())
	}
}

func TestProbeColorLitStagesInRange(t *testing.T) {
	for _, stage := range []config.Stage{config.StageLighting, config.StageParallax, config.StageTangent} {
		cfg := config.Default(stage)
		c := ProbeColor(cfg, renderer.Textures{})
		for i := 0; i < 3; i++ {
			if c[i] <= 0 {
				t.Errorf("%s: centre should be lit, got %v", stage, c)
			}
		}
	}
}

func TestProbeUsesFallbackTextures(t *testing.T) {
	cfg := config.Default(config.StageTangent)
	cfg.Textures.Dir = t.TempDir()

	var out bytes.Buffer
	if err := Probe(context.Background(), cfg, &out); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "centre fragment") {
		t.Errorf("Unexpected probe output %q", out.String())
	}
}

func TestCPUTexturesMapsNames(t *testing.T) {
	img := uniform(color.RGBA{1, 2, 3, 255})
	tex := cpuTextures(loader.Assets{SpecularMap: img})

	if tex.Specular != img {
		t.Error("Specular map not picked up")
	}
	if tex.Diffuse != nil || tex.Normal != nil || tex.Displacement != nil {
		t.Error("Missing maps should stay nil")
	}
}
