package demo

import (
	"brickwall/internal/config"
	"brickwall/internal/loader"
	"brickwall/internal/procedural"
	"brickwall/internal/renderer"
	"image"
	"sync"
)

// Manifest names used for every texture a stage can load.
const (
	DiffuseMap      = "diffuse"
	NormalMap       = "normal"
	SpecularMap     = "specular"
	DisplacementMap = "displacement"
)

// Manifest lists the configured texture files in binding order. Unset maps are
// left out.
func Manifest(t config.Textures) loader.Manifest {
	entries := []struct{ name, file string }{
		{DiffuseMap, t.Diffuse},
		{NormalMap, t.Normal},
		{SpecularMap, t.Specular},
		{DisplacementMap, t.Displacement},
	}
	var m loader.Manifest
	for _, e := range entries {
		if e.file == "" {
			continue
		}
		m = append(m, loader.Source{Name: e.name, Path: t.Path(e.file)})
	}
	return m
}

// ProceduralFallback generates brick textures for files that are not on disk.
// The generator is built on first use and shared by concurrent callers.
func ProceduralFallback(seed int64) loader.Fallback {
	var (
		once sync.Once
		gen  *procedural.Generator
	)
	return func(name string) (*image.RGBA, error) {
		once.Do(func() {
			gen = procedural.New(seed, procedural.DefaultLayout())
		})
		return gen.ForName(name)
	}
}

// cpuTextures picks the decoded maps out of assets for the shading reference.
func cpuTextures(assets loader.Assets) renderer.Textures {
	return renderer.Textures{
		Diffuse:      assets[DiffuseMap],
		Normal:       assets[NormalMap],
		Specular:     assets[SpecularMap],
		Displacement: assets[DisplacementMap],
	}
}
