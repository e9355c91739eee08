// Package demo is the shared body of the brick wall examples: configuration,
// window, asset loading and the per-frame loop.
package demo

import (
	"brickwall/internal/config"
	"brickwall/internal/engine"
	"brickwall/internal/loader"
	"brickwall/internal/logger"
	"brickwall/internal/renderer"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Options are the command line settings shared by every example.
type Options struct {
	ConfigPath string    // YAML overlay, optional
	TextureDir string    // overrides textures.dir when set
	Debug      bool      // debug logging and wireframe
	Probe      bool      // print the centre fragment and exit without a window
	Out        io.Writer // probe output, stdout when nil
}

// Run loads the stage configuration and runs the demo until its window closes.
func Run(ctx context.Context, stage config.Stage, opts Options) error {
	cfg, err := Configure(stage, opts)
	if err != nil {
		return err
	}

	if opts.Probe {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return Probe(ctx, cfg, out)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := engine.New(cfg.Window)
	if err := eng.Open(100, 100); err != nil {
		return err
	}
	defer eng.Close()

	camera := renderer.NewOrbitCamera(cfg.Camera, eng.Width, eng.Height)
	eng.SetCursorHandler(camera.HandleCursor)
	eng.SetScrollHandler(camera.HandleScroll)

	s := newScene(cfg, camera, cancel)
	eng.SetResizeHandler(s.resize)

	loader.LoadAsync(ctx, Manifest(cfg.Textures), ProceduralFallback(cfg.Seed), func(assets loader.Assets, err error) {
		eng.Post(func() {
			s.launch(assets, err, eng.Width, eng.Height)
		})
	})

	eng.Run(ctx, s.frame)
	s.cleanup()
	return s.err
}

// Configure resolves the configuration for stage from opts and applies the
// process-wide debug switches.
func Configure(stage config.Stage, opts Options) (config.Demo, error) {
	cfg, err := config.Load(opts.ConfigPath, stage)
	if err != nil {
		return cfg, err
	}
	if opts.TextureDir != "" {
		cfg.Textures.Dir = opts.TextureDir
	}

	logger.SetLevel(opts.Debug)
	renderer.Debug = opts.Debug

	logger.Log.Debug("Configuration resolved",
		zap.String("stage", stage.String()),
		zap.String("config", opts.ConfigPath),
		zap.String("textures", cfg.Textures.Dir))
	return cfg, nil
}

// Probe shades the fragment at the centre of the wall at t=0 on the CPU, the
// way the stage's fragment shader would, and prints the result.
func Probe(ctx context.Context, cfg config.Demo, out io.Writer) error {
	assets, err := loader.Load(ctx, Manifest(cfg.Textures), ProceduralFallback(cfg.Seed))
	if err != nil {
		return err
	}
	c := ProbeColor(cfg, cpuTextures(assets))
	_, err = fmt.Fprintf(out, "%s centre fragment: r=%.4f g=%.4f b=%.4f\n", cfg.Stage, c.X(), c.Y(), c.Z())
	return err
}

// ProbeColor is the colour of the wall centre at t=0 for cfg's stage.
func ProbeColor(cfg config.Demo, tex renderer.Textures) mgl32.Vec3 {
	center := WallCenter(cfg)
	light := NewLight(cfg.Light, center)
	camera := renderer.NewOrbitCamera(cfg.Camera, int32(cfg.Window.Width), int32(cfg.Window.Height))
	params := materialParams(cfg.Material)

	frag := renderer.Fragment{
		Position:  center,
		Normal:    mgl32.Vec3{0, 0, 1},
		Tangent:   mgl32.Vec3{1, 0, 0},
		Bitangent: mgl32.Vec3{0, 1, 0},
		TexCoord:  mgl32.Vec2{0.5, 0.5},
	}
	uv := frag.TexCoord.Mul(params.Tiling)

	switch cfg.Stage {
	case config.StageDiffuse:
		if tex.Diffuse == nil {
			return mgl32.Vec3{1, 1, 1}
		}
		return renderer.Sample(tex.Diffuse, uv)
	case config.StageNormal:
		return lambert(frag, tex, params, light)
	}
	return renderer.Shade(frag, tex, params, light, camera.Position)
}

// lambert mirrors the normal-mapping stage: no tone mapping, no attenuation.
func lambert(f renderer.Fragment, tex renderer.Textures, params renderer.MaterialParams, light *renderer.Light) mgl32.Vec3 {
	uv := f.TexCoord.Mul(params.Tiling)
	n := f.Normal
	if tex.Normal != nil {
		n = renderer.PerturbNormal(renderer.Sample(tex.Normal, uv), f.Tangent, f.Bitangent, f.Normal)
	}
	diffuse := mgl32.Vec3{1, 1, 1}
	if tex.Diffuse != nil {
		diffuse = renderer.Sample(tex.Diffuse, uv)
	}
	l := light.Position.Sub(f.Position).Normalize()
	ndl := max(n.Dot(l), 0)
	return mgl32.Vec3{
		diffuse.X() * (params.Ambient + ndl*light.Color.X()),
		diffuse.Y() * (params.Ambient + ndl*light.Color.Y()),
		diffuse.Z() * (params.Ambient + ndl*light.Color.Z()),
	}
}
