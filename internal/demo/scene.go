package demo

import (
	"brickwall/internal/behaviour"
	"brickwall/internal/config"
	"brickwall/internal/engine"
	"brickwall/internal/loader"
	"brickwall/internal/logger"
	"brickwall/internal/renderer"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// scene is the state of one running demo. Every method runs on the render thread.
type scene struct {
	cfg        config.Demo
	camera     *renderer.OrbitCamera
	light      *renderer.Light
	sway       *behaviour.WallSway
	behaviours *behaviour.BehaviourManager
	textures   *renderer.TextureManager
	pipeline   renderer.Render

	err  error
	stop func()
}

func newScene(cfg config.Demo, camera *renderer.OrbitCamera, stop func()) *scene {
	center := WallCenter(cfg)
	light := NewLight(cfg.Light, center)
	sway := &behaviour.WallSway{Center: center, Amplitude: cfg.Sway}

	behaviours := behaviour.NewBehaviourManager()
	behaviours.Add(&behaviour.LightOrbit{Light: light})
	behaviours.Add(sway)
	behaviours.Add(&behaviour.CameraViewport{Camera: camera})

	return &scene{
		cfg:        cfg,
		camera:     camera,
		light:      light,
		sway:       sway,
		behaviours: behaviours,
		textures:   renderer.NewTextureManager(),
		stop:       stop,
	}
}

// WallCenter is the centre of the quad, the pivot of the sway and the light orbit.
func WallCenter(cfg config.Demo) mgl32.Vec3 {
	return mgl32.Vec3{0, 0, cfg.QuadDepth}
}

// NewLight builds the demo light circling center.
func NewLight(cfg config.Light, center mgl32.Vec3) *renderer.Light {
	l := renderer.CreatePointLight(center, cfg.Color, cfg.Intensity, cfg.Radius)
	l.Falloff = cfg.Falloff
	l.OrbitRadius = cfg.OrbitRadius
	l.Height = cfg.Height
	l.Speed = cfg.Speed
	l.Orbit(0)
	return l
}

func materialParams(m config.Material) renderer.MaterialParams {
	return renderer.MaterialParams{
		Shininess:        m.Shininess,
		Roughness:        m.Roughness,
		Albedo:           m.Albedo,
		Tiling:           m.Tiling,
		HeightScale:      m.HeightScale,
		SpecularStrength: m.SpecularStrength,
		Ambient:          m.Ambient,
	}
}

// launch is the loader continuation: it builds the GPU pipeline from the
// decoded assets. A failure stops the frame loop.
func (s *scene) launch(assets loader.Assets, loadErr error, width, height int32) {
	if loadErr != nil {
		s.fail(fmt.Errorf("load textures: %w", loadErr))
		return
	}

	shader, err := renderer.ShaderFor(s.cfg.Stage)
	if err != nil {
		s.fail(err)
		return
	}

	material := &renderer.Material{Name: "brick", Params: materialParams(s.cfg.Material)}
	ids := map[string]*uint32{
		DiffuseMap:      &material.DiffuseID,
		NormalMap:       &material.NormalID,
		SpecularMap:     &material.SpecularID,
		DisplacementMap: &material.DisplacementID,
	}
	for name, img := range assets {
		slot, ok := ids[name]
		if !ok {
			continue
		}
		id, err := s.textures.Upload(name, img)
		if err != nil {
			s.fail(err)
			return
		}
		*slot = id
	}

	mesh := renderer.NewQuad(s.cfg.QuadDepth, s.cfg.QuadScale)
	pipeline := renderer.NewOpenGLRenderer(shader, mesh, material, s.textures)
	if err := pipeline.Init(width, height); err != nil {
		s.fail(fmt.Errorf("init pipeline: %w", err))
		return
	}
	s.pipeline = pipeline

	s.textures.LogStats()
	logger.Log.Info("Demo launched", zap.String("stage", s.cfg.Stage.String()))
}

func (s *scene) fail(err error) {
	logger.Log.Error("Demo failed to launch", zap.Error(err))
	s.err = err
	s.stop()
}

// frame advances the behaviours and draws. Until launch has run there is
// nothing to draw.
func (s *scene) frame(fc engine.FrameContext) {
	if s.pipeline == nil {
		return
	}
	s.behaviours.UpdateAll(fc)
	s.pipeline.Draw(s.camera, s.light, s.sway.Model)
}

func (s *scene) resize(width, height int32) {
	if s.pipeline != nil {
		s.pipeline.UpdateViewport(width, height)
	}
}

func (s *scene) cleanup() {
	if s.pipeline != nil {
		s.pipeline.Cleanup()
		s.pipeline = nil
	}
}
