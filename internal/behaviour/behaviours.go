package behaviour

import (
	"brickwall/internal/engine"
	"brickwall/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// LightOrbit moves a point light around its orbit centre.
type LightOrbit struct {
	Light *renderer.Light
}

func (b *LightOrbit) Start() {
	b.Light.Orbit(0)
}

func (b *LightOrbit) Update(frame engine.FrameContext) {
	b.Light.Orbit(float32(frame.Time))
}

// WallSway rocks the quad about the vertical axis through Center.
type WallSway struct {
	Center    mgl32.Vec3
	Amplitude float32 // radians
	Model     mgl32.Mat4
}

func (b *WallSway) Start() {
	b.Model = renderer.ModelMatrix(b.Center, 0)
}

func (b *WallSway) Update(frame engine.FrameContext) {
	b.Model = renderer.ModelMatrix(b.Center, renderer.SwayAngle(float32(frame.Time), b.Amplitude))
}

// CameraViewport keeps the projection aspect in step with the framebuffer.
type CameraViewport struct {
	Camera *renderer.OrbitCamera
}

func (b *CameraViewport) Start() {}

func (b *CameraViewport) Update(frame engine.FrameContext) {
	b.Camera.SetViewport(frame.ViewportWidth, frame.ViewportHeight)
}
