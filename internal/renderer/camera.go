// camera.go
package renderer

import (
	"brickwall/internal/config"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPhi = math.Pi/2 - 0.01

// OrbitCamera circles Center at Distance. Theta turns around Up, Phi lifts the
// eye towards Up. Theta = Phi = 0 puts the eye on the +Z side of Center.
type OrbitCamera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Eye position in world space
	Center     mgl32.Vec3 // Orbit target
	Up         mgl32.Vec3 // Up direction vector
	Projection mgl32.Mat4 // Projection matrix
	View       mgl32.Mat4 // View matrix
	Theta      float32    // Yaw around Up, radians
	Phi        float32    // Pitch above the horizon, radians
	Distance   float32    // Eye distance from Center

	// COLD DATA - Configuration and input handling
	MinDistance  float32 // Zoom limits
	MaxDistance  float32
	Fov          float32 // Field of view, degrees
	Near         float32 // Near clipping plane
	Far          float32 // Far clipping plane
	AspectRatio  float32 // Screen aspect ratio
	Sensitivity  float32 // Radians per pixel of mouse drag
	ZoomSpeed    float32 // Fraction of distance per scroll step
	LastX, LastY float64 // Last cursor position while dragging
	dragging     bool
}

// NewOrbitCamera builds a camera from configuration for a viewport of width x height.
func NewOrbitCamera(cfg config.Camera, width, height int32) *OrbitCamera {
	c := &OrbitCamera{
		Center:      cfg.Center,
		Up:          cfg.Up.Normalize(),
		Theta:       cfg.Theta,
		Phi:         cfg.Phi,
		Distance:    cfg.Distance,
		MinDistance: cfg.MinDistance,
		MaxDistance: cfg.MaxDistance,
		Fov:         cfg.Fov,
		Near:        cfg.Near,
		Far:         cfg.Far,
		AspectRatio: float32(width) / float32(height),
		Sensitivity: 0.005,
		ZoomSpeed:   0.1,
	}
	c.updatePosition()
	c.UpdateProjection()
	return c
}

func (c *OrbitCamera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *OrbitCamera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

// SetViewport updates the aspect ratio for a resized framebuffer. Zero sizes
// (minimised window) are ignored.
func (c *OrbitCamera) SetViewport(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspectRatio(float32(width) / float32(height))
}

func (c *OrbitCamera) GetViewMatrix() mgl32.Mat4 {
	return c.View
}

func (c *OrbitCamera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *OrbitCamera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// Orbit rotates the eye around Center.
func (c *OrbitCamera) Orbit(dTheta, dPhi float32) {
	c.Theta += dTheta
	c.Phi += dPhi
	c.updatePosition()
}

// Zoom scales the distance exponentially so each step feels the same at any range.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance *= float32(math.Exp(float64(-steps * c.ZoomSpeed)))
	c.updatePosition()
}

// HandleCursor turns a drag with the orbit button held into rotation.
func (c *OrbitCamera) HandleCursor(x, y float64, pressed bool) {
	if !pressed {
		c.dragging = false
		return
	}
	if !c.dragging {
		c.LastX, c.LastY = x, y
		c.dragging = true
		return
	}
	dx := float32(x - c.LastX)
	dy := float32(y - c.LastY)
	c.LastX, c.LastY = x, y
	// Dragging right swings the eye left around the wall; dragging down lifts it.
	c.Orbit(-dx*c.Sensitivity, dy*c.Sensitivity)
}

// HandleScroll zooms in for positive y offsets.
func (c *OrbitCamera) HandleScroll(yoff float64) {
	c.Zoom(float32(yoff))
}

// basis returns the horizontal forward and right axes orthogonal to Up.
func (c *OrbitCamera) basis() (front, right mgl32.Vec3) {
	up := c.Up
	front = mgl32.Vec3{0, 0, 1}
	front = front.Sub(up.Mul(up.Dot(front)))
	if front.LenSqr() < 1e-6 {
		front = mgl32.Vec3{1, 0, 0}
		front = front.Sub(up.Mul(up.Dot(front)))
	}
	front = front.Normalize()
	right = up.Cross(front).Normalize()
	return front, right
}

func (c *OrbitCamera) updatePosition() {
	c.Phi = mgl32.Clamp(c.Phi, -maxPhi, maxPhi)
	if c.MaxDistance > 0 {
		c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	}

	front, right := c.basis()
	cosPhi := float32(math.Cos(float64(c.Phi)))
	sinPhi := float32(math.Sin(float64(c.Phi)))
	cosTheta := float32(math.Cos(float64(c.Theta)))
	sinTheta := float32(math.Sin(float64(c.Theta)))

	offset := front.Mul(cosPhi * cosTheta).
		Add(right.Mul(cosPhi * sinTheta)).
		Add(c.Up.Mul(sinPhi))

	c.Position = c.Center.Add(offset.Mul(c.Distance))
	c.View = mgl32.LookAtV(c.Position, c.Center, c.Up)
}
