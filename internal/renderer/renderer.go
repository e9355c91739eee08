package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

var Debug bool = false          // Draw in wireframe
var DepthTestEnabled bool = true // Depth testing for the wall
var ClearColorR float32 = 0.0   // Background clear color red
var ClearColorG float32 = 0.0   // Background clear color green
var ClearColorB float32 = 0.0   // Background clear color blue

// Render draws one frame of a demo.
type Render interface {
	Init(width, height int32) error
	Draw(camera *OrbitCamera, light *Light, model mgl32.Mat4)
	UpdateViewport(width, height int32)
	Cleanup()
}
