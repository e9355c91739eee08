package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is the single point light of a demo. Position is rewritten every frame
// by Orbit; everything else is fixed after creation.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Radius    float32 // distance scale of the attenuation curve
	Falloff   float32 // attenuation cut-off, in [0, 1)

	// Orbit parameters: the light circles Center in the XY plane, Height in
	// front of it along +Z.
	Center      mgl32.Vec3
	OrbitRadius float32
	Height      float32
	Speed       float32 // radians per second
}

// CreatePointLight creates a light at position that reaches roughly radius units.
func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, radius float32) *Light {
	return &Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Radius:    radius,
		Falloff:   0.05,
		Center:    position,
		Speed:     1,
	}
}

// OrbitPosition is the light position at time t seconds.
func (l *Light) OrbitPosition(t float32) mgl32.Vec3 {
	a := float64(t * l.Speed)
	return l.Center.Add(mgl32.Vec3{
		float32(math.Sin(a)) * l.OrbitRadius,
		float32(math.Cos(a)) * l.OrbitRadius,
		l.Height,
	})
}

// Orbit moves the light to its position at time t.
func (l *Light) Orbit(t float32) {
	l.Position = l.OrbitPosition(t)
}
