package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCreatePointLight(t *testing.T) {
	light := CreatePointLight(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{1, 1, 1}, 2, 3)

	if light.Radius != 3 || light.Intensity != 2 {
		t.Errorf("Unexpected light %+v", light)
	}
	if light.Center != light.Position {
		t.Error("Orbit centre should default to the start position")
	}
}

func TestLightOrbitAtZero(t *testing.T) {
	light := CreatePointLight(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{1, 1, 1}, 1, 1)
	light.OrbitRadius = 2
	light.Height = 1

	light.Orbit(0)

	want := mgl32.Vec3{0, 2, 5}
	if !light.Position.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("Expected %v, got %v", want, light.Position)
	}
}

func TestLightOrbitIsPeriodic(t *testing.T) {
	light := CreatePointLight(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{1, 1, 1}, 1, 1)
	light.OrbitRadius = 1.5
	light.Height = 1
	light.Speed = 2

	period := float32(2 * math.Pi / 2)
	a := light.OrbitPosition(0.4)
	b := light.OrbitPosition(0.4 + period)
	if !a.ApproxEqualThreshold(b, 1e-5) {
		t.Errorf("Orbit should repeat every %f s: %v vs %v", period, a, b)
	}

	// Distance from the orbit axis stays at OrbitRadius.
	d := a.Sub(light.Center)
	r := float32(math.Hypot(float64(d.X()), float64(d.Y())))
	if math.Abs(float64(r-1.5)) > 1e-5 {
		t.Errorf("Expected orbit radius 1.5, got %f", r)
	}
}
