package renderer

import (
	"brickwall/internal/config"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestCamera() *OrbitCamera {
	return NewOrbitCamera(config.Default(config.StageDiffuse).Camera, 800, 600)
}

func TestNewOrbitCamera(t *testing.T) {
	cam := newTestCamera()

	if cam == nil {
		t.Fatal("NewOrbitCamera returned nil")
	}

	want := mgl32.Vec3{0, 0, 9}
	if !cam.Position.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected eye at %v, got %v", want, cam.Position)
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Unexpected aspect ratio %f", cam.AspectRatio)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := newTestCamera()

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The orbit centre must land on the view axis.
	c := view.Mul4x1(cam.Center.Vec4(1))
	if math.Abs(float64(c.X())) > 1e-5 || math.Abs(float64(c.Y())) > 1e-5 {
		t.Errorf("Center should be on the view axis, got %v", c)
	}
	if c.Z() >= 0 {
		t.Errorf("Center should be in front of the camera, got z=%f", c.Z())
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := newTestCamera()

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := newTestCamera()

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	cam := newTestCamera()

	cam.Orbit(0.7, 0.4)

	d := cam.Position.Sub(cam.Center).Len()
	if math.Abs(float64(d-cam.Distance)) > 1e-4 {
		t.Errorf("Orbit should keep distance %f, got %f", cam.Distance, d)
	}
}

func TestCameraPhiClamped(t *testing.T) {
	cam := newTestCamera()

	cam.Orbit(0, 10)

	if cam.Phi > maxPhi {
		t.Errorf("Phi should be clamped to %f, got %f", maxPhi, cam.Phi)
	}

	cam.Orbit(0, -20)
	if cam.Phi < -maxPhi {
		t.Errorf("Phi should be clamped to %f, got %f", -maxPhi, cam.Phi)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := newTestCamera()

	cam.Zoom(1000)
	if cam.Distance != cam.MinDistance {
		t.Errorf("Expected zoom to stop at %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.Zoom(-1000)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("Expected zoom to stop at %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestCameraZoomInMovesCloser(t *testing.T) {
	cam := newTestCamera()
	before := cam.Distance

	cam.HandleScroll(1)

	if cam.Distance >= before {
		t.Errorf("Scrolling up should zoom in, %f -> %f", before, cam.Distance)
	}
}

func TestCameraDragRotates(t *testing.T) {
	cam := newTestCamera()

	cam.HandleCursor(100, 100, true)
	if cam.Theta != 0 {
		t.Error("First press should only record the cursor")
	}

	cam.HandleCursor(140, 100, true)
	if cam.Theta == 0 {
		t.Error("Dragging should change theta")
	}

	theta := cam.Theta
	cam.HandleCursor(500, 500, false)
	cam.HandleCursor(600, 600, true)
	if cam.Theta != theta {
		t.Error("Releasing and pressing again should not jump")
	}
}

func TestCameraSetViewportIgnoresZero(t *testing.T) {
	cam := newTestCamera()
	aspect := cam.AspectRatio

	cam.SetViewport(0, 0)
	if cam.AspectRatio != aspect {
		t.Error("A zero viewport should not change the aspect ratio")
	}

	cam.SetViewport(1000, 500)
	if cam.AspectRatio != 2 {
		t.Errorf("Expected aspect 2, got %f", cam.AspectRatio)
	}
}
