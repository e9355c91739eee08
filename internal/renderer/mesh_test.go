package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewQuadLayout(t *testing.T) {
	m := NewQuad(4, 1)

	if m.Count() != QuadVertexCount {
		t.Fatalf("Expected %d vertices, got %d", QuadVertexCount, m.Count())
	}

	wantUV := []mgl32.Vec2{{1, 1}, {0, 1}, {1, 0}, {0, 1}, {0, 0}, {1, 0}}
	for i, uv := range wantUV {
		if m.TexCoords[i] != uv {
			t.Errorf("Vertex %d: expected uv %v, got %v", i, uv, m.TexCoords[i])
		}
		if m.Positions[i].Z() != 4 || m.Positions[i].W() != 1 {
			t.Errorf("Vertex %d: expected z=4 w=1, got %v", i, m.Positions[i])
		}
		if m.Normals[i] != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("Vertex %d: expected +Z normal, got %v", i, m.Normals[i])
		}
	}
}

func TestNewQuadScale(t *testing.T) {
	m := NewQuad(0, 2.5)

	if m.Positions[0] != (mgl32.Vec4{2.5, 2.5, 0, 1}) {
		t.Errorf("Expected scaled corner, got %v", m.Positions[0])
	}
}

func TestQuadTangentFrame(t *testing.T) {
	m := NewQuad(4, 1)

	for i := range m.Tangents {
		if !m.Tangents[i].ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6) {
			t.Errorf("Vertex %d: expected tangent +X, got %v", i, m.Tangents[i])
		}
		if !m.Bitangents[i].ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
			t.Errorf("Vertex %d: expected bitangent +Y, got %v", i, m.Bitangents[i])
		}
	}
}

func TestComputeTangentsDegenerateUV(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		TexCoords: []mgl32.Vec2{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}},
	}

	ComputeTangents(m)

	for i := range m.Tangents {
		tg, bt, n := m.Tangents[i], m.Bitangents[i], m.Normals[i]
		if abs32(tg.Len()-1) > 1e-5 || abs32(bt.Len()-1) > 1e-5 {
			t.Errorf("Vertex %d: fallback frame should be unit length, got %v %v", i, tg, bt)
		}
		if abs32(tg.Dot(n)) > 1e-5 {
			t.Errorf("Vertex %d: tangent should be perpendicular to the normal", i)
		}
	}
}

func TestFlattenSizes(t *testing.T) {
	flat := NewQuad(4, 1).Flatten()

	for loc, data := range flat {
		want := QuadVertexCount * int(attribSizes[loc])
		if len(data) != want {
			t.Errorf("Attribute %d: expected %d floats, got %d", loc, want, len(data))
		}
	}
}

func TestModelMatrixKeepsCenterFixed(t *testing.T) {
	center := mgl32.Vec3{0, 0, 4}
	m := ModelMatrix(center, 0.3)

	got := m.Mul4x1(center.Vec4(1)).Vec3()
	if !got.ApproxEqualThreshold(center, 1e-5) {
		t.Errorf("Rotation should pivot on the centre, got %v", got)
	}

	if ModelMatrix(center, 0) != mgl32.Ident4() {
		t.Error("Zero sway should give the identity")
	}
}

func TestSwayAngle(t *testing.T) {
	if SwayAngle(0, 0.35) != 0 {
		t.Error("Sway should start at zero")
	}
	if a := SwayAngle(3.14159265, 0.35); abs32(a-0.35) > 1e-4 {
		t.Errorf("Expected peak sway 0.35 at t=pi, got %f", a)
	}
}
