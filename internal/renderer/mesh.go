package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// QuadVertexCount is the number of vertices of the wall quad (two triangles, no index buffer).
const QuadVertexCount = 6

// Mesh is a non-indexed triangle list with one slice per vertex attribute.
// Every slice has the same length.
type Mesh struct {
	Positions  []mgl32.Vec4 // Homogeneous position, w = 1
	Normals    []mgl32.Vec3 // Surface normal
	TexCoords  []mgl32.Vec2 // Texture coordinate
	Tangents   []mgl32.Vec3 // Direction of increasing u
	Bitangents []mgl32.Vec3 // Direction of increasing v
}

// NewQuad builds the wall: a square of half-extent scale facing +Z at depth z.
func NewQuad(z, scale float32) *Mesh {
	corners := [QuadVertexCount]mgl32.Vec2{
		{1, 1}, {-1, 1}, {1, -1},
		{-1, 1}, {-1, -1}, {1, -1},
	}
	m := &Mesh{
		Positions: make([]mgl32.Vec4, QuadVertexCount),
		Normals:   make([]mgl32.Vec3, QuadVertexCount),
		TexCoords: make([]mgl32.Vec2, QuadVertexCount),
	}
	for i, c := range corners {
		m.Positions[i] = mgl32.Vec4{c.X() * scale, c.Y() * scale, z, 1}
		m.Normals[i] = mgl32.Vec3{0, 0, 1}
		m.TexCoords[i] = mgl32.Vec2{(c.X() + 1) / 2, (c.Y() + 1) / 2}
	}
	ComputeTangents(m)
	return m
}

// Count is the number of vertices to draw.
func (m *Mesh) Count() int {
	return len(m.Positions)
}

// ComputeTangents fills Tangents and Bitangents from the UV layout of each
// triangle, then orthonormalizes them against the normal. Triangles with a
// degenerate UV area contribute nothing.
func ComputeTangents(m *Mesh) {
	n := len(m.Positions)
	m.Tangents = make([]mgl32.Vec3, n)
	m.Bitangents = make([]mgl32.Vec3, n)

	for i := 0; i+2 < n; i += 3 {
		p0, p1, p2 := m.Positions[i].Vec3(), m.Positions[i+1].Vec3(), m.Positions[i+2].Vec3()
		uv0, uv1, uv2 := m.TexCoords[i], m.TexCoords[i+1], m.TexCoords[i+2]

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		d1 := uv1.Sub(uv0)
		d2 := uv2.Sub(uv0)

		denom := d1.X()*d2.Y() - d2.X()*d1.Y()
		if denom == 0 {
			continue
		}
		r := 1 / denom

		t := e1.Mul(d2.Y() * r).Sub(e2.Mul(d1.Y() * r))
		b := e2.Mul(d1.X() * r).Sub(e1.Mul(d2.X() * r))
		for j := i; j < i+3; j++ {
			m.Tangents[j] = m.Tangents[j].Add(t)
			m.Bitangents[j] = m.Bitangents[j].Add(b)
		}
	}

	// Gram-Schmidt against the normal.
	for i := range m.Tangents {
		nrm := m.Normals[i]
		t := m.Tangents[i].Sub(nrm.Mul(nrm.Dot(m.Tangents[i])))
		if t.LenSqr() < 1e-8 {
			if abs32(nrm.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(nrm.Mul(nrm.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(nrm.Mul(nrm.Y()))
			}
		}
		t = t.Normalize()
		m.Tangents[i] = t

		b := m.Bitangents[i]
		if b.LenSqr() < 1e-8 {
			b = nrm.Cross(t)
		}
		m.Bitangents[i] = b.Normalize()
	}
}

// Flatten returns one tightly packed float slice per attribute, in attribute
// location order.
func (m *Mesh) Flatten() [attribCount][]float32 {
	var out [attribCount][]float32
	for _, p := range m.Positions {
		out[PositionAttrib] = append(out[PositionAttrib], p[:]...)
	}
	for _, v := range m.Normals {
		out[NormalAttrib] = append(out[NormalAttrib], v[:]...)
	}
	for _, v := range m.TexCoords {
		out[TexCoordAttrib] = append(out[TexCoordAttrib], v[:]...)
	}
	for _, v := range m.Tangents {
		out[TangentAttrib] = append(out[TangentAttrib], v[:]...)
	}
	for _, v := range m.Bitangents {
		out[BitangentAttrib] = append(out[BitangentAttrib], v[:]...)
	}
	return out
}

// ModelMatrix rotates the wall about the vertical axis through its centre.
func ModelMatrix(center mgl32.Vec3, angle float32) mgl32.Mat4 {
	if angle == 0 {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.HomogRotate3DY(angle)).
		Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
}

// SwayAngle is the model rotation at time t for a sway amplitude in radians.
func SwayAngle(t, amplitude float32) float32 {
	return float32(math.Sin(float64(t)*0.5)) * amplitude
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
