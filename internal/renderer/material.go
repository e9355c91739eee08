package renderer

// MaterialParams are the scalar inputs of the lighting model.
type MaterialParams struct {
	Shininess        float32
	Roughness        float32
	Albedo           float32
	Tiling           float32
	HeightScale      float32
	SpecularStrength float32
	Ambient          float32
}

// DefaultMaterialParams matches the tuned brick wall.
var DefaultMaterialParams = MaterialParams{
	Shininess:        20,
	Roughness:        0.8,
	Albedo:           0.95,
	Tiling:           1,
	HeightScale:      0.04,
	SpecularStrength: 0.4,
	Ambient:          0.08,
}

// Texture units the pipeline binds each map to.
const (
	DiffuseUnit uint32 = iota
	NormalUnit
	SpecularUnit
	DisplacementUnit
)

// Material bundles the GL textures of a surface with its scalar parameters. A
// zero texture ID means the map is not bound.
type Material struct {
	Name           string
	DiffuseID      uint32
	NormalID       uint32
	SpecularID     uint32
	DisplacementID uint32
	Params         MaterialParams
}

func (m *Material) textureUnits() [4]uint32 {
	return [4]uint32{
		DiffuseUnit:      m.DiffuseID,
		NormalUnit:       m.NormalID,
		SpecularUnit:     m.SpecularID,
		DisplacementUnit: m.DisplacementID,
	}
}
