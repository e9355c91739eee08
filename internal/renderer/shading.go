package renderer

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CPU versions of the fragment math in the tangent-stage shader. The demos use
// them for -probe output and the tests pin the lighting model down with them.

const displayGamma = 2.2

// OrenNayar returns the rough-diffuse reflectance for unit vectors pointing from
// the surface to the light and to the viewer.
func OrenNayar(lightDir, viewDir, normal mgl32.Vec3, roughness, albedo float32) float32 {
	nDotL := normal.Dot(lightDir)
	if nDotL <= 0 {
		return 0
	}
	nDotV := normal.Dot(viewDir)
	lDotV := lightDir.Dot(viewDir)

	s := lDotV - nDotL*nDotV
	t := float32(1)
	if s >= 0 {
		t = max(nDotL, nDotV)
	}

	sigma2 := roughness * roughness
	a := 1 + sigma2*(albedo/(sigma2+0.13)+0.5/(sigma2+0.33))
	b := 0.45 * sigma2 / (sigma2 + 0.09)

	return albedo * nDotL * (a + b*s/t) / math.Pi
}

// PhongSpecular is the classic reflected-light highlight.
func PhongSpecular(lightDir, viewDir, normal mgl32.Vec3, shininess float32) float32 {
	r := normal.Mul(2 * normal.Dot(lightDir)).Sub(lightDir)
	rDotV := viewDir.Dot(r)
	if rDotV <= 0 {
		return 0
	}
	return float32(math.Pow(float64(rDotV), float64(shininess)))
}

// Attenuation fades a light of the given radius to zero once its inverse-square
// intensity drops below falloff.
func Attenuation(radius, falloff, distance float32) float32 {
	denom := distance/radius + 1
	a := 1 / (denom * denom)
	t := (a - falloff) / (1 - falloff)
	return max(t, 0)
}

// ParallaxOffset shifts uv towards the viewer by the sampled height, with the
// offset limited to the tangent-plane projection of the view vector.
func ParallaxOffset(uv mgl32.Vec2, viewTangent mgl32.Vec3, height, scale float32) mgl32.Vec2 {
	h := height*scale - scale*0.5
	return mgl32.Vec2{uv.X() + viewTangent.X()*h, uv.Y() + viewTangent.Y()*h}
}

// PerturbNormal decodes a normal-map texel (0..1 per channel) and moves it from
// tangent space into the frame spanned by t, b, n.
func PerturbNormal(texel, t, b, n mgl32.Vec3) mgl32.Vec3 {
	m := texel.Mul(2).Sub(mgl32.Vec3{1, 1, 1})
	return t.Mul(m.X()).Add(b.Mul(m.Y())).Add(n.Mul(m.Z())).Normalize()
}

// ToneMap converts linear color to display gamma.
func ToneMap(c mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range c {
		out[i] = float32(math.Pow(float64(max(c[i], 0)), 1/displayGamma))
	}
	return out
}

// ToLinear undoes display gamma on a sampled color.
func ToLinear(c mgl32.Vec3) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range c {
		out[i] = float32(math.Pow(float64(max(c[i], 0)), displayGamma))
	}
	return out
}

// Fragment is everything Shade needs about one surface point.
type Fragment struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
	TexCoord  mgl32.Vec2
}

// Textures holds CPU copies of the material maps for Shade. Nil maps fall back
// to neutral values: white diffuse, flat normal, full specular, mid height.
type Textures struct {
	Diffuse      *image.RGBA
	Normal       *image.RGBA
	Specular     *image.RGBA
	Displacement *image.RGBA
}

// Shade evaluates the full lighting model for one fragment and returns the
// tone-mapped color.
func Shade(f Fragment, tex Textures, params MaterialParams, light *Light, eye mgl32.Vec3) mgl32.Vec3 {
	n := f.Normal.Normalize()
	t := f.Tangent.Normalize()
	b := f.Bitangent.Normalize()

	v := eye.Sub(f.Position).Normalize()
	viewTangent := mgl32.Vec3{v.Dot(t), v.Dot(b), v.Dot(n)}

	uv := f.TexCoord.Mul(params.Tiling)
	if tex.Displacement != nil {
		h := Sample(tex.Displacement, uv).X()
		uv = ParallaxOffset(uv, viewTangent, h, params.HeightScale)
	}

	if tex.Normal != nil {
		n = PerturbNormal(Sample(tex.Normal, uv), t, b, n)
	}

	diffuse := mgl32.Vec3{1, 1, 1}
	if tex.Diffuse != nil {
		diffuse = ToLinear(Sample(tex.Diffuse, uv))
	}
	specMask := float32(1)
	if tex.Specular != nil {
		specMask = Sample(tex.Specular, uv).X()
	}

	toLight := light.Position.Sub(f.Position)
	l := toLight.Normalize()
	att := Attenuation(light.Radius, light.Falloff, toLight.Len())
	radiance := light.Color.Mul(light.Intensity * att)

	kd := OrenNayar(l, v, n, params.Roughness, params.Albedo)
	ks := PhongSpecular(l, v, n, params.Shininess) * specMask * params.SpecularStrength

	ambient := diffuse.Mul(params.Ambient)
	lit := mgl32.Vec3{
		diffuse.X()*kd*radiance.X() + ks*radiance.X(),
		diffuse.Y()*kd*radiance.Y() + ks*radiance.Y(),
		diffuse.Z()*kd*radiance.Z() + ks*radiance.Z(),
	}
	return ToneMap(ambient.Add(lit))
}

// Sample reads img at uv with repeat wrapping and nearest filtering. v=1 is the
// top image row, matching the flipped GL upload.
func Sample(img *image.RGBA, uv mgl32.Vec2) mgl32.Vec3 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	u := uv.X() - float32(math.Floor(float64(uv.X())))
	vv := uv.Y() - float32(math.Floor(float64(uv.Y())))

	x := min(int(u*float32(w)), w-1)
	y := min(int((1-vv)*float32(h)), h-1)
	c := img.RGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
