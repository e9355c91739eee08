// Package procedural generates stand-in brick textures when the image files a
// demo asks for are not on disk.
package procedural

import (
	"fmt"
	"image"
	"image/color"
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Layout describes the brick bond. Size is the square texture edge in pixels.
type Layout struct {
	Size         int
	Rows         int
	BricksPerRow int
	Mortar       int // mortar joint width in pixels
	Bevel        int // pixels over which a brick edge rises to full height
}

func DefaultLayout() Layout {
	return Layout{Size: 512, Rows: 8, BricksPerRow: 4, Mortar: 6, Bevel: 5}
}

// Generator produces matching diffuse, height, normal and specular maps for one
// brick wall. Output depends only on the seed and layout.
type Generator struct {
	layout Layout
	seed   int64
	noise  *perlin.Perlin
	height []float64
}

func New(seed int64, layout Layout) *Generator {
	if layout.Size <= 0 {
		layout = DefaultLayout()
	}
	g := &Generator{
		layout: layout,
		seed:   seed,
		noise:  perlin.NewPerlin(2, 2, 3, seed),
	}
	g.height = g.buildHeight()
	return g
}

// ForName returns the texture a loader manifest entry of that name expects.
func (g *Generator) ForName(name string) (*image.RGBA, error) {
	switch name {
	case "diffuse":
		return g.Diffuse(), nil
	case "normal":
		return g.Normal(4), nil
	case "specular":
		return g.Specular(), nil
	case "displacement", "height":
		return g.Height(), nil
	}
	return nil, fmt.Errorf("no procedural texture for %q", name)
}

// brickAt locates pixel (x, y) in the bond. edge is the distance in pixels to
// the nearest joint.
func (g *Generator) brickAt(x, y int) (row, col int, edge float64) {
	l := g.layout
	rowH := l.Size / l.Rows
	brickW := l.Size / l.BricksPerRow

	row = y / rowH
	offset := 0
	if row%2 == 1 {
		offset = brickW / 2
	}
	sx := (x + offset) % l.Size
	col = sx / brickW

	lx := sx % brickW
	ly := y % rowH
	edge = float64(min(lx, brickW-1-lx, ly, rowH-1-ly))
	return row, col, edge
}

func (g *Generator) sample(x, y int, scale float64) float64 {
	n := g.noise.Noise2D(float64(x)/scale, float64(y)/scale)
	return clamp01(n*0.5 + 0.5)
}

func (g *Generator) buildHeight() []float64 {
	l := g.layout
	h := make([]float64, l.Size*l.Size)
	half := float64(l.Mortar) / 2
	for y := 0; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			_, _, edge := g.brickAt(x, y)
			grain := g.sample(x, y, 24)
			var v float64
			if edge < half {
				v = 0.05 * grain
			} else {
				rise := math.Min(1, (edge-half+1)/float64(max(l.Bevel, 1)))
				v = rise * (0.85 + 0.15*grain)
			}
			h[y*l.Size+x] = v
		}
	}
	return h
}

// heightAt wraps around the edges so the maps tile.
func (g *Generator) heightAt(x, y int) float64 {
	s := g.layout.Size
	x = ((x % s) + s) % s
	y = ((y % s) + s) % s
	return g.height[y*s+x]
}

// Height is the displacement map: white brick faces, black mortar.
func (g *Generator) Height() *image.RGBA {
	s := g.layout.Size
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			v := uint8(math.Round(g.heightAt(x, y) * 255))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func (g *Generator) Diffuse() *image.RGBA {
	s := g.layout.Size
	half := float64(g.layout.Mortar) / 2
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			row, col, edge := g.brickAt(x, y)
			grain := g.sample(x, y, 8)
			if edge < half {
				m := 0.55 + 0.15*grain
				img.SetRGBA(x, y, rgb(m, m*0.97, m*0.92))
				continue
			}
			tint := g.brickTint(row, col)
			r := (0.55 + 0.2*tint) * (0.8 + 0.2*grain)
			gr := (0.22 + 0.08*tint) * (0.8 + 0.2*grain)
			b := (0.16 + 0.05*tint) * (0.8 + 0.2*grain)
			img.SetRGBA(x, y, rgb(r, gr, b))
		}
	}
	return img
}

// Specular is a greyscale gloss map: dull mortar, slightly glossy faces.
func (g *Generator) Specular() *image.RGBA {
	s := g.layout.Size
	half := float64(g.layout.Mortar) / 2
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			_, _, edge := g.brickAt(x, y)
			v := 0.05
			if edge >= half {
				v = 0.35 + 0.3*g.sample(x, y, 6)
			}
			img.SetRGBA(x, y, rgb(v, v, v))
		}
	}
	return img
}

// Normal derives a tangent-space normal map from the height field.
func (g *Generator) Normal(strength float64) *image.RGBA {
	return NormalFromHeight(g.heightAt, g.layout.Size, strength)
}

// NormalFromHeight encodes normals from central differences of h. Texture v
// grows upward, so the y gradient reads the row above minus the row below.
func NormalFromHeight(h func(x, y int) float64, size int, strength float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (h(x+1, y) - h(x-1, y)) * 0.5 * strength
			dy := (h(x, y-1) - h(x, y+1)) * 0.5 * strength
			nx, ny, nz := -dx, -dy, 1.0
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			img.SetRGBA(x, y, rgb(nx/l*0.5+0.5, ny/l*0.5+0.5, nz/l*0.5+0.5))
		}
	}
	return img
}

func (g *Generator) brickTint(row, col int) float64 {
	h := uint64(g.seed)*0x9E3779B97F4A7C15 ^ uint64(row)*0xBF58476D1CE4E5B9 ^ uint64(col)*0x94D049BB133111EB
	h ^= h >> 31
	h *= 0xD6E8FEB86659FD93
	h ^= h >> 29
	return float64(h%1000) / 999
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(clamp01(r) * 255)),
		G: uint8(math.Round(clamp01(g) * 255)),
		B: uint8(math.Round(clamp01(b) * 255)),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
