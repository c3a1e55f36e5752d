package poster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"github.com/randomtoy/auradream/internal/domain"
)

// GridSize is the number of lattice cells per side of the geometric layer.
const GridSize = 14

const seedStream = 0x9e3779b97f4a7c15

var palette = []color.RGBA{
	{R: 59, G: 92, B: 161, A: 255},
	{R: 232, G: 84, B: 130, A: 255},
	{R: 128, G: 186, B: 230, A: 255},
	{R: 250, G: 173, B: 82, A: 255},
	{R: 214, G: 184, B: 224, A: 255},
	{R: 247, G: 237, B: 163, A: 255},
}

// Cell is one rectangle of the geometric layer in unit canvas coordinates.
type Cell struct {
	X, Y, W, H float64
	Opacity    float64
	Color      color.RGBA
}

// Grid is the planned geometric layer.
type Grid struct {
	Cells   []Cell
	Density float64
	Scale   float64
}

// Density is the fraction of lattice cells that receive a rectangle. It
// increases with Transformation and Calm.
func Density(v domain.EmotionVector) float64 {
	return 0.15 + 0.55*v.Transformation() + 0.2*v.Calm()
}

// Layout plans the geometric layer. Every lattice cell draws its jitter
// from the seeded stream whether or not it is active, so for a fixed seed
// raising Density only ever adds rectangles.
func Layout(v domain.EmotionVector, seed uint64) Grid {
	rng := rand.New(rand.NewPCG(seed, seedStream))

	n := GridSize * GridSize
	density := Density(v)
	scale := 0.7 + 0.4*v.Transformation()
	cell := 1.0 / GridSize
	intensity := 0.3 + 0.25*(v.Fear()+v.Desire())

	// Stratified thresholds: exactly one cell per 1/n slice of [0, 1).
	order := rng.Perm(n)

	g := Grid{Density: density, Scale: scale}
	for k := 0; k < n; k++ {
		threshold := (float64(order[k]) + rng.Float64()) / float64(n)
		jx := (rng.Float64() - 0.5) * 0.3 * cell
		jy := (rng.Float64() - 0.5) * 0.3 * cell
		w := cell * (0.7 + 0.6*rng.Float64()) * scale
		h := cell * (0.7 + 0.6*rng.Float64()) * scale
		opacity := domain.Clamp01(intensity * (0.75 + 0.5*rng.Float64()))
		c := palette[rng.IntN(len(palette))]

		if threshold >= density {
			continue
		}
		cx := (float64(k%GridSize)+0.5)*cell + jx
		cy := (float64(k/GridSize)+0.5)*cell + jy
		g.Cells = append(g.Cells, Cell{
			X: cx - w/2, Y: cy - h/2, W: w, H: h,
			Opacity: opacity,
			Color:   c,
		})
	}
	return g
}

// Coverage is the summed rectangle area as a fraction of the canvas,
// counting overlaps twice.
func (g Grid) Coverage() float64 {
	var a float64
	for _, c := range g.Cells {
		a += c.W * c.H
	}
	return a
}

// Draw composites the rectangles over dst with opacity scaled by weight.
func (g Grid) Draw(dst draw.Image, weight float64) {
	b := dst.Bounds()
	fw, fh := float64(b.Dx()), float64(b.Dy())
	weight = domain.Clamp01(weight)

	for _, c := range g.Cells {
		r := image.Rect(
			b.Min.X+int(math.Round(c.X*fw)),
			b.Min.Y+int(math.Round(c.Y*fh)),
			b.Min.X+int(math.Round((c.X+c.W)*fw)),
			b.Min.Y+int(math.Round((c.Y+c.H)*fh)),
		).Intersect(b)
		if r.Empty() {
			continue
		}
		a := uint8(c.Opacity*weight*255 + 0.5)
		if a == 0 {
			continue
		}
		draw.DrawMask(dst, r, image.NewUniform(c.Color), image.Point{},
			image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
	}
}
