package poster

import (
	"image"
	"image/color"
	"math"

	"github.com/tanema/gween/ease"

	"github.com/randomtoy/auradream/internal/domain"
)

// extent is the half-width of the field's coordinate space.
const extent = 1.6

// Palette is a named pair of gradients. The aura blends the cool and warm
// gradients by the Desire/Fear balance.
type Palette struct {
	Name string
	cool []color.RGBA
	warm []color.RGBA
}

var (
	twilight = Palette{
		Name: "twilight",
		cool: []color.RGBA{
			{R: 12, G: 10, B: 36, A: 255},
			{R: 58, G: 48, B: 122, A: 255},
			{R: 132, G: 118, B: 196, A: 255},
			{R: 226, G: 218, B: 240, A: 255},
		},
		warm: []color.RGBA{
			{R: 30, G: 10, B: 34, A: 255},
			{R: 104, G: 38, B: 96, A: 255},
			{R: 186, G: 104, B: 140, A: 255},
			{R: 240, G: 210, B: 214, A: 255},
		},
	}
	plasma = Palette{
		Name: "plasma",
		cool: []color.RGBA{
			{R: 14, G: 8, B: 92, A: 255},
			{R: 92, G: 2, B: 166, A: 255},
			{R: 176, G: 42, B: 144, A: 255},
			{R: 238, G: 120, B: 140, A: 255},
		},
		warm: []color.RGBA{
			{R: 40, G: 6, B: 60, A: 255},
			{R: 190, G: 50, B: 110, A: 255},
			{R: 246, G: 136, B: 56, A: 255},
			{R: 242, G: 240, B: 72, A: 255},
		},
	}
	viridis = Palette{
		Name: "viridis",
		cool: []color.RGBA{
			{R: 18, G: 12, B: 62, A: 255},
			{R: 44, G: 88, B: 142, A: 255},
			{R: 34, G: 160, B: 156, A: 255},
			{R: 150, G: 220, B: 200, A: 255},
		},
		warm: []color.RGBA{
			{R: 30, G: 30, B: 60, A: 255},
			{R: 36, G: 130, B: 120, A: 255},
			{R: 120, G: 200, B: 90, A: 255},
			{R: 250, G: 230, B: 60, A: 255},
		},
	}
	magma = Palette{
		Name: "magma",
		cool: []color.RGBA{
			{R: 10, G: 14, B: 42, A: 255},
			{R: 38, G: 62, B: 138, A: 255},
			{R: 96, G: 170, B: 220, A: 255},
			{R: 214, G: 240, B: 255, A: 255},
		},
		warm: []color.RGBA{
			{R: 26, G: 8, B: 28, A: 255},
			{R: 150, G: 40, B: 96, A: 255},
			{R: 236, G: 110, B: 104, A: 255},
			{R: 252, G: 226, B: 140, A: 255},
		},
	}
)

// ChoosePalette picks the mood palette from the normalized vector:
// fear and mystery turn it dark, desire and connection warm, a calm
// majority cool. Mixed moods get magma.
func ChoosePalette(v domain.EmotionVector) Palette {
	s := v.Sum() + 1e-6
	fear, desire, calm := v.Fear()/s, v.Desire()/s, v.Calm()/s
	mystery, connection := v.Mystery()/s, v.Connection()/s
	switch {
	case fear+mystery > 0.5:
		return twilight
	case desire+connection > 0.5:
		return plasma
	case calm > 0.4:
		return viridis
	default:
		return magma
	}
}

type auraParams struct {
	palette        Palette
	decay          float64
	desire         float64
	connection     float64
	transformation float64
	glow           float64
	warmth         float64
	brightness     float64
}

func newAuraParams(v domain.EmotionVector) auraParams {
	return auraParams{
		palette: ChoosePalette(v),
		// Mystery tightens the central glow, calm spreads it.
		decay:          1.2 + 1.6*v.Mystery() - 0.7*v.Calm(),
		desire:         v.Desire(),
		connection:     v.Connection(),
		transformation: v.Transformation(),
		glow:           0.2 * max(0, 1-v.Sum()/0.6),
		warmth:         0.5 + 0.5*(v.Desire()-v.Fear()),
		brightness:     0.45 + 0.55*v.Transformation(),
	}
}

// field is the raw scalar at (x, y). It is smooth everywhere.
func (p auraParams) field(x, y float64) float64 {
	r2 := x*x + y*y
	r := math.Sqrt(r2)

	s := 0.9 * math.Exp(-r2*p.decay)
	s += p.glow * math.Exp(-r2*1.2)

	dx, dy := x-0.45, y+0.1
	s += 0.6 * p.desire * math.Exp(-(dx*dx+dy*dy)*(4+2*p.desire))
	dx, dy = x+0.35, y-0.2
	s += 0.6 * p.connection * math.Exp(-(dx*dx+dy*dy)*(4+2*p.connection))

	s += 0.35 * p.connection * math.Sin(8*r+3*x) * math.Exp(-2*r2)
	s += 0.35 * p.transformation * math.Cos(10*r-3*p.transformation) * math.Exp(-1.5*r2)
	return s
}

// level maps a field value onto [0, 1], saturating at both ends.
func level(s float64) float64 {
	t := domain.Clamp01((s + 0.35) / 1.9)
	if t == 0 || t == 1 {
		return t
	}
	return float64(ease.InOutSine(float32(t), 0, 1, 1))
}

func (p auraParams) color(s float64) color.RGBA {
	t := level(s)
	cool := gradient(p.palette.cool, t)
	warm := gradient(p.palette.warm, t)
	mix := func(a, b uint8) uint8 {
		v := (float64(a)*(1-p.warmth) + float64(b)*p.warmth) * p.brightness
		return uint8(math.Min(255, math.Max(0, v)) + 0.5)
	}
	return color.RGBA{R: mix(cool.R, warm.R), G: mix(cool.G, warm.G), B: mix(cool.B, warm.B), A: 255}
}

// Aura renders only the aura layer at the given size.
func Aura(v domain.EmotionVector, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p := newAuraParams(v)
	for py := 0; py < h; py++ {
		y := extent - 2*extent*(float64(py)+0.5)/float64(h)
		row := img.Pix[py*img.Stride:]
		for px := 0; px < w; px++ {
			x := -extent + 2*extent*(float64(px)+0.5)/float64(w)
			c := p.color(p.field(x, y))
			i := px * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, 255
		}
	}
	return img
}

// gradient interpolates linearly between evenly spaced stops.
func gradient(stops []color.RGBA, t float64) color.RGBA {
	if len(stops) == 1 {
		return stops[0]
	}
	t = domain.Clamp01(t)
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}
