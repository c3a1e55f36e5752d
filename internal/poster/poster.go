package poster

import (
	"image"
	"image/color"

	"github.com/randomtoy/auradream/internal/domain"
)

// Poster dimensions in pixels.
const (
	Width  = 800
	Height = 800
)

var background = color.RGBA{R: 8, G: 6, B: 18, A: 255}

// Render draws a Width x Height poster. Identical arguments always produce
// identical pixels. An unknown mode fails with domain.ErrInvalidConfiguration.
func Render(v domain.EmotionVector, mode domain.StyleMode, seed uint64) (*image.RGBA, error) {
	auraWeight, geoWeight, err := domain.BlendWeights(mode)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	composeAura(dst, Aura(v, Width, Height), auraWeight)
	Layout(v, seed).Draw(dst, geoWeight)
	return dst, nil
}

// composeAura fills dst with the background faded toward aura by weight.
func composeAura(dst, aura *image.RGBA, weight float64) {
	weight = domain.Clamp01(weight)
	bg := [4]float64{float64(background.R), float64(background.G), float64(background.B), 255}
	for i := 0; i+3 < len(dst.Pix) && i+3 < len(aura.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := bg[c]*(1-weight) + float64(aura.Pix[i+c])*weight
			dst.Pix[i+c] = uint8(v + 0.5)
		}
		dst.Pix[i+3] = 255
	}
}
