package poster

import (
	"image/color"
	"testing"

	"github.com/randomtoy/auradream/internal/domain"
)

func TestLevel_Saturates(t *testing.T) {
	if got := level(-10); got != 0 {
		t.Errorf("expected 0 for very low field, got %v", got)
	}
	if got := level(10); got != 1 {
		t.Errorf("expected 1 for very high field, got %v", got)
	}
	prev := level(-1)
	for s := -0.99; s < 2; s += 0.01 {
		cur := level(s)
		if cur < prev {
			t.Fatalf("level decreased at %v: %v -> %v", s, prev, cur)
		}
		prev = cur
	}
}

func TestGradient_Endpoints(t *testing.T) {
	stops := []color.RGBA{{R: 0, A: 255}, {R: 100, A: 255}, {R: 200, A: 255}}
	if got := gradient(stops, 0); got.R != 0 {
		t.Errorf("expected first stop, got %v", got)
	}
	if got := gradient(stops, 1); got.R != 200 {
		t.Errorf("expected last stop, got %v", got)
	}
	if got := gradient(stops, 0.25); got.R != 50 {
		t.Errorf("expected midpoint 50, got %v", got)
	}
}

func TestChoosePalette(t *testing.T) {
	cases := []struct {
		name string
		v    domain.EmotionVector
		want string
	}{
		{"fear and mystery", domain.NewEmotionVector(0.9, 0.1, 0.1, 0.8, 0.1, 0.2), "twilight"},
		{"desire and connection", domain.NewEmotionVector(0.1, 0.9, 0.2, 0.1, 0.8, 0.2), "plasma"},
		{"calm", domain.NewEmotionVector(0.1, 0.1, 0.9, 0.2, 0.2, 0.2), "viridis"},
		{"mixed", domain.NewEmotionVector(0.3, 0.3, 0.3, 0.3, 0.3, 0.3), "magma"},
		{"empty", domain.NewEmotionVector(0, 0, 0, 0, 0, 0), "magma"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChoosePalette(tc.v).Name; got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPalette_WarmthFollowsDesire(t *testing.T) {
	// Both vectors share the twilight palette; only the fear/desire balance differs.
	fearful := newAuraParams(domain.NewEmotionVector(0.9, 0.1, 0.1, 0.6, 0.1, 0.5))
	wanting := newAuraParams(domain.NewEmotionVector(0.6, 0.5, 0.1, 0.7, 0.1, 0.5))
	if fearful.palette.Name != wanting.palette.Name {
		t.Fatalf("expected one palette, got %s and %s", fearful.palette.Name, wanting.palette.Name)
	}
	if fearful.warmth >= wanting.warmth {
		t.Errorf("desire should warm the blend: %v >= %v", fearful.warmth, wanting.warmth)
	}
}
