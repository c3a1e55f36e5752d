package app_test

import (
	"testing"

	"github.com/randomtoy/auradream/internal/app"
)

func TestVariationSeeds(t *testing.T) {
	seeds := app.VariationSeeds(0, 4)
	if len(seeds) != 4 || seeds[0] != 0 {
		t.Fatalf("unexpected seeds %v", seeds)
	}
	seen := map[uint64]bool{}
	for _, s := range seeds {
		if seen[s] {
			t.Errorf("duplicate seed %d in %v", s, seeds)
		}
		seen[s] = true
	}

	again := app.VariationSeeds(0, 4)
	for i := range seeds {
		if seeds[i] != again[i] {
			t.Fatalf("seed sequence is not reproducible: %v vs %v", seeds, again)
		}
	}

	if got := app.VariationSeeds(5, 0); got != nil {
		t.Errorf("expected nil for n=0, got %v", got)
	}
}
