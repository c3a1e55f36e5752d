package domain

import (
	"fmt"
	"strings"
)

// StyleMode selects how strongly each poster layer shows through.
type StyleMode string

const (
	StyleHybrid         StyleMode = "hybrid"
	StyleGeometricFocus StyleMode = "geometric_focus"
	StyleAuraFocus      StyleMode = "aura_focus"
)

// StyleModes lists the supported modes.
func StyleModes() []StyleMode {
	return []StyleMode{StyleHybrid, StyleGeometricFocus, StyleAuraFocus}
}

// ParseStyleMode accepts canonical ids as well as display labels such as
// "Geometric Focus". An empty string selects StyleHybrid.
func ParseStyleMode(s string) (StyleMode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "", "hybrid":
		return StyleHybrid, nil
	case "geometric_focus", "geometric":
		return StyleGeometricFocus, nil
	case "aura_focus", "aura":
		return StyleAuraFocus, nil
	}
	return "", fmt.Errorf("%w: unknown style mode %q", ErrInvalidConfiguration, s)
}

// Balance places the mode on a continuous scale from -1 (aura only) to
// +1 (geometry only).
func (m StyleMode) Balance() (float64, error) {
	switch m {
	case StyleAuraFocus:
		return -1, nil
	case StyleHybrid:
		return 0, nil
	case StyleGeometricFocus:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: unknown style mode %q", ErrInvalidConfiguration, string(m))
}

// Label is the human readable mode name.
func (m StyleMode) Label() string {
	switch m {
	case StyleGeometricFocus:
		return "Geometric Focus"
	case StyleAuraFocus:
		return "Aura Focus"
	case StyleHybrid:
		return "Hybrid"
	}
	return string(m)
}

// BlendWeights returns the compositing weights of the aura and geometric
// poster layers for mode.
func BlendWeights(mode StyleMode) (aura, geo float64, err error) {
	b, err := mode.Balance()
	if err != nil {
		return 0, 0, err
	}
	aura, geo = WeightsAt(b)
	return aura, geo, nil
}

// WeightsAt maps a balance in [-1, 1] to layer weights. Aura weight falls
// from 0.95 to 0.55 and geometric weight rises from 0.15 to 0.85.
func WeightsAt(balance float64) (aura, geo float64) {
	balance = max(-1, min(1, balance))
	return 0.75 - 0.2*balance, 0.5 + 0.35*balance
}
