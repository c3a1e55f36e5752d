package heuristic

import (
	"context"
	"strings"

	"github.com/randomtoy/auradream/internal/domain"
)

// ModelName is reported as the model of every heuristic analysis.
const ModelName = "rule-based keyword model"

// Analyzer implements ports.Analyzer with keyword matching. It never calls
// out and never fails on non-empty text.
type Analyzer struct {
	lexicon Lexicon
}

func NewAnalyzer(lx Lexicon) *Analyzer {
	return &Analyzer{lexicon: lx}
}

// Analyze scores each dimension as base + boost per keyword found in the
// lower-cased text (substring match), applies the adjustments and clamps.
func (a *Analyzer) Analyze(_ context.Context, text string) (domain.Analysis, error) {
	lower := strings.ToLower(text)
	lx := a.lexicon

	var scores [6]float64
	for i := range scores {
		scores[i] = lx.Base
	}
	for name, words := range lx.Keywords {
		d, ok := domain.ParseDimension(name)
		if !ok {
			continue
		}
		for _, w := range words {
			if strings.Contains(lower, w) {
				scores[d] += lx.Boost
			}
		}
	}
	for _, adj := range lx.Adjustments {
		if !containsAny(lower, adj.Triggers) {
			continue
		}
		for name, boost := range adj.Boosts {
			if d, ok := domain.ParseDimension(name); ok {
				scores[d] += boost
			}
		}
	}

	return domain.Analysis{
		Summary:  lx.Reading.Summary,
		Emotions: domain.NewEmotionVector(scores[0], scores[1], scores[2], scores[3], scores[4], scores[5]),
		Tarot: domain.TarotReading{
			Shadow:   lx.Reading.Shadow,
			Energy:   lx.Reading.Energy,
			Guidance: lx.Reading.Guidance,
		},
		Model:  ModelName,
		Source: domain.SourceHeuristic,
	}, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
