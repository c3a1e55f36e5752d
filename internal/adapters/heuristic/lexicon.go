package heuristic

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/auradream/internal/domain"
)

//go:embed data/*.json
var lexiconFS embed.FS

const lexiconFile = "data/lexicon.json"

// Lexicon is the keyword table behind the rule-based analyzer.
type Lexicon struct {
	Base        float64             `json:"base"`
	Boost       float64             `json:"boost"`
	Keywords    map[string][]string `json:"keywords"`
	Adjustments []Adjustment        `json:"adjustments"`
	Reading     Reading             `json:"reading"`
}

// Adjustment adds fixed boosts when any trigger word appears.
type Adjustment struct {
	Triggers []string           `json:"triggers"`
	Boosts   map[string]float64 `json:"boosts"`
}

// Reading holds the canned texts returned with every heuristic analysis.
type Reading struct {
	Summary  string `json:"summary"`
	Shadow   string `json:"shadow"`
	Energy   string `json:"energy"`
	Guidance string `json:"guidance"`
}

var (
	embeddedOnce sync.Once
	embedded     Lexicon
	embeddedErr  error
)

// EmbeddedLexicon parses the lexicon compiled into the binary. The result
// is cached after the first call.
func EmbeddedLexicon() (Lexicon, error) {
	embeddedOnce.Do(func() {
		raw, err := lexiconFS.ReadFile(lexiconFile)
		if err != nil {
			embeddedErr = fmt.Errorf("read embedded lexicon: %w", err)
			return
		}
		embedded, embeddedErr = ParseLexicon(raw)
	})
	return embedded, embeddedErr
}

// ParseLexicon decodes and validates a lexicon document.
func ParseLexicon(raw []byte) (Lexicon, error) {
	var lx Lexicon
	if err := json.Unmarshal(raw, &lx); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	for name := range lx.Keywords {
		if _, ok := domain.ParseDimension(name); !ok {
			return Lexicon{}, fmt.Errorf("lexicon keywords: unknown dimension %q", name)
		}
	}
	for i, adj := range lx.Adjustments {
		for name := range adj.Boosts {
			if _, ok := domain.ParseDimension(name); !ok {
				return Lexicon{}, fmt.Errorf("lexicon adjustment %d: unknown dimension %q", i, name)
			}
		}
	}
	return lx, nil
}
