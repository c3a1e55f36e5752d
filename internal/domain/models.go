package domain

import "time"

// SeedSource supplies fresh seeds for poster variations.
type SeedSource interface {
	Seed() uint64
}

// Source identifies which analyzer produced an Analysis.
type Source string

const (
	SourceLLM       Source = "llm"
	SourceHeuristic Source = "heuristic"
)

// TarotReading is the symbolic narrative that accompanies an analysis.
// It is passed through to the caller unmodified.
type TarotReading struct {
	Shadow   string `json:"shadow"`
	Energy   string `json:"energy"`
	Guidance string `json:"guidance"`
}

// Analysis is the result of analyzing one dream description.
type Analysis struct {
	Summary  string        `json:"symbolic_summary"`
	Emotions EmotionVector `json:"emotions"`
	Tarot    TarotReading  `json:"tarot"`
	Model    string        `json:"model"`
	Source   Source        `json:"source"`
}

// Entry is an analysis together with the render parameters chosen for it.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Text      string
	Analysis  Analysis
	Style     StyleMode
	Seeds     []uint64
}
