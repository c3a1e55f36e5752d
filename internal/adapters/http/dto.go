package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/randomtoy/auradream/internal/domain"
)

// DreamRequest is the JSON body accepted by POST /v1/dreams.
type DreamRequest struct {
	Text       string `json:"text"`
	Style      string `json:"style"`
	Variations int    `json:"variations"`
	Seed       *Seed  `json:"seed,omitempty"`
}

// Seed is a poster seed in a request body. It accepts a JSON number or the
// decimal string form used in responses.
type Seed uint64

func (s *Seed) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be an unsigned integer: %w", err)
	}
	*s = Seed(v)
	return nil
}

// DreamResponse is the JSON shape of one analyzed dream.
type DreamResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Summary   string               `json:"symbolic_summary"`
	Emotions  domain.EmotionVector `json:"emotions"`
	Tarot     TarotResp            `json:"tarot"`
	Style     domain.StyleMode     `json:"style"`
	Charts    ChartsResp           `json:"charts"`
	Posters   []PosterResp         `json:"posters"`
	Meta      MetaResp             `json:"meta"`
}

type TarotResp struct {
	Shadow   string `json:"shadow"`
	Energy   string `json:"energy"`
	Guidance string `json:"guidance"`
}

type ChartsResp struct {
	Radar    string `json:"radar"`
	Spectrum string `json:"spectrum"`
}

type PosterResp struct {
	// Seeds span the full uint64 range, beyond what JSON numbers carry safely.
	Seed uint64 `json:"seed,string"`
	URL  string `json:"url"`
}

type MetaResp struct {
	Model     string        `json:"model"`
	Source    domain.Source `json:"source"`
	Journaled bool          `json:"journaled"`
	RequestID string        `json:"request_id,omitempty"`
	LatencyMS int64         `json:"latency_ms,omitempty"`
}

type DreamListResponse struct {
	Dreams []DreamResponse `json:"dreams"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
