package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/randomtoy/auradream/internal/chart"
	"github.com/randomtoy/auradream/internal/domain"
	"github.com/randomtoy/auradream/internal/ports"
	"github.com/randomtoy/auradream/internal/poster"
)

const (
	MaxDreamLength    = 4000
	DefaultVariations = 2
	MaxVariations     = 4
	DefaultListLimit  = 20
	MaxListLimit      = 100
)

// InterpretRequest is the application-level input (no HTTP types).
type InterpretRequest struct {
	Text       string
	Style      string
	Variations int
	// Seed pins the first poster variation. Nil draws a fresh one.
	Seed *uint64
}

// InterpretResponse is the application-level output.
type InterpretResponse struct {
	Entry     domain.Entry
	Journaled bool
	LatencyMS int64
}

// Artwork holds every image rendered for one entry.
type Artwork struct {
	Radar    *image.RGBA
	Spectrum *image.RGBA
	Posters  []PosterImage
}

type PosterImage struct {
	Seed  uint64
	Image *image.RGBA
}

// DreamService orchestrates dream analysis, journaling and rendering.
type DreamService struct {
	analyzer ports.Analyzer
	journal  ports.Journal
	seeds    domain.SeedSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewDreamService wires the service. journal may be nil to disable history.
func NewDreamService(an ports.Analyzer, j ports.Journal, seeds domain.SeedSource, logger *slog.Logger) *DreamService {
	return &DreamService{
		analyzer: an,
		journal:  j,
		seeds:    seeds,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DreamService) Interpret(ctx context.Context, req InterpretRequest) (InterpretResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return InterpretResponse{}, domain.ErrEmptyDream
	}
	if utf8.RuneCountInString(text) > MaxDreamLength {
		return InterpretResponse{}, fmt.Errorf("%w: at most %d characters", domain.ErrDreamTooLong, MaxDreamLength)
	}

	style, err := domain.ParseStyleMode(req.Style)
	if err != nil {
		return InterpretResponse{}, err
	}

	start := time.Now()
	analysis, err := s.analyzer.Analyze(ctx, text)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return InterpretResponse{}, fmt.Errorf("analyze: %w", err)
	}

	first := s.seeds.Seed()
	if req.Seed != nil {
		first = *req.Seed
	}

	entry := domain.Entry{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Text:      text,
		Analysis:  analysis,
		Style:     style,
		Seeds:     VariationSeeds(first, clampVariations(req.Variations)),
	}

	journaled := false
	if s.journal != nil {
		if err := s.journal.Save(ctx, entry); err != nil {
			// The analysis is still useful without history.
			s.logger.ErrorContext(ctx, "journal save failed", "id", entry.ID, "error", err)
		} else {
			journaled = true
		}
	}

	return InterpretResponse{Entry: entry, Journaled: journaled, LatencyMS: latency}, nil
}

// Render produces the charts and one poster per seed of e.
func (s *DreamService) Render(e domain.Entry) (Artwork, error) {
	art := Artwork{
		Radar:    chart.Radar(e.Analysis.Emotions),
		Spectrum: chart.Spectrum(e.Analysis.Emotions),
	}
	for _, seed := range e.Seeds {
		img, err := poster.Render(e.Analysis.Emotions, e.Style, seed)
		if err != nil {
			return Artwork{}, fmt.Errorf("render poster %d: %w", seed, err)
		}
		art.Posters = append(art.Posters, PosterImage{Seed: seed, Image: img})
	}
	return art, nil
}

func (s *DreamService) Poster(v domain.EmotionVector, style string, seed uint64) (*image.RGBA, error) {
	mode, err := domain.ParseStyleMode(style)
	if err != nil {
		return nil, err
	}
	return poster.Render(v, mode, seed)
}

func (s *DreamService) Radar(v domain.EmotionVector) *image.RGBA {
	return chart.Radar(v)
}

func (s *DreamService) Spectrum(v domain.EmotionVector) *image.RGBA {
	return chart.Spectrum(v)
}

func (s *DreamService) Dream(ctx context.Context, id string) (domain.Entry, error) {
	if s.journal == nil {
		return domain.Entry{}, domain.ErrJournalDisabled
	}
	e, err := s.journal.Get(ctx, id)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("get dream: %w", err)
	}
	return e, nil
}

func (s *DreamService) Dreams(ctx context.Context, limit int) ([]domain.Entry, error) {
	if s.journal == nil {
		return nil, domain.ErrJournalDisabled
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	entries, err := s.journal.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	return entries, nil
}

func clampVariations(n int) int {
	if n <= 0 {
		return DefaultVariations
	}
	return min(n, MaxVariations)
}
