package app_test

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/domain"
	"github.com/randomtoy/auradream/internal/poster"
)

type mockAnalyzer struct {
	out   domain.Analysis
	err   error
	calls int
	text  string
}

func (m *mockAnalyzer) Analyze(_ context.Context, text string) (domain.Analysis, error) {
	m.calls++
	m.text = text
	return m.out, m.err
}

type mockJournal struct {
	saved   []domain.Entry
	saveErr error
	limit   int
}

func (m *mockJournal) Save(_ context.Context, e domain.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, e)
	return nil
}

func (m *mockJournal) Get(_ context.Context, id string) (domain.Entry, error) {
	for _, e := range m.saved {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entry{}, domain.ErrDreamNotFound
}

func (m *mockJournal) List(_ context.Context, limit int) ([]domain.Entry, error) {
	m.limit = limit
	return m.saved, nil
}

type fixedSeeds struct{ val uint64 }

func (f fixedSeeds) Seed() uint64 { return f.val }

func testAnalysis() domain.Analysis {
	return domain.Analysis{
		Summary:  "A bright crossing.",
		Emotions: domain.NewEmotionVector(0.1, 0.8, 0.6, 0.3, 0.5, 0.9),
		Tarot:    domain.TarotReading{Shadow: "s", Energy: "e", Guidance: "g"},
		Model:    "stub",
		Source:   domain.SourceLLM,
	}
}

func TestInterpret_Success(t *testing.T) {
	an := &mockAnalyzer{out: testAnalysis()}
	j := &mockJournal{}
	svc := app.NewDreamService(an, j, fixedSeeds{val: 9}, slog.Default())

	resp, err := svc.Interpret(context.Background(), app.InterpretRequest{
		Text:  "  I crossed a bridge of light.  ",
		Style: "Aura Focus",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if an.text != "I crossed a bridge of light." {
		t.Errorf("analyzer should receive trimmed text, got %q", an.text)
	}
	e := resp.Entry
	if e.ID == "" {
		t.Error("expected an entry id")
	}
	if e.Style != domain.StyleAuraFocus {
		t.Errorf("unexpected style %s", e.Style)
	}
	if len(e.Seeds) != app.DefaultVariations || e.Seeds[0] != 9 || e.Seeds[0] == e.Seeds[1] {
		t.Errorf("unexpected seeds %v", e.Seeds)
	}
	if !resp.Journaled || len(j.saved) != 1 || j.saved[0].ID != e.ID {
		t.Errorf("entry should be journaled: %+v", j.saved)
	}
}

func TestInterpret_ExplicitSeedAndVariations(t *testing.T) {
	svc := app.NewDreamService(&mockAnalyzer{out: testAnalysis()}, nil, fixedSeeds{val: 1}, slog.Default())

	seed := uint64(42)
	resp, err := svc.Interpret(context.Background(), app.InterpretRequest{
		Text: "dream", Variations: 10, Seed: &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Entry.Seeds) != app.MaxVariations {
		t.Errorf("expected %d variations, got %d", app.MaxVariations, len(resp.Entry.Seeds))
	}
	if resp.Entry.Seeds[0] != 42 {
		t.Errorf("expected first seed 42, got %d", resp.Entry.Seeds[0])
	}
	if resp.Journaled {
		t.Error("no journal configured, entry should not be journaled")
	}
}

func TestInterpret_Validation(t *testing.T) {
	an := &mockAnalyzer{out: testAnalysis()}
	svc := app.NewDreamService(an, nil, fixedSeeds{}, slog.Default())
	ctx := context.Background()

	if _, err := svc.Interpret(ctx, app.InterpretRequest{Text: "   "}); !errors.Is(err, domain.ErrEmptyDream) {
		t.Errorf("expected ErrEmptyDream, got %v", err)
	}
	long := strings.Repeat("a", app.MaxDreamLength+1)
	if _, err := svc.Interpret(ctx, app.InterpretRequest{Text: long}); !errors.Is(err, domain.ErrDreamTooLong) {
		t.Errorf("expected ErrDreamTooLong, got %v", err)
	}
	if _, err := svc.Interpret(ctx, app.InterpretRequest{Text: "x", Style: "sepia"}); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	if an.calls != 0 {
		t.Errorf("analyzer must not run on invalid input, ran %d times", an.calls)
	}
}

func TestInterpret_JournalFailureIsNotFatal(t *testing.T) {
	j := &mockJournal{saveErr: errors.New("disk full")}
	svc := app.NewDreamService(&mockAnalyzer{out: testAnalysis()}, j, fixedSeeds{}, slog.Default())

	resp, err := svc.Interpret(context.Background(), app.InterpretRequest{Text: "dream"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Journaled {
		t.Error("entry should not be reported as journaled")
	}
}

func TestRender_Artwork(t *testing.T) {
	svc := app.NewDreamService(&mockAnalyzer{}, nil, fixedSeeds{}, slog.Default())
	e := domain.Entry{
		Analysis: testAnalysis(),
		Style:    domain.StyleHybrid,
		Seeds:    []uint64{0, 7},
	}

	art, err := svc.Render(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Radar == nil || art.Spectrum == nil {
		t.Fatal("expected both charts")
	}
	if len(art.Posters) != 2 {
		t.Fatalf("expected 2 posters, got %d", len(art.Posters))
	}
	for _, p := range art.Posters {
		if p.Image.Bounds() != image.Rect(0, 0, poster.Width, poster.Height) {
			t.Errorf("seed %d: unexpected bounds %v", p.Seed, p.Image.Bounds())
		}
	}
}

func TestRender_UnknownStyle(t *testing.T) {
	svc := app.NewDreamService(&mockAnalyzer{}, nil, fixedSeeds{}, slog.Default())
	_, err := svc.Render(domain.Entry{Analysis: testAnalysis(), Style: "sepia", Seeds: []uint64{1}})
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestDreams_JournalDisabled(t *testing.T) {
	svc := app.NewDreamService(&mockAnalyzer{}, nil, fixedSeeds{}, slog.Default())
	if _, err := svc.Dream(context.Background(), "x"); !errors.Is(err, domain.ErrJournalDisabled) {
		t.Errorf("expected ErrJournalDisabled, got %v", err)
	}
	if _, err := svc.Dreams(context.Background(), 5); !errors.Is(err, domain.ErrJournalDisabled) {
		t.Errorf("expected ErrJournalDisabled, got %v", err)
	}
}

func TestDreams_Limit(t *testing.T) {
	j := &mockJournal{}
	svc := app.NewDreamService(&mockAnalyzer{}, j, fixedSeeds{}, slog.Default())

	_, _ = svc.Dreams(context.Background(), 0)
	if j.limit != app.DefaultListLimit {
		t.Errorf("expected default limit %d, got %d", app.DefaultListLimit, j.limit)
	}
	_, _ = svc.Dreams(context.Background(), 1000)
	if j.limit != app.MaxListLimit {
		t.Errorf("expected capped limit %d, got %d", app.MaxListLimit, j.limit)
	}
}

func TestDream_NotFound(t *testing.T) {
	svc := app.NewDreamService(&mockAnalyzer{}, &mockJournal{}, fixedSeeds{}, slog.Default())
	if _, err := svc.Dream(context.Background(), "missing"); !errors.Is(err, domain.ErrDreamNotFound) {
		t.Errorf("expected ErrDreamNotFound, got %v", err)
	}
}
