package journal_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/randomtoy/auradream/internal/adapters/journal"
	"github.com/randomtoy/auradream/internal/domain"
)

func openStore(t *testing.T) *journal.SQLiteStore {
	t.Helper()
	s, err := journal.Open(context.Background(), filepath.Join(t.TempDir(), "dreams.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEntry(id string, at time.Time) domain.Entry {
	return domain.Entry{
		ID:        id,
		CreatedAt: at,
		Text:      "A door of light over the ocean.",
		Analysis: domain.Analysis{
			Summary:  "Crossing.",
			Emotions: domain.NewEmotionVector(0.1, 0.8, 0.6, 0.3, 0.5, 0.9),
			Tarot:    domain.TarotReading{Shadow: "s", Energy: "e", Guidance: "g"},
			Model:    "test-model",
			Source:   domain.SourceLLM,
		},
		Style: domain.StyleAuraFocus,
		Seeds: []uint64{42, math.MaxUint64},
	}
}

func TestSQLiteStore_SaveGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	want := testEntry("dream-1", at)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "dream-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != want.Text || got.Analysis.Summary != want.Analysis.Summary {
		t.Errorf("text mismatch: %+v", got)
	}
	if got.Analysis.Emotions != want.Analysis.Emotions {
		t.Errorf("emotions mismatch: %v vs %v", got.Analysis.Emotions.Values(), want.Analysis.Emotions.Values())
	}
	if got.Analysis.Tarot != want.Analysis.Tarot {
		t.Errorf("tarot mismatch: %+v", got.Analysis.Tarot)
	}
	if got.Style != domain.StyleAuraFocus || got.Analysis.Source != domain.SourceLLM {
		t.Errorf("style/source mismatch: %s/%s", got.Style, got.Analysis.Source)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("created_at mismatch: %v", got.CreatedAt)
	}
	if len(got.Seeds) != 2 || got.Seeds[0] != 42 || got.Seeds[1] != math.MaxUint64 {
		t.Errorf("seeds mismatch: %v", got.Seeds)
	}
}

func TestSQLiteStore_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDreamNotFound) {
		t.Fatalf("expected ErrDreamNotFound, got %v", err)
	}
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	e := testEntry("dup", time.Now())
	if err := s.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, e); err == nil {
		t.Fatal("expected error on duplicate id, got nil")
	}
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, testEntry(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.ID
		}
		t.Errorf("expected [c b], got %v", ids)
	}
}
