package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/randomtoy/auradream/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS dreams (
	id             TEXT PRIMARY KEY,
	created_at     INTEGER NOT NULL,
	text           TEXT NOT NULL,
	summary        TEXT NOT NULL,
	fear           REAL NOT NULL,
	desire         REAL NOT NULL,
	calm           REAL NOT NULL,
	mystery        REAL NOT NULL,
	connection     REAL NOT NULL,
	transformation REAL NOT NULL,
	shadow         TEXT NOT NULL,
	energy         TEXT NOT NULL,
	guidance       TEXT NOT NULL,
	model          TEXT NOT NULL,
	source         TEXT NOT NULL,
	style          TEXT NOT NULL,
	seeds          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS dreams_created_at ON dreams (created_at DESC);`

const columns = `id, created_at, text, summary, fear, desire, calm, mystery, connection,
	transformation, shadow, energy, guidance, model, source, style, seeds`

// SQLiteStore implements ports.Journal on a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	seeds, err := encodeSeeds(e.Seeds)
	if err != nil {
		return err
	}
	v := e.Analysis.Emotions
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO dreams (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UnixMilli(), e.Text, e.Analysis.Summary,
		v.Fear(), v.Desire(), v.Calm(), v.Mystery(), v.Connection(), v.Transformation(),
		e.Analysis.Tarot.Shadow, e.Analysis.Tarot.Energy, e.Analysis.Tarot.Guidance,
		e.Analysis.Model, string(e.Analysis.Source), string(e.Style), seeds,
	)
	if err != nil {
		return fmt.Errorf("insert dream %s: %w", e.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM dreams WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, domain.ErrDreamNotFound
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("get dream %s: %w", id, err)
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM dreams ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dream: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (domain.Entry, error) {
	var (
		e                                                  domain.Entry
		createdAt                                          int64
		fear, desire, calm, mystery, connection, transform float64
		source, style, seeds                               string
	)
	err := sc.Scan(&e.ID, &createdAt, &e.Text, &e.Analysis.Summary,
		&fear, &desire, &calm, &mystery, &connection, &transform,
		&e.Analysis.Tarot.Shadow, &e.Analysis.Tarot.Energy, &e.Analysis.Tarot.Guidance,
		&e.Analysis.Model, &source, &style, &seeds)
	if err != nil {
		return domain.Entry{}, err
	}
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	e.Analysis.Emotions = domain.NewEmotionVector(fear, desire, calm, mystery, connection, transform)
	e.Analysis.Source = domain.Source(source)
	e.Style = domain.StyleMode(style)
	if e.Seeds, err = decodeSeeds(seeds); err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

// Seeds are stored as a JSON array of decimal strings; SQLite integers are
// signed and would not round-trip the full uint64 range.
func encodeSeeds(seeds []uint64) (string, error) {
	strs := make([]string, len(seeds))
	for i, s := range seeds {
		strs[i] = strconv.FormatUint(s, 10)
	}
	raw, err := json.Marshal(strs)
	if err != nil {
		return "", fmt.Errorf("encode seeds: %w", err)
	}
	return string(raw), nil
}

func decodeSeeds(raw string) ([]uint64, error) {
	var strs []string
	if err := json.Unmarshal([]byte(raw), &strs); err != nil {
		return nil, fmt.Errorf("decode seeds: %w", err)
	}
	seeds := make([]uint64, len(strs))
	for i, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode seed %q: %w", s, err)
		}
		seeds[i] = v
	}
	return seeds, nil
}
