package ports

import (
	"context"

	"github.com/randomtoy/auradream/internal/domain"
)

// Analyzer turns a dream description into an emotion vector and a reading.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
}
