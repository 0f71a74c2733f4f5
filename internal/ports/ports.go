package ports

import (
	"context"

	"ReviewMiner/internal/domain"
)

// SentimentModel scores review text against the five ordinal sentiment
// classes, returning one logit per class.
type SentimentModel interface {
	Predict(ctx context.Context, text string) ([]float64, error)
}

// ModelLoader performs the expensive one-time model initialization. A load
// failure is fatal to the run, never absorbed into per-row scores.
type ModelLoader func(ctx context.Context) (SentimentModel, error)

// Message is one turn of a recommendation chat exchange.
type Message struct {
	Role    string
	Content string
}

// Recommender turns enriched review data into free-form business
// recommendations via a remote text-completion service.
type Recommender interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// RunRepository records pipeline executions for audit and history.
type RunRepository interface {
	SaveRun(ctx context.Context, report domain.RunReport) error
	RunsFor(ctx context.Context, inputName string) ([]domain.RunReport, error)
}
