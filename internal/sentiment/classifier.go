// Package sentiment classifies review text into ordinal 1-5 scores with a
// five-class sequence-classification model and maps scores to overall labels.
package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"ReviewMiner/internal/domain"
	"ReviewMiner/internal/ports"
)

// MaxTokens bounds the text presented to the model. Truncation happens once,
// before the model call; there are no retries at larger lengths.
const MaxTokens = 512

const numClasses = 5

// Classifier wraps the shared model instance. The model loads lazily,
// exactly once per process; every classification call shares it.
type Classifier struct {
	load   ports.ModelLoader
	logger *slog.Logger

	once    sync.Once
	model   ports.SentimentModel
	initErr error
}

// NewClassifier wires the model loader without loading anything yet.
func NewClassifier(load ports.ModelLoader, logger *slog.Logger) *Classifier {
	return &Classifier{load: load, logger: logger}
}

// Init performs the one-shot model load. Concurrent first callers wait for
// the single in-flight load rather than duplicating it, and a failure is
// returned to every caller: the run must not start on a broken model.
func (c *Classifier) Init(ctx context.Context) error {
	c.once.Do(func() {
		if c.load == nil {
			c.initErr = fmt.Errorf("no model loader configured")
			return
		}
		model, err := c.load(ctx)
		if err != nil {
			c.initErr = fmt.Errorf("load sentiment model: %w", err)
			return
		}
		c.model = model
	})
	return c.initErr
}

// Classify scores one review text. Missing text returns ScoreUnset without
// touching the model; any other outcome is a value in 1..5 or a row-level
// error the caller may skip.
func (c *Classifier) Classify(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ScoreUnset, nil
	}
	if err := c.Init(ctx); err != nil {
		return domain.ScoreUnset, err
	}

	logits, err := c.model.Predict(ctx, Truncate(text, MaxTokens))
	if err != nil {
		return domain.ScoreUnset, fmt.Errorf("predict: %w", err)
	}
	if len(logits) != numClasses {
		return domain.ScoreUnset, fmt.Errorf("model returned %d class scores, want %d", len(logits), numClasses)
	}

	return argmax(logits) + 1, nil
}

func argmax(logits []float64) int {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return best
}

// RowResult carries the outcome of classifying one row. A failed row keeps
// ScoreUnset and records why; it never aborts its siblings.
type RowResult struct {
	Index int
	Score int
	Err   error
}

// ClassifyBatch scores every text over a bounded worker pool. Results are
// written to the slot matching their row index, so completion order does not
// matter. The model must already be initialized; call Init first so a load
// failure stops the run before any row is touched.
func (c *Classifier) ClassifyBatch(ctx context.Context, texts []string, workers int) []RowResult {
	results := make([]RowResult, len(texts))
	if workers < 1 {
		workers = 1
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				score, err := c.Classify(ctx, texts[i])
				results[i] = RowResult{Index: i, Score: score, Err: err}
				if err != nil && c.logger != nil {
					c.logger.Warn("row classification failed", "row", i, "error", err)
				}
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Failures counts rows whose classification returned an error.
func Failures(results []RowResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
