package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"ReviewMiner/internal/artifact"
	"ReviewMiner/internal/dataset"
	"ReviewMiner/internal/dates"
	"ReviewMiner/internal/domain"
	"ReviewMiner/internal/ports"
	"ReviewMiner/internal/schema"
	"ReviewMiner/internal/sentiment"
)

// PipelineDeps wires all collaborators into the orchestration pipeline.
type PipelineDeps struct {
	Classifier *sentiment.Classifier
	Artifacts  *artifact.Store
	Repository ports.RunRepository
	Logger     *slog.Logger
	Workers    int
}

// Pipeline implements the review classification and aggregation workflow.
type Pipeline struct {
	classifier *sentiment.Classifier
	artifacts  *artifact.Store
	repository ports.RunRepository
	logger     *slog.Logger
	workers    int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	workers := deps.Workers
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		classifier: deps.Classifier,
		artifacts:  deps.Artifacts,
		repository: deps.Repository,
		logger:     deps.Logger,
		workers:    workers,
	}
}

// RunOptions carries per-run parameters.
type RunOptions struct {
	InputName    string
	ReviewColumn string
	ColumnMap    schema.Mapping
	ProcessedAt  time.Time
}

// RunResult bundles the enriched dataset, the typed records backing
// aggregation, and the run report.
type RunResult struct {
	Report  domain.RunReport
	Dataset *dataset.Dataset
	Reviews []domain.Review
}

// Run executes one full pass: column validation, per-row classification,
// label derivation, date normalization, and write-once persistence. The
// input dataset is never mutated.
func (p *Pipeline) Run(ctx context.Context, input *dataset.Dataset, opts RunOptions) (*RunResult, error) {
	processedAt := opts.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	if !input.HasColumn(opts.ReviewColumn) {
		return nil, fmt.Errorf("%w: designated review column %q not found in %s",
			schema.ErrSchema, opts.ReviewColumn, opts.InputName)
	}

	work := input.Clone()
	reviewValues, err := work.Column(opts.ReviewColumn)
	if err != nil {
		return nil, err
	}
	if err := work.SetColumn("Review", reviewValues); err != nil {
		return nil, fmt.Errorf("designate review column: %w", err)
	}

	if !schema.LooksLikeReviews(reviewValues) {
		p.logger.Warn("designated column does not look like review text",
			"column", opts.ReviewColumn)
	}

	work, err = schema.Ensure(work, schema.PreClassification, opts.ColumnMap, p.logger)
	if err != nil {
		return nil, err
	}

	// Model load happens after schema validation and before any row work:
	// a broken model must stop the run with no partial output.
	if err := p.classifier.Init(ctx); err != nil {
		return nil, err
	}

	texts, err := work.Column("Review")
	if err != nil {
		return nil, err
	}
	results := p.classifier.ClassifyBatch(ctx, texts, p.workers)
	failures := sentiment.Failures(results)
	if failures > 0 {
		p.logger.Warn("some rows failed classification and keep score 0", "rows", failures)
	}

	scores := make([]string, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		scores[i] = strconv.Itoa(r.Score)
		labels[i] = string(sentiment.LabelFor(r.Score))
	}
	if err := work.SetColumn("Sentiment Score", scores); err != nil {
		return nil, err
	}
	if err := work.SetColumn("Overall", labels); err != nil {
		return nil, err
	}

	dateValues, err := work.Column("Date")
	if err != nil {
		return nil, err
	}
	normalized := dates.NormalizeColumn(dateValues)
	if normalized.Dropped > 0 {
		p.logger.Warn("rows with unrecognized date formats were dropped",
			"rows", normalized.Dropped)
	}

	kept, err := work.Select(normalized.Keep)
	if err != nil {
		return nil, err
	}

	var (
		reviews []domain.Review
		months  []string
	)
	row := 0
	for i := range normalized.Keep {
		if !normalized.Keep[i] {
			continue
		}
		date := normalized.Times[i]
		months = append(months, date.Month().String())
		reviews = append(reviews, domain.Review{
			Index: row,
			Text:  texts[i],
			Score: results[i].Score,
			Label: sentiment.LabelFor(results[i].Score),
			Date:  date,
		})
		row++
	}
	if kept.Len() > 0 {
		if err := kept.SetColumn("Month", months); err != nil {
			return nil, err
		}
	}

	written, err := p.artifacts.WriteOnce(kept, opts.InputName, processedAt)
	if err != nil {
		return nil, err
	}

	report := domain.RunReport{
		InputName:    opts.InputName,
		ArtifactName: written.Name,
		ArtifactPath: written.Path,
		ArtifactKept: written.Kept,
		ProcessedAt:  processedAt,
		RowsIn:       input.Len(),
		RowsKept:     kept.Len(),
		DroppedDates: normalized.Dropped,
		RowFailures:  failures,
	}

	if p.repository != nil {
		if err := p.repository.SaveRun(ctx, report); err != nil {
			// Audit is best-effort; the run itself succeeded.
			p.logger.Warn("failed to record run", "error", err)
		}
	}

	return &RunResult{Report: report, Dataset: kept, Reviews: reviews}, nil
}
