// Package app assembles configuration, infrastructure, and the pipeline into
// a runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ReviewMiner/internal/aggregate"
	"ReviewMiner/internal/artifact"
	"ReviewMiner/internal/config"
	"ReviewMiner/internal/dataset"
	"ReviewMiner/internal/domain"
	"ReviewMiner/internal/infrastructure/inference"
	"ReviewMiner/internal/infrastructure/llm"
	"ReviewMiner/internal/infrastructure/storage"
	"ReviewMiner/internal/logging"
	"ReviewMiner/internal/ports"
	"ReviewMiner/internal/schema"
	"ReviewMiner/internal/sentiment"
	"ReviewMiner/internal/usecase"
)

// App owns the wired components for one process lifetime.
type App struct {
	cfg         config.Config
	logger      *slog.Logger
	pipeline    *usecase.Pipeline
	repository  *storage.SQLiteRepository
	artifacts   *artifact.Store
	recommender ports.Recommender
}

// New builds the application from configuration.
func New(cfg config.Config) (*App, error) {
	logger := logging.New(cfg.Logging.Level)

	store, err := artifact.NewStore(cfg.Output.Dir, logger)
	if err != nil {
		return nil, err
	}

	repo, err := storage.Open(cfg.Audit.Path)
	if err != nil {
		return nil, err
	}

	loader := inference.Loader(cfg.Inference.Endpoint, cfg.Inference.APIKey, cfg.Inference.Model)
	classifier := sentiment.NewClassifier(loader, logger)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Classifier: classifier,
		Artifacts:  store,
		Repository: repo,
		Logger:     logger,
		Workers:    cfg.Pipeline.Workers,
	})

	return &App{
		cfg:         cfg,
		logger:      logger,
		pipeline:    pipeline,
		repository:  repo,
		artifacts:   store,
		recommender: llm.NewChatGPTClient(cfg.Chat),
	}, nil
}

// Logger exposes the application logger for the entrypoint.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases held resources.
func (a *App) Close() error {
	if a.repository != nil {
		return a.repository.Close()
	}
	return nil
}

// RunParams carries the per-invocation inputs.
type RunParams struct {
	InputPath    string
	ReviewColumn string
	ColumnMap    map[string]string
	Recommend    bool
}

// Run processes one input file end to end and logs a summary of the outcome.
func (a *App) Run(ctx context.Context, params RunParams) error {
	f, err := os.Open(params.InputPath)
	if err != nil {
		return fmt.Errorf("open input %s: %w", params.InputPath, err)
	}
	defer f.Close()

	ds, err := dataset.ReadFile(f, params.InputPath)
	if err != nil {
		return fmt.Errorf("read input %s: %w", params.InputPath, err)
	}

	reviewColumn := params.ReviewColumn
	if reviewColumn == "" {
		reviewColumn = "Review"
	}

	columnMap := schema.Mapping{}
	for k, v := range a.cfg.Pipeline.ColumnMap {
		columnMap[k] = v
	}
	for k, v := range params.ColumnMap {
		columnMap[k] = v
	}

	res, err := a.pipeline.Run(ctx, ds, usecase.RunOptions{
		InputName:    filepath.Base(params.InputPath),
		ReviewColumn: reviewColumn,
		ColumnMap:    columnMap,
	})
	if err != nil {
		return err
	}

	a.logSummary(res)

	if params.Recommend {
		if err := a.recommend(ctx, res.Reviews); err != nil {
			a.logger.Warn("recommendation request failed", "error", err)
		}
	}

	return nil
}

func (a *App) logSummary(res *usecase.RunResult) {
	counts := aggregate.LabelCounts(res.Reviews)
	dist := aggregate.ScoreDistribution(res.Reviews)

	a.logger.Info("run complete",
		"input", res.Report.InputName,
		"artifact", res.Report.ArtifactName,
		"artifact_kept", res.Report.ArtifactKept,
		"rows_in", res.Report.RowsIn,
		"rows_kept", res.Report.RowsKept,
		"dropped_dates", res.Report.DroppedDates,
		"row_failures", res.Report.RowFailures,
	)
	a.logger.Info("sentiment summary",
		"positive", counts[domain.LabelPositive],
		"neutral", counts[domain.LabelNeutral],
		"negative", counts[domain.LabelNegative],
		"mean_score", dist.Mean,
	)
}

func (a *App) recommend(ctx context.Context, reviews []domain.Review) error {
	reply, err := a.recommender.Complete(ctx, []ports.Message{
		{Role: "user", Content: llm.BuildReviewPrompt(reviews)},
	})
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
