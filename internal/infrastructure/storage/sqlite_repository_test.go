package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ReviewMiner/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	ctx := context.Background()
	day := time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC)

	first := domain.RunReport{
		InputName:    "reviews.csv",
		ArtifactName: "reviews_updated_reviews_2024-06-07.csv",
		ProcessedAt:  day,
		RowsIn:       10,
		RowsKept:     8,
		DroppedDates: 2,
		RowFailures:  1,
	}
	second := first
	second.ArtifactKept = true

	if err := repo.SaveRun(ctx, first); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if err := repo.SaveRun(ctx, second); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if err := repo.SaveRun(ctx, domain.RunReport{InputName: "other.csv", ProcessedAt: day}); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}

	runs, err := repo.RunsFor(ctx, "reviews.csv")
	if err != nil {
		t.Fatalf("RunsFor error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ArtifactKept || !runs[1].ArtifactKept {
		t.Fatalf("run order or kept flag wrong: %+v", runs)
	}
	if runs[0].RowsKept != 8 || runs[0].DroppedDates != 2 || runs[0].RowFailures != 1 {
		t.Fatalf("counts not round-tripped: %+v", runs[0])
	}
	if !runs[0].ProcessedAt.Equal(day) {
		t.Fatalf("processed date %v, want %v", runs[0].ProcessedAt, day)
	}
}

func TestRunsForUnknownInput(t *testing.T) {
	t.Parallel()

	repo := openTestRepo(t)
	runs, err := repo.RunsFor(context.Background(), "never-seen.csv")
	if err != nil {
		t.Fatalf("RunsFor error: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
