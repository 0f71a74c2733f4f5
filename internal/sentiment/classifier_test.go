package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"ReviewMiner/internal/domain"
	"ReviewMiner/internal/ports"
)

type fakeModel struct {
	mu      sync.Mutex
	seen    []string
	calls   int64
	predict func(text string) ([]float64, error)
}

func (m *fakeModel) Predict(_ context.Context, text string) ([]float64, error) {
	atomic.AddInt64(&m.calls, 1)
	m.mu.Lock()
	m.seen = append(m.seen, text)
	m.mu.Unlock()
	if m.predict != nil {
		return m.predict(text)
	}
	// Lean positive unless the text sounds bad.
	if strings.Contains(strings.ToLower(text), "terrible") {
		return []float64{3.1, 0.4, 0.1, 0.1, 0.1}, nil
	}
	return []float64{0.1, 0.1, 0.1, 0.4, 3.1}, nil
}

func loaderFor(m *fakeModel) ports.ModelLoader {
	return func(context.Context) (ports.SentimentModel, error) { return m, nil }
}

func TestLabelFor(t *testing.T) {
	t.Parallel()

	for score := -1; score <= 6; score++ {
		got := LabelFor(score)
		var want domain.Label
		switch {
		case score == 4 || score == 5:
			want = domain.LabelPositive
		case score == 3:
			want = domain.LabelNeutral
		case score == 1 || score == 2:
			want = domain.LabelNegative
		default:
			want = domain.LabelUnset
		}
		if got != want {
			t.Fatalf("LabelFor(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestClassifyMissingTextSkipsModel(t *testing.T) {
	t.Parallel()

	model := &fakeModel{}
	c := NewClassifier(loaderFor(model), nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		score, err := c.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", text, err)
		}
		if score != domain.ScoreUnset {
			t.Fatalf("Classify(%q) = %d, want unset", text, score)
		}
	}
	if model.calls != 0 {
		t.Fatalf("model was invoked %d times for missing text", model.calls)
	}
}

func TestClassifyRange(t *testing.T) {
	t.Parallel()

	c := NewClassifier(loaderFor(&fakeModel{}), nil)
	for _, text := range []string{"Great service!", "Terrible wait times.", "meh"} {
		score, err := c.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if score < 1 || score > 5 {
			t.Fatalf("Classify(%q) = %d, out of 1..5", text, score)
		}
	}
}

func TestClassifyTruncatesBeforeModelCall(t *testing.T) {
	t.Parallel()

	model := &fakeModel{}
	c := NewClassifier(loaderFor(model), nil)

	long := strings.Repeat("word ", MaxTokens*2)
	prefix := Truncate(long, MaxTokens)

	scoreLong, err := c.Classify(context.Background(), long)
	if err != nil {
		t.Fatalf("Classify long error: %v", err)
	}
	scorePrefix, err := c.Classify(context.Background(), prefix)
	if err != nil {
		t.Fatalf("Classify prefix error: %v", err)
	}
	if scoreLong != scorePrefix {
		t.Fatalf("long text scored %d, truncated prefix scored %d", scoreLong, scorePrefix)
	}

	for _, seen := range model.seen {
		if CountTokens(seen) > MaxTokens {
			t.Fatalf("model saw %d tokens, limit is %d", CountTokens(seen), MaxTokens)
		}
	}
}

func TestInitRunsOnce(t *testing.T) {
	t.Parallel()

	var loads int64
	loader := func(context.Context) (ports.SentimentModel, error) {
		atomic.AddInt64(&loads, 1)
		return &fakeModel{}, nil
	}
	c := NewClassifier(loader, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Init(context.Background()); err != nil {
				t.Errorf("Init error: %v", err)
			}
		}()
	}
	wg.Wait()

	if loads != 1 {
		t.Fatalf("model loaded %d times, want 1", loads)
	}
}

func TestInitFailureIsFatal(t *testing.T) {
	t.Parallel()

	loader := func(context.Context) (ports.SentimentModel, error) {
		return nil, errors.New("weights not found")
	}
	c := NewClassifier(loader, nil)

	if err := c.Init(context.Background()); err == nil {
		t.Fatal("expected init error")
	}
	// The failure sticks; classification never silently falls back to 0.
	if _, err := c.Classify(context.Background(), "some review"); err == nil {
		t.Fatal("expected error from Classify after failed init")
	}
}

func TestClassifyRejectsWrongDistributionSize(t *testing.T) {
	t.Parallel()

	model := &fakeModel{predict: func(string) ([]float64, error) {
		return []float64{1, 2, 3}, nil
	}}
	c := NewClassifier(loaderFor(model), nil)

	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 3-class distribution")
	}
}

func TestClassifyBatch(t *testing.T) {
	t.Parallel()

	model := &fakeModel{predict: func(text string) ([]float64, error) {
		if strings.Contains(text, "boom") {
			return nil, fmt.Errorf("inference failed")
		}
		if strings.Contains(text, "Terrible") {
			return []float64{3, 0, 0, 0, 0}, nil
		}
		return []float64{0, 0, 0, 0, 3}, nil
	}}
	c := NewClassifier(loaderFor(model), nil)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	texts := []string{"Great service!", "Terrible wait times.", "", "boom goes the row", "fine"}
	results := c.ClassifyBatch(context.Background(), texts, 3)

	wantScores := []int{5, 1, 0, 0, 5}
	for i, want := range wantScores {
		if results[i].Index != i {
			t.Fatalf("result %d carries index %d", i, results[i].Index)
		}
		if results[i].Score != want {
			t.Fatalf("row %d scored %d, want %d", i, results[i].Score, want)
		}
	}

	if results[3].Err == nil {
		t.Fatal("expected row error for failing row")
	}
	if results[2].Err != nil {
		t.Fatal("missing text is not a row failure")
	}
	if got := Failures(results); got != 1 {
		t.Fatalf("Failures = %d, want 1", got)
	}
}

func TestArgmax(t *testing.T) {
	t.Parallel()

	cases := []struct {
		logits []float64
		want   int
	}{
		{[]float64{5, 1, 1, 1, 1}, 0},
		{[]float64{1, 1, 1, 1, 5}, 4},
		{[]float64{-2, -1, -3, -4, -5}, 1},
		{[]float64{1, 1, 1, 1, 1}, 0}, // ties keep the first class
	}
	for _, tc := range cases {
		if got := argmax(tc.logits); got != tc.want {
			t.Fatalf("argmax(%v) = %d, want %d", tc.logits, got, tc.want)
		}
	}
}
