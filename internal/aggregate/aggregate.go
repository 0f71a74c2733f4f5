// Package aggregate derives time-bucketed summaries from classified, dated
// review records. Everything here is pure and recomputed on demand; nothing
// is persisted independently of the records that produced it.
package aggregate

import (
	"math"
	"sort"
	"sync"
	"time"

	"ReviewMiner/internal/domain"
)

// LabelCounts counts reviews per overall label irrespective of time.
// Rows without a label (unset score) are excluded.
func LabelCounts(reviews []domain.Review) map[domain.Label]int {
	counts := make(map[domain.Label]int, 3)
	for _, r := range reviews {
		if r.Label == domain.LabelUnset {
			continue
		}
		counts[r.Label]++
	}
	return counts
}

// MonthLabelCount holds per-label counts for one calendar month.
type MonthLabelCount struct {
	Month    time.Month
	Positive int
	Neutral  int
	Negative int
}

// MonthlyLabelCounts buckets labeled reviews by month. The result always
// covers January through December in calendar order; months without records
// report zero rather than being omitted.
func MonthlyLabelCounts(reviews []domain.Review) []MonthLabelCount {
	out := make([]MonthLabelCount, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}
	for _, r := range reviews {
		bucket := &out[r.Month()-1]
		switch r.Label {
		case domain.LabelPositive:
			bucket.Positive++
		case domain.LabelNeutral:
			bucket.Neutral++
		case domain.LabelNegative:
			bucket.Negative++
		}
	}
	return out
}

// MonthMean is the average sentiment score for one calendar month.
type MonthMean struct {
	Month time.Month
	Mean  float64
	Count int
}

// MonthlyMeanScores averages scored reviews per month across the full
// 12-month domain. Unscored rows do not contribute.
func MonthlyMeanScores(reviews []domain.Review) []MonthMean {
	out := make([]MonthMean, 12)
	sums := make([]int, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}
	for _, r := range reviews {
		if r.Score == domain.ScoreUnset {
			continue
		}
		idx := int(r.Month()) - 1
		sums[idx] += r.Score
		out[idx].Count++
	}
	for i := range out {
		if out[i].Count > 0 {
			out[i].Mean = float64(sums[i]) / float64(out[i].Count)
		}
	}
	return out
}

// Distribution is a full-population statistical summary of sentiment scores.
type Distribution struct {
	Count    int
	Mean     float64
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Outliers []int
}

// ScoreDistribution summarizes all scored reviews. Quartiles use linear
// interpolation; outliers fall outside 1.5 IQR beyond the quartiles.
func ScoreDistribution(reviews []domain.Review) Distribution {
	var scores []float64
	for _, r := range reviews {
		if r.Score != domain.ScoreUnset {
			scores = append(scores, float64(r.Score))
		}
	}
	if len(scores) == 0 {
		return Distribution{}
	}
	sort.Float64s(scores)

	sum := 0.0
	for _, s := range scores {
		sum += s
	}

	d := Distribution{
		Count:  len(scores),
		Mean:   sum / float64(len(scores)),
		Min:    scores[0],
		Q1:     quantile(scores, 0.25),
		Median: quantile(scores, 0.5),
		Q3:     quantile(scores, 0.75),
		Max:    scores[len(scores)-1],
	}

	iqr := d.Q3 - d.Q1
	lo, hi := d.Q1-1.5*iqr, d.Q3+1.5*iqr
	for _, s := range scores {
		if s < lo || s > hi {
			d.Outliers = append(d.Outliers, int(s))
		}
	}
	return d
}

// quantile interpolates linearly over sorted values, q in [0,1].
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// View wraps a record set and memoizes the most recent date-range filter.
// The memo is keyed by range and revalidated whenever the underlying
// records are replaced.
type View struct {
	mu      sync.Mutex
	reviews []domain.Review
	version uint64

	memoValid   bool
	memoVersion uint64
	memoFrom    time.Time
	memoTo      time.Time
	memoResult  []domain.Review
}

// NewView builds a view over the given records.
func NewView(reviews []domain.Review) *View {
	return &View{reviews: reviews}
}

// Replace swaps the underlying records and invalidates the memo.
func (v *View) Replace(reviews []domain.Review) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reviews = reviews
	v.version++
	v.memoValid = false
}

// Reviews returns the current record set.
func (v *View) Reviews() []domain.Review {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.reviews
}

// FilterByDate returns records whose date falls in [from, to], inclusive.
// Repeated calls with the same range reuse the previous result until the
// records change.
func (v *View) FilterByDate(from, to time.Time) []domain.Review {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.memoValid && v.memoVersion == v.version && v.memoFrom.Equal(from) && v.memoTo.Equal(to) {
		return v.memoResult
	}

	var filtered []domain.Review
	for _, r := range v.reviews {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		filtered = append(filtered, r)
	}

	v.memoValid = true
	v.memoVersion = v.version
	v.memoFrom = from
	v.memoTo = to
	v.memoResult = filtered
	return filtered
}
