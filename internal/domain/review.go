package domain

import "time"

// Label is the overall sentiment derived from the ordinal score.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
	LabelUnset    Label = ""
)

// ScoreUnset marks a row the classifier never scored (missing text or row failure).
const ScoreUnset = 0

// Review is one classified, dated row of the working dataset.
type Review struct {
	Index int
	Text  string
	Score int
	Label Label
	Date  time.Time
}

// Month returns the calendar month of the review date.
func (r Review) Month() time.Month {
	return r.Date.Month()
}

// RunReport summarizes one pipeline execution for the caller.
type RunReport struct {
	InputName    string
	ArtifactName string
	ArtifactPath string
	ArtifactKept bool
	ProcessedAt  time.Time
	RowsIn       int
	RowsKept     int
	DroppedDates int
	RowFailures  int
}
