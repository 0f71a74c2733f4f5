// Package schema validates that a dataset exposes the semantic columns the
// pipeline requires and applies caller-supplied column substitutions when it
// does not.
package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ReviewMiner/internal/dataset"
)

// Required lists the semantic columns a fully enriched dataset carries.
var Required = []string{"Review", "Sentiment Score", "Overall", "Date"}

// PreClassification lists the columns that must exist before the classifier
// runs; Sentiment Score and Overall are produced by the pipeline itself.
var PreClassification = []string{"Review", "Date"}

// ErrSchema marks blocking validation failures; the pipeline must not
// proceed to classification past one.
var ErrSchema = errors.New("schema validation failed")

// Mapping substitutes a missing required column with an actual column name.
type Mapping map[string]string

// Missing returns the required names absent from the dataset, in the order
// they appear in required.
func Missing(d *dataset.Dataset, required []string) []string {
	var missing []string
	for _, name := range required {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Ensure returns a dataset that carries every required column, augmenting a
// clone with substituted columns when some are missing. The input dataset is
// never mutated. A missing column with no mapping entry, or a mapping entry
// pointing at a nonexistent column, is a blocking error.
func Ensure(d *dataset.Dataset, required []string, m Mapping, logger *slog.Logger) (*dataset.Dataset, error) {
	missing := Missing(d, required)
	if len(missing) == 0 {
		return d, nil
	}

	if logger != nil {
		logger.Warn("dataset is missing required columns",
			"missing", strings.Join(missing, ", "))
	}

	out := d.Clone()
	for _, name := range missing {
		actual, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q is missing and no substitution was supplied", ErrSchema, name)
		}
		values, err := out.Column(actual)
		if err != nil {
			return nil, fmt.Errorf("%w: substitution for %q names unknown column %q", ErrSchema, name, actual)
		}
		if err := out.SetColumn(name, values); err != nil {
			return nil, fmt.Errorf("apply substitution %q -> %q: %w", name, actual, err)
		}
		if logger != nil {
			logger.Info("applied column substitution", "required", name, "actual", actual)
		}
	}

	if still := Missing(out, required); len(still) > 0 {
		return nil, fmt.Errorf("%w: columns still missing after substitution: %s", ErrSchema, strings.Join(still, ", "))
	}

	return out, nil
}

// LooksLikeReviews reports whether a column plausibly holds review text:
// at least one value with more than three words. Advisory only.
func LooksLikeReviews(values []string) bool {
	for _, v := range values {
		if len(strings.Fields(v)) > 3 {
			return true
		}
	}
	return false
}
