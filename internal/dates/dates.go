// Package dates normalizes heterogeneous textual date values into canonical
// calendar dates under a fixed layout precedence.
package dates

import (
	"strings"
	"time"
)

// Layouts is the precedence order tried for every value. Ambiguous values
// such as "01/02/2024" resolve to the first layout that parses; this
// tie-break is deterministic and not configurable per row.
var Layouts = []string{
	"2006-01-02", // year-month-day
	"02/01/2006", // day/month/year
	"01/02/2006", // month/day/year
	"02-01-06",   // day-month-two-digit-year, seen in older exports
}

// Parse normalizes one value, reporting ok=false when no layout accepts it.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Result describes a normalized column. Times and Keep are indexed like the
// input; Dropped counts values no layout accepted.
type Result struct {
	Times   []time.Time
	Keep    []bool
	Dropped int
}

// NormalizeColumn parses every value in the column. Unparseable values are
// marked for removal rather than given a sentinel date; the caller drops
// those rows and reports the count as a warning.
func NormalizeColumn(values []string) Result {
	res := Result{
		Times: make([]time.Time, len(values)),
		Keep:  make([]bool, len(values)),
	}
	for i, v := range values {
		t, ok := Parse(v)
		if !ok {
			res.Dropped++
			continue
		}
		res.Times[i] = t
		res.Keep[i] = true
	}
	return res
}
