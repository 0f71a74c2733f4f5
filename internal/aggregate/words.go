package aggregate

import (
	"sort"
	"strings"
	"unicode"

	"ReviewMiner/internal/domain"
)

// WordCount pairs a review word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// Common filler words excluded from word frequencies.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "had": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "so": {}, "that": {}, "the": {}, "their": {}, "they": {},
	"this": {}, "to": {}, "very": {}, "was": {}, "we": {}, "were": {},
	"with": {}, "you": {},
}

// WordFrequencies counts words across reviews carrying the given label,
// feeding the word-cloud surface. Stopwords and single-rune fragments are
// skipped. Results are ordered by descending count, ties alphabetically,
// capped at topN (0 means no cap).
func WordFrequencies(reviews []domain.Review, label domain.Label, topN int) []WordCount {
	counts := map[string]int{}
	for _, r := range reviews {
		if r.Label != label {
			continue
		}
		for _, word := range splitWords(r.Text) {
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func splitWords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		words = append(words, f)
	}
	return words
}
