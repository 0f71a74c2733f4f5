package sentiment

import "unicode"

// A token is either a maximal run of letters/digits or a single
// punctuation/symbol rune. Whitespace separates tokens and is never counted.
// The scanner tracks byte offsets so truncation can return an exact prefix
// of the original text.

type tokenSpan struct {
	start int
	end   int
}

func scanTokens(s string, limit int) []tokenSpan {
	var spans []tokenSpan
	inWord := false
	wordStart := 0

	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !inWord {
				inWord = true
				wordStart = i
			}
		case unicode.IsSpace(r):
			if inWord {
				spans = append(spans, tokenSpan{wordStart, i})
				inWord = false
			}
		default:
			if inWord {
				spans = append(spans, tokenSpan{wordStart, i})
				inWord = false
			}
			spans = append(spans, tokenSpan{i, i + runeLen(r)})
		}
		if limit > 0 && len(spans) >= limit {
			return spans[:limit]
		}
	}
	if inWord {
		spans = append(spans, tokenSpan{wordStart, len(s)})
	}
	if limit > 0 && len(spans) > limit {
		spans = spans[:limit]
	}
	return spans
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// CountTokens returns the number of tokens in s.
func CountTokens(s string) int {
	return len(scanTokens(s, 0))
}

// Truncate returns the prefix of s covering at most maxTokens tokens.
// The result is an exact prefix of the input, so truncating an
// already-short text returns it unchanged.
func Truncate(s string, maxTokens int) string {
	if maxTokens <= 0 || s == "" {
		return ""
	}
	spans := scanTokens(s, maxTokens+1)
	if len(spans) <= maxTokens {
		return s
	}
	return s[:spans[maxTokens-1].end]
}
