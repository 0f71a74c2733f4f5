package llm

import (
	"fmt"
	"strings"

	"ReviewMiner/internal/domain"
)

const (
	maxReviewChars = 500
	maxPromptChars = 4096
)

// BuildReviewPrompt renders classified reviews into the user message for the
// initial recommendation request. Each review is capped at 500 characters
// and the whole prompt at 4096.
func BuildReviewPrompt(reviews []domain.Review) string {
	var b strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&b, "Review: %s\nSentiment Score: %d\n", truncateText(r.Text, maxReviewChars), r.Score)
		if b.Len() > maxPromptChars {
			break
		}
	}
	return truncateText(b.String(), maxPromptChars)
}

func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
