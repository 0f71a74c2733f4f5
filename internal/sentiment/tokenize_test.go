package sentiment

import (
	"strings"
	"testing"
)

func TestCountTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"hello", 1},
		{"hello world", 2},
		{"Great service!", 3},           // Great, service, !
		{"good, really good", 4},        // good, ",", really, good
		{"café naïve", 2},               // multi-byte letters stay one word
		{"5 stars!!", 4},                // 5, stars, !, !
		{"un\tdeux\ntrois", 3},
	}
	for _, tc := range cases {
		if got := CountTokens(tc.in); got != tc.want {
			t.Fatalf("CountTokens(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncateIsExactPrefix(t *testing.T) {
	t.Parallel()

	text := "The staff was friendly, the food arrived cold. Würde nicht empfehlen!"
	for limit := 1; limit <= CountTokens(text)+2; limit++ {
		got := Truncate(text, limit)
		if !strings.HasPrefix(text, got) {
			t.Fatalf("Truncate(limit=%d) = %q is not a prefix", limit, got)
		}
		if CountTokens(got) > limit {
			t.Fatalf("Truncate(limit=%d) kept %d tokens", limit, CountTokens(got))
		}
	}
}

func TestTruncateShortTextUnchanged(t *testing.T) {
	t.Parallel()

	text := "short review"
	if got := Truncate(text, 512); got != text {
		t.Fatalf("Truncate changed short text: %q", got)
	}
}

func TestTruncateDeterministic(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("again and again! ", 300)
	first := Truncate(text, 512)
	for i := 0; i < 3; i++ {
		if Truncate(text, 512) != first {
			t.Fatal("truncation is not deterministic")
		}
	}
	if CountTokens(first) != 512 {
		t.Fatalf("expected exactly 512 tokens, got %d", CountTokens(first))
	}
}

func TestTruncateZeroLimit(t *testing.T) {
	t.Parallel()

	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("Truncate with zero limit = %q", got)
	}
}
