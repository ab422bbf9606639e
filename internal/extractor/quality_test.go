package extractor

import (
	"strings"
	"testing"

	"github.com/deepnav/webnav/internal/model"
)

// makeLinks builds n placeholder links.
func makeLinks(n int) []model.Link {
	links := make([]model.Link, n)
	for i := range links {
		links[i] = model.Link{URL: "http://site.test/p", Text: "p"}
	}
	return links
}

// TestQualityScore tests the additive score components and bounds.
func TestQualityScore(t *testing.T) {
	t.Parallel()

	t.Run("empty input scores zero", func(t *testing.T) {
		t.Parallel()

		if got := QualityScore("", "", nil); got != 0.0 {
			t.Errorf("expected 0.0, got %v", got)
		}
	})

	t.Run("length tiers", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			length int
			want   float64
		}{
			{50, 0.0},
			{200, 1.0},
			{600, 2.0},
			{1500, 3.0},
		}
		for _, tt := range tests {
			text := strings.Repeat("a", tt.length)
			if got := QualityScore(text, "", nil); got != tt.want {
				t.Errorf("length %d: expected %v, got %v", tt.length, tt.want, got)
			}
		}
	})

	t.Run("title bonus requires more than 10 characters", func(t *testing.T) {
		t.Parallel()

		if got := QualityScore("", "short", nil); got != 0.0 {
			t.Errorf("short title should not score, got %v", got)
		}
		if got := QualityScore("", "a reasonably long title", nil); got != 1.0 {
			t.Errorf("long title should score 1.0, got %v", got)
		}
	})

	t.Run("link count tiers", func(t *testing.T) {
		t.Parallel()

		// Many links with no text: the ratio bonus cannot apply.
		if got := QualityScore("", "", makeLinks(6)); got != 1.0 {
			t.Errorf("6 links should score 1.0, got %v", got)
		}
		if got := QualityScore("", "", makeLinks(11)); got != 2.0 {
			t.Errorf("11 links should score 2.0, got %v", got)
		}
	})

	t.Run("text to link ratio bonus", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 150) // 150/1 > 100
		// 150 chars also earns the >100 length point.
		if got := QualityScore(text, "", makeLinks(1)); got != 2.0 {
			t.Errorf("expected length + ratio = 2.0, got %v", got)
		}
	})

	t.Run("score never exceeds 10", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 5000) + "\n\n" + strings.Repeat("b", 5000)
		got := QualityScore(text, "a generously sized page title", makeLinks(50))
		if got > 10.0 {
			t.Errorf("score exceeded cap: %v", got)
		}
	})

	t.Run("rich article scores as the sum of its parts", func(t *testing.T) {
		t.Parallel()

		// 1500 chars of text, a 15-word title, 12 links:
		// 3.0 (length) + 1.0 (title) + 2.0 (links) + 1.0 (ratio 1500/12 > 100).
		// No paragraph bonus: cleaned text carries no blank lines.
		text := strings.Repeat("a", 1500)
		title := "a detailed and carefully argued survey of frontier crawling strategies in practice today"
		if got := QualityScore(text, title, makeLinks(12)); got != 7.0 {
			t.Errorf("expected 7.0, got %v", got)
		}
	})
}
