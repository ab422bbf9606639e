package extractor

import (
	"strings"
	"testing"
)

// TestCleanText tests whitespace and control character normalization.
func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses whitespace runs", "a  b\t\tc\n\nd", "a b c d"},
		{"strips control characters", "a\x00b\x07c\x7fd", "abcd"},
		{"trims edges", "  hello  ", "hello"},
		{"plain text unchanged", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSummarize tests the summary rules.
func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("short text returned verbatim", func(t *testing.T) {
		t.Parallel()

		text := "A short note about nothing much."
		if got := Summarize(text); got != text {
			t.Errorf("expected verbatim return for short text, got %q", got)
		}
	})

	t.Run("few sentences returns text unchanged when under 500", func(t *testing.T) {
		t.Parallel()

		// Over 100 characters but only two usable sentences.
		text := "This is the first sentence of the document body. This is the second sentence of the document body."
		if got := Summarize(text); got != text {
			t.Errorf("expected text returned unchanged, got %q", got)
		}
	})

	t.Run("few sentences truncates long text with ellipsis", func(t *testing.T) {
		t.Parallel()

		// One giant sentence, no delimiters: one usable sentence, over 500 chars.
		text := strings.Repeat("word ", 150)
		got := Summarize(text)
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis suffix, got %q", got[len(got)-10:])
		}
		if len([]rune(got)) != 503 {
			t.Errorf("expected 500 runes plus ellipsis, got %d", len([]rune(got)))
		}
	})

	t.Run("prefers sentences with importance keywords", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("The opening sentence talks about the weather today outside. ")
		sb.WriteString("The second sentence is an important point about the topic. ")
		sb.WriteString("The third sentence makes another essentiel observation here. ")
		sb.WriteString("The fourth sentence adds an important clarification as well. ")
		sb.WriteString("The fifth sentence rambles on about something else entirely. ")
		sb.WriteString("The sixth sentence finally wraps the whole discussion up now. ")

		got := Summarize(sb.String())
		if !strings.Contains(got, "important point") {
			t.Errorf("expected importance-keyword sentence in summary, got %q", got)
		}
		if !strings.HasSuffix(got, ".") {
			t.Errorf("expected trailing period, got %q", got)
		}
	})

	t.Run("falls back to first three sentences", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("The first sentence describes the general topic of the page. ")
		sb.WriteString("The second sentence continues the description a bit further. ")
		sb.WriteString("The third sentence continues with yet more plain narration. ")
		sb.WriteString("The fourth sentence would not belong in any short summary. ")

		got := Summarize(sb.String())
		if !strings.HasPrefix(got, "The first sentence") {
			t.Errorf("expected summary to start with first sentence, got %q", got)
		}
		if strings.Contains(got, "fourth sentence") {
			t.Errorf("expected fourth sentence excluded, got %q", got)
		}
	})
}

// TestKeywords tests keyword extraction.
func TestKeywords(t *testing.T) {
	t.Parallel()

	t.Run("empty text yields no keywords", func(t *testing.T) {
		t.Parallel()

		if got := Keywords("", maxKeywords); len(got) != 0 {
			t.Errorf("expected no keywords, got %v", got)
		}
	})

	t.Run("orders by frequency and drops stopwords", func(t *testing.T) {
		t.Parallel()

		text := "the navigation navigation navigation crawler crawler page and the of"
		got := Keywords(text, maxKeywords)

		if len(got) != 3 {
			t.Fatalf("expected 3 keywords, got %v", got)
		}
		if got[0] != "navigation" || got[1] != "crawler" || got[2] != "page" {
			t.Errorf("unexpected keyword order: %v", got)
		}
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		t.Parallel()

		got := Keywords("zebra apple zebra apple mango", maxKeywords)
		if len(got) != 3 {
			t.Fatalf("expected 3 keywords, got %v", got)
		}
		if got[0] != "zebra" || got[1] != "apple" {
			t.Errorf("expected tie broken by first appearance, got %v", got)
		}
	})

	t.Run("caps at max and ignores short tokens", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("aa ", 5) +
			"alpha beta gamma delta epsilon zeta eta theta iota kappa lambda omega"
		got := Keywords(text, maxKeywords)
		if len(got) != maxKeywords {
			t.Errorf("expected %d keywords, got %d", maxKeywords, len(got))
		}
		for _, kw := range got {
			if kw == "aa" {
				t.Error("two-letter token should not be a keyword")
			}
		}
	})

	t.Run("case folds", func(t *testing.T) {
		t.Parallel()

		got := Keywords("Crawler CRAWLER crawler", maxKeywords)
		if len(got) != 1 || got[0] != "crawler" {
			t.Errorf("expected single case-folded keyword, got %v", got)
		}
	})
}

// TestDetectLanguage tests the indicator-word majority vote.
func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"french indicators", " le la les du des et dans pour ", "fr"},
		{"english indicators", " the and or is are with for on ", "en"},
		{"empty text", "", "unknown"},
		{"no indicators", "zyx wvu tsr", "unknown"},
		{"balanced vote", " le the ", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectLanguage(tt.in); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
