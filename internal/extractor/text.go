package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// whitespaceRuns collapses any whitespace run to one space.
	whitespaceRuns = regexp.MustCompile(`\s+`)

	// controlChars matches the control characters stripped from extracted
	// text (everything below space except tab, newline, and carriage return,
	// plus DEL).
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	// blankLines matches consecutive blank lines.
	blankLines = regexp.MustCompile(`\n\s*\n`)

	// sentenceDelims split text into sentences.
	sentenceDelims = regexp.MustCompile(`[.!?]+`)
)

// Summary tuning constants.
const (
	// summaryMaxSentences is the number of sentences a summary keeps.
	summaryMaxSentences = 3

	// summaryScanWindow is how many leading sentences are scanned for
	// importance keywords.
	summaryScanWindow = 10

	// summaryMinSentenceLen filters out fragments left by the delimiter split.
	summaryMinSentenceLen = 20

	// summaryShortText is the length below which text is its own summary.
	summaryShortText = 100

	// summaryTruncateAt bounds the truncation fallback.
	summaryTruncateAt = 500
)

// importanceKeywords mark sentences worth promoting into the summary.
// The list is French-leaning because the corpora this tool was built against
// are; "important" covers both languages.
var importanceKeywords = []string{
	"important", "principal", "essentiel", "clé", "majeur", "définition",
}

// CleanText normalizes extracted text: whitespace runs become single spaces,
// control characters are stripped, and blank-line runs collapse.
//
// Note the ordering: because whitespace collapsing runs first, no newlines
// survive into the result. The blank-line pass is kept for inputs that are
// already partially cleaned.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = controlChars.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Summarize builds a short summary of cleaned text.
//
// Text under 100 characters is returned verbatim. Otherwise the text is
// split into sentences (keeping those longer than 20 characters); with three
// or fewer usable sentences the text itself is returned, truncated to 500
// characters. With more, up to three sentences containing importance
// keywords are preferred, falling back to the first three.
func Summarize(text string) string {
	if utf8.RuneCountInString(text) < summaryShortText {
		return text
	}

	var sentences []string
	for _, s := range sentenceDelims.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > summaryMinSentenceLen {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) <= summaryMaxSentences {
		return truncateRunes(text, summaryTruncateAt)
	}

	window := sentences
	if len(window) > summaryScanWindow {
		window = window[:summaryScanWindow]
	}

	var important []string
	for _, s := range window {
		lower := strings.ToLower(s)
		for _, kw := range importanceKeywords {
			if strings.Contains(lower, kw) {
				important = append(important, s)
				break
			}
		}
	}

	chosen := sentences[:summaryMaxSentences]
	if len(important) >= summaryMaxSentences {
		chosen = important[:summaryMaxSentences]
	}

	return strings.Join(chosen, ". ") + "."
}

// truncateRunes returns s unchanged when it fits, otherwise the first max
// runes with an ellipsis.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
