package extractor

import (
	"regexp"
	"sort"
	"strings"
)

// maxKeywords is how many keywords a PageRecord carries.
const maxKeywords = 10

// wordPattern matches runs of at least three Latin or accented letters.
var wordPattern = regexp.MustCompile(`[a-zA-ZÀ-ÿ]{3,}`)

// stopWords is the bilingual (French + English) stopword set excluded from
// keyword extraction.
var stopWords = map[string]bool{
	// French
	"le": true, "de": true, "et": true, "à": true, "un": true, "il": true,
	"être": true, "en": true, "avoir": true, "que": true, "pour": true,
	"dans": true, "ce": true, "son": true, "une": true, "sur": true,
	"avec": true, "ne": true, "se": true, "pas": true, "tout": true,
	"plus": true, "par": true, "grand": true,
	// English
	"the": true, "be": true, "to": true, "of": true, "and": true, "a": true,
	"in": true, "that": true, "have": true, "i": true, "it": true,
	"for": true, "not": true, "on": true, "with": true, "he": true,
	"as": true, "you": true, "do": true, "at": true, "this": true,
	"but": true, "his": true, "by": true, "from": true,
}

// frenchIndicators and englishIndicators drive language detection.
// Detection counts how many distinct indicators appear space-delimited in
// the text, so shared function words are kept language-specific.
var (
	frenchIndicators = []string{
		"le", "la", "les", "de", "du", "des", "et", "ou", "est", "sont",
		"avec", "dans", "pour", "sur", "par",
	}
	englishIndicators = []string{
		"the", "and", "or", "is", "are", "with", "in", "for", "on", "by",
		"at", "to", "of",
	}
)

// Keywords returns the up-to-max most frequent non-stopword tokens of text,
// case-folded. Ties keep first-seen order.
func Keywords(text string, max int) []string {
	if text == "" {
		return []string{}
	}

	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	freq := make(map[string]int)
	order := make([]string, 0)
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	// Stable sort over first-seen order makes equal-frequency results
	// deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

// DetectLanguage returns "fr", "en", or "unknown" by majority vote over
// space-delimited indicator words.
func DetectLanguage(text string) string {
	if text == "" {
		return "unknown"
	}

	lower := strings.ToLower(text)

	frenchCount := 0
	for _, w := range frenchIndicators {
		if strings.Contains(lower, " "+w+" ") {
			frenchCount++
		}
	}

	englishCount := 0
	for _, w := range englishIndicators {
		if strings.Contains(lower, " "+w+" ") {
			englishCount++
		}
	}

	switch {
	case frenchCount > englishCount:
		return "fr"
	case englishCount > frenchCount:
		return "en"
	default:
		return "unknown"
	}
}
