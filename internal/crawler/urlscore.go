package crawler

import "strings"

// qualityHintKeywords each add 0.5 to a URL's quality estimate.
var qualityHintKeywords = []string{
	"article", "guide", "tutorial", "about", "detail", "info",
}

// qualityPenaltyKeywords each subtract 1 from a URL's quality estimate.
var qualityPenaltyKeywords = []string{
	"ad", "ads", "popup", "redirect", "track",
}

// EstimateURLQuality rates a URL without fetching it. The quality_first
// strategy uses this estimate to order the frontier, so it has to be cheap:
// it looks only at the URL's length and its keyword content.
//
// Moderate-length URLs score a base point because very short URLs tend to
// be section roots and very long ones tend to be tracking or pagination
// noise. The score never goes below zero.
func EstimateURLQuality(pageURL string) float64 {
	var score float64

	if n := len(pageURL); n > 20 && n < 100 {
		score++
	}

	lower := strings.ToLower(pageURL)
	for _, kw := range qualityHintKeywords {
		if strings.Contains(lower, kw) {
			score += 0.5
		}
	}
	for _, kw := range qualityPenaltyKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}

	if score < 0 {
		return 0
	}
	return score
}
