package extractor

import (
	"unicode/utf8"

	"github.com/deepnav/webnav/internal/model"
)

// maxQualityScore caps the additive content quality score.
const maxQualityScore = 10.0

// QualityScore computes the heuristic content quality score in [0, 10].
//
// The score is additive over content length, title quality, link count,
// text-to-link ratio, and paragraph structure. The weights are fixed; they
// exist to rank pages relative to each other, not to mean anything absolute.
func QualityScore(text, title string, links []model.Link) float64 {
	score := 0.0

	textLen := utf8.RuneCountInString(text)
	switch {
	case textLen > 1000:
		score += 3.0
	case textLen > 500:
		score += 2.0
	case textLen > 100:
		score += 1.0
	}

	if title != "" && utf8.RuneCountInString(title) > 10 {
		score += 1.0
	}

	switch {
	case len(links) > 10:
		score += 2.0
	case len(links) > 5:
		score += 1.0
	}

	// A high text-to-link ratio separates content pages from link farms.
	if len(links) > 0 && float64(textLen)/float64(len(links)) > 100 {
		score += 1.0
	}

	if blankLines.MatchString(text) {
		score += 1.0
	}

	if score > maxQualityScore {
		score = maxQualityScore
	}
	return score
}
