// Package sentiment wraps a polarity-scoring engine behind a single
// compound-score function.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Scorer computes a compound polarity score in [-1, 1] for a text, more
// negative meaning more hostile. It is stateless and safe for concurrent use.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a Scorer backed by the VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text. Blank text is neutral.
func (s *Scorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return s.analyzer.PolarityScores(text).Compound
}
