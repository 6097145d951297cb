// Package scoring turns classified message text into a salt delta and maps
// running totals to rank labels.
package scoring

// SentimentScorer is the polarity engine consumed by the policy. Any
// implementation returning a compound score in [-1, 1] is interchangeable.
type SentimentScorer interface {
	Score(text string) float64
}

// Policy combines lexicon matches, sentiment and mention count into a single
// non-negative salt delta per message.
type Policy struct {
	scorer SentimentScorer
}

// NewPolicy creates a Policy using the given sentiment engine.
func NewPolicy(scorer SentimentScorer) *Policy {
	return &Policy{scorer: scorer}
}

// Evaluate returns the salt delta for one message. Insults always draw the
// harsher penalty; a curse word alone escalates only when the sentiment is
// negative enough or the message targets someone via mention.
func (p *Policy) Evaluate(text string, mentionCount int, snap *Snapshot) float64 {
	if snap == nil {
		return 0
	}

	foundCurse := snap.Curse.Contains(text)
	foundInsult := snap.Insult.Contains(text)
	if !foundCurse && !foundInsult {
		return 0
	}

	compound := p.scorer.Score(text)
	directed := snap.Settings.MentionAmplifies && mentionCount > 0

	if foundInsult || (foundCurse && (compound < snap.Settings.NegativityThreshold || directed)) {
		return snap.Settings.SaltPenaltyInsult
	}
	return snap.Settings.SaltPenaltyCurse
}
