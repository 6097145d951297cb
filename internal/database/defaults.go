package database

import "github.com/lemDace/Smackhouse-Saltbot/internal/domain"

// DefaultSettings is the configuration seeded on first run, when the config
// table is empty.
func DefaultSettings() *domain.Settings {
	return &domain.Settings{
		CurseWords: []string{
			"damn", "dammit", "hell", "crap", "shit", "fuck", "bastard", "bullshit",
		},
		InsultWords: []string{
			"idiot", "moron", "imbecile", "loser", "stupid", "dumbass", "clown", "scrub",
		},
		NegativityThreshold: -0.3,
		SaltPenaltyCurse:    1.0,
		SaltPenaltyInsult:   5.0,
		MentionAmplifies:    true,
		Fuzziness:           1,
		Ranks: []domain.Rank{
			{Threshold: 0, Label: "Fresh"},
			{Threshold: 10, Label: "Mildly Salted"},
			{Threshold: 25, Label: "Seasoned"},
			{Threshold: 50, Label: "Briny"},
			{Threshold: 100, Label: "Salt Mine"},
			{Threshold: 250, Label: "Dead Sea"},
		},
	}
}
