package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// Rank is one rung of the rank ladder: the label applies to any total at or
// above Threshold, until a higher rung qualifies.
type Rank struct {
	Threshold float64
	Label     string
}

// MarshalJSON encodes a rank as a [threshold, label] pair, the wire format
// used in the config table.
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Threshold, r.Label})
}

// UnmarshalJSON decodes the [threshold, label] pair form.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("rank must be a [threshold, label] pair: %w", err)
	}
	if err := json.Unmarshal(pair[0], &r.Threshold); err != nil {
		return fmt.Errorf("rank threshold: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Label); err != nil {
		return fmt.Errorf("rank label: %w", err)
	}
	return nil
}

// Settings is the process-wide scoring configuration. It is loaded once at
// startup and replaced wholesale on change; compiled matchers are derived from
// it, never stored in it.
type Settings struct {
	CurseWords  []string
	InsultWords []string

	NegativityThreshold float64
	SaltPenaltyCurse    float64
	SaltPenaltyInsult   float64
	MentionAmplifies    bool

	// Fuzziness is the per-occurrence edit budget for lexicon matching.
	Fuzziness int

	Ranks []Rank
}

// Validate rejects settings that have no defined runtime behavior.
// Duplicate rank thresholds are an error: resolution order between equal
// thresholds would otherwise depend on load order.
func (s *Settings) Validate() error {
	if s.Fuzziness < 0 {
		return fmt.Errorf("fuzziness must be non-negative, got %d", s.Fuzziness)
	}
	seen := make(map[float64]string, len(s.Ranks))
	for _, r := range s.Ranks {
		if r.Label == "" {
			return fmt.Errorf("rank at threshold %v has an empty label", r.Threshold)
		}
		if other, ok := seen[r.Threshold]; ok {
			return fmt.Errorf("duplicate rank threshold %v (%q and %q)", r.Threshold, other, r.Label)
		}
		seen[r.Threshold] = r.Label
	}
	return nil
}

// SettingsRepository persists Settings in the config table. Load seeds
// built-in defaults when the table is empty.
type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
