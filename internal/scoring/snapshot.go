package scoring

import (
	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	"github.com/lemDace/Smackhouse-Saltbot/internal/lexicon"
)

// Snapshot bundles settings with the matchers compiled from them. A snapshot
// is immutable; settings changes produce a new snapshot that is swapped in
// atomically, so an in-flight evaluation never observes a half-updated state.
type Snapshot struct {
	Settings *domain.Settings
	Curse    *lexicon.Matcher
	Insult   *lexicon.Matcher
}

// NewSnapshot compiles the lexicon matchers for the given settings.
func NewSnapshot(settings *domain.Settings) *Snapshot {
	return &Snapshot{
		Settings: settings,
		Curse:    lexicon.Compile(settings.CurseWords, settings.Fuzziness),
		Insult:   lexicon.Compile(settings.InsultWords, settings.Fuzziness),
	}
}
