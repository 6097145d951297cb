package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyWordSet(t *testing.T) {
	assert.Nil(t, Compile(nil, 1))
	assert.Nil(t, Compile([]string{}, 1))
	assert.Nil(t, Compile([]string{"", "  "}, 1))
}

func TestMatcher_NilMatchesNothing(t *testing.T) {
	var m *Matcher
	assert.False(t, m.Contains("anything at all"))
}

func TestMatcher_ExactWholeWord(t *testing.T) {
	m := Compile([]string{"idiot"}, 0)
	require.NotNil(t, m)

	assert.True(t, m.Contains("you are an idiot"))
	assert.True(t, m.Contains("idiot"))
	assert.False(t, m.Contains("idiotic behavior"))
	assert.False(t, m.Contains("antidiotic"))
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m := Compile([]string{"Idiot"}, 0)
	require.NotNil(t, m)

	assert.True(t, m.Contains("IDIOT"))
	assert.True(t, m.Contains("IdIoT alert"))
}

func TestMatcher_FuzzyNearMiss(t *testing.T) {
	m := Compile([]string{"idiot"}, 1)
	require.NotNil(t, m)

	// transposition counts as one edit
	assert.True(t, m.Contains("what an idoit"))
	// one substitution
	assert.True(t, m.Contains("idi0t move"))
}

func TestMatcher_FuzzyRespectsBoundaries(t *testing.T) {
	m := Compile([]string{"idiot"}, 1)
	require.NotNil(t, m)

	// "idiotic" is two edits away, and the entry must not match inside it
	assert.False(t, m.Contains("idiotic behavior"))
	assert.False(t, m.Contains("antidiotic"))
}

func TestMatcher_FuzzinessZeroIsExactOnly(t *testing.T) {
	m := Compile([]string{"idiot"}, 0)
	require.NotNil(t, m)

	assert.False(t, m.Contains("idoit"))
}

func TestMatcher_EmptyText(t *testing.T) {
	m := Compile([]string{"idiot"}, 1)
	require.NotNil(t, m)

	assert.False(t, m.Contains(""))
}

func TestMatcher_PhraseEntry(t *testing.T) {
	m := Compile([]string{"son of a gun"}, 1)
	require.NotNil(t, m)

	assert.True(t, m.Contains("you son of a gun!"))
	assert.True(t, m.Contains("you son of a gunn"))
	assert.False(t, m.Contains("my son has a gun case"))
}

func TestMatcher_DeduplicatesAndTrims(t *testing.T) {
	m := Compile([]string{" Damn ", "damn", "DAMN"}, 0)
	require.NotNil(t, m)

	assert.True(t, m.Contains("damn it"))
	assert.Len(t, m.entries, 1)
}

func TestMatcher_LongerEntryOrderedFirst(t *testing.T) {
	m := Compile([]string{"dumb", "dumbass"}, 0)
	require.NotNil(t, m)

	assert.Equal(t, []string{"dumbass", "dumb"}, m.entries)
	assert.True(t, m.Contains("what a dumbass"))
}

func TestMatcher_PunctuationBoundaries(t *testing.T) {
	m := Compile([]string{"damn"}, 1)
	require.NotNil(t, m)

	assert.True(t, m.Contains("damn!"))
	assert.True(t, m.Contains("(damn)"))
}
