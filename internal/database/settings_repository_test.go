package database

import (
	"context"
	"testing"

	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SeedsDefaultsOnEmptyTable(t *testing.T) {
	db := OpenTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	settings, err := repo.Load(ctx)
	require.NoError(t, err)

	defaults := DefaultSettings()
	assert.Equal(t, defaults, settings)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM config`).Scan(&count))
	assert.Equal(t, 8, count)
}

func TestLoad_Idempotent(t *testing.T) {
	repo := NewSettingsRepo(OpenTestDB(t))
	ctx := context.Background()

	first, err := repo.Load(ctx)
	require.NoError(t, err)
	second, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo := NewSettingsRepo(OpenTestDB(t))
	ctx := context.Background()

	custom := &domain.Settings{
		CurseWords:          []string{"blast"},
		InsultWords:         []string{"nitwit", "dolt"},
		NegativityThreshold: -0.5,
		SaltPenaltyCurse:    0.5,
		SaltPenaltyInsult:   3.0,
		MentionAmplifies:    false,
		Fuzziness:           2,
		Ranks: []domain.Rank{
			{Threshold: 0, Label: "Calm"},
			{Threshold: 20, Label: "Spicy"},
		},
	}
	require.NoError(t, repo.Save(ctx, custom))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)
}

func TestSave_RanksWireFormat(t *testing.T) {
	db := OpenTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	settings := DefaultSettings()
	settings.Ranks = []domain.Rank{{Threshold: 0, Label: "Fresh"}}
	require.NoError(t, repo.Save(ctx, settings))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT value FROM config WHERE key = 'ranks'`).Scan(&raw))
	assert.JSONEq(t, `[[0,"Fresh"]]`, raw)
}

func TestSave_RejectsDuplicateThresholds(t *testing.T) {
	db := OpenTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	settings := DefaultSettings()
	settings.Ranks = []domain.Rank{
		{Threshold: 10, Label: "A"},
		{Threshold: 10, Label: "B"},
	}
	err := repo.Save(ctx, settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rank threshold")

	// nothing written
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM config`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestLoad_MissingKeysFallBackToDefaults(t *testing.T) {
	db := OpenTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	// an older config table that only knows about lexicons
	_, err := db.Exec(`INSERT INTO config (key, value) VALUES ('curse_words', '["blast"]')`)
	require.NoError(t, err)

	settings, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blast"}, settings.CurseWords)
	assert.Equal(t, DefaultSettings().Ranks, settings.Ranks)
	assert.True(t, settings.MentionAmplifies)
}
