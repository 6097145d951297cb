package app

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lemDace/Smackhouse-Saltbot/internal/database"
	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	"github.com/lemDace/Smackhouse-Saltbot/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScorer returns a fixed compound score regardless of text.
type stubScorer struct {
	compound float64
}

func (s stubScorer) Score(string) float64 { return s.compound }

// wednesday is a fixed mid-week instant; its ISO week runs 2024-01-08 (Mon)
// through 2024-01-14 (Sun).
var wednesday = time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)

func newTestService(t *testing.T, compound float64, at time.Time) (*Service, *database.LedgerRepo) {
	t.Helper()

	db := database.OpenTestDB(t)
	ledger := database.NewLedgerRepo(db)
	settings := database.NewSettingsRepo(db)
	policy := scoring.NewPolicy(stubScorer{compound: compound})

	svc, err := NewService(context.Background(), ledger, settings, policy, clockwork.NewFakeClockAt(at))
	require.NoError(t, err)
	return svc, ledger
}

func TestHandleMessage_AppliesSaltToToday(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	delta, err := svc.HandleMessage(ctx, domain.Message{Text: "you are an idiot", AuthorID: 42})
	require.NoError(t, err)
	assert.Equal(t, 5.0, delta)

	total, err := ledger.GetTotal(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)

	board, err := ledger.DailyLeaderboard(ctx, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 5.0, board[0].Amount)
}

func TestHandleMessage_CleanMessageWritesNothing(t *testing.T) {
	svc, ledger := newTestService(t, -0.99, wednesday)
	ctx := context.Background()

	delta, err := svc.HandleMessage(ctx, domain.Message{Text: "lovely weather today", AuthorID: 42, MentionCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, delta)

	total, err := ledger.GetTotal(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestMySalt_TotalAndRank(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	total, rank, err := svc.MySalt(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, "Fresh", rank)

	require.NoError(t, ledger.Increment(ctx, 42, 30.0, "2024-01-10"))

	total, rank, err = svc.MySalt(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 30.0, total)
	assert.Equal(t, "Seasoned", rank)
}

func TestSetSalt_ReturnsPriorAndKeepsInvariant(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, 42, 8.0, "2024-01-09"))

	prior, err := svc.SetSalt(ctx, 42, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 8.0, prior)

	total, err := ledger.GetTotal(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 3.0, total)

	board, err := ledger.WeeklyLeaderboard(ctx, "2024-01-08", "2024-01-14")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 3.0, board[0].Amount)
}

func TestResetSalt_LogsNegativePriorToday(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, 42, 8.0, "2024-01-09"))

	prior, err := svc.ResetSalt(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 8.0, prior)

	total, err := ledger.GetTotal(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	board, err := ledger.DailyLeaderboard(ctx, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, -8.0, board[0].Amount)
}

func TestResetSalt_AlreadyZeroWritesNothing(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	prior, err := svc.ResetSalt(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, prior)

	board, err := ledger.DailyLeaderboard(ctx, "2024-01-10")
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestWeeklyLeaderboard_CurrentISOWeek(t *testing.T) {
	svc, ledger := newTestService(t, 0, wednesday)
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, 1, 1.0, "2024-01-07")) // previous week
	require.NoError(t, ledger.Increment(ctx, 1, 2.0, "2024-01-08")) // Monday
	require.NoError(t, ledger.Increment(ctx, 1, 4.0, "2024-01-14")) // Sunday

	board, err := svc.WeeklyLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 6.0, board[0].Amount)
}

func TestWeeklyLeaderboard_SundayBelongsToRunningWeek(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)
	svc, ledger := newTestService(t, 0, sunday)
	ctx := context.Background()

	require.NoError(t, ledger.Increment(ctx, 1, 2.0, "2024-01-08")) // Monday of the same week

	board, err := svc.WeeklyLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 2.0, board[0].Amount)
}

func TestUpdateSettings_SwapsMatchers(t *testing.T) {
	svc, _ := newTestService(t, 0, wednesday)
	ctx := context.Background()

	delta, err := svc.HandleMessage(ctx, domain.Message{Text: "zonk", AuthorID: 42})
	require.NoError(t, err)
	assert.Equal(t, 0.0, delta)

	updated := *svc.Settings()
	updated.CurseWords = append(updated.CurseWords, "zonk")
	require.NoError(t, svc.UpdateSettings(ctx, &updated))

	delta, err = svc.HandleMessage(ctx, domain.Message{Text: "zonk", AuthorID: 42})
	require.NoError(t, err)
	assert.Equal(t, updated.SaltPenaltyCurse, delta)
}

func TestUpdateSettings_RejectsDuplicateThresholds(t *testing.T) {
	svc, _ := newTestService(t, 0, wednesday)

	updated := *svc.Settings()
	updated.Ranks = []domain.Rank{
		{Threshold: 5, Label: "A"},
		{Threshold: 5, Label: "B"},
	}
	err := svc.UpdateSettings(context.Background(), &updated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rank threshold")
}
