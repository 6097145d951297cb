package domain

import "context"

// LeaderboardRow is one entry of a daily or weekly leaderboard.
type LeaderboardRow struct {
	UserID int64
	Amount float64
}

// LedgerRepository is the durable salt ledger: a running total per user plus
// one accumulated history row per (user, UTC day). Dates are ISO 8601 calendar
// days ("2006-01-02", UTC).
type LedgerRepository interface {
	// GetTotal returns the user's running total, 0 for unknown users.
	GetTotal(ctx context.Context, userID int64) (float64, error)

	// Increment atomically adds delta to the user's total and to the history
	// row for date, creating both records as needed.
	Increment(ctx context.Context, userID int64, delta float64, date string) error

	// SetTotal overwrites the user's total and folds the implied delta
	// (value minus the prior total) into the history row for date, keeping
	// sum(history) == total. Returns the prior total.
	SetTotal(ctx context.Context, userID int64, value float64, date string) (float64, error)

	// DailyLeaderboard lists history amounts for one date, highest first.
	DailyLeaderboard(ctx context.Context, date string) ([]LeaderboardRow, error)

	// WeeklyLeaderboard sums history amounts over the inclusive date range,
	// highest first.
	WeeklyLeaderboard(ctx context.Context, start, end string) ([]LeaderboardRow, error)
}
