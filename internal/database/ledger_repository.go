package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
)

// LedgerRepo implements domain.LedgerRepository backed by SQLite.
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a LedgerRepo from the shared DB connection.
func NewLedgerRepo(db *DB) *LedgerRepo {
	return &LedgerRepo{db: db.DB}
}

func (r *LedgerRepo) GetTotal(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT salt FROM users WHERE user_id = ?`, userID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read total: %w", err)
	}
	return total, nil
}

// Increment applies delta to the user's total and to the history row for
// date in one transaction, so a concurrent increment can never observe the
// total without its matching history entry.
func (r *LedgerRepo) Increment(ctx context.Context, userID int64, delta float64, date string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := applyDelta(ctx, tx, userID, delta, date); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetTotal overwrites the user's total and folds the implied delta into the
// history row for date, preserving sum(history) == total across overrides.
// Returns the prior total.
func (r *LedgerRepo) SetTotal(ctx context.Context, userID int64, value float64, date string) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var prior float64
	err = tx.QueryRowContext(ctx,
		`SELECT salt FROM users WHERE user_id = ?`, userID).Scan(&prior)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to read prior total: %w", err)
	}

	if err := applyDelta(ctx, tx, userID, value-prior, date); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return prior, nil
}

// applyDelta runs the paired upserts inside the caller's transaction.
func applyDelta(ctx context.Context, tx *sql.Tx, userID int64, delta float64, date string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (user_id, salt) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET salt = salt + excluded.salt
	`, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to update total: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (user_id, date, amount) VALUES (?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET amount = amount + excluded.amount
	`, userID, date, delta)
	if err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}
	return nil
}

func (r *LedgerRepo) DailyLeaderboard(ctx context.Context, date string) ([]domain.LeaderboardRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, amount FROM history
		WHERE date = ?
		ORDER BY amount DESC, user_id ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily leaderboard: %w", err)
	}
	defer rows.Close()

	return scanLeaderboard(rows)
}

func (r *LedgerRepo) WeeklyLeaderboard(ctx context.Context, start, end string) ([]domain.LeaderboardRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, SUM(amount) AS total FROM history
		WHERE date >= ? AND date <= ?
		GROUP BY user_id
		ORDER BY total DESC, user_id ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly leaderboard: %w", err)
	}
	defer rows.Close()

	return scanLeaderboard(rows)
}

func scanLeaderboard(rows *sql.Rows) ([]domain.LeaderboardRow, error) {
	var board []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		board = append(board, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}
	return board, nil
}
