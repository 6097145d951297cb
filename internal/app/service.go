// Package app is the application layer - the only component that references
// multiple domain components. It orchestrates all use cases.
package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
	apperrors "github.com/lemDace/Smackhouse-Saltbot/internal/errors"
	"github.com/lemDace/Smackhouse-Saltbot/internal/metrics"
	"github.com/lemDace/Smackhouse-Saltbot/internal/scoring"
)

const dateLayout = "2006-01-02"

// Service wires the scoring policy to the ledger and settings stores. It owns
// the settings snapshot, which is swapped atomically on settings changes so
// scoring never reads a half-updated configuration.
type Service struct {
	ledger   domain.LedgerRepository
	settings domain.SettingsRepository
	policy   *scoring.Policy
	snap     atomic.Pointer[scoring.Snapshot]
	clock    clockwork.Clock
}

// NewService loads and validates the persisted settings, compiles the initial
// snapshot, and returns the application service.
func NewService(ctx context.Context, ledger domain.LedgerRepository, settings domain.SettingsRepository, policy *scoring.Policy, clock clockwork.Clock) (*Service, error) {
	s := &Service{
		ledger:   ledger,
		settings: settings,
		policy:   policy,
		clock:    clock,
	}

	loaded, err := settings.Load(ctx)
	if err != nil {
		return nil, apperrors.StorageError("failed to load settings", err)
	}
	s.snap.Store(scoring.NewSnapshot(loaded))

	return s, nil
}

// HandleMessage scores one inbound message and, when the delta is positive,
// applies it to the author's ledger. A failed write means the delta is not
// counted; it is never partially applied.
func (s *Service) HandleMessage(ctx context.Context, msg domain.Message) (float64, error) {
	delta := s.policy.Evaluate(msg.Text, msg.MentionCount, s.snap.Load())
	if delta <= 0 {
		metrics.MessagesScored.WithLabelValues("clean").Inc()
		return 0, nil
	}

	if err := s.ledger.Increment(ctx, msg.AuthorID, delta, s.today()); err != nil {
		metrics.MessagesScored.WithLabelValues("error").Inc()
		metrics.StoreFailures.Inc()
		return 0, apperrors.StorageError("failed to apply salt", err)
	}

	metrics.MessagesScored.WithLabelValues("salted").Inc()
	metrics.SaltApplied.Add(delta)
	return delta, nil
}

// MySalt returns a user's running total and its rank label.
func (s *Service) MySalt(ctx context.Context, userID int64) (float64, string, error) {
	total, err := s.ledger.GetTotal(ctx, userID)
	if err != nil {
		metrics.StoreFailures.Inc()
		return 0, "", apperrors.StorageError("failed to read salt", err)
	}
	return total, scoring.ResolveRank(total, s.snap.Load().Settings.Ranks), nil
}

// SetSalt overwrites a user's total, logging the implied delta to today's
// history. Returns the prior total.
func (s *Service) SetSalt(ctx context.Context, userID int64, value float64) (float64, error) {
	prior, err := s.ledger.SetTotal(ctx, userID, value, s.today())
	if err != nil {
		metrics.StoreFailures.Inc()
		return 0, apperrors.StorageError("failed to set salt", err)
	}
	return prior, nil
}

// ResetSalt sets a user's total to zero, logging the negative of the prior
// total as today's delta. Returns the prior total; zero means there was
// nothing to reset and nothing was written.
func (s *Service) ResetSalt(ctx context.Context, userID int64) (float64, error) {
	prior, err := s.ledger.GetTotal(ctx, userID)
	if err != nil {
		metrics.StoreFailures.Inc()
		return 0, apperrors.StorageError("failed to read salt", err)
	}
	if prior == 0 {
		return 0, nil
	}
	if _, err := s.ledger.SetTotal(ctx, userID, 0, s.today()); err != nil {
		metrics.StoreFailures.Inc()
		return 0, apperrors.StorageError("failed to reset salt", err)
	}
	return prior, nil
}

// DailyLeaderboard lists today's history amounts, highest first.
func (s *Service) DailyLeaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	board, err := s.ledger.DailyLeaderboard(ctx, s.today())
	if err != nil {
		metrics.StoreFailures.Inc()
		return nil, apperrors.StorageError("failed to read daily leaderboard", err)
	}
	return board, nil
}

// WeeklyLeaderboard aggregates history over the current ISO week
// (Monday through Sunday, UTC), highest first.
func (s *Service) WeeklyLeaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	start, end := s.weekBounds()
	board, err := s.ledger.WeeklyLeaderboard(ctx, start, end)
	if err != nil {
		metrics.StoreFailures.Inc()
		return nil, apperrors.StorageError("failed to read weekly leaderboard", err)
	}
	return board, nil
}

// Settings returns the currently active settings.
func (s *Service) Settings() *domain.Settings {
	return s.snap.Load().Settings
}

// UpdateSettings validates and persists new settings, then swaps in a freshly
// compiled snapshot. In-flight evaluations keep the snapshot they started
// with.
func (s *Service) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return apperrors.ValidationError(err.Error())
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		metrics.StoreFailures.Inc()
		return apperrors.StorageError("failed to save settings", err)
	}
	s.snap.Store(scoring.NewSnapshot(settings))
	return nil
}

func (s *Service) today() string {
	return s.clock.Now().UTC().Format(dateLayout)
}

// weekBounds returns the Monday and Sunday of the UTC calendar week
// containing now.
func (s *Service) weekBounds() (string, string) {
	now := s.clock.Now().UTC()
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started six days earlier
	}
	monday := now.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(dateLayout), sunday.Format(dateLayout)
}
