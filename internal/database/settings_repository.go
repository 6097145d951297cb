package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lemDace/Smackhouse-Saltbot/internal/domain"
)

// Config table keys. Values are JSON-encoded.
const (
	keyCurseWords          = "curse_words"
	keyInsultWords         = "insult_words"
	keyNegativityThreshold = "negativity_threshold"
	keySaltPenaltyCurse    = "salt_penalty_curse"
	keySaltPenaltyInsult   = "salt_penalty_insult"
	keyMentionAmplifies    = "mention_amplifies"
	keyFuzziness           = "fuzziness"
	keyRanks               = "ranks"
)

// SettingsRepo implements domain.SettingsRepository on the config table.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a SettingsRepo from the shared DB connection.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db.DB}
}

// Load reads the settings from the config table, seeding the built-in
// defaults first when the table is empty.
func (r *SettingsRepo) Load(ctx context.Context) (*domain.Settings, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM config`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count config rows: %w", err)
	}
	if count == 0 {
		defaults := DefaultSettings()
		if err := r.Save(ctx, defaults); err != nil {
			return nil, fmt.Errorf("failed to seed default settings: %w", err)
		}
		return defaults, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM config`)
	if err != nil {
		return nil, fmt.Errorf("failed to query config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan config row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate config rows: %w", err)
	}

	return decodeSettings(values)
}

// Save writes all settings keys in one transaction. Invalid settings are
// rejected before anything is written.
func (r *SettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	encoded, err := encodeSettings(s)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for key, value := range encoded {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO config (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to save config key %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func encodeSettings(s *domain.Settings) (map[string]string, error) {
	fields := map[string]any{
		keyCurseWords:          s.CurseWords,
		keyInsultWords:         s.InsultWords,
		keyNegativityThreshold: s.NegativityThreshold,
		keySaltPenaltyCurse:    s.SaltPenaltyCurse,
		keySaltPenaltyInsult:   s.SaltPenaltyInsult,
		keyMentionAmplifies:    s.MentionAmplifies,
		keyFuzziness:           s.Fuzziness,
		keyRanks:               s.Ranks,
	}

	encoded := make(map[string]string, len(fields))
	for key, field := range fields {
		value, err := json.Marshal(field)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config key %s: %w", key, err)
		}
		encoded[key] = string(value)
	}
	return encoded, nil
}

func decodeSettings(values map[string]string) (*domain.Settings, error) {
	// Missing keys keep the default, so settings added later degrade sanely
	// against an older config table.
	s := DefaultSettings()

	fields := map[string]any{
		keyCurseWords:          &s.CurseWords,
		keyInsultWords:         &s.InsultWords,
		keyNegativityThreshold: &s.NegativityThreshold,
		keySaltPenaltyCurse:    &s.SaltPenaltyCurse,
		keySaltPenaltyInsult:   &s.SaltPenaltyInsult,
		keyMentionAmplifies:    &s.MentionAmplifies,
		keyFuzziness:           &s.Fuzziness,
		keyRanks:               &s.Ranks,
	}

	for key, target := range fields {
		raw, ok := values[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return nil, fmt.Errorf("failed to decode config key %s: %w", key, err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("stored settings invalid: %w", err)
	}
	return s, nil
}
