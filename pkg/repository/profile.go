package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/cookscope/pkg/domain"
)

// ProfileRepository handles long-term user preferences
type ProfileRepository struct {
	db *sqlx.DB
}

// profileSQL represents a user profile row
type profileSQL struct {
	UserID              string `db:"user_id"`
	SkillLevel          string `db:"skill_level"`
	FavoriteCuisine     string `db:"favorite_cuisine"`
	DietaryRestrictions string `db:"dietary_restrictions"`
	OverrideSkillLevel  string `db:"override_skill_level"`
	OverrideCuisine     string `db:"override_cuisine"`
	OverrideDietary     string `db:"override_dietary"`
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetLongTermPreferences returns user preferences, override fields take priority over the base profile.
// Returns domain.ErrNotFound for unknown users.
func (r *ProfileRepository) GetLongTermPreferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	var p profileSQL
	err := r.db.GetContext(ctx, &p, `SELECT user_id, skill_level, favorite_cuisine, dietary_restrictions,
		override_skill_level, override_cuisine, override_dietary FROM user_profiles WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserPreferences{}, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return domain.UserPreferences{
		SkillLevel:          firstNonEmpty(p.OverrideSkillLevel, p.SkillLevel),
		FavoriteCuisine:     firstNonEmpty(p.OverrideCuisine, p.FavoriteCuisine),
		DietaryRestrictions: firstNonEmpty(p.OverrideDietary, p.DietaryRestrictions),
	}, nil
}

// SaveProfile stores the base profile, as set by the user explicitly
func (r *ProfileRepository) SaveProfile(ctx context.Context, userID string, prefs domain.UserPreferences) error {
	query := `
		INSERT INTO user_profiles (user_id, skill_level, favorite_cuisine, dietary_restrictions)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			skill_level = excluded.skill_level,
			favorite_cuisine = excluded.favorite_cuisine,
			dietary_restrictions = excluded.dietary_restrictions,
			updated_at = CURRENT_TIMESTAMP
	`
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, prefs.SkillLevel, prefs.FavoriteCuisine, prefs.DietaryRestrictions)
		if err != nil {
			return fmt.Errorf("save profile %s: %w", userID, err)
		}
		return nil
	})
}

// SaveOverride stores preferences learned from a conversation. Empty fields keep the previous override.
func (r *ProfileRepository) SaveOverride(ctx context.Context, userID string, prefs domain.UserPreferences) error {
	if prefs.Empty() {
		return nil
	}
	query := `
		INSERT INTO user_profiles (user_id, override_skill_level, override_cuisine, override_dietary)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			override_skill_level = COALESCE(NULLIF(excluded.override_skill_level, ''), user_profiles.override_skill_level),
			override_cuisine = COALESCE(NULLIF(excluded.override_cuisine, ''), user_profiles.override_cuisine),
			override_dietary = COALESCE(NULLIF(excluded.override_dietary, ''), user_profiles.override_dietary),
			updated_at = CURRENT_TIMESTAMP
	`
	return withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, prefs.SkillLevel, prefs.FavoriteCuisine, prefs.DietaryRestrictions)
		if err != nil {
			return fmt.Errorf("save profile override %s: %w", userID, err)
		}
		return nil
	})
}

// ResetOverride clears conversation-learned preferences, base profile is kept
func (r *ProfileRepository) ResetOverride(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET override_skill_level = '', override_cuisine = '', override_dietary = '',
		updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
			return fmt.Errorf("reset profile override %s: %w", userID, err)
		}
		return nil
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
