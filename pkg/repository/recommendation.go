package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/cookscope/pkg/domain"
)

// RecommendationRepository keeps the last recommendation per user
type RecommendationRepository struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time
}

// NewRecommendationRepository creates a new recommendation repository, zero ttl keeps records forever
func NewRecommendationRepository(db *sqlx.DB, ttl time.Duration) *RecommendationRepository {
	return &RecommendationRepository{db: db, ttl: ttl, now: time.Now}
}

// Get returns the stored recommendation of the user or domain.ErrNotFound
func (r *RecommendationRepository) Get(ctx context.Context, userID string) (domain.Recommendation, error) {
	var row struct {
		Payload   string `db:"payload"`
		CreatedAt int64  `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &row, "SELECT payload, created_at FROM recommendations WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Recommendation{}, fmt.Errorf("recommendation for %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("get recommendation for %s: %w", userID, err)
	}
	if r.expired(row.CreatedAt) {
		return domain.Recommendation{}, fmt.Errorf("recommendation for %s expired: %w", userID, domain.ErrNotFound)
	}

	var rec domain.Recommendation
	if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
		return domain.Recommendation{}, fmt.Errorf("unmarshal recommendation for %s: %w", userID, err)
	}
	return rec, nil
}

// Save replaces the stored recommendation of rec.UserID
func (r *RecommendationRepository) Save(ctx context.Context, rec domain.Recommendation) error {
	if rec.UserID == "" {
		return domain.ErrInvalidUser
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query := `
		INSERT INTO recommendations (user_id, id, payload, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			id = excluded.id,
			payload = excluded.payload,
			created_at = excluded.created_at
	`
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, rec.UserID, rec.ID, string(payload), createdAt.Unix()); err != nil {
			return fmt.Errorf("save recommendation for %s: %w", rec.UserID, err)
		}
		return nil
	})
}

// Delete removes the stored recommendation, deleting a missing one is not an error
func (r *RecommendationRepository) Delete(ctx context.Context, userID string) error {
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM recommendations WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("delete recommendation for %s: %w", userID, err)
		}
		return nil
	})
}

// Prune deletes recommendations older than ttl and returns number of deleted records
func (r *RecommendationRepository) Prune(ctx context.Context) (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}
	cutoff := r.now().Add(-r.ttl).Unix()
	var deleted int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM recommendations WHERE created_at < ?", cutoff)
		if err != nil {
			return fmt.Errorf("prune recommendations: %w", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get affected rows: %w", err)
		}
		return nil
	})
	return deleted, err
}

func (r *RecommendationRepository) expired(createdAt int64) bool {
	return r.ttl > 0 && createdAt < r.now().Add(-r.ttl).Unix()
}
