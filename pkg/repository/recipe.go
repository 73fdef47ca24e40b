package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/cookscope/pkg/domain"
)

// RecipeRepository handles recipe catalog and per-user progress
type RecipeRepository struct {
	db *sqlx.DB
}

// recipeSQL represents a recipe for SQL operations
type recipeSQL struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Difficulty  string `db:"difficulty"`
	PrepTime    int    `db:"prep_time"`
	CookTime    int    `db:"cook_time"`
	Servings    int    `db:"servings"`
	CuisineType string `db:"cuisine_type"`
}

// summarySQL is the candidate projection of a recipe
type summarySQL struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	CuisineType string `db:"cuisine_type"`
	Difficulty  string `db:"difficulty"`
	TotalTime   int    `db:"total_time"`
	Description string `db:"description"`
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *sqlx.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// CreateRecipe inserts a new recipe and sets its ID
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	rec := recipeSQL{
		Name:        recipe.Name,
		Description: recipe.Description,
		Difficulty:  string(recipe.Difficulty),
		PrepTime:    recipe.PrepTime,
		CookTime:    recipe.CookTime,
		Servings:    recipe.Servings,
		CuisineType: recipe.CuisineType,
	}
	query := `
		INSERT INTO recipes (name, description, difficulty, prep_time, cook_time, servings, cuisine_type)
		VALUES (:name, :description, :difficulty, :prep_time, :cook_time, :servings, :cuisine_type)
	`
	return withRetry(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			return fmt.Errorf("create recipe %q: %w", recipe.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		recipe.ID = id
		return nil
	})
}

// GetRecipe retrieves a recipe by ID
func (r *RecipeRepository) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var rec recipeSQL
	err := r.db.GetContext(ctx, &rec, `SELECT id, name, description, difficulty, prep_time, cook_time, servings, cuisine_type
		FROM recipes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &domain.Recipe{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Difficulty:  domain.Difficulty(rec.Difficulty),
		PrepTime:    rec.PrepTime,
		CookTime:    rec.CookTime,
		Servings:    rec.Servings,
		CuisineType: rec.CuisineType,
	}, nil
}

// CountRecipes returns number of recipes in the catalog
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM recipes"); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// ListCandidates returns catalog recipes matching the filter. All predicates are pushed to sql,
// order is by difficulty rank, cuisine and random tie-break when filter.OrderByRank is set, random otherwise.
func (r *RecipeRepository) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.RecipeSummary, error) {
	query, args, err := candidatesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	var rows []summarySQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	res := make([]domain.RecipeSummary, len(rows))
	for i, row := range rows {
		res[i] = domain.RecipeSummary{
			ID:          row.ID,
			Name:        row.Name,
			CuisineType: row.CuisineType,
			Difficulty:  domain.Difficulty(row.Difficulty),
			TotalTime:   row.TotalTime,
			Description: row.Description,
		}
	}
	return res, nil
}

// candidatesQuery translates the filter to sql with positional args, slices expanded by sqlx.In
func candidatesQuery(filter domain.CandidateFilter) (string, []any, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT id, name, cuisine_type, difficulty, prep_time + cook_time AS total_time, description
		FROM recipes WHERE 1=1`)

	if len(filter.ExcludeIDs) > 0 {
		sb.WriteString(" AND id NOT IN (?)")
		args = append(args, filter.ExcludeIDs)
	}
	if filter.Cuisine != "" {
		sb.WriteString(" AND LOWER(cuisine_type) = LOWER(?)")
		args = append(args, filter.Cuisine)
	}
	if filter.MaxTotalTime > 0 {
		sb.WriteString(" AND prep_time + cook_time <= ?")
		args = append(args, filter.MaxTotalTime)
	}
	if len(filter.Difficulties) > 0 {
		diffs := make([]string, len(filter.Difficulties))
		for i, d := range filter.Difficulties {
			diffs[i] = string(d)
		}
		sb.WriteString(" AND difficulty IN (?)")
		args = append(args, diffs)
	}

	for _, ex := range filter.Exclusions {
		if len(ex.Keywords) == 0 {
			continue
		}
		sb.WriteString(" AND (")
		if len(ex.ExemptCuisines) > 0 {
			exempt := make([]string, len(ex.ExemptCuisines))
			for i, c := range ex.ExemptCuisines {
				exempt[i] = strings.ToLower(c)
			}
			sb.WriteString("LOWER(cuisine_type) IN (?) OR ")
			args = append(args, exempt)
		}
		sb.WriteString("NOT (")
		for i, kw := range ex.Keywords {
			if i > 0 {
				sb.WriteString(" OR ")
			}
			sb.WriteString("LOWER(name || ' ' || description) LIKE ?")
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
		sb.WriteString("))")
	}

	if filter.OrderByRank {
		sb.WriteString(` ORDER BY CASE difficulty WHEN 'easy' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, cuisine_type, RANDOM()`)
	} else {
		sb.WriteString(" ORDER BY RANDOM()")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	return sqlx.In(sb.String(), args...)
}

// ExcludedIDs returns ids of recipes the user completed
func (r *RecipeRepository) ExcludedIDs(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `SELECT recipe_id FROM user_recipe_progress
		WHERE user_id = ? AND status = ? ORDER BY recipe_id`, userID, string(domain.ProgressCompleted))
	if err != nil {
		return nil, fmt.Errorf("get completed recipes for %s: %w", userID, err)
	}
	return ids, nil
}

// SetProgress stores recipe status for the user, completed_at is kept for completed recipes only
func (r *RecipeRepository) SetProgress(ctx context.Context, userID string, recipeID int64, status domain.ProgressStatus) error {
	if _, err := r.GetRecipe(ctx, recipeID); err != nil {
		return err
	}
	query := `
		INSERT INTO user_recipe_progress (user_id, recipe_id, status, completed_at, updated_at)
		VALUES (?, ?, ?, CASE WHEN ? = 'completed' THEN CURRENT_TIMESTAMP END, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, recipe_id) DO UPDATE SET
			status = excluded.status,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`
	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, userID, recipeID, string(status), string(status)); err != nil {
			return fmt.Errorf("set progress of recipe %d for %s: %w", recipeID, userID, err)
		}
		return nil
	})
}

// MarkCompleted marks the recipe completed for the user, it is excluded from future recommendations
func (r *RecipeRepository) MarkCompleted(ctx context.Context, userID string, recipeID int64) error {
	return r.SetProgress(ctx, userID, recipeID, domain.ProgressCompleted)
}
