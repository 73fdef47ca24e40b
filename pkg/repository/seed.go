package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/cookscope/pkg/domain"
)

//go:embed recipes.yml
var seedRecipes []byte

// seedFile is the layout of the embedded catalog
type seedFile struct {
	Recipes []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Difficulty  string `yaml:"difficulty"`
		PrepTime    int    `yaml:"prep_time"`
		CookTime    int    `yaml:"cook_time"`
		Servings    int    `yaml:"servings"`
		CuisineType string `yaml:"cuisine_type"`
	} `yaml:"recipes"`
}

// SeedRecipes returns the built-in recipe catalog
func SeedRecipes() ([]domain.Recipe, error) {
	var sf seedFile
	if err := yaml.Unmarshal(seedRecipes, &sf); err != nil {
		return nil, fmt.Errorf("parse seed recipes: %w", err)
	}
	res := make([]domain.Recipe, 0, len(sf.Recipes))
	for _, r := range sf.Recipes {
		d := domain.Difficulty(r.Difficulty)
		if d.Rank() == 0 {
			return nil, fmt.Errorf("seed recipe %q has invalid difficulty %q", r.Name, r.Difficulty)
		}
		res = append(res, domain.Recipe{Name: r.Name, Description: r.Description, Difficulty: d,
			PrepTime: r.PrepTime, CookTime: r.CookTime, Servings: r.Servings, CuisineType: r.CuisineType})
	}
	return res, nil
}

// Seed fills an empty catalog with the built-in recipes, non-empty catalog is left as is.
// Returns number of inserted recipes.
func (r *RecipeRepository) Seed(ctx context.Context) (int, error) {
	count, err := r.CountRecipes(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		lgr.Printf("[DEBUG] catalog has %d recipes, skip seeding", count)
		return 0, nil
	}

	recipes, err := SeedRecipes()
	if err != nil {
		return 0, err
	}
	for i := range recipes {
		if err := r.CreateRecipe(ctx, &recipes[i]); err != nil {
			return i, fmt.Errorf("seed catalog: %w", err)
		}
	}
	lgr.Printf("[INFO] seeded catalog with %d recipes", len(recipes))
	return len(recipes), nil
}
