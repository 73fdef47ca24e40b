package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/cookscope/pkg/domain"
)

func TestDietaryRule_Allows(t *testing.T) {
	rules := DefaultDietaryRules()

	tests := []struct {
		name    string
		dietary domain.DietaryType
		recipe  domain.RecipeSummary
		want    bool
	}{
		{name: "vegetarian rejects carbonara", dietary: domain.DietaryVegetarian,
			recipe: domain.RecipeSummary{Name: "Spaghetti Carbonara", CuisineType: "Italian",
				Description: "pasta with eggs, cheese, pancetta"}, want: false},
		{name: "vegetarian allows margherita", dietary: domain.DietaryVegetarian,
			recipe: domain.RecipeSummary{Name: "Margherita Pizza", CuisineType: "Italian",
				Description: "tomato, mozzarella and basil"}, want: true},
		{name: "vegetarian trusts asian cuisine", dietary: domain.DietaryVegetarian,
			recipe: domain.RecipeSummary{Name: "Chicken Stir Fry", CuisineType: "Asian"}, want: true},
		{name: "vegan uses the same meat tokens", dietary: domain.DietaryVegan,
			recipe: domain.RecipeSummary{Name: "Beef Tacos", CuisineType: "Mexican"}, want: false},
		{name: "match is case insensitive", dietary: domain.DietaryVegetarian,
			recipe: domain.RecipeSummary{Name: "Grilled SALMON", CuisineType: "French"}, want: false},
		{name: "gluten free rejects pasta", dietary: domain.DietaryGlutenFree,
			recipe: domain.RecipeSummary{Name: "Pasta Primavera", CuisineType: "Italian"}, want: false},
		{name: "gluten free has no trusted cuisines", dietary: domain.DietaryGlutenFree,
			recipe: domain.RecipeSummary{Name: "Sesame Noodles", CuisineType: "Asian"}, want: false},
		{name: "gluten free allows rice", dietary: domain.DietaryGlutenFree,
			recipe: domain.RecipeSummary{Name: "Veggie Fried Rice", CuisineType: "Asian"}, want: true},
		{name: "dairy free rejects butter in description", dietary: domain.DietaryDairyFree,
			recipe: domain.RecipeSummary{Name: "Butter Chicken", CuisineType: "Indian"}, want: false},
		{name: "dairy free allows salsa", dietary: domain.DietaryDairyFree,
			recipe: domain.RecipeSummary{Name: "Fresh Salsa", CuisineType: "Mexican", Description: "tomato and lime"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := rules[tt.dietary]
			assert.True(t, ok)
			assert.Equal(t, tt.want, rule.Allows(tt.recipe))
		})
	}
}

func TestDietaryRules_Exclusions(t *testing.T) {
	rules := DefaultDietaryRules()

	t.Run("no rule for none and empty", func(t *testing.T) {
		assert.Empty(t, rules.Exclusions(domain.DietaryNone, ""))
		assert.Empty(t, rules.Exclusions("", "Italian"))
	})

	t.Run("trusted requested cuisine skips vegetarian rule", func(t *testing.T) {
		assert.Empty(t, rules.Exclusions(domain.DietaryVegetarian, "mediterranean"))
		assert.Empty(t, rules.Exclusions(domain.DietaryVegan, "Asian"))
	})

	t.Run("untrusted cuisine keeps rule with exemptions", func(t *testing.T) {
		ex := rules.Exclusions(domain.DietaryVegetarian, "Italian")
		assert.Len(t, ex, 1)
		assert.Contains(t, ex[0].Keywords, "chicken")
		assert.ElementsMatch(t, []string{"mediterranean", "asian"}, ex[0].ExemptCuisines)
	})

	t.Run("gluten free ignores cuisine", func(t *testing.T) {
		ex := rules.Exclusions(domain.DietaryGlutenFree, "Asian")
		assert.Len(t, ex, 1)
		assert.Subset(t, ex[0].Keywords, []string{"pasta", "noodle", "bread", "pizza", "flour", "tortilla"})
		assert.Empty(t, ex[0].ExemptCuisines)
	})

	t.Run("custom rule is picked up", func(t *testing.T) {
		custom := DietaryRules{domain.DietaryDairyFree: {Type: domain.DietaryDairyFree, Forbidden: []string{"ghee"}}}
		ex := custom.Exclusions(domain.DietaryDairyFree, "")
		assert.Equal(t, []domain.KeywordExclusion{{Keywords: []string{"ghee"}}}, ex)
	})
}
