package recommend

import (
	"strings"

	"github.com/umputun/cookscope/pkg/domain"
)

// the catalog carries no dietary tags, so dietary needs are approximated by keyword rules
// over recipe name and description. Trusted cuisines skip the rule, which is a known
// precision gap (e.g. an Asian chicken dish passes the vegetarian rule).

var meatTokens = []string{"chicken", "beef", "pork", "bacon", "pancetta", "lamb", "turkey", "sausage",
	"prosciutto", "chorizo", "veal", "duck", "steak", "meat", "fish", "salmon", "tuna", "shrimp",
	"prawn", "anchov", "crab", "lobster", "clam", "mussel"}

// DietaryRule forbids recipes mentioning any of Forbidden keywords unless
// the recipe cuisine is one of TrustedCuisines
type DietaryRule struct {
	Type            domain.DietaryType
	Forbidden       []string
	TrustedCuisines []string
}

// DietaryRules maps dietary type to its rule
type DietaryRules map[domain.DietaryType]DietaryRule

// DefaultDietaryRules returns the built-in rule table
func DefaultDietaryRules() DietaryRules {
	trusted := []string{"mediterranean", "asian"}
	return DietaryRules{
		domain.DietaryVegetarian: {Type: domain.DietaryVegetarian, Forbidden: meatTokens, TrustedCuisines: trusted},
		domain.DietaryVegan:      {Type: domain.DietaryVegan, Forbidden: meatTokens, TrustedCuisines: trusted},
		domain.DietaryGlutenFree: {Type: domain.DietaryGlutenFree, Forbidden: []string{"pasta", "noodle", "bread", "pizza", "flour",
			"spaghetti", "lasagna", "tortilla", "dough"}},
		domain.DietaryDairyFree: {Type: domain.DietaryDairyFree, Forbidden: []string{"cheese", "cream", "milk", "butter",
			"parmesan", "mozzarella", "yogurt"}},
	}
}

// Exclusions returns keyword exclusions for the dietary type in the context of the requested cuisine.
// Nothing is returned for unknown/none types, or when the requested cuisine itself is trusted.
func (rs DietaryRules) Exclusions(dt domain.DietaryType, cuisine string) []domain.KeywordExclusion {
	rule, ok := rs[dt]
	if !ok || len(rule.Forbidden) == 0 {
		return nil
	}
	if cuisine != "" && rule.trusts(cuisine) {
		return nil
	}
	return []domain.KeywordExclusion{{Keywords: rule.Forbidden, ExemptCuisines: rule.TrustedCuisines}}
}

// Allows checks a single recipe against the rule
func (r DietaryRule) Allows(recipe domain.RecipeSummary) bool {
	return Matches(domain.KeywordExclusion{Keywords: r.Forbidden, ExemptCuisines: r.TrustedCuisines}, recipe)
}

func (r DietaryRule) trusts(cuisine string) bool {
	for _, c := range r.TrustedCuisines {
		if strings.EqualFold(c, cuisine) {
			return true
		}
	}
	return false
}

// Matches reports whether the recipe passes the exclusion, i.e. it is either
// of an exempt cuisine or mentions none of the keywords
func Matches(ex domain.KeywordExclusion, recipe domain.RecipeSummary) bool {
	for _, c := range ex.ExemptCuisines {
		if strings.EqualFold(c, recipe.CuisineType) {
			return true
		}
	}
	text := recipe.Text()
	for _, kw := range ex.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
