package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cookscope/pkg/domain"
)

//go:generate moq -out mocks/catalog.go -pkg mocks -skip-ensure -fmt goimports . Catalog
//go:generate moq -out mocks/profile_source.go -pkg mocks -skip-ensure -fmt goimports . ProfileSource

// Catalog provides read access to recipes and per-user exclusions
type Catalog interface {
	ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.RecipeSummary, error)
	ExcludedIDs(ctx context.Context, userID string) ([]int64, error)
}

// Limits holds pool size per tier
type Limits struct {
	Flexible int // tier 1, flexible user
	Strict   int // tier 1, specific user
	Relaxed  int // tier 2
	Fallback int // tier 3
}

// DefaultLimits returns the standard tier limits
func DefaultLimits() Limits {
	return Limits{Flexible: 50, Strict: 20, Relaxed: 5, Fallback: 3}
}

// Resolver builds candidate pools through the full -> relaxed -> unconditional cascade.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	catalog Catalog
	limits  Limits
	rules   DietaryRules
}

// NewResolver makes a resolver with default dietary rules, zero limits fall back to defaults
func NewResolver(catalog Catalog, limits Limits) *Resolver {
	def := DefaultLimits()
	if limits.Flexible <= 0 {
		limits.Flexible = def.Flexible
	}
	if limits.Strict <= 0 {
		limits.Strict = def.Strict
	}
	if limits.Relaxed <= 0 {
		limits.Relaxed = def.Relaxed
	}
	if limits.Fallback <= 0 {
		limits.Fallback = def.Fallback
	}
	return &Resolver{catalog: catalog, limits: limits, rules: DefaultDietaryRules()}
}

// Resolve returns the first non-empty pool of the cascade. The unconditional tier is
// returned even when empty. Lower tiers are queried only if the previous one found nothing.
func (r *Resolver) Resolve(ctx context.Context, vec domain.PreferenceVector, userID string) (domain.CandidatePool, error) {
	excluded, err := r.catalog.ExcludedIDs(ctx, userID)
	if err != nil {
		return domain.CandidatePool{}, fmt.Errorf("get excluded recipes for %s: %w", userID, err)
	}

	for _, tier := range []domain.Tier{domain.TierFull, domain.TierRelaxed, domain.TierUnconditional} {
		recipes, err := r.catalog.ListCandidates(ctx, r.Filter(tier, vec, excluded))
		if err != nil {
			return domain.CandidatePool{}, fmt.Errorf("list %s tier candidates: %w", tier, err)
		}
		recipes = dropExcluded(recipes, excluded)
		if len(recipes) > 0 || tier == domain.TierUnconditional {
			lgr.Printf("[DEBUG] resolved %d candidates for %s at %s tier", len(recipes), userID, tier)
			return domain.CandidatePool{Tier: tier, Recipes: recipes}, nil
		}
		lgr.Printf("[DEBUG] no candidates for %s at %s tier, relaxing", userID, tier)
	}
	return domain.CandidatePool{Tier: domain.TierUnconditional}, nil // unreachable, loop returns on the last tier
}

// Fallback returns the unconditional tier pool directly, skipping stricter tiers
func (r *Resolver) Fallback(ctx context.Context, userID string) (domain.CandidatePool, error) {
	excluded, err := r.catalog.ExcludedIDs(ctx, userID)
	if err != nil {
		return domain.CandidatePool{}, fmt.Errorf("get excluded recipes for %s: %w", userID, err)
	}
	recipes, err := r.catalog.ListCandidates(ctx, r.Filter(domain.TierUnconditional, domain.FlexibleVector(), excluded))
	if err != nil {
		return domain.CandidatePool{}, fmt.Errorf("list fallback candidates: %w", err)
	}
	return domain.CandidatePool{Tier: domain.TierUnconditional, Recipes: dropExcluded(recipes, excluded)}, nil
}

// TopUp samples up to count unconditional recipes not completed by the user and not in chosen
func (r *Resolver) TopUp(ctx context.Context, userID string, chosen []int64, count int) ([]domain.RecipeSummary, error) {
	if count <= 0 {
		return nil, nil
	}
	excluded, err := r.catalog.ExcludedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get excluded recipes for %s: %w", userID, err)
	}
	skip := append(append([]int64{}, excluded...), chosen...)
	filter := domain.CandidateFilter{ExcludeIDs: skip, Limit: count}
	recipes, err := r.catalog.ListCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list top-up candidates: %w", err)
	}
	return dropExcluded(recipes, skip), nil
}

// Filter builds the catalog query for the tier. It is a pure function of its inputs,
// only row order inside a tier is random.
func (r *Resolver) Filter(tier domain.Tier, vec domain.PreferenceVector, excluded []int64) domain.CandidateFilter {
	filter := domain.CandidateFilter{ExcludeIDs: excluded}
	switch tier {
	case domain.TierFull:
		filter.Cuisine = vec.CuisineType
		filter.MaxTotalTime = TimeCeiling(vec.TimeCategory)
		filter.Difficulties = DifficultyLadder(vec.DifficultyLevel)
		filter.Exclusions = r.rules.Exclusions(vec.DietaryType, vec.CuisineType)
		filter.Limit = r.limits.Strict
		if vec.IsFlexible {
			filter.Limit = r.limits.Flexible
			filter.OrderByRank = true
		}
	case domain.TierRelaxed:
		filter.Cuisine = vec.CuisineType
		filter.Limit = r.limits.Relaxed
	default:
		filter.Limit = r.limits.Fallback
	}
	return filter
}

// TimeCeiling maps time category to the max total minutes, 0 means no ceiling
func TimeCeiling(tc domain.TimeCategory) int {
	switch tc {
	case domain.TimeUnder30:
		return 35
	case domain.Time30To60:
		return 65
	default:
		return 0
	}
}

// DifficultyLadder returns the cumulative set of difficulties allowed for the requested level
func DifficultyLadder(d domain.Difficulty) []domain.Difficulty {
	switch d {
	case domain.DifficultyEasy:
		return []domain.Difficulty{domain.DifficultyEasy}
	case domain.DifficultyMedium:
		return []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium}
	case domain.DifficultyHard:
		return []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard}
	default:
		return nil
	}
}

// RelaxedConstraints lists the user constraints dropped by the relaxed tier
func RelaxedConstraints(vec domain.PreferenceVector) []string {
	var res []string
	if vec.TimeCategory != "" && TimeCeiling(vec.TimeCategory) > 0 {
		res = append(res, "cooking time")
	}
	if vec.DifficultyLevel != "" && vec.DifficultyLevel != domain.DifficultyHard {
		res = append(res, "difficulty")
	}
	if vec.DietaryType.Restrictive() {
		res = append(res, strings.ReplaceAll(string(vec.DietaryType), "_", "-")+" diet")
	}
	return res
}

func dropExcluded(recipes []domain.RecipeSummary, excluded []int64) []domain.RecipeSummary {
	if len(excluded) == 0 {
		return recipes
	}
	skip := make(map[int64]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	res := make([]domain.RecipeSummary, 0, len(recipes))
	for _, rc := range recipes {
		if !skip[rc.ID] {
			res = append(res, rc)
		}
	}
	return res
}
