package recommend

import "github.com/umputun/cookscope/pkg/domain"

// Guarantee reconciles selected ids with the pool. Ids absent from the pool and duplicates
// are dropped, the rest keep selection order, then the result is backfilled in pool order
// until size is reached or the pool is exhausted.
func Guarantee(sel domain.Selection, pool domain.CandidatePool, size int) []domain.RecipeSummary {
	byID := make(map[int64]domain.RecipeSummary, len(pool.Recipes))
	for _, rc := range pool.Recipes {
		byID[rc.ID] = rc
	}

	res := make([]domain.RecipeSummary, 0, size)
	taken := make(map[int64]bool, size)
	for _, id := range sel.RecipeIDs {
		if len(res) == size {
			break
		}
		rc, ok := byID[id]
		if !ok || taken[id] {
			continue
		}
		res = append(res, rc)
		taken[id] = true
	}

	// backfill
	for _, rc := range pool.Recipes {
		if len(res) == size {
			break
		}
		if taken[rc.ID] {
			continue
		}
		res = append(res, rc)
		taken[rc.ID] = true
	}
	return res
}
