package domain

import "time"

// Tier is a level of the filter relaxation cascade
type Tier int

const (
	TierFull          Tier = 1 // all filters applied
	TierRelaxed       Tier = 2 // cuisine only
	TierUnconditional Tier = 3 // completed-recipe exclusion only
)

// String returns tier name for logs
func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierRelaxed:
		return "relaxed"
	case TierUnconditional:
		return "unconditional"
	default:
		return "unknown"
	}
}

// KeywordExclusion rejects recipes whose name or description contains any keyword,
// unless the recipe cuisine is one of ExemptCuisines
type KeywordExclusion struct {
	Keywords       []string
	ExemptCuisines []string
}

// CandidateFilter describes a catalog query produced by one tier
type CandidateFilter struct {
	ExcludeIDs   []int64
	Cuisine      string       // equality, case-insensitive; empty means any
	MaxTotalTime int          // ceiling in minutes; 0 means no ceiling
	Difficulties []Difficulty // allowed set; empty means any
	Exclusions   []KeywordExclusion
	Limit        int
	OrderByRank  bool // difficulty, cuisine, random tie-break; otherwise random
}

// CandidatePool is the ordered set of eligible recipes produced at a tier
type CandidatePool struct {
	Tier    Tier
	Recipes []RecipeSummary
}

// IDs returns pool recipe ids in pool order
func (p CandidatePool) IDs() []int64 {
	res := make([]int64, len(p.Recipes))
	for i, r := range p.Recipes {
		res[i] = r.ID
	}
	return res
}

// Selection is the model's pick over a candidate pool
type Selection struct {
	Profile   string  `json:"profile"`
	RecipeIDs []int64 `json:"recipeIds"`
}

// Recommendation is the unit returned to the caller and stored per user
type Recommendation struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	ProfileText string           `json:"profile_text"`
	Recipes     []RecipeSummary  `json:"recipes"`
	Tier        Tier             `json:"tier"`
	Preferences PreferenceVector `json:"preferences"`
	Degraded    bool             `json:"degraded"` // a model step failed and a fallback was used
	CreatedAt   time.Time        `json:"created_at"`
}

// Contains reports whether the recommendation includes the recipe
func (r Recommendation) Contains(recipeID int64) bool {
	for _, rc := range r.Recipes {
		if rc.ID == recipeID {
			return true
		}
	}
	return false
}

// SelectRequest is the input of the selection step
type SelectRequest struct {
	Pool        CandidatePool
	Answers     ConversationAnswers
	Preferences PreferenceVector
	Profile     UserPreferences
	Count       int      // number of recipes to pick
	Relaxed     []string // human-readable constraints dropped to reach the pool tier
}
