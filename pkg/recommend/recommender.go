package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/cookscope/pkg/domain"
)

//go:generate moq -out mocks/normalizer.go -pkg mocks -skip-ensure -fmt goimports . Normalizer
//go:generate moq -out mocks/selector.go -pkg mocks -skip-ensure -fmt goimports . Selector

// Normalizer turns free-text answers into a preference vector
type Normalizer interface {
	Normalize(ctx context.Context, answers domain.ConversationAnswers) (domain.PreferenceVector, error)
}

// Selector picks and justifies recipes from a candidate pool
type Selector interface {
	Select(ctx context.Context, req domain.SelectRequest) (domain.Selection, error)
}

// ProfileSource provides long-term user preferences
type ProfileSource interface {
	GetLongTermPreferences(ctx context.Context, userID string) (domain.UserPreferences, error)
}

const (
	fallbackProfile = "Here are a few recipes you haven't cooked yet. Tell us a bit more about your taste " +
		"next time and we'll narrow things down."
	matchedProfile   = "These recipes match the answers you gave us."
	relaxedProfile   = "We couldn't find an exact match, so we relaxed your %s preference and kept the rest."
	broadenedProfile = "We couldn't find an exact match, so we broadened the search around your main preference."
)

// Recommender runs the recommendation pipeline: normalize, resolve, select, guarantee.
// Model failures never fail the request, they degrade to fallback tiers.
type Recommender struct {
	normalizer Normalizer
	selector   Selector
	resolver   *Resolver
	profiles   ProfileSource
	size       int
	now        func() time.Time
}

// Params holds Recommender dependencies
type Params struct {
	Normalizer Normalizer
	Selector   Selector
	Catalog    Catalog
	Profiles   ProfileSource
	Limits     Limits
	ResultSize int // defaults to 3
}

// NewRecommender makes a recommender from params
func NewRecommender(p Params) *Recommender {
	size := p.ResultSize
	if size <= 0 {
		size = 3
	}
	return &Recommender{
		normalizer: p.Normalizer,
		selector:   p.Selector,
		resolver:   NewResolver(p.Catalog, p.Limits),
		profiles:   p.Profiles,
		size:       size,
		now:        time.Now,
	}
}

// Recommend resolves conversation answers to a recommendation for the user.
// Errors are returned only for catalog failures and cancellation.
func (r *Recommender) Recommend(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Recommendation{}, domain.ErrInvalidUser
	}

	vec, err := r.normalizer.Normalize(ctx, answers)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Recommendation{}, ctxErr
		}
		lgr.Printf("[WARN] can't normalize answers for %s, falling back to unconditional tier: %v", userID, err)
		return r.fallback(ctx, userID)
	}
	vec = vec.Normalized()

	pool, err := r.resolver.Resolve(ctx, vec, userID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("resolve candidates: %w", err)
	}

	rec := r.newRecommendation(userID, pool.Tier, vec)
	if pool.Tier == domain.TierUnconditional {
		rec.ProfileText = fallbackProfile
		rec.Recipes = Guarantee(domain.Selection{}, pool, r.size)
		return rec, nil
	}

	sel, err := r.selector.Select(ctx, r.selectRequest(ctx, userID, answers, vec, pool))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Recommendation{}, ctxErr
		}
		lgr.Printf("[WARN] can't select recipes for %s from %d candidates, using pool order: %v", userID, len(pool.Recipes), err)
		sel = domain.Selection{}
		rec.Degraded = true
	}

	rec.ProfileText = strings.TrimSpace(sel.Profile)
	if rec.ProfileText == "" {
		rec.ProfileText = templateProfile(pool.Tier, vec)
	}
	rec.Recipes = Guarantee(sel, pool, r.size)

	if missing := r.size - len(rec.Recipes); missing > 0 {
		chosen := make([]int64, len(rec.Recipes))
		for i, rc := range rec.Recipes {
			chosen[i] = rc.ID
		}
		extra, err := r.resolver.TopUp(ctx, userID, chosen, missing)
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("top up recommendation: %w", err)
		}
		lgr.Printf("[DEBUG] topped up recommendation for %s with %d unconditional recipes", userID, len(extra))
		rec.Recipes = append(rec.Recipes, extra...)
	}
	return rec, nil
}

// fallback makes the unconditional recommendation used when normalization fails
func (r *Recommender) fallback(ctx context.Context, userID string) (domain.Recommendation, error) {
	pool, err := r.resolver.Fallback(ctx, userID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("resolve fallback candidates: %w", err)
	}
	rec := r.newRecommendation(userID, domain.TierUnconditional, domain.FlexibleVector())
	rec.ProfileText = fallbackProfile
	rec.Recipes = Guarantee(domain.Selection{}, pool, r.size)
	rec.Degraded = true
	return rec, nil
}

func (r *Recommender) selectRequest(ctx context.Context, userID string, answers domain.ConversationAnswers,
	vec domain.PreferenceVector, pool domain.CandidatePool) domain.SelectRequest {
	req := domain.SelectRequest{Pool: pool, Answers: answers, Preferences: vec, Count: r.size}
	if pool.Tier == domain.TierRelaxed {
		req.Relaxed = RelaxedConstraints(vec)
	}
	if r.profiles == nil {
		return req
	}
	profile, err := r.profiles.GetLongTermPreferences(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		lgr.Printf("[WARN] can't get long-term preferences for %s: %v", userID, err)
	}
	req.Profile = profile
	return req
}

func (r *Recommender) newRecommendation(userID string, tier domain.Tier, vec domain.PreferenceVector) domain.Recommendation {
	return domain.Recommendation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Tier:        tier,
		Preferences: vec,
		CreatedAt:   r.now().UTC(),
	}
}

// templateProfile is the non-personalized profile used when the model gives none
func templateProfile(tier domain.Tier, vec domain.PreferenceVector) string {
	if tier != domain.TierRelaxed {
		return matchedProfile
	}
	relaxed := RelaxedConstraints(vec)
	if len(relaxed) == 0 {
		return broadenedProfile
	}
	return fmt.Sprintf(relaxedProfile, strings.Join(relaxed, " and "))
}
