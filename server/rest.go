package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/cookscope/pkg/domain"
)

const maxUserIDLen = 128

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// recommendHandler makes a new recommendation from conversation answers and stores it for the user
func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := userParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var answers domain.ConversationAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if answers.Empty() {
		renderError(w, r, domain.ErrEmptyAnswers, http.StatusBadRequest)
		return
	}

	// two model calls may outlast the server timeouts. the body is read at this point, so the read
	// deadline is lifted to keep the request context alive, and the response gets a fresh write window.
	rc := http.NewResponseController(w)
	setDeadline(rc.SetReadDeadline, time.Time{})

	rec, err := s.recommender.Recommend(ctx, userID, answers)
	_, timeout := s.config.GetServerConfig()
	setDeadline(rc.SetWriteDeadline, time.Now().Add(timeout))
	if err != nil {
		log.Printf("[ERROR] failed to make recommendation for %s: %v", userID, err)
		renderError(w, r, err, errorCode(err))
		return
	}

	if err := s.store.Save(ctx, rec); err != nil {
		log.Printf("[WARN] failed to store recommendation for %s: %v", userID, err)
	}

	// personalized tiers teach the long-term profile
	if rec.Tier != domain.TierUnconditional && !rec.Preferences.IsFlexible {
		if err := s.profiles.SaveOverride(ctx, userID, rec.Preferences.LongTerm()); err != nil {
			log.Printf("[WARN] failed to save preference override for %s: %v", userID, err)
		}
	}

	log.Printf("[INFO] recommended %d recipes to %s, tier %s, degraded %v", len(rec.Recipes), userID, rec.Tier, rec.Degraded)
	renderJSON(w, r, http.StatusOK, rec)
}

// getRecommendationHandler returns the stored recommendation of the user
func (s *Server) getRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	rec, err := s.store.Get(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[ERROR] failed to get recommendation for %s: %v", userID, err)
		}
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, rec)
}

// resetHandler drops the stored recommendation and learned preferences of the user
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := userParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		log.Printf("[ERROR] failed to delete recommendation for %s: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if err := s.profiles.ResetOverride(ctx, userID); err != nil {
		log.Printf("[ERROR] failed to reset preferences for %s: %v", userID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	log.Printf("[INFO] reset recommendation and preferences for %s", userID)
	w.WriteHeader(http.StatusNoContent)
}

// completeHandler marks recipe completed and drops the stored recommendation if it has this recipe
func (s *Server) completeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := userParam(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	recipeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || recipeID <= 0 {
		renderError(w, r, errors.New("invalid recipe ID"), http.StatusBadRequest)
		return
	}

	if err := s.progress.MarkCompleted(ctx, userID, recipeID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[ERROR] failed to mark recipe %d completed for %s: %v", recipeID, userID, err)
		}
		renderError(w, r, err, errorCode(err))
		return
	}

	invalidated, err := s.invalidate(ctx, userID, recipeID)
	if err != nil {
		log.Printf("[WARN] failed to invalidate recommendation for %s: %v", userID, err)
	}

	renderJSON(w, r, http.StatusOK, map[string]any{"recipe_id": recipeID, "status": domain.ProgressCompleted,
		"invalidated": invalidated})
}

// invalidate deletes the stored recommendation when it contains the recipe
func (s *Server) invalidate(ctx context.Context, userID string, recipeID int64) (bool, error) {
	rec, err := s.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !rec.Contains(recipeID) {
		return false, nil
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

// setDeadline applies connection deadline, writers without deadline support are left as is
func setDeadline(set func(time.Time) error, deadline time.Time) {
	if err := set(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Printf("[WARN] can't set connection deadline: %v", err)
	}
}

// userParam returns validated user id from the path
func userParam(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.PathValue("user"))
	if userID == "" || len(userID) > maxUserIDLen {
		return "", domain.ErrInvalidUser
	}
	return userID, nil
}

// errorCode maps domain errors to http status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidUser), errors.Is(err, domain.ErrEmptyAnswers):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
