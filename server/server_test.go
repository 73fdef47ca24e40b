package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cookscope/pkg/domain"
	"github.com/umputun/cookscope/server/mocks"
)

// testDeps returns mocks with happy-path behavior, tests override what they need
func testDeps() (Deps, *mocks.RecommenderMock, *mocks.RecommendationStoreMock, *mocks.ProgressTrackerMock, *mocks.ProfileStoreMock) {
	rec := &mocks.RecommenderMock{
		RecommendFunc: func(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error) {
			return domain.Recommendation{ID: "r1", UserID: userID, ProfileText: "You like Italian food.", Tier: domain.TierFull,
				Recipes:     []domain.RecipeSummary{{ID: 1, Name: "Carbonara"}, {ID: 4, Name: "Pizza"}, {ID: 7, Name: "Risotto"}},
				Preferences: domain.PreferenceVector{CuisineType: "Italian", DifficultyLevel: domain.DifficultyEasy}}, nil
		},
	}
	store := &mocks.RecommendationStoreMock{
		GetFunc: func(ctx context.Context, userID string) (domain.Recommendation, error) {
			return domain.Recommendation{}, domain.ErrNotFound
		},
		SaveFunc:   func(ctx context.Context, rec domain.Recommendation) error { return nil },
		DeleteFunc: func(ctx context.Context, userID string) error { return nil },
	}
	progress := &mocks.ProgressTrackerMock{
		MarkCompletedFunc: func(ctx context.Context, userID string, recipeID int64) error { return nil },
	}
	profiles := &mocks.ProfileStoreMock{
		SaveOverrideFunc:  func(ctx context.Context, userID string, prefs domain.UserPreferences) error { return nil },
		ResetOverrideFunc: func(ctx context.Context, userID string) error { return nil },
	}
	return Deps{Recommender: rec, Store: store, Progress: progress, Profiles: profiles}, rec, store, progress, profiles
}

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
	}
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_New(t *testing.T) {
	deps, _, _, _, _ := testDeps()
	srv := New(testConfig(), deps, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	deps, _, _, _, _ := testDeps()
	srv := New(cfg, deps, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_SlowRecommendationDelivered(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	// recommendation takes longer than the server timeouts, as two slow model calls would
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), time.Second
		},
	}
	deps, rec, _, _, _ := testDeps()
	rec.RecommendFunc = func(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error) {
		select {
		case <-ctx.Done():
			return domain.Recommendation{}, ctx.Err()
		case <-time.After(1500 * time.Millisecond):
		}
		return domain.Recommendation{ID: "r1", UserID: userID, Tier: domain.TierFull, Degraded: true,
			Recipes: []domain.RecipeSummary{{ID: 1, Name: "Carbonara"}}}, nil
	}
	srv := New(cfg, deps, "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/api/v1/users/u1/recommendation", port),
		"application/json", strings.NewReader(`{"mood":"italian","time":"quick"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "r1", got.ID)
	require.Len(t, got.Recipes, 1)
	assert.Equal(t, "Carbonara", got.Recipes[0].Name)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_statusHandler(t *testing.T) {
	deps, _, _, _, _ := testDeps()
	srv := New(testConfig(), deps, "1.2.3", false)

	w := serve(srv, "GET", "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "cookscope", w.Header().Get("App-Name"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestServer_recommendHandler(t *testing.T) {
	body := `{"mood":"italian","time":"20 minutes","skill":"beginner","dietary":"none"}`

	t.Run("success", func(t *testing.T) {
		deps, rec, store, _, profiles := testDeps()
		srv := New(testConfig(), deps, "test", false)

		w := serve(srv, "POST", "/api/v1/users/u1/recommendation", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp domain.Recommendation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "r1", resp.ID)
		assert.Len(t, resp.Recipes, 3)

		require.Len(t, rec.RecommendCalls(), 1)
		assert.Equal(t, "u1", rec.RecommendCalls()[0].UserID)
		assert.Equal(t, "italian", rec.RecommendCalls()[0].Answers.Mood)

		require.Len(t, store.SaveCalls(), 1)
		assert.Equal(t, "r1", store.SaveCalls()[0].Rec.ID)

		require.Len(t, profiles.SaveOverrideCalls(), 1)
		assert.Equal(t, domain.UserPreferences{SkillLevel: "easy", FavoriteCuisine: "Italian"},
			profiles.SaveOverrideCalls()[0].Prefs)
	})

	t.Run("unconditional tier doesn't touch profile", func(t *testing.T) {
		deps, rec, _, _, profiles := testDeps()
		rec.RecommendFunc = func(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error) {
			return domain.Recommendation{ID: "r2", UserID: userID, Tier: domain.TierUnconditional, Degraded: true}, nil
		}
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recommendation", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, profiles.SaveOverrideCalls())
	})

	t.Run("store failure still returns recommendation", func(t *testing.T) {
		deps, _, store, _, _ := testDeps()
		store.SaveFunc = func(ctx context.Context, rec domain.Recommendation) error { return errors.New("db locked") }
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recommendation", body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad requests", func(t *testing.T) {
		deps, rec, _, _, _ := testDeps()
		srv := New(testConfig(), deps, "test", false)

		w := serve(srv, "POST", "/api/v1/users/u1/recommendation", "{bad json")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = serve(srv, "POST", "/api/v1/users/u1/recommendation", `{"mood":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "conversation answers are empty")

		w = serve(srv, "POST", "/api/v1/users/"+strings.Repeat("x", 200)+"/recommendation", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		assert.Empty(t, rec.RecommendCalls())
	})

	t.Run("recommender failure", func(t *testing.T) {
		deps, rec, store, _, _ := testDeps()
		rec.RecommendFunc = func(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error) {
			return domain.Recommendation{}, errors.New("resolve candidates: disk I/O error")
		}
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recommendation", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, store.SaveCalls())
	})
}

func TestServer_getRecommendationHandler(t *testing.T) {
	deps, _, store, _, _ := testDeps()
	srv := New(testConfig(), deps, "test", false)

	w := serve(srv, "GET", "/api/v1/users/u1/recommendation", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	store.GetFunc = func(ctx context.Context, userID string) (domain.Recommendation, error) {
		return domain.Recommendation{ID: "r9", UserID: userID}, nil
	}
	w = serve(srv, "GET", "/api/v1/users/u1/recommendation", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "r9", resp.ID)

	store.GetFunc = func(ctx context.Context, userID string) (domain.Recommendation, error) {
		return domain.Recommendation{}, errors.New("connection refused")
	}
	w = serve(srv, "GET", "/api/v1/users/u1/recommendation", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_resetHandler(t *testing.T) {
	deps, _, store, _, profiles := testDeps()
	srv := New(testConfig(), deps, "test", false)

	w := serve(srv, "DELETE", "/api/v1/users/u1/recommendation", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, store.DeleteCalls(), 1)
	assert.Equal(t, "u1", store.DeleteCalls()[0].UserID)
	require.Len(t, profiles.ResetOverrideCalls(), 1)

	profiles.ResetOverrideFunc = func(ctx context.Context, userID string) error { return errors.New("locked") }
	w = serve(srv, "DELETE", "/api/v1/users/u1/recommendation", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_completeHandler(t *testing.T) {
	t.Run("invalidates recommendation with the recipe", func(t *testing.T) {
		deps, _, store, progress, _ := testDeps()
		store.GetFunc = func(ctx context.Context, userID string) (domain.Recommendation, error) {
			return domain.Recommendation{UserID: userID, Recipes: []domain.RecipeSummary{{ID: 3}, {ID: 5}}}, nil
		}
		srv := New(testConfig(), deps, "test", false)

		w := serve(srv, "POST", "/api/v1/users/u1/recipes/5/complete", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["invalidated"])
		assert.Equal(t, "completed", resp["status"])

		require.Len(t, progress.MarkCompletedCalls(), 1)
		assert.Equal(t, int64(5), progress.MarkCompletedCalls()[0].RecipeID)
		assert.Len(t, store.DeleteCalls(), 1)
	})

	t.Run("keeps recommendation without the recipe", func(t *testing.T) {
		deps, _, store, _, _ := testDeps()
		store.GetFunc = func(ctx context.Context, userID string) (domain.Recommendation, error) {
			return domain.Recommendation{UserID: userID, Recipes: []domain.RecipeSummary{{ID: 3}}}, nil
		}
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recipes/5/complete", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"invalidated":false`)
		assert.Empty(t, store.DeleteCalls())
	})

	t.Run("unknown recipe", func(t *testing.T) {
		deps, _, _, progress, _ := testDeps()
		progress.MarkCompletedFunc = func(ctx context.Context, userID string, recipeID int64) error {
			return fmt.Errorf("recipe %d: %w", recipeID, domain.ErrNotFound)
		}
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recipes/999/complete", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid recipe id", func(t *testing.T) {
		deps, _, _, progress, _ := testDeps()
		srv := New(testConfig(), deps, "test", false)
		w := serve(srv, "POST", "/api/v1/users/u1/recipes/abc/complete", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = serve(srv, "POST", "/api/v1/users/u1/recipes/-1/complete", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, progress.MarkCompletedCalls())
	})
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errorCode(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, errorCode(domain.ErrInvalidUser))
	assert.Equal(t, http.StatusBadRequest, errorCode(domain.ErrEmptyAnswers))
	assert.Equal(t, http.StatusGatewayTimeout, errorCode(fmt.Errorf("x: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, errorCode(errors.New("boom")))
}
