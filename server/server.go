package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/cookscope/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/recommender.go -pkg mocks -skip-ensure -fmt goimports . Recommender
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . RecommendationStore
//go:generate moq -out mocks/progress.go -pkg mocks -skip-ensure -fmt goimports . ProgressTracker
//go:generate moq -out mocks/profiles.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore

// Server represents HTTP server instance
type Server struct {
	config      ConfigProvider
	recommender Recommender
	store       RecommendationStore
	progress    ProgressTracker
	profiles    ProfileStore
	version     string
	debug       bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Recommender makes recommendations from conversation answers
type Recommender interface {
	Recommend(ctx context.Context, userID string, answers domain.ConversationAnswers) (domain.Recommendation, error)
}

// RecommendationStore keeps the last recommendation per user
type RecommendationStore interface {
	Get(ctx context.Context, userID string) (domain.Recommendation, error)
	Save(ctx context.Context, rec domain.Recommendation) error
	Delete(ctx context.Context, userID string) error
}

// ProgressTracker records recipes cooked by users
type ProgressTracker interface {
	MarkCompleted(ctx context.Context, userID string, recipeID int64) error
}

// ProfileStore keeps long-term preferences learned from conversations
type ProfileStore interface {
	SaveOverride(ctx context.Context, userID string, prefs domain.UserPreferences) error
	ResetOverride(ctx context.Context, userID string) error
}

// Deps holds server dependencies
type Deps struct {
	Recommender Recommender
	Store       RecommendationStore
	Progress    ProgressTracker
	Profiles    ProfileStore
}

// New initializes a new server instance
func New(cfg ConfigProvider, deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:      cfg,
		recommender: deps.Recommender,
		store:       deps.Store,
		progress:    deps.Progress,
		profiles:    deps.Profiles,
		version:     version,
		debug:       debug,
		router:      routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cookscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // answers are short
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /users/{user}/recommendation", s.recommendHandler)
		r.HandleFunc("GET /users/{user}/recommendation", s.getRecommendationHandler)
		r.HandleFunc("DELETE /users/{user}/recommendation", s.resetHandler)
		r.HandleFunc("POST /users/{user}/recipes/{id}/complete", s.completeHandler)
	})
}
