package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cookscope/pkg/cache"
	"github.com/umputun/cookscope/pkg/config"
	"github.com/umputun/cookscope/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: configPath})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: filepath.Join(wd, "testdata", "test_config.yml")}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, opts)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 3*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:18765/api/v1/users/alice/recommendation")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "nothing stored for a new user")

	cancel()

	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Error("server shutdown timeout")
	}
}

func TestMakeStore(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	t.Run("sqlite", func(t *testing.T) {
		store, err := makeStore(context.Background(), &config.Config{Store: config.StoreConfig{Type: "sqlite"}}, repos)
		require.NoError(t, err)
		assert.IsType(t, &repository.RecommendationRepository{}, store)
	})

	t.Run("memory", func(t *testing.T) {
		store, err := makeStore(context.Background(), &config.Config{Store: config.StoreConfig{Type: "memory"}}, repos)
		require.NoError(t, err)
		assert.IsType(t, &cache.MemoryStore{}, store)
	})

	t.Run("valkey unreachable", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Type: "valkey",
			Valkey: config.ValkeyConfig{Address: "ftp://127.0.0.1:1"}}}
		_, err := makeStore(context.Background(), cfg, repos)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to valkey")
	})
}

type pruneCounter struct {
	calls atomic.Int32
}

func (p *pruneCounter) Prune(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestRunPruner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &pruneCounter{}
	done := make(chan struct{})
	go func() {
		runPruner(ctx, p, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner didn't stop")
	}
}

func TestSecrets(t *testing.T) {
	assert.Equal(t, []string{"key"}, secrets("key", ""))
	assert.Empty(t, secrets("", ""))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "secret2")
	})

	t.Run("no color mode", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		SetupLog(false)
	})
}
