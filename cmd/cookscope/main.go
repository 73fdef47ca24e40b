package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/cookscope/pkg/cache"
	"github.com/umputun/cookscope/pkg/config"
	"github.com/umputun/cookscope/pkg/llm"
	"github.com/umputun/cookscope/pkg/recommend"
	"github.com/umputun/cookscope/pkg/repository"
	"github.com/umputun/cookscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	NoSeed bool   `long:"no-seed" env:"NO_SEED" description:"don't fill empty catalog with built-in recipes"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// pruneInterval is how often expired recommendations are removed from local stores
const pruneInterval = time.Hour

var revision = "unknown"

// pruner is implemented by stores keeping expired recommendations until removed
type pruner interface {
	Prune(ctx context.Context) (int64, error)
}

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting cookscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires all components and blocks until the context is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if cfg.LLM.APIKey != "" || cfg.Store.Valkey.Password != "" {
		SetupLog(opts.Debug, secrets(cfg.LLM.APIKey, cfg.Store.Valkey.Password)...)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:               cfg.Database.DSN,
		MaxOpenConns:      cfg.Database.MaxOpenConns,
		MaxIdleConns:      cfg.Database.MaxIdleConns,
		ConnMaxLifetime:   time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		RecommendationTTL: cfg.Store.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if !opts.NoSeed {
		n, err := repos.Recipe.Seed(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		if n > 0 {
			log.Printf("[INFO] seeded catalog with %d recipes", n)
		}
	}

	store, err := makeStore(ctx, cfg, repos)
	if err != nil {
		return err
	}

	advisor := llm.NewAdvisor(cfg.GetLLMConfig())
	recommender := recommend.NewRecommender(recommend.Params{
		Normalizer: advisor,
		Selector:   advisor,
		Catalog:    repos.Recipe,
		Profiles:   repos.Profile,
		Limits: recommend.Limits{
			Flexible: cfg.Recommend.FlexibleLimit,
			Strict:   cfg.Recommend.StrictLimit,
			Relaxed:  cfg.Recommend.RelaxedLimit,
			Fallback: cfg.Recommend.FallbackLimit,
		},
		ResultSize: cfg.Recommend.ResultSize,
	})

	srv := server.New(cfg, server.Deps{
		Recommender: recommender,
		Store:       store,
		Progress:    repos.Recipe,
		Profiles:    repos.Profile,
	}, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if p, ok := store.(pruner); ok {
		g.Go(func() error {
			runPruner(gctx, p, pruneInterval)
			return nil
		})
	}
	return g.Wait()
}

// makeStore creates recommendation store for the configured backend
func makeStore(ctx context.Context, cfg *config.Config, repos *repository.Repositories) (server.RecommendationStore, error) {
	switch cfg.Store.Type {
	case "valkey":
		client, err := cache.NewValkeyClient(ctx, cfg.Store.Valkey)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to valkey: %w", err)
		}
		log.Printf("[INFO] recommendations stored in valkey at %s", cfg.Store.Valkey.Address)
		return cache.NewValkeyStore(client, cfg.Store.Valkey.Prefix, cfg.Store.TTL), nil
	case "memory":
		log.Printf("[INFO] recommendations stored in memory, ttl %v", cfg.Store.TTL)
		return cache.NewMemoryStore(cfg.Store.TTL), nil
	default:
		log.Printf("[INFO] recommendations stored in database, ttl %v", cfg.Store.TTL)
		return repos.Recommendation, nil
	}
}

// runPruner removes expired recommendations on every tick until the context is done
func runPruner(ctx context.Context, p pruner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Prune(ctx)
			if err != nil {
				log.Printf("[WARN] failed to prune recommendations: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[DEBUG] pruned %d expired recommendations", n)
			}
		}
	}
}

// secrets returns non-empty values to be masked in logs
func secrets(vals ...string) []string {
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}

// SetupLog configures lgr and redirects the standard logger to it
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
