package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database  DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	LLM       LLMConfig       `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for preference normalization and recipe selection"`
	Recommend RecommendConfig `yaml:"recommend" json:"recommend" jsonschema:"description=Candidate resolution settings"`
	Store     StoreConfig     `yaml:"store" json:"store" jsonschema:"description=Per-user recommendation store"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout, must exceed two model calls"`
}

// DatabaseConfig holds catalog database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:cookscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// LLMConfig holds settings of the OpenAI-compatible model used by normalizer and selector
type LLMConfig struct {
	Endpoint            string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey              string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model               string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature         float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for specific preferences"`
	FlexibleTemperature float64       `yaml:"flexible_temperature" json:"flexible_temperature" jsonschema:"default=0.9,description=Temperature used when the user is flexible"`
	MaxTokens           int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=600,description=Maximum tokens in response"`
	Timeout             time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Timeout of a single model call"`
	UseJSONMode         bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
}

// RecommendConfig holds tier limits of the candidate cascade
type RecommendConfig struct {
	FlexibleLimit int `yaml:"flexible_limit" json:"flexible_limit" jsonschema:"default=50,minimum=1,description=Tier 1 pool size for flexible users"`
	StrictLimit   int `yaml:"strict_limit" json:"strict_limit" jsonschema:"default=20,minimum=1,description=Tier 1 pool size for specific users"`
	RelaxedLimit  int `yaml:"relaxed_limit" json:"relaxed_limit" jsonschema:"default=5,minimum=1,description=Tier 2 pool size"`
	FallbackLimit int `yaml:"fallback_limit" json:"fallback_limit" jsonschema:"default=3,minimum=1,description=Tier 3 pool size"`
	ResultSize    int `yaml:"result_size" json:"result_size" jsonschema:"default=3,minimum=1,description=Number of recipes in a recommendation"`
}

// StoreConfig selects the recommendation store backend
type StoreConfig struct {
	Type   string        `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=valkey,enum=memory,description=Recommendation store backend"`
	TTL    time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=168h,description=How long a stored recommendation stays valid"`
	Valkey ValkeyConfig  `yaml:"valkey" json:"valkey" jsonschema:"description=Valkey settings when type is valkey"`
}

// ValkeyConfig holds valkey connection settings
type ValkeyConfig struct {
	Address  string `yaml:"address" json:"address" jsonschema:"default=localhost:6379,description=Valkey server address"`
	Password string `yaml:"password" json:"password" jsonschema:"description=Valkey password"`
	Prefix   string `yaml:"prefix" json:"prefix" jsonschema:"default=cookscope,description=Key prefix"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 60 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:cookscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.FlexibleTemperature == 0 {
		c.LLM.FlexibleTemperature = 0.9
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 600
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 20 * time.Second
	}

	// tier limits
	if c.Recommend.FlexibleLimit == 0 {
		c.Recommend.FlexibleLimit = 50
	}
	if c.Recommend.StrictLimit == 0 {
		c.Recommend.StrictLimit = 20
	}
	if c.Recommend.RelaxedLimit == 0 {
		c.Recommend.RelaxedLimit = 5
	}
	if c.Recommend.FallbackLimit == 0 {
		c.Recommend.FallbackLimit = 3
	}
	if c.Recommend.ResultSize == 0 {
		c.Recommend.ResultSize = 3
	}

	// store
	if c.Store.Type == "" {
		c.Store.Type = "sqlite"
	}
	if c.Store.TTL == 0 {
		c.Store.TTL = 7 * 24 * time.Hour
	}
	if c.Store.Valkey.Address == "" {
		c.Store.Valkey.Address = "localhost:6379"
	}
	if c.Store.Valkey.Prefix == "" {
		c.Store.Valkey.Prefix = "cookscope"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.FlexibleTemperature < 0 || cfg.LLM.FlexibleTemperature > 2 {
		return fmt.Errorf("llm.flexible_temperature must be between 0 and 2")
	}
	if cfg.LLM.Timeout < time.Second {
		return fmt.Errorf("llm.timeout must be at least 1 second")
	}

	// validate tier limits
	if cfg.Recommend.FlexibleLimit < 1 || cfg.Recommend.StrictLimit < 1 ||
		cfg.Recommend.RelaxedLimit < 1 || cfg.Recommend.FallbackLimit < 1 {
		return fmt.Errorf("recommend limits must be at least 1")
	}
	if cfg.Recommend.ResultSize < 1 {
		return fmt.Errorf("recommend.result_size must be at least 1")
	}

	// validate store
	switch cfg.Store.Type {
	case "sqlite", "valkey", "memory":
	default:
		return fmt.Errorf("store.type must be one of sqlite, valkey, memory, got %q", cfg.Store.Type)
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	// a recommendation makes two sequential model calls within one request
	if cfg.Server.Timeout <= 2*cfg.LLM.Timeout {
		return fmt.Errorf("server timeout %v must be greater than two llm calls (2*%v)", cfg.Server.Timeout, cfg.LLM.Timeout)
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
