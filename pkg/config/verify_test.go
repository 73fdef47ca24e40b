package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	base := func() *Config {
		cfg := &Config{LLM: LLMConfig{Endpoint: "http://localhost:8080", APIKey: "test-key", Model: "test-model"}}
		cfg.setDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "missing listen", modify: func(c *Config) { c.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
		{name: "valkey without address", modify: func(c *Config) {
			c.Store.Type = "valkey"
			c.Store.Valkey.Address = ""
		}, wantErr: true, errMsg: "store.valkey.address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmbeddedSchemaMatchesGenerated(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var generated, embedded struct {
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &generated))
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	for _, def := range []string{"Config", "ServerConfig", "DatabaseConfig", "LLMConfig", "RecommendConfig", "StoreConfig", "ValkeyConfig"} {
		require.Contains(t, generated.Defs, def)
		require.Contains(t, embedded.Defs, def)
		for field := range generated.Defs[def].Properties {
			assert.Contains(t, embedded.Defs[def].Properties, field, "%s.%s missing in embedded schema, run go generate", def, field)
		}
	}
}
