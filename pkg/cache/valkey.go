// Package cache provides per-user recommendation stores backed by valkey or memory
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/umputun/cookscope/pkg/config"
	"github.com/umputun/cookscope/pkg/domain"
)

// ValkeyStore keeps the last recommendation per user in a Valkey-compatible database
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyClient makes a client from config and verifies the connection with ping.
// Address can be host:port or a redis:// url.
func NewValkeyClient(ctx context.Context, cfg config.ValkeyConfig) (valkey.Client, error) {
	var opt valkey.ClientOption
	if strings.Contains(cfg.Address, "://") {
		var err error
		if opt, err = valkey.ParseURL(cfg.Address); err != nil {
			return nil, fmt.Errorf("parse valkey url: %w", err)
		}
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Address}}
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey %s: %w", cfg.Address, err)
	}
	return client, nil
}

// NewValkeyStore makes a store with the key prefix, zero ttl keeps records forever
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "cookscope"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the stored recommendation of the user or domain.ErrNotFound
func (s *ValkeyStore) Get(ctx context.Context, userID string) (domain.Recommendation, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(userID)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return domain.Recommendation{}, fmt.Errorf("recommendation for %s: %w", userID, domain.ErrNotFound)
		}
		return domain.Recommendation{}, fmt.Errorf("get recommendation for %s: %w", userID, err)
	}
	var rec domain.Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return domain.Recommendation{}, fmt.Errorf("unmarshal recommendation for %s: %w", userID, err)
	}
	return rec, nil
}

// Save replaces the stored recommendation of rec.UserID
func (s *ValkeyStore) Save(ctx context.Context, rec domain.Recommendation) error {
	if rec.UserID == "" {
		return domain.ErrInvalidUser
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	builder := s.client.B().Set().Key(s.key(rec.UserID)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("save recommendation for %s: %w", rec.UserID, err)
	}
	return nil
}

// Delete removes the stored recommendation, deleting a missing one is not an error
func (s *ValkeyStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.key(userID)).Build()).Error(); err != nil {
		return fmt.Errorf("delete recommendation for %s: %w", userID, err)
	}
	return nil
}

func (s *ValkeyStore) key(userID string) string {
	return fmt.Sprintf("%s:recommendation:%s", s.prefix, userID)
}
