package forecastcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/ggyyuubb/wearther/internal/domain/forecast"
)

// ValkeyStore caches forecasts in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "forecast"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements forecast.Cache.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]forecast.Day, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var days []forecast.Day
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		return nil, false, fmt.Errorf("decode cached forecast: %w", err)
	}
	return days, true, nil
}

// Set implements forecast.Cache.
func (s *ValkeyStore) Set(ctx context.Context, key string, days []forecast.Day, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:daily:%s", s.prefix, key)
}

var _ forecast.Cache = (*ValkeyStore)(nil)
