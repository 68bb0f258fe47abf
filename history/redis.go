package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where the serialized history list lives.
const DefaultRedisKey = "aura:history"

// RedisStore keeps the history list as a single JSON value in Redis, for
// hosts that share state across devices. The whole-list replace semantics
// match the port contract, so eviction and deletes stay in the Log.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOptions configures a RedisStore connection.
type RedisOptions struct {
	Addr     string
	Password string
	Key      string
}

// NewRedisStore connects to Redis and verifies the connection with a short
// ping before handing the store out.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("history: redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("history: redis ping: %w", err)
	}

	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}, nil
}

// Load reads the stored list. A missing key yields an empty history.
func (s *RedisStore) Load(ctx context.Context) ([]Item, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: redis get: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("history: decode list: %w", err)
	}
	return items, nil
}

// Save replaces the stored list wholesale. The value never expires; the Log
// keeps it bounded.
func (s *RedisStore) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("history: encode list: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("history: redis set: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
