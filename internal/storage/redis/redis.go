// Package redis provides a Redis-backed storage.PreferenceStore.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/evenbetter/backend/internal/storage"
)

// KeyPrefix namespaces every key this store writes.
const KeyPrefix = "evenbetter:pref:"

// scanBatch is the COUNT hint used when deleting by prefix.
const scanBatch = 100

// Ensure PreferenceStore implements storage.PreferenceStore
var _ storage.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore keeps preferences as plain Redis strings.
type PreferenceStore struct {
	client *goredis.Client
}

// Options configure the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*PreferenceStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return &PreferenceStore{client: client}, nil
}

// Close closes the underlying client.
func (s *PreferenceStore) Close() error {
	return s.client.Close()
}

// GetPreference returns the value for key and whether it was set.
func (s *PreferenceStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference: %w", err)
	}
	return value, true, nil
}

// SetPreference stores value without expiry.
func (s *PreferenceStore) SetPreference(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, KeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// DeletePreferences removes every key starting with prefix.
func (s *PreferenceStore) DeletePreferences(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, KeyPrefix+escapeGlob(prefix)+"*", scanBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete preferences: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan preferences: %w", err)
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete preferences: %w", err)
		}
	}
	return nil
}

// escapeGlob quotes the characters MATCH treats specially.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
