// README: Redis-backed conversation store.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voyago/internal/agent"
)

const (
	conversationKeyPrefix = "conversation:%s"
	// Conversations idle for a week are dropped.
	conversationTTL = 7 * 24 * time.Hour
)

// RedisStore persists each conversation as one JSON value with a TTL.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) ([]agent.Message, error) {
	val, err := s.redis.Get(ctx, conversationKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	var msgs []agent.Message
	if err := json.Unmarshal([]byte(val), &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return msgs, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, messages []agent.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}
	return s.redis.Set(ctx, conversationKey(id), payload, conversationTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, conversationKey(id)).Err()
}

func conversationKey(id string) string {
	return fmt.Sprintf(conversationKeyPrefix, id)
}
