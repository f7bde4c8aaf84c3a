package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"solvo/config"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// RedisStore keeps visitor state in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var sessionClient *redis.Client

// InitSessionClient initializes the Redis client backing visitor sessions.
func InitSessionClient() {
	sessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := sessionClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (sessions): %v", err)
	}
}

// GetSessionClient returns the Redis client backing visitor sessions.
func GetSessionClient() *redis.Client {
	if sessionClient == nil {
		InitSessionClient()
	}
	return sessionClient
}

// NewRedisStore wraps client as a session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}
