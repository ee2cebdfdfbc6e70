package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "session:"

// RedisSessionStore keeps sessions in Redis with the key expiring alongside
// the session.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// DialRedis parses a redis:// URL and checks the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func (s *RedisSessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (Session, error) {
	now := time.Now()
	session := Session{
		Token:     utils.GenerateToken(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.client.Set(ctx, redisSessionPrefix+session.Token, encodeSession(session), ttl).Err(); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *RedisSessionStore) Find(ctx context.Context, token string) (Session, error) {
	buf, err := s.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, apperr.NotFound("Session not found")
	}
	if err != nil {
		return Session{}, err
	}
	session, ok := decodeSession(buf)
	if !ok {
		return Session{}, apperr.NotFound("Session not found")
	}
	session.Token = token
	return session, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisSessionPrefix+token).Err()
}
