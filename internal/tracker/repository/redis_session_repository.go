package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sttock-tracker/internal/entity"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sttock:session:"

// NewRedisSessionRepository creates a Redis-backed session store used with
// the static credential driver, where no database is required. Expiry is
// delegated to key TTLs, so DeleteExpired has nothing to sweep.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

type redisSessionRepository struct {
	client *redis.Client
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is already expired")
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.Token, data, ttl).Err()
}

func (r *redisSessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (r *redisSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
