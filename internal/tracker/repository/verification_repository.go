package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sttock-tracker/pkg/common"

	"github.com/redis/go-redis/v9"
)

// NewVerificationRepository creates a Redis-backed store for one-time
// email verification tokens.
func NewVerificationRepository(client *redis.Client) VerificationRepository {
	return &verificationRepository{client: client}
}

type verificationRepository struct {
	client *redis.Client
}

func (r *verificationRepository) Store(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := common.RedisKeyVerificationToken + token
	return r.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Consume atomically fetches and deletes a token so it cannot be replayed.
func (r *verificationRepository) Consume(ctx context.Context, token string) (uint, error) {
	key := common.RedisKeyVerificationToken + token
	value, err := r.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrVerificationTokenInvalid
		}
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, ErrVerificationTokenInvalid
	}
	return uint(userID), nil
}
