package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"homestock/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService fronts Redis for the two read-heavy lookups of the API:
// invite-code resolution (codes are immutable, only positive results are
// cached) and request rate limiting. A cache failure is never fatal; callers
// fall through to the database.
type CacheService interface {
	GetHouseholdByInvite(ctx context.Context, code string) (*models.Household, error)
	SetHouseholdByInvite(ctx context.Context, code string, household *models.Household, ttl time.Duration) error

	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, addr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetHouseholdByInvite(ctx context.Context, code string) (*models.Household, error) {
	key := fmt.Sprintf("homestock:invite:%s", code)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var household models.Household
	if err := json.Unmarshal(data, &household); err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *redisCacheService) SetHouseholdByInvite(ctx context.Context, code string, household *models.Household, ttl time.Duration) error {
	key := fmt.Sprintf("homestock:invite:%s", code)
	data, err := json.Marshal(household)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("homestock:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Set expiry on first request in the window
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
