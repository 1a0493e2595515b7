package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	planserrors "utsav/internal/plans/errors"
	"utsav/pkg/model"
	"utsav/pkg/sanitizer"

	"github.com/redis/go-redis/v9"
)

const planKeyPrefix = "plan:v1:"

// PlanCache stores generated plans by request so identical requests skip the
// model call.
type PlanCache interface {
	Get(ctx context.Context, req *model.EventPlanRequest) (*model.EventPlan, error)
	Set(ctx context.Context, req *model.EventPlanRequest, plan *model.EventPlan) error
}

// redisCmdable is the part of *redis.Client the cache uses.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type RedisPlanCache struct {
	client redisCmdable
	ttl    time.Duration
}

func NewRedisPlanCache(client redisCmdable, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{client: client, ttl: ttl}
}

func (c *RedisPlanCache) Get(ctx context.Context, req *model.EventPlanRequest) (*model.EventPlan, error) {
	raw, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, planserrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cached plan: %w", err)
	}

	var plan model.EventPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode cached plan: %w", err)
	}
	return &plan, nil
}

func (c *RedisPlanCache) Set(ctx context.Context, req *model.EventPlanRequest, plan *model.EventPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := c.client.Set(ctx, Key(req), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache plan: %w", err)
	}
	return nil
}

// Key hashes the normalised request, so case and spacing differences in
// free-text fields share one entry.
func Key(req *model.EventPlanRequest) string {
	parts := []string{
		strings.ToLower(sanitizer.TrimAndNormalize(req.EventType)),
		sanitizer.CityKey(req.Location),
		strconv.FormatFloat(req.Budget, 'f', 2, 64),
		strconv.Itoa(req.GuestCount),
		strings.ToLower(sanitizer.TrimAndNormalize(req.Preferences)),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return planKeyPrefix + hex.EncodeToString(sum[:])
}

// NoopPlanCache never hits. It is used when Redis is not configured.
type NoopPlanCache struct{}

func (NoopPlanCache) Get(context.Context, *model.EventPlanRequest) (*model.EventPlan, error) {
	return nil, planserrors.ErrCacheMiss
}

func (NoopPlanCache) Set(context.Context, *model.EventPlanRequest, *model.EventPlan) error {
	return nil
}
