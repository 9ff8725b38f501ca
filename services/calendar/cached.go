package calendar

import (
	"context"
	"encoding/json"
	"time"

	"bookline/models"
	"bookline/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const busyCachePrefix = "cal:busy:"

// busyCache is the slice of the Redis client the provider needs; tests
// substitute a map-backed fake.
type busyCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedProvider is a read-through Redis cache in front of another
// provider. It only caches busy-interval reads; it is never the source of
// truth for a stage transition, and any cache failure falls through to the
// wrapped provider.
type CachedProvider struct {
	next   Provider
	client busyCache
	ttl    time.Duration
}

func NewCachedProvider(next Provider, client *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, client: client, ttl: ttl}
}

func (p *CachedProvider) GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()
	key := busyCachePrefix + date

	if data, err := p.client.Get(ctx, key).Result(); err == nil {
		var busy []models.BusyInterval
		if err := json.Unmarshal([]byte(data), &busy); err == nil {
			return busy, nil
		}
		logger.Warn("dropping unreadable busy-interval cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		logger.Warn("busy-interval cache read failed", zap.Error(err))
	}

	busy, err := p.next.GetBusyIntervals(ctx, date, durationHint)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(busy); err == nil {
		if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
			logger.Warn("busy-interval cache write failed", zap.Error(err))
		}
	}
	return busy, nil
}

// CreateBooking delegates and invalidates the day's cached intervals so
// the new booking is visible to the next availability query.
func (p *CachedProvider) CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error) {
	conf, err := p.next.CreateBooking(ctx, draft)
	if err != nil {
		return models.Confirmation{}, err
	}
	if err := p.client.Del(ctx, busyCachePrefix+draft.Date).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate busy-interval cache",
			zap.String("date", draft.Date), zap.Error(err))
	}
	return conf, nil
}
