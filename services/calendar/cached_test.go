package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bookline/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBusyCache struct {
	data    map[string]string
	getErr  error
	deleted []string
}

func newFakeBusyCache() *fakeBusyCache {
	return &fakeBusyCache{data: make(map[string]string)}
}

func (f *fakeBusyCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeBusyCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeBusyCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingProvider struct {
	busy      []models.BusyInterval
	busyErr   error
	conf      models.Confirmation
	createErr error
	busyCalls int
}

func (p *countingProvider) GetBusyIntervals(ctx context.Context, date string, durationHint int) ([]models.BusyInterval, error) {
	p.busyCalls++
	return p.busy, p.busyErr
}

func (p *countingProvider) CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error) {
	if p.createErr != nil {
		return models.Confirmation{}, p.createErr
	}
	return p.conf, nil
}

func sampleBusy(t *testing.T) []models.BusyInterval {
	t.Helper()
	start, err := time.Parse(time.RFC3339, "2025-06-02T10:00:00Z")
	require.NoError(t, err)
	return []models.BusyInterval{{Start: start, End: start.Add(time.Hour)}}
}

func TestCachedProviderHitSkipsInner(t *testing.T) {
	busy := sampleBusy(t)
	cache := newFakeBusyCache()
	data, err := json.Marshal(busy)
	require.NoError(t, err)
	cache.data[busyCachePrefix+"2025-06-02"] = string(data)

	inner := &countingProvider{busyErr: errors.New("must not be reached")}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}

	got, err := p.GetBusyIntervals(context.Background(), "2025-06-02", 60)
	require.NoError(t, err)
	assert.Equal(t, busy, got)
	assert.Zero(t, inner.busyCalls)
}

func TestCachedProviderMissPopulatesCache(t *testing.T) {
	busy := sampleBusy(t)
	cache := newFakeBusyCache()
	inner := &countingProvider{busy: busy}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}
	ctx := context.Background()

	got, err := p.GetBusyIntervals(ctx, "2025-06-02", 60)
	require.NoError(t, err)
	assert.Equal(t, busy, got)
	assert.Equal(t, 1, inner.busyCalls)

	// Second read is served from the cache.
	got, err = p.GetBusyIntervals(ctx, "2025-06-02", 60)
	require.NoError(t, err)
	assert.Equal(t, busy, got)
	assert.Equal(t, 1, inner.busyCalls)
}

func TestCachedProviderUnreadableEntryFallsThrough(t *testing.T) {
	busy := sampleBusy(t)
	cache := newFakeBusyCache()
	cache.data[busyCachePrefix+"2025-06-02"] = "{not json"

	inner := &countingProvider{busy: busy}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}

	got, err := p.GetBusyIntervals(context.Background(), "2025-06-02", 60)
	require.NoError(t, err)
	assert.Equal(t, busy, got)
	assert.Equal(t, 1, inner.busyCalls)
}

func TestCachedProviderCacheFailureFallsThrough(t *testing.T) {
	busy := sampleBusy(t)
	cache := newFakeBusyCache()
	cache.getErr = errors.New("redis down")

	inner := &countingProvider{busy: busy}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}

	got, err := p.GetBusyIntervals(context.Background(), "2025-06-02", 60)
	require.NoError(t, err)
	assert.Equal(t, busy, got)
	assert.Equal(t, 1, inner.busyCalls)
}

func TestCachedProviderInvalidatesDayOnBooking(t *testing.T) {
	cache := newFakeBusyCache()
	key := busyCachePrefix + "2025-06-02"
	cache.data[key] = "[]"

	inner := &countingProvider{conf: models.Confirmation{ID: "bk-1", Code: "CNF-20250602-0001"}}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}

	conf, err := p.CreateBooking(context.Background(), models.Draft{
		ServiceType:     models.ServiceMeeting,
		Date:            "2025-06-02",
		Time:            "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "bk-1", conf.ID)
	assert.Contains(t, cache.deleted, key)
	_, stillCached := cache.data[key]
	assert.False(t, stillCached)
}

func TestCachedProviderBookingFailureKeepsCache(t *testing.T) {
	cache := newFakeBusyCache()
	key := busyCachePrefix + "2025-06-02"
	cache.data[key] = "[]"

	inner := &countingProvider{createErr: errors.New("backend down")}
	p := &CachedProvider{next: inner, client: cache, ttl: 5 * time.Minute}

	_, err := p.CreateBooking(context.Background(), models.Draft{Date: "2025-06-02"})
	require.Error(t, err)
	assert.Empty(t, cache.deleted)
}
