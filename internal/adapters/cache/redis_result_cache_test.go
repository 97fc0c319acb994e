package cache

import (
	"context"
	"landing-sequencer-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisResultCache(client, ttl), mr
}

func sampleResult() *domain.SchedulingResult {
	a := domain.Aircraft{FlightID: "FL0", OriginalIndex: 0, ELT: 10, TLT: 20, LLT: 30, EarlyPenalty: 1.5, LatePenalty: 2}
	b := domain.Aircraft{FlightID: "FL1", OriginalIndex: 1, ELT: 5, TLT: 6, LLT: 7, EarlyPenalty: 1, LatePenalty: 1}
	return &domain.SchedulingResult{
		Schedule:  []domain.ScheduleEntry{{Aircraft: a, ActualLandingTime: 10, DeviationCost: 15}},
		Diverted:  []domain.Aircraft{b},
		TotalCost: 15,
		Decisions: []domain.Decision{
			{FlightID: "FL1", OriginalIndex: 1, Outcome: domain.Diverted},
			{FlightID: "FL0", OriginalIndex: 0, Outcome: domain.Accepted},
		},
	}
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleResult()
	require.NoError(t, c.Put(ctx, "abc", want))

	got, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRedisResultCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "abc", sampleResult()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisResultCacheRejectsBadInput(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.Error(t, c.Put(ctx, " ", sampleResult()))
	require.Error(t, c.Put(ctx, "abc", nil))
	_, _, err := c.Get(ctx, "")
	require.Error(t, err)

	empty := &RedisResultCache{}
	_, _, err = empty.Get(ctx, "abc")
	require.Error(t, err)
}

func TestRedisResultCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, mr.Set(keyPrefix+"abc", "{not json"))

	_, ok, err := c.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.False(t, ok)
}
