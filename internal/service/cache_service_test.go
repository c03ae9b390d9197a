package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/translation-qa-api/internal/models"
	appErrors "github.com/noah-isme/translation-qa-api/pkg/errors"
)

type fakeCacheRepo struct {
	entries  map[string][]byte
	ttls     map[string]time.Duration
	patterns []string
	err      error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if r.err != nil {
		return r.err
	}
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = raw
	r.ttls[key] = ttl
	return nil
}

func (r *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	if r.err != nil {
		return r.err
	}
	r.entries = map[string][]byte{}
	return nil
}

func TestCacheServiceRoundTripAndMetrics(t *testing.T) {
	repo := newFakeCacheRepo()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, 0, nil, true)
	ctx := context.Background()

	var stats models.IssueBreakdown
	assert.False(t, cache.Get(ctx, "translation_issues:stats:all", &stats))

	cache.Set(ctx, "translation_issues:stats:all", models.IssueBreakdown{Severity: map[string]int{"critical": 2}}, 0)
	assert.Equal(t, 2*time.Minute, repo.ttls["translation_issues:stats:all"])

	require.True(t, cache.Get(ctx, "translation_issues:stats:all", &stats))
	assert.Equal(t, 2, stats.Severity["critical"])

	cache.Invalidate(ctx, issueStatsPattern)
	assert.Equal(t, []string{issueStatsPattern}, repo.patterns)
	assert.False(t, cache.Get(ctx, "translation_issues:stats:all", &stats))

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(2), snapshot.CacheMisses)
}

func TestCacheServiceSwallowsFailures(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.err = errors.New("redis unavailable")
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()

	var stats models.IssueBreakdown
	assert.False(t, cache.Get(ctx, "k", &stats))
	cache.Set(ctx, "k", stats, 0)
	cache.Invalidate(ctx, "k*")
	assert.Equal(t, []string{"k*"}, repo.patterns)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, false)
	assert.False(t, cache.Enabled())
	cache.Set(context.Background(), "k", 1, 0)
	assert.Empty(t, repo.entries)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Get(context.Background(), "k", new(int)))
}
