package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/repository/cache"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	return client
}

func TestCacheRepository_Overlays(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()), "test-v1")
	defer func() {
		_ = repo.Delete(ctx, cache.OverlaysKey("test-v1", domain.ConventionLatLng))
	}()

	data, err := repo.GetOverlays(ctx, domain.ConventionLatLng)
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`{"type":"FeatureCollection","features":[]}`)
	require.NoError(t, repo.SetOverlays(ctx, domain.ConventionLatLng, payload, time.Minute))

	data, err = repo.GetOverlays(ctx, domain.ConventionLatLng)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// other convention is a separate key
	data, err = repo.GetOverlays(ctx, domain.ConventionLngLat)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestNopCacheRepository(t *testing.T) {
	repo := cache.NewNopCacheRepository()
	ctx := context.Background()

	require.NoError(t, repo.SetOverlays(ctx, domain.ConventionLatLng, []byte("x"), time.Minute))
	data, err := repo.GetOverlays(ctx, domain.ConventionLatLng)
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestOverlaysKey(t *testing.T) {
	assert.Equal(t, "overlays:abc:lnglat", cache.OverlaysKey("abc", domain.ConventionLngLat))
}
