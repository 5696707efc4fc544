package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/repository/memory"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetOverlays(ctx context.Context, convention domain.RenderConvention) ([]byte, error) {
	args := m.Called(ctx, convention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetOverlays(ctx context.Context, convention domain.RenderConvention, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, convention, data, ttl)
	return args.Error(0)
}

// MockPublisher is a mock of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) IncrementOpens(ctx context.Context, deltas map[string]int64) error {
	args := m.Called(ctx, deltas)
	return args.Error(0)
}

func (m *MockStatsRepository) GetOpens(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// F1 has everything, F2 has no images and a single description segment.
func testRecords() []domain.FieldRecord {
	return []domain.FieldRecord{
		{
			ID:          "F1",
			Name:        "Cancha Norte",
			Description: []string{"Césped sintético", "Iluminación nocturna"},
			Geometry: []domain.Ring{
				{{Lat: 7.0, Lon: -73.0}, {Lat: 7.0, Lon: -72.0}, {Lat: 8.0, Lon: -72.0}, {Lat: 8.0, Lon: -73.0}},
				{{Lat: 7.4, Lon: -72.6}, {Lat: 7.4, Lon: -72.4}, {Lat: 7.6, Lon: -72.4}},
			},
			Images:      []string{"a.jpg", "b.jpg"},
			Clubs:       []string{"Club A"},
			AgeCoverage: []domain.AgeCoverage{{AgeBracket: "6-10", Count: 12}},
			Instructors: []domain.Instructor{{Name: "Ana Pérez", Role: "Entrenadora", Presence: domain.PresenceOnline}},
		},
		{
			ID:          "F2",
			Name:        "Cancha Sur",
			Description: []string{"Tierra"},
			Geometry: []domain.Ring{
				{{Lat: 6.0, Lon: -74.0}, {Lat: 6.0, Lon: -73.5}, {Lat: 6.5, Lon: -73.5}},
			},
		},
	}
}

func newTestStore(t *testing.T) *memory.FieldStore {
	t.Helper()

	store, err := memory.NewFieldStore(testRecords())
	require.NoError(t, err)
	return store
}
