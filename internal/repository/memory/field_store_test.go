package memory_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/repository/memory"
)

var _ repository.FieldRepository = (*memory.FieldStore)(nil)

func square(lat, lon float64) domain.Ring {
	return domain.Ring{
		{Lat: lat, Lon: lon},
		{Lat: lat + 0.001, Lon: lon},
		{Lat: lat + 0.001, Lon: lon + 0.001},
		{Lat: lat, Lon: lon + 0.001},
	}
}

func field(id string, rings ...domain.Ring) domain.FieldRecord {
	return domain.FieldRecord{
		ID:          id,
		Name:        "Cancha " + id,
		Description: []string{"short", "long"},
		Geometry:    rings,
	}
}

func TestNewFieldStore_OrderAndLookup(t *testing.T) {
	store, err := memory.NewFieldStore([]domain.FieldRecord{
		field("F2", square(7.07, -73.83)),
		field("F1", square(7.08, -73.84)),
	})
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "F2", all[0].ID)
	assert.Equal(t, "F1", all[1].ID)
	assert.Equal(t, 2, store.Len())

	got, err := store.Get("F1")
	require.NoError(t, err)
	assert.Equal(t, "Cancha F1", got.Name)
}

func TestFieldStore_GetNotFound(t *testing.T) {
	store, err := memory.NewFieldStore([]domain.FieldRecord{field("F1", square(1, 1))})
	require.NoError(t, err)

	_, err = store.Get("nope")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFieldNotFound))
}

func TestNewFieldStore_RejectsTwoPointRing(t *testing.T) {
	bad := field("F2", domain.Ring{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})

	store, err := memory.NewFieldStore([]domain.FieldRecord{field("F1", square(1, 1)), bad})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidDataset))

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, 1, appErr.Details["index"])
	assert.Equal(t, "F2", appErr.Details["field_id"])
	assert.Equal(t, 0, appErr.Details["ring"])
}

func TestNewFieldStore_RejectsHoleWithTooFewPoints(t *testing.T) {
	hole := domain.Ring{{Lat: 1.0002, Lon: 1.0002}, {Lat: 1.0003, Lon: 1.0003}}
	_, err := memory.NewFieldStore([]domain.FieldRecord{field("F1", square(1, 1), hole)})

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, 1, appErr.Details["ring"])
}

func TestNewFieldStore_InvalidRecords(t *testing.T) {
	cases := map[string][]domain.FieldRecord{
		"no rings":     {field("F1")},
		"empty id":     {field("", square(1, 1))},
		"duplicate id": {field("F1", square(1, 1)), field("F1", square(2, 2))},
		"out of range": {field("F1", domain.Ring{{Lat: 95, Lon: 0}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})},
		"empty name":   {withName(field("F1", square(1, 1)), "")},
		"blank name":   {withName(field("F1", square(1, 1)), "   ")},
		"negative count": {withCoverage(field("F1", square(1, 1)),
			domain.AgeCoverage{AgeBracket: "0-10", Count: 3},
			domain.AgeCoverage{AgeBracket: "11-15", Count: -1})},
	}

	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			store, err := memory.NewFieldStore(records)
			assert.Nil(t, store)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidDataset))
		})
	}
}

func withName(r domain.FieldRecord, name string) domain.FieldRecord {
	r.Name = name
	return r
}

func withCoverage(r domain.FieldRecord, rows ...domain.AgeCoverage) domain.FieldRecord {
	r.AgeCoverage = rows
	return r
}

func TestNewFieldStore_EmptyDataset(t *testing.T) {
	store, err := memory.NewFieldStore(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.All())
	assert.Equal(t, domain.BoundingBox{}, store.Bounds())
}

func TestFieldStore_IsImmutable(t *testing.T) {
	records := []domain.FieldRecord{field("F1", square(1, 1))}
	store, err := memory.NewFieldStore(records)
	require.NoError(t, err)

	// mutating the input and returned copies must not leak into the store
	records[0].Name = "changed"
	got, _ := store.Get("F1")
	got.Geometry[0][0].Lat = 50
	all := store.All()
	all[0].Description[0] = "changed"

	again, err := store.Get("F1")
	require.NoError(t, err)
	assert.Equal(t, "Cancha F1", again.Name)
	assert.Equal(t, 1.0, again.Geometry[0][0].Lat)
	assert.Equal(t, "short", again.Description[0])
}

func TestFieldStore_Bounds(t *testing.T) {
	store, err := memory.NewFieldStore([]domain.FieldRecord{
		field("F1", square(7.07, -73.84)),
		field("F2", square(7.08, -73.83)),
	})
	require.NoError(t, err)

	b := store.Bounds()
	assert.InDelta(t, 7.07, b.MinLat, 1e-9)
	assert.InDelta(t, 7.081, b.MaxLat, 1e-9)
	assert.InDelta(t, -73.84, b.MinLon, 1e-9)
	assert.InDelta(t, -73.829, b.MaxLon, 1e-9)
}

func TestFieldStore_Version(t *testing.T) {
	a, err := memory.NewFieldStore([]domain.FieldRecord{field("F1", square(7, -73))})
	require.NoError(t, err)
	b, err := memory.NewFieldStore([]domain.FieldRecord{field("F1", square(7, -73))})
	require.NoError(t, err)
	c, err := memory.NewFieldStore([]domain.FieldRecord{field("F2", square(7, -73))})
	require.NoError(t, err)

	assert.Len(t, a.Version(), 12)
	assert.Equal(t, a.Version(), b.Version())
	assert.NotEqual(t, a.Version(), c.Version())
}
