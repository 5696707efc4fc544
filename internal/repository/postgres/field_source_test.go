package postgres_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/repository/postgres/testhelpers"
)

func TestFieldSource_Load(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()

	tdb.PrepareSchema(t, filepath.Join("..", "..", "..", "migrations"), "testdata", "fields.sql")

	records, err := tdb.FieldSource().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	f1 := records[0]
	assert.Equal(t, "F1", f1.ID)
	assert.Equal(t, "Cancha Las Granjas", f1.Name)
	assert.Equal(t, domain.Point{Lat: 7.0725, Lon: -73.8311}, f1.Geometry[0][0])
	assert.Equal(t, []domain.AgeCoverage{{AgeBracket: "0-10", Count: 5}}, f1.AgeCoverage)
	require.Len(t, f1.Instructors, 1)
	assert.Equal(t, "JP", f1.Instructors[0].Initials)

	f2 := records[1]
	assert.Equal(t, "F2", f2.ID)
	assert.Empty(t, f2.Images)
	assert.Empty(t, f2.Clubs)
}
