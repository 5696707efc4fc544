package dataset_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/repository/dataset"
)

const sampleJSON = `{
  "canchas": [
    {
      "type": "Feature",
      "properties": {
        "PARK_ID": 101,
        "NAME": "Cancha Las Granjas",
        "DESCRIPTION": ["Cancha sintética", "Abierta de 6am a 10pm"],
        "IMAGES": ["https://img/1.jpg", "https://img/2.jpg"],
        "CLUBES": ["Club Halcones", "Club Tigres"],
        "COBERTURA": [["0-10", 5], ["11-18", "12"]],
        "INSTRUCTORES": [
          {"NOMBRE": "James Perez", "ROL": "Profesional en recreación", "PRESENCIA": "online"}
        ]
      },
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[7.0725, -73.8311], [7.0727, -73.8311], [7.0727, -73.8308], [7.0725, -73.8308]]]
      }
    },
    {
      "properties": {"PARK_ID": "F2", "NAME": "Cancha Barrio Nuevo", "DESCRIPTION": ["Solo corta"]},
      "geometry": {"coordinates": [[[7.07, -73.83], [7.071, -73.83], [7.071, -73.829]]]}
    }
  ]
}`

const sampleYAML = `
canchas:
  - properties:
      PARK_ID: 7
      NAME: Polideportivo
      IMAGES: [a.jpg]
      COBERTURA:
        - ["0-10", 3]
    geometry:
      coordinates:
        - [[1, 1], [1, 2], [2, 2]]
`

func TestDecodeAndBuild_JSON(t *testing.T) {
	doc, err := dataset.Decode([]byte(sampleJSON), dataset.FormatJSON)
	require.NoError(t, err)

	records, err := dataset.Build(doc.Records())
	require.NoError(t, err)
	require.Len(t, records, 2)

	f1 := records[0]
	assert.Equal(t, "101", f1.ID)
	assert.Equal(t, "Cancha Las Granjas", f1.Name)
	assert.Equal(t, []string{"Cancha sintética", "Abierta de 6am a 10pm"}, f1.Description)
	assert.Equal(t, domain.Point{Lat: 7.0725, Lon: -73.8311}, f1.Geometry[0][0])
	assert.Len(t, f1.Geometry[0], 4)
	assert.Equal(t, []domain.AgeCoverage{{AgeBracket: "0-10", Count: 5}, {AgeBracket: "11-18", Count: 12}}, f1.AgeCoverage)
	require.Len(t, f1.Instructors, 1)
	assert.Equal(t, domain.PresenceOnline, f1.Instructors[0].Presence)
	assert.Equal(t, "JP", f1.Instructors[0].Initials)

	f2 := records[1]
	assert.Equal(t, "F2", f2.ID)
	assert.Equal(t, []string{"Solo corta"}, f2.Description)
	assert.NotNil(t, f2.Images)
	assert.Empty(t, f2.Images)
	assert.Empty(t, f2.Instructors)
}

func TestDecodeAndBuild_YAML(t *testing.T) {
	doc, err := dataset.Decode([]byte(sampleYAML), dataset.FormatYAML)
	require.NoError(t, err)

	records, err := dataset.Build(doc.Records())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7", records[0].ID)
	assert.Equal(t, []domain.AgeCoverage{{AgeBracket: "0-10", Count: 3}}, records[0].AgeCoverage)
}

func TestDecode_FeaturesAlias(t *testing.T) {
	raw := `{"features":[{"properties":{"PARK_ID":"A","NAME":"A"},"geometry":{"coordinates":[[[0,0],[0,1],[1,1]]]}}]}`
	doc, err := dataset.Decode([]byte(raw), dataset.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, doc.Records(), 1)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"syntax":          `{"canchas": [`,
		"coverage shape":  `{"canchas":[{"properties":{"PARK_ID":"A","NAME":"A","COBERTURA":[["0-10"]]}}]}`,
		"coverage count":  `{"canchas":[{"properties":{"PARK_ID":"A","NAME":"A","COBERTURA":[["0-10","many"]]}}]}`,
		"park id as list": `{"canchas":[{"properties":{"PARK_ID":[1],"NAME":"A"}}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.Decode([]byte(raw), dataset.FormatJSON)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidDataset))
		})
	}
}

func TestBuild_ValidationFailures(t *testing.T) {
	ring := [][]float64{{0, 0}, {0, 1}, {1, 1}}
	valid := func() dataset.RawField {
		return dataset.RawField{
			Properties: dataset.RawProperties{ParkID: "A", Name: "A"},
			Geometry:   dataset.RawGeometry{Coordinates: [][][]float64{ring}},
		}
	}

	cases := map[string]func(f *dataset.RawField){
		"missing id":     func(f *dataset.RawField) { f.Properties.ParkID = "" },
		"missing name":   func(f *dataset.RawField) { f.Properties.Name = "" },
		"no rings":       func(f *dataset.RawField) { f.Geometry.Coordinates = nil },
		"two point ring": func(f *dataset.RawField) { f.Geometry.Coordinates = [][][]float64{{{0, 0}, {1, 1}}} },
		"3d point":       func(f *dataset.RawField) { f.Geometry.Coordinates = [][][]float64{{{0, 0, 5}, {0, 1}, {1, 1}}} },
		"bad presence": func(f *dataset.RawField) {
			f.Properties.Instructors = []dataset.RawInstructor{{Name: "X", Presence: "sleeping"}}
		},
		"negative count": func(f *dataset.RawField) {
			f.Properties.Coverage = []dataset.CoverageRow{{AgeBracket: "0-10", Count: -1}}
		},
		"empty image ref": func(f *dataset.RawField) { f.Properties.Images = []string{""} },
		"multipolygon":    func(f *dataset.RawField) { f.Geometry.Type = "MultiPolygon" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := valid()
			mutate(&f)

			records, err := dataset.Build([]dataset.RawField{f})
			assert.Nil(t, records)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidDataset))

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.NotEmpty(t, appErr.Details["violations"])
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "YJ", dataset.Initials("Yackeline Jimenez"))
	assert.Equal(t, "ÁB", dataset.Initials("álvaro bueno castro"))
	assert.Equal(t, "M", dataset.Initials("Madonna"))
	assert.Equal(t, "", dataset.Initials("  "))
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "canchas.json")
	yamlPath := filepath.Join(dir, "canchas.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o600))

	logger := zap.NewNop()

	records, err := dataset.NewFileSource(jsonPath, logger).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = dataset.NewFileSource(yamlPath, logger).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = dataset.NewFileSource(filepath.Join(dir, "missing.json"), logger).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	src := dataset.NewFileSource(jsonPath, logger)
	assert.Equal(t, "file:"+jsonPath, src.Name())
}

func TestFileSource_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dataset.NewFileSource("whatever.json", zap.NewNop()).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
