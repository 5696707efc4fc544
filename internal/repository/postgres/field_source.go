package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/repository/dataset"
)

type fieldSource struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFieldSource создает загрузчик записей полей из таблицы sports_fields
func NewFieldSource(db *DB) repository.DatasetSource {
	return &fieldSource{
		db:     db.DB,
		logger: db.logger,
	}
}

func (s *fieldSource) Name() string {
	return "postgres:sports_fields"
}

// fieldRow - строка sports_fields; массивы хранятся в jsonb
type fieldRow struct {
	ParkID      string `db:"park_id"`
	Name        string `db:"name"`
	Description []byte `db:"description"`
	Geometry    string `db:"geometry_json"`
	Images      []byte `db:"images"`
	Clubs       []byte `db:"clubs"`
	Coverage    []byte `db:"age_coverage"`
	Instructors []byte `db:"instructors"`
}

func (s *fieldSource) Load(ctx context.Context) ([]domain.FieldRecord, error) {
	query := `
		SELECT
			park_id,
			name,
			COALESCE(description, '[]'::jsonb)  AS description,
			ST_AsGeoJSON(geometry)              AS geometry_json,
			COALESCE(images, '[]'::jsonb)       AS images,
			COALESCE(clubs, '[]'::jsonb)        AS clubs,
			COALESCE(age_coverage, '[]'::jsonb) AS age_coverage,
			COALESCE(instructors, '[]'::jsonb)  AS instructors
		FROM sports_fields
		ORDER BY sort_order, park_id
	`

	var rows []fieldRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		s.logger.Error("Failed to load sports fields", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseError, err)
	}

	raw := make([]dataset.RawField, 0, len(rows))
	for _, row := range rows {
		f, err := row.toRaw()
		if err != nil {
			s.logger.Error("Malformed sports field row", zap.String("park_id", row.ParkID), zap.Error(err))
			return nil, errors.ErrInvalidDataset.WithDetails(map[string]interface{}{
				"field_id": row.ParkID,
				"reason":   err.Error(),
			})
		}
		raw = append(raw, f)
	}

	records, err := dataset.Build(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dataset loaded from PostgreSQL", zap.Int("fields", len(records)))
	return records, nil
}

func (r fieldRow) toRaw() (dataset.RawField, error) {
	props := dataset.RawProperties{
		ParkID: dataset.FlexibleID(r.ParkID),
		Name:   r.Name,
	}

	columns := []struct {
		name string
		data []byte
		dst  interface{}
	}{
		{"description", r.Description, &props.Description},
		{"images", r.Images, &props.Images},
		{"clubs", r.Clubs, &props.Clubs},
		{"age_coverage", r.Coverage, &props.Coverage},
		{"instructors", r.Instructors, &props.Instructors},
	}
	for _, c := range columns {
		if len(c.data) == 0 {
			continue
		}
		if err := json.Unmarshal(c.data, c.dst); err != nil {
			return dataset.RawField{}, fmt.Errorf("column %s: %w", c.name, err)
		}
	}

	coords, err := PolygonFromGeoJSON(r.Geometry)
	if err != nil {
		return dataset.RawField{}, err
	}

	return dataset.RawField{
		Properties: props,
		Geometry: dataset.RawGeometry{
			Type:        "Polygon",
			Coordinates: coords,
		},
	}, nil
}
