package memory

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/pkg/errors"
	"github.com/sportsfield-microservice/internal/pkg/utils"
)

const minRingPoints = 3

// FieldStore - неизменяемый набор записей полей в памяти.
// После создания только читается, поэтому блокировки не нужны.
type FieldStore struct {
	records []domain.FieldRecord
	index   map[string]int
	bounds  domain.BoundingBox
	version string
}

// NewFieldStore проверяет инварианты всех записей и строит хранилище.
// При любой ошибке возвращает errors.ErrInvalidDataset с деталями и nil.
func NewFieldStore(records []domain.FieldRecord) (*FieldStore, error) {
	store := &FieldStore{
		records: make([]domain.FieldRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	bounds := utils.NewBounds()

	for i, record := range records {
		if err := checkRecord(i, record); err != nil {
			return nil, err
		}
		if prev, dup := store.index[record.ID]; dup {
			return nil, invalid(i, record.ID, "duplicate id", map[string]interface{}{
				"first_index": prev,
			})
		}

		for _, ring := range record.Geometry {
			for _, p := range ring {
				bounds.Extend(p.Lat, p.Lon)
			}
		}

		store.index[record.ID] = len(store.records)
		store.records = append(store.records, record.Clone())
	}

	if !bounds.IsEmpty() {
		store.bounds = domain.BoundingBox{
			MinLat: bounds.MinLat,
			MinLon: bounds.MinLon,
			MaxLat: bounds.MaxLat,
			MaxLon: bounds.MaxLon,
		}
	}

	// Отпечаток содержимого: меняется вместе с набором данных
	data, err := json.Marshal(store.records)
	if err != nil {
		return nil, errors.ErrInvalidDataset.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	sum := md5.Sum(data)
	store.version = hex.EncodeToString(sum[:])[:12]

	return store, nil
}

func checkRecord(i int, record domain.FieldRecord) error {
	if record.ID == "" {
		return invalid(i, record.ID, "empty id", nil)
	}
	if strings.TrimSpace(record.Name) == "" {
		return invalid(i, record.ID, "empty name", nil)
	}
	for row, c := range record.AgeCoverage {
		if c.Count < 0 {
			return invalid(i, record.ID, "negative coverage count", map[string]interface{}{
				"row":   row,
				"count": c.Count,
			})
		}
	}
	if len(record.Geometry) == 0 {
		return invalid(i, record.ID, "geometry has no rings", nil)
	}
	for r, ring := range record.Geometry {
		if len(ring) < minRingPoints {
			return invalid(i, record.ID, "ring has fewer than 3 points", map[string]interface{}{
				"ring":   r,
				"points": len(ring),
			})
		}
		for _, p := range ring {
			if !utils.ValidateCoordinates(p.Lat, p.Lon) {
				return invalid(i, record.ID, "coordinate out of range", map[string]interface{}{
					"ring": r,
					"lat":  p.Lat,
					"lon":  p.Lon,
				})
			}
		}
	}
	return nil
}

func invalid(index int, id, reason string, extra map[string]interface{}) error {
	details := map[string]interface{}{
		"index":  index,
		"reason": reason,
	}
	if id != "" {
		details["field_id"] = id
	}
	for k, v := range extra {
		details[k] = v
	}
	return errors.ErrInvalidDataset.WithDetails(details)
}

// All возвращает копии записей в порядке источника
func (s *FieldStore) All() []domain.FieldRecord {
	out := make([]domain.FieldRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Get возвращает копию записи по id
func (s *FieldStore) Get(id string) (domain.FieldRecord, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.FieldRecord{}, errors.ErrFieldNotFound.WithDetails(map[string]interface{}{
			"field_id": id,
		})
	}
	return s.records[i].Clone(), nil
}

func (s *FieldStore) Len() int {
	return len(s.records)
}

func (s *FieldStore) Bounds() domain.BoundingBox {
	return s.bounds
}

// Version - отпечаток содержимого набора данных, для ключей кеша
func (s *FieldStore) Version() string {
	return s.version
}
