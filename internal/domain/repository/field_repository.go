package repository

import (
	"context"

	"github.com/sportsfield-microservice/internal/domain"
)

// FieldRepository - неизменяемое хранилище записей полей
type FieldRepository interface {
	// All возвращает все записи в порядке источника
	All() []domain.FieldRecord

	// Get возвращает запись по id или errors.ErrFieldNotFound
	Get(id string) (domain.FieldRecord, error)

	// Len возвращает количество записей
	Len() int

	// Bounds возвращает ограничивающий прямоугольник всех контуров
	Bounds() domain.BoundingBox
}

// DatasetSource - загрузчик набора данных (файл, база данных)
type DatasetSource interface {
	// Load возвращает провалидированные записи в порядке источника
	Load(ctx context.Context) ([]domain.FieldRecord, error)

	// Name - имя источника для логов
	Name() string
}
