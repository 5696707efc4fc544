package repository

import "context"

// StatsRepository хранит счётчики открытий модального окна по полям
type StatsRepository interface {
	// IncrementOpens прибавляет счётчики (field id -> delta)
	IncrementOpens(ctx context.Context, deltas map[string]int64) error

	// GetOpens возвращает накопленные счётчики
	GetOpens(ctx context.Context) (map[string]int64, error)
}
