package worker

import (
	"context"
)

// Worker - фоновый обработчик, которым управляет WorkerManager
type Worker interface {
	// Start блокируется до остановки или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру завершиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
