package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/metrics"
	"github.com/sportsfield-microservice/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 50                     // максимум сообщений за раз
	emptyQueueSleep  = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep       = time.Second

	// сообщения, зависшие у упавших consumer дольше staleIdle, забираем себе
	staleIdle     = time.Minute
	claimInterval = 30 * time.Second
)

// OpensWorker читает события взаимодействия и считает открытия модального окна по полям
type OpensWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	statsRepo    repository.StatsRepository
	consumerName string
	batchSize    int

	// readPending - сначала перечитать свой PEL (после старта или ошибки записи)
	readPending bool
	lastClaim   time.Time
}

// NewOpensWorker создает новый OpensWorker
func NewOpensWorker(
	streamRepo repository.StreamRepository,
	statsRepo repository.StatsRepository,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *OpensWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &OpensWorker{
		BaseWorker:   worker.NewBaseWorker("field-opens", domain.StreamFieldInteraction, consumerGroup, logger),
		streamRepo:   streamRepo,
		statsRepo:    statsRepo,
		consumerName: consumerName,
		batchSize:    batchSize,
		readPending:  true,
	}
}

// Start запускает воркер
func (w *OpensWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting OpensWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *OpensWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	if time.Since(w.lastClaim) >= claimInterval {
		w.claimStale(ctx)
	}

	// 1. Читаем batch
	messages, err := w.nextBatch(ctx)
	if err != nil {
		return 0, err
	}

	if len(messages) == 0 {
		return 0, nil
	}

	// 2. Считаем открытия; битые сообщения тоже подтверждаем, чтобы не застревали
	deltas := make(map[string]int64)
	messageIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		messageIDs = append(messageIDs, msg.ID)

		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.WorkerMessagesTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if event.Action == domain.ActionOpen {
			deltas[event.FieldID]++
		}
	}

	// 3. Пишем счётчики; при ошибке не подтверждаем и перечитываем PEL
	if err := w.statsRepo.IncrementOpens(ctx, deltas); err != nil {
		w.readPending = true
		metrics.WorkerMessagesTotal.WithLabelValues("failed").Add(float64(len(messages)))
		return 0, fmt.Errorf("increment opens: %w", err)
	}

	// 4. ACK
	if err := w.streamRepo.AckMessages(ctx, w.Stream(), w.ConsumerGroup(), messageIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	metrics.WorkerMessagesTotal.WithLabelValues("processed").Add(float64(len(messages)))
	logger.Debug("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("fields", len(deltas)))

	return len(messages), nil
}

// nextBatch отдаёт неподтверждённые сообщения, пока они есть, затем новые
func (w *OpensWorker) nextBatch(ctx context.Context) ([]domain.StreamMessage, error) {
	if w.readPending {
		messages, err := w.streamRepo.ConsumePending(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to consume pending: %w", err)
		}
		if len(messages) > 0 {
			return messages, nil
		}
		w.readPending = false
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

func (w *OpensWorker) claimStale(ctx context.Context) {
	w.lastClaim = time.Now()

	claimed, err := w.streamRepo.ClaimStale(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, staleIdle, w.batchSize)
	if err != nil {
		w.Logger().Warn("Failed to claim stale messages", zap.Error(err))
		return
	}
	if claimed > 0 {
		w.readPending = true
	}
}

func parseMessage(msg domain.StreamMessage) (*domain.InteractionEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("empty payload")
	}

	var event domain.InteractionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	switch event.Action {
	case domain.ActionOpen:
		if event.FieldID == "" {
			return nil, fmt.Errorf("open event without field_id")
		}
	case domain.ActionClose:
	default:
		return nil, fmt.Errorf("unknown action %q", event.Action)
	}
	return &event, nil
}
