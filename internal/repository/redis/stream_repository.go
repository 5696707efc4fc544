package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sportsfield-microservice/internal/domain"
	"github.com/sportsfield-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// короткая блокировка XREADGROUP, чтобы воркер успевал заметить остановку
const batchBlock = 500 * time.Millisecond

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// MKSTREAM создаст стрим, если его нет; "0" - читаем и накопленные события
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil {
		// BUSYGROUP - группа уже существует
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает до maxCount новых сообщений группы
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	return r.readGroup(ctx, stream, group, consumer, ">", maxCount, batchBlock)
}

// ConsumePending читает сообщения, выданные consumer и ещё не подтверждённые
func (r *streamRepository) ConsumePending(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	// для истории PEL блокировка не нужна: Redis отвечает сразу
	return r.readGroup(ctx, stream, group, consumer, "0", maxCount, -1)
}

// ClaimStale забирает себе сообщения других consumer, не подтверждённые дольше minIdle
func (r *streamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) (int, error) {
	claimed := 0
	start := "0-0"

	for claimed < maxCount {
		ids, next, err := r.client.XAutoClaimJustID(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  minIdle,
			Start:    start,
			Count:    int64(maxCount - claimed),
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return claimed, ctx.Err()
			}
			r.logger.Error("Failed to claim stale messages",
				zap.String("stream", stream),
				zap.String("group", group),
				zap.Error(err))
			return claimed, fmt.Errorf("failed to claim stale messages: %w", err)
		}

		claimed += len(ids)
		if next == "0-0" || next == "" {
			break
		}
		start = next
	}

	if claimed > 0 {
		r.logger.Info("Claimed stale messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", claimed))
	}
	return claimed, nil
}

func (r *streamRepository) readGroup(ctx context.Context, stream, group, consumer, id string, maxCount int, block time.Duration) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, id},
		Count:    int64(maxCount),
		Block:    block,
	}).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.String("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, maxCount)
	for _, s := range result {
		for _, msg := range s.Messages {
			data, _ := msg.Values["data"].(string)
			// Сообщение без "data" (в том числе удалённое из стрима) отдаем как есть:
			// воркер подтвердит и пропустит его
			messages = append(messages, domain.StreamMessage{
				ID:   msg.ID,
				Data: data,
			})
		}
	}

	return messages, nil
}

// AckMessages подтверждает обработку сообщений
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	err := r.client.XAck(ctx, stream, group, messageIDs...).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Int("count", len(messageIDs)),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}

	r.logger.Debug("Messages acknowledged", zap.Int("count", len(messageIDs)))
	return nil
}

// PublishToStream публикует сообщение в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", result))
	return nil
}
