//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type InteractionEvent struct {
	EventID         uuid.UUID `json:"event_id"`
	SessionID       uuid.UUID `json:"session_id"`
	Action          string    `json:"action"`
	FieldID         string    `json:"field_id,omitempty"`
	PreviousFieldID string    `json:"previous_field_id,omitempty"`
	Version         uint64    `json:"version"`
	OccurredAt      time.Time `json:"occurred_at"`
}

const (
	stream   = "stream:field:interaction"
	opensKey = "fieldmap:stats:opens"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	fieldID := flag.String("field", "1", "Field id to open")
	count := flag.Int("n", 3, "How many open events to publish")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	before, _ := client.HGet(ctx, opensKey, *fieldID).Int64()

	sessionID := uuid.New()
	for i := 0; i < *count; i++ {
		event := InteractionEvent{
			EventID:    uuid.New(),
			SessionID:  sessionID,
			Action:     "open",
			FieldID:    *fieldID,
			Version:    uint64(2*i + 1),
			OccurredAt: time.Now().UTC(),
		}
		publish(ctx, client, event)

		publish(ctx, client, InteractionEvent{
			EventID:         uuid.New(),
			SessionID:       sessionID,
			Action:          "close",
			PreviousFieldID: *fieldID,
			Version:         uint64(2*i + 2),
			OccurredAt:      time.Now().UTC(),
		})
	}

	fmt.Printf("✅ Published %d open/close pairs for field %s\n", *count, *fieldID)
	fmt.Printf("\n⏳ Waiting for the worker to update %s...\n", opensKey)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for counters")
			return
		case <-ticker.C:
			now, err := client.HGet(ctx, opensKey, *fieldID).Int64()
			if err != nil && err != redis.Nil {
				continue
			}
			if now-before >= int64(*count) {
				fmt.Printf("✅ Counter for field %s: %d -> %d\n", *fieldID, before, now)
				return
			}
		}
	}
}

func publish(ctx context.Context, client *redis.Client, event InteractionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}
	fmt.Printf("   %s %-5s %s\n", id, event.Action, event.FieldID)
}
