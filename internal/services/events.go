package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/J1nSakai/mindbridge/internal/models"
)

// EventPublisher fans realtime updates out to WebSocket clients via Redis
// pub/sub. Each user has a dedicated channel so the hub can subscribe per
// connection.
type EventPublisher struct {
	redis *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redis: redisClient}
}

// Publish sends a message to the user's update channel. Delivery is
// best-effort; a failed publish is logged, never surfaced to the request.
func (p *EventPublisher) Publish(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("event marshal failed: %v", err)
		return
	}
	if err := p.redis.Publish(ctx, UserChannel(userID), string(data)).Err(); err != nil {
		log.Printf("event publish failed for %s: %v", userID, err)
	}
}

// UserChannel names the Redis pub/sub channel carrying a user's updates.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_updates:%s", userID.String())
}
