package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shoplens/shoplens/internal/models"
)

// EventType identifies the kind of event on the stream.
type EventType string

const (
	// EventTypeProductDetected is published when a page load yields a
	// usable canonical product.
	EventTypeProductDetected EventType = "PRODUCT_DETECTED"
)

// DefaultStream is the Redis stream events are appended to.
const DefaultStream = "shoplens:events"

// RedisClient is the subset of the Redis API the publisher uses, kept as
// an interface for testing.
type RedisClient interface {
	XAdd(ctx context.Context, args *redis.XAddArgs) *redis.StringCmd
}

// ProductDetectedPayload is the wire form of a PRODUCT_DETECTED event.
type ProductDetectedPayload struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	Retailer  string              `json:"retailer,omitempty"`
	Product   *models.ProductInfo `json:"product"`
}

// Publisher appends product detections to a Redis stream so other parts of
// the application (price watchers, notifications) can consume them.
type Publisher struct {
	client RedisClient
	stream string
	logger *slog.Logger
}

func NewPublisher(client RedisClient, stream string, logger *slog.Logger) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger.With("component", "events"),
	}
}

// PublishProductDetected appends one PRODUCT_DETECTED event. Records that
// are not usable products are rejected before hitting the stream.
func (p *Publisher) PublishProductDetected(ctx context.Context, retailer string, product *models.ProductInfo) error {
	if !product.Usable() {
		return fmt.Errorf("refusing to publish non-product record for %s", product.URL)
	}

	payload := ProductDetectedPayload{
		EventID:   uuid.NewString(),
		EventType: string(EventTypeProductDetected),
		Timestamp: time.Now().UTC(),
		Retailer:  retailer,
		Product:   product,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"event_type": payload.EventType,
			"payload":    string(data),
		},
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published event",
		"event_id", payload.EventID,
		"event_type", payload.EventType,
		"url", product.URL)
	return nil
}
