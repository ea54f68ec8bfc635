package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const catalogExchange = "homologation.catalog"

// CatalogUpdatedEvent notifies downstream consumers (the conversational
// agent, other replicas) that a category's catalog moved to a new version and
// any warm snapshot for an older version is stale.
type CatalogUpdatedEvent struct {
	Category  string    `json:"category"`
	Version   int64     `json:"version"`
	Entity    string    `json:"entity"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogPublisher publishes catalog-change events. A nil publisher is valid
// and drops events, so the service keeps quoting when the broker is down.
type CatalogPublisher struct {
	conn *RabbitMQConnection
}

func NewCatalogPublisher(conn *RabbitMQConnection) (*CatalogPublisher, error) {
	err := conn.Channel.ExchangeDeclare(
		catalogExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare catalog exchange: %w", err)
	}
	return &CatalogPublisher{conn: conn}, nil
}

// PublishCatalogUpdated emits a catalog.updated.<category> event. Failures
// are logged, not propagated: the write that triggered the event already
// committed and version-keyed caches self-invalidate anyway.
func (p *CatalogPublisher) PublishCatalogUpdated(ctx context.Context, category string, version int64, entity string) {
	if p == nil {
		return
	}

	payload := CatalogUpdatedEvent{
		Category:  category,
		Version:   version,
		Entity:    entity,
		Timestamp: time.Now(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal catalog event", "error", err)
		return
	}

	routingKey := fmt.Sprintf("catalog.updated.%s", category)
	err = p.conn.Channel.PublishWithContext(ctx,
		catalogExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("failed to publish catalog event", "routing_key", routingKey, "error", err)
		return
	}

	slog.Info("catalog event published", "category", category, "version", version, "entity", entity)
}
