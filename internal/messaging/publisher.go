package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	_ interfaces.EventPublisher = (*RabbitMQPublisher)(nil)
	_ interfaces.EventPublisher = NoopPublisher{}
)

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes domain events as persistent JSON messages to one queue.
type RabbitMQPublisher struct {
	mu        sync.Mutex
	ch        channel
	queueName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRabbitMQPublisher opens a channel on conn and declares the durable events queue.
func NewRabbitMQPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: failed to declare queue %q: %w", queueName, err)
	}
	return newPublisher(ch, queueName, logger), nil
}

func newPublisher(ch channel, queueName string, logger *zap.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		ch:        ch,
		queueName: queueName,
		timeout:   5 * time.Second,
		logger:    logger.Named("EventPublisher"),
	}
}

// Publish sends event to the queue through the default exchange.
func (p *RabbitMQPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event publisher: failed to marshal %s: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	})
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("Failed to publish event", zap.String("type", string(event.Type)), zap.Int64("entityID", event.EntityID), zap.Error(err))
		return fmt.Errorf("event publisher: %w", models.ErrUpstream)
	}

	p.logger.Debug("Event published", zap.String("type", string(event.Type)), zap.Int64("entityID", event.EntityID))
	return nil
}

// Close closes the underlying channel.
func (p *RabbitMQPublisher) Close() error {
	return p.ch.Close()
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.DomainEvent) error { return nil }
