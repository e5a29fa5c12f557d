// Package queue carries order and rental notifications over RabbitMQ.
// Publishing is best effort: errors are logged and returned so callers
// can ignore them without interrupting the request flow.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Publisher struct {
	URL string
	Log zerolog.Logger
}

func NewPublisher(url string, log zerolog.Logger) *Publisher {
	return &Publisher{URL: url, Log: log}
}

func (p *Publisher) OrderConfirmed(ctx context.Context, ev OrderConfirmedEvent) error {
	return p.publish(ctx, QueueOrderConfirmed, ev)
}

func (p *Publisher) RentalDue(ctx context.Context, ev RentalDueEvent) error {
	return p.publish(ctx, QueueRentalDue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// idempotent declare; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.Log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.Log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq publish failed")
	}
	return err
}
