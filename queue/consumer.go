package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"backend/pkg/mailer"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Consumer drains the notification queues and turns events into
// emails. It runs a reconnect loop with backoff and never stops the
// server: a message that cannot be handled is logged and rejected.
type Consumer struct {
	URL    string
	Mailer mailer.Mailer
	Log    zerolog.Logger
}

func NewConsumer(url string, m mailer.Mailer, log zerolog.Logger) *Consumer {
	return &Consumer{URL: url, Mailer: m, Log: log}
}

// Start blocks; run it in its own goroutine.
func (c *Consumer) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn().Err(err).Dur("retryIn", backoff).Msg("consumer dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consume(conn); err != nil {
			c.Log.Warn().Err(err).Msg("consume loop ended, reconnecting")
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func (c *Consumer) consume(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn().Err(err).Msg("set QoS failed")
	}

	for _, q := range []string{QueueOrderConfirmed, QueueRentalDue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
	}

	confirmed, err := ch.Consume(QueueOrderConfirmed, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueOrderConfirmed, err)
	}
	due, err := ch.Consume(QueueRentalDue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueRentalDue, err)
	}

	for {
		select {
		case d, ok := <-confirmed:
			if !ok {
				return fmt.Errorf("%s channel closed", QueueOrderConfirmed)
			}
			c.ack(d, c.handleOrderConfirmed(d.Body))
		case d, ok := <-due:
			if !ok {
				return fmt.Errorf("%s channel closed", QueueRentalDue)
			}
			c.ack(d, c.handleRentalDue(d.Body))
		}
	}
}

func (c *Consumer) ack(d amqp.Delivery, err error) {
	if err != nil {
		c.Log.Warn().Err(err).Str("queue", d.RoutingKey).Msg("handle message failed")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) handleOrderConfirmed(body []byte) error {
	var ev OrderConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	subject := fmt.Sprintf("Order #%d confirmed", ev.OrderID)
	msg := fmt.Sprintf("Your rental order #%d is confirmed. Amount paid: %.2f.", ev.OrderID, float64(ev.Amount)/100)
	return c.Mailer.Send(ev.Email, subject, msg)
}

func (c *Consumer) handleRentalDue(body []byte) error {
	var ev RentalDueEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	subject := fmt.Sprintf("Rental due tomorrow: %s", ev.ProductName)
	msg := fmt.Sprintf("Reminder: %s from order #%d is due back on %s.",
		ev.ProductName, ev.OrderID, ev.DueDate.Format("2006-01-02"))
	return c.Mailer.Send(ev.Email, subject, msg)
}
