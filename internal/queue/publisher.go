// Package queue publishes booking lifecycle events to RabbitMQ. Publishing
// is best-effort: failures are logged and never interrupt the request that
// triggered the event. A nil Publisher is valid and drops every event.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const bookingStatusQueue = "booking.status"

type BookingStatusEvent struct {
	BookingCode string    `json:"booking_code"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher connects to RabbitMQ using AMQP_URL and declares the booking
// status queue. Returns nil when AMQP_URL is unset or the broker is
// unreachable; callers run without event publishing in that case.
func NewPublisher() *Publisher {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed, event publishing disabled: %v", err)
		return nil
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed, event publishing disabled: %v", err)
		_ = conn.Close()
		return nil
	}
	// Durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(bookingStatusQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed, event publishing disabled: %v", err)
		_ = ch.Close()
		_ = conn.Close()
		return nil
	}
	return &Publisher{conn: conn, ch: ch}
}

// PublishBookingStatus emits a booking status change. Safe on a nil receiver.
func (p *Publisher) PublishBookingStatus(bookingCode, status string) {
	if p == nil {
		return
	}

	body, err := json.Marshal(BookingStatusEvent{
		BookingCode: bookingCode,
		Status:      status,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx,
		"",                 // default exchange
		bookingStatusQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("rabbitmq: publish failed for booking %s: %v", bookingCode, err)
	}
}

// Close releases the channel and connection. Safe on a nil receiver.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	_ = p.conn.Close()
}
