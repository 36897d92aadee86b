package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/wedding-venue-booking/internal/model"
)

// DefaultExchange is the topic exchange reservation events are published
// to.  Routing keys are the event names, e.g. "reservation.created".
const DefaultExchange = "reservations"

// publishChannel is the subset of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes reservation events to a durable topic exchange.  One
// connection and channel are kept open for the life of the process; a
// channel is not safe for concurrent publishing so calls are serialised.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       publishChannel
	exchange string
	now      func() time.Time
}

// NewPublisher dials url and declares exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// PublishReservation sends a ReservationEvent with routing key event.
// Messages are persistent.  Errors are returned so the caller can log
// them; the caller decides whether they matter.
func (p *Publisher) PublishReservation(ctx context.Context, event string, r *model.Reservation, v *model.Venue) error {
	ev := NewReservationEvent(event, r, v, p.now())
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.MessageID,
		Timestamp:    p.now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
