package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultAuditQueue receives every reservation.* event for the audit log.
const DefaultAuditQueue = "reservations.audit"

// AuditConsumer listens to reservation events and appends one line per
// event to a log file (logs/reservations.log by default).
type AuditConsumer struct {
	URL      string
	Exchange string
	Queue    string
	LogPath  string
	Logger   echo.Logger
}

// Run connects to RabbitMQ, binds the audit queue to reservation.* and
// consumes until ctx is cancelled.  Broken connections are re-dialled with
// exponential backoff capped at 30 seconds.  Malformed messages are
// rejected without requeue so they cannot loop.
func (c *AuditConsumer) Run(ctx context.Context) error {
	c.defaults()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Logger.Warnj(log.JSON{"msg": "reservation consumer: dial failed", "error": err.Error(), "retry_in": backoff.String()})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warnj(log.JSON{"msg": "reservation consumer: loop ended, reconnecting", "error": fmt.Sprint(err)})
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *AuditConsumer) defaults() {
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}
	if c.Queue == "" {
		c.Queue = DefaultAuditQueue
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join("logs", "reservations.log")
	}
	if c.Logger == nil {
		c.Logger = log.New("queue")
	}
}

func (c *AuditConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Logger.Warnf("reservation consumer: set QoS failed: %v", err)
	}
	if err := ch.ExchangeDeclare(c.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(c.Queue, "reservation.*", c.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handleMessage(d.Body); err != nil {
			c.Logger.Errorj(log.JSON{"msg": "reservation consumer: handle message failed", "error": err.Error()})
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func (c *AuditConsumer) handleMessage(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Event == "" || ev.ReservationID == 0 {
		return errors.New("event name and reservation id are required")
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatAuditLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatAuditLine(ev ReservationEvent) string {
	total := "n/a"
	if ev.TotalPriceCents != nil {
		total = fmt.Sprintf("%d cents", *ev.TotalPriceCents)
	}
	customer := "anonymous"
	if ev.CustomerID != nil {
		customer = fmt.Sprintf("%d", *ev.CustomerID)
	}
	return fmt.Sprintf("[%s] %s | reservation_id=%d | status=%s | venue_id=%d | venue=%q | date=%s | guests=%d | customer=%s | email=%s | total=%s\n",
		ev.OccurredAt, ev.Event, ev.ReservationID, ev.Status, ev.VenueID, ev.VenueName, ev.EventDate, ev.GuestCount, customer, ev.CustomerEmail, total)
}
