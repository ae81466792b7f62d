package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Event names published on the events queue.
const (
	EventTicketSold          = "ticket.sold"
	EventTicketStatusChanged = "ticket.status_changed"
	EventParcelReceived      = "parcel.received"
	EventParcelStatusChanged = "parcel.status_changed"
	EventCashClosed          = "cash.closed"
)

// Publisher pushes domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, name string, payload any) error
	Close() error
}

type envelope struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

const (
	dialTimeout    = 3 * time.Second
	reconnectDelay = 15 * time.Second
)

// ErrBrokerUnavailable is returned while a reconnect is held off after a
// failed dial.
var ErrBrokerUnavailable = errors.New("broker unavailable")

type amqpPublisher struct {
	mu    sync.Mutex
	url   string
	queue string
	conn  *amqp.Connection
	ch    *amqp.Channel
	log   *zap.Logger

	// retryAt holds reconnects off so callers do not queue behind dials
	// to a broker that is down.
	retryAt time.Time
	now     func() time.Time
}

// NewPublisher dials RabbitMQ and declares the durable events queue. An empty
// URL yields a publisher that only logs.
func NewPublisher(cfg utils.BrokerConfig, log *zap.Logger) (Publisher, error) {
	log = log.With(zap.String("component", "broker"))
	if cfg.URL == "" {
		log.Info("RABBITMQ_URL not set, events will only be logged")
		return NewLogPublisher(log), nil
	}

	p := &amqpPublisher{url: cfg.URL, queue: cfg.Queue, log: log, now: time.Now}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *amqpPublisher) connect() error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare %s: %w", p.queue, err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *amqpPublisher) Publish(ctx context.Context, name string, payload any) error {
	body, err := json.Marshal(envelope{
		ID:         uuid.NewString(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// reconnect lazily after the broker dropped us
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if p.now().Before(p.retryAt) {
			return fmt.Errorf("publish event %s: %w", name, ErrBrokerUnavailable)
		}
		if err := p.connect(); err != nil {
			p.retryAt = p.now().Add(reconnectDelay)
			return err
		}
		p.retryAt = time.Time{}
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         name,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event %s: %w", name, err)
	}

	p.log.Debug("Event published", zap.String("event", name))
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type logPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) Publisher {
	return &logPublisher{log: log}
}

func (p *logPublisher) Publish(ctx context.Context, name string, payload any) error {
	p.log.Info("Event", zap.String("event", name), zap.Any("payload", payload))
	return nil
}

func (p *logPublisher) Close() error { return nil }
