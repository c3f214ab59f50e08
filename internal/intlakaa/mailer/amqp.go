package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyInvite is the topic invite emails are published under.
const RoutingKeyInvite = "mail.admin_invite"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPMailer publishes invite emails as JSON to a topic exchange.
type AMQPMailer struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQPMailer dials url and declares a durable topic exchange.
func NewAMQPMailer(url, exchange string) (*AMQPMailer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("mailer: dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("mailer: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("mailer: declare exchange: %w", err)
	}
	return &AMQPMailer{conn: conn, ch: ch, exchange: exchange}, nil
}

func (m *AMQPMailer) SendInvite(ctx context.Context, msg InviteEmail) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	err = m.ch.PublishWithContext(ctx, m.exchange, RoutingKeyInvite, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         "admin_invite",
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("mailer: publish invite: %w", err)
	}
	return nil
}

func (m *AMQPMailer) Close() error {
	if m.ch != nil {
		_ = m.ch.Close()
	}
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
