package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	keyPlayerCredentials = "notifications.player.credentials"
	keyOrganizerQR       = "notifications.organizer.qr"
	keyBookingCancelled  = "notifications.booking.cancelled"
)

// AMQPNotifier publishes events to a durable topic exchange.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(url, exchange string) (*AMQPNotifier, error) {
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
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

func (n *AMQPNotifier) publish(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
}

func (n *AMQPNotifier) PlayerCredentials(ctx context.Context, ev PlayerCredentialsEvent) error {
	return n.publish(ctx, keyPlayerCredentials, ev)
}

func (n *AMQPNotifier) OrganizerQRIssued(ctx context.Context, ev OrganizerQRIssuedEvent) error {
	return n.publish(ctx, keyOrganizerQR, ev)
}

func (n *AMQPNotifier) BookingCancelled(ctx context.Context, ev BookingCancelledEvent) error {
	return n.publish(ctx, keyBookingCancelled, ev)
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
