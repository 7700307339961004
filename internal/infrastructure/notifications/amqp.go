package notifications

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"firmdesk.backend/pkg/logger"
)

// NotificationQueue is the queue workflow events are published to.
const NotificationQueue = "notifications"

// AMQPNotifier publishes events to a RabbitMQ queue and mirrors them to the
// log. Publish failures are logged and swallowed.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logOnly *LogNotifier
}

// NewAMQPNotifier dials the broker and declares the notification queue
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("amqp url is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPNotifier{
		conn:    conn,
		channel: ch,
		queue:   NotificationQueue,
		logOnly: NewLogNotifier(),
	}, nil
}

// Notify publishes the event and logs it
func (n *AMQPNotifier) Notify(ctx context.Context, event Event) {
	n.logOnly.Notify(ctx, event)

	body, err := json.Marshal(event)
	if err != nil {
		logger.WithContext(ctx).Error("notification marshal failed", zap.Error(err))
		return
	}

	err = n.channel.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   newMessageID(),
		Body:        body,
	})
	if err != nil {
		logger.WithContext(ctx).Error("notification publish failed",
			zap.String("type", event.Type),
			zap.Error(err),
		)
	}
}

// Close closes the underlying channel and connection
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

func newMessageID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}
