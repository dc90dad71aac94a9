package promptlog

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPRecorder mirrors prompt log entries to a durable queue so an external
// audit pipeline can consume them. Like the file recorder, publish failures
// are reported and swallowed.
type AMQPRecorder struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

type auditEntry struct {
	Timestamp string `json:"timestamp"`
	Persona   string `json:"persona"`
	Message   string `json:"message"`
}

func NewAMQPRecorder(url, queue string, log *zap.Logger) (*AMQPRecorder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPRecorder{conn: conn, ch: ch, queue: queue, log: log}, nil
}

func (r *AMQPRecorder) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *AMQPRecorder) Record(personaName, message string) {
	body, err := json.Marshal(auditEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Persona:   personaName,
		Message:   message,
	})
	if err != nil {
		r.log.Error("failed to marshal audit entry", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = r.ch.PublishWithContext(ctx,
		"",      // default exchange
		r.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		r.log.Error("failed to publish audit entry", zap.String("queue", r.queue), zap.Error(err))
	}
}
