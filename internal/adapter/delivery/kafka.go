// Package delivery hands committed notifications to the outbound channel
// gateways. The gateways themselves live outside this service.
package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/heartmarshall/huddle-backend/internal/domain"
)

// Envelope is the wire format published for each notification.
type Envelope struct {
	ID         string    `json:"id"`
	TargetID   string    `json:"target_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	Kind       string    `json:"kind"`
	Channel    string    `json:"channel"`
	Message    string    `json:"message"`
	AuditLogID string    `json:"audit_log_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewEnvelope converts a notification to its wire format.
func NewEnvelope(n domain.Notification) Envelope {
	e := Envelope{
		ID:         n.ID.String(),
		TargetID:   n.TargetID.String(),
		Kind:       string(n.Kind),
		Channel:    string(n.Channel),
		Message:    n.Message,
		AuditLogID: n.AuditLogID.String(),
		CreatedAt:  n.CreatedAt,
	}
	if n.EntityID != nil {
		e.EntityID = n.EntityID.String()
	}
	return e
}

// messageWriter is the subset of *kafka.Writer used by KafkaSink.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes notifications to a Kafka topic keyed by target user,
// so one user's notifications stay ordered within a partition.
type KafkaSink struct {
	writer  messageWriter
	brokers []string
	timeout time.Duration
	log     *slog.Logger
}

// NewKafkaSink creates a sink writing to topic on the given brokers.
func NewKafkaSink(log *slog.Logger, brokers []string, topic string, writeTimeout time.Duration) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			WriteTimeout: writeTimeout,
		},
		brokers: brokers,
		timeout: writeTimeout,
		log:     log.With("sink", "kafka"),
	}
}

// Deliver publishes every notification in one batch.
func (s *KafkaSink) Deliver(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(notifications))
	for _, n := range notifications {
		value, err := json.Marshal(NewEnvelope(n))
		if err != nil {
			return fmt.Errorf("marshal notification %s: %w", n.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(n.TargetID.String()),
			Value: value,
			Time:  n.CreatedAt,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d notifications: %w", len(msgs), err)
	}

	s.log.DebugContext(ctx, "notifications published", slog.Int("count", len(msgs)))
	return nil
}

// Ping opens and closes a connection to the first reachable broker.
func (s *KafkaSink) Ping(ctx context.Context) error {
	var lastErr error
	for _, addr := range s.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no brokers configured")
	}
	return fmt.Errorf("dial kafka: %w", lastErr)
}

// Close flushes and closes the underlying writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// LogSink logs notifications instead of sending them. Used when no broker
// is configured.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log.With("sink", "log")}
}

// Deliver logs one line per notification.
func (s *LogSink) Deliver(ctx context.Context, notifications []domain.Notification) error {
	for _, n := range notifications {
		s.log.InfoContext(ctx, "notification",
			slog.String("id", n.ID.String()),
			slog.String("target_id", n.TargetID.String()),
			slog.String("kind", string(n.Kind)),
			slog.String("channel", string(n.Channel)),
			slog.String("message", n.Message),
		)
	}
	return nil
}

// Close is a no-op.
func (s *LogSink) Close() error { return nil }
