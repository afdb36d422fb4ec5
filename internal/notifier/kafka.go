package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// MessageWriter is the subset of *kafka.Writer the forwarder needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaWriter returns an async writer bound to topic. Async keeps Emit
// from waiting on the broker; delivery errors surface through the logger.
func NewKafkaWriter(brokers, topic string, logger *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(SplitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("kafka delivery failed", "err", err, "messages", len(messages))
			}
		},
	}
}

// KafkaForwarder copies every bus event to Kafka so other processes can follow changes.
type KafkaForwarder struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaForwarder(w MessageWriter, logger *slog.Logger) *KafkaForwarder {
	return &KafkaForwarder{writer: w, logger: logger}
}

// Attach subscribes the forwarder to all events on bus.
func (f *KafkaForwarder) Attach(bus *Bus) func() {
	return bus.Subscribe(Wildcard, f.forward)
}

func (f *KafkaForwarder) forward(ctx context.Context, e Event) {
	value, err := json.Marshal(e)
	if err != nil {
		f.logger.ErrorContext(ctx, "encode event failed", "err", err, "event_type", e.Type)
		return
	}

	// Keying by staff keeps each staff member's changes on one partition, in order.
	key := e.StaffID
	if key == "" {
		key = e.SubjectID
	}

	headers := []kafka.Header{
		{Key: "event_id", Value: []byte(e.ID)},
		{Key: "event_type", Value: []byte(e.Type)},
	}
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: carrier.headers,
		Time:    e.OccurredAt,
	}
	// The request context may end right after Emit returns.
	if err := f.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		f.logger.ErrorContext(ctx, "kafka forward failed", "err", err, "event_id", e.ID)
	}
}

// ReadyCheck dials the first broker.
func ReadyCheck(brokers string) func(context.Context) error {
	return func(ctx context.Context) error {
		list := SplitBrokers(brokers)
		if len(list) == 0 {
			return nil
		}
		dialer := kafka.Dialer{Timeout: 2 * time.Second}
		conn, err := dialer.DialContext(ctx, "tcp", list[0])
		if err != nil {
			return err
		}
		return conn.Close()
	}
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
