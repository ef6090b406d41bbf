package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fundraiser-store/internal/mailer"
	"github.com/segmentio/kafka-go"
)

// Kafka publishes OrderPlaced events keyed by order id; cmd/notifier sends the mail.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Kafka{writer: writer}
}

func (k *Kafka) Notify(ctx context.Context, req mailer.ConfirmationRequest) error {
	value, err := encodeOrderPlaced(req)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.OrderID),
		Value: value,
		Time:  time.Now(),
	})
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func encodeOrderPlaced(req mailer.ConfirmationRequest) ([]byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode confirmation: %w", err)
	}
	return json.Marshal(Event{EventType: EventOrderPlaced, OrderID: req.OrderID, Data: data})
}

type MessageHandler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	reader *kafka.Reader
	logger *log.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *log.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, logger: logger}
}

// Consume reads until ctx is cancelled. Handler errors are logged and the
// offset still advances; confirmation emails are never retried.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Printf("read message: %v", err)
			continue
		}
		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			c.logger.Printf("handle message key=%s: %v", msg.Key, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
