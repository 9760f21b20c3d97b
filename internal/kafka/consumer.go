package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads ticket events for the notification worker. Raw messages stay
// inside this package; callers only see decoded TicketEvents.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeTicketEvents blocks reading the topic, decoding each message and
// passing it to handler. Malformed payloads are logged and skipped so one bad
// message cannot wedge the group; handler errors stop the loop.
func (c *Consumer) ConsumeTicketEvents(ctx context.Context, handler func(context.Context, TicketEvent) error) error {
	decode := ticketEventHandler(handler)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := decode(ctx, msg); err != nil {
			return err
		}
	}
}

func ticketEventHandler(handler func(context.Context, TicketEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event TicketEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode ticket event (key %s): %v", msg.Key, err)
			return nil
		}
		return handler(ctx, event)
	}
}
