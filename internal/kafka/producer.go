package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// TicketEvent is published after an issuance transaction commits and consumed
// by the notification worker.
type TicketEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	PNR            string    `json:"pnr"`
	TicketID       int64     `json:"ticket_id"`
	BoardingNumber string    `json:"boarding_number"`
	Fare           float64   `json:"fare"`
	PassengerEmail string    `json:"passenger_email"`
	IssuedAt       time.Time `json:"issued_at"`
}

const EventTicketIssued = "ticket_issued"

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
