package email

import (
	"context"
	"fmt"

	"github.com/zvrva/ticketing/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	fmt.Printf("send email to %s: ticket %d issued for itinerary %s, boarding number %s, fare %.2f\n",
		event.PassengerEmail, event.TicketID, event.PNR, event.BoardingNumber, event.Fare)
	return nil
}
