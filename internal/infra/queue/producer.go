package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConfirmationPayload is the booking-confirmation email job. The booking
// row is already committed by the time this is published; losing the
// message never loses the booking.
type ConfirmationPayload struct {
	BookingID     string `json:"booking_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Postcode      string `json:"postcode"`
	CollectionDay string `json:"collection_day"`
	PricePence    int    `json:"price_pence"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishConfirmation(ctx context.Context, payload ConfirmationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish confirmation: %w", err)
	}
	return nil
}
