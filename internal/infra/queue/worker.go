package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
)

type ConfirmationMailer interface {
	SendBookingConfirmation(to string, data mail.ConfirmationData) error
}

type BookingStatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// Worker drains the confirmation queue and sends booking emails. A failed
// send is nacked without requeue so the message dead-letters instead of
// spinning against a broken SMTP server.
type Worker struct {
	Channel  *amqp.Channel
	Mailer   ConfirmationMailer
	Bookings BookingStatusUpdater
}

func NewWorker(ch *amqp.Channel, mailer ConfirmationMailer, bookings BookingStatusUpdater) *Worker {
	return &Worker{Channel: ch, Mailer: mailer, Bookings: bookings}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("worker: failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ConfirmationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("worker: malformed message, dropping: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.ProcessMessage(context.Background(), payload); err != nil {
				log.Printf("worker: confirmation for booking %s failed: %s", payload.BookingID, err)
				d.Nack(false, false)
			} else {
				log.Printf("worker: confirmation sent for booking %s", payload.BookingID)
				d.Ack(false)
			}
		}
	}()

	log.Printf("worker: waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) ProcessMessage(ctx context.Context, payload ConfirmationPayload) error {
	data := mail.ConfirmationData{
		Name:          payload.Name,
		Postcode:      payload.Postcode,
		CollectionDay: payload.CollectionDay,
		PriceDisplay:  fmt.Sprintf("£%.2f", float64(payload.PricePence)/100),
	}

	if err := w.Mailer.SendBookingConfirmation(payload.Email, data); err != nil {
		return err
	}

	// booking stays valid even if this update fails; confirmed is a
	// courtesy label, not a precondition for the clean
	if err := w.Bookings.UpdateStatus(ctx, payload.BookingID, entity.BookingConfirmed); err != nil {
		log.Printf("worker: booking %s emailed but status update failed: %s", payload.BookingID, err)
	}
	return nil
}
