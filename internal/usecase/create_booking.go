package usecase

import (
	"context"
	"encoding/json"
	"log"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/queue"
)

// Per-bin monthly price. Kept as a constant table until pricing moves into
// the database.
const (
	firstBinPricePence      = 650
	additionalBinPricePence = 450
)

// CreateBookingUseCase persists a completed booking and enqueues the
// confirmation email. The email leg is deliberately fire-and-forget: a
// queue failure is logged and the booking still succeeds.
type CreateBookingUseCase struct {
	Repo     BookingRepositoryInterface
	Producer QueueProducerInterface
}

func NewCreateBookingUseCase(repo BookingRepositoryInterface, producer QueueProducerInterface) *CreateBookingUseCase {
	return &CreateBookingUseCase{Repo: repo, Producer: producer}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*CreateBookingOutput, error) {
	validationErrors := ValidateCreateBookingInput(input)
	if len(validationErrors) > 0 {
		msg := "validation failed: "
		for _, e := range validationErrors {
			msg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: msg}
	}

	booking, err := entity.NewBooking(
		input.Name, input.Email, input.Phone, input.Address,
		entity.NormalizePostcode(input.Postcode),
		input.Bins, input.CollectionDay, input.PaymentMethod,
		priceFor(input.Bins),
	)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_BOOKING", Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, booking); err != nil {
		log.Printf("booking: create failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to save booking"}
	}

	payload := queue.ConfirmationPayload{
		BookingID:     booking.ID,
		Name:          booking.Name,
		Email:         booking.Email,
		Postcode:      booking.Postcode,
		CollectionDay: booking.CollectionDay,
		PricePence:    booking.PricePence,
	}
	if err := uc.Producer.PublishConfirmation(ctx, payload); err != nil {
		// booking already committed; confirmation email must not undo it
		log.Printf("booking: confirmation enqueue failed for %s: %v", booking.ID, err)
	}

	return &CreateBookingOutput{
		Success:    true,
		BookingID:  booking.ID,
		Status:     booking.Status,
		PricePence: booking.PricePence,
	}, nil
}

func priceFor(bins json.RawMessage) int {
	var selected []json.RawMessage
	if err := json.Unmarshal(bins, &selected); err != nil || len(selected) == 0 {
		return firstBinPricePence
	}
	return firstBinPricePence + (len(selected)-1)*additionalBinPricePence
}
