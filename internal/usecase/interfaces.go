package usecase

import (
	"context"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
	"github.com/freshbins/freshbins-api/internal/infra/queue"
)

type AbandonedFormRepositoryInterface interface {
	Save(ctx context.Context, form *entity.AbandonedForm) (string, error)
	FindByID(ctx context.Context, formID string) (*entity.AbandonedForm, error)
	FindAll(ctx context.Context) ([]entity.AbandonedForm, error)
	UpdateStatus(ctx context.Context, formID string, status entity.FormStatus, notes string) error
	AppendEvent(ctx context.Context, event entity.ContactEvent) (entity.FormStatus, error)
	MarkOpened(ctx context.Context, trackingID string) (bool, error)
	Delete(ctx context.Context, formID string) error
	DeleteAll(ctx context.Context) error
}

type BookingRepositoryInterface interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindAll(ctx context.Context) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type ServiceAreaRepositoryInterface interface {
	FindByOutwardCode(ctx context.Context, outward string) (*entity.ServiceArea, error)
}

// AreaCache fronts the service_areas table for the postcode gate. found
// reports whether the cache has an answer at all; a cached "not covered"
// comes back as (nil, true, nil).
type AreaCache interface {
	Get(ctx context.Context, outward string) (area *entity.ServiceArea, found bool, err error)
	Set(ctx context.Context, outward string, area *entity.ServiceArea) error
}

type EmailService interface {
	SendRecovery(to, template string, data mail.RecoveryData) error
}

type QueueProducerInterface interface {
	PublishConfirmation(ctx context.Context, payload queue.ConfirmationPayload) error
}
