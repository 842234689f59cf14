package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
	"github.com/freshbins/freshbins-api/internal/infra/queue"
)

type MockAbandonedFormRepository struct {
	mock.Mock
}

func (m *MockAbandonedFormRepository) Save(ctx context.Context, form *entity.AbandonedForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *MockAbandonedFormRepository) FindByID(ctx context.Context, formID string) (*entity.AbandonedForm, error) {
	args := m.Called(ctx, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AbandonedForm), args.Error(1)
}

func (m *MockAbandonedFormRepository) FindAll(ctx context.Context) ([]entity.AbandonedForm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AbandonedForm), args.Error(1)
}

func (m *MockAbandonedFormRepository) UpdateStatus(ctx context.Context, formID string, status entity.FormStatus, notes string) error {
	args := m.Called(ctx, formID, status, notes)
	return args.Error(0)
}

func (m *MockAbandonedFormRepository) AppendEvent(ctx context.Context, event entity.ContactEvent) (entity.FormStatus, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(entity.FormStatus), args.Error(1)
}

func (m *MockAbandonedFormRepository) MarkOpened(ctx context.Context, trackingID string) (bool, error) {
	args := m.Called(ctx, trackingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAbandonedFormRepository) Delete(ctx context.Context, formID string) error {
	args := m.Called(ctx, formID)
	return args.Error(0)
}

func (m *MockAbandonedFormRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockServiceAreaRepository struct {
	mock.Mock
}

func (m *MockServiceAreaRepository) FindByOutwardCode(ctx context.Context, outward string) (*entity.ServiceArea, error) {
	args := m.Called(ctx, outward)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ServiceArea), args.Error(1)
}

type MockAreaCache struct {
	mock.Mock
}

func (m *MockAreaCache) Get(ctx context.Context, outward string) (*entity.ServiceArea, bool, error) {
	args := m.Called(ctx, outward)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.ServiceArea), args.Bool(1), args.Error(2)
}

func (m *MockAreaCache) Set(ctx context.Context, outward string, area *entity.ServiceArea) error {
	args := m.Called(ctx, outward, area)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRecovery(to, template string, data mail.RecoveryData) error {
	args := m.Called(to, template, data)
	return args.Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishConfirmation(ctx context.Context, payload queue.ConfirmationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
