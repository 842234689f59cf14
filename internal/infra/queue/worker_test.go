package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
)

type recordingMailer struct {
	to   string
	data mail.ConfirmationData
	err  error
}

func (m *recordingMailer) SendBookingConfirmation(to string, data mail.ConfirmationData) error {
	m.to = to
	m.data = data
	return m.err
}

type recordingUpdater struct {
	id     string
	status string
	err    error
}

func (u *recordingUpdater) UpdateStatus(ctx context.Context, id, status string) error {
	u.id = id
	u.status = status
	return u.err
}

func TestProcessMessageSendsMailAndConfirms(t *testing.T) {
	mailer := &recordingMailer{}
	updater := &recordingUpdater{}
	w := NewWorker(nil, mailer, updater)

	payload := ConfirmationPayload{
		BookingID:     "bk-1",
		Name:          "Anna",
		Email:         "anna@example.com",
		Postcode:      "OL6 7PT",
		CollectionDay: "tuesday",
		PricePence:    1100,
	}

	require.NoError(t, w.ProcessMessage(context.Background(), payload))

	assert.Equal(t, "anna@example.com", mailer.to)
	assert.Equal(t, "£11.00", mailer.data.PriceDisplay)
	assert.Equal(t, "tuesday", mailer.data.CollectionDay)
	assert.Equal(t, "bk-1", updater.id)
	assert.Equal(t, entity.BookingConfirmed, updater.status)
}

func TestProcessMessageMailFailureLeavesBookingPending(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	updater := &recordingUpdater{}
	w := NewWorker(nil, mailer, updater)

	err := w.ProcessMessage(context.Background(), ConfirmationPayload{BookingID: "bk-1", Email: "anna@example.com"})
	require.Error(t, err)
	assert.Empty(t, updater.id, "status must not change when the email was never sent")
}

func TestProcessMessageStatusUpdateFailureIsNotFatal(t *testing.T) {
	mailer := &recordingMailer{}
	updater := &recordingUpdater{err: errors.New("db down")}
	w := NewWorker(nil, mailer, updater)

	// The email went out, so the message must be acked even though the
	// status write failed.
	assert.NoError(t, w.ProcessMessage(context.Background(), ConfirmationPayload{BookingID: "bk-1", Email: "anna@example.com"}))
}
