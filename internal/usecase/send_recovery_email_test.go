package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
)

func TestSendRecoveryEmailUnknownTemplate(t *testing.T) {
	repo := new(MockAbandonedFormRepository)
	mailer := new(MockEmailService)
	uc := NewSendRecoveryEmailUseCase(repo, mailer)

	_, err := uc.Execute(context.Background(), SendRecoveryEmailInput{
		FormID: "form-1", Email: "a@x.com", Template: "newsletter",
	})

	assert.True(t, IsDomainError(err))
	mailer.AssertNotCalled(t, "SendRecovery")
}

func TestSendRecoveryEmailTransportFailureLogsNothing(t *testing.T) {
	repo := new(MockAbandonedFormRepository)
	repo.On("FindByID", mock.Anything, "form-1").Return(&entity.AbandonedForm{FormID: "form-1"}, nil)

	mailer := new(MockEmailService)
	mailer.On("SendRecovery", "a@x.com", "reminder", mock.Anything).Return(errors.New("smtp 451"))

	uc := NewSendRecoveryEmailUseCase(repo, mailer)

	_, err := uc.Execute(context.Background(), SendRecoveryEmailInput{
		FormID: "form-1", Email: "a@x.com", Template: "reminder",
	})

	assert.True(t, IsTechnicalError(err))
	repo.AssertNotCalled(t, "AppendEvent")
}

func TestSendRecoveryEmailSuccess(t *testing.T) {
	repo := new(MockAbandonedFormRepository)
	repo.On("FindByID", mock.Anything, "form-1").Return(&entity.AbandonedForm{FormID: "form-1"}, nil)
	repo.On("AppendEvent", mock.Anything, mock.MatchedBy(func(ev entity.ContactEvent) bool {
		return ev.Type == entity.ContactEmail &&
			ev.Template == "discount" &&
			strings.HasPrefix(ev.TrackingID, "form-1.")
	})).Return(entity.StatusEmailSent, nil)

	mailer := new(MockEmailService)
	mailer.On("SendRecovery", "a@x.com", "discount", mock.MatchedBy(func(data mail.RecoveryData) bool {
		return data.Name == "Alice" && strings.HasPrefix(data.TrackingID, "form-1.")
	})).Return(nil)

	uc := NewSendRecoveryEmailUseCase(repo, mailer)

	output, err := uc.Execute(context.Background(), SendRecoveryEmailInput{
		FormID:       "form-1",
		Email:        "a@x.com",
		Template:     "discount",
		CustomerName: "Alice",
		Postcode:     "M1 1AA",
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "email_sent", output.Status)
	assert.True(t, strings.HasPrefix(output.TrackingID, "form-1."), "formId must ride as the tracking id prefix")
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}
