package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/mail"
)

// SendRecoveryEmailUseCase renders one of the fixed recovery templates,
// dispatches it over SMTP and, only after the transport accepted it, logs
// an email contact event carrying the pixel tracking id. A transport
// failure fails the whole call; nothing is recorded.
type SendRecoveryEmailUseCase struct {
	Repo   AbandonedFormRepositoryInterface
	Mailer EmailService
}

func NewSendRecoveryEmailUseCase(repo AbandonedFormRepositoryInterface, mailer EmailService) *SendRecoveryEmailUseCase {
	return &SendRecoveryEmailUseCase{Repo: repo, Mailer: mailer}
}

func (uc *SendRecoveryEmailUseCase) Execute(ctx context.Context, input SendRecoveryEmailInput) (*SendRecoveryEmailOutput, error) {
	if input.FormID == "" {
		return nil, &DomainError{Code: "MISSING_FORM_ID", Message: "formId is required"}
	}
	if input.Email == "" {
		return nil, &DomainError{Code: "MISSING_EMAIL", Message: "email is required"}
	}
	if !mail.IsValidRecoveryTemplate(input.Template) {
		return nil, &DomainError{Code: "UNKNOWN_TEMPLATE", Message: "unknown email template: " + input.Template}
	}

	if _, err := uc.Repo.FindByID(ctx, input.FormID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, &DomainError{Code: "FORM_NOT_FOUND", Message: "no abandoned form with that id"}
		}
		log.Printf("send-email: lookup failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load form"}
	}

	// the formId rides as a prefix of the pixel id so the open endpoint
	// can find its way back to the record with a single cut
	trackingID := input.FormID + "." + uuid.New().String()

	data := mail.RecoveryData{
		Name:       input.CustomerName,
		Postcode:   input.Postcode,
		TrackingID: trackingID,
	}
	if err := uc.Mailer.SendRecovery(input.Email, input.Template, data); err != nil {
		log.Printf("send-email: SMTP dispatch failed: %v", err)
		return nil, &TechnicalError{Code: "EMAIL_SEND_FAILED", Message: "failed to send email"}
	}

	event := entity.ContactEvent{
		ID:         uuid.New().String(),
		FormID:     input.FormID,
		Type:       entity.ContactEmail,
		Details:    fmt.Sprintf("Sent %q recovery email to %s", input.Template, input.Email),
		Template:   input.Template,
		TrackingID: trackingID,
		OccurredAt: time.Now(),
	}

	status, err := uc.Repo.AppendEvent(ctx, event)
	if err != nil {
		log.Printf("send-email: append failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "email sent but contact event could not be recorded"}
	}

	return &SendRecoveryEmailOutput{Success: true, Status: string(status), TrackingID: trackingID}, nil
}
