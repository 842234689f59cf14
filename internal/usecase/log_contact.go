package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/freshbins/freshbins-api/internal/entity"
)

// LogContactUseCase appends a phone or email outreach event to a form's
// contact history and returns the status derived from the full history.
type LogContactUseCase struct {
	Repo AbandonedFormRepositoryInterface
}

func NewLogContactUseCase(repo AbandonedFormRepositoryInterface) *LogContactUseCase {
	return &LogContactUseCase{Repo: repo}
}

func (uc *LogContactUseCase) Execute(ctx context.Context, input LogContactInput) (*LogContactOutput, error) {
	if input.FormID == "" {
		return nil, &DomainError{Code: "MISSING_FORM_ID", Message: "formId is required"}
	}
	if input.Type != entity.ContactPhone && input.Type != entity.ContactEmail {
		return nil, &DomainError{Code: "INVALID_CONTACT_TYPE", Message: "type must be phone or email"}
	}

	if _, err := uc.Repo.FindByID(ctx, input.FormID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, &DomainError{Code: "FORM_NOT_FOUND", Message: "no abandoned form with that id"}
		}
		log.Printf("log-contact: lookup failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load form"}
	}

	event := entity.ContactEvent{
		ID:         uuid.New().String(),
		FormID:     input.FormID,
		Type:       input.Type,
		Details:    input.Details,
		OccurredAt: time.Now(),
	}

	status, err := uc.Repo.AppendEvent(ctx, event)
	if err != nil {
		log.Printf("log-contact: append failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record contact event"}
	}

	return &LogContactOutput{Success: true, Status: string(status)}, nil
}
