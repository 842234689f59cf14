package usecase

import (
	"context"
	"encoding/json"
	"log"

	"github.com/freshbins/freshbins-api/internal/entity"
)

// CaptureFormUseCase stores an abandoned booking form snapshot. Snapshots
// with no contact details at all are skipped rather than rejected: the
// capture hook fires on a timer and an empty form is a normal outcome, not
// a client error.
type CaptureFormUseCase struct {
	Repo AbandonedFormRepositoryInterface
}

func NewCaptureFormUseCase(repo AbandonedFormRepositoryInterface) *CaptureFormUseCase {
	return &CaptureFormUseCase{Repo: repo}
}

func (uc *CaptureFormUseCase) Execute(ctx context.Context, input CaptureFormInput) (*CaptureFormOutput, error) {
	if !entity.HasContactInfo(input.FormData) {
		return &CaptureFormOutput{Success: true, Skipped: true}, nil
	}

	raw, err := json.Marshal(input.FormData)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_FORM_DATA", Message: "form data is not serializable"}
	}

	form := entity.NewAbandonedForm(raw, input.PageURL, input.UserAgent, input.TrackingID)

	// Save upserts on the client tracking id: repeated abandonments within
	// one browsing session refresh the existing record instead of piling
	// up duplicates, and the original formId is returned.
	formID, err := uc.Repo.Save(ctx, form)
	if err != nil {
		log.Printf("capture: save failed: %v", err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to store form snapshot"}
	}

	return &CaptureFormOutput{Success: true, FormID: formID}, nil
}
