package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/http/middleware"
	"github.com/freshbins/freshbins-api/internal/usecase"
)

type AbandonedFormHandler struct {
	CaptureUC   *usecase.CaptureFormUseCase
	LogUC       *usecase.LogContactUseCase
	SendUC      *usecase.SendRecoveryEmailUseCase
	Repo        usecase.AbandonedFormRepositoryInterface
	rateLimiter *RateLimiter
}

func NewAbandonedFormHandler(
	captureUC *usecase.CaptureFormUseCase,
	logUC *usecase.LogContactUseCase,
	sendUC *usecase.SendRecoveryEmailUseCase,
	repo usecase.AbandonedFormRepositoryInterface,
) *AbandonedFormHandler {
	return &AbandonedFormHandler{
		CaptureUC:   captureUC,
		LogUC:       logUC,
		SendUC:      sendUC,
		Repo:        repo,
		rateLimiter: NewRateLimiter(30, time.Minute), // the capture hook fires often
	}
}

// HandleCapture receives a form snapshot from the client-side abandonment
// hook. Snapshots with no contact details come back success+skipped.
func (h *AbandonedFormHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.CaptureFormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.UserAgent == "" {
		input.UserAgent = r.UserAgent()
	}

	output, err := h.CaptureUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if !output.Skipped {
		middleware.RecordFormCaptured()
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *AbandonedFormHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("abandoned-forms: list failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "forms": forms})
}

// HandlePatch lets an admin set status/notes directly, bypassing the
// derivation used by contact logging.
func (h *AbandonedFormHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FormID string `json:"formId"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.FormID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FORM_ID", "formId is required")
		return
	}
	status := entity.FormStatus(input.Status)
	if !entity.IsValidFormStatus(status) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "unknown status: "+input.Status)
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), input.FormID, status, input.Notes); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "FORM_NOT_FOUND", "no abandoned form with that id")
			return
		}
		log.Printf("abandoned-forms: patch failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// HandleDelete removes one record by formId, or everything when
// ?clearAll=true.
func (h *AbandonedFormHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("clearAll") == "true" {
		if err := h.Repo.DeleteAll(r.Context()); err != nil {
			log.Printf("abandoned-forms: clear failed: %v", err)
			writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "cleared": true})
		return
	}

	var input struct {
		FormID string `json:"formId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.FormID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FORM_ID", "formId is required")
		return
	}

	if err := h.Repo.Delete(r.Context(), input.FormID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "FORM_NOT_FOUND", "no abandoned form with that id")
			return
		}
		log.Printf("abandoned-forms: delete failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AbandonedFormHandler) HandleLogContact(w http.ResponseWriter, r *http.Request) {
	var input usecase.LogContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}

	output, err := h.LogUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *AbandonedFormHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendRecoveryEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}

	output, err := h.SendUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordRecoveryEmailSent(input.Template)
	writeJSON(w, http.StatusOK, output)
}
