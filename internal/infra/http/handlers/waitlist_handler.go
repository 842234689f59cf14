package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type WaitlistRepository interface {
	Create(ctx context.Context, e *entity.WaitlistEntry) error
	FindAll(ctx context.Context) ([]entity.WaitlistEntry, error)
	Update(ctx context.Context, id string, status entity.WaitlistStatus, notes string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*entity.WaitlistStats, error)
}

type WaitlistHandler struct {
	Repo WaitlistRepository
}

func NewWaitlistHandler(repo WaitlistRepository) *WaitlistHandler {
	return &WaitlistHandler{Repo: repo}
}

func (h *WaitlistHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Postcode string `json:"postcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.Email == "" || input.Postcode == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "email and postcode are required")
		return
	}

	entry := entity.NewWaitlistEntry(input.Name, input.Email, input.Phone, entity.NormalizePostcode(input.Postcode))
	if err := h.Repo.Create(r.Context(), entry); err != nil {
		log.Printf("waitlist: create failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": entry.ID})
}

func (h *WaitlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("waitlist: list failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "entries": entries})
}

// HandlePatch applies an explicit admin status/notes change. There are no
// automatic waitlist transitions anywhere else.
func (h *WaitlistHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}
	status := entity.WaitlistStatus(input.Status)
	if !entity.IsValidWaitlistStatus(status) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status must be pending, contacted or converted")
		return
	}

	if err := h.Repo.Update(r.Context(), input.ID, status, input.Notes); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no waitlist entry with that id")
			return
		}
		log.Printf("waitlist: update failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *WaitlistHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	if err := h.Repo.Delete(r.Context(), input.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no waitlist entry with that id")
			return
		}
		log.Printf("waitlist: delete failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *WaitlistHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		log.Printf("waitlist: stats failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
