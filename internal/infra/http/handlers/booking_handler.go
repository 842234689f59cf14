package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/entity"
	"github.com/freshbins/freshbins-api/internal/infra/http/middleware"
	"github.com/freshbins/freshbins-api/internal/usecase"
)

type BookingHandler struct {
	CreateUC *usecase.CreateBookingUseCase
	Repo     usecase.BookingRepositoryInterface
}

func NewBookingHandler(createUC *usecase.CreateBookingUseCase, repo usecase.BookingRepositoryInterface) *BookingHandler {
	return &BookingHandler{CreateUC: createUC, Repo: repo}
}

func (h *BookingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordBookingCreated()
	writeJSON(w, http.StatusCreated, output)
}

func (h *BookingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("bookings: list failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "bookings": bookings})
}

func (h *BookingHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.ID == "" || input.Status == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "id and status are required")
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), input.ID, input.Status); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no booking with that id")
			return
		}
		log.Printf("bookings: update failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *BookingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	if err := h.Repo.Delete(r.Context(), input.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no booking with that id")
			return
		}
		log.Printf("bookings: delete failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
