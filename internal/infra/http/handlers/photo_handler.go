package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type PhotoRepository interface {
	Create(ctx context.Context, p *entity.Photo) error
	FindAll(ctx context.Context) ([]entity.Photo, error)
	Update(ctx context.Context, p *entity.Photo) error
	Delete(ctx context.Context, id string) error
}

// PhotoHandler manages gallery metadata. Uploading the image bytes happens
// elsewhere; only URLs pass through here.
type PhotoHandler struct {
	Repo PhotoRepository
}

func NewPhotoHandler(repo PhotoRepository) *PhotoHandler {
	return &PhotoHandler{Repo: repo}
}

func (h *PhotoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	photos, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("photos: list failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "photos": photos})
}

func (h *PhotoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Category  string `json:"category"`
		SortOrder int    `json:"sortOrder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.Title == "" || input.URL == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "title and url are required")
		return
	}

	photo := entity.NewPhoto(input.Title, input.URL, input.Category, input.SortOrder)
	if err := h.Repo.Create(r.Context(), photo); err != nil {
		log.Printf("photos: create failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": photo.ID})
}

func (h *PhotoHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var photo entity.Photo
	if err := json.NewDecoder(r.Body).Decode(&photo); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if photo.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	if err := h.Repo.Update(r.Context(), &photo); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no photo with that id")
			return
		}
		log.Printf("photos: update failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *PhotoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	if err := h.Repo.Delete(r.Context(), input.ID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no photo with that id")
			return
		}
		log.Printf("photos: delete failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
