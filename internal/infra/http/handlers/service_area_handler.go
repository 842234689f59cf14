package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type ServiceAreaRepository interface {
	FindAll(ctx context.Context) ([]entity.ServiceArea, error)
	Upsert(ctx context.Context, area *entity.ServiceArea) error
	Delete(ctx context.Context, outward string) error
}

type AreaCacheInvalidator interface {
	Invalidate(ctx context.Context, outward string) error
}

// ServiceAreaHandler is the admin surface for coverage. Every mutation
// invalidates the postcode cache so the public check never serves a stale
// answer past the edit.
type ServiceAreaHandler struct {
	Repo  ServiceAreaRepository
	Cache AreaCacheInvalidator
}

func NewServiceAreaHandler(repo ServiceAreaRepository, cache AreaCacheInvalidator) *ServiceAreaHandler {
	return &ServiceAreaHandler{Repo: repo, Cache: cache}
}

func (h *ServiceAreaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("service-areas: list failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "areas": areas})
}

func (h *ServiceAreaHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Postcode string `json:"postcode"`
		AreaName string `json:"areaName"`
		Active   *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}
	if input.AreaName == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "areaName is required")
		return
	}
	outward, err := entity.OutwardCode(input.Postcode)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_POSTCODE", "that doesn't look like a UK postcode")
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	area := &entity.ServiceArea{OutwardCode: outward, AreaName: input.AreaName, Active: active}
	if err := h.Repo.Upsert(r.Context(), area); err != nil {
		log.Printf("service-areas: upsert failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	h.invalidate(r.Context(), outward)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "outwardCode": outward})
}

func (h *ServiceAreaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		OutwardCode string `json:"outwardCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OutwardCode == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "outwardCode is required")
		return
	}
	outward := entity.NormalizePostcode(input.OutwardCode)

	if err := h.Repo.Delete(r.Context(), outward); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "no service area with that outward code")
			return
		}
		log.Printf("service-areas: delete failed: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "internal error")
		return
	}
	h.invalidate(r.Context(), outward)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ServiceAreaHandler) invalidate(ctx context.Context, outward string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(ctx, outward); err != nil {
		log.Printf("service-areas: cache invalidation failed for %s: %v", outward, err)
	}
}
