package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: message})
}

// writeUseCaseError maps the use case error taxonomy onto HTTP: not-found
// domain errors become 404, the rest of the domain errors 400, technical
// errors a generic 500 (detail already logged server-side).
func writeUseCaseError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		if de.Code == "FORM_NOT_FOUND" || de.Code == "NOT_FOUND" {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, de.Code, de.Message)
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, "internal error")
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
