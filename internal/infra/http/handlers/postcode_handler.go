package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/freshbins/freshbins-api/internal/usecase"
)

type PostcodeHandler struct {
	CheckUC *usecase.CheckPostcodeUseCase
}

func NewPostcodeHandler(checkUC *usecase.CheckPostcodeUseCase) *PostcodeHandler {
	return &PostcodeHandler{CheckUC: checkUC}
}

// HandleCheck is the gate at the top of the booking funnel: it normalizes
// the postcode, extracts the outward code and answers whether the round
// covers it.
func (h *PostcodeHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckPostcodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}

	output, err := h.CheckUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
