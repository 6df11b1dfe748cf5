package handlers

import (
	"encoding/json"
	"net/http"

	"awards-api/internal/middleware"
	"awards-api/internal/service"
)

// NominationHandler handles public nomination submission
type NominationHandler struct {
	nominationService *service.NominationService
}

// NewNominationHandler creates a new nomination handler
func NewNominationHandler(nominationService *service.NominationService) *NominationHandler {
	return &NominationHandler{
		nominationService: nominationService,
	}
}

// Submit accepts a public nomination
// @Summary Submit a nomination
// @Description Submit a person or company nomination for a subcategory
// @Tags Nominations
// @Accept json
// @Produce json
// @Param nomination body service.SubmitNominationRequest true "Nomination"
// @Success 201 {object} handlers.Envelope
// @Failure 400 {object} handlers.Envelope "Validation error"
// @Failure 403 {object} handlers.Envelope "Nominations closed"
// @Router /nominations [post]
func (h *NominationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitNominationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	nomination, err := h.nominationService.Submit(&req, middleware.IsAdmin(r.Context()))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusCreated, map[string]interface{}{
		"id":    nomination.ID,
		"state": nomination.State,
	})
}
