package handlers

import (
	"encoding/json"
	"net/http"

	"awards-api/internal/service"
)

// VoteHandler handles public voting
type VoteHandler struct {
	voteService *service.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// Cast records a vote for a nominee
// @Summary Cast a vote
// @Description Vote for an approved nominee in a subcategory, one vote per email per subcategory
// @Tags Votes
// @Accept json
// @Produce json
// @Param vote body service.CastVoteRequest true "Vote"
// @Success 201 {object} handlers.Envelope
// @Failure 400 {object} handlers.Envelope "Validation error"
// @Failure 404 {object} handlers.Envelope "Nominee not found"
// @Failure 409 {object} handlers.Envelope "Already voted"
// @Failure 429 {object} handlers.Envelope "Rate limited"
// @Router /votes [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req service.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	result, err := h.voteService.Cast(&req)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusCreated, result)
}
