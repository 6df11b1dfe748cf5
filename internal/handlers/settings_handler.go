package handlers

import (
	"encoding/json"
	"net/http"

	"awards-api/internal/service"
)

// SettingsHandler handles the nominations toggle
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetNominationSettings returns the public nomination toggle state
// @Summary Get nomination settings
// @Description Report whether nominations are open, with the closed message otherwise
// @Tags Settings
// @Produce json
// @Success 200 {object} handlers.Envelope
// @Router /settings/nominations [get]
func (h *SettingsHandler) GetNominationSettings(w http.ResponseWriter, r *http.Request) {
	open, message, err := h.settingsService.NominationsOpen()
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	data := map[string]interface{}{"open": open}
	if !open {
		data["message"] = message
	}

	RespondData(w, http.StatusOK, data)
}

// UpdateSettingsRequest is the admin toggle payload
type UpdateSettingsRequest struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

// UpdateNominationSettings flips the nomination toggle
// @Summary Update nomination settings
// @Description Open or close public nominations
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body handlers.UpdateSettingsRequest true "Settings"
// @Success 200 {object} handlers.Envelope
// @Failure 401 {object} handlers.Envelope "Unauthorized"
// @Router /admin/settings/nominations [put]
func (h *SettingsHandler) UpdateNominationSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	if err := h.settingsService.SetNominationsOpen(req.Open, req.Message); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, map[string]interface{}{"open": req.Open})
}
