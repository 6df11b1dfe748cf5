package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"awards-api/internal/models"
	"awards-api/internal/repository"
)

// TimelineRequest is the admin create/update payload
type TimelineRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // Date string in YYYY-MM-DD format
	SortOrder   int    `json:"sort_order"`
}

// TimelineHandler handles the public program timeline
type TimelineHandler struct {
	timelineRepo *repository.TimelineRepository
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineRepo *repository.TimelineRepository) *TimelineHandler {
	return &TimelineHandler{
		timelineRepo: timelineRepo,
	}
}

// List retrieves all timeline entries
// @Summary List timeline entries
// @Description Get the program milestones in display order
// @Tags Timeline
// @Produce json
// @Success 200 {object} handlers.Envelope
// @Router /timeline [get]
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.timelineRepo.List()
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, entries)
}

// Create adds a timeline entry
// @Summary Create timeline entry
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body handlers.TimelineRequest true "Entry"
// @Success 201 {object} handlers.Envelope
// @Failure 401 {object} handlers.Envelope "Unauthorized"
// @Router /admin/timeline [post]
func (h *TimelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}

	if err := h.timelineRepo.Create(entry); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusCreated, entry)
}

// Update modifies a timeline entry
// @Summary Update timeline entry
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param entry body handlers.TimelineRequest true "Entry"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Router /admin/timeline/{id} [put]
func (h *TimelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid entry ID", nil)
		return
	}

	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = uint(id)

	if err := h.timelineRepo.Update(entry); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, entry)
}

// Delete removes a timeline entry
// @Summary Delete timeline entry
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Router /admin/timeline/{id} [delete]
func (h *TimelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid entry ID", nil)
		return
	}

	if err := h.timelineRepo.Delete(uint(id)); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

func (h *TimelineHandler) decodeEntry(w http.ResponseWriter, r *http.Request) (*models.TimelineEntry, bool) {
	var req TimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return nil, false
	}

	if req.Title == "" {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Validation failed",
			map[string]string{"title": "title is required"})
		return nil, false
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Validation failed",
			map[string]string{"date": "date must be YYYY-MM-DD"})
		return nil, false
	}

	return &models.TimelineEntry{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		SortOrder:   req.SortOrder,
	}, true
}
