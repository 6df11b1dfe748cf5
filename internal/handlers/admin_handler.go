package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"awards-api/internal/auth"
	"awards-api/internal/middleware"
	"awards-api/internal/repository"
	"awards-api/internal/service"
)

// LoginRequest is the admin login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateNominationRequest carries the editable moderation fields. Absent
// fields are left untouched.
type UpdateNominationRequest struct {
	AdminNotes      *string `json:"admin_notes"`
	AdditionalVotes *int    `json:"additional_votes"`
	LiveURL         *string `json:"live_url"`
}

// ApproveRequest is the approval payload
type ApproveRequest struct {
	LiveURL string `json:"live_url"`
}

// RejectRequest is the rejection payload
type RejectRequest struct {
	Reason string `json:"reason"`
}

// AdminHandler handles the moderation panel endpoints
type AdminHandler struct {
	authService       *auth.Service
	nominationService *service.NominationService
	analyticsService  *service.AnalyticsService
	outboxRepo        *repository.OutboxRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authService *auth.Service,
	nominationService *service.NominationService,
	analyticsService *service.AnalyticsService,
	outboxRepo *repository.OutboxRepository,
) *AdminHandler {
	return &AdminHandler{
		authService:       authService,
		nominationService: nominationService,
		analyticsService:  analyticsService,
		outboxRepo:        outboxRepo,
	}
}

// Login authenticates the admin and returns a session token
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body handlers.LoginRequest true "Credentials"
// @Success 200 {object} handlers.Envelope
// @Failure 401 {object} handlers.Envelope "Invalid credentials"
// @Router /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	token, err := h.authService.Login(strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			RespondError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password", nil)
			return
		}
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, map[string]string{"token": token})
}

// ListNominations retrieves nominations for the moderation panel
// @Summary List nominations
// @Description Filterable, sortable, paginated nomination listing
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param state query string false "Comma-separated states (draft, submitted, approved, rejected)"
// @Param category_group_id query int false "Category group filter"
// @Param subcategory_id query int false "Subcategory filter"
// @Param search query string false "Search nominee or nominator"
// @Param sort_by query string false "Sort column (id, votes, state, created_at)"
// @Param sort_order query string false "asc or desc"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} handlers.Envelope
// @Failure 401 {object} handlers.Envelope "Unauthorized"
// @Router /admin/nominations [get]
func (h *AdminHandler) ListNominations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := repository.NominationFilters{
		Search:    strings.TrimSpace(query.Get("search")),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	if state := query.Get("state"); state != "" {
		for _, s := range strings.Split(state, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.States = append(filters.States, s)
			}
		}
	}
	if raw := query.Get("category_group_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			groupID := uint(id)
			filters.CategoryGroupID = &groupID
		}
	}
	if raw := query.Get("subcategory_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			subID := uint(id)
			filters.SubcategoryID = &subID
		}
	}

	limit := 50
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	offset := 0
	if raw := query.Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	nominations, err := h.nominationService.ListAdmin(filters, limit, offset)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nominations)
}

// GetNomination retrieves a single nomination
// @Summary Get nomination
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Router /admin/nominations/{id} [get]
func (h *AdminHandler) GetNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	nomination, err := h.nominationService.GetByID(id)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nomination)
}

// UpdateNomination edits the moderation fields
// @Summary Update nomination
// @Description Update admin notes, additional votes, or live URL
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Param fields body handlers.UpdateNominationRequest true "Fields"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Router /admin/nominations/{id} [patch]
func (h *AdminHandler) UpdateNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateNominationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	nomination, err := h.nominationService.UpdateAdminFields(id, req.AdminNotes, req.AdditionalVotes, req.LiveURL)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nomination)
}

// CreateDraft creates an admin draft nomination
// @Summary Create draft nomination
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft body service.CreateDraftRequest true "Draft"
// @Success 201 {object} handlers.Envelope
// @Failure 400 {object} handlers.Envelope "Validation error"
// @Router /admin/nominations/draft [post]
func (h *AdminHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	nomination, err := h.nominationService.CreateDraft(&req)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusCreated, nomination)
}

// ApproveNomination approves a nomination and publishes it
// @Summary Approve nomination
// @Description Approve a nomination, sync the nominee, and send the approval email
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Param approval body handlers.ApproveRequest true "Approval"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Failure 409 {object} handlers.Envelope "Invalid state"
// @Router /admin/nominations/{id}/approve [post]
func (h *AdminHandler) ApproveNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	nomination, err := h.nominationService.Approve(id, req.LiveURL, middleware.AdminEmail(r.Context()))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nomination)
}

// RejectNomination rejects a nomination with a reason
// @Summary Reject nomination
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nomination ID"
// @Param rejection body handlers.RejectRequest true "Rejection"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found"
// @Failure 409 {object} handlers.Envelope "Invalid state"
// @Router /admin/nominations/{id}/reject [post]
func (h *AdminHandler) RejectNomination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	nomination, err := h.nominationService.Reject(id, req.Reason)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nomination)
}

// Analytics returns the dashboard summary
// @Summary Analytics summary
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.Envelope
// @Router /admin/analytics [get]
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.Summary()
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, summary)
}

// ListOutbox retrieves recent outbox entries for inspection
// @Summary List outbox entries
// @Description Inspect the sync outbox, optionally filtered by status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending, processing, done, dead)"
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} handlers.Envelope
// @Router /admin/outbox [get]
func (h *AdminHandler) ListOutbox(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	entries, err := h.outboxRepo.ListRecent(r.URL.Query().Get("status"), limit)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, entries)
}

// RetryOutboxEntry requeues a dead outbox entry
// @Summary Retry dead outbox entry
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Not found or not dead"
// @Router /admin/outbox/{id}/retry [post]
func (h *AdminHandler) RetryOutboxEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.outboxRepo.RetryDead(id); err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, map[string]interface{}{"requeued": true})
}

func (h *AdminHandler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid ID", nil)
		return 0, false
	}
	return uint(id), true
}
