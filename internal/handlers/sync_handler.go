package handlers

import (
	"crypto/subtle"
	"net/http"

	"awards-api/internal/service"
)

// SyncHandler exposes the outbox drain to an external cron caller
type SyncHandler struct {
	syncService *service.SyncService
	cronSecret  string
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService, cronSecret string) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		cronSecret:  cronSecret,
	}
}

// Run drains pending outbox entries
// @Summary Run outbox sync
// @Description Drain pending sync entries to their targets, authorized by the cron shared secret
// @Tags Sync
// @Produce json
// @Param X-Cron-Secret header string true "Cron shared secret"
// @Success 200 {object} handlers.Envelope
// @Failure 401 {object} handlers.Envelope "Unauthorized"
// @Router /sync/run [post]
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Cron-Secret")
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) != 1 {
		RespondError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid cron secret", nil)
		return
	}

	result, err := h.syncService.Drain(r.Context())
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, result)
}
