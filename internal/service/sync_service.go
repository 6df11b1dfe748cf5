package service

import (
	"context"
	"log/slog"
	"time"

	"awards-api/internal/models"
	"awards-api/internal/outbox"
	"awards-api/internal/repository"
)

// SyncService writes domain events into the outbox and kicks off
// best-effort drains. Durability comes from the outbox row; the inline
// drain only shortens the usual delivery latency.
type SyncService struct {
	outboxRepo *repository.OutboxRepository
	worker     *outbox.Worker
}

// NewSyncService creates a sync service
func NewSyncService(outboxRepo *repository.OutboxRepository, worker *outbox.Worker) *SyncService {
	return &SyncService{
		outboxRepo: outboxRepo,
		worker:     worker,
	}
}

// EnqueueContact writes one outbox row per sync target. Rows are written
// even when a target is disabled: the drain leaves them pending until the
// target comes on, and the rows double as the record behind HasRecentEvent.
// Enqueue failures are logged, not returned: a sync outage must never fail
// the originating request.
func (s *SyncService) EnqueueContact(eventType string, payload *models.ContactPayload) {
	if _, err := s.outboxRepo.Enqueue(models.OutboxTargetHubSpot, eventType, payload); err != nil {
		slog.Error("Failed to enqueue HubSpot sync", "event_type", eventType, "error", err)
	}
	if _, err := s.outboxRepo.Enqueue(models.OutboxTargetLoops, eventType, payload); err != nil {
		slog.Error("Failed to enqueue Loops sync", "event_type", eventType, "error", err)
	}
}

// HasRecentEvent reports whether an event of the given type was enqueued
// for the email inside the window
func (s *SyncService) HasRecentEvent(eventType, email string, window time.Duration) (bool, error) {
	return s.outboxRepo.HasRecentEvent(eventType, email, window)
}

// DrainAsync runs one drain pass in the background so freshly enqueued
// entries reach their targets without waiting for the next scheduled pass
func (s *SyncService) DrainAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := s.worker.Drain(ctx); err != nil {
			slog.Warn("Background outbox drain failed", "error", err)
		}
	}()
}

// Drain runs one synchronous drain pass
func (s *SyncService) Drain(ctx context.Context) (*outbox.DrainResult, error) {
	return s.worker.Drain(ctx)
}
