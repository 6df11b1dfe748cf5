package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"awards-api/internal/config"
	"awards-api/internal/models"
	"awards-api/internal/repository"
)

// Sink delivers one contact payload to an external system
type Sink interface {
	UpsertContact(ctx context.Context, payload *models.ContactPayload) error
	Enabled() bool
}

// DrainResult summarizes one drain pass
type DrainResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Dead      int `json:"dead"`
}

// Worker drains pending outbox entries to their sync targets. Delivery is
// at-least-once: an entry is only marked done after the sink call returns,
// so a crash mid-delivery replays it on the next pass. Sinks must tolerate
// repeats, which contact upserts do.
type Worker struct {
	outboxRepo  *repository.OutboxRepository
	sinks       map[string]Sink
	batchSize   int
	maxAttempts int
}

// NewWorker creates an outbox worker wired to its sync targets
func NewWorker(outboxRepo *repository.OutboxRepository, hubspot, loops Sink, cfg *config.SyncConfig) *Worker {
	return &Worker{
		outboxRepo: outboxRepo,
		sinks: map[string]Sink{
			models.OutboxTargetHubSpot: hubspot,
			models.OutboxTargetLoops:   loops,
		},
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Drain processes one batch per target sequentially. Entries for disabled
// targets are left pending so nothing is lost while a sync is switched off.
func (w *Worker) Drain(ctx context.Context) (*DrainResult, error) {
	result := &DrainResult{}

	for target, sink := range w.sinks {
		if !sink.Enabled() {
			continue
		}

		if err := w.drainTarget(ctx, target, sink, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (w *Worker) drainTarget(ctx context.Context, target string, sink Sink, result *DrainResult) error {
	entries, err := w.outboxRepo.FetchPending(target, w.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending entries for %s: %w", target, err)
	}

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.deliver(ctx, &entries[i], sink, result)
	}

	return nil
}

// deliver pushes one entry through processing to its terminal status.
// Delivery errors are recorded on the row, never returned, so one bad
// entry cannot stall the batch.
func (w *Worker) deliver(ctx context.Context, entry *models.OutboxEntry, sink Sink, result *DrainResult) {
	if err := w.outboxRepo.MarkProcessing(entry.ID); err != nil {
		slog.Error("Failed to claim outbox entry", "id", entry.ID, "error", err)
		return
	}
	result.Processed++
	attempt := entry.AttemptCount + 1

	var payload models.ContactPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		// A payload that does not parse will never parse; park it
		w.park(entry.ID, fmt.Sprintf("invalid payload: %v", err), result)
		return
	}

	if err := sink.UpsertContact(ctx, &payload); err != nil {
		slog.Warn("Outbox delivery failed",
			"id", entry.ID,
			"target", entry.Target,
			"event_type", entry.EventType,
			"attempt", attempt,
			"error", err,
		)

		if attempt >= w.maxAttempts {
			w.park(entry.ID, err.Error(), result)
			return
		}

		if markErr := w.outboxRepo.MarkRetry(entry.ID, err.Error()); markErr != nil {
			slog.Error("Failed to mark outbox entry for retry", "id", entry.ID, "error", markErr)
		}
		result.Failed++
		return
	}

	if err := w.outboxRepo.MarkDone(entry.ID); err != nil {
		slog.Error("Failed to mark outbox entry done", "id", entry.ID, "error", err)
		return
	}

	slog.Info("Outbox entry delivered",
		"id", entry.ID,
		"target", entry.Target,
		"event_type", entry.EventType,
		"attempt", attempt,
	)
	result.Succeeded++
}

func (w *Worker) park(id uint, reason string, result *DrainResult) {
	if err := w.outboxRepo.MarkDead(id, reason); err != nil {
		slog.Error("Failed to mark outbox entry dead", "id", id, "error", err)
		return
	}
	slog.Error("Outbox entry parked as dead", "id", id, "reason", reason)
	result.Dead++
}
