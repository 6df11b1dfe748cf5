package scheduler

import (
	"context"
	"log/slog"
	"time"

	"awards-api/internal/config"
	"awards-api/internal/outbox"
)

// Scheduler handles periodic tasks
type Scheduler struct {
	worker   *outbox.Worker
	config   *config.SyncConfig
	stopChan chan bool
}

// NewScheduler creates a new scheduler
func NewScheduler(worker *outbox.Worker, cfg *config.SyncConfig) *Scheduler {
	return &Scheduler{
		worker:   worker,
		config:   cfg,
		stopChan: make(chan bool),
	}
}

// Start starts all scheduled tasks
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler",
		"outbox_worker_enabled", s.config.EnableWorker,
		"interval", s.config.Interval,
	)

	if s.config.EnableWorker {
		go s.scheduleIntervalTask(s.config.Interval, "outbox_drain", s.drainOutbox)
	}

	slog.Info("Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	slog.Info("Stopping scheduler")
	close(s.stopChan)
}

// scheduleIntervalTask runs a task at regular intervals
func (s *Scheduler) scheduleIntervalTask(interval time.Duration, taskName string, task func()) {
	slog.Info("Starting interval task", "task", taskName, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run immediately on start
	slog.Info("Running interval task", "task", taskName)
	task()

	for {
		select {
		case <-ticker.C:
			slog.Info("Running interval task", "task", taskName)
			task()
		case <-s.stopChan:
			return
		}
	}
}

// drainOutbox runs one outbox drain pass
func (s *Scheduler) drainOutbox() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.worker.Drain(ctx)
	if err != nil {
		slog.Error("Scheduled outbox drain failed", "error", err)
		return
	}

	if result.Processed > 0 {
		slog.Info("Scheduled outbox drain completed",
			"processed", result.Processed,
			"succeeded", result.Succeeded,
			"failed", result.Failed,
			"dead", result.Dead,
		)
	}
}
