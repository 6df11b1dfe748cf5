package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"awards-api/internal/models"

	"github.com/google/uuid"
)

var ErrOutboxEntryNotFound = errors.New("outbox entry not found")

// OutboxRepository handles outbox database operations. Entries are the
// durable record of pending external syncs and are never deleted.
type OutboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Enqueue inserts a pending outbox entry with a fresh idempotency key
func (r *OutboxRepository) Enqueue(target, eventType string, payload interface{}) (*models.OutboxEntry, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	entry := &models.OutboxEntry{
		Target:         target,
		EventType:      eventType,
		Payload:        data,
		IdempotencyKey: uuid.New().String(),
		Status:         models.OutboxStatusPending,
	}

	query := `
		INSERT INTO outbox (target, event_type, payload, idempotency_key, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, attempt_count, created_at, updated_at
	`

	err = r.db.QueryRow(
		query,
		entry.Target,
		entry.EventType,
		entry.Payload,
		entry.IdempotencyKey,
		entry.Status,
	).Scan(&entry.ID, &entry.AttemptCount, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to enqueue outbox entry: %w", err)
	}

	return entry, nil
}

// FetchPending retrieves the oldest pending entries for one target
func (r *OutboxRepository) FetchPending(target string, limit int) ([]models.OutboxEntry, error) {
	query := `
		SELECT id, target, event_type, payload, idempotency_key, status,
		       attempt_count, last_error, created_at, updated_at
		FROM outbox
		WHERE target = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := r.db.Query(query, target, models.OutboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending outbox entries: %w", err)
	}
	defer rows.Close()

	return scanOutboxEntries(rows)
}

// MarkProcessing flips a pending entry to processing and bumps its attempt count
func (r *OutboxRepository) MarkProcessing(id uint) error {
	query := `
		UPDATE outbox
		SET status = $1, attempt_count = attempt_count + 1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	return r.exec(query, models.OutboxStatusProcessing, id, models.OutboxStatusPending)
}

// MarkDone records a successful delivery. Done is terminal.
func (r *OutboxRepository) MarkDone(id uint) error {
	query := `
		UPDATE outbox
		SET status = $1, last_error = NULL, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	return r.exec(query, models.OutboxStatusDone, id, models.OutboxStatusProcessing)
}

// MarkRetry returns a processing entry to pending with the delivery error
func (r *OutboxRepository) MarkRetry(id uint, deliveryErr string) error {
	query := `
		UPDATE outbox
		SET status = $1, last_error = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	return r.exec(query, models.OutboxStatusPending, deliveryErr, id, models.OutboxStatusProcessing)
}

// MarkDead parks an entry that exhausted its attempts. Dead entries stay
// until an admin retries them.
func (r *OutboxRepository) MarkDead(id uint, deliveryErr string) error {
	query := `
		UPDATE outbox
		SET status = $1, last_error = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	return r.exec(query, models.OutboxStatusDead, deliveryErr, id, models.OutboxStatusProcessing)
}

// RetryDead resets a dead entry to pending with a zeroed attempt count
func (r *OutboxRepository) RetryDead(id uint) error {
	query := `
		UPDATE outbox
		SET status = $1, attempt_count = 0, last_error = NULL, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	return r.exec(query, models.OutboxStatusPending, id, models.OutboxStatusDead)
}

// HasRecentEvent reports whether an entry of the given type already exists
// for the email inside the window. Used to keep repeat approvals from
// re-sending the approval email and re-tagging the contact.
func (r *OutboxRepository) HasRecentEvent(eventType, email string, window time.Duration) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM outbox
			WHERE event_type = $1
			  AND payload->>'email' = $2
			  AND created_at > $3
		)
	`

	var exists bool
	err := r.db.QueryRow(query, eventType, email, time.Now().Add(-window)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recent outbox event: %w", err)
	}

	return exists, nil
}

// ListRecent retrieves the newest entries, optionally filtered by status
func (r *OutboxRepository) ListRecent(status string, limit int) ([]models.OutboxEntry, error) {
	query := `
		SELECT id, target, event_type, payload, idempotency_key, status,
		       attempt_count, last_error, created_at, updated_at
		FROM outbox
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox entries: %w", err)
	}
	defer rows.Close()

	return scanOutboxEntries(rows)
}

// CountByStatus returns outbox entry counts grouped by status
func (r *OutboxRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM outbox GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count outbox entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan outbox count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *OutboxRepository) exec(query string, args ...interface{}) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update outbox entry: %w", err)
	}
	if rows == 0 {
		return ErrOutboxEntryNotFound
	}

	return nil
}

func scanOutboxEntries(rows *sql.Rows) ([]models.OutboxEntry, error) {
	var entries []models.OutboxEntry
	for rows.Next() {
		var e models.OutboxEntry
		if err := rows.Scan(
			&e.ID,
			&e.Target,
			&e.EventType,
			&e.Payload,
			&e.IdempotencyKey,
			&e.Status,
			&e.AttemptCount,
			&e.LastError,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
