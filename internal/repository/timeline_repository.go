package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"awards-api/internal/models"
)

var ErrTimelineEntryNotFound = errors.New("timeline entry not found")

// TimelineRepository handles timeline database operations
type TimelineRepository struct {
	db *sql.DB
}

// NewTimelineRepository creates a new timeline repository
func NewTimelineRepository(db *sql.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

// List retrieves all timeline entries in display order
func (r *TimelineRepository) List() ([]models.TimelineEntry, error) {
	query := `
		SELECT id, title, description, date, sort_order, created_at, updated_at
		FROM timeline_entries
		ORDER BY sort_order ASC, date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimelineEntry
	for rows.Next() {
		var e models.TimelineEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.SortOrder, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Create inserts a timeline entry
func (r *TimelineRepository) Create(entry *models.TimelineEntry) error {
	query := `
		INSERT INTO timeline_entries (title, description, date, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.SortOrder,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create timeline entry: %w", err)
	}

	return nil
}

// Update modifies a timeline entry
func (r *TimelineRepository) Update(entry *models.TimelineEntry) error {
	query := `
		UPDATE timeline_entries
		SET title = $1, description = $2, date = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		entry.Title,
		entry.Description,
		entry.Date,
		entry.SortOrder,
		entry.ID,
	).Scan(&entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return ErrTimelineEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update timeline entry: %w", err)
	}

	return nil
}

// Delete removes a timeline entry
func (r *TimelineRepository) Delete(id uint) error {
	result, err := r.db.Exec(`DELETE FROM timeline_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timeline entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete timeline entry: %w", err)
	}
	if rows == 0 {
		return ErrTimelineEntryNotFound
	}

	return nil
}
