package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"awards-api/internal/models"
)

var ErrNominatorNotFound = errors.New("nominator not found")

// NominatorRepository handles nominator database operations
type NominatorRepository struct {
	db *sql.DB
}

// NewNominatorRepository creates a new nominator repository
func NewNominatorRepository(db *sql.DB) *NominatorRepository {
	return &NominatorRepository{db: db}
}

// Upsert creates a nominator or updates the existing row for the same email.
// Repeat submissions refresh the profile fields; rows are never deleted.
func (r *NominatorRepository) Upsert(nominator *models.Nominator) error {
	query := `
		INSERT INTO nominators (email, name, company, job_title, country, linkedin_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    company = EXCLUDED.company,
		    job_title = EXCLUDED.job_title,
		    country = EXCLUDED.country,
		    linkedin_url = EXCLUDED.linkedin_url,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		nominator.Email,
		nominator.Name,
		nominator.Company,
		nominator.JobTitle,
		nominator.Country,
		nominator.LinkedInURL,
	).Scan(&nominator.ID, &nominator.CreatedAt, &nominator.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert nominator: %w", err)
	}

	return nil
}

// GetByID retrieves a nominator by ID
func (r *NominatorRepository) GetByID(id uint) (*models.Nominator, error) {
	query := `
		SELECT id, email, name, company, job_title, country, linkedin_url, created_at, updated_at
		FROM nominators
		WHERE id = $1
	`

	nominator := &models.Nominator{}
	err := r.db.QueryRow(query, id).Scan(
		&nominator.ID,
		&nominator.Email,
		&nominator.Name,
		&nominator.Company,
		&nominator.JobTitle,
		&nominator.Country,
		&nominator.LinkedInURL,
		&nominator.CreatedAt,
		&nominator.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNominatorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nominator: %w", err)
	}

	return nominator, nil
}
