package repository

import (
	"database/sql"
	"fmt"

	"awards-api/internal/models"
)

// VoterRepository handles voter database operations
type VoterRepository struct {
	db *sql.DB
}

// NewVoterRepository creates a new voter repository
func NewVoterRepository(db *sql.DB) *VoterRepository {
	return &VoterRepository{db: db}
}

// Upsert creates a voter or updates the existing row for the same email
func (r *VoterRepository) Upsert(voter *models.Voter) error {
	query := `
		INSERT INTO voters (email, name, company, country, linkedin_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    company = EXCLUDED.company,
		    country = EXCLUDED.country,
		    linkedin_url = EXCLUDED.linkedin_url,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		voter.Email,
		voter.Name,
		voter.Company,
		voter.Country,
		voter.LinkedInURL,
	).Scan(&voter.ID, &voter.CreatedAt, &voter.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert voter: %w", err)
	}

	return nil
}

// Count returns the total number of distinct voters
func (r *VoterRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM voters`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return count, nil
}
