package repository

import (
	"database/sql"
	"fmt"

	"awards-api/internal/models"
)

// VoteRepository handles vote database operations
type VoteRepository struct {
	db *sql.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Create inserts a vote row. The nominations.vote_count column is kept in
// step by a database trigger, not by application code.
func (r *VoteRepository) Create(vote *models.Vote) error {
	query := `
		INSERT INTO votes (voter_id, nomination_id, subcategory_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		vote.VoterID,
		vote.NominationID,
		vote.SubcategoryID,
	).Scan(&vote.ID, &vote.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}

	return nil
}

// ExistsForVoterEmail reports whether the given email has already voted in
// the subcategory
func (r *VoteRepository) ExistsForVoterEmail(subcategoryID uint, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM votes v
			JOIN voters vr ON vr.id = v.voter_id
			WHERE v.subcategory_id = $1 AND vr.email = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(query, subcategoryID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}

	return exists, nil
}

// CountForNomination returns the number of real votes for a nomination
func (r *VoteRepository) CountForNomination(nominationID uint) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM votes WHERE nomination_id = $1`, nominationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// Count returns the total number of votes cast
func (r *VoteRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM votes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// CountBySubcategory returns vote counts grouped by subcategory
func (r *VoteRepository) CountBySubcategory() (map[uint]int, error) {
	rows, err := r.db.Query(`SELECT subcategory_id, COUNT(*) FROM votes GROUP BY subcategory_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes by subcategory: %w", err)
	}
	defer rows.Close()

	counts := make(map[uint]int)
	for rows.Next() {
		var subcategoryID uint
		var count int
		if err := rows.Scan(&subcategoryID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[subcategoryID] = count
	}

	return counts, rows.Err()
}
