package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"awards-api/internal/models"

	"github.com/lib/pq"
)

var (
	ErrNominationNotFound = errors.New("nomination not found")
	ErrInvalidTransition  = errors.New("invalid nomination state transition")
)

// NominationRepository handles nomination database operations
type NominationRepository struct {
	db *sql.DB
}

// NewNominationRepository creates a new nomination repository
func NewNominationRepository(db *sql.DB) *NominationRepository {
	return &NominationRepository{db: db}
}

// Create inserts a nomination row
func (r *NominationRepository) Create(nomination *models.Nomination) error {
	query := `
		INSERT INTO nominations (nominator_id, nominee_id, category_group_id, subcategory_id, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, vote_count, additional_votes, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		nomination.NominatorID,
		nomination.NomineeID,
		nomination.CategoryGroupID,
		nomination.SubcategoryID,
		nomination.State,
	).Scan(
		&nomination.ID,
		&nomination.VoteCount,
		&nomination.AdditionalVotes,
		&nomination.CreatedAt,
		&nomination.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create nomination: %w", err)
	}

	return nil
}

// GetByID retrieves a nomination by ID
func (r *NominationRepository) GetByID(id uint) (*models.Nomination, error) {
	query := `
		SELECT id, nominator_id, nominee_id, category_group_id, subcategory_id, state,
		       vote_count, additional_votes, live_url, admin_notes, rejection_reason,
		       approved_at, approved_by, created_at, updated_at
		FROM nominations
		WHERE id = $1
	`

	nomination := &models.Nomination{}
	err := r.db.QueryRow(query, id).Scan(
		&nomination.ID,
		&nomination.NominatorID,
		&nomination.NomineeID,
		&nomination.CategoryGroupID,
		&nomination.SubcategoryID,
		&nomination.State,
		&nomination.VoteCount,
		&nomination.AdditionalVotes,
		&nomination.LiveURL,
		&nomination.AdminNotes,
		&nomination.RejectionReason,
		&nomination.ApprovedAt,
		&nomination.ApprovedBy,
		&nomination.CreatedAt,
		&nomination.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNominationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nomination: %w", err)
	}

	return nomination, nil
}

// Approve flips a draft or submitted nomination to approved, recording the
// live URL, the approval timestamp, and the approving admin. Approving an
// already-approved nomination only refreshes the live URL.
func (r *NominationRepository) Approve(id uint, liveURL, approvedBy string) (*models.Nomination, error) {
	query := `
		UPDATE nominations
		SET state = $1,
		    live_url = $2,
		    approved_at = COALESCE(approved_at, $3),
		    approved_by = COALESCE(approved_by, $4),
		    rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = $5 AND state IN ($6, $7, $8)
	`

	result, err := r.db.Exec(
		query,
		models.NominationStateApproved,
		liveURL,
		time.Now(),
		approvedBy,
		id,
		models.NominationStateDraft,
		models.NominationStateSubmitted,
		models.NominationStateApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to approve nomination: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to approve nomination: %w", err)
	}
	if rows == 0 {
		// Either the row is missing or it sits in a non-approvable state
		if _, err := r.GetByID(id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	return r.GetByID(id)
}

// Reject flips a draft or submitted nomination to rejected with a reason
func (r *NominationRepository) Reject(id uint, reason string) (*models.Nomination, error) {
	query := `
		UPDATE nominations
		SET state = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3 AND state IN ($4, $5)
	`

	result, err := r.db.Exec(
		query,
		models.NominationStateRejected,
		reason,
		id,
		models.NominationStateDraft,
		models.NominationStateSubmitted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reject nomination: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to reject nomination: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	return r.GetByID(id)
}

// UpdateAdminFields updates the moderation-panel fields. Nil values leave
// the column untouched.
func (r *NominationRepository) UpdateAdminFields(id uint, adminNotes *string, additionalVotes *int, liveURL *string) (*models.Nomination, error) {
	query := `
		UPDATE nominations
		SET admin_notes = COALESCE($1, admin_notes),
		    additional_votes = COALESCE($2, additional_votes),
		    live_url = COALESCE($3, live_url),
		    updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.Exec(query, adminNotes, additionalVotes, liveURL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update nomination: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update nomination: %w", err)
	}
	if rows == 0 {
		return nil, ErrNominationNotFound
	}

	return r.GetByID(id)
}

// NominationFilters holds filter parameters for admin nomination queries
type NominationFilters struct {
	States          []string
	CategoryGroupID *uint
	SubcategoryID   *uint
	Search          string
	SortBy          string
	SortOrder       string
}

// ListAdmin retrieves nominations from the admin_nominations view with
// filtering, sorting, and pagination
func (r *NominationRepository) ListAdmin(filters NominationFilters, limit, offset int) ([]models.AdminNomination, error) {
	query := `
		SELECT id, nominator_id, nominee_id, category_group_id, subcategory_id, state,
		       vote_count, additional_votes, live_url, admin_notes, rejection_reason,
		       approved_at, approved_by, created_at, updated_at,
		       nominee_display_name, nominee_type, nominee_email,
		       nominator_email, nominator_name,
		       subcategory_name, category_group_name, total_votes
		FROM admin_nominations
		WHERE 1=1
	`

	args := []interface{}{}
	argPos := 1

	if len(filters.States) > 0 {
		query += fmt.Sprintf(` AND state = ANY($%d)`, argPos)
		args = append(args, pq.Array(filters.States))
		argPos++
	}

	if filters.CategoryGroupID != nil {
		query += fmt.Sprintf(` AND category_group_id = $%d`, argPos)
		args = append(args, *filters.CategoryGroupID)
		argPos++
	}

	if filters.SubcategoryID != nil {
		query += fmt.Sprintf(` AND subcategory_id = $%d`, argPos)
		args = append(args, *filters.SubcategoryID)
		argPos++
	}

	// Search filter (nominee or nominator)
	if filters.Search != "" {
		query += fmt.Sprintf(` AND (nominee_display_name ILIKE $%d OR nominee_email ILIKE $%d OR nominator_email ILIKE $%d)`, argPos, argPos, argPos)
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	sortColumn := "created_at"
	switch filters.SortBy {
	case "id":
		sortColumn = "id"
	case "votes":
		sortColumn = "total_votes"
	case "state":
		sortColumn = "state"
	case "created_at":
		sortColumn = "created_at"
	}

	sortOrder := "DESC"
	if filters.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query += fmt.Sprintf(` ORDER BY %s %s LIMIT $%d OFFSET $%d`, sortColumn, sortOrder, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nominations: %w", err)
	}
	defer rows.Close()

	var nominations []models.AdminNomination
	for rows.Next() {
		var n models.AdminNomination
		if err := rows.Scan(
			&n.ID,
			&n.NominatorID,
			&n.NomineeID,
			&n.CategoryGroupID,
			&n.SubcategoryID,
			&n.State,
			&n.VoteCount,
			&n.AdditionalVotes,
			&n.LiveURL,
			&n.AdminNotes,
			&n.RejectionReason,
			&n.ApprovedAt,
			&n.ApprovedBy,
			&n.CreatedAt,
			&n.UpdatedAt,
			&n.NomineeDisplayName,
			&n.NomineeType,
			&n.NomineeEmail,
			&n.NominatorEmail,
			&n.NominatorName,
			&n.SubcategoryName,
			&n.CategoryGroupName,
			&n.TotalVotes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nomination: %w", err)
		}
		nominations = append(nominations, n)
	}

	return nominations, rows.Err()
}

// ListPublicNominees retrieves the public_nominees view rows for one
// subcategory, highest total first
func (r *NominationRepository) ListPublicNominees(subcategoryID uint) ([]models.PublicNominee, error) {
	query := `
		SELECT nomination_id, display_name, nominee_type, subcategory_id, subcategory,
		       category_group, image_url, pitch, live_url, total_votes
		FROM public_nominees
		WHERE subcategory_id = $1
		ORDER BY total_votes DESC, display_name ASC
	`

	rows, err := r.db.Query(query, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list public nominees: %w", err)
	}
	defer rows.Close()

	var nominees []models.PublicNominee
	for rows.Next() {
		var n models.PublicNominee
		if err := rows.Scan(
			&n.NominationID,
			&n.DisplayName,
			&n.NomineeType,
			&n.SubcategoryID,
			&n.Subcategory,
			&n.CategoryGroup,
			&n.ImageURL,
			&n.Pitch,
			&n.LiveURL,
			&n.TotalVotes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan public nominee: %w", err)
		}
		nominees = append(nominees, n)
	}

	return nominees, rows.Err()
}

// FindPublicNominee resolves a nomination in a subcategory by display name.
// The match is case-insensitive on the exact trimmed name.
func (r *NominationRepository) FindPublicNominee(subcategoryID uint, displayName string) (*models.PublicNominee, error) {
	query := `
		SELECT nomination_id, display_name, nominee_type, subcategory_id, subcategory,
		       category_group, image_url, pitch, live_url, total_votes
		FROM public_nominees
		WHERE subcategory_id = $1 AND LOWER(display_name) = LOWER(TRIM($2))
	`

	n := &models.PublicNominee{}
	err := r.db.QueryRow(query, subcategoryID, displayName).Scan(
		&n.NominationID,
		&n.DisplayName,
		&n.NomineeType,
		&n.SubcategoryID,
		&n.Subcategory,
		&n.CategoryGroup,
		&n.ImageURL,
		&n.Pitch,
		&n.LiveURL,
		&n.TotalVotes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNominationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find public nominee: %w", err)
	}

	return n, nil
}

// CountByState returns nomination counts grouped by lifecycle state
func (r *NominationRepository) CountByState() (map[string]int, error) {
	query := `SELECT state, COUNT(*) FROM nominations GROUP BY state`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count nominations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[state] = count
	}

	return counts, rows.Err()
}
