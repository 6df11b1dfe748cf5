package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"awards-api/internal/models"
)

var ErrSubcategoryNotFound = errors.New("subcategory not found")

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListGroups retrieves all category groups with their subcategories, in
// display order
func (r *CategoryRepository) ListGroups() ([]models.CategoryGroup, error) {
	groupQuery := `
		SELECT id, slug, name, sort_order
		FROM category_groups
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := r.db.Query(groupQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list category groups: %w", err)
	}
	defer rows.Close()

	var groups []models.CategoryGroup
	groupIndex := make(map[uint]int)
	for rows.Next() {
		var g models.CategoryGroup
		if err := rows.Scan(&g.ID, &g.Slug, &g.Name, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category group: %w", err)
		}
		groupIndex[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subQuery := `
		SELECT id, category_group_id, slug, name, nominee_type, sort_order
		FROM subcategories
		ORDER BY sort_order ASC, name ASC
	`

	subRows, err := r.db.Query(subQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var s models.Subcategory
		if err := subRows.Scan(&s.ID, &s.CategoryGroupID, &s.Slug, &s.Name, &s.NomineeType, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		if i, ok := groupIndex[s.CategoryGroupID]; ok {
			groups[i].Subcategories = append(groups[i].Subcategories, s)
		}
	}

	return groups, subRows.Err()
}

// GetSubcategoryByID retrieves a subcategory by ID
func (r *CategoryRepository) GetSubcategoryByID(id uint) (*models.Subcategory, error) {
	query := `
		SELECT id, category_group_id, slug, name, nominee_type, sort_order
		FROM subcategories
		WHERE id = $1
	`
	return r.scanSubcategory(r.db.QueryRow(query, id))
}

// GetSubcategoryBySlug retrieves a subcategory by slug
func (r *CategoryRepository) GetSubcategoryBySlug(slug string) (*models.Subcategory, error) {
	query := `
		SELECT id, category_group_id, slug, name, nominee_type, sort_order
		FROM subcategories
		WHERE slug = $1
	`
	return r.scanSubcategory(r.db.QueryRow(query, slug))
}

func (r *CategoryRepository) scanSubcategory(row *sql.Row) (*models.Subcategory, error) {
	s := &models.Subcategory{}
	err := row.Scan(&s.ID, &s.CategoryGroupID, &s.Slug, &s.Name, &s.NomineeType, &s.SortOrder)
	if err == sql.ErrNoRows {
		return nil, ErrSubcategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subcategory: %w", err)
	}
	return s, nil
}
