package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"awards-api/internal/models"
)

var ErrNomineeNotFound = errors.New("nominee not found")

// NomineeRepository handles nominee database operations
type NomineeRepository struct {
	db *sql.DB
}

// NewNomineeRepository creates a new nominee repository
func NewNomineeRepository(db *sql.DB) *NomineeRepository {
	return &NomineeRepository{db: db}
}

// Create inserts a nominee row. The type discriminator decides which of the
// variant columns are populated; the other variant's columns stay NULL.
func (r *NomineeRepository) Create(nominee *models.Nominee) error {
	query := `
		INSERT INTO nominees (
			type, display_name, email, country, linkedin_url,
			headshot_url, person_job_title, person_company, why_me,
			logo_url, website_url, why_us
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	var (
		headshotURL, personJobTitle, personCompany, whyMe *string
		logoURL, websiteURL, whyUs                        *string
	)
	switch nominee.Type {
	case models.NomineeTypePerson:
		if nominee.Person == nil {
			return fmt.Errorf("person nominee is missing person details")
		}
		headshotURL = nullable(nominee.Person.HeadshotURL)
		personJobTitle = nullable(nominee.Person.JobTitle)
		personCompany = nullable(nominee.Person.Company)
		whyMe = nullable(nominee.Person.WhyMe)
	case models.NomineeTypeCompany:
		if nominee.Company == nil {
			return fmt.Errorf("company nominee is missing company details")
		}
		logoURL = nullable(nominee.Company.LogoURL)
		websiteURL = nullable(nominee.Company.WebsiteURL)
		whyUs = nullable(nominee.Company.WhyUs)
	default:
		return fmt.Errorf("unknown nominee type: %s", nominee.Type)
	}

	err := r.db.QueryRow(
		query,
		nominee.Type,
		nominee.DisplayName,
		nominee.Email,
		nominee.Country,
		nominee.LinkedInURL,
		headshotURL, personJobTitle, personCompany, whyMe,
		logoURL, websiteURL, whyUs,
	).Scan(&nominee.ID, &nominee.CreatedAt, &nominee.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create nominee: %w", err)
	}

	return nil
}

// GetByID retrieves a nominee by ID, rebuilding the typed variant from the
// row's discriminator.
func (r *NomineeRepository) GetByID(id uint) (*models.Nominee, error) {
	query := `
		SELECT id, type, display_name, email, country, linkedin_url,
		       headshot_url, person_job_title, person_company, why_me,
		       logo_url, website_url, why_us,
		       created_at, updated_at
		FROM nominees
		WHERE id = $1
	`

	nominee := &models.Nominee{}
	var (
		headshotURL, personJobTitle, personCompany, whyMe sql.NullString
		logoURL, websiteURL, whyUs                        sql.NullString
	)
	err := r.db.QueryRow(query, id).Scan(
		&nominee.ID,
		&nominee.Type,
		&nominee.DisplayName,
		&nominee.Email,
		&nominee.Country,
		&nominee.LinkedInURL,
		&headshotURL, &personJobTitle, &personCompany, &whyMe,
		&logoURL, &websiteURL, &whyUs,
		&nominee.CreatedAt,
		&nominee.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNomineeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nominee: %w", err)
	}

	switch nominee.Type {
	case models.NomineeTypePerson:
		nominee.Person = &models.PersonDetails{
			HeadshotURL: headshotURL.String,
			JobTitle:    personJobTitle.String,
			Company:     personCompany.String,
			WhyMe:       whyMe.String,
		}
	case models.NomineeTypeCompany:
		nominee.Company = &models.CompanyDetails{
			LogoURL:    logoURL.String,
			WebsiteURL: websiteURL.String,
			WhyUs:      whyUs.String,
		}
	}

	return nominee, nil
}

// nullable converts an empty string to a NULL-able pointer
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
