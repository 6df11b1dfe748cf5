package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"awards-api/internal/loops"
	"awards-api/internal/models"
	"awards-api/internal/repository"
	"awards-api/pkg/validator"
)

// Window inside which a repeat approval for the same nominee email does not
// re-send the approval email or re-enqueue the live sync
const approvalIdempotenceWindow = 24 * time.Hour

var ErrNominationsClosed = errors.New("nominations are closed")

// ValidationError carries field-level messages for a 400 response
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// Approver sends the nomination-approved email
type Approver interface {
	SendApprovalEmail(to, nomineeName, subcategory, liveURL string) error
}

// SubmitNominationRequest is the public submission payload
type SubmitNominationRequest struct {
	SubcategoryID uint `json:"subcategory_id"`

	Nominator struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		Company     string `json:"company"`
		JobTitle    string `json:"job_title"`
		Country     string `json:"country"`
		LinkedInURL string `json:"linkedin_url"`
	} `json:"nominator"`

	Nominee struct {
		Type        string `json:"type"`
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		Country     string `json:"country"`
		LinkedInURL string `json:"linkedin_url"`

		HeadshotURL string `json:"headshot_url"`
		JobTitle    string `json:"job_title"`
		Company     string `json:"company"`
		WhyMe       string `json:"why_me"`

		LogoURL    string `json:"logo_url"`
		WebsiteURL string `json:"website_url"`
		WhyUs      string `json:"why_us"`
	} `json:"nominee"`
}

// CreateDraftRequest is the admin draft-creation payload. Drafts have no
// nominator and skip the closed-toggle check.
type CreateDraftRequest struct {
	SubcategoryID uint   `json:"subcategory_id" validate:"required"`
	Type          string `json:"type"`
	DisplayName   string `json:"display_name" validate:"required"`
	Email         string `json:"email" validate:"email"`
	Country       string `json:"country"`
	LinkedInURL   string `json:"linkedin_url" validate:"url"`
}

// NominationService implements nomination submission and moderation
type NominationService struct {
	nominationRepo *repository.NominationRepository
	nominatorRepo  *repository.NominatorRepository
	nomineeRepo    *repository.NomineeRepository
	categoryRepo   *repository.CategoryRepository
	settings       *SettingsService
	sync           *SyncService
	email          Approver
}

// NewNominationService creates a nomination service
func NewNominationService(
	nominationRepo *repository.NominationRepository,
	nominatorRepo *repository.NominatorRepository,
	nomineeRepo *repository.NomineeRepository,
	categoryRepo *repository.CategoryRepository,
	settings *SettingsService,
	sync *SyncService,
	email Approver,
) *NominationService {
	return &NominationService{
		nominationRepo: nominationRepo,
		nominatorRepo:  nominatorRepo,
		nomineeRepo:    nomineeRepo,
		categoryRepo:   categoryRepo,
		settings:       settings,
		sync:           sync,
		email:          email,
	}
}

// Submit handles a public nomination. isAdmin bypasses the closed toggle.
func (s *NominationService) Submit(req *SubmitNominationRequest, isAdmin bool) (*models.Nomination, error) {
	if !isAdmin {
		open, _, err := s.settings.NominationsOpen()
		if err != nil {
			return nil, fmt.Errorf("failed to read nomination settings: %w", err)
		}
		if !open {
			return nil, ErrNominationsClosed
		}
	}

	subcategory, err := s.categoryRepo.GetSubcategoryByID(req.SubcategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"subcategory_id": "unknown subcategory"}}
		}
		return nil, err
	}

	if fields := validateSubmission(req, subcategory); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	nominator := &models.Nominator{
		Email:       validator.SanitizeEmail(req.Nominator.Email),
		Name:        validator.SanitizeString(req.Nominator.Name),
		Company:     validator.SanitizeString(req.Nominator.Company),
		JobTitle:    validator.SanitizeString(req.Nominator.JobTitle),
		Country:     validator.SanitizeString(req.Nominator.Country),
		LinkedInURL: validator.SanitizeString(req.Nominator.LinkedInURL),
	}
	if err := s.nominatorRepo.Upsert(nominator); err != nil {
		return nil, err
	}

	nominee := &models.Nominee{
		Type:        subcategory.NomineeType,
		DisplayName: validator.SanitizeString(req.Nominee.DisplayName),
		Email:       validator.SanitizeEmail(req.Nominee.Email),
		Country:     validator.SanitizeString(req.Nominee.Country),
		LinkedInURL: validator.SanitizeString(req.Nominee.LinkedInURL),
	}
	switch subcategory.NomineeType {
	case models.NomineeTypePerson:
		nominee.Person = &models.PersonDetails{
			HeadshotURL: validator.SanitizeString(req.Nominee.HeadshotURL),
			JobTitle:    validator.SanitizeString(req.Nominee.JobTitle),
			Company:     validator.SanitizeString(req.Nominee.Company),
			WhyMe:       validator.SanitizeString(req.Nominee.WhyMe),
		}
	case models.NomineeTypeCompany:
		nominee.Company = &models.CompanyDetails{
			LogoURL:    validator.SanitizeString(req.Nominee.LogoURL),
			WebsiteURL: validator.SanitizeString(req.Nominee.WebsiteURL),
			WhyUs:      validator.SanitizeString(req.Nominee.WhyUs),
		}
	}
	if err := s.nomineeRepo.Create(nominee); err != nil {
		return nil, err
	}

	nomination := &models.Nomination{
		NominatorID:     &nominator.ID,
		NomineeID:       &nominee.ID,
		CategoryGroupID: subcategory.CategoryGroupID,
		SubcategoryID:   subcategory.ID,
		State:           models.NominationStateSubmitted,
	}
	if err := s.nominationRepo.Create(nomination); err != nil {
		return nil, err
	}

	s.sync.EnqueueContact(models.EventNominatorSynced, &models.ContactPayload{
		Email:       nominator.Email,
		Name:        nominator.Name,
		Company:     nominator.Company,
		JobTitle:    nominator.JobTitle,
		Country:     nominator.Country,
		LinkedInURL: nominator.LinkedInURL,
		UserGroup:   loops.GroupNominator,
		Subcategory: subcategory.Name,
	})
	s.sync.DrainAsync()

	slog.Info("Nomination submitted",
		"nomination_id", nomination.ID,
		"subcategory", subcategory.Slug,
		"nominee_type", subcategory.NomineeType,
	)

	return nomination, nil
}

// CreateDraft creates an admin-owned draft nomination with a minimal
// nominee and no nominator
func (s *NominationService) CreateDraft(req *CreateDraftRequest) (*models.Nomination, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"draft": err.Error()}}
	}

	subcategory, err := s.categoryRepo.GetSubcategoryByID(req.SubcategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrSubcategoryNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"subcategory_id": "unknown subcategory"}}
		}
		return nil, err
	}

	nominee := &models.Nominee{
		Type:        subcategory.NomineeType,
		DisplayName: validator.SanitizeString(req.DisplayName),
		Email:       validator.SanitizeEmail(req.Email),
		Country:     validator.SanitizeString(req.Country),
		LinkedInURL: validator.SanitizeString(req.LinkedInURL),
	}
	switch subcategory.NomineeType {
	case models.NomineeTypePerson:
		nominee.Person = &models.PersonDetails{}
	case models.NomineeTypeCompany:
		nominee.Company = &models.CompanyDetails{}
	}
	if err := s.nomineeRepo.Create(nominee); err != nil {
		return nil, err
	}

	nomination := &models.Nomination{
		NomineeID:       &nominee.ID,
		CategoryGroupID: subcategory.CategoryGroupID,
		SubcategoryID:   subcategory.ID,
		State:           models.NominationStateDraft,
	}
	if err := s.nominationRepo.Create(nomination); err != nil {
		return nil, err
	}

	slog.Info("Draft nomination created", "nomination_id", nomination.ID, "subcategory", subcategory.Slug)

	return nomination, nil
}

// Approve flips a nomination to approved, syncs the nominee, and sends the
// approval email. Repeat approvals inside the idempotence window skip the
// email and the sync so moderation retries do not spam nominees.
func (s *NominationService) Approve(id uint, liveURL, approvedBy string) (*models.Nomination, error) {
	if err := validator.ValidateURL(liveURL); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"live_url": err.Error()}}
	}

	nomination, err := s.nominationRepo.Approve(id, liveURL, approvedBy)
	if err != nil {
		return nil, err
	}

	if nomination.NomineeID == nil {
		return nomination, nil
	}
	nominee, err := s.nomineeRepo.GetByID(*nomination.NomineeID)
	if err != nil {
		slog.Error("Approved nomination has no loadable nominee", "nomination_id", id, "error", err)
		return nomination, nil
	}
	if nominee.Email == "" {
		return nomination, nil
	}

	subcategoryName := ""
	if subcategory, err := s.categoryRepo.GetSubcategoryByID(nomination.SubcategoryID); err == nil {
		subcategoryName = subcategory.Name
	}

	// The window check must precede the enqueue or the fresh rows would
	// satisfy it
	recent, err := s.sync.HasRecentEvent(models.EventNomineeApproved, nominee.Email, approvalIdempotenceWindow)
	if err != nil {
		slog.Error("Failed to check approval idempotence window", "nomination_id", id, "error", err)
		return nomination, nil
	}
	if recent {
		slog.Info("Skipping approval email, nominee approved recently",
			"nomination_id", id,
			"nominee_email", nominee.Email,
		)
		return nomination, nil
	}

	payload := &models.ContactPayload{
		Email:       nominee.Email,
		Name:        nominee.DisplayName,
		Country:     nominee.Country,
		LinkedInURL: nominee.LinkedInURL,
		UserGroup:   loops.GroupNominee,
		LiveURL:     liveURL,
		Subcategory: subcategoryName,
	}
	if nominee.Person != nil {
		payload.Company = nominee.Person.Company
		payload.JobTitle = nominee.Person.JobTitle
	}
	s.sync.EnqueueContact(models.EventNomineeApproved, payload)

	// The nominator graduates to the live group once their nomination is up
	if nomination.NominatorID != nil {
		if nominator, err := s.nominatorRepo.GetByID(*nomination.NominatorID); err == nil {
			s.sync.EnqueueContact(models.EventNominatorSynced, &models.ContactPayload{
				Email:       nominator.Email,
				Name:        nominator.Name,
				Company:     nominator.Company,
				JobTitle:    nominator.JobTitle,
				Country:     nominator.Country,
				LinkedInURL: nominator.LinkedInURL,
				UserGroup:   loops.GroupNominatorLive,
				LiveURL:     liveURL,
				Subcategory: subcategoryName,
			})
		}
	}
	s.sync.DrainAsync()

	if err := s.email.SendApprovalEmail(nominee.Email, nominee.DisplayName, subcategoryName, liveURL); err != nil {
		slog.Error("Failed to send approval email",
			"nomination_id", id,
			"nominee_email", nominee.Email,
			"error", err,
		)
	}

	return nomination, nil
}

// Reject flips a nomination to rejected with a reason
func (s *NominationService) Reject(id uint, reason string) (*models.Nomination, error) {
	if err := validator.ValidateRequired("reason", reason); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"reason": err.Error()}}
	}

	nomination, err := s.nominationRepo.Reject(id, validator.SanitizeString(reason))
	if err != nil {
		return nil, err
	}

	slog.Info("Nomination rejected", "nomination_id", id)

	return nomination, nil
}

// UpdateAdminFields updates the moderation fields on a nomination
func (s *NominationService) UpdateAdminFields(id uint, adminNotes *string, additionalVotes *int, liveURL *string) (*models.Nomination, error) {
	if additionalVotes != nil && *additionalVotes < 0 {
		return nil, &ValidationError{Fields: map[string]string{"additional_votes": "must not be negative"}}
	}
	if liveURL != nil && *liveURL != "" {
		if err := validator.ValidateURL(*liveURL); err != nil {
			return nil, &ValidationError{Fields: map[string]string{"live_url": err.Error()}}
		}
	}

	return s.nominationRepo.UpdateAdminFields(id, adminNotes, additionalVotes, liveURL)
}

// GetByID retrieves a single nomination
func (s *NominationService) GetByID(id uint) (*models.Nomination, error) {
	return s.nominationRepo.GetByID(id)
}

// ListAdmin retrieves nominations for the moderation panel
func (s *NominationService) ListAdmin(filters repository.NominationFilters, limit, offset int) ([]models.AdminNomination, error) {
	return s.nominationRepo.ListAdmin(filters, limit, offset)
}

// ListPublicNominees retrieves the approved nominees for a subcategory
func (s *NominationService) ListPublicNominees(subcategoryID uint) ([]models.PublicNominee, error) {
	if _, err := s.categoryRepo.GetSubcategoryByID(subcategoryID); err != nil {
		return nil, err
	}
	return s.nominationRepo.ListPublicNominees(subcategoryID)
}

// validateSubmission collects field-level validation errors for a public
// submission against the subcategory's nominee type
func validateSubmission(req *SubmitNominationRequest, subcategory *models.Subcategory) map[string]string {
	fields := map[string]string{}

	if err := validator.ValidateRequired("nominator.name", req.Nominator.Name); err != nil {
		fields["nominator.name"] = err.Error()
	}
	if err := validator.ValidateEmail(req.Nominator.Email); err != nil {
		fields["nominator.email"] = err.Error()
	}
	if req.Nominator.LinkedInURL != "" {
		if err := validator.ValidateURL(req.Nominator.LinkedInURL); err != nil {
			fields["nominator.linkedin_url"] = err.Error()
		}
	}

	if err := validator.ValidateRequired("nominee.display_name", req.Nominee.DisplayName); err != nil {
		fields["nominee.display_name"] = err.Error()
	}
	if err := validator.ValidateEmail(req.Nominee.Email); err != nil {
		fields["nominee.email"] = err.Error()
	}
	if req.Nominee.LinkedInURL != "" {
		if err := validator.ValidateURL(req.Nominee.LinkedInURL); err != nil {
			fields["nominee.linkedin_url"] = err.Error()
		}
	}

	if req.Nominee.Type != "" && req.Nominee.Type != subcategory.NomineeType {
		fields["nominee.type"] = fmt.Sprintf("subcategory expects a %s nominee", subcategory.NomineeType)
	}

	switch subcategory.NomineeType {
	case models.NomineeTypePerson:
		if err := validator.ValidateRequired("nominee.why_me", req.Nominee.WhyMe); err != nil {
			fields["nominee.why_me"] = err.Error()
		}
		if req.Nominee.HeadshotURL != "" {
			if err := validator.ValidateURL(req.Nominee.HeadshotURL); err != nil {
				fields["nominee.headshot_url"] = err.Error()
			}
		}
	case models.NomineeTypeCompany:
		if err := validator.ValidateRequired("nominee.why_us", req.Nominee.WhyUs); err != nil {
			fields["nominee.why_us"] = err.Error()
		}
		if req.Nominee.WebsiteURL != "" {
			if err := validator.ValidateURL(req.Nominee.WebsiteURL); err != nil {
				fields["nominee.website_url"] = err.Error()
			}
		}
		if req.Nominee.LogoURL != "" {
			if err := validator.ValidateURL(req.Nominee.LogoURL); err != nil {
				fields["nominee.logo_url"] = err.Error()
			}
		}
	}

	return fields
}
