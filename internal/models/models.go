package models

import (
	"encoding/json"
	"time"
)

// Nomination lifecycle states
const (
	NominationStateDraft     = "draft" // admin-created, not yet materialized
	NominationStateSubmitted = "submitted"
	NominationStateApproved  = "approved"
	NominationStateRejected  = "rejected"
)

// Nominee type discriminator values
const (
	NomineeTypePerson  = "person"
	NomineeTypeCompany = "company"
)

// Outbox entry statuses. Entries only move forward:
// pending -> processing -> done, or processing -> pending (retry) -> dead.
const (
	OutboxStatusPending    = "pending"
	OutboxStatusProcessing = "processing"
	OutboxStatusDone       = "done"
	OutboxStatusDead       = "dead"
)

// Outbox sync targets
const (
	OutboxTargetHubSpot = "hubspot"
	OutboxTargetLoops   = "loops"
)

// Outbox event types
const (
	EventNominatorSynced = "nominator_synced"
	EventNomineeApproved = "nominee_approved"
	EventVoterSynced     = "voter_synced"
)

// Nominator is a person who submits a nomination. Upserted by email on
// repeat submissions, never deleted by the app.
type Nominator struct {
	ID          uint      `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Company     string    `json:"company,omitempty" db:"company"`
	JobTitle    string    `json:"job_title,omitempty" db:"job_title"`
	Country     string    `json:"country,omitempty" db:"country"`
	LinkedInURL string    `json:"linkedin_url,omitempty" db:"linkedin_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PersonDetails holds the fields that only exist for person nominees
type PersonDetails struct {
	HeadshotURL string `json:"headshot_url,omitempty" db:"headshot_url"`
	JobTitle    string `json:"job_title,omitempty" db:"job_title"`
	Company     string `json:"company,omitempty" db:"company"`
	WhyMe       string `json:"why_me,omitempty" db:"why_me"`
}

// CompanyDetails holds the fields that only exist for company nominees
type CompanyDetails struct {
	LogoURL    string `json:"logo_url,omitempty" db:"logo_url"`
	WebsiteURL string `json:"website_url,omitempty" db:"website_url"`
	WhyUs      string `json:"why_us,omitempty" db:"why_us"`
}

// Nominee is the person or company being nominated. The Type discriminator
// selects which of Person/Company is set; exactly one is non-nil.
type Nominee struct {
	ID          uint            `json:"id" db:"id"`
	Type        string          `json:"type" db:"type"` // person or company
	DisplayName string          `json:"display_name" db:"display_name"`
	Email       string          `json:"email,omitempty" db:"email"`
	Country     string          `json:"country,omitempty" db:"country"`
	LinkedInURL string          `json:"linkedin_url,omitempty" db:"linkedin_url"`
	Person      *PersonDetails  `json:"person,omitempty"`
	Company     *CompanyDetails `json:"company,omitempty"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Nomination links a Nominator to a Nominee within a subcategory
type Nomination struct {
	ID              uint       `json:"id" db:"id"`
	NominatorID     *uint      `json:"nominator_id,omitempty" db:"nominator_id"` // nil for admin drafts
	NomineeID       *uint      `json:"nominee_id,omitempty" db:"nominee_id"`
	CategoryGroupID uint       `json:"category_group_id" db:"category_group_id"`
	SubcategoryID   uint       `json:"subcategory_id" db:"subcategory_id"`
	State           string     `json:"state" db:"state"`
	VoteCount       int        `json:"vote_count" db:"vote_count"` // maintained by DB trigger
	AdditionalVotes int        `json:"additional_votes" db:"additional_votes"`
	LiveURL         *string    `json:"live_url,omitempty" db:"live_url"`
	AdminNotes      *string    `json:"admin_notes,omitempty" db:"admin_notes"`
	RejectionReason *string    `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty" db:"approved_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// TotalVotes is the displayed vote total: real votes plus the admin override.
// Both the public and admin views reconcile these two sources identically.
func (n *Nomination) TotalVotes() int {
	return n.VoteCount + n.AdditionalVotes
}

// Voter is a person casting a vote
type Voter struct {
	ID          uint      `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Company     string    `json:"company,omitempty" db:"company"`
	Country     string    `json:"country,omitempty" db:"country"`
	LinkedInURL string    `json:"linkedin_url,omitempty" db:"linkedin_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Vote links a Voter to a Nomination within a subcategory. Immutable once
// created; at most one vote per (voter email, subcategory) pair.
type Vote struct {
	ID            uint      `json:"id" db:"id"`
	VoterID       uint      `json:"voter_id" db:"voter_id"`
	NominationID  uint      `json:"nomination_id" db:"nomination_id"`
	SubcategoryID uint      `json:"subcategory_id" db:"subcategory_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// OutboxEntry is a durable record of a domain event to be delivered to an
// external system, decoupled from the request path. Never deleted (audit trail).
type OutboxEntry struct {
	ID             uint            `json:"id" db:"id"`
	Target         string          `json:"target" db:"target"` // hubspot or loops
	EventType      string          `json:"event_type" db:"event_type"`
	Payload        json.RawMessage `json:"payload" db:"payload"`
	IdempotencyKey string          `json:"idempotency_key" db:"idempotency_key"`
	Status         string          `json:"status" db:"status"`
	AttemptCount   int             `json:"attempt_count" db:"attempt_count"`
	LastError      *string         `json:"last_error,omitempty" db:"last_error"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// ContactPayload is the normalized snapshot written into outbox entries.
// It carries everything either sync target needs to upsert a contact.
type ContactPayload struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	Country     string `json:"country,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	UserGroup   string `json:"user_group,omitempty"` // lifecycle tag for the marketing tool
	LiveURL     string `json:"live_url,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// CategoryGroup is a top-level award category
type CategoryGroup struct {
	ID            uint          `json:"id" db:"id"`
	Slug          string        `json:"slug" db:"slug"`
	Name          string        `json:"name" db:"name"`
	SortOrder     int           `json:"sort_order" db:"sort_order"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory is an individual award within a category group
type Subcategory struct {
	ID              uint   `json:"id" db:"id"`
	CategoryGroupID uint   `json:"category_group_id" db:"category_group_id"`
	Slug            string `json:"slug" db:"slug"`
	Name            string `json:"name" db:"name"`
	NomineeType     string `json:"nominee_type" db:"nominee_type"` // person or company
	SortOrder       int    `json:"sort_order" db:"sort_order"`
}

// Setting is a global key/value toggle read per-request through the
// settings service cache
type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TimelineEntry is a milestone shown on the public program timeline
type TimelineEntry struct {
	ID          uint      `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PublicNominee is a row of the public_nominees view: approved nominations
// with display fields and the reconciled vote total.
type PublicNominee struct {
	NominationID  uint    `json:"nomination_id" db:"nomination_id"`
	DisplayName   string  `json:"display_name" db:"display_name"`
	NomineeType   string  `json:"nominee_type" db:"nominee_type"`
	SubcategoryID uint    `json:"subcategory_id" db:"subcategory_id"`
	Subcategory   string  `json:"subcategory" db:"subcategory"`
	CategoryGroup string  `json:"category_group" db:"category_group"`
	ImageURL      *string `json:"image_url,omitempty" db:"image_url"`
	Pitch         *string `json:"pitch,omitempty" db:"pitch"`
	LiveURL       *string `json:"live_url,omitempty" db:"live_url"`
	TotalVotes    int     `json:"total_votes" db:"total_votes"`
}

// AdminNomination is a row of the admin_nominations view: every nomination
// joined with nominator/nominee display fields for the moderation panel.
type AdminNomination struct {
	Nomination
	NomineeDisplayName string  `json:"nominee_display_name" db:"nominee_display_name"`
	NomineeType        string  `json:"nominee_type" db:"nominee_type"`
	NomineeEmail       *string `json:"nominee_email,omitempty" db:"nominee_email"`
	NominatorEmail     *string `json:"nominator_email,omitempty" db:"nominator_email"`
	NominatorName      *string `json:"nominator_name,omitempty" db:"nominator_name"`
	SubcategoryName    string  `json:"subcategory_name" db:"subcategory_name"`
	CategoryGroupName  string  `json:"category_group_name" db:"category_group_name"`
	TotalVotes         int     `json:"total_votes" db:"total_votes"`
}
