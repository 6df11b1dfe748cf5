package service

import (
	"errors"
	"log/slog"

	"awards-api/internal/loops"
	"awards-api/internal/models"
	"awards-api/internal/repository"
	"awards-api/pkg/validator"
)

var ErrAlreadyVoted = errors.New("already voted in this subcategory")

// CastVoteRequest is the public voting payload. The nominee is identified
// by display name as shown on the public listing.
type CastVoteRequest struct {
	SubcategoryID uint   `json:"subcategory_id"`
	NomineeName   string `json:"nominee_name"`

	Voter struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		Company     string `json:"company"`
		Country     string `json:"country"`
		LinkedInURL string `json:"linkedin_url"`
	} `json:"voter"`
}

// CastVoteResult is returned after a successful vote
type CastVoteResult struct {
	VoteID       uint   `json:"vote_id"`
	NominationID uint   `json:"nomination_id"`
	DisplayName  string `json:"display_name"`
	TotalVotes   int    `json:"total_votes"`
}

// VoteService implements public voting
type VoteService struct {
	voteRepo       *repository.VoteRepository
	voterRepo      *repository.VoterRepository
	nominationRepo *repository.NominationRepository
	categoryRepo   *repository.CategoryRepository
	sync           *SyncService
}

// NewVoteService creates a vote service
func NewVoteService(
	voteRepo *repository.VoteRepository,
	voterRepo *repository.VoterRepository,
	nominationRepo *repository.NominationRepository,
	categoryRepo *repository.CategoryRepository,
	sync *SyncService,
) *VoteService {
	return &VoteService{
		voteRepo:       voteRepo,
		voterRepo:      voterRepo,
		nominationRepo: nominationRepo,
		categoryRepo:   categoryRepo,
		sync:           sync,
	}
}

// Cast records a vote for an approved nominee. One vote per voter email
// per subcategory; the check is a read before the insert, so it relies on
// requests for the same email not racing.
func (s *VoteService) Cast(req *CastVoteRequest) (*CastVoteResult, error) {
	if fields := validateVote(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.categoryRepo.GetSubcategoryByID(req.SubcategoryID); err != nil {
		return nil, err
	}

	email := validator.SanitizeEmail(req.Voter.Email)

	voted, err := s.voteRepo.ExistsForVoterEmail(req.SubcategoryID, email)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	nominee, err := s.nominationRepo.FindPublicNominee(req.SubcategoryID, req.NomineeName)
	if err != nil {
		return nil, err
	}

	voter := &models.Voter{
		Email:       email,
		Name:        validator.SanitizeString(req.Voter.Name),
		Company:     validator.SanitizeString(req.Voter.Company),
		Country:     validator.SanitizeString(req.Voter.Country),
		LinkedInURL: validator.SanitizeString(req.Voter.LinkedInURL),
	}
	if err := s.voterRepo.Upsert(voter); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		VoterID:       voter.ID,
		NominationID:  nominee.NominationID,
		SubcategoryID: req.SubcategoryID,
	}
	if err := s.voteRepo.Create(vote); err != nil {
		return nil, err
	}

	s.sync.EnqueueContact(models.EventVoterSynced, &models.ContactPayload{
		Email:       voter.Email,
		Name:        voter.Name,
		Company:     voter.Company,
		Country:     voter.Country,
		LinkedInURL: voter.LinkedInURL,
		UserGroup:   loops.GroupVoters,
		Subcategory: nominee.Subcategory,
	})
	s.sync.DrainAsync()

	slog.Info("Vote cast",
		"vote_id", vote.ID,
		"nomination_id", nominee.NominationID,
		"subcategory_id", req.SubcategoryID,
	)

	return &CastVoteResult{
		VoteID:       vote.ID,
		NominationID: nominee.NominationID,
		DisplayName:  nominee.DisplayName,
		TotalVotes:   nominee.TotalVotes + 1,
	}, nil
}

func validateVote(req *CastVoteRequest) map[string]string {
	fields := map[string]string{}

	if req.SubcategoryID == 0 {
		fields["subcategory_id"] = "subcategory_id is required"
	}
	if err := validator.ValidateRequired("nominee_name", req.NomineeName); err != nil {
		fields["nominee_name"] = err.Error()
	}
	if err := validator.ValidateRequired("voter.name", req.Voter.Name); err != nil {
		fields["voter.name"] = err.Error()
	}
	if err := validator.ValidateEmail(req.Voter.Email); err != nil {
		fields["voter.email"] = err.Error()
	}
	if req.Voter.LinkedInURL != "" {
		if err := validator.ValidateURL(req.Voter.LinkedInURL); err != nil {
			fields["voter.linkedin_url"] = err.Error()
		}
	}

	return fields
}
