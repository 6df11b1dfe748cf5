package service

import (
	"awards-api/internal/repository"
)

// AnalyticsSummary is the admin dashboard rollup
type AnalyticsSummary struct {
	NominationsByState map[string]int `json:"nominations_by_state"`
	TotalVotes         int            `json:"total_votes"`
	TotalVoters        int            `json:"total_voters"`
	VotesBySubcategory map[uint]int   `json:"votes_by_subcategory"`
	OutboxByStatus     map[string]int `json:"outbox_by_status"`
}

// AnalyticsService assembles the admin dashboard summary
type AnalyticsService struct {
	nominationRepo *repository.NominationRepository
	voteRepo       *repository.VoteRepository
	voterRepo      *repository.VoterRepository
	outboxRepo     *repository.OutboxRepository
}

// NewAnalyticsService creates an analytics service
func NewAnalyticsService(
	nominationRepo *repository.NominationRepository,
	voteRepo *repository.VoteRepository,
	voterRepo *repository.VoterRepository,
	outboxRepo *repository.OutboxRepository,
) *AnalyticsService {
	return &AnalyticsService{
		nominationRepo: nominationRepo,
		voteRepo:       voteRepo,
		voterRepo:      voterRepo,
		outboxRepo:     outboxRepo,
	}
}

// Summary collects the counts shown on the admin dashboard
func (s *AnalyticsService) Summary() (*AnalyticsSummary, error) {
	byState, err := s.nominationRepo.CountByState()
	if err != nil {
		return nil, err
	}

	totalVotes, err := s.voteRepo.Count()
	if err != nil {
		return nil, err
	}

	totalVoters, err := s.voterRepo.Count()
	if err != nil {
		return nil, err
	}

	bySubcategory, err := s.voteRepo.CountBySubcategory()
	if err != nil {
		return nil, err
	}

	outboxByStatus, err := s.outboxRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		NominationsByState: byState,
		TotalVotes:         totalVotes,
		TotalVoters:        totalVoters,
		VotesBySubcategory: bySubcategory,
		OutboxByStatus:     outboxByStatus,
	}, nil
}
