package repository_test

import (
	"errors"
	"testing"
	"time"

	"awards-api/internal/models"
	"awards-api/internal/repository"
	"awards-api/internal/testutil"
)

// seedApprovedNomination creates a person nominee with an approved nomination
// in the given subcategory and returns the nomination
func seedApprovedNomination(t *testing.T, containers *testutil.TestContainers, subcategorySlug, displayName, email string) *models.Nomination {
	t.Helper()

	categoryRepo := repository.NewCategoryRepository(containers.DB)
	nomineeRepo := repository.NewNomineeRepository(containers.DB)
	nominationRepo := repository.NewNominationRepository(containers.DB)

	subcategory, err := categoryRepo.GetSubcategoryBySlug(subcategorySlug)
	if err != nil {
		t.Fatalf("Failed to get subcategory: %v", err)
	}

	nominee := &models.Nominee{
		Type:        models.NomineeTypePerson,
		DisplayName: displayName,
		Email:       email,
		Person:      &models.PersonDetails{WhyMe: "A decade of quiet impact"},
	}
	if err := nomineeRepo.Create(nominee); err != nil {
		t.Fatalf("Failed to create nominee: %v", err)
	}

	nomination := &models.Nomination{
		NomineeID:       &nominee.ID,
		CategoryGroupID: subcategory.CategoryGroupID,
		SubcategoryID:   subcategory.ID,
		State:           models.NominationStateSubmitted,
	}
	if err := nominationRepo.Create(nomination); err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	approved, err := nominationRepo.Approve(nomination.ID, "https://awards.example.com/nominees/"+subcategorySlug, "admin@example.com")
	if err != nil {
		t.Fatalf("Failed to approve nomination: %v", err)
	}

	return approved
}

func TestNominatorUpsert(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	repo := repository.NewNominatorRepository(containers.DB)

	first := &models.Nominator{
		Email:   "nina@example.com",
		Name:    "Nina Nominator",
		Company: "Acme",
	}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("Failed to upsert nominator: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("Upsert should assign an ID")
	}

	second := &models.Nominator{
		Email:    "nina@example.com",
		Name:     "Nina N.",
		Company:  "Acme GmbH",
		JobTitle: "Head of People",
	}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("Failed to upsert nominator again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Repeat upsert should reuse the row, got IDs %d and %d", first.ID, second.ID)
	}

	stored, err := repo.GetByID(first.ID)
	if err != nil {
		t.Fatalf("Failed to get nominator: %v", err)
	}
	if stored.Name != "Nina N." || stored.Company != "Acme GmbH" || stored.JobTitle != "Head of People" {
		t.Errorf("Upsert should refresh profile fields, got %+v", stored)
	}
}

func TestNomineeVariantRoundTrip(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	repo := repository.NewNomineeRepository(containers.DB)

	person := &models.Nominee{
		Type:        models.NomineeTypePerson,
		DisplayName: "Jane Doe",
		Email:       "jane@example.com",
		Person: &models.PersonDetails{
			HeadshotURL: "https://cdn.example.com/jane.jpg",
			JobTitle:    "CTO",
			Company:     "Acme",
			WhyMe:       "Shipped the impossible",
		},
	}
	if err := repo.Create(person); err != nil {
		t.Fatalf("Failed to create person nominee: %v", err)
	}

	gotPerson, err := repo.GetByID(person.ID)
	if err != nil {
		t.Fatalf("Failed to get person nominee: %v", err)
	}
	if gotPerson.Person == nil {
		t.Fatal("Person nominee should carry person details")
	}
	if gotPerson.Company != nil {
		t.Error("Person nominee should not carry company details")
	}
	if gotPerson.Person.WhyMe != "Shipped the impossible" {
		t.Errorf("Expected why_me to round-trip, got %q", gotPerson.Person.WhyMe)
	}

	company := &models.Nominee{
		Type:        models.NomineeTypeCompany,
		DisplayName: "Acme Corp",
		Email:       "contact@acme.example.com",
		Company: &models.CompanyDetails{
			LogoURL:    "https://cdn.example.com/acme.png",
			WebsiteURL: "https://acme.example.com",
			WhyUs:      "Best place to work",
		},
	}
	if err := repo.Create(company); err != nil {
		t.Fatalf("Failed to create company nominee: %v", err)
	}

	gotCompany, err := repo.GetByID(company.ID)
	if err != nil {
		t.Fatalf("Failed to get company nominee: %v", err)
	}
	if gotCompany.Company == nil {
		t.Fatal("Company nominee should carry company details")
	}
	if gotCompany.Person != nil {
		t.Error("Company nominee should not carry person details")
	}

	mismatched := &models.Nominee{
		Type:        models.NomineeTypePerson,
		DisplayName: "Broken",
	}
	if err := repo.Create(mismatched); err == nil {
		t.Error("Person nominee without person details should be rejected")
	}
}

func TestVoteTriggerMaintainsVoteCount(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	nominationRepo := repository.NewNominationRepository(containers.DB)
	voterRepo := repository.NewVoterRepository(containers.DB)
	voteRepo := repository.NewVoteRepository(containers.DB)

	nomination := seedApprovedNomination(t, containers, "rising-star", "Jane Doe", "jane@example.com")

	voter := &models.Voter{Email: "vera@example.com", Name: "Vera Voter"}
	if err := voterRepo.Upsert(voter); err != nil {
		t.Fatalf("Failed to upsert voter: %v", err)
	}

	vote := &models.Vote{
		VoterID:       voter.ID,
		NominationID:  nomination.ID,
		SubcategoryID: nomination.SubcategoryID,
	}
	if err := voteRepo.Create(vote); err != nil {
		t.Fatalf("Failed to create vote: %v", err)
	}

	stored, err := nominationRepo.GetByID(nomination.ID)
	if err != nil {
		t.Fatalf("Failed to get nomination: %v", err)
	}
	if stored.VoteCount != 1 {
		t.Errorf("Trigger should bump vote_count to 1, got %d", stored.VoteCount)
	}

	exists, err := voteRepo.ExistsForVoterEmail(nomination.SubcategoryID, "vera@example.com")
	if err != nil {
		t.Fatalf("Failed to check existing vote: %v", err)
	}
	if !exists {
		t.Error("ExistsForVoterEmail should report the cast vote")
	}

	exists, err = voteRepo.ExistsForVoterEmail(nomination.SubcategoryID, "other@example.com")
	if err != nil {
		t.Fatalf("Failed to check existing vote: %v", err)
	}
	if exists {
		t.Error("ExistsForVoterEmail should not report a vote for another email")
	}
}

func TestNominationStateTransitions(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	nominationRepo := repository.NewNominationRepository(containers.DB)

	nomination := seedApprovedNomination(t, containers, "rising-star", "Jane Doe", "jane@example.com")
	if nomination.State != models.NominationStateApproved {
		t.Fatalf("Expected approved state, got %s", nomination.State)
	}
	if nomination.ApprovedAt == nil || nomination.ApprovedBy == nil {
		t.Fatal("Approval should record timestamp and admin")
	}
	firstApprovedAt := *nomination.ApprovedAt

	// Re-approving only refreshes the live URL
	again, err := nominationRepo.Approve(nomination.ID, "https://awards.example.com/nominees/jane-doe-2", "other-admin@example.com")
	if err != nil {
		t.Fatalf("Re-approve failed: %v", err)
	}
	if again.LiveURL == nil || *again.LiveURL != "https://awards.example.com/nominees/jane-doe-2" {
		t.Errorf("Re-approve should refresh the live URL, got %v", again.LiveURL)
	}
	if !again.ApprovedAt.Equal(firstApprovedAt) {
		t.Error("Re-approve should keep the original approval timestamp")
	}
	if *again.ApprovedBy != "admin@example.com" {
		t.Errorf("Re-approve should keep the original approver, got %s", *again.ApprovedBy)
	}

	// Approved nominations cannot be rejected
	if _, err := nominationRepo.Reject(nomination.ID, "changed our minds"); !errors.Is(err, repository.ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition rejecting an approved nomination, got %v", err)
	}

	if _, err := nominationRepo.Approve(99999, "https://example.com", "admin@example.com"); !errors.Is(err, repository.ErrNominationNotFound) {
		t.Errorf("Expected ErrNominationNotFound for missing nomination, got %v", err)
	}
}

func TestFindPublicNominee(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	nominationRepo := repository.NewNominationRepository(containers.DB)

	nomination := seedApprovedNomination(t, containers, "rising-star", "Jane Doe", "jane@example.com")

	found, err := nominationRepo.FindPublicNominee(nomination.SubcategoryID, "  jAnE dOe  ")
	if err != nil {
		t.Fatalf("Case-insensitive lookup failed: %v", err)
	}
	if found.NominationID != nomination.ID {
		t.Errorf("Expected nomination %d, got %d", nomination.ID, found.NominationID)
	}

	if _, err := nominationRepo.FindPublicNominee(nomination.SubcategoryID, "Nobody"); !errors.Is(err, repository.ErrNominationNotFound) {
		t.Errorf("Expected ErrNominationNotFound for unknown name, got %v", err)
	}
}

func TestPublicNomineesTotalIncludesAdditionalVotes(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	nominationRepo := repository.NewNominationRepository(containers.DB)
	voterRepo := repository.NewVoterRepository(containers.DB)
	voteRepo := repository.NewVoteRepository(containers.DB)

	nomination := seedApprovedNomination(t, containers, "rising-star", "Jane Doe", "jane@example.com")

	voter := &models.Voter{Email: "vera@example.com", Name: "Vera Voter"}
	if err := voterRepo.Upsert(voter); err != nil {
		t.Fatalf("Failed to upsert voter: %v", err)
	}
	vote := &models.Vote{VoterID: voter.ID, NominationID: nomination.ID, SubcategoryID: nomination.SubcategoryID}
	if err := voteRepo.Create(vote); err != nil {
		t.Fatalf("Failed to create vote: %v", err)
	}

	additional := 5
	if _, err := nominationRepo.UpdateAdminFields(nomination.ID, nil, &additional, nil); err != nil {
		t.Fatalf("Failed to set additional votes: %v", err)
	}

	nominees, err := nominationRepo.ListPublicNominees(nomination.SubcategoryID)
	if err != nil {
		t.Fatalf("Failed to list public nominees: %v", err)
	}
	if len(nominees) != 1 {
		t.Fatalf("Expected one public nominee, got %d", len(nominees))
	}
	if nominees[0].TotalVotes != 6 {
		t.Errorf("Expected total of 1 vote + 5 additional = 6, got %d", nominees[0].TotalVotes)
	}
	if nominees[0].Pitch == nil || *nominees[0].Pitch != "A decade of quiet impact" {
		t.Errorf("Person nominee pitch should come from why_me, got %v", nominees[0].Pitch)
	}
}

func TestPublicNomineesExcludeUnapproved(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	categoryRepo := repository.NewCategoryRepository(containers.DB)
	nomineeRepo := repository.NewNomineeRepository(containers.DB)
	nominationRepo := repository.NewNominationRepository(containers.DB)

	subcategory, err := categoryRepo.GetSubcategoryBySlug("rising-star")
	if err != nil {
		t.Fatalf("Failed to get subcategory: %v", err)
	}

	nominee := &models.Nominee{
		Type:        models.NomineeTypePerson,
		DisplayName: "Pending Person",
		Person:      &models.PersonDetails{},
	}
	if err := nomineeRepo.Create(nominee); err != nil {
		t.Fatalf("Failed to create nominee: %v", err)
	}
	nomination := &models.Nomination{
		NomineeID:       &nominee.ID,
		CategoryGroupID: subcategory.CategoryGroupID,
		SubcategoryID:   subcategory.ID,
		State:           models.NominationStateSubmitted,
	}
	if err := nominationRepo.Create(nomination); err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	nominees, err := nominationRepo.ListPublicNominees(subcategory.ID)
	if err != nil {
		t.Fatalf("Failed to list public nominees: %v", err)
	}
	if len(nominees) != 0 {
		t.Errorf("Submitted nominations should not appear publicly, got %d rows", len(nominees))
	}
}

func TestListAdminFilters(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	categoryRepo := repository.NewCategoryRepository(containers.DB)
	nomineeRepo := repository.NewNomineeRepository(containers.DB)
	nominationRepo := repository.NewNominationRepository(containers.DB)

	approved := seedApprovedNomination(t, containers, "rising-star", "Jane Doe", "jane@example.com")

	subcategory, err := categoryRepo.GetSubcategoryBySlug("industry-leader")
	if err != nil {
		t.Fatalf("Failed to get subcategory: %v", err)
	}
	nominee := &models.Nominee{
		Type:        models.NomineeTypePerson,
		DisplayName: "John Smith",
		Email:       "john@example.com",
		Person:      &models.PersonDetails{},
	}
	if err := nomineeRepo.Create(nominee); err != nil {
		t.Fatalf("Failed to create nominee: %v", err)
	}
	submitted := &models.Nomination{
		NomineeID:       &nominee.ID,
		CategoryGroupID: subcategory.CategoryGroupID,
		SubcategoryID:   subcategory.ID,
		State:           models.NominationStateSubmitted,
	}
	if err := nominationRepo.Create(submitted); err != nil {
		t.Fatalf("Failed to create nomination: %v", err)
	}

	// State filter
	rows, err := nominationRepo.ListAdmin(repository.NominationFilters{
		States: []string{models.NominationStateApproved},
	}, 50, 0)
	if err != nil {
		t.Fatalf("Failed to list by state: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != approved.ID {
		t.Errorf("State filter should return only the approved nomination, got %d rows", len(rows))
	}

	// Subcategory filter
	rows, err = nominationRepo.ListAdmin(repository.NominationFilters{
		SubcategoryID: &subcategory.ID,
	}, 50, 0)
	if err != nil {
		t.Fatalf("Failed to list by subcategory: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != submitted.ID {
		t.Errorf("Subcategory filter should return only the submitted nomination, got %d rows", len(rows))
	}

	// Search over nominee fields
	rows, err = nominationRepo.ListAdmin(repository.NominationFilters{
		Search: "john@",
	}, 50, 0)
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(rows) != 1 || rows[0].NomineeDisplayName != "John Smith" {
		t.Errorf("Search should match the nominee email, got %d rows", len(rows))
	}

	counts, err := nominationRepo.CountByState()
	if err != nil {
		t.Fatalf("Failed to count by state: %v", err)
	}
	if counts[models.NominationStateApproved] != 1 || counts[models.NominationStateSubmitted] != 1 {
		t.Errorf("Unexpected state counts: %v", counts)
	}
}

func TestOutboxHasRecentEvent(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)

	_, err := outboxRepo.Enqueue(models.OutboxTargetLoops, models.EventNomineeApproved, &models.ContactPayload{
		Email: "jane@example.com",
		Name:  "Jane Doe",
	})
	if err != nil {
		t.Fatalf("Failed to enqueue: %v", err)
	}

	recent, err := outboxRepo.HasRecentEvent(models.EventNomineeApproved, "jane@example.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to check recent event: %v", err)
	}
	if !recent {
		t.Error("Fresh entry should count as recent")
	}

	recent, err = outboxRepo.HasRecentEvent(models.EventNomineeApproved, "other@example.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to check recent event: %v", err)
	}
	if recent {
		t.Error("Other emails should not match")
	}

	recent, err = outboxRepo.HasRecentEvent(models.EventNominatorSynced, "jane@example.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to check recent event: %v", err)
	}
	if recent {
		t.Error("Other event types should not match")
	}

	// Age the entry past the window
	if _, err := containers.DB.Exec(`UPDATE outbox SET created_at = NOW() - INTERVAL '25 hours'`); err != nil {
		t.Fatalf("Failed to age entry: %v", err)
	}
	recent, err = outboxRepo.HasRecentEvent(models.EventNomineeApproved, "jane@example.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to check recent event: %v", err)
	}
	if recent {
		t.Error("Entries outside the window should not count")
	}
}

func TestSettingsRepository(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	repo := repository.NewSettingsRepository(containers.DB)

	// Seeded by migration
	setting, err := repo.Get("nominations_open")
	if err != nil {
		t.Fatalf("Failed to get seeded setting: %v", err)
	}
	if setting.Value != "true" {
		t.Errorf("Expected nominations_open seeded to true, got %q", setting.Value)
	}

	if _, err := repo.Get("missing_key"); !errors.Is(err, repository.ErrSettingNotFound) {
		t.Errorf("Expected ErrSettingNotFound, got %v", err)
	}

	if err := repo.Set("nominations_open", "false"); err != nil {
		t.Fatalf("Failed to set setting: %v", err)
	}
	setting, err = repo.Get("nominations_open")
	if err != nil {
		t.Fatalf("Failed to get setting: %v", err)
	}
	if setting.Value != "false" {
		t.Errorf("Expected updated value false, got %q", setting.Value)
	}
}

func TestTimelineRepository(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	repo := repository.NewTimelineRepository(containers.DB)

	second := &models.TimelineEntry{
		Title:     "Voting opens",
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SortOrder: 2,
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("Failed to create timeline entry: %v", err)
	}

	first := &models.TimelineEntry{
		Title:       "Nominations open",
		Description: "Submit your nominations",
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		SortOrder:   1,
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Failed to create timeline entry: %v", err)
	}

	entries, err := repo.List()
	if err != nil {
		t.Fatalf("Failed to list timeline entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Nominations open" {
		t.Errorf("Entries should sort by sort_order, got %q first", entries[0].Title)
	}

	first.Title = "Nominations are open"
	if err := repo.Update(first); err != nil {
		t.Fatalf("Failed to update timeline entry: %v", err)
	}

	if err := repo.Delete(second.ID); err != nil {
		t.Fatalf("Failed to delete timeline entry: %v", err)
	}
	if err := repo.Delete(second.ID); !errors.Is(err, repository.ErrTimelineEntryNotFound) {
		t.Errorf("Expected ErrTimelineEntryNotFound on double delete, got %v", err)
	}
}
