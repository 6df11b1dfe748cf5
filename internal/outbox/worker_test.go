package outbox

import (
	"context"
	"errors"
	"testing"

	"awards-api/internal/config"
	"awards-api/internal/models"
	"awards-api/internal/repository"
	"awards-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records deliveries and fails on demand
type fakeSink struct {
	enabled  bool
	err      error
	payloads []models.ContactPayload
}

func (s *fakeSink) UpsertContact(_ context.Context, payload *models.ContactPayload) error {
	s.payloads = append(s.payloads, *payload)
	return s.err
}

func (s *fakeSink) Enabled() bool {
	return s.enabled
}

func newTestWorker(outboxRepo *repository.OutboxRepository, hubspot, loops Sink, maxAttempts int) *Worker {
	return NewWorker(outboxRepo, hubspot, loops, &config.SyncConfig{
		BatchSize:   10,
		MaxAttempts: maxAttempts,
	})
}

func entryStatus(t *testing.T, containers *testutil.TestContainers, id uint) (string, int, *string) {
	t.Helper()

	var status string
	var attempts int
	var lastError *string
	err := containers.DB.QueryRow(
		`SELECT status, attempt_count, last_error FROM outbox WHERE id = $1`, id,
	).Scan(&status, &attempts, &lastError)
	require.NoError(t, err)

	return status, attempts, lastError
}

func TestDrainDeliversPendingEntries(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	hubspot := &fakeSink{enabled: true}
	loops := &fakeSink{enabled: true}
	worker := newTestWorker(outboxRepo, hubspot, loops, 5)

	entry, err := outboxRepo.Enqueue(models.OutboxTargetLoops, models.EventVoterSynced, &models.ContactPayload{
		Email:     "voter@example.com",
		Name:      "Vera Voter",
		UserGroup: "Voters",
	})
	require.NoError(t, err)

	result, err := worker.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, loops.payloads, 1)
	assert.Equal(t, "voter@example.com", loops.payloads[0].Email)
	assert.Empty(t, hubspot.payloads)

	status, attempts, lastError := entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusDone, status)
	assert.Equal(t, 1, attempts)
	assert.Nil(t, lastError)
}

func TestDrainRequeuesFailedEntry(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	hubspot := &fakeSink{enabled: true, err: errors.New("hubspot unavailable")}
	loops := &fakeSink{enabled: true}
	worker := newTestWorker(outboxRepo, hubspot, loops, 5)

	entry, err := outboxRepo.Enqueue(models.OutboxTargetHubSpot, models.EventNominatorSynced, &models.ContactPayload{
		Email: "nominator@example.com",
		Name:  "Nina Nominator",
	})
	require.NoError(t, err)

	result, err := worker.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Dead)

	status, attempts, lastError := entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusPending, status)
	assert.Equal(t, 1, attempts)
	require.NotNil(t, lastError)
	assert.Equal(t, "hubspot unavailable", *lastError)
}

func TestDrainParksEntryAfterMaxAttempts(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	hubspot := &fakeSink{enabled: true, err: errors.New("still down")}
	loops := &fakeSink{enabled: true}
	worker := newTestWorker(outboxRepo, hubspot, loops, 2)

	entry, err := outboxRepo.Enqueue(models.OutboxTargetHubSpot, models.EventNominatorSynced, &models.ContactPayload{
		Email: "nominator@example.com",
		Name:  "Nina Nominator",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := worker.Drain(context.Background())
		require.NoError(t, err)
	}

	status, attempts, lastError := entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusDead, status)
	assert.Equal(t, 2, attempts)
	require.NotNil(t, lastError)

	// Dead entries are off the queue until an admin retries them
	result, err := worker.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)

	require.NoError(t, outboxRepo.RetryDead(entry.ID))

	status, attempts, _ = entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusPending, status)
	assert.Equal(t, 0, attempts)
}

func TestDrainSkipsDisabledTarget(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	hubspot := &fakeSink{enabled: false}
	loops := &fakeSink{enabled: true}
	worker := newTestWorker(outboxRepo, hubspot, loops, 5)

	entry, err := outboxRepo.Enqueue(models.OutboxTargetHubSpot, models.EventNominatorSynced, &models.ContactPayload{
		Email: "nominator@example.com",
		Name:  "Nina Nominator",
	})
	require.NoError(t, err)

	result, err := worker.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, hubspot.payloads)

	// Entry stays pending so nothing is lost while the sync is off
	status, attempts, _ := entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusPending, status)
	assert.Equal(t, 0, attempts)
}

func TestDrainParksUnparseablePayload(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	loops := &fakeSink{enabled: true}
	worker := newTestWorker(outboxRepo, &fakeSink{enabled: true}, loops, 5)

	// A payload whose fields have the wrong types will never unmarshal
	var id uint
	err := containers.DB.QueryRow(`
		INSERT INTO outbox (target, event_type, payload, idempotency_key, status)
		VALUES ($1, $2, '{"email": 42}', 'b5bc0347-7f07-4cc7-9a6f-6a0c4d9a3a01', 'pending')
		RETURNING id
	`, models.OutboxTargetLoops, models.EventVoterSynced).Scan(&id)
	require.NoError(t, err)

	result, err := worker.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Dead)
	assert.Empty(t, loops.payloads)

	status, _, lastError := entryStatus(t, containers, id)
	assert.Equal(t, models.OutboxStatusDead, status)
	require.NotNil(t, lastError)
	assert.Contains(t, *lastError, "invalid payload")
}

func TestDoneEntriesNeverRegress(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	outboxRepo := repository.NewOutboxRepository(containers.DB)
	worker := newTestWorker(outboxRepo, &fakeSink{enabled: true}, &fakeSink{enabled: true}, 5)

	entry, err := outboxRepo.Enqueue(models.OutboxTargetLoops, models.EventVoterSynced, &models.ContactPayload{
		Email: "voter@example.com",
		Name:  "Vera Voter",
	})
	require.NoError(t, err)

	_, err = worker.Drain(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, outboxRepo.MarkProcessing(entry.ID), repository.ErrOutboxEntryNotFound)
	assert.ErrorIs(t, outboxRepo.MarkRetry(entry.ID, "late failure"), repository.ErrOutboxEntryNotFound)
	assert.ErrorIs(t, outboxRepo.MarkDead(entry.ID, "late failure"), repository.ErrOutboxEntryNotFound)

	status, _, _ := entryStatus(t, containers, entry.ID)
	assert.Equal(t, models.OutboxStatusDone, status)
}
