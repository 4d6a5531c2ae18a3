package repository_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset(t *testing.T) *fixtures.Dataset {
	t.Helper()
	ds, err := fixtures.Load()
	require.NoError(t, err)
	return ds
}

func TestClientListReturnsCopies(t *testing.T) {
	repo := repository.ClientRepository{Data: dataset(t)}
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Mutating a returned record must not leak into later reads.
	first[0].Name = "mutated"
	first[0].Services[0].Activities[0].Name = "mutated"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ABC Corporation Pvt Ltd", second[0].Name)
	assert.Equal(t, "GST 3B Filing", second[0].Services[0].Activities[0].Name)
}

func TestClientCreateIsNotDurable(t *testing.T) {
	ds := dataset(t)
	repo := repository.ClientRepository{Data: ds}
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	created, err := repo.Create(ctx, domain.Client{Name: "Ghost Ltd", Status: domain.ClientActive})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ghost Ltd", created.Name)

	// The id is a millisecond timestamp.
	ms, err := strconv.ParseInt(created.ID, 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), ms, float64(5*time.Second/time.Millisecond))

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientUpdateEchoesWithoutPersisting(t *testing.T) {
	repo := repository.ClientRepository{Data: dataset(t)}
	ctx := context.Background()

	updated, err := repo.Update(ctx, "1", domain.Client{Name: "Renamed Corp", Status: domain.ClientInactive})
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "Renamed Corp", updated.Name)
	// DateAdded carried over from the stored record when omitted.
	assert.False(t, updated.DateAdded.IsZero())

	fresh, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "ABC Corporation Pvt Ltd", fresh.Name)
}

func TestClientNotFound(t *testing.T) {
	repo := repository.ClientRepository{Data: dataset(t)}
	ctx := context.Background()

	_, err := repo.Get(ctx, "404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, "404", domain.Client{Name: "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientDeleteExistingSucceeds(t *testing.T) {
	repo := repository.ClientRepository{Data: dataset(t)}
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "1"))

	// Non-durable: the record is still there afterwards.
	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}

func TestClientSearch(t *testing.T) {
	repo := repository.ClientRepository{Data: dataset(t)}
	ctx := context.Background()

	byName, err := repo.Search(ctx, "abc corp")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byEmail, err := repo.Search(ctx, "xyzassociates.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "2", byEmail[0].ID)

	byType, err := repo.Search(ctx, "limited")
	require.NoError(t, err)
	// Private Limited, Limited Liability Partnership, Public Limited.
	assert.Len(t, byType, 3)

	none, err := repo.Search(ctx, "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestServiceSearchMatchesActivityNames(t *testing.T) {
	repo := repository.ServiceRepository{Data: dataset(t)}
	ctx := context.Background()

	got, err := repo.Search(ctx, "bookkeeping")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Accounting Services", got[0].Name)

	byName, err := repo.Search(ctx, "gst")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "GST Services", byName[0].Name)
}

func TestTicketByClient(t *testing.T) {
	repo := repository.TicketRepository{Data: dataset(t)}
	ctx := context.Background()

	got, err := repo.ByClient(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tk := range got {
		assert.Equal(t, "1", tk.ClientID)
	}

	empty, err := repo.ByClient(ctx, "404")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTicketSearch(t *testing.T) {
	repo := repository.TicketRepository{Data: dataset(t)}
	ctx := context.Background()

	byTitle, err := repo.Search(ctx, "gst 3b")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "1", byTitle[0].ID)

	byAssignee, err := repo.Search(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, byAssignee, 2)
}

func TestDocumentSearchAndByClient(t *testing.T) {
	repo := repository.DocumentRepository{Data: dataset(t)}
	ctx := context.Background()

	byYear, err := repo.Search(ctx, "2023-24")
	require.NoError(t, err)
	assert.Len(t, byYear, 3)

	byClient, err := repo.ByClient(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, byClient, 3)
}

func TestUserStoreIsReadOnlySurface(t *testing.T) {
	repo := repository.UserRepository{Data: dataset(t)}
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	admin, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	found, err := repo.Search(ctx, "cafirm.com")
	require.NoError(t, err)
	assert.Len(t, found, 5)

	_, err = repo.Get(ctx, "404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelaysApplyPerOperation(t *testing.T) {
	repo := repository.ClientRepository{
		Data:   dataset(t),
		Delays: repository.Delays{Get: 50 * time.Millisecond},
	}

	start := time.Now()
	_, err := repo.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	// List has no delay configured and returns promptly.
	start = time.Now()
	_, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestCancellationInterruptsDelay(t *testing.T) {
	repo := repository.ClientRepository{
		Data:   dataset(t),
		Delays: repository.Delays{List: 5 * time.Second},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("List did not return after cancellation")
	}
}

func TestDeadlineInterruptsDelay(t *testing.T) {
	repo := repository.TicketRepository{
		Data:   dataset(t),
		Delays: repository.Delays{Search: 5 * time.Second},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := repo.Search(ctx, "gst")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), time.Second)
}

func TestHealthReportsDatasetConsistency(t *testing.T) {
	ds := dataset(t)
	h := repository.Health{Data: ds}
	require.NoError(t, h.Health(context.Background()))

	ds.Tickets[0].ClientID = "404"
	assert.Error(t, h.Health(context.Background()))
}
