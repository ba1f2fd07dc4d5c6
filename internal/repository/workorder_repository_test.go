package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crane-workorders/internal/domain"
	"github.com/spec-kit/crane-workorders/internal/repository"
	"github.com/spec-kit/crane-workorders/internal/testutil"
)

// stepClock advances by one second on every call.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newWorkorderRepo(t *testing.T) (repository.WorkorderRepository, *stepClock) {
	clock := &stepClock{t: time.Date(2024, 3, 1, 8, 0, 0, 123456789, time.UTC)}
	repo := repository.NewWorkorderRepository(testutil.OpenStore(t), repository.WithClock(clock.Now))
	return repo, clock
}

func TestWorkorderRepository_CreateThenGetRoundTrip(t *testing.T) {
	repo, _ := newWorkorderRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.WorkorderInput{
		Title:       "Inspect crane 3",
		Description: "hoist brake squeals",
		Location:    "Bay 2",
		Technician:  "R. Osei",
		Status:      domain.WorkorderStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.Equal(t, 123456000, created.CreatedAt.Nanosecond())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Location, fetched.Location)
	assert.Equal(t, created.Technician, fetched.Technician)
	assert.Equal(t, created.Status, fetched.Status)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(fetched.UpdatedAt))
	assert.Equal(t, time.UTC, fetched.CreatedAt.Location())
}

func TestWorkorderRepository_ListInIDOrder(t *testing.T) {
	repo, _ := newWorkorderRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, domain.WorkorderInput{Title: title, Status: domain.WorkorderStatusInProgress})
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "third", items[2].Title)
	assert.Less(t, items[0].ID, items[1].ID)
}

func TestWorkorderRepository_UpdateReplacesFields(t *testing.T) {
	repo, _ := newWorkorderRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.WorkorderInput{
		Title:      "Inspect crane 3",
		Location:   "Bay 2",
		Technician: "R. Osei",
		Status:     domain.WorkorderStatusInProgress,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.WorkorderInput{
		Title:  "Inspect crane 3",
		Status: domain.WorkorderStatusClosed,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.WorkorderStatusClosed, updated.Status)
	assert.Empty(t, updated.Location, "omitted fields are replaced, not preserved")
	assert.Empty(t, updated.Technician)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestWorkorderRepository_UpdateMissingDoesNotCreate(t *testing.T) {
	repo, _ := newWorkorderRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 99, domain.WorkorderInput{Title: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWorkorderRepository_Delete(t *testing.T) {
	repo, _ := newWorkorderRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.WorkorderInput{Title: "Replace cable"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), repository.ErrNotFound)
}

func TestWorkorderRepository_AcceptsAnyStatus(t *testing.T) {
	repo, _ := newWorkorderRepo(t)

	created, err := repo.Create(context.Background(), domain.WorkorderInput{Title: "Lube", Status: "waiting_parts"})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkorderStatus("waiting_parts"), created.Status)
}
