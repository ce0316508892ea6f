package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/repository"
	"github.com/jdelgad/nudge/internal/testutil"
)

func newTaskRepo(t *testing.T) *repository.SQLiteTaskRepo {
	t.Helper()
	return repository.NewSQLiteTaskRepo(testutil.NewTestDB(t))
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	energy := domain.EnergyGreen
	tt := domain.TypeNeverMiss2x
	created, err := repo.Create(ctx, domain.TaskDraft{
		Name:                "Morning run",
		Status:              domain.StatusTasks,
		Mentioned:           1,
		Energy:              &energy,
		TaskType:            &tt,
		CompleteTimeMinutes: domain.IntPtr(30),
		Source:              domain.StrPtr("cli"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning run", got.Name)
	assert.Equal(t, domain.StatusTasks, got.Status)
	assert.Equal(t, 1, got.Mentioned)
	require.NotNil(t, got.Energy)
	assert.Equal(t, domain.EnergyGreen, *got.Energy)
	require.NotNil(t, got.TaskType)
	assert.Equal(t, domain.TypeNeverMiss2x, *got.TaskType)
	require.NotNil(t, got.CompleteTimeMinutes)
	assert.Equal(t, 30, *got.CompleteTimeMinutes)
	require.NotNil(t, got.Source)
	assert.Equal(t, "cli", *got.Source)
	require.NotNil(t, got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	assert.Nil(t, got.Priority)
	assert.Nil(t, got.BlockedBy)
}

func TestTaskRepo_CreateAcceptsZeroMentioned(t *testing.T) {
	repo := newTaskRepo(t)

	// Any draft that passes domain validation must also pass the store's
	// CHECK constraints.
	created, err := repo.Create(context.Background(), domain.TaskDraft{
		Name:   "placeholder",
		Status: domain.StatusTasks,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Mentioned)
}

func TestTaskRepo_GetNotFound(t *testing.T) {
	repo := newTaskRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepo_CreateRejectsInvalidDraft(t *testing.T) {
	repo := newTaskRepo(t)
	_, err := repo.Create(context.Background(), domain.TaskDraft{Name: "  ", Status: domain.StatusTasks})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskRepo_QueryFilters(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	mustCreate := func(name string, status domain.TaskStatus) {
		t.Helper()
		_, err := repo.Create(ctx, domain.TaskDraft{Name: name, Status: status, Mentioned: 1})
		require.NoError(t, err)
	}
	mustCreate("open one", domain.StatusTasks)
	mustCreate("an idea", domain.StatusIdeas)
	mustCreate("finished", domain.StatusDone)
	mustCreate("abandoned", domain.StatusWontDo)

	all, err := repo.Query(ctx, repository.TaskQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	open, err := repo.Query(ctx, repository.TaskQuery{ExcludeDone: true})
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, task := range open {
		assert.True(t, task.IsOpen())
	}

	ideas := domain.StatusIdeas
	byStatus, err := repo.Query(ctx, repository.TaskQuery{Status: &ideas})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "an idea", byStatus[0].Name)
}

func TestTaskRepo_Update(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.TaskDraft{Name: "Draft", Status: domain.StatusIdeas, Mentioned: 1})
	require.NoError(t, err)

	done := domain.StatusDone
	red := domain.EnergyRed
	updated, err := repo.Update(ctx, domain.TaskMutation{
		TaskID:   created.ID,
		Status:   &done,
		Energy:   &red,
		Priority: domain.IntPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, updated.Status)
	require.NotNil(t, updated.Energy)
	assert.Equal(t, domain.EnergyRed, *updated.Energy)
	require.NotNil(t, updated.Priority)
	assert.Equal(t, 2, *updated.Priority)
	assert.Equal(t, "Draft", updated.Name, "untouched fields survive")
}

func TestTaskRepo_UpdateNotFound(t *testing.T) {
	repo := newTaskRepo(t)
	name := "renamed"
	_, err := repo.Update(context.Background(), domain.TaskMutation{TaskID: "missing", Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepo_UpdateRejectsEmptyMutation(t *testing.T) {
	repo := newTaskRepo(t)
	_, err := repo.Update(context.Background(), domain.TaskMutation{TaskID: "t-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskRepo_IncrementMentioned(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.TaskDraft{Name: "Call mom", Status: domain.StatusTasks, Mentioned: 1})
	require.NoError(t, err)

	n, err := repo.IncrementMentioned(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.IncrementMentioned(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Mentioned)
}

func TestTaskRepo_IncrementMentionedNotFound(t *testing.T) {
	repo := newTaskRepo(t)
	_, err := repo.IncrementMentioned(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepo_TimestampsAreUTC(t *testing.T) {
	repo := newTaskRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.TaskDraft{Name: "x", Status: domain.StatusTasks, Mentioned: 1})
	require.NoError(t, err)
	require.NotNil(t, created.CreatedAt)
	assert.WithinDuration(t, time.Now().UTC(), *created.CreatedAt, time.Minute)
}
