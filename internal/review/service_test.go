package review

import (
	"context"
	"testing"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2025-06-13; the most recent Monday is 2025-06-09.
var fixedNow = time.Date(2025, 6, 13, 15, 0, 0, 0, time.UTC)

func newTestService(repo *testutil.MemTaskRepo) (*Service, *testutil.MemReviewRepo) {
	reviews := &testutil.MemReviewRepo{}
	svc := NewService(repo, reviews).WithClock(func() time.Time { return fixedNow })
	return svc, reviews
}

func TestGatherData_DefaultsToMostRecentMonday(t *testing.T) {
	svc, _ := newTestService(testutil.NewMemTaskRepo())
	data, err := svc.GatherData(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", data.WeekStart)
}

func TestGatherData_InvalidWeekStart(t *testing.T) {
	svc, _ := newTestService(testutil.NewMemTaskRepo())
	_, err := svc.GatherData(context.Background(), "June 9")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGatherData_CompletedThisWeek(t *testing.T) {
	inWeek := testutil.DoneTask("t-1", "in week", time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC))
	lastMonth := testutil.DoneTask("t-2", "last month", time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC))
	open := testutil.OpenTask("t-3", "still open")

	svc, _ := newTestService(testutil.NewMemTaskRepo(inWeek, lastMonth, open))
	data, err := svc.GatherData(context.Background(), "2025-06-09")
	require.NoError(t, err)

	require.Equal(t, 1, data.Completed.Count)
	assert.Equal(t, "in week", data.Completed.Tasks[0].Name)
	require.Len(t, data.OpenTasks, 1)
	assert.Equal(t, "still open", data.OpenTasks[0].Name)
}

func TestGatherData_CompletedFallbackWithoutTimestamps(t *testing.T) {
	// Done tasks with no updated_at cannot be bucketed by week; the whole
	// Done set stands in so the review is not silently empty.
	done := domain.Task{ID: "t-1", Name: "untimestamped", Status: domain.StatusDone, Mentioned: 1}
	svc, _ := newTestService(testutil.NewMemTaskRepo(done))

	data, err := svc.GatherData(context.Background(), "2025-06-09")
	require.NoError(t, err)
	assert.Equal(t, 1, data.Completed.Count)
}

func TestGatherData_ProcrastinationListSorted(t *testing.T) {
	a := testutil.OpenTask("t-1", "mentioned often")
	a.Mentioned = 5
	old := fixedNow.AddDate(0, 0, -21)
	b := testutil.OpenTask("t-2", "old and nagging")
	b.Mentioned = 7
	b.CreatedAt = &old
	c := testutil.OpenTask("t-3", "fresh")

	svc, _ := newTestService(testutil.NewMemTaskRepo(a, b, c))
	data, err := svc.GatherData(context.Background(), "2025-06-09")
	require.NoError(t, err)

	require.Len(t, data.ProcrastinationList, 2)
	assert.Equal(t, "old and nagging", data.ProcrastinationList[0].Task.Name)
	assert.Equal(t, "mentioned 7 times; stale for 21 days", data.ProcrastinationList[0].Reason)
	assert.Equal(t, "mentioned often", data.ProcrastinationList[1].Task.Name)
}

func TestGatherData_StaleDecisionsOldestFirst(t *testing.T) {
	older := fixedNow.AddDate(0, 0, -30)
	newer := fixedNow.AddDate(0, 0, -15)
	recent := fixedNow.AddDate(0, 0, -3)

	a := testutil.OpenTask("t-1", "newer")
	a.CreatedAt = &newer
	b := testutil.OpenTask("t-2", "older")
	b.CreatedAt = &older
	c := testutil.OpenTask("t-3", "recent")
	c.CreatedAt = &recent

	svc, _ := newTestService(testutil.NewMemTaskRepo(a, b, c))
	data, err := svc.GatherData(context.Background(), "2025-06-09")
	require.NoError(t, err)

	require.Len(t, data.StaleDecisions, 2)
	assert.Equal(t, "older", data.StaleDecisions[0].Name)
	assert.Equal(t, "newer", data.StaleDecisions[1].Name)
}

func TestGatherData_EnergyAndOverrides(t *testing.T) {
	red := domain.EnergyRed
	doneRed := testutil.DoneTask("t-1", "drained", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	doneRed.Energy = &red
	doneUnrated := testutil.DoneTask("t-2", "unrated", time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC))

	manual := testutil.OpenTask("t-3", "manual")
	manual.Priority = domain.IntPtr(1)
	auto := testutil.OpenTask("t-4", "auto")

	svc, _ := newTestService(testutil.NewMemTaskRepo(doneRed, doneUnrated, manual, auto))
	data, err := svc.GatherData(context.Background(), "2025-06-09")
	require.NoError(t, err)

	assert.Equal(t, EnergyBreakdown{Red: 1, Unrated: 1}, data.Energy)
	assert.Equal(t, 1, data.Overrides.ManualCount)
	assert.Equal(t, 1, data.Overrides.AutoCount)
	require.Len(t, data.Overrides.ManualTasks, 1)
	assert.Equal(t, "manual", data.Overrides.ManualTasks[0].Name)
}

func TestGatherData_RepoError(t *testing.T) {
	repo := testutil.NewMemTaskRepo()
	repo.Err = assert.AnError
	svc, _ := newTestService(repo)
	_, err := svc.GatherData(context.Background(), "2025-06-09")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPersistReview(t *testing.T) {
	svc, reviews := newTestService(testutil.NewMemTaskRepo())
	data := &Data{WeekStart: "2025-06-09", Completed: CompletedSummary{Count: 4}}

	rec, err := svc.PersistReview(context.Background(), data,
		"we talked through the week", "shipped the report", "too many meetings", "protect mornings")
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewID("review-1"), rec.ID)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), rec.WeekOf)
	require.NotNil(t, rec.Wins)
	assert.Equal(t, "shipped the report", *rec.Wins)
	require.NotNil(t, rec.TasksCompleted)
	assert.Equal(t, 4, *rec.TasksCompleted)
	require.Len(t, reviews.Reviews, 1)
}

func TestPersistReview_EmptyTranscriptRejected(t *testing.T) {
	svc, reviews := newTestService(testutil.NewMemTaskRepo())
	data := &Data{WeekStart: "2025-06-09"}
	_, err := svc.PersistReview(context.Background(), data, "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, reviews.Reviews)
}
