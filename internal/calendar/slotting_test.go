package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func window(t *testing.T, startH, startM, endH, endM int) domain.AvailabilityWindow {
	t.Helper()
	w, err := domain.NewAvailabilityWindow(
		testDay.Add(time.Duration(startH)*time.Hour+time.Duration(startM)*time.Minute),
		testDay.Add(time.Duration(endH)*time.Hour+time.Duration(endM)*time.Minute),
	)
	require.NoError(t, err)
	return w
}

func availability(t *testing.T, windows ...domain.AvailabilityWindow) domain.Availability {
	t.Helper()
	a, err := domain.NewAvailability(windows)
	require.NoError(t, err)
	return a
}

func estTask(name string, minutes int) domain.Task {
	return domain.Task{ID: domain.TaskID(name), Name: name, Status: domain.StatusTasks,
		CompleteTimeMinutes: domain.IntPtr(minutes)}
}

func TestApplyBuffer_ShrinksBothEnds(t *testing.T) {
	got := ApplyBuffer([]domain.AvailabilityWindow{window(t, 9, 0, 12, 0)}, 15)
	require.Len(t, got, 1)
	assert.Equal(t, testDay.Add(9*time.Hour+15*time.Minute), got[0].Start)
	assert.Equal(t, testDay.Add(11*time.Hour+45*time.Minute), got[0].End)
}

func TestApplyBuffer_DropsConsumedWindow(t *testing.T) {
	got := ApplyBuffer([]domain.AvailabilityWindow{window(t, 9, 0, 10, 0)}, 60)
	assert.Empty(t, got)

	// Exactly consumed at 30 minutes per side too.
	got = ApplyBuffer([]domain.AvailabilityWindow{window(t, 9, 0, 10, 0)}, 30)
	assert.Empty(t, got)
}

func TestApplyBuffer_ZeroOrNegativeIsNoop(t *testing.T) {
	in := []domain.AvailabilityWindow{window(t, 9, 0, 10, 0)}
	assert.Equal(t, in, ApplyBuffer(in, 0))
	assert.Equal(t, in, ApplyBuffer(in, -5))
}

func TestProtectMorning_TruncatesAtCutoff(t *testing.T) {
	windows := []domain.AvailabilityWindow{window(t, 8, 0, 11, 0), window(t, 13, 0, 15, 0)}
	morning, remaining, err := ProtectMorning(windows, "09:30", testDay)
	require.NoError(t, err)

	require.NotNil(t, morning)
	assert.Equal(t, testDay.Add(8*time.Hour), morning.Start)
	assert.Equal(t, testDay.Add(9*time.Hour+30*time.Minute), morning.End)

	require.Len(t, remaining, 2)
	assert.Equal(t, testDay.Add(9*time.Hour+30*time.Minute), remaining[0].Start)
	assert.Equal(t, testDay.Add(11*time.Hour), remaining[0].End)
	assert.Equal(t, testDay.Add(13*time.Hour), remaining[1].Start)
}

func TestProtectMorning_WindowEntirelyBeforeCutoff(t *testing.T) {
	windows := []domain.AvailabilityWindow{window(t, 7, 0, 8, 0), window(t, 8, 30, 9, 0)}
	morning, remaining, err := ProtectMorning(windows, "10:00", testDay)
	require.NoError(t, err)

	// First match wins; the second pre-cutoff window stays in remaining.
	require.NotNil(t, morning)
	assert.Equal(t, testDay.Add(7*time.Hour), morning.Start)
	assert.Equal(t, testDay.Add(8*time.Hour), morning.End)
	require.Len(t, remaining, 1)
	assert.Equal(t, testDay.Add(8*time.Hour+30*time.Minute), remaining[0].Start)
}

func TestProtectMorning_NoMorningWindow(t *testing.T) {
	windows := []domain.AvailabilityWindow{window(t, 13, 0, 15, 0)}
	morning, remaining, err := ProtectMorning(windows, "09:00", testDay)
	require.NoError(t, err)
	assert.Nil(t, morning)
	assert.Len(t, remaining, 1)
}

func TestProtectMorning_BadCutoff(t *testing.T) {
	_, _, err := ProtectMorning(nil, "930", testDay)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = ProtectMorning(nil, "25:00", testDay)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFindSlot_FirstFitNotBestFit(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0), window(t, 13, 0, 16, 0))
	slot := FindSlot(estTask("deep work", 120), avail, 0)
	require.NotNil(t, slot)
	assert.Equal(t, testDay.Add(13*time.Hour), slot.Start)

	// A short task takes the first window even though the second is larger.
	slot = FindSlot(estTask("email", 30), avail, 0)
	require.NotNil(t, slot)
	assert.Equal(t, testDay.Add(9*time.Hour), slot.Start)
}

func TestFindSlot_NoEstimateReturnsLargest(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0), window(t, 13, 0, 16, 0))
	task := domain.Task{ID: "t", Name: "open-ended", Status: domain.StatusTasks}
	slot := FindSlot(task, avail, 0)
	require.NotNil(t, slot)
	assert.Equal(t, testDay.Add(13*time.Hour), slot.Start)
}

func TestFindSlot_NothingFits(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0))
	assert.Nil(t, FindSlot(estTask("marathon", 300), avail, 0))

	// No-estimate task with all windows buffered away.
	task := domain.Task{ID: "t", Name: "open-ended", Status: domain.StatusTasks}
	assert.Nil(t, FindSlot(task, avail, 60))
}

func TestRequireSlot(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0))
	slot, err := RequireSlot(estTask("quick", 30), avail, 0)
	require.NoError(t, err)
	assert.NotNil(t, slot)

	_, err = RequireSlot(estTask("marathon", 300), avail, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSlotting)
}

func TestDetectConflicts_ShrinkingPool(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0), window(t, 13, 0, 14, 0))
	tasks := []domain.Task{
		estTask("a", 45), // takes 09:00-09:45
		estTask("b", 30), // 15min left in window 1, fits 13:00-13:30
		estTask("c", 45), // only 30min left anywhere: conflict
		estTask("d", 15), // fits 09:45-10:00
	}
	conflicts := DetectConflicts(tasks, avail, 0)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "c", conflicts[0].Name)
}

func TestDetectConflicts_ExactFitRemovesWindow(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0))
	tasks := []domain.Task{estTask("a", 60), estTask("b", 1)}
	conflicts := DetectConflicts(tasks, avail, 0)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "b", conflicts[0].Name)
}

func TestDetectConflicts_NoEstimateSkipped(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 9, 30))
	open := domain.Task{ID: "x", Name: "open-ended", Status: domain.StatusTasks}
	conflicts := DetectConflicts([]domain.Task{open, estTask("big", 120)}, avail, 0)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "big", conflicts[0].Name)
}

func TestFilterCalendarFit(t *testing.T) {
	avail := availability(t, window(t, 9, 0, 10, 0))
	open := domain.Task{ID: "x", Name: "open-ended", Status: domain.StatusTasks}
	fits, noFit := FilterCalendarFit([]domain.Task{estTask("ok", 30), estTask("big", 120), open}, avail, 0)
	assert.Len(t, fits, 2)
	require.Len(t, noFit, 1)
	assert.Equal(t, "big", noFit[0].Name)
}

type fakePort struct {
	avail    domain.Availability
	overview WeekOverview
	err      error
}

func (f *fakePort) GetAvailability(ctx context.Context, date string) (domain.Availability, error) {
	return f.avail, f.err
}

func (f *fakePort) GetWeekOverview(ctx context.Context) (WeekOverview, error) {
	return f.overview, f.err
}

func TestSafeAvailability(t *testing.T) {
	ctx := context.Background()
	avail := availability(t, window(t, 9, 0, 10, 0))

	got := SafeAvailability(ctx, &fakePort{avail: avail}, "2025-06-16")
	require.NotNil(t, got)
	assert.Len(t, got.Windows, 1)

	got = SafeAvailability(ctx, &fakePort{err: errors.New("api down")}, "2025-06-16")
	assert.Nil(t, got)

	assert.Nil(t, SafeAvailability(ctx, nil, "2025-06-16"))
}

func TestSafeWeekOverview(t *testing.T) {
	ctx := context.Background()
	overview := WeekOverview{Days: []DaySummary{{Date: "2025-06-16", BusyMinutes: 120, FreeMinutes: 360}}}

	got := SafeWeekOverview(ctx, &fakePort{overview: overview})
	require.NotNil(t, got)
	assert.Len(t, got.Days, 1)

	assert.Nil(t, SafeWeekOverview(ctx, &fakePort{err: errors.New("api down")}))
	assert.Nil(t, SafeWeekOverview(ctx, nil))
}
