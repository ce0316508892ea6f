package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestTaskValidate_OK(t *testing.T) {
	task := &Task{ID: "t-1", Name: "Call mom", Status: StatusTasks, Mentioned: 1}
	require.NoError(t, task.Validate())
}

func TestTaskValidate_EmptyName(t *testing.T) {
	cases := []string{"", "   ", "\t"}
	for _, name := range cases {
		task := &Task{ID: "t-1", Name: name, Status: StatusTasks}
		err := task.Validate()
		require.Error(t, err, "name=%q", name)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestTaskValidate_NegativeMentioned(t *testing.T) {
	task := &Task{ID: "t-1", Name: "x", Status: StatusTasks, Mentioned: -1}
	assert.ErrorIs(t, task.Validate(), ErrValidation)
}

func TestTaskValidate_NonPositiveEstimate(t *testing.T) {
	for _, n := range []int{0, -5} {
		task := &Task{ID: "t-1", Name: "x", Status: StatusTasks, CompleteTimeMinutes: IntPtr(n)}
		assert.ErrorIs(t, task.Validate(), ErrValidation, "estimate=%d", n)
	}
}

func TestTaskValidate_NonPositivePriority(t *testing.T) {
	task := &Task{ID: "t-1", Name: "x", Status: StatusTasks, Priority: IntPtr(0)}
	assert.ErrorIs(t, task.Validate(), ErrValidation)
}

func TestTaskIsOpen(t *testing.T) {
	cases := []struct {
		status TaskStatus
		open   bool
	}{
		{StatusTasks, true},
		{StatusProjects, true},
		{StatusIdeas, true},
		{StatusNotNow, true},
		{StatusBlocked, true},
		{StatusWaitingOn, true},
		{StatusDone, false},
		{StatusWontDo, false},
	}
	for _, tc := range cases {
		task := &Task{Status: tc.status}
		assert.Equal(t, tc.open, task.IsOpen(), "status=%s", tc.status)
	}
}

func TestTaskAgeDays(t *testing.T) {
	created := testNow.AddDate(0, 0, -15)
	task := &Task{Name: "x", CreatedAt: &created}
	assert.Equal(t, 15, task.AgeDays(testNow))

	none := &Task{Name: "x"}
	assert.Equal(t, -1, none.AgeDays(testNow))
}

func TestTaskDraftValidate(t *testing.T) {
	d := &TaskDraft{Name: "Write report", Status: StatusTasks, Mentioned: 1}
	require.NoError(t, d.Validate())

	bad := &TaskDraft{Name: " ", Status: StatusTasks}
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	neg := &TaskDraft{Name: "x", Status: StatusTasks, Mentioned: -2}
	assert.ErrorIs(t, neg.Validate(), ErrValidation)

	est := &TaskDraft{Name: "x", Status: StatusTasks, CompleteTimeMinutes: IntPtr(-1)}
	assert.ErrorIs(t, est.Validate(), ErrValidation)
}

func TestTaskMutationValidate_Empty(t *testing.T) {
	m := &TaskMutation{TaskID: "t-1"}
	err := m.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskMutationValidate_MissingID(t *testing.T) {
	name := "new name"
	m := &TaskMutation{Name: &name}
	assert.ErrorIs(t, m.Validate(), ErrValidation)
}

func TestTaskMutationValidate_OK(t *testing.T) {
	status := StatusDone
	m := &TaskMutation{TaskID: "t-1", Status: &status}
	require.NoError(t, m.Validate())
	assert.False(t, m.IsEmpty())
}

func TestTaskMutationValidate_BadFields(t *testing.T) {
	blank := " "
	m := &TaskMutation{TaskID: "t-1", Name: &blank}
	assert.ErrorIs(t, m.Validate(), ErrValidation)

	m2 := &TaskMutation{TaskID: "t-1", Priority: IntPtr(-3)}
	assert.ErrorIs(t, m2.Validate(), ErrValidation)
}

func TestNewIDs(t *testing.T) {
	_, err := NewTaskID("  ")
	assert.ErrorIs(t, err, ErrValidation)

	id, err := NewTaskID("abc")
	require.NoError(t, err)
	assert.Equal(t, TaskID("abc"), id)

	_, err = NewReviewID("")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewProjectID("")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewIdentityID("")
	assert.ErrorIs(t, err, ErrValidation)
}
