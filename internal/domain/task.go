package domain

import (
	"strings"
	"time"
)

// Task is the unit persisted by the repository. Created via TaskDraft on
// first capture, mutated via TaskMutation on updates, terminal once status
// becomes Done or Won't Do (soft-deleted, never hard-deleted by the core).
type Task struct {
	ID        TaskID
	Name      string
	Status    TaskStatus
	Mentioned int // capture-repeat counter

	BlockedBy           *string
	Energy              *EnergyLevel
	TaskType            *TaskType
	CompleteTimeMinutes *int
	Priority            *int // manual override, strictly positive when set
	CreatedAt           *time.Time
	UpdatedAt           *time.Time
	Source              *string
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return Validationf("task name cannot be empty")
	}
	if t.Mentioned < 0 {
		return Validationf("task mentioned count cannot be negative")
	}
	if t.CompleteTimeMinutes != nil && *t.CompleteTimeMinutes <= 0 {
		return Validationf("task complete time must be positive, got %d", *t.CompleteTimeMinutes)
	}
	if t.Priority != nil && *t.Priority <= 0 {
		return Validationf("task priority must be positive, got %d", *t.Priority)
	}
	return nil
}

// IsOpen reports whether the task is still actionable.
func (t *Task) IsOpen() bool {
	return !t.Status.IsTerminal()
}

// AgeDays returns whole days since creation, or -1 when CreatedAt is unset.
func (t *Task) AgeDays(now time.Time) int {
	if t.CreatedAt == nil {
		return -1
	}
	return int(now.Sub(*t.CreatedAt).Hours() / 24)
}

// TaskDraft is the payload handed to the repository's Create:
// a Task minus id and timestamps.
type TaskDraft struct {
	Name      string
	Status    TaskStatus
	Mentioned int

	BlockedBy           *string
	Energy              *EnergyLevel
	TaskType            *TaskType
	CompleteTimeMinutes *int
	Priority            *int
	Source              *string
}

// Validate checks the draft invariants.
func (d *TaskDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return Validationf("task draft name cannot be empty")
	}
	if d.Mentioned < 0 {
		return Validationf("task draft mentioned count cannot be negative")
	}
	if d.CompleteTimeMinutes != nil && *d.CompleteTimeMinutes <= 0 {
		return Validationf("task draft complete time must be positive, got %d", *d.CompleteTimeMinutes)
	}
	if d.Priority != nil && *d.Priority <= 0 {
		return Validationf("task draft priority must be positive, got %d", *d.Priority)
	}
	return nil
}

// TaskMutation is a partial update to an existing task. All fields except
// TaskID are optional; a mutation with no populated fields is invalid.
type TaskMutation struct {
	TaskID TaskID

	Name                *string
	Status              *TaskStatus
	Mentioned           *int
	BlockedBy           *string
	Energy              *EnergyLevel
	TaskType            *TaskType
	CompleteTimeMinutes *int
	Priority            *int
}

// Validate checks the mutation invariants.
func (m *TaskMutation) Validate() error {
	if strings.TrimSpace(string(m.TaskID)) == "" {
		return Validationf("task mutation requires a task id")
	}
	if m.IsEmpty() {
		return Validationf("task mutation has no fields to apply")
	}
	if m.Name != nil && strings.TrimSpace(*m.Name) == "" {
		return Validationf("task mutation name cannot be empty")
	}
	if m.Mentioned != nil && *m.Mentioned < 0 {
		return Validationf("task mutation mentioned count cannot be negative")
	}
	if m.CompleteTimeMinutes != nil && *m.CompleteTimeMinutes <= 0 {
		return Validationf("task mutation complete time must be positive, got %d", *m.CompleteTimeMinutes)
	}
	if m.Priority != nil && *m.Priority <= 0 {
		return Validationf("task mutation priority must be positive, got %d", *m.Priority)
	}
	return nil
}

// IsEmpty reports whether the mutation carries no field changes.
func (m *TaskMutation) IsEmpty() bool {
	return m.Name == nil && m.Status == nil && m.Mentioned == nil &&
		m.BlockedBy == nil && m.Energy == nil && m.TaskType == nil &&
		m.CompleteTimeMinutes == nil && m.Priority == nil
}
