// Package testutil provides in-memory repositories, database helpers,
// and task fixtures shared across test packages.
package testutil

import (
	"time"

	"github.com/jdelgad/nudge/internal/domain"
)

// OpenTask returns a minimal open task.
func OpenTask(id, name string) domain.Task {
	return domain.Task{ID: domain.TaskID(id), Name: name, Status: domain.StatusTasks, Mentioned: 1}
}

// DoneTask returns a completed task updated at the given time.
func DoneTask(id, name string, updatedAt time.Time) domain.Task {
	return domain.Task{
		ID: domain.TaskID(id), Name: name, Status: domain.StatusDone,
		Mentioned: 1, UpdatedAt: &updatedAt,
	}
}

// TypedTask returns an open task with a task type.
func TypedTask(id, name string, tt domain.TaskType) domain.Task {
	t := OpenTask(id, name)
	t.TaskType = &tt
	return t
}

// EstimatedTask returns an open task with a completion estimate.
func EstimatedTask(id, name string, minutes int) domain.Task {
	t := OpenTask(id, name)
	t.CompleteTimeMinutes = domain.IntPtr(minutes)
	return t
}
