package repository

import (
	"context"
	"errors"

	"github.com/jdelgad/nudge/internal/domain"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// TaskQuery filters a task listing.
type TaskQuery struct {
	Status      *domain.TaskStatus
	ExcludeDone bool // excludes all terminal statuses (Done, Won't Do)
}

// TaskRepo is read/write access to the task store.
type TaskRepo interface {
	Query(ctx context.Context, q TaskQuery) ([]domain.Task, error)
	Get(ctx context.Context, id domain.TaskID) (*domain.Task, error)
	Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	Update(ctx context.Context, mutation domain.TaskMutation) (*domain.Task, error)

	// IncrementMentioned atomically increments the mentioned counter
	// and returns the new count.
	IncrementMentioned(ctx context.Context, id domain.TaskID) (int, error)
}

// ReviewRepo is write access to weekly review records.
type ReviewRepo interface {
	Create(ctx context.Context, review domain.Review) (*domain.Review, error)
}

// IdentityRepo is read/write access to the identity profile.
type IdentityRepo interface {
	GetProfile(ctx context.Context) (*domain.IdentityProfile, error)
	UpdateProfile(ctx context.Context, profile domain.IdentityProfile) error
}
