package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/repository"
)

// MemTaskRepo is an in-memory TaskRepo for tests.
type MemTaskRepo struct {
	mu     sync.Mutex
	nextID int
	Tasks  []domain.Task

	// Err, when set, is returned by every method.
	Err error
}

// NewMemTaskRepo returns a repo seeded with the given tasks.
func NewMemTaskRepo(seed ...domain.Task) *MemTaskRepo {
	return &MemTaskRepo{Tasks: append([]domain.Task(nil), seed...)}
}

func (r *MemTaskRepo) Query(ctx context.Context, q repository.TaskQuery) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []domain.Task
	for _, t := range r.Tasks {
		if q.ExcludeDone && t.Status.IsTerminal() {
			continue
		}
		if q.Status != nil && t.Status != *q.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *MemTaskRepo) Get(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			t := r.Tasks[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
}

func (r *MemTaskRepo) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	r.nextID++
	now := time.Now().UTC()
	task := domain.Task{
		ID:                  domain.TaskID(fmt.Sprintf("task-%d", r.nextID)),
		Name:                draft.Name,
		Status:              draft.Status,
		Mentioned:           draft.Mentioned,
		BlockedBy:           draft.BlockedBy,
		Energy:              draft.Energy,
		TaskType:            draft.TaskType,
		CompleteTimeMinutes: draft.CompleteTimeMinutes,
		Priority:            draft.Priority,
		CreatedAt:           &now,
		UpdatedAt:           &now,
		Source:              draft.Source,
	}
	r.Tasks = append(r.Tasks, task)
	return &task, nil
}

func (r *MemTaskRepo) Update(ctx context.Context, m domain.TaskMutation) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	for i := range r.Tasks {
		if r.Tasks[i].ID != m.TaskID {
			continue
		}
		t := &r.Tasks[i]
		if m.Name != nil {
			t.Name = *m.Name
		}
		if m.Status != nil {
			t.Status = *m.Status
		}
		if m.Mentioned != nil {
			t.Mentioned = *m.Mentioned
		}
		if m.BlockedBy != nil {
			t.BlockedBy = m.BlockedBy
		}
		if m.Energy != nil {
			t.Energy = m.Energy
		}
		if m.TaskType != nil {
			t.TaskType = m.TaskType
		}
		if m.CompleteTimeMinutes != nil {
			t.CompleteTimeMinutes = m.CompleteTimeMinutes
		}
		if m.Priority != nil {
			t.Priority = m.Priority
		}
		now := time.Now().UTC()
		t.UpdatedAt = &now
		out := *t
		return &out, nil
	}
	return nil, fmt.Errorf("task %s: %w", m.TaskID, repository.ErrNotFound)
}

func (r *MemTaskRepo) IncrementMentioned(ctx context.Context, id domain.TaskID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			r.Tasks[i].Mentioned++
			return r.Tasks[i].Mentioned, nil
		}
	}
	return 0, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
}

// MemReviewRepo is an in-memory ReviewRepo for tests.
type MemReviewRepo struct {
	mu      sync.Mutex
	nextID  int
	Reviews []domain.Review
}

func (r *MemReviewRepo) Create(ctx context.Context, review domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := review.Validate(); err != nil {
		return nil, err
	}
	r.nextID++
	review.ID = domain.ReviewID(fmt.Sprintf("review-%d", r.nextID))
	r.Reviews = append(r.Reviews, review)
	out := review
	return &out, nil
}

// MemIdentityRepo is an in-memory IdentityRepo for tests.
type MemIdentityRepo struct {
	mu      sync.Mutex
	Profile domain.IdentityProfile
}

func (r *MemIdentityRepo) GetProfile(ctx context.Context) (*domain.IdentityProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := domain.IdentityProfile{Statements: append([]domain.IdentityStatement(nil), r.Profile.Statements...)}
	return &out, nil
}

func (r *MemIdentityRepo) UpdateProfile(ctx context.Context, profile domain.IdentityProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := profile.Validate(); err != nil {
		return err
	}
	r.Profile = profile
	return nil
}
