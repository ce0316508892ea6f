// Package capture is the single entry point for all task intake surfaces.
// It normalizes raw capture text, resolves aliases, checks for duplicates
// among open tasks, and either increments a duplicate's mention counter or
// creates a new task.
package capture

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/jdelgad/nudge/internal/alias"
	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/repository"
)

// bulletPrefixes are the leading markers stripped from raw captures.
var bulletPrefixes = []string{"- ", "* ", "• ", "→ "}

var punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Request is the input from any intake surface.
type Request struct {
	RawContent          string
	Status              string
	BlockedBy           string
	Tag                 string
	CompleteTimeMinutes *int
	Source              string
}

// Validate checks that the request carries content.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.RawContent) == "" {
		return domain.Validationf("capture raw content cannot be empty")
	}
	return nil
}

// Result is the outcome of one capture.
type Result struct {
	Task              domain.Task
	IsDuplicate       bool
	DuplicateOf       domain.TaskID
	WasCreated        bool
	NewMentionedCount int
}

// NormalizeName cleans raw capture text into actionable task phrasing:
// trim, strip a single leading bullet marker, collapse whitespace runs.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return strings.Join(strings.Fields(name), " ")
}

// normalizeForDedup lowercases, strips punctuation, and collapses
// whitespace so near-identical phrasings compare equal.
func normalizeForDedup(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = punctPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// FindExactDuplicate returns the first task whose normalized name matches
// the given name exactly, or nil. Matching is deliberately
// exact-after-normalization; semantic similarity is the upstream
// classifier's job.
func FindExactDuplicate(name string, existing []domain.Task) *domain.Task {
	needle := normalizeForDedup(name)
	for i := range existing {
		if normalizeForDedup(existing[i].Name) == needle {
			return &existing[i]
		}
	}
	return nil
}

// Service orchestrates the full capture pipeline.
type Service struct {
	repo repository.TaskRepo
}

// NewService returns a capture service backed by the given task repo.
func NewService(repo repository.TaskRepo) *Service {
	return &Service{repo: repo}
}

// Ingest processes a single capture request end-to-end.
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := NormalizeName(req.RawContent)

	status, err := alias.ResolveStatus(req.Status)
	if err != nil {
		return nil, err
	}
	// Unresolvable tags are advisory and silently dropped.
	taskType := alias.ResolveTag(req.Tag)

	openTasks, err := s.repo.Query(ctx, repository.TaskQuery{ExcludeDone: true})
	if err != nil {
		return nil, err
	}

	if dup := FindExactDuplicate(name, openTasks); dup != nil {
		newCount, err := s.repo.IncrementMentioned(ctx, dup.ID)
		if err != nil {
			return nil, err
		}
		slog.Info("duplicate capture detected",
			"name", name, "matches", dup.Name, "mentioned", newCount)
		return &Result{
			Task:              *dup,
			IsDuplicate:       true,
			DuplicateOf:       dup.ID,
			NewMentionedCount: newCount,
		}, nil
	}

	draft := domain.TaskDraft{
		Name:                name,
		Status:              status,
		Mentioned:           1,
		BlockedBy:           domain.StrPtr(req.BlockedBy),
		TaskType:            taskType,
		CompleteTimeMinutes: req.CompleteTimeMinutes,
		Source:              domain.StrPtr(req.Source),
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	slog.Info("created task", "name", created.Name, "status", string(created.Status))
	return &Result{Task: *created, WasCreated: true}, nil
}

// IngestBatch processes multiple capture requests sequentially (a brain
// dump). Each request sees duplicates created earlier in the same batch;
// there is no batched atomicity across requests.
func (s *Service) IngestBatch(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, 0, len(requests))
	for _, req := range requests {
		res, err := s.Ingest(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// FlagProcrastinating returns tasks mentioned at least three times.
func FlagProcrastinating(tasks []domain.Task) []domain.Task {
	var flagged []domain.Task
	for _, t := range tasks {
		if t.Mentioned >= 3 {
			flagged = append(flagged, t)
		}
	}
	return flagged
}

// FilterActionable returns only tasks in Tasks status: single-sitting
// items with a clear next step.
func FilterActionable(tasks []domain.Task) []domain.Task {
	var actionable []domain.Task
	for _, t := range tasks {
		if t.Status == domain.StatusTasks {
			actionable = append(actionable, t)
		}
	}
	return actionable
}

// SortByPriority orders tasks with explicit priority first (ascending),
// then by mention count descending.
func SortByPriority(tasks []domain.Task) []domain.Task {
	sorted := append([]domain.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aHas, bHas := a.Priority != nil, b.Priority != nil
		if aHas != bHas {
			return aHas
		}
		if aHas && *a.Priority != *b.Priority {
			return *a.Priority < *b.Priority
		}
		return a.Mentioned > b.Mentioned
	})
	return sorted
}
