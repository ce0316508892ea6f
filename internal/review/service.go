package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/repository"
)

const dateLayout = "2006-01-02"

// Service gathers weekly review data and persists review records.
type Service struct {
	tasks   repository.TaskRepo
	reviews repository.ReviewRepo
	now     func() time.Time
}

// NewService returns a review service over the given repositories.
func NewService(tasks repository.TaskRepo, reviews repository.ReviewRepo) *Service {
	return &Service{tasks: tasks, reviews: reviews, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the service clock; tests use this to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GatherData pulls all data needed for a weekly review. weekStart is the
// YYYY-MM-DD of the review week's Monday; empty defaults to the most
// recent Monday.
func (s *Service) GatherData(ctx context.Context, weekStart string) (*Data, error) {
	now := s.now()
	if weekStart == "" {
		monday := now.AddDate(0, 0, -int((now.Weekday()+6)%7))
		weekStart = monday.Format(dateLayout)
	}
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return nil, domain.Validationf("invalid week start %q", weekStart)
	}

	allTasks, err := s.tasks.Query(ctx, repository.TaskQuery{})
	if err != nil {
		return nil, fmt.Errorf("loading tasks for review: %w", err)
	}

	var openTasks []domain.Task
	for _, t := range allTasks {
		if t.IsOpen() {
			openTasks = append(openTasks, t)
		}
	}

	completed := completedThisWeek(allTasks, start)

	data := &Data{
		WeekStart:           weekStart,
		Completed:           completed,
		ProcrastinationList: procrastinationList(openTasks, now),
		Energy:              energyBreakdown(completed.Tasks),
		StaleDecisions:      staleDecisions(openTasks, now),
		Overrides:           detectOverrides(openTasks),
		OpenTasks:           openTasks,
	}
	slog.Info("gathered review data",
		"week_start", weekStart,
		"completed", completed.Count,
		"open", len(openTasks),
		"flagged", len(data.ProcrastinationList))
	return data, nil
}

// PersistReview saves the review record. The returned review carries the
// id assigned by the repository.
func (s *Service) PersistReview(ctx context.Context, data *Data, transcript, wins, struggles, nextWeekFocus string) (*domain.Review, error) {
	weekOf, err := time.Parse(dateLayout, data.WeekStart)
	if err != nil {
		return nil, domain.Validationf("invalid week start %q", data.WeekStart)
	}
	rec := domain.Review{
		WeekOf:         weekOf,
		Transcript:     transcript,
		Wins:           domain.StrPtr(wins),
		Struggles:      domain.StrPtr(struggles),
		NextWeekFocus:  domain.StrPtr(nextWeekFocus),
		TasksCompleted: domain.IntPtr(data.Completed.Count),
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return s.reviews.Create(ctx, rec)
}

// completedThisWeek returns Done tasks updated within [start, start+7d).
// When no Done task carries updated_at, all Done tasks are returned; the
// adapter is responsible for populating timestamps and this is the
// documented degraded mode.
func completedThisWeek(allTasks []domain.Task, start time.Time) CompletedSummary {
	end := start.AddDate(0, 0, 7)

	var done, thisWeek []domain.Task
	for _, t := range allTasks {
		if t.Status != domain.StatusDone {
			continue
		}
		done = append(done, t)
		if t.UpdatedAt != nil && !t.UpdatedAt.Before(start) && t.UpdatedAt.Before(end) {
			thisWeek = append(thisWeek, t)
		}
	}
	if len(thisWeek) == 0 && len(done) > 0 {
		thisWeek = done
	}
	return CompletedSummary{Tasks: thisWeek, Count: len(thisWeek)}
}

// procrastinationList flags open tasks mentioned >= 3 times and/or aged
// >= 14 days, sorted by mention count descending.
func procrastinationList(openTasks []domain.Task, now time.Time) []ProcrastinationItem {
	var items []ProcrastinationItem
	for _, t := range openTasks {
		var reasons []string
		if t.Mentioned >= procrastinationThreshold {
			reasons = append(reasons, fmt.Sprintf("mentioned %d times", t.Mentioned))
		}
		if age := t.AgeDays(now); age >= staleDaysThreshold {
			reasons = append(reasons, fmt.Sprintf("stale for %d days", age))
		}
		if len(reasons) > 0 {
			items = append(items, ProcrastinationItem{Task: t, Reason: strings.Join(reasons, "; ")})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Task.Mentioned > items[j].Task.Mentioned
	})
	return items
}

func energyBreakdown(tasks []domain.Task) EnergyBreakdown {
	var e EnergyBreakdown
	for _, t := range tasks {
		switch {
		case t.Energy == nil:
			e.Unrated++
		case *t.Energy == domain.EnergyRed:
			e.Red++
		case *t.Energy == domain.EnergyYellow:
			e.Yellow++
		case *t.Energy == domain.EnergyGreen:
			e.Green++
		default:
			e.Unrated++
		}
	}
	return e
}

// staleDecisions returns open tasks aged >= 14 days, oldest first.
func staleDecisions(openTasks []domain.Task, now time.Time) []domain.Task {
	var stale []domain.Task
	for _, t := range openTasks {
		if t.AgeDays(now) >= staleDaysThreshold {
			stale = append(stale, t)
		}
	}
	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].CreatedAt.Before(*stale[j].CreatedAt)
	})
	return stale
}

func detectOverrides(openTasks []domain.Task) OverrideSummary {
	var o OverrideSummary
	for _, t := range openTasks {
		if t.Priority != nil {
			o.ManualCount++
			o.ManualTasks = append(o.ManualTasks, t)
		} else {
			o.AutoCount++
		}
	}
	return o
}
