// Package service orchestrates the decision engine: it wires captures,
// prioritization, calendar enforcement, and queries over the repository
// ports into the operations the surfaces call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jdelgad/nudge/internal/calendar"
	"github.com/jdelgad/nudge/internal/capture"
	"github.com/jdelgad/nudge/internal/config"
	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/prioritize"
	"github.com/jdelgad/nudge/internal/repository"
	"github.com/jdelgad/nudge/internal/review"
)

const dateLayout = "2006-01-02"

// Engine is the application-level facade over the decision core.
type Engine struct {
	tasks    repository.TaskRepo
	identity repository.IdentityRepo
	capture  *capture.Service
	review   *review.Service
	cal      calendar.Port // nil when calendar integration is off
	cfg      config.Config
	now      func() time.Time
}

// NewEngine wires an engine over the given ports. cal may be nil.
func NewEngine(tasks repository.TaskRepo, reviews repository.ReviewRepo, identity repository.IdentityRepo, cal calendar.Port, cfg config.Config) *Engine {
	return &Engine{
		tasks:    tasks,
		identity: identity,
		capture:  capture.NewService(tasks),
		review:   review.NewService(tasks, reviews),
		cal:      cal,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the engine clock; tests use this to pin "now".
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Reviews exposes the weekly review service.
func (e *Engine) Reviews() *review.Service {
	return e.review
}

// Capture ingests one raw thought.
func (e *Engine) Capture(ctx context.Context, req capture.Request) (*capture.Result, error) {
	return e.capture.Ingest(ctx, req)
}

// CaptureBatch ingests raw thoughts in order, so repeats within the
// batch dedup against earlier entries.
func (e *Engine) CaptureBatch(ctx context.Context, reqs []capture.Request) ([]capture.Result, error) {
	return e.capture.IngestBatch(ctx, reqs)
}

// DoNowList returns prioritized suggestions for actionable tasks,
// best-first. When the calendar is reachable, tasks that cannot fit
// today's remaining availability are dropped; calendar failure degrades
// to the unfiltered list. limit <= 0 means no limit.
func (e *Engine) DoNowList(ctx context.Context, limit int) ([]prioritize.Suggestion, error) {
	open, err := e.tasks.Query(ctx, repository.TaskQuery{ExcludeDone: true})
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	actionable := capture.FilterActionable(open)

	result := prioritize.Prioritize(actionable, prioritize.Options{Now: e.now()})
	suggestions := result.Suggestions

	now := e.now().In(e.cfg.Timezone)
	today := now.Format(dateLayout)
	if avail := calendar.SafeAvailability(ctx, e.cal, today); avail != nil {
		rest := avail.Windows
		var morning *domain.AvailabilityWindow
		if e.cfg.MorningProtect != "" {
			m, r, err := calendar.ProtectMorning(rest, e.cfg.MorningProtect, now)
			if err != nil {
				slog.Warn("ignoring morning protection", "cutoff", e.cfg.MorningProtect, "error", err)
			} else {
				morning, rest = m, r
			}
		}

		var fitting []prioritize.Suggestion
		for _, s := range suggestions {
			day := domain.Availability{Windows: rest}
			// The protected morning block is held for the top pick only;
			// everything after it competes for the rest of the day.
			if morning != nil && len(fitting) == 0 {
				day.Windows = append([]domain.AvailabilityWindow{*morning}, rest...)
			}
			if calendar.TaskFitsCalendar(s.Task, day, e.cfg.BufferMinutes) {
				fitting = append(fitting, s)
			}
		}
		slog.Info("calendar filter applied",
			"date", today,
			"candidates", len(suggestions),
			"fitting", len(fitting))
		suggestions = fitting
	}

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// ProcrastinationList returns open tasks captured repeatedly, most
// mentioned first.
func (e *Engine) ProcrastinationList(ctx context.Context) ([]domain.Task, error) {
	open, err := e.tasks.Query(ctx, repository.TaskQuery{ExcludeDone: true})
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	flagged := capture.FlagProcrastinating(open)
	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Mentioned > flagged[j].Mentioned
	})
	return flagged, nil
}

// BlockedTasks returns tasks waiting on something: Blocked plus
// Waiting On.
func (e *Engine) BlockedTasks(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, status := range []domain.TaskStatus{domain.StatusBlocked, domain.StatusWaitingOn} {
		s := status
		tasks, err := e.tasks.Query(ctx, repository.TaskQuery{Status: &s})
		if err != nil {
			return nil, fmt.Errorf("loading %s tasks: %w", status, err)
		}
		out = append(out, tasks...)
	}
	return out, nil
}

// CompleteTask marks a task Done.
func (e *Engine) CompleteTask(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	done := domain.StatusDone
	return e.tasks.Update(ctx, domain.TaskMutation{TaskID: id, Status: &done})
}

// WeekOverview returns per-day calendar load for the coming week, or
// nil when the calendar is unavailable.
func (e *Engine) WeekOverview(ctx context.Context) *calendar.WeekOverview {
	return calendar.SafeWeekOverview(ctx, e.cal)
}

// IdentityProfile returns the stored identity statements.
func (e *Engine) IdentityProfile(ctx context.Context) (*domain.IdentityProfile, error) {
	return e.identity.GetProfile(ctx)
}

// AddIdentityStatement appends a statement to the profile. category is
// optional.
func (e *Engine) AddIdentityStatement(ctx context.Context, text, category string) (*domain.IdentityProfile, error) {
	profile, err := e.identity.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading identity profile: %w", err)
	}
	profile.Statements = append(profile.Statements, domain.IdentityStatement{
		Text:     text,
		Category: domain.StrPtr(category),
	})
	if err := e.identity.UpdateProfile(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}
