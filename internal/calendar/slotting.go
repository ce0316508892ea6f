// Package calendar computes buffered free-time windows and first-fit task
// placement against a day's availability. Pure and deterministic; calendar
// data arrives through the Port.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
)

// ApplyBuffer shrinks each window by bufferMinutes on both sides.
// Windows that become non-positive-length are dropped. A zero or
// negative buffer is a no-op.
func ApplyBuffer(windows []domain.AvailabilityWindow, bufferMinutes int) []domain.AvailabilityWindow {
	if bufferMinutes <= 0 {
		return append([]domain.AvailabilityWindow(nil), windows...)
	}

	delta := time.Duration(bufferMinutes) * time.Minute
	var result []domain.AvailabilityWindow
	for _, w := range windows {
		start := w.Start.Add(delta)
		end := w.End.Add(-delta)
		if end.After(start) {
			result = append(result, domain.AvailabilityWindow{Start: start, End: end})
		}
	}
	return result
}

// ProtectMorning splits windows into a protected morning block and the
// rest. The morning block is the first window portion before the cutoff,
// truncated at the cutoff if it spans it; first match in window order
// wins. cutoff is an HH:MM string interpreted on date's day.
func ProtectMorning(windows []domain.AvailabilityWindow, cutoff string, date time.Time) (*domain.AvailabilityWindow, []domain.AvailabilityWindow, error) {
	hour, minute, err := parseHHMM(cutoff)
	if err != nil {
		return nil, nil, err
	}
	cut := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())

	var morning *domain.AvailabilityWindow
	var remaining []domain.AvailabilityWindow

	for _, w := range windows {
		if morning == nil && w.Start.Before(cut) {
			if !w.End.After(cut) {
				block := w
				morning = &block
			} else {
				morning = &domain.AvailabilityWindow{Start: w.Start, End: cut}
				remaining = append(remaining, domain.AvailabilityWindow{Start: cut, End: w.End})
			}
			continue
		}
		remaining = append(remaining, w)
	}
	return morning, remaining, nil
}

func parseHHMM(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, domain.Validationf("invalid HH:MM time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, domain.Validationf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, domain.Validationf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// TaskFitsCalendar reports whether a task's estimate fits in any buffered
// window. Tasks without an estimate always fit; enforcement needs an
// estimate to act on.
func TaskFitsCalendar(task domain.Task, availability domain.Availability, bufferMinutes int) bool {
	if task.CompleteTimeMinutes == nil {
		return true
	}
	for _, w := range ApplyBuffer(availability.Windows, bufferMinutes) {
		if w.Fits(*task.CompleteTimeMinutes) {
			return true
		}
	}
	return false
}

// FindSlot returns the first buffered window large enough for the task
// (first-fit, not best-fit). A task with no estimate gets the single
// largest window. Returns nil when nothing is available.
func FindSlot(task domain.Task, availability domain.Availability, bufferMinutes int) *domain.AvailabilityWindow {
	windows := ApplyBuffer(availability.Windows, bufferMinutes)
	if task.CompleteTimeMinutes == nil {
		var largest *domain.AvailabilityWindow
		for i := range windows {
			if largest == nil || windows[i].DurationMinutes() > largest.DurationMinutes() {
				largest = &windows[i]
			}
		}
		return largest
	}

	for i := range windows {
		if windows[i].Fits(*task.CompleteTimeMinutes) {
			return &windows[i]
		}
	}
	return nil
}

// RequireSlot is FindSlot that fails with a SlottingError when no window
// can accommodate the task.
func RequireSlot(task domain.Task, availability domain.Availability, bufferMinutes int) (*domain.AvailabilityWindow, error) {
	slot := FindSlot(task, availability, bufferMinutes)
	if slot == nil {
		return nil, domain.Slottingf("no available calendar slot fits %q", task.Name)
	}
	return slot, nil
}

// DetectConflicts returns the tasks that will not fit in the day's
// remaining availability, in input order. It simulates sequential
// first-fit allocation: each placed task consumes its estimate from the
// front of the chosen window, shrinking or removing it. Tasks with no
// estimate are skipped (assumed schedulable).
func DetectConflicts(tasks []domain.Task, availability domain.Availability, bufferMinutes int) []domain.Task {
	windows := ApplyBuffer(availability.Windows, bufferMinutes)
	var conflicts []domain.Task

	for _, task := range tasks {
		if task.CompleteTimeMinutes == nil {
			continue
		}

		placed := false
		for i, w := range windows {
			if !w.Fits(*task.CompleteTimeMinutes) {
				continue
			}
			start := w.Start.Add(time.Duration(*task.CompleteTimeMinutes) * time.Minute)
			if start.Before(w.End) {
				windows[i] = domain.AvailabilityWindow{Start: start, End: w.End}
			} else {
				windows = append(windows[:i], windows[i+1:]...)
			}
			placed = true
			break
		}
		if !placed {
			conflicts = append(conflicts, task)
		}
	}
	return conflicts
}

// FilterCalendarFit partitions tasks into those that fit today's calendar
// and those that don't. No-estimate tasks always fit.
func FilterCalendarFit(tasks []domain.Task, availability domain.Availability, bufferMinutes int) (fits, noFit []domain.Task) {
	for _, task := range tasks {
		if TaskFitsCalendar(task, availability, bufferMinutes) {
			fits = append(fits, task)
		} else {
			noFit = append(noFit, task)
		}
	}
	return fits, noFit
}

// SafeAvailability fetches availability, converting any failure into nil.
// Calendar enforcement is advisory: unavailability of the calendar must
// never block task prioritization.
func SafeAvailability(ctx context.Context, port Port, date string) *domain.Availability {
	if port == nil {
		return nil
	}
	avail, err := port.GetAvailability(ctx, date)
	if err != nil {
		slog.Warn("calendar unavailable, skipping calendar enforcement",
			"date", date, "error", fmt.Sprint(err))
		return nil
	}
	return &avail
}

// SafeWeekOverview fetches the week overview, converting any failure
// into nil.
func SafeWeekOverview(ctx context.Context, port Port) *WeekOverview {
	if port == nil {
		return nil
	}
	overview, err := port.GetWeekOverview(ctx)
	if err != nil {
		slog.Warn("calendar unavailable for week overview", "error", fmt.Sprint(err))
		return nil
	}
	return &overview
}
