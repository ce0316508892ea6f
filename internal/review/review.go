// Package review aggregates completed and open tasks into weekly
// summaries and derives categorized, severity-rated insights from them.
package review

import (
	"github.com/jdelgad/nudge/internal/domain"
)

const (
	procrastinationThreshold = 3
	staleDaysThreshold       = 14
	energyDrainThreshold     = 0.5
	highOverrideThreshold    = 0.5
	staleClusterThreshold    = 3
	strongWeekCompletions    = 10
	workloadWarningHours     = 20.0
)

// CompletedSummary is the set of tasks completed this week.
type CompletedSummary struct {
	Tasks []domain.Task
	Count int
}

// ProcrastinationItem is a task flagged for procrastination attention.
type ProcrastinationItem struct {
	Task   domain.Task
	Reason string // e.g. "mentioned 5 times; stale for 21 days"
}

// EnergyBreakdown is the distribution of energy ratings across completed
// tasks.
type EnergyBreakdown struct {
	Red     int
	Yellow  int
	Green   int
	Unrated int
}

// Total returns the number of tasks counted.
func (e EnergyBreakdown) Total() int {
	return e.Red + e.Yellow + e.Green + e.Unrated
}

// DrainRatio is the fraction of rated tasks that were energy-draining.
// Zero when no tasks carry a rating.
func (e EnergyBreakdown) DrainRatio() float64 {
	rated := e.Red + e.Yellow + e.Green
	if rated == 0 {
		return 0
	}
	return float64(e.Red) / float64(rated)
}

// OverrideSummary counts manual priority overrides among open tasks.
type OverrideSummary struct {
	ManualCount int
	AutoCount   int
	ManualTasks []domain.Task
}

// OverrideRate is the fraction of open tasks with a manual priority.
func (o OverrideSummary) OverrideRate() float64 {
	total := o.ManualCount + o.AutoCount
	if total == 0 {
		return 0
	}
	return float64(o.ManualCount) / float64(total)
}

// Data is everything gathered for one weekly review.
type Data struct {
	WeekStart           string // YYYY-MM-DD
	Completed           CompletedSummary
	ProcrastinationList []ProcrastinationItem
	Energy              EnergyBreakdown
	StaleDecisions      []domain.Task
	Overrides           OverrideSummary
	OpenTasks           []domain.Task
}
