package review

import "fmt"

// InsightSeverity rates how urgently an insight needs attention.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
)

// InsightCategory groups insights by the pattern they describe.
type InsightCategory string

const (
	CategoryVelocity        InsightCategory = "velocity"
	CategoryEnergy          InsightCategory = "energy"
	CategoryProcrastination InsightCategory = "procrastination"
	CategoryStaleness       InsightCategory = "staleness"
	CategoryOverrides       InsightCategory = "overrides"
	CategoryWorkload        InsightCategory = "workload"
)

// Insight is a single data-backed observation from the review.
type Insight struct {
	Category InsightCategory
	Severity InsightSeverity
	Message  string
	Data     map[string]any
}

// InsightsSummary is the structured collection of a week's insights.
type InsightsSummary struct {
	Insights []Insight
}

// Warnings returns the warning-severity insights.
func (s InsightsSummary) Warnings() []Insight {
	return s.bySeverity(SeverityWarning)
}

// Critical returns the critical-severity insights.
func (s InsightsSummary) Critical() []Insight {
	return s.bySeverity(SeverityCritical)
}

func (s InsightsSummary) bySeverity(sev InsightSeverity) []Insight {
	var out []Insight
	for _, i := range s.Insights {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Messages returns the plain-text insight messages for simple display.
func (s InsightsSummary) Messages() []string {
	msgs := make([]string, 0, len(s.Insights))
	for _, i := range s.Insights {
		msgs = append(msgs, i.Message)
	}
	return msgs
}

// GenerateInsights derives structured insights from review data. Pure
// function; each insight carries the backing data so consumers can decide
// how to render or act on it.
func GenerateInsights(data Data) InsightsSummary {
	var items []Insight

	// Velocity
	switch {
	case data.Completed.Count == 0:
		items = append(items, Insight{
			Category: CategoryVelocity,
			Severity: SeverityWarning,
			Message:  "No tasks completed this week. What got in the way?",
			Data:     map[string]any{"completed": 0},
		})
	case data.Completed.Count >= strongWeekCompletions:
		items = append(items, Insight{
			Category: CategoryVelocity,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Strong week: %d tasks completed.", data.Completed.Count),
			Data:     map[string]any{"completed": data.Completed.Count},
		})
	}

	// Energy
	if data.Energy.Total() > 0 && data.Energy.DrainRatio() > energyDrainThreshold {
		items = append(items, Insight{
			Category: CategoryEnergy,
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Energy warning: %d/%d completed tasks were energy-draining. Look for ways to reduce friction.",
				data.Energy.Red, data.Energy.Total()),
			Data: map[string]any{
				"red":         data.Energy.Red,
				"total":       data.Energy.Total(),
				"drain_ratio": data.Energy.DrainRatio(),
			},
		})
	} else if data.Energy.Total() > 0 && data.Energy.Unrated == data.Energy.Total() {
		items = append(items, Insight{
			Category: CategoryEnergy,
			Severity: SeverityInfo,
			Message:  "No tasks have energy ratings. Start tagging Red/Yellow/Green to reveal patterns.",
			Data:     map[string]any{"unrated": data.Energy.Unrated},
		})
	}

	// Procrastination
	if len(data.ProcrastinationList) > 0 {
		top := data.ProcrastinationList[0]
		severity := SeverityWarning
		if top.Task.Mentioned >= procrastinationThreshold*2 {
			severity = SeverityCritical
		}
		items = append(items, Insight{
			Category: CategoryProcrastination,
			Severity: severity,
			Message: fmt.Sprintf(
				"Top procrastination: %q (%s). What would this look like if it were easy?",
				top.Task.Name, top.Reason),
			Data: map[string]any{
				"task_name":     top.Task.Name,
				"mentioned":     top.Task.Mentioned,
				"total_flagged": len(data.ProcrastinationList),
			},
		})
	}

	// Staleness
	if len(data.StaleDecisions) >= staleClusterThreshold {
		items = append(items, Insight{
			Category: CategoryStaleness,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%d stale items (14+ days). Decide: do it, delegate it, or drop it.",
				len(data.StaleDecisions)),
			Data: map[string]any{"stale_count": len(data.StaleDecisions)},
		})
	}

	// Overrides
	if data.Overrides.OverrideRate() > highOverrideThreshold {
		items = append(items, Insight{
			Category: CategoryOverrides,
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"%d tasks have manual priority. If overriding the system often, revisit your prioritization rules.",
				data.Overrides.ManualCount),
			Data: map[string]any{
				"manual_count":  data.Overrides.ManualCount,
				"override_rate": data.Overrides.OverrideRate(),
			},
		})
	}

	// Workload
	estimated := 0
	totalMinutes := 0
	for _, t := range data.OpenTasks {
		if t.CompleteTimeMinutes != nil {
			estimated++
			totalMinutes += *t.CompleteTimeMinutes
		}
	}
	if estimated > 0 {
		totalHours := float64(totalMinutes) / 60
		severity := SeverityInfo
		if totalHours > workloadWarningHours {
			severity = SeverityWarning
		}
		unestimated := len(data.OpenTasks) - estimated
		msg := fmt.Sprintf("Open workload: %.1fh estimated across %d tasks.", totalHours, estimated)
		if unestimated > 0 {
			msg += fmt.Sprintf(" %d tasks have no estimate.", unestimated)
		}
		items = append(items, Insight{
			Category: CategoryWorkload,
			Severity: severity,
			Message:  msg,
			Data: map[string]any{
				"total_hours":       totalHours,
				"estimated_count":   estimated,
				"unestimated_count": unestimated,
			},
		})
	}

	if len(items) == 0 {
		items = append(items, Insight{
			Category: CategoryVelocity,
			Severity: SeverityInfo,
			Message:  "Steady week. Keep the systems running.",
		})
	}

	return InsightsSummary{Insights: items}
}
