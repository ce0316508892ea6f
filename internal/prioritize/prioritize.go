// Package prioritize ranks open tasks with layered deterministic rules.
// Each fired rule lowers the score (lower means do it sooner), appends a
// tag, and contributes a human-readable reason fragment. Ties and
// conflicting signals are flagged for a human tie-break, never
// auto-resolved.
package prioritize

import (
	"sort"
	"strings"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
)

// noSignalsReason is attached when no rule fires for a task.
const noSignalsReason = "No special priority signals detected"

// strongSignalTags are the signals whose co-occurrence marks a conflict.
var strongSignalTags = map[string]bool{
	TagDoIt:        true,
	TagNeverMiss2x: true,
	TagIdentity:    true,
	TagKeystone:    true,
}

// Suggestion is the prioritization output for a single task.
type Suggestion struct {
	Task              domain.Task
	SuggestedPriority int
	SuggestedReason   string
	Tags              []string
	IsManualOverride  bool
	HasConflict       bool
}

// PrinciplesMeta identifies the behavioral rule text the scoring was run
// against. Only the content hash travels with results; the text itself
// lives outside the engine.
type PrinciplesMeta struct {
	ContentHash string
}

// Result is the full output of a prioritization run.
type Result struct {
	Suggestions    []Suggestion
	PrinciplesHash string
}

// Options tune a prioritization run. The zero value uses the wall clock
// and no principles metadata.
type Options struct {
	Now        time.Time
	Principles *PrinciplesMeta
}

// Prioritize runs the rule layers over the tasks and returns suggestions
// sorted best-first: manual overrides by their literal priority, then
// computed suggestions ascending by score. Tasks in terminal statuses are
// excluded entirely.
func Prioritize(tasks []domain.Task, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var suggestions []Suggestion
	for _, task := range tasks {
		if task.Status.IsTerminal() {
			continue
		}

		score, tags, reasons := computeScore(task, now)

		// Manual override: the explicit priority is preserved verbatim
		// and always ranks ahead of computed suggestions.
		if task.Priority != nil && *task.Priority > 0 {
			reason := "Manual priority set"
			if len(reasons) > 0 {
				reason = formatReason(reasons)
			}
			suggestions = append(suggestions, Suggestion{
				Task:              task,
				SuggestedPriority: *task.Priority,
				SuggestedReason:   reason,
				Tags:              tags,
				IsManualOverride:  true,
			})
			continue
		}

		strong := 0
		for _, tag := range tags {
			if strongSignalTags[tag] {
				strong++
			}
		}

		suggestions = append(suggestions, Suggestion{
			Task:              task,
			SuggestedPriority: score,
			SuggestedReason:   formatReason(reasons),
			Tags:              tags,
			HasConflict:       strong >= 3,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.IsManualOverride != b.IsManualOverride {
			return a.IsManualOverride
		}
		return a.SuggestedPriority < b.SuggestedPriority
	})

	result := Result{Suggestions: suggestions}
	if opts.Principles != nil {
		result.PrinciplesHash = opts.Principles.ContentHash
	}
	return result
}

// formatReason joins up to the first 3 reason fragments into a short
// rationale.
func formatReason(reasons []string) string {
	if len(reasons) == 0 {
		return noSignalsReason
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return strings.Join(reasons, ". ")
}
