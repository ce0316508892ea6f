package prioritize

import (
	"fmt"
	"time"

	"github.com/jdelgad/nudge/internal/domain"
)

const (
	baselineScore            = 50
	procrastinationThreshold = 3
	staleDaysThreshold       = 14
	twoMinuteThreshold       = 2
)

// Suggestion tags. The bracketed form matches what the capture classifier
// emits, so tags round-trip through the alias resolver.
const (
	TagDoIt            = "[DO IT]"
	TagNeverMiss2x     = "[NEVER MISS 2x]"
	TagIdentity        = "[IDENTITY]"
	TagKeystone        = "[KEYSTONE]"
	TagProcrastinating = "[PROCRASTINATING]"
	TagStale           = "[STALE]"
	TagCompounds       = "[COMPOUNDS]"
)

// ruleResult is one fired rule's contribution: a score delta (negative
// raises priority), an optional tag, and a reason fragment.
type ruleResult struct {
	delta  int
	tag    string
	reason string
}

type rule func(task domain.Task, now time.Time) *ruleResult

// rules are applied in order; order determines reason fragment ordering.
var rules = []rule{
	ruleTwoMinute,
	ruleNeverMissTwice,
	ruleIdentity,
	ruleKeystone,
	ruleProcrastinating,
	ruleStale,
	ruleCompounds,
	ruleGreenEnergy,
}

func ruleTwoMinute(task domain.Task, _ time.Time) *ruleResult {
	if task.CompleteTimeMinutes == nil || *task.CompleteTimeMinutes > twoMinuteThreshold {
		return nil
	}
	return &ruleResult{
		delta:  -30,
		tag:    TagDoIt,
		reason: fmt.Sprintf("Takes %dmin — do it now (2-minute rule)", *task.CompleteTimeMinutes),
	}
}

func ruleNeverMissTwice(task domain.Task, _ time.Time) *ruleResult {
	if task.TaskType == nil || *task.TaskType != domain.TypeNeverMiss2x {
		return nil
	}
	return &ruleResult{delta: -25, tag: TagNeverMiss2x, reason: "Skipped recently — never miss twice"}
}

func ruleIdentity(task domain.Task, _ time.Time) *ruleResult {
	if task.TaskType == nil || *task.TaskType != domain.TypeIdentity {
		return nil
	}
	return &ruleResult{delta: -20, tag: TagIdentity, reason: "Aligns with identity goals"}
}

func ruleKeystone(task domain.Task, _ time.Time) *ruleResult {
	if task.TaskType == nil || *task.TaskType != domain.TypeUnblocks {
		return nil
	}
	return &ruleResult{delta: -20, tag: TagKeystone, reason: "Upstream habit — unlocks other tasks"}
}

func ruleProcrastinating(task domain.Task, _ time.Time) *ruleResult {
	if task.Mentioned < procrastinationThreshold {
		return nil
	}
	return &ruleResult{
		delta:  -15,
		tag:    TagProcrastinating,
		reason: fmt.Sprintf("Mentioned %dx — friction analysis needed", task.Mentioned),
	}
}

func ruleStale(task domain.Task, now time.Time) *ruleResult {
	if task.CreatedAt == nil {
		return nil
	}
	if now.Sub(*task.CreatedAt) < staleDaysThreshold*24*time.Hour {
		return nil
	}
	return &ruleResult{delta: -10, tag: TagStale, reason: "Created 14+ days ago without progress"}
}

func ruleCompounds(task domain.Task, _ time.Time) *ruleResult {
	if task.TaskType == nil {
		return nil
	}
	if *task.TaskType != domain.TypeCompound && *task.TaskType != domain.TypeImportantNotUrgent {
		return nil
	}
	return &ruleResult{delta: -10, tag: TagCompounds, reason: "Builds over time — 1% better"}
}

func ruleGreenEnergy(task domain.Task, _ time.Time) *ruleResult {
	if task.Energy == nil || *task.Energy != domain.EnergyGreen {
		return nil
	}
	// Easy wins get a small boost but no tag.
	return &ruleResult{delta: -5, reason: "Low energy — good for a quick win"}
}

// computeScore runs the rule layers over one task.
// Lower score means higher priority; the floor is 1.
func computeScore(task domain.Task, now time.Time) (score int, tags []string, reasons []string) {
	score = baselineScore
	for _, r := range rules {
		res := r(task, now)
		if res == nil {
			continue
		}
		score += res.delta
		if res.tag != "" {
			tags = append(tags, res.tag)
		}
		if res.reason != "" {
			reasons = append(reasons, res.reason)
		}
	}

	// Explicit priority boosts the computed score proportionally.
	if task.Priority != nil {
		if boost := 30 - *task.Priority*3; boost > 0 {
			score -= boost
		}
	}

	if score < 1 {
		score = 1
	}
	return score, tags, reasons
}
