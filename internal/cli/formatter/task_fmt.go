package formatter

import (
	"fmt"
	"strings"

	"github.com/jdelgad/nudge/internal/domain"
	"github.com/jdelgad/nudge/internal/prioritize"
)

// StatusPill returns a colored status indicator for a task status.
func StatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.StatusTasks:
		return render(StyleBlue, "○ Tasks")
	case domain.StatusProjects:
		return render(StylePurple, "◆ Projects")
	case domain.StatusIdeas:
		return render(StyleYellow, "✦ Ideas")
	case domain.StatusNotNow:
		return render(StyleDim, "◌ Not Now")
	case domain.StatusBlocked:
		return render(StyleRed, "■ Blocked")
	case domain.StatusWaitingOn:
		return render(StyleYellow, "◔ Waiting On")
	case domain.StatusDone:
		return render(StyleDim, "✔ Done")
	case domain.StatusWontDo:
		return render(StyleDim, "✖ Won't Do")
	default:
		return render(StyleDim, string(status))
	}
}

// EnergyPill returns a colored energy indicator, or a dim placeholder
// when the task is unrated.
func EnergyPill(energy *domain.EnergyLevel) string {
	if energy == nil {
		return render(StyleDim, "--")
	}
	switch *energy {
	case domain.EnergyGreen:
		return render(StyleGreen, "● Green")
	case domain.EnergyYellow:
		return render(StyleYellow, "● Yellow")
	case domain.EnergyRed:
		return render(StyleRed, "● Red")
	default:
		return render(StyleDim, string(*energy))
	}
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatDoNowList renders prioritized suggestions, best first.
func FormatDoNowList(suggestions []prioritize.Suggestion) string {
	if len(suggestions) == 0 {
		return Dim("Nothing actionable right now. Capture something or review the backlog.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Do now") + "\n")
	for i, s := range suggestions {
		line := fmt.Sprintf("%2d. %s", i+1, Bold(s.Task.Name))
		if len(s.Tags) > 0 {
			line += " " + render(StylePurple, strings.Join(s.Tags, " "))
		}
		if s.Task.CompleteTimeMinutes != nil {
			line += " " + Dim(FormatMinutes(*s.Task.CompleteTimeMinutes))
		}
		if s.IsManualOverride {
			line += " " + render(StyleYellow, "(manual)")
		}
		if s.HasConflict {
			line += " " + render(StyleRed, "(conflicting signals)")
		}
		b.WriteString(line + "\n")
		b.WriteString("    " + Dim(s.SuggestedReason) + "\n")
	}
	return b.String()
}

// FormatTaskList renders tasks one per line with status and mentions.
func FormatTaskList(title string, tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString(Header(title) + "\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("(none)") + "\n")
		return b.String()
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s  %s", StatusPill(t.Status), Bold(t.Name))
		if t.Mentioned > 1 {
			line += " " + Dim(fmt.Sprintf("(mentioned %dx)", t.Mentioned))
		}
		if t.BlockedBy != nil && *t.BlockedBy != "" {
			line += " " + render(StyleRed, "← "+*t.BlockedBy)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
