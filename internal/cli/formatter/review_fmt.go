package formatter

import (
	"fmt"
	"strings"

	"github.com/jdelgad/nudge/internal/review"
)

// FormatReview renders a gathered review and its insights.
func FormatReview(data *review.Data, insights review.InsightsSummary) string {
	var b strings.Builder

	b.WriteString(Header("Week of "+data.WeekStart) + "\n")
	b.WriteString(fmt.Sprintf("Completed: %s   Open: %s\n",
		Bold(fmt.Sprintf("%d", data.Completed.Count)),
		Bold(fmt.Sprintf("%d", len(data.OpenTasks)))))

	e := data.Energy
	if e.Total() > 0 {
		b.WriteString(fmt.Sprintf("Energy: %s %s %s %s\n",
			render(StyleRed, fmt.Sprintf("%d red", e.Red)),
			render(StyleYellow, fmt.Sprintf("%d yellow", e.Yellow)),
			render(StyleGreen, fmt.Sprintf("%d green", e.Green)),
			Dim(fmt.Sprintf("%d unrated", e.Unrated))))
	}

	if len(data.ProcrastinationList) > 0 {
		b.WriteString("\n" + Header("Keeps coming back") + "\n")
		for _, item := range data.ProcrastinationList {
			b.WriteString(fmt.Sprintf("  %s %s\n", Bold(item.Task.Name), Dim("("+item.Reason+")")))
		}
	}

	b.WriteString("\n" + Header("Insights") + "\n")
	for _, insight := range insights.Insights {
		b.WriteString(fmt.Sprintf("  %s %s\n", severityMark(insight.Severity), insight.Message))
	}

	return b.String()
}

func severityMark(sev review.InsightSeverity) string {
	switch sev {
	case review.SeverityCritical:
		return render(StyleRed, "‼")
	case review.SeverityWarning:
		return render(StyleYellow, "!")
	default:
		return render(StyleBlue, "·")
	}
}
