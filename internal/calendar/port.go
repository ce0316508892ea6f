package calendar

import (
	"context"

	"github.com/jdelgad/nudge/internal/domain"
)

// DaySummary is one day's busy/free totals in a week overview.
type DaySummary struct {
	Date        string // YYYY-MM-DD
	BusyMinutes int
	FreeMinutes int
}

// WeekOverview summarizes busy/free time for the current week.
type WeekOverview struct {
	Days []DaySummary
}

// Port is read access to calendar availability. Adapters implement it;
// the slotting functions here never perform I/O themselves.
type Port interface {
	// GetAvailability returns free time blocks for a date (YYYY-MM-DD).
	GetAvailability(ctx context.Context, date string) (domain.Availability, error)

	// GetWeekOverview returns busy/free summaries for the current week.
	GetWeekOverview(ctx context.Context) (WeekOverview, error)
}
