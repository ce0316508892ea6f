package gcal

import (
	"context"
	"sort"
	"time"

	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jdelgad/nudge/internal/calendar"
	"github.com/jdelgad/nudge/internal/config"
	"github.com/jdelgad/nudge/internal/domain"
)

const dateLayout = "2006-01-02"

// Adapter implements calendar.Port against the Google Calendar API.
type Adapter struct {
	svc        *gcalendar.Service
	calendarID string
	workStart  string
	workEnd    string
	loc        *time.Location
}

// New builds an authenticated adapter for the calendar named in the
// config. Missing credentials surface as a dependency error so callers
// can degrade instead of failing.
func New(ctx context.Context, cfg config.Config) (*Adapter, error) {
	client, err := getClient(ctx, []string{gcalendar.CalendarReadonlyScope})
	if err != nil {
		return nil, err
	}

	svc, err := gcalendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, domain.Dependencyf("building calendar service: %v", err)
	}

	calendarID, err := resolveCalendarID(svc, cfg.CalendarName)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		svc:        svc,
		calendarID: calendarID,
		workStart:  cfg.WorkStart,
		workEnd:    cfg.WorkEnd,
		loc:        cfg.Timezone,
	}, nil
}

func resolveCalendarID(svc *gcalendar.Service, name string) (string, error) {
	if name == "" || name == "primary" {
		return "primary", nil
	}
	list, err := svc.CalendarList.List().Do()
	if err != nil {
		return "", domain.Dependencyf("listing calendars: %v", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", domain.Dependencyf("calendar %q not found", name)
}

// GetAvailability returns the free windows on the given day inside the
// configured working hours, after subtracting busy periods.
func (a *Adapter) GetAvailability(ctx context.Context, date string) (domain.Availability, error) {
	day, err := time.ParseInLocation(dateLayout, date, a.loc)
	if err != nil {
		return domain.Availability{}, domain.Validationf("invalid date %q, want YYYY-MM-DD", date)
	}

	dayStart := atClock(day, a.workStart)
	dayEnd := atClock(day, a.workEnd)
	if !dayEnd.After(dayStart) {
		return domain.Availability{}, domain.Validationf("work end %s is not after work start %s", a.workEnd, a.workStart)
	}

	busy, err := a.busyPeriods(ctx, dayStart, dayEnd)
	if err != nil {
		return domain.Availability{}, err
	}

	return domain.Availability{Windows: subtractBusy(dayStart, dayEnd, busy)}, nil
}

// GetWeekOverview summarizes busy and free minutes for the next seven
// days starting today.
func (a *Adapter) GetWeekOverview(ctx context.Context) (calendar.WeekOverview, error) {
	today := time.Now().In(a.loc)
	var overview calendar.WeekOverview
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format(dateLayout)

		avail, err := a.GetAvailability(ctx, date)
		if err != nil {
			return calendar.WeekOverview{}, err
		}
		free := 0
		for _, w := range avail.Windows {
			free += w.DurationMinutes()
		}
		workday := int(atClock(day, a.workEnd).Sub(atClock(day, a.workStart)).Minutes())
		overview.Days = append(overview.Days, calendar.DaySummary{
			Date:        date,
			BusyMinutes: workday - free,
			FreeMinutes: free,
		})
	}
	return overview, nil
}

func (a *Adapter) busyPeriods(ctx context.Context, start, end time.Time) ([]domain.AvailabilityWindow, error) {
	resp, err := a.svc.Freebusy.Query(&gcalendar.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcalendar.FreeBusyRequestItem{{Id: a.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, domain.Dependencyf("free/busy query: %v", err)
	}

	cal, ok := resp.Calendars[a.calendarID]
	if !ok {
		return nil, nil
	}
	var busy []domain.AvailabilityWindow
	for _, p := range cal.Busy {
		from, err1 := time.Parse(time.RFC3339, p.Start)
		to, err2 := time.Parse(time.RFC3339, p.End)
		if err1 != nil || err2 != nil {
			return nil, domain.Dependencyf("unparsable busy period %q..%q", p.Start, p.End)
		}
		busy = append(busy, domain.AvailabilityWindow{Start: from.In(a.loc), End: to.In(a.loc)})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy, nil
}

// subtractBusy walks the day from start to end, emitting the gaps
// between busy periods as free windows. Busy periods must be sorted by
// start time; overlaps are merged by the cursor never moving backwards.
func subtractBusy(start, end time.Time, busy []domain.AvailabilityWindow) []domain.AvailabilityWindow {
	var free []domain.AvailabilityWindow
	cursor := start
	for _, b := range busy {
		if !b.End.After(start) || !end.After(b.Start) {
			continue
		}
		if b.Start.After(cursor) {
			free = appendWindow(free, cursor, minTime(b.Start, end))
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if end.After(cursor) {
		free = appendWindow(free, cursor, end)
	}
	return free
}

func appendWindow(windows []domain.AvailabilityWindow, start, end time.Time) []domain.AvailabilityWindow {
	if end.Sub(start) < time.Minute {
		return windows
	}
	return append(windows, domain.AvailabilityWindow{Start: start, End: end})
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func atClock(day time.Time, hhmm string) time.Time {
	clock, _ := time.Parse("15:04", hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
}
