package domain

import "time"

// AvailabilityWindow is a contiguous block of free time.
type AvailabilityWindow struct {
	Start time.Time
	End   time.Time
}

// NewAvailabilityWindow validates that end is strictly after start.
func NewAvailabilityWindow(start, end time.Time) (AvailabilityWindow, error) {
	if !end.After(start) {
		return AvailabilityWindow{}, Validationf("availability window end must be after start")
	}
	return AvailabilityWindow{Start: start, End: end}, nil
}

// DurationMinutes returns the window length in whole minutes.
func (w AvailabilityWindow) DurationMinutes() int {
	return int(w.End.Sub(w.Start).Minutes())
}

// Fits reports whether a task of n minutes fits inside the window.
func (w AvailabilityWindow) Fits(minutes int) bool {
	return minutes <= w.DurationMinutes()
}

// Availability is the ordered free-time windows for one day.
type Availability struct {
	Windows []AvailabilityWindow
}

// NewAvailability validates that at least one window is present.
func NewAvailability(windows []AvailabilityWindow) (Availability, error) {
	if len(windows) == 0 {
		return Availability{}, Validationf("availability requires at least one window")
	}
	return Availability{Windows: windows}, nil
}
