package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 16, h, m, 0, 0, time.UTC)
}

func TestNewAvailabilityWindow(t *testing.T) {
	w, err := NewAvailabilityWindow(at(9, 0), at(12, 0))
	require.NoError(t, err)
	assert.Equal(t, 180, w.DurationMinutes())

	_, err = NewAvailabilityWindow(at(12, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewAvailabilityWindow(at(9, 0), at(9, 0))
	assert.ErrorIs(t, err, ErrValidation, "zero-length window is invalid")
}

func TestAvailabilityWindowFits(t *testing.T) {
	w, err := NewAvailabilityWindow(at(9, 0), at(10, 0))
	require.NoError(t, err)
	assert.True(t, w.Fits(60))
	assert.True(t, w.Fits(30))
	assert.False(t, w.Fits(61))
}

func TestNewAvailability(t *testing.T) {
	_, err := NewAvailability(nil)
	assert.ErrorIs(t, err, ErrValidation)

	w, _ := NewAvailabilityWindow(at(9, 0), at(10, 0))
	a, err := NewAvailability([]AvailabilityWindow{w})
	require.NoError(t, err)
	assert.Len(t, a.Windows, 1)
}

func TestReviewValidate(t *testing.T) {
	r := &Review{ID: "r-1", WeekOf: at(0, 0), Transcript: "Shipped the report."}
	require.NoError(t, r.Validate())

	empty := &Review{ID: "r-1", WeekOf: at(0, 0), Transcript: "  "}
	assert.ErrorIs(t, empty.Validate(), ErrValidation)

	neg := &Review{ID: "r-1", WeekOf: at(0, 0), Transcript: "x", TasksCompleted: IntPtr(-1)}
	assert.ErrorIs(t, neg.Validate(), ErrValidation)
}

func TestIdentityProfileValidate(t *testing.T) {
	p := &IdentityProfile{}
	assert.ErrorIs(t, p.Validate(), ErrValidation)

	p = &IdentityProfile{Statements: []IdentityStatement{{ID: "i-1", Text: "I am a writer"}}}
	require.NoError(t, p.Validate())

	p = &IdentityProfile{Statements: []IdentityStatement{{ID: "i-1", Text: " "}}}
	assert.ErrorIs(t, p.Validate(), ErrValidation)
}
