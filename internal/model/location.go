// Package model defines the value types passed between the soil analysis components.
package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// DateLayout is the calendar date format accepted for analysis windows.
const DateLayout = "2006-01-02"

// Window is a closed-open analysis period. Start must be strictly before End.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates start < end and returns the window.
func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, eris.New("end date must be after start date")
	}
	return Window{Start: start, End: end}, nil
}

// TrailingWindow returns the window of the given number of days ending at now,
// truncated to calendar days.
func TrailingWindow(now time.Time, days int) Window {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}

// StartDate returns the window start formatted as YYYY-MM-DD.
func (w Window) StartDate() string { return w.Start.Format(DateLayout) }

// EndDate returns the window end formatted as YYYY-MM-DD.
func (w Window) EndDate() string { return w.End.Format(DateLayout) }

// Location is a point of interest plus the buffer and window used to sample it.
type Location struct {
	Latitude     float64
	Longitude    float64
	BufferMeters int
	Window       Window
}
