// Package schedule builds Google Calendar event links for the scheduler
// widget: a prefilled event-edit URL with a daily recurrence rule, ready
// to copy or open.
package schedule

import (
	"fmt"
	"net/url"
	"time"
)

const (
	editBase    = "https://calendar.google.com/calendar/u/0/r/eventedit"
	stampLayout = "20060102T150405"
)

// Event is the scheduler form: a titled slot with an optional daily
// repetition that runs until the given time.
type Event struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Details  string    `json:"details,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Until    time.Time `json:"until,omitempty"` // zero = no recurrence
}

// Validate applies the local rules before any link or API call is made.
func (e Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("start and end times are required")
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("end must be after start")
	}
	return nil
}

// Recurrence returns the RRULE for the event, or "" when it does not
// repeat.
func (e Event) Recurrence() string {
	if e.Until.IsZero() {
		return ""
	}
	return fmt.Sprintf("RRULE:FREQ=DAILY;INTERVAL=1;UNTIL=%sZ", e.Until.UTC().Format(stampLayout))
}

// EventURL builds the prefilled calendar event-edit link.
func (e Event) EventURL() string {
	q := url.Values{}
	q.Set("text", e.Title)
	q.Set("dates", fmt.Sprintf("%s/%s", e.Start.Format(stampLayout), e.End.Format(stampLayout)))
	if e.Location != "" {
		q.Set("location", e.Location)
	}
	if e.Details != "" {
		q.Set("details", e.Details)
	}
	if r := e.Recurrence(); r != "" {
		q.Set("recur", r)
	}
	return editBase + "?" + q.Encode()
}
