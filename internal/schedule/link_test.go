package schedule

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() Event {
	return Event{
		Title:    "Morning study",
		Location: "Home office",
		Details:  "Deep work block",
		Start:    time.Date(2026, 2, 6, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 2, 6, 10, 30, 0, 0, time.UTC),
		Until:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEventURL(t *testing.T) {
	raw := testEvent().EventURL()

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)

	q := u.Query()
	assert.Equal(t, "Morning study", q.Get("text"))
	assert.Equal(t, "20260206T090000/20260206T103000", q.Get("dates"))
	assert.Equal(t, "Home office", q.Get("location"))
	assert.Equal(t, "RRULE:FREQ=DAILY;INTERVAL=1;UNTIL=20260301T000000Z", q.Get("recur"))
}

func TestEventURLWithoutRecurrence(t *testing.T) {
	e := testEvent()
	e.Until = time.Time{}

	u, err := url.Parse(e.EventURL())
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("recur"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, testEvent().Validate())

	e := testEvent()
	e.Title = ""
	assert.Error(t, e.Validate())

	e = testEvent()
	e.End = e.Start
	assert.Error(t, e.Validate(), "zero-length events are rejected")

	e = testEvent()
	e.End = time.Time{}
	assert.Error(t, e.Validate())
}
