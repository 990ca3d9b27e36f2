package integrations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"homeboard/internal/schedule"
)

// CalendarClient inserts scheduler events straight into Google Calendar
// when a service account is configured. The link builder works without it.
type CalendarClient struct {
	service *calendar.Service
}

func NewCalendarClient() (*CalendarClient, error) {
	ctx := context.Background()

	settings := viper.Get("google.service_account")
	if settings == nil {
		return nil, fmt.Errorf("google.service_account is not configured")
	}

	jsonBytes, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal service account settings to JSON: %w", err)
	}

	config, err := google.JWTConfigFromJSON(jsonBytes, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials from JSON: %w", err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}

	return &CalendarClient{service: srv}, nil
}

// CreateEvent inserts the scheduler event, carrying its recurrence rule
// when one is set.
func (c *CalendarClient) CreateEvent(ev schedule.Event) (*calendar.Event, error) {
	calendarID := viper.GetString("google.calendar.calendar_id")
	if calendarID == "" {
		return nil, fmt.Errorf("google calendar ID is not configured")
	}

	event := &calendar.Event{
		Summary:     ev.Title,
		Location:    ev.Location,
		Description: ev.Details,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format("2006-01-02T15:04:05-07:00"),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format("2006-01-02T15:04:05-07:00"),
		},
	}
	if rule := ev.Recurrence(); rule != "" {
		event.Recurrence = []string{rule}
	}

	created, err := c.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create event in Google Calendar: %w", err)
	}
	return created, nil
}
