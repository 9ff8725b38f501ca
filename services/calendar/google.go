package calendar

import (
	"context"
	"fmt"
	"time"

	"bookline/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleProvider reads busy intervals via the free/busy API and commits
// bookings as calendar events. Credentials come from a service-account
// file; there is no interactive auth flow.
type GoogleProvider struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleProvider(ctx context.Context, credentialsPath, calendarID string) (*GoogleProvider, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleProvider{svc: svc, calendarID: calendarID}, nil
}

func (p *GoogleProvider) GetBusyIntervals(ctx context.Context, date string, _ int) ([]models.BusyInterval, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	req := &gcal.FreeBusyRequest{
		TimeMin:  day.Format(time.RFC3339),
		TimeMax:  day.AddDate(0, 0, 1).Format(time.RFC3339),
		TimeZone: "UTC",
		Items:    []*gcal.FreeBusyRequestItem{{Id: p.calendarID}},
	}
	resp, err := p.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	cal, ok := resp.Calendars[p.calendarID]
	if !ok {
		return nil, nil
	}
	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err1 := time.Parse(time.RFC3339, period.Start)
		end, err2 := time.Parse(time.RFC3339, period.End)
		if err1 != nil || err2 != nil || !end.After(start) {
			continue // skip malformed periods rather than failing the query
		}
		busy = append(busy, models.BusyInterval{Start: start.UTC(), End: end.UTC()})
	}
	return busy, nil
}

func (p *GoogleProvider) CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error) {
	start, end, err := eventWindow(draft)
	if err != nil {
		return models.Confirmation{}, err
	}

	event := &gcal.Event{
		Summary:     fmt.Sprintf("Booking: %s", draft.ServiceType),
		Description: fmt.Sprintf("Booked via assistant for %s", draft.ContactEmail),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
	}
	created, err := p.svc.Events.Insert(p.calendarID, event).Context(ctx).Do()
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return models.Confirmation{
		ID:   created.Id,
		Code: newConfirmationCode(time.Now()),
	}, nil
}
