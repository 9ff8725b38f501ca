package calendar

import (
	"context"
	"fmt"
	"time"

	bookingRepo "bookline/database/repository/booking"
	"bookline/models"
	"bookline/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MongoProvider is the internal calendar: confirmed bookings live in Mongo
// and double as the busy intervals for later availability queries. It is
// the default provider when no Google Calendar is wired up.
type MongoProvider struct {
	Repo bookingRepo.BookingRepository
}

func NewMongoProvider(repo bookingRepo.BookingRepository) *MongoProvider {
	return &MongoProvider{Repo: repo}
}

func (p *MongoProvider) GetBusyIntervals(ctx context.Context, date string, _ int) ([]models.BusyInterval, error) {
	bookings, err := p.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	busy := make([]models.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, models.BusyInterval{Start: b.Start, End: b.End})
	}
	return busy, nil
}

func (p *MongoProvider) CreateBooking(ctx context.Context, draft models.Draft) (models.Confirmation, error) {
	start, end, err := eventWindow(draft)
	if err != nil {
		return models.Confirmation{}, err
	}

	now := time.Now().UTC()
	booking := models.Booking{
		ID:          uuid.New().String(),
		ServiceType: draft.ServiceType,
		Date:        draft.Date,
		Start:       start,
		End:         end,
		Email:       draft.ContactEmail,
		Code:        newConfirmationCode(now),
		CreatedAt:   now,
	}
	if err := p.Repo.Insert(ctx, booking); err != nil {
		return models.Confirmation{}, fmt.Errorf("failed to store booking: %w", err)
	}

	utils.GetLogger().Info("booking stored",
		zap.String("bookingID", booking.ID),
		zap.String("date", booking.Date),
		zap.String("service", booking.ServiceType))
	return models.Confirmation{ID: booking.ID, Code: booking.Code}, nil
}
