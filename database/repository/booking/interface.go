package bookingRepo

import (
	"context"

	"bookline/database"
	"bookline/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Insert(ctx context.Context, booking models.Booking) error
	GetByDate(ctx context.Context, date string) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("bookline")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
