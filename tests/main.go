package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookline/config"
	"bookline/database"
	"bookline/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Seeds the bookings collection with a plausible week of appointments so
// the availability endpoint has something to chew on during development.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	coll := client.Database("bookline").Collection("bookings")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear bookings collection: %v", err)
	}

	serviceTypes := models.ServiceCatalogue
	durations := []int{30, 60, 90, 120}

	// Generate dates for the next 7 days.
	var weekDates []string
	today := time.Now().UTC()
	for i := 0; i < 7; i++ {
		weekDates = append(weekDates, today.AddDate(0, 0, i).Format("2006-01-02"))
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var bookings []interface{}
	counter := 1

	for _, date := range weekDates {
		day, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
		// 2 to 5 appointments per day, on quarter-hour starts inside 09:00-17:00.
		for i := 0; i < 2+rng.Intn(4); i++ {
			duration := durations[rng.Intn(len(durations))]
			latestStart := 8*60 - duration // minutes after 09:00
			if latestStart <= 0 {
				continue
			}
			offset := (rng.Intn(latestStart/15 + 1)) * 15
			start := day.Add(9*time.Hour + time.Duration(offset)*time.Minute)

			bookings = append(bookings, models.Booking{
				ID:          uuid.New().String(),
				ServiceType: serviceTypes[rng.Intn(len(serviceTypes))],
				Date:        date,
				Start:       start,
				End:         start.Add(time.Duration(duration) * time.Minute),
				Email:       fmt.Sprintf("seed%d@example.com", counter),
				Code:        fmt.Sprintf("CNF-%s-%04d", start.Format("20060102"), rng.Intn(10000)),
				CreatedAt:   time.Now().UTC(),
			})
			counter++
		}
	}

	res, err := coll.InsertMany(ctx, bookings)
	if err != nil {
		log.Fatalf("Failed to insert seed bookings: %v", err)
	}
	log.Printf("Seeded %d bookings across %d days", len(res.InsertedIDs), len(weekDates))
}
