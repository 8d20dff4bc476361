package labtestRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"medicore/database"
	"medicore/models"
)

// ErrDuplicateSlot is returned when a booking insert loses the race for a
// clinic/date/start tuple: the partial unique index rejected the document.
var ErrDuplicateSlot = errors.New("lab slot already taken")

// ErrNotFound is returned when no test or booking matches the given ID.
var ErrNotFound = errors.New("lab test not found")

type LabTestRepository interface {
	// Catalog.
	CreateTest(ctx context.Context, test *models.LabTest) error
	GetTestByID(ctx context.Context, id string) (*models.LabTest, error)
	ListTests(ctx context.Context, activeOnly bool) ([]models.LabTest, error)

	// Bookings.
	CreateBooking(ctx context.Context, booking *models.LabTestBooking) error
	GetBookingByID(ctx context.Context, id string) (*models.LabTestBooking, error)
	GetActiveBookings(ctx context.Context, clinicID, date string) ([]models.LabTestBooking, error)
	UpdateBookingStatus(ctx context.Context, id, status string, active bool) error

	EnsureIndexes() error
}

type mongoLabTestRepo struct {
	testColl    *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoLabTestRepo constructs a new MongoDB LabTestRepository.
func NewMongoLabTestRepo() LabTestRepository {
	db := database.DB()
	return &mongoLabTestRepo{
		testColl:    db.Collection("labtests"),
		bookingColl: db.Collection("labtest_bookings"),
	}
}
