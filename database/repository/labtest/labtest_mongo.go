package labtestRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medicore/models"
)

func (r *mongoLabTestRepo) CreateTest(ctx context.Context, test *models.LabTest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if test.ID == "" {
		test.ID = uuid.New().String()
	}
	_, err := r.testColl.InsertOne(ctx, test)
	return err
}

func (r *mongoLabTestRepo) GetTestByID(ctx context.Context, id string) (*models.LabTest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var test models.LabTest
	err := r.testColl.FindOne(ctx, bson.M{"id": id}).Decode(&test)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *mongoLabTestRepo) ListTests(ctx context.Context, activeOnly bool) ([]models.LabTest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.testColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []models.LabTest
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *mongoLabTestRepo) CreateBooking(ctx context.Context, booking *models.LabTestBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()

	if _, err := r.bookingColl.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	return nil
}

func (r *mongoLabTestRepo) GetBookingByID(ctx context.Context, id string) (*models.LabTestBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.LabTestBooking
	err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoLabTestRepo) GetActiveBookings(ctx context.Context, clinicID, date string) ([]models.LabTestBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"clinicId": clinicID,
		"date":     date,
		"status":   bson.M{"$nin": []string{models.StatusCancelled, models.StatusCompleted}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timeSlot.start", Value: 1}})
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.LabTestBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoLabTestRepo) UpdateBookingStatus(ctx context.Context, id, status string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.bookingColl.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "active": active}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the lab test collections.
// Bookings are keyed by clinic+date+start: one active booking per station
// window, enforced by the partial unique index.
func (r *mongoLabTestRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	testIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_code"),
		},
	}
	if _, err := r.testColl.Indexes().CreateMany(ctx, testIndexes); err != nil {
		return fmt.Errorf("failed to create labtest indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "clinicId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "timeSlot.start", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("unique_clinic_slot_active"),
		},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create labtest booking indexes: %w", err)
	}
	return nil
}
