package clinicRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"medicore/database"
	"medicore/models"
)

// ErrNotFound is returned when no clinic matches the given ID.
var ErrNotFound = errors.New("clinic not found")

type ClinicRepository interface {
	Create(ctx context.Context, clinic *models.Clinic) error
	GetByID(ctx context.Context, id string) (*models.Clinic, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]models.Clinic, error)
	AddDoctor(ctx context.Context, clinicID, doctorID string) error
	RemoveDoctor(ctx context.Context, clinicID, doctorID string) error
	EnsureIndexes() error
}

type mongoClinicRepo struct {
	coll *mongo.Collection
}

// NewMongoClinicRepo constructs a new MongoDB ClinicRepository.
func NewMongoClinicRepo() ClinicRepository {
	return &mongoClinicRepo{
		coll: database.DB().Collection("clinics"),
	}
}
