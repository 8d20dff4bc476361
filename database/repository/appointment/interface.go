package appointmentRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"medicore/database"
	"medicore/models"
)

// ErrDuplicateSlot is returned when an insert loses the race against a
// concurrent booking for the same doctor/date/timeslot: the partial unique
// index rejected the document.
var ErrDuplicateSlot = errors.New("appointment slot already taken")

// ErrNotFound is returned when no appointment matches the given ID.
var ErrNotFound = errors.New("appointment not found")

// ErrStatusConflict is returned when a status update loses the race
// against a concurrent transition: the appointment exists but its status
// no longer matches the one the caller read.
var ErrStatusConflict = errors.New("appointment status changed concurrently")

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// GetActiveByClinicAndDate returns appointments occupying the clinic's
	// slot grid on the given date: status not in (cancelled, completed).
	GetActiveByClinicAndDate(ctx context.Context, clinicID, date string) ([]models.Appointment, error)
	// GetOverlapping returns non-cancelled appointments for the doctor on
	// the given date whose timeslot overlaps [start, end) under half-open
	// semantics. Bounds are zero-padded "HH:MM" strings.
	GetOverlapping(ctx context.Context, doctorID, date, start, end string) ([]models.Appointment, error)
	// UpdateStatus applies the transition only while the stored status
	// still equals fromStatus; a concurrent transition in between yields
	// ErrStatusConflict, never a silent overwrite.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, active bool) error
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
