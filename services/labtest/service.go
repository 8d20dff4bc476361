package labtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	clinicRepo "medicore/database/repository/clinic"
	labtestRepo "medicore/database/repository/labtest"
	"medicore/models"
	"medicore/services/availability"
	"medicore/utils"
)

const dateLayout = "2006-01-02"

// Service books lab tests. Bookings are keyed by clinic+date+start: one
// active booking per lab station window.
type Service interface {
	BookLabTest(ctx context.Context, input models.BookLabTestInput) (*models.LabTestBooking, error)
	CancelBooking(ctx context.Context, id string) error
	GetBookingByID(ctx context.Context, id string) (*models.LabTestBooking, error)
	ListActiveBookings(ctx context.Context, clinicID, date string) ([]models.LabTestBooking, error)
	ListTests(ctx context.Context) ([]models.LabTest, error)
}

// DefaultLabTestService implements Service.
type DefaultLabTestService struct {
	Repo       labtestRepo.LabTestRepository
	ClinicRepo clinicRepo.ClinicRepository
}

// BookLabTest snapshots the catalog entry into the booking so later price
// or name changes never rewrite history, validates the window against the
// clinic's hours and inserts under the partial unique index.
func (s *DefaultLabTestService) BookLabTest(ctx context.Context, input models.BookLabTestInput) (*models.LabTestBooking, error) {
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, availability.InvalidDateError{Value: input.Date}
	}

	test, err := s.Repo.GetTestByID(ctx, input.TestID)
	if err != nil {
		if errors.Is(err, labtestRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "lab test", ID: input.TestID}
		}
		return nil, fmt.Errorf("lab test lookup failed: %w", err)
	}

	clinic, err := s.ClinicRepo.GetByID(ctx, input.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "clinic", ID: input.ClinicID}
		}
		return nil, fmt.Errorf("clinic lookup failed: %w", err)
	}

	hours, open := clinic.HoursFor(int(day.Weekday()))
	if !open {
		return nil, availability.ClosedError{ClinicID: input.ClinicID, Date: input.Date}
	}

	grid, err := availability.GenerateGrid(hours.Open, hours.Close, clinic.Settings.SlotDurationMinutes, 0)
	if err != nil {
		return nil, fmt.Errorf("grid generation failed: %w", err)
	}
	valid := false
	for _, g := range grid {
		if g.Start == input.TimeSlot.Start && g.End == input.TimeSlot.End {
			valid = true
			break
		}
	}
	if !valid {
		return nil, availability.SlotUnavailableError{Date: input.Date, Slot: input.TimeSlot}
	}

	booking := &models.LabTestBooking{
		PatientID: input.PatientID,
		ClinicID:  input.ClinicID,
		TestID:    test.ID,
		Test: models.TestSnapshot{
			Name:  test.Name,
			Code:  test.Code,
			Price: test.Price,
		},
		Date:     input.Date,
		TimeSlot: input.TimeSlot,
		Status:   models.StatusPending,
		Payment:  input.Payment,
		Active:   true,
	}

	if err := s.Repo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, labtestRepo.ErrDuplicateSlot) {
			return nil, availability.SlotUnavailableError{Date: input.Date, Slot: input.TimeSlot}
		}
		return nil, fmt.Errorf("lab booking insert failed: %w", err)
	}

	utils.GetLogger().Info("lab test booked",
		zap.String("id", booking.ID),
		zap.String("clinicId", booking.ClinicID),
		zap.String("code", booking.Test.Code),
		zap.String("date", booking.Date))
	return booking, nil
}

func (s *DefaultLabTestService) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == models.StatusCancelled || booking.Status == models.StatusCompleted {
		return fmt.Errorf("booking %s in status %s cannot be cancelled", id, booking.Status)
	}
	return s.Repo.UpdateBookingStatus(ctx, id, models.StatusCancelled, false)
}

func (s *DefaultLabTestService) GetBookingByID(ctx context.Context, id string) (*models.LabTestBooking, error) {
	booking, err := s.Repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, labtestRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "lab booking", ID: id}
		}
		return nil, err
	}
	return booking, nil
}

// ListActiveBookings returns the clinic's lab day sheet: bookings still
// occupying a station window on the given date.
func (s *DefaultLabTestService) ListActiveBookings(ctx context.Context, clinicID, date string) ([]models.LabTestBooking, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, availability.InvalidDateError{Value: date}
	}
	return s.Repo.GetActiveBookings(ctx, clinicID, date)
}

func (s *DefaultLabTestService) ListTests(ctx context.Context) ([]models.LabTest, error) {
	return s.Repo.ListTests(ctx, true)
}
