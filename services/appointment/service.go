package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appointmentRepo "medicore/database/repository/appointment"
	clinicRepo "medicore/database/repository/clinic"
	doctorRepo "medicore/database/repository/doctor"
	"medicore/models"
	"medicore/services/availability"
	"medicore/utils"
)

const dateLayout = "2006-01-02"

// minReasonLength is the minimum accepted length of the visit reason.
const minReasonLength = 10

// ReminderScheduler enqueues a reminder to fire before a confirmed
// appointment starts.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error
}

// Service is the booking guard: it creates appointments while holding the
// no-double-booking invariant, and drives the status state machine.
type Service interface {
	CreateAppointment(ctx context.Context, input models.CreateAppointmentInput) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id, newStatus string) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
}

// DefaultAppointmentService implements Service.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	ClinicRepo   clinicRepo.ClinicRepository
	DoctorRepo   doctorRepo.DoctorRepository
	Availability availability.Service
	Reminders    ReminderScheduler // optional
}

// CreateAppointment validates the request, fast-fails on an overlapping
// booking, then inserts. The application-level overlap check is an
// optimization only: the partial unique index is authoritative, and a
// duplicate-key loser surfaces as SlotUnavailableError exactly like a
// pre-check hit.
func (s *DefaultAppointmentService) CreateAppointment(ctx context.Context, input models.CreateAppointmentInput) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if input.Type != models.AppointmentInPerson && input.Type != models.AppointmentTelecon {
		return nil, ValidationError{Field: "type", Message: "must be in_person or teleconsultation"}
	}
	if len(input.Reason) < minReasonLength {
		return nil, ValidationError{Field: "reason", Message: fmt.Sprintf("must be at least %d characters", minReasonLength)}
	}
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, availability.InvalidDateError{Value: input.Date}
	}

	startMin, err := utils.ToMinutes(input.TimeSlot.Start)
	if err != nil {
		return nil, err
	}
	endMin, err := utils.ToMinutes(input.TimeSlot.End)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ValidationError{Field: "timeSlot", Message: "start must be before end"}
	}

	if _, err := s.DoctorRepo.GetByID(ctx, input.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "doctor", ID: input.DoctorID}
		}
		return nil, fmt.Errorf("doctor lookup failed: %w", err)
	}

	if input.Type == models.AppointmentInPerson {
		if input.ClinicID == "" {
			return nil, ValidationError{Field: "clinicId", Message: "required for in-person appointments"}
		}
		if err := s.validateClinicSlot(ctx, input.ClinicID, input.DoctorID, input.Date, day, input.TimeSlot); err != nil {
			return nil, err
		}
	}

	// Fast-fail overlap check; the unique index closes the race window.
	conflicts, err := s.Repo.GetOverlapping(ctx, input.DoctorID, input.Date, input.TimeSlot.Start, input.TimeSlot.End)
	if err != nil {
		return nil, fmt.Errorf("overlap check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, availability.SlotUnavailableError{Date: input.Date, Slot: input.TimeSlot}
	}

	appt := &models.Appointment{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		ClinicID:  input.ClinicID,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		Type:      input.Type,
		Status:    models.StatusPending,
		Reason:    input.Reason,
		Notes:     input.Notes,
		Payment:   input.Payment,
		Active:    true,
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			logger.Info("lost booking race to concurrent insert",
				zap.String("doctorId", input.DoctorID),
				zap.String("date", input.Date),
				zap.String("start", input.TimeSlot.Start))
			return nil, availability.SlotUnavailableError{Date: input.Date, Slot: input.TimeSlot}
		}
		return nil, fmt.Errorf("appointment insert failed: %w", err)
	}

	if s.Availability != nil {
		s.Availability.InvalidateCache(ctx, appt.ClinicID, appt.Date)
	}

	logger.Info("appointment created",
		zap.String("id", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.Date),
		zap.String("start", appt.TimeSlot.Start))
	return appt, nil
}

// validateClinicSlot checks clinic existence, doctor membership, that the
// clinic is open that day and that the requested window is one of the
// clinic's grid slots.
func (s *DefaultAppointmentService) validateClinicSlot(ctx context.Context, clinicID, doctorID, date string, day time.Time, slot models.TimeSlot) error {
	clinic, err := s.ClinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return availability.NotFoundError{Resource: "clinic", ID: clinicID}
		}
		return fmt.Errorf("clinic lookup failed: %w", err)
	}
	if !clinic.HasDoctor(doctorID) {
		return InvalidAssignmentError{DoctorID: doctorID, ClinicID: clinicID}
	}

	hours, open := clinic.HoursFor(int(day.Weekday()))
	if !open {
		return availability.ClosedError{ClinicID: clinicID, Date: date}
	}

	grid, err := availability.GenerateGrid(hours.Open, hours.Close, clinic.Settings.SlotDurationMinutes, 0)
	if err != nil {
		return fmt.Errorf("grid generation failed: %w", err)
	}
	for _, g := range grid {
		if g.Start == slot.Start && g.End == slot.End {
			return nil
		}
	}
	return ValidationError{Field: "timeSlot", Message: "does not match the clinic's slot grid"}
}

// UpdateStatus applies one legal transition of the appointment state
// machine. Cancelling clears the Active flag, freeing the unique-index key
// permanently; cancelled appointments never return to the grid.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, id, newStatus string) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(appt.Status, newStatus) {
		return nil, InvalidTransitionError{From: appt.Status, To: newStatus}
	}

	// The transition check above is a fast fail on a snapshot; the
	// conditional update is authoritative. Losing the race surfaces as an
	// invalid transition from whatever status committed in between.
	active := newStatus != models.StatusCancelled
	if err := s.Repo.UpdateStatus(ctx, id, appt.Status, newStatus, active); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			if current, getErr := s.Repo.GetByID(ctx, id); getErr == nil {
				return nil, InvalidTransitionError{From: current.Status, To: newStatus}
			}
			return nil, InvalidTransitionError{From: appt.Status, To: newStatus}
		}
		return nil, fmt.Errorf("status update failed: %w", err)
	}
	appt.Status = newStatus
	appt.Active = active

	if s.Availability != nil {
		s.Availability.InvalidateCache(ctx, appt.ClinicID, appt.Date)
	}

	if newStatus == models.StatusConfirmed && s.Reminders != nil {
		payload := models.ReminderPayload{
			AppointmentID: appt.ID,
			PatientID:     appt.PatientID,
			DoctorID:      appt.DoctorID,
			ClinicID:      appt.ClinicID,
			Date:          appt.Date,
			Start:         appt.TimeSlot.Start,
		}
		if err := s.Reminders.ScheduleReminder(ctx, payload); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

func (s *DefaultAppointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, availability.NotFoundError{Resource: "appointment", ID: id}
		}
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}

func (s *DefaultAppointmentService) ListByDoctor(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return s.Repo.ListByDoctor(ctx, doctorID, date)
}
