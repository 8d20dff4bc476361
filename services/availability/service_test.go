package availability

import (
	"context"
	"errors"
	"testing"

	appointmentRepo "medicore/database/repository/appointment"
	clinicRepo "medicore/database/repository/clinic"
	"medicore/models"
)

type fakeClinicRepo struct {
	clinics map[string]*models.Clinic
}

func (f *fakeClinicRepo) GetByID(ctx context.Context, id string) (*models.Clinic, error) {
	c, ok := f.clinics[id]
	if !ok {
		return nil, clinicRepo.ErrNotFound
	}
	return c, nil
}

func (f *fakeClinicRepo) Create(ctx context.Context, c *models.Clinic) error       { return nil }
func (f *fakeClinicRepo) Update(ctx context.Context, id string, u map[string]interface{}) error {
	return nil
}
func (f *fakeClinicRepo) Delete(ctx context.Context, id string) error              { return nil }
func (f *fakeClinicRepo) List(ctx context.Context, a bool) ([]models.Clinic, error) { return nil, nil }
func (f *fakeClinicRepo) AddDoctor(ctx context.Context, c, d string) error         { return nil }
func (f *fakeClinicRepo) RemoveDoctor(ctx context.Context, c, d string) error      { return nil }
func (f *fakeClinicRepo) EnsureIndexes() error                                     { return nil }

type fakeApptRepo struct {
	appts []models.Appointment
}

func (f *fakeApptRepo) GetActiveByClinicAndDate(ctx context.Context, clinicID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ClinicID == clinicID && a.Date == date && a.Status != models.StatusCancelled && a.Status != models.StatusCompleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) Create(ctx context.Context, a *models.Appointment) error { return nil }
func (f *fakeApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, appointmentRepo.ErrNotFound
}
func (f *fakeApptRepo) GetOverlapping(ctx context.Context, doctorID, date, start, end string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, active bool) error {
	return nil
}
func (f *fakeApptRepo) ListByPatient(ctx context.Context, p string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeApptRepo) ListByDoctor(ctx context.Context, d, date string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeApptRepo) EnsureIndexes() error { return nil }

func testClinic() *models.Clinic {
	return &models.Clinic{
		ID:      "clinic-1",
		Name:    "Westlands Medical Centre",
		Doctors: []string{"doc-1"},
		Hours: models.OperatingHours{
			Weekday: models.DayHours{Open: "09:00", Close: "12:00"},
		},
		Settings: models.AppointmentSettings{
			SlotDurationMinutes:  30,
			MaxDailyAppointments: 0,
		},
		Active: true,
	}
}

func newTestService(clinic *models.Clinic, appts []models.Appointment) *DefaultAvailabilityService {
	clinics := map[string]*models.Clinic{}
	if clinic != nil {
		clinics[clinic.ID] = clinic
	}
	return &DefaultAvailabilityService{
		ClinicRepo: &fakeClinicRepo{clinics: clinics},
		ApptRepo:   &fakeApptRepo{appts: appts},
	}
}

// 2026-03-04 is a Wednesday, 2026-03-07 a Saturday.

func TestGetAvailableSlotsOpenDay(t *testing.T) {
	svc := newTestService(testClinic(), []models.Appointment{
		{
			ID: "a1", ClinicID: "clinic-1", DoctorID: "doc-1",
			Date:     "2026-03-04",
			TimeSlot: models.TimeSlot{Start: "09:30", End: "10:00"},
			Status:   models.StatusConfirmed,
		},
	})

	slots, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-04")
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[1].Available {
		t.Fatalf("09:30 slot should be booked: %+v", slots[1])
	}
	for i, s := range slots {
		if i != 1 && !s.Available {
			t.Fatalf("slot %d should be free: %+v", i, s)
		}
	}
}

func TestGetAvailableSlotsIgnoresCancelled(t *testing.T) {
	svc := newTestService(testClinic(), []models.Appointment{
		{
			ID: "a1", ClinicID: "clinic-1", DoctorID: "doc-1",
			Date:     "2026-03-04",
			TimeSlot: models.TimeSlot{Start: "09:30", End: "10:00"},
			Status:   models.StatusCancelled,
		},
	})

	slots, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-04")
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("cancelled appointment must not occupy the grid: %+v", s)
		}
	}
}

func TestGetAvailableSlotsClosedWeekend(t *testing.T) {
	svc := newTestService(testClinic(), nil)

	_, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-07")
	var closed ClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("expected ClosedError for a Saturday with no weekend hours, got %v", err)
	}
}

func TestGetAvailableSlotsWeekendHours(t *testing.T) {
	clinic := testClinic()
	clinic.Hours.Weekend = &models.DayHours{Open: "10:00", Close: "11:00"}
	svc := newTestService(clinic, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-07")
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 weekend slots, got %d", len(slots))
	}
	if slots[0].Start != "10:00" {
		t.Fatalf("weekend grid must start at the weekend open time, got %s", slots[0].Start)
	}
}

func TestGetAvailableSlotsUnknownClinic(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.GetAvailableSlots(context.Background(), "nope", "2026-03-04")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetAvailableSlotsRejectsBadDate(t *testing.T) {
	svc := newTestService(testClinic(), nil)

	_, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "04-03-2026")
	var badDate InvalidDateError
	if !errors.As(err, &badDate) {
		t.Fatalf("expected InvalidDateError, got %v", err)
	}
}

func TestGetAvailableSlotsCapsAvailableCount(t *testing.T) {
	clinic := testClinic()
	clinic.Hours.Weekday = models.DayHours{Open: "09:00", Close: "17:00"}
	clinic.Settings.MaxDailyAppointments = 2
	svc := newTestService(clinic, []models.Appointment{
		{
			ID: "a1", ClinicID: "clinic-1", DoctorID: "doc-1",
			Date:     "2026-03-04",
			TimeSlot: models.TimeSlot{Start: "09:00", End: "09:30"},
			Status:   models.StatusPending,
		},
	})

	slots, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-04")
	if err != nil {
		t.Fatalf("GetAvailableSlots failed: %v", err)
	}
	free := 0
	for _, s := range slots {
		if s.Available {
			free++
		}
	}
	if free != 2 {
		t.Fatalf("the cap bounds available slots, expected 2 free, got %d", free)
	}
	// The booked slot is reported but does not consume the cap.
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots total, got %d", len(slots))
	}
}

func TestGetAvailableSlotsIdempotent(t *testing.T) {
	svc := newTestService(testClinic(), nil)

	first, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-04")
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.GetAvailableSlots(context.Background(), "clinic-1", "2026-03-04")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("reads must not mutate state: %d vs %d slots", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between reads: %+v vs %+v", i, first[i], second[i])
		}
	}
}
