package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	appointmentRepo "medicore/database/repository/appointment"
	clinicRepo "medicore/database/repository/clinic"
	doctorRepo "medicore/database/repository/doctor"
	"medicore/models"
	"medicore/services/availability"
	"medicore/utils"
)

// memApptRepo is an in-memory AppointmentRepository that enforces the same
// uniqueness the partial index does: one active appointment per
// doctor/date/start/end.
type memApptRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newMemApptRepo() *memApptRepo {
	return &memApptRepo{appts: make(map[string]*models.Appointment)}
}

func slotKey(a *models.Appointment) string {
	return fmt.Sprintf("%s|%s|%s|%s", a.DoctorID, a.Date, a.TimeSlot.Start, a.TimeSlot.End)
}

func (r *memApptRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appts {
		if existing.Active && slotKey(existing) == slotKey(appt) {
			return appointmentRepo.ErrDuplicateSlot
		}
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) GetActiveByClinicAndDate(ctx context.Context, clinicID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.ClinicID == clinicID && a.Date == date && a.Status != models.StatusCancelled && a.Status != models.StatusCompleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memApptRepo) GetOverlapping(ctx context.Context, doctorID, date, start, end string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startMin, err := utils.ToMinutes(start)
	if err != nil {
		return nil, err
	}
	endMin, err := utils.ToMinutes(end)
	if err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID != doctorID || a.Date != date || a.Status == models.StatusCancelled {
			continue
		}
		s, _ := utils.ToMinutes(a.TimeSlot.Start)
		e, _ := utils.ToMinutes(a.TimeSlot.End)
		if s < endMin && e > startMin {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memApptRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if a.Status != fromStatus {
		return appointmentRepo.ErrStatusConflict
	}
	a.Status = toStatus
	a.Active = active
	return nil
}

func (r *memApptRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memApptRepo) ListByDoctor(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID && (date == "" || a.Date == date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memApptRepo) EnsureIndexes() error { return nil }

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

func (f *fakeClinicRepo) Create(ctx context.Context, c *models.Clinic) error { return nil }
func (f *fakeClinicRepo) Update(ctx context.Context, id string, u map[string]interface{}) error {
	return nil
}
func (f *fakeClinicRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeClinicRepo) List(ctx context.Context, a bool) ([]models.Clinic, error) { return nil, nil }
func (f *fakeClinicRepo) AddDoctor(ctx context.Context, c, d string) error          { return nil }
func (f *fakeClinicRepo) RemoveDoctor(ctx context.Context, c, d string) error       { return nil }
func (f *fakeClinicRepo) EnsureIndexes() error                                      { return nil }

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrNotFound
	}
	return d, nil
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Update(ctx context.Context, id string, u map[string]interface{}) error {
	return nil
}
func (f *fakeDoctorRepo) ListByClinic(ctx context.Context, c string) ([]models.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) EnsureIndexes() error { return nil }

type fakeScheduler struct {
	mu       sync.Mutex
	payloads []models.ReminderPayload
}

func (f *fakeScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

func testClinic() *models.Clinic {
	return &models.Clinic{
		ID:      "clinic-1",
		Name:    "Westlands Medical Centre",
		Doctors: []string{"doc-1"},
		Hours: models.OperatingHours{
			Weekday: models.DayHours{Open: "09:00", Close: "17:00"},
		},
		Settings: models.AppointmentSettings{SlotDurationMinutes: 30},
		Active:   true,
	}
}

func newTestService(repo *memApptRepo, scheduler ReminderScheduler) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Repo:       repo,
		ClinicRepo: &fakeClinicRepo{clinics: map[string]*models.Clinic{"clinic-1": testClinic()}},
		DoctorRepo: &fakeDoctorRepo{doctors: map[string]*models.Doctor{
			"doc-1": {ID: "doc-1", Name: "Dr. Achieng", Active: true},
			"doc-2": {ID: "doc-2", Name: "Dr. Otieno", Active: true},
		}},
		Reminders: scheduler,
	}
}

// 2026-03-04 is a Wednesday, 2026-03-07 a Saturday.

func validInput() models.CreateAppointmentInput {
	return models.CreateAppointmentInput{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		ClinicID:  "clinic-1",
		Date:      "2026-03-04",
		TimeSlot:  models.TimeSlot{Start: "09:00", End: "09:30"},
		Type:      models.AppointmentInPerson,
		Reason:    "persistent migraines",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	appt, err := svc.CreateAppointment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateAppointment failed: %v", err)
	}
	if appt.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("new appointments start pending, got %s", appt.Status)
	}
	if !appt.Active {
		t.Fatal("new appointments must be active")
	}
}

func TestCreateAppointmentRejectsShortReason(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.Reason = "headache"

	_, err := svc.CreateAppointment(context.Background(), input)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "reason" {
		t.Fatalf("expected reason ValidationError, got %v", err)
	}
}

func TestCreateAppointmentRejectsUnknownDoctor(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.DoctorID = "doc-99"

	_, err := svc.CreateAppointment(context.Background(), input)
	var nf availability.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateAppointmentRejectsDoctorOffRoster(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.DoctorID = "doc-2" // exists but not on clinic-1's roster

	_, err := svc.CreateAppointment(context.Background(), input)
	var ia InvalidAssignmentError
	if !errors.As(err, &ia) {
		t.Fatalf("expected InvalidAssignmentError, got %v", err)
	}
}

func TestCreateAppointmentRejectsOffGridSlot(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.TimeSlot = models.TimeSlot{Start: "09:15", End: "09:45"}

	_, err := svc.CreateAppointment(context.Background(), input)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "timeSlot" {
		t.Fatalf("expected timeSlot ValidationError, got %v", err)
	}
}

func TestCreateAppointmentRejectsClosedDay(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.Date = "2026-03-07"

	_, err := svc.CreateAppointment(context.Background(), input)
	var closed availability.ClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("expected ClosedError on a Saturday, got %v", err)
	}
}

func TestCreateAppointmentRejectsInvertedSlot(t *testing.T) {
	svc := newTestService(newMemApptRepo(), nil)

	input := validInput()
	input.TimeSlot = models.TimeSlot{Start: "10:00", End: "09:30"}

	_, err := svc.CreateAppointment(context.Background(), input)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for inverted slot, got %v", err)
	}
}

func TestCreateAppointmentDetectsOverlap(t *testing.T) {
	repo := newMemApptRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.CreateAppointment(context.Background(), validInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// A teleconsultation skips grid alignment, so a straddling window
	// exercises the overlap check directly.
	input := validInput()
	input.Type = models.AppointmentTelecon
	input.ClinicID = ""
	input.TimeSlot = models.TimeSlot{Start: "09:15", End: "09:45"}

	_, err := svc.CreateAppointment(context.Background(), input)
	var unavailable availability.SlotUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SlotUnavailableError for overlapping window, got %v", err)
	}

	// The adjacent slot is fine: half-open windows touch without overlap.
	input.TimeSlot = models.TimeSlot{Start: "09:30", End: "10:00"}
	if _, err := svc.CreateAppointment(context.Background(), input); err != nil {
		t.Fatalf("adjacent booking failed: %v", err)
	}
}

func TestCreateAppointmentConcurrentRace(t *testing.T) {
	repo := newMemApptRepo()
	svc := newTestService(repo, nil)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := validInput()
			input.PatientID = fmt.Sprintf("pat-%d", i)
			_, errs[i] = svc.CreateAppointment(context.Background(), input)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var unavailable availability.SlotUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("losers must see SlotUnavailableError, got %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("exactly one booking must win the race, got %d", wins)
	}
}

func TestUpdateStatusConfirmSchedulesReminder(t *testing.T) {
	repo := newMemApptRepo()
	scheduler := &fakeScheduler{}
	svc := newTestService(repo, scheduler)

	appt, err := svc.CreateAppointment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), appt.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if len(scheduler.payloads) != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", len(scheduler.payloads))
	}
	if scheduler.payloads[0].AppointmentID != appt.ID {
		t.Fatalf("reminder references wrong appointment: %+v", scheduler.payloads[0])
	}
}

func TestUpdateStatusCancelFreesSlot(t *testing.T) {
	repo := newMemApptRepo()
	svc := newTestService(repo, nil)

	appt, err := svc.CreateAppointment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Active {
		t.Fatal("cancelled appointments must be inactive")
	}

	// The freed slot is bookable again.
	input := validInput()
	input.PatientID = "pat-2"
	if _, err := svc.CreateAppointment(context.Background(), input); err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}
}

// staleReadRepo serves a stale snapshot on the first GetByID while writes
// go to the real store, reproducing a reader that raced a concurrent
// transition between its read and its write; later reads see the store.
type staleReadRepo struct {
	*memApptRepo
	stale  *models.Appointment
	served bool
}

func (r *staleReadRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if !r.served && r.stale != nil && r.stale.ID == id {
		r.served = true
		cp := *r.stale
		return &cp, nil
	}
	return r.memApptRepo.GetByID(ctx, id)
}

func TestUpdateStatusConcurrentTransitionLosesCleanly(t *testing.T) {
	repo := newMemApptRepo()
	svc := newTestService(repo, nil)

	appt, err := svc.CreateAppointment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), appt.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// The loser read the appointment while it was still confirmed...
	stale, err := repo.GetByID(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("snapshot read failed: %v", err)
	}

	// ...then a cancel committed first.
	if _, err := svc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	loser := newTestService(repo, nil)
	loser.Repo = &staleReadRepo{memApptRepo: repo, stale: stale}

	_, err = loser.UpdateStatus(context.Background(), appt.ID, models.StatusCompleted)
	var it InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("losing writer must see InvalidTransitionError, got %v", err)
	}
	if it.From != models.StatusCancelled {
		t.Fatalf("conflict must report the committed status, got %+v", it)
	}

	// The cancellation must survive: no resurrection, the slot stays free.
	current, err := repo.GetByID(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("final read failed: %v", err)
	}
	if current.Status != models.StatusCancelled || current.Active {
		t.Fatalf("cancelled appointment was overwritten: %+v", current)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	repo := newMemApptRepo()
	svc := newTestService(repo, nil)

	appt, err := svc.CreateAppointment(context.Background(), validInput())
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), appt.ID, models.StatusCompleted)
	var it InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("pending -> completed must be rejected, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	_, err = svc.UpdateStatus(context.Background(), appt.ID, models.StatusConfirmed)
	if !errors.As(err, &it) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}
