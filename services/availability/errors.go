package availability

import (
	"fmt"

	"medicore/models"
)

// NotFoundError signals a missing clinic, doctor or appointment.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ClosedError signals that the clinic does not operate on the requested day.
type ClosedError struct {
	ClinicID string
	Date     string
}

func (e ClosedError) Error() string {
	return fmt.Sprintf("clinic %s is closed on %s", e.ClinicID, e.Date)
}

// SlotUnavailableError signals that the requested slot conflicts with an
// existing booking. Persistence-level duplicate-key losers are translated
// into this error at the service boundary.
type SlotUnavailableError struct {
	Date string
	Slot models.TimeSlot
}

func (e SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s-%s on %s is not available", e.Slot.Start, e.Slot.End, e.Date)
}

// InvalidDateError signals a calendar date not in "YYYY-MM-DD" form.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}
