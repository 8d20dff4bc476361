package appointment

import "fmt"

// InvalidAssignmentError signals that the chosen doctor is not on the
// chosen clinic's roster.
type InvalidAssignmentError struct {
	DoctorID string
	ClinicID string
}

func (e InvalidAssignmentError) Error() string {
	return fmt.Sprintf("doctor %s is not affiliated with clinic %s", e.DoctorID, e.ClinicID)
}

// InvalidTransitionError signals a status change the appointment state
// machine does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}

// ValidationError signals a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
