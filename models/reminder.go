package models

// ReminderPayload is the task body enqueued when an appointment is
// confirmed; the worker delivers it shortly before the slot starts.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	DoctorID      string `json:"doctorId"`
	ClinicID      string `json:"clinicId,omitempty"`
	Date          string `json:"date"`
	Start         string `json:"start"`
}
