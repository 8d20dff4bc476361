package models

import "time"

// Appointment types.
const (
	AppointmentInPerson = "in_person"
	AppointmentTelecon  = "teleconsultation"
)

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Appointment represents a booked consultation with a doctor.
// ClinicID is required only for in-person appointments.
//
// Active mirrors "status != cancelled" and is the scope key of the partial
// unique index guarding against double-booking; it is flipped to false
// exactly once, when the appointment is cancelled.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patientId" json:"patientId"`
	DoctorID  string    `bson:"doctorId" json:"doctorId"`
	ClinicID  string    `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Date      string    `bson:"date" json:"date"` // "2006-01-02"
	TimeSlot  TimeSlot  `bson:"timeSlot" json:"timeSlot"`
	Type      string    `bson:"type" json:"type"`
	Status    string    `bson:"status" json:"status"`
	Reason    string    `bson:"reason" json:"reason"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Payment   *Payment  `bson:"payment,omitempty" json:"payment,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateAppointmentInput is the payload accepted by the booking service.
type CreateAppointmentInput struct {
	PatientID string   `json:"patientId" binding:"required"`
	DoctorID  string   `json:"doctorId" binding:"required"`
	ClinicID  string   `json:"clinicId"`
	Date      string   `json:"date" binding:"required"`
	TimeSlot  TimeSlot `json:"timeSlot" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Reason    string   `json:"reason" binding:"required"`
	Notes     string   `json:"notes"`
	Payment   *Payment `json:"payment"`
}
