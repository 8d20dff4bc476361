package models

import "time"

// LabTest is a catalog entry for a bookable lab test.
type LabTest struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Code   string  `bson:"code" json:"code"`
	Price  float64 `bson:"price" json:"price"`
	Active bool    `bson:"active" json:"active"`
}

// TestSnapshot freezes the catalog fields of a lab test at booking time,
// so historical bookings keep their original name/code/price even if the
// catalog later changes.
type TestSnapshot struct {
	Name  string  `bson:"name" json:"name"`
	Code  string  `bson:"code" json:"code"`
	Price float64 `bson:"price" json:"price"`
}

// LabTestBooking is a lab-test reservation, keyed by clinic+date+start
// rather than by doctor. Active plays the same role as on Appointment.
type LabTestBooking struct {
	ID        string       `bson:"id" json:"id"`
	PatientID string       `bson:"patientId" json:"patientId"`
	ClinicID  string       `bson:"clinicId" json:"clinicId"`
	TestID    string       `bson:"testId" json:"testId"`
	Test      TestSnapshot `bson:"test" json:"test"`
	Date      string       `bson:"date" json:"date"`
	TimeSlot  TimeSlot     `bson:"timeSlot" json:"timeSlot"`
	Status    string       `bson:"status" json:"status"`
	Payment   *Payment     `bson:"payment,omitempty" json:"payment,omitempty"`
	Active    bool         `bson:"active" json:"active"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

// BookLabTestInput is the payload accepted by the lab booking service.
type BookLabTestInput struct {
	PatientID string   `json:"patientId" binding:"required"`
	ClinicID  string   `json:"clinicId" binding:"required"`
	TestID    string   `json:"testId" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	TimeSlot  TimeSlot `json:"timeSlot" binding:"required"`
	Payment   *Payment `json:"payment"`
}
