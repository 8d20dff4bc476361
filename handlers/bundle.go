package handlers

// HandlerBundle aggregates the handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
	Clinic       *ClinicHandler
	Doctor       *DoctorHandler
	LabTest      *LabTestHandler
	Order        *OrderHandler
	Product      *ProductHandler
	User         *UserHandler
}
