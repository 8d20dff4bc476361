package models

// DayHours holds the open and close times for part of the week,
// as "HH:MM" strings (e.g. "09:00").
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// OperatingHours describes when a clinic is open. Weekday hours are always
// present; a nil Weekend means the clinic is closed on Saturday and Sunday.
type OperatingHours struct {
	Weekday DayHours  `bson:"weekday" json:"weekday"`
	Weekend *DayHours `bson:"weekend,omitempty" json:"weekend,omitempty"`
}

// AppointmentSettings configures slot generation for a clinic.
type AppointmentSettings struct {
	SlotDurationMinutes  int `bson:"slotDurationMinutes" json:"slotDurationMinutes"` // one of 15, 30, 45, 60
	MaxDailyAppointments int `bson:"maxDailyAppointments" json:"maxDailyAppointments"`
}

// Clinic represents a physical clinic offering in-person appointments
// and lab tests.
type Clinic struct {
	ID         string              `bson:"id" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Address    string              `bson:"address" json:"address"`
	Phone      string              `bson:"phone" json:"phone"`
	Email      string              `bson:"email,omitempty" json:"email,omitempty"`
	Doctors    []string            `bson:"doctors" json:"doctors"` // ordered doctor IDs affiliated with this clinic
	Facilities []string            `bson:"facilities,omitempty" json:"facilities,omitempty"`
	Hours      OperatingHours      `bson:"hours" json:"hours"`
	Settings   AppointmentSettings `bson:"settings" json:"settings"`
	ImageURL   string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active     bool                `bson:"active" json:"active"`
}

// HoursFor returns the operating hours applying on the given weekday index
// (time.Weekday: Sunday==0, Saturday==6). The second return is false when
// the clinic is closed that day.
func (c *Clinic) HoursFor(weekday int) (DayHours, bool) {
	if weekday == 0 || weekday == 6 {
		if c.Hours.Weekend == nil {
			return DayHours{}, false
		}
		return *c.Hours.Weekend, true
	}
	return c.Hours.Weekday, true
}

// HasDoctor reports whether the doctor is on the clinic's roster.
func (c *Clinic) HasDoctor(doctorID string) bool {
	for _, id := range c.Doctors {
		if id == doctorID {
			return true
		}
	}
	return false
}
