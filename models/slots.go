package models

// TimeSlot is a {start, end} window within a single day, both bounds
// as "HH:MM" strings. It is never persisted on its own: it is either a
// candidate emitted by the slot grid or the accepted window embedded in
// an appointment or lab booking.
type TimeSlot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// SlotAvailability is a candidate slot annotated with its booking state,
// as returned by the availability service.
type SlotAvailability struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}
