package models

// Doctor represents a practitioner bookable for appointments.
type Doctor struct {
	ID             string   `bson:"id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	Specialization string   `bson:"specialization" json:"specialization"`
	ClinicIDs      []string `bson:"clinicIds,omitempty" json:"clinicIds,omitempty"`
	ConsultFee     float64  `bson:"consultFee" json:"consultFee"`
	Email          string   `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string   `bson:"phone,omitempty" json:"phone,omitempty"`
	ImageURL       string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active         bool     `bson:"active" json:"active"`
}
