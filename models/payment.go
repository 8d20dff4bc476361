package models

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

// Payment is the payment sub-record embedded in appointments, lab
// bookings and orders.
type Payment struct {
	Method          string  `bson:"method" json:"method"` // e.g. "card", "cash"
	Status          string  `bson:"status" json:"status"`
	Amount          float64 `bson:"amount" json:"amount"`
	Currency        string  `bson:"currency" json:"currency"`
	StripeIntentID  string  `bson:"stripeIntentId,omitempty" json:"stripeIntentId,omitempty"`
	TransactionNote string  `bson:"transactionNote,omitempty" json:"transactionNote,omitempty"`
}
