package availability

// Interval is a half-open time window [Start, End) in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two intervals share any point in time under
// half-open semantics: touching endpoints (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// IsBooked reports whether the candidate overlaps any booked interval.
func IsBooked(candidate Interval, booked []Interval) bool {
	for _, b := range booked {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}
