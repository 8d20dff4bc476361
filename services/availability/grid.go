package availability

import (
	"medicore/models"
	"medicore/utils"
)

// GenerateGrid emits the fixed-duration candidate windows between open and
// close, walking a fixed grid: each slot starts where the previous one
// ended. A window shorter than one duration yields an empty list, not an
// error. maxSlots caps the number of candidates; maxSlots <= 0 means no cap.
func GenerateGrid(open, close string, duration, maxSlots int) ([]models.TimeSlot, error) {
	openMin, err := utils.ToMinutes(open)
	if err != nil {
		return nil, err
	}
	closeMin, err := utils.ToMinutes(close)
	if err != nil {
		return nil, err
	}

	var slots []models.TimeSlot
	for cursor := openMin; cursor+duration <= closeMin; cursor += duration {
		if maxSlots > 0 && len(slots) >= maxSlots {
			break
		}
		slots = append(slots, models.TimeSlot{
			Start: utils.ToHHMM(cursor),
			End:   utils.ToHHMM(cursor + duration),
		})
	}
	return slots, nil
}

// GenerateSlots walks the same grid and annotates each candidate with its
// booking state. maxAvailable caps the count of *available* slots, not the
// total: the walk stops once that many free slots have been emitted, so
// booked slots never consume the daily budget.
func GenerateSlots(open, close string, duration, maxAvailable int, booked []Interval) ([]models.SlotAvailability, error) {
	openMin, err := utils.ToMinutes(open)
	if err != nil {
		return nil, err
	}
	closeMin, err := utils.ToMinutes(close)
	if err != nil {
		return nil, err
	}

	var slots []models.SlotAvailability
	available := 0
	for cursor := openMin; cursor+duration <= closeMin; cursor += duration {
		if maxAvailable > 0 && available >= maxAvailable {
			break
		}
		candidate := Interval{Start: cursor, End: cursor + duration}
		free := !IsBooked(candidate, booked)
		if free {
			available++
		}
		slots = append(slots, models.SlotAvailability{
			Start:     utils.ToHHMM(candidate.Start),
			End:       utils.ToHHMM(candidate.End),
			Available: free,
		})
	}
	return slots, nil
}
