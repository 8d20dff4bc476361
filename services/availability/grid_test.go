package availability

import (
	"errors"
	"testing"

	"medicore/utils"
)

func TestGenerateGrid(t *testing.T) {
	slots, err := GenerateGrid("09:00", "12:00", 30, 10)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "09:30" {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
	if slots[5].Start != "11:30" || slots[5].End != "12:00" {
		t.Fatalf("unexpected last slot: %+v", slots[5])
	}
}

func TestGenerateGridContiguous(t *testing.T) {
	slots, err := GenerateGrid("08:00", "17:00", 45, 0)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start != slots[i-1].End {
			t.Fatalf("slot %d starts at %s but previous ends at %s", i, slots[i].Start, slots[i-1].End)
		}
	}
}

func TestGenerateGridDiscardsPartialTrailingSlot(t *testing.T) {
	// 09:00-10:15 at 30 minutes fits two whole slots; the trailing 15
	// minutes are discarded.
	slots, err := GenerateGrid("09:00", "10:15", 30, 0)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].End != "10:00" {
		t.Fatalf("last slot must end at 10:00, got %s", slots[1].End)
	}
}

func TestGenerateGridWindowTooShort(t *testing.T) {
	slots, err := GenerateGrid("09:00", "09:20", 30, 0)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for a window shorter than one duration, got %d", len(slots))
	}
}

func TestGenerateGridCap(t *testing.T) {
	slots, err := GenerateGrid("09:00", "17:00", 30, 3)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected cap of 3 slots, got %d", len(slots))
	}
}

func TestGenerateGridRejectsMalformedHours(t *testing.T) {
	_, err := GenerateGrid("9:00", "12:00", 30, 0)
	var fe utils.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for unpadded hour, got %v", err)
	}
}

func TestGenerateSlotsMarksOverlaps(t *testing.T) {
	// A booking at 09:15-09:45 straddles two grid slots; both must be
	// reported unavailable.
	booked := []Interval{{555, 585}}
	slots, err := GenerateSlots("09:00", "10:30", 30, 0, booked)
	if err != nil {
		t.Fatalf("GenerateSlots failed: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].Available || slots[1].Available {
		t.Fatalf("slots straddled by the booking must be unavailable: %+v", slots[:2])
	}
	if !slots[2].Available {
		t.Fatalf("slot past the booking must be available: %+v", slots[2])
	}
}

func TestGenerateSlotsCapCountsAvailableOnly(t *testing.T) {
	// One booked slot at the head of the day; with a cap of 2 the walk
	// continues past it until two free slots are out.
	booked := []Interval{{540, 570}}
	slots, err := GenerateSlots("09:00", "17:00", 30, 2, booked)
	if err != nil {
		t.Fatalf("GenerateSlots failed: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots (1 booked + 2 free), got %d", len(slots))
	}
	free := 0
	for _, s := range slots {
		if s.Available {
			free++
		}
	}
	if free != 2 {
		t.Fatalf("expected exactly 2 available slots, got %d", free)
	}
}

func TestGenerateSlotsFullyBookedDay(t *testing.T) {
	booked := []Interval{{540, 720}}
	slots, err := GenerateSlots("09:00", "12:00", 30, 4, booked)
	if err != nil {
		t.Fatalf("GenerateSlots failed: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected the full 6-slot grid, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Available {
			t.Fatalf("no slot should be available on a fully booked day: %+v", s)
		}
	}
}
