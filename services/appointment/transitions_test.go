package appointment

import (
	"testing"

	"medicore/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusNoShow},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{models.StatusPending, models.StatusCompleted},
		{models.StatusPending, models.StatusNoShow},
		{models.StatusConfirmed, models.StatusPending},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusCancelled, models.StatusConfirmed},
		{models.StatusNoShow, models.StatusConfirmed},
		{models.StatusPending, models.StatusPending},
		{"bogus", models.StatusConfirmed},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}
