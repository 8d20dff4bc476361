package utils

import (
	"errors"
	"testing"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToMinutesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9:00", "09:0", "24:00", "12:60", "ab:cd", "09-00", "09:00:00"} {
		_, err := ToMinutes(in)
		if err == nil {
			t.Fatalf("ToMinutes(%q) accepted malformed input", in)
		}
		var fe FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("ToMinutes(%q) returned %T, want FormatError", in, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		got, err := ToMinutes(ToHHMM(m))
		if err != nil {
			t.Fatalf("round trip %d error: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip %d = %d", m, got)
		}
	}
}
