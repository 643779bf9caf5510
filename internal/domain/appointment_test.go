package domain

import (
	"testing"
	"time"
)

func TestAppointmentEndTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	a := Appointment{AppointmentTime: start, DurationMinutes: 60}

	want := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	if !a.EndTime().Equal(want) {
		t.Fatalf("end time = %v, want %v", a.EndTime(), want)
	}
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"contained", at(10, 0), at(11, 0), at(10, 15), at(10, 45), true},
		{"one minute overlap at end", at(10, 0), at(11, 0), at(10, 59), at(11, 30), true},
		{"one minute overlap at start", at(10, 0), at(11, 0), at(9, 30), at(10, 1), true},
		{"back to back after", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"back to back before", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(10, 0), at(11, 0), at(13, 0), at(14, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
			// the test is symmetric
			if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps(%v, %v, %v, %v) = %v, want %v", tc.s2, tc.e2, tc.s1, tc.e1, got, tc.want)
			}
		})
	}
}

func TestOverlapsIntervalUsesHalfOpenInterval(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	a := Appointment{AppointmentTime: start, DurationMinutes: 60}

	if a.OverlapsInterval(start.Add(60*time.Minute), start.Add(90*time.Minute)) {
		t.Fatalf("appointment ending at 11:00 must not overlap a proposal starting at 11:00")
	}
	if !a.OverlapsInterval(start.Add(59*time.Minute), start.Add(90*time.Minute)) {
		t.Fatalf("appointment ending at 11:00 must overlap a proposal starting at 10:59")
	}
}
