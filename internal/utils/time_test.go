package utils

import "testing"

func TestNextDay(t *testing.T) {
	tests := []struct {
		name string
		day  string
		want string
	}{
		{name: "mid-month", day: "2025-03-10", want: "2025-03-11"},
		{name: "month boundary", day: "2025-03-31", want: "2025-04-01"},
		{name: "year boundary", day: "2025-12-31", want: "2026-01-01"},
		{name: "leap day", day: "2024-02-28", want: "2024-02-29"},
		{name: "non-leap february", day: "2025-02-28", want: "2025-03-01"},
		{name: "invalid input", day: "not-a-day", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDay(tt.day); got != tt.want {
				t.Errorf("NextDay(%q) = %q, want %q", tt.day, got, tt.want)
			}
		})
	}
}

func TestIsNextDay(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "consecutive", a: "2025-03-10", b: "2025-03-11", want: true},
		{name: "gap", a: "2025-03-10", b: "2025-03-12", want: false},
		{name: "same day", a: "2025-03-10", b: "2025-03-10", want: false},
		{name: "reversed", a: "2025-03-11", b: "2025-03-10", want: false},
		{name: "empty first", a: "", b: "2025-03-10", want: false},
		{name: "empty second", a: "2025-03-10", b: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNextDay(tt.a, tt.b); got != tt.want {
				t.Errorf("IsNextDay(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2025-03-10", "2025-03-15"); got != 5 {
		t.Errorf("DaysBetween() = %d, want 5", got)
	}
	if got := DaysBetween("2025-03-15", "2025-03-10"); got != -5 {
		t.Errorf("DaysBetween() = %d, want -5", got)
	}
	if got := DaysBetween("bad", "2025-03-10"); got != 0 {
		t.Errorf("DaysBetween() = %d, want 0 for invalid input", got)
	}
}

func TestValidDay(t *testing.T) {
	if !ValidDay("2025-03-10") {
		t.Error("ValidDay(2025-03-10) = false, want true")
	}
	if ValidDay("03/10/2025") {
		t.Error("ValidDay(03/10/2025) = true, want false")
	}
	if ValidDay("") {
		t.Error("ValidDay(\"\") = true, want false")
	}
}
