package report

import (
	"math"
	"testing"

	"github.com/atempo/attendance-tracker/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateHours(t *testing.T) {
	tests := []struct {
		name     string
		in, out  string
		expected float64
	}{
		{"regular day", "09:00", "17:00", 8},
		{"half hour", "09:00", "09:30", 0.5},
		{"overnight wrap", "23:00", "01:00", 2},
		{"just before midnight", "22:15", "00:00", 1.75},
		{"zero length", "09:00", "09:00", 0},
		{"missing check-out", "09:00", "", 0},
		{"missing check-in", "", "17:00", 0},
		{"garbage input", "nine", "17:00", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateHours(tc.in, tc.out); !almostEqual(got, tc.expected) {
				t.Errorf("CalculateHours(%q, %q) = %v, want %v", tc.in, tc.out, got, tc.expected)
			}
		})
	}
}

func TestTotalHours(t *testing.T) {
	shifts := []model.Shift{
		{CheckIn: "09:00", CheckOut: "13:00"},
		{CheckIn: "14:00", CheckOut: "18:00"},
		{CheckIn: "19:00"}, // open shift contributes nothing
	}
	if got := TotalHours(shifts); !almostEqual(got, 8) {
		t.Errorf("TotalHours = %v, want 8", got)
	}
}

func TestTotalHoursForRange(t *testing.T) {
	shifts := []model.Shift{
		{Date: "2026-08-01", CheckIn: "09:00", CheckOut: "10:00"},
		{Date: "2026-08-05", CheckIn: "09:00", CheckOut: "11:00"},
		{Date: "2026-09-01", CheckIn: "09:00", CheckOut: "17:00"},
	}
	if got := TotalHoursForRange("2026-08-01", "2026-08-31", shifts); !almostEqual(got, 3) {
		t.Errorf("TotalHoursForRange = %v, want 3", got)
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(10, 8); !almostEqual(got, 25) {
		t.Errorf("PercentChange(10, 8) = %v, want 25", got)
	}
	if got := PercentChange(6, 8); !almostEqual(got, -25) {
		t.Errorf("PercentChange(6, 8) = %v, want -25", got)
	}
	if got := PercentChange(10, 0); got != 0 {
		t.Errorf("PercentChange with zero baseline = %v, want 0", got)
	}
}
