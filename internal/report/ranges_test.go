package report

import (
	"reflect"
	"testing"
)

func TestDaysInRange(t *testing.T) {
	days, err := DaysInRange("2026-08-30", "2026-09-02")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-08-30", "2026-08-31", "2026-09-01", "2026-09-02"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("DaysInRange = %v, want %v", days, want)
	}
}

func TestDaysInRangeSingleDay(t *testing.T) {
	days, err := DaysInRange("2026-08-03", "2026-08-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0] != "2026-08-03" {
		t.Errorf("DaysInRange = %v, want single day", days)
	}
}

func TestDaysInRangeBadDate(t *testing.T) {
	if _, err := DaysInRange("08/03/2026", "2026-08-04"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestWeeksInRangeClampsFinalWindow(t *testing.T) {
	weeks, err := WeeksInRange("2026-08-01", "2026-08-10")
	if err != nil {
		t.Fatal(err)
	}
	want := []DateRange{
		{Start: "2026-08-01", End: "2026-08-07"},
		{Start: "2026-08-08", End: "2026-08-10"},
	}
	if !reflect.DeepEqual(weeks, want) {
		t.Errorf("WeeksInRange = %v, want %v", weeks, want)
	}
}

func TestMonthsInRangeClampsBounds(t *testing.T) {
	months, err := MonthsInRange("2026-07-15", "2026-09-10")
	if err != nil {
		t.Fatal(err)
	}
	want := []DateRange{
		{Start: "2026-07-15", End: "2026-07-31"},
		{Start: "2026-08-01", End: "2026-08-31"},
		{Start: "2026-09-01", End: "2026-09-10"},
	}
	if !reflect.DeepEqual(months, want) {
		t.Errorf("MonthsInRange = %v, want %v", months, want)
	}
}

func TestAlignComparison(t *testing.T) {
	main := []DateRange{
		{Start: "2026-08-01", End: "2026-08-07"},
		{Start: "2026-08-08", End: "2026-08-14"},
		{Start: "2026-08-15", End: "2026-08-21"},
	}
	comparison := []DateRange{
		{Start: "2026-07-01", End: "2026-07-07"},
		{Start: "2026-07-08", End: "2026-07-14"},
	}

	aligned := AlignComparison(main, comparison)
	if len(aligned) != 3 {
		t.Fatalf("aligned length = %d, want 3", len(aligned))
	}
	if aligned[0] == nil || aligned[0].Start != "2026-07-01" {
		t.Errorf("aligned[0] = %+v, want first comparison window", aligned[0])
	}
	if aligned[2] != nil {
		t.Error("main partitions past the comparison must map to nil")
	}
}
