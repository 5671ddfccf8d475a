package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atempo/attendance-tracker/internal/model"
)

// fakeGateway serves canned shifts keyed by business id, filtered to the
// requested range the way the real endpoint would.
type fakeGateway struct {
	shifts map[string][]model.Shift
	err    error
	calls  int
}

func (f *fakeGateway) SelectBusinessShifts(ctx context.Context, businessID, from, to string) ([]model.Shift, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Shift
	for _, s := range f.shifts[businessID] {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

var testBusinesses = []model.Business{
	{ID: "b1", Name: "Bakery", Active: true},
	{ID: "b2", Name: "Cafe", Active: true},
}

func TestGenerateByBusiness(t *testing.T) {
	gw := &fakeGateway{shifts: map[string][]model.Shift{
		"b1": {
			{Date: "2026-08-03", CheckIn: "09:00", CheckOut: "13:00"},
			{Date: "2026-08-04", CheckIn: "14:00", CheckOut: "18:00"},
		},
		"b2": {
			{Date: "2026-08-03", CheckIn: "10:00", CheckOut: "12:00"},
		},
	}}

	rep, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportByBusiness,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-31"},
		BusinessIDs: []string{"b1", "b2"},
	}, testBusinesses)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	// Sorted by hours descending.
	if rep.Rows[0].BusinessName != "Bakery" || rep.Rows[0].Hours != 8 {
		t.Errorf("rows[0] = %+v, want Bakery with 8h", rep.Rows[0])
	}
	if rep.Rows[1].BusinessName != "Cafe" || rep.Rows[1].Hours != 2 {
		t.Errorf("rows[1] = %+v, want Cafe with 2h", rep.Rows[1])
	}
	if total := rep.TotalHours(); total != 10 {
		t.Errorf("TotalHours = %v, want 10", total)
	}
}

func TestGenerateDailyPartitions(t *testing.T) {
	gw := &fakeGateway{shifts: map[string][]model.Shift{
		"b1": {
			{Date: "2026-08-01", CheckIn: "09:00", CheckOut: "10:00"},
			{Date: "2026-08-03", CheckIn: "09:00", CheckOut: "12:00"},
		},
	}}

	rep, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportByDay,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-03"},
		BusinessIDs: []string{"b1"},
	}, testBusinesses)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Rows) != 3 {
		t.Fatalf("rows = %d, want one per day", len(rep.Rows))
	}
	wantHours := []float64{1, 0, 3}
	for i, row := range rep.Rows {
		if row.Hours != wantHours[i] {
			t.Errorf("day %s hours = %v, want %v", row.Label, row.Hours, wantHours[i])
		}
	}
}

func TestGenerateComparison(t *testing.T) {
	gw := &fakeGateway{shifts: map[string][]model.Shift{
		"b1": {
			{Date: "2026-07-03", CheckIn: "09:00", CheckOut: "17:00"},
			{Date: "2026-08-03", CheckIn: "08:00", CheckOut: "18:00"},
		},
	}}

	rep, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportComparison,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-31"},
		Comparison:  &DateRange{Start: "2026-07-01", End: "2026-07-31"},
		BusinessIDs: []string{"b1"},
	}, testBusinesses)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rep.Rows))
	}
	row := rep.Rows[0]
	if row.Hours != 10 {
		t.Errorf("current hours = %v, want 10", row.Hours)
	}
	if row.ComparisonHours == nil || *row.ComparisonHours != 8 {
		t.Fatalf("comparison hours = %v, want 8", row.ComparisonHours)
	}
	if *row.Difference != 2 {
		t.Errorf("difference = %v, want 2", *row.Difference)
	}
	if *row.PercentChange != 25 {
		t.Errorf("percent change = %v, want 25", *row.PercentChange)
	}
}

func TestGenerateComparisonRequiresRange(t *testing.T) {
	gw := &fakeGateway{}
	_, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportComparison,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-31"},
		BusinessIDs: []string{"b1"},
	}, testBusinesses)
	if err == nil {
		t.Fatal("expected error without a comparison range")
	}
	if gw.calls != 0 {
		t.Errorf("gateway called %d times before validation", gw.calls)
	}
}

func TestGenerateDetailed(t *testing.T) {
	gw := &fakeGateway{shifts: map[string][]model.Shift{
		"b2": {{Date: "2026-08-03", CheckIn: "10:00", CheckOut: "12:00", Note: "training"}},
		"b1": {{Date: "2026-08-03", CheckIn: "09:00", CheckOut: "13:00"}},
	}}

	rep, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportDetailed,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-31"},
		BusinessIDs: []string{"b2", "b1"},
	}, testBusinesses)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Details) != 2 {
		t.Fatalf("details = %d, want 2", len(rep.Details))
	}
	// Same date sorts by business name.
	if rep.Details[0].BusinessName != "Bakery" || rep.Details[1].BusinessName != "Cafe" {
		t.Errorf("detail order = %s, %s; want Bakery, Cafe",
			rep.Details[0].BusinessName, rep.Details[1].BusinessName)
	}
	if rep.Details[1].Note != "training" {
		t.Errorf("note = %q, want training", rep.Details[1].Note)
	}
}

func TestGenerateGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("boom")}
	_, err := NewGenerator(gw).Generate(context.Background(), Request{
		Kind:        model.ReportByBusiness,
		Range:       DateRange{Start: "2026-08-01", End: "2026-08-31"},
		BusinessIDs: []string{"b1"},
	}, testBusinesses)
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestRenderCSV(t *testing.T) {
	prev := 8.0
	diff := 2.0
	pct := 25.0
	rep := &Report{
		Kind:       model.ReportComparison,
		Period:     DateRange{Start: "2026-08-01", End: "2026-08-31"},
		Comparison: &DateRange{Start: "2026-07-01", End: "2026-07-31"},
		Rows: []Row{{
			Label:           "Bakery",
			BusinessName:    "Bakery",
			Hours:           10,
			ComparisonHours: &prev,
			Difference:      &diff,
			PercentChange:   &pct,
		}},
	}

	var buf bytes.Buffer
	if err := RenderCSV(&buf, rep); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header plus one row", len(lines))
	}
	if !strings.Contains(lines[0], "Change %") {
		t.Errorf("header missing comparison columns: %s", lines[0])
	}
	if !strings.Contains(lines[1], "10.0") || !strings.Contains(lines[1], "25.0") {
		t.Errorf("row missing values: %s", lines[1])
	}
}

func TestApplyTemplateSubstitution(t *testing.T) {
	rep := &Report{
		Period: DateRange{Start: "2026-08-01", End: "2026-08-31"},
		Rows:   []Row{{Hours: 12.5}},
	}
	tpl := &model.ReportTemplate{
		Title:  "Hours for {{employee}}",
		Header: "{{period_start}} to {{period_end}}",
		Footer: "total {{total_hours}} / {{unknown}}",
	}

	rendered := ApplyTemplate(tpl, rep, "Dana")
	if rendered.Title != "Hours for Dana" {
		t.Errorf("title = %q", rendered.Title)
	}
	if rendered.Header != "2026-08-01 to 2026-08-31" {
		t.Errorf("header = %q", rendered.Header)
	}
	if !strings.Contains(rendered.Footer, "12.5") {
		t.Errorf("footer missing total: %q", rendered.Footer)
	}
	if !strings.Contains(rendered.Footer, "{{unknown}}") {
		t.Errorf("unknown placeholder must be left as-is: %q", rendered.Footer)
	}
}

func comparisonReport() *Report {
	prev := 8.0
	diff := 2.0
	pct := 25.0
	return &Report{
		Kind:       model.ReportComparison,
		Period:     DateRange{Start: "2026-08-01", End: "2026-08-31"},
		Comparison: &DateRange{Start: "2026-07-01", End: "2026-07-31"},
		Rows: []Row{{
			Label:           "Bakery",
			BusinessName:    "Bakery",
			Hours:           10,
			ComparisonHours: &prev,
			Difference:      &diff,
			PercentChange:   &pct,
		}},
	}
}

func TestApplyTemplateStripsComparisonWhenDisabled(t *testing.T) {
	rep := comparisonReport()
	tpl := &model.ReportTemplate{Title: "Hours", ShowComparison: false}

	ApplyTemplate(tpl, rep, "")

	if rep.Comparison != nil {
		t.Error("comparison range should be stripped")
	}
	if row := rep.Rows[0]; row.ComparisonHours != nil || row.Difference != nil || row.PercentChange != nil {
		t.Errorf("comparison columns should be stripped: %+v", row)
	}

	var buf bytes.Buffer
	if err := RenderCSV(&buf, rep); err != nil {
		t.Fatal(err)
	}
	if header := strings.SplitN(buf.String(), "\n", 2)[0]; strings.Contains(header, "Change %") {
		t.Errorf("header still carries comparison columns: %s", header)
	}
}

func TestApplyTemplateKeepsComparisonWhenEnabled(t *testing.T) {
	rep := comparisonReport()
	tpl := &model.ReportTemplate{Title: "Hours", ShowComparison: true}

	ApplyTemplate(tpl, rep, "")

	if rep.Comparison == nil || rep.Rows[0].ComparisonHours == nil {
		t.Error("comparison data should survive a template that shows it")
	}
}

func TestApplyTemplateDefault(t *testing.T) {
	rep := &Report{Period: DateRange{Start: "2026-08-01", End: "2026-08-31"}}
	rendered := ApplyTemplate(nil, rep, "")
	if !strings.Contains(rendered.Title, "2026-08-01") {
		t.Errorf("default title should mention the period: %q", rendered.Title)
	}
}
