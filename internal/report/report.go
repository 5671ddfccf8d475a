package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Gateway is the slice of the remote client the generator reads through.
// Reports always query the remote store so exported numbers are
// authoritative; the local cache is never consulted here.
type Gateway interface {
	SelectBusinessShifts(ctx context.Context, businessID, from, to string) ([]model.Shift, error)
}

// Request describes one report to generate.
type Request struct {
	Kind        string
	Range       DateRange
	Comparison  *DateRange
	BusinessIDs []string
}

// Row is one aggregated line of a report. Comparison fields are nil when
// the request carries no comparison range (or the aligned comparison
// partition does not exist).
type Row struct {
	Label           string
	BusinessID      string
	BusinessName    string
	Hours           float64
	ComparisonHours *float64
	Difference      *float64
	PercentChange   *float64
}

// DetailRow is one shift line of a detailed report.
type DetailRow struct {
	Date         string
	BusinessName string
	CheckIn      string
	CheckOut     string
	Hours        float64
	Note         string
}

// Report is the generated result handed to the renderers.
type Report struct {
	Kind        string
	Period      DateRange
	Comparison  *DateRange
	Rows        []Row
	Details     []DetailRow
	GeneratedAt time.Time
}

// TotalHours sums the aggregated rows.
func (r Report) TotalHours() float64 {
	var total float64
	for _, row := range r.Rows {
		total += row.Hours
	}
	for _, d := range r.Details {
		total += d.Hours
	}
	return total
}

// Generator produces reports from remote shift data.
type Generator struct {
	gateway Gateway
}

// NewGenerator creates a Generator reading through gw.
func NewGenerator(gw Gateway) *Generator {
	return &Generator{gateway: gw}
}

// Generate builds the requested report over the given businesses.
// Unknown kinds fall back to the per-business report.
func (g *Generator) Generate(ctx context.Context, req Request, businesses []model.Business) (*Report, error) {
	byID := make(map[string]model.Business, len(businesses))
	for _, b := range businesses {
		byID[b.ID] = b
	}

	rep := &Report{
		Kind:        req.Kind,
		Period:      req.Range,
		Comparison:  req.Comparison,
		GeneratedAt: time.Now(),
	}

	var err error
	switch req.Kind {
	case model.ReportByDay:
		rep.Rows, err = g.byPartition(ctx, req, partitionDays)
	case model.ReportByWeek:
		rep.Rows, err = g.byPartition(ctx, req, partitionWeeks)
	case model.ReportMonthlySummary:
		rep.Rows, err = g.byPartition(ctx, req, partitionMonths)
	case model.ReportWeekByBusiness:
		rep.Rows, err = g.weekByBusiness(ctx, req, byID)
	case model.ReportComparison:
		if req.Comparison == nil {
			return nil, fmt.Errorf("comparison report requires a comparison range")
		}
		rep.Rows, err = g.byBusiness(ctx, req, byID)
	case model.ReportDetailed:
		rep.Details, err = g.detailed(ctx, req, byID)
	default:
		rep.Rows, err = g.byBusiness(ctx, req, byID)
	}
	if err != nil {
		return nil, err
	}

	return rep, nil
}

// fetch pulls each business's shifts for a range.
func (g *Generator) fetch(ctx context.Context, businessIDs []string, r DateRange) (map[string][]model.Shift, error) {
	out := make(map[string][]model.Shift, len(businessIDs))
	for _, id := range businessIDs {
		shifts, err := g.gateway.SelectBusinessShifts(ctx, id, r.Start, r.End)
		if err != nil {
			return nil, fmt.Errorf("fetching shifts for business %s: %w", id, err)
		}
		out[id] = shifts
	}
	return out, nil
}

// byBusiness totals hours per business over the whole range, optionally
// with comparison columns, sorted by hours descending.
func (g *Generator) byBusiness(ctx context.Context, req Request, byID map[string]model.Business) ([]Row, error) {
	current, err := g.fetch(ctx, req.BusinessIDs, req.Range)
	if err != nil {
		return nil, err
	}

	var previous map[string][]model.Shift
	if req.Comparison != nil {
		previous, err = g.fetch(ctx, req.BusinessIDs, *req.Comparison)
		if err != nil {
			return nil, err
		}
	}

	var rows []Row
	for _, id := range req.BusinessIDs {
		b, ok := byID[id]
		if !ok {
			continue
		}
		row := Row{
			Label:        b.Name,
			BusinessID:   id,
			BusinessName: b.Name,
			Hours:        TotalHours(current[id]),
		}
		if previous != nil {
			row.setComparison(TotalHours(previous[id]))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Hours > rows[j].Hours })
	return rows, nil
}

// partitioner splits a range into labeled sub-ranges.
type partitioner func(r DateRange) ([]DateRange, []string, error)

func partitionDays(r DateRange) ([]DateRange, []string, error) {
	days, err := DaysInRange(r.Start, r.End)
	if err != nil {
		return nil, nil, err
	}
	ranges := make([]DateRange, len(days))
	for i, d := range days {
		ranges[i] = DateRange{Start: d, End: d}
	}
	return ranges, days, nil
}

func partitionWeeks(r DateRange) ([]DateRange, []string, error) {
	weeks, err := WeeksInRange(r.Start, r.End)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Start + " – " + w.End
	}
	return weeks, labels, nil
}

func partitionMonths(r DateRange) ([]DateRange, []string, error) {
	months, err := MonthsInRange(r.Start, r.End)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, len(months))
	for i, m := range months {
		t, err := parseDate(m.Start)
		if err != nil {
			return nil, nil, err
		}
		labels[i] = t.Format("January 2006")
	}
	return months, labels, nil
}

// byPartition totals hours across all selected businesses per sub-range,
// aligning comparison partitions index-wise when present.
func (g *Generator) byPartition(ctx context.Context, req Request, split partitioner) ([]Row, error) {
	parts, labels, err := split(req.Range)
	if err != nil {
		return nil, err
	}

	current, err := g.fetch(ctx, req.BusinessIDs, req.Range)
	if err != nil {
		return nil, err
	}

	var aligned []*DateRange
	var previous map[string][]model.Shift
	if req.Comparison != nil {
		prevParts, _, err := split(*req.Comparison)
		if err != nil {
			return nil, err
		}
		aligned = AlignComparison(parts, prevParts)
		previous, err = g.fetch(ctx, req.BusinessIDs, *req.Comparison)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]Row, 0, len(parts))
	for i, part := range parts {
		var hours float64
		for _, id := range req.BusinessIDs {
			hours += TotalHoursForRange(part.Start, part.End, current[id])
		}

		row := Row{Label: labels[i], Hours: hours}
		if aligned != nil && aligned[i] != nil {
			var prev float64
			for _, id := range req.BusinessIDs {
				prev += TotalHoursForRange(aligned[i].Start, aligned[i].End, previous[id])
			}
			row.setComparison(prev)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// weekByBusiness produces one row per (week, business) pair.
func (g *Generator) weekByBusiness(ctx context.Context, req Request, byID map[string]model.Business) ([]Row, error) {
	weeks, err := WeeksInRange(req.Range.Start, req.Range.End)
	if err != nil {
		return nil, err
	}

	current, err := g.fetch(ctx, req.BusinessIDs, req.Range)
	if err != nil {
		return nil, err
	}

	var aligned []*DateRange
	var previous map[string][]model.Shift
	if req.Comparison != nil {
		prevWeeks, err := WeeksInRange(req.Comparison.Start, req.Comparison.End)
		if err != nil {
			return nil, err
		}
		aligned = AlignComparison(weeks, prevWeeks)
		previous, err = g.fetch(ctx, req.BusinessIDs, *req.Comparison)
		if err != nil {
			return nil, err
		}
	}

	var rows []Row
	for i, week := range weeks {
		for _, id := range req.BusinessIDs {
			b, ok := byID[id]
			if !ok {
				continue
			}
			row := Row{
				Label:        week.Start + " – " + week.End,
				BusinessID:   id,
				BusinessName: b.Name,
				Hours:        TotalHoursForRange(week.Start, week.End, current[id]),
			}
			if aligned != nil && aligned[i] != nil {
				row.setComparison(TotalHoursForRange(aligned[i].Start, aligned[i].End, previous[id]))
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// detailed produces one row per complete shift, ordered by date then
// business name.
func (g *Generator) detailed(ctx context.Context, req Request, byID map[string]model.Business) ([]DetailRow, error) {
	current, err := g.fetch(ctx, req.BusinessIDs, req.Range)
	if err != nil {
		return nil, err
	}

	var details []DetailRow
	for _, id := range req.BusinessIDs {
		b, ok := byID[id]
		if !ok {
			continue
		}
		for _, s := range current[id] {
			details = append(details, DetailRow{
				Date:         s.Date,
				BusinessName: b.Name,
				CheckIn:      s.CheckIn,
				CheckOut:     s.CheckOut,
				Hours:        CalculateHours(s.CheckIn, s.CheckOut),
				Note:         s.Note,
			})
		}
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].Date != details[j].Date {
			return details[i].Date < details[j].Date
		}
		return details[i].BusinessName < details[j].BusinessName
	})
	return details, nil
}

// stripComparison drops the comparison range and every row's comparison
// columns.
func (r *Report) stripComparison() {
	r.Comparison = nil
	for i := range r.Rows {
		r.Rows[i].ComparisonHours = nil
		r.Rows[i].Difference = nil
		r.Rows[i].PercentChange = nil
	}
}

// setComparison fills the comparison columns from a previous-period total.
func (r *Row) setComparison(previous float64) {
	diff := r.Hours - previous
	pct := PercentChange(r.Hours, previous)
	r.ComparisonHours = &previous
	r.Difference = &diff
	r.PercentChange = &pct
}
