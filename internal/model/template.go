package model

// Report kinds, matching the selectable report types in the remote store.
const (
	ReportByBusiness     = "business"
	ReportByDay          = "daily"
	ReportByWeek         = "weekly"
	ReportWeekByBusiness = "weekly_business"
	ReportMonthlySummary = "monthly"
	ReportComparison     = "comparison"
	ReportDetailed       = "detailed"
)

// ReportTemplate drives the rendered header/footer text of an exported
// report. Title, Header, and Footer may contain {{variable}} placeholders
// substituted at render time.
type ReportTemplate struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Kind     string `json:"kind" db:"kind"`
	Title    string `json:"title" db:"title"`
	Header   string `json:"header" db:"header"`
	Footer   string `json:"footer" db:"footer"`
	LogoPath string `json:"logo_path" db:"logo_path"`

	// ShowComparison includes the comparison columns when a comparison
	// range is present on the request.
	ShowComparison bool `json:"show_comparison" db:"show_comparison"`
}
