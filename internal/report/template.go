package report

import (
	"fmt"
	"strings"

	"github.com/atempo/attendance-tracker/internal/model"
)

// Vars builds the substitution variables available to template text for
// one generated report.
func Vars(rep *Report, employee string) map[string]string {
	vars := map[string]string{
		"employee":     employee,
		"period_start": rep.Period.Start,
		"period_end":   rep.Period.End,
		"total_hours":  fmt.Sprintf("%.1f", rep.TotalHours()),
		"generated_at": rep.GeneratedAt.Format("2006-01-02 15:04"),
	}
	if rep.Comparison != nil {
		vars["comparison_start"] = rep.Comparison.Start
		vars["comparison_end"] = rep.Comparison.End
	}
	return vars
}

// Substitute replaces every {{name}} placeholder in s with its value
// from vars. Unknown placeholders are left as-is so a template typo is
// visible in the output instead of silently vanishing.
func Substitute(s string, vars map[string]string) string {
	for name, value := range vars {
		s = strings.ReplaceAll(s, "{{"+name+"}}", value)
	}
	return s
}

// RenderedTemplate is a template with its text fields substituted for
// one report.
type RenderedTemplate struct {
	Title    string
	Header   string
	Footer   string
	LogoPath string
}

// ApplyTemplate substitutes a template's text fields. A nil template
// yields a plain default title. A template with ShowComparison unset
// strips the report's comparison data, so the renderers emit the plain
// column set even when the request carried a comparison range.
func ApplyTemplate(tpl *model.ReportTemplate, rep *Report, employee string) RenderedTemplate {
	if tpl != nil && !tpl.ShowComparison {
		rep.stripComparison()
	}
	vars := Vars(rep, employee)
	if tpl == nil {
		return RenderedTemplate{
			Title: Substitute("Hours {{period_start}} – {{period_end}}", vars),
		}
	}
	return RenderedTemplate{
		Title:    Substitute(tpl.Title, vars),
		Header:   Substitute(tpl.Header, vars),
		Footer:   Substitute(tpl.Footer, vars),
		LogoPath: tpl.LogoPath,
	}
}
