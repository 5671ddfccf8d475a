package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/report"
)

var reportFlags struct {
	kind        string
	from        string
	to          string
	compareFrom string
	compareTo   string
	businesses  []string
	format      string
	out         string
	template    string
	employee    string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an hours report from remote data",
	Long: `report aggregates shift hours over a date range and writes the
result as CSV, XLSX, or PDF. Report data always comes from the remote
store, so a network connection is required.

Types: business, daily, weekly, weekly_business, monthly, comparison,
detailed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		if _, err := e.requireUser(); err != nil {
			return err
		}

		ctx := cmd.Context()

		businesses, err := e.client.SelectBusinesses(ctx)
		if err != nil {
			return err
		}
		ids := reportFlags.businesses
		if len(ids) == 0 {
			for _, b := range businesses {
				if b.Active {
					ids = append(ids, b.ID)
				}
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no businesses to report on")
		}

		req := report.Request{
			Kind:        reportFlags.kind,
			Range:       report.DateRange{Start: reportFlags.from, End: reportFlags.to},
			BusinessIDs: ids,
		}
		if reportFlags.compareFrom != "" && reportFlags.compareTo != "" {
			req.Comparison = &report.DateRange{
				Start: reportFlags.compareFrom,
				End:   reportFlags.compareTo,
			}
		}

		rep, err := report.NewGenerator(e.client).Generate(ctx, req, businesses)
		if err != nil {
			return err
		}

		tpl, err := pickTemplate(cmd, e, reportFlags.template)
		if err != nil {
			return err
		}
		rendered := report.ApplyTemplate(tpl, rep, reportFlags.employee)

		out := reportFlags.out
		if out == "" {
			name := fmt.Sprintf("report-%s-%s.%s", reportFlags.from, reportFlags.to, reportFlags.format)
			out = filepath.Join(e.cfg.Report.OutputDir, name)
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		switch reportFlags.format {
		case "csv":
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := report.RenderCSV(f, rep); err != nil {
				return err
			}
		case "xlsx":
			if err := report.RenderXLSX(out, rep, rendered); err != nil {
				return err
			}
		case "pdf":
			if err := report.RenderPDF(out, rep, rendered); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want csv, xlsx, or pdf)", reportFlags.format)
		}

		log.Info("report written", "path", out, "rows", len(rep.Rows)+len(rep.Details), "total", rep.TotalHours())
		return nil
	},
}

// pickTemplate resolves --template against the remote template list. An
// empty name falls back to the configured default, and no match at all
// means built-in formatting.
func pickTemplate(cmd *cobra.Command, e *env, name string) (*model.ReportTemplate, error) {
	if name == "" {
		name = e.cfg.Report.Template
	}
	if name == "" {
		return nil, nil
	}

	templates, err := e.client.SelectReportTemplates(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if strings.EqualFold(templates[i].Name, name) {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("report template %q not found", name)
}

func init() {
	today := time.Now().Format("2006-01-02")
	monthStart := time.Now().Format("2006-01") + "-01"

	reportCmd.Flags().StringVar(&reportFlags.kind, "type", "business", "Report type")
	reportCmd.Flags().StringVar(&reportFlags.from, "from", monthStart, "Range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFlags.to, "to", today, "Range end (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFlags.compareFrom, "compare-from", "", "Comparison range start")
	reportCmd.Flags().StringVar(&reportFlags.compareTo, "compare-to", "", "Comparison range end")
	reportCmd.Flags().StringSliceVar(&reportFlags.businesses, "businesses", nil, "Business ids (default: all active)")
	reportCmd.Flags().StringVar(&reportFlags.format, "format", "csv", "Output format: csv, xlsx, pdf")
	reportCmd.Flags().StringVarP(&reportFlags.out, "out", "o", "", "Output file (default under report.output_dir)")
	reportCmd.Flags().StringVar(&reportFlags.template, "template", "", "Report template name")
	reportCmd.Flags().StringVar(&reportFlags.employee, "employee", "", "Employee name for template placeholders")
}
