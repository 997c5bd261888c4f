package report

import "context"

type ReportService interface {
	// GetMonthly sums a branch's daily sales records for one month.
	GetMonthly(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// ExportMonthly renders the monthly report as a spreadsheet or PDF.
	ExportMonthly(ctx context.Context, req MonthlyReportRequest, format Format) (Export, error)
}
