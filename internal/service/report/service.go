package report

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type ReportServiceImpl struct {
	branches  []string
	salesRepo sales.SalesRepository
}

func NewReportService(branches []string, salesRepo sales.SalesRepository) report.ReportService {
	return &ReportServiceImpl{
		branches:  branches,
		salesRepo: salesRepo,
	}
}

// GetMonthly implements report.ReportService.
func (s *ReportServiceImpl) GetMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}
	if !slices.Contains(s.branches, req.Branch) {
		return report.MonthlyReport{}, fmt.Errorf("%s: %w", req.Branch, staff.ErrUnknownBranch)
	}

	month, err := worktime.ParseMonth(req.Month)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	records, err := s.salesRepo.ListByMonth(ctx, req.Branch, req.Month)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list sales for %s %s: %w: %w", req.Branch, req.Month, database.ErrStorageUnavailable, err)
	}

	return BuildMonthly(req.Branch, month, records), nil
}

// ExportMonthly implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, req report.MonthlyReportRequest, format report.Format) (report.Export, error) {
	monthly, err := s.GetMonthly(ctx, req)
	if err != nil {
		return report.Export{}, err
	}

	filename := fmt.Sprintf("financial-%s-%s.%s", monthly.Branch, monthly.Month, format)

	var data []byte
	var contentType string
	switch format {
	case report.FormatXLSX:
		data, err = RenderXLSX(monthly)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case report.FormatPDF:
		data, err = RenderPDF(monthly)
		contentType = "application/pdf"
	default:
		return report.Export{}, fmt.Errorf("%q: %w", format, report.ErrUnsupportedFormat)
	}
	if err != nil {
		slog.Error("report export failed", "branch", monthly.Branch, "month", monthly.Month, "format", format, "error", err)
		return report.Export{}, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	return report.Export{Filename: filename, ContentType: contentType, Data: data}, nil
}
