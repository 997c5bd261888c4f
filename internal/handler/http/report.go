package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type ReportHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		now:           time.Now,
	}
}

// GetMonthly implements ReportHandler. format=xlsx or format=pdf downloads
// the report instead of returning JSON.
func (h *reportHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.now().Format(worktime.MonthLayout)
	}
	req := report.MonthlyReportRequest{Branch: chi.URLParam(r, "branch"), Month: month}

	format := report.Format(r.URL.Query().Get("format"))
	if format == "" || format == report.FormatJSON {
		monthly, err := h.reportService.GetMonthly(r.Context(), req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, monthly)
		return
	}

	export, err := h.reportService.ExportMonthly(r.Context(), req, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, export.Filename, export.ContentType, export.Data)
}
