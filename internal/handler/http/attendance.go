package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/middleware"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetDailySheet(w http.ResponseWriter, r *http.Request)
	SaveDailySheet(w http.ResponseWriter, r *http.Request)
	GetShiftRecord(w http.ResponseWriter, r *http.Request)
	RecomputePayroll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetDailySheet implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDailySheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.attendanceService.GetDailySheet(r.Context(), chi.URLParam(r, "branch"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sheet)
}

// SaveDailySheet implements AttendanceHandler.
func (h *attendanceHandlerImpl) SaveDailySheet(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveDailySheetRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("SaveDailySheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Branch = chi.URLParam(r, "branch")
	req.Date = chi.URLParam(r, "date")
	req.Actor = middleware.ActorFromContext(r.Context())

	sheet, err := h.attendanceService.SaveDailySheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Daily sheet saved", sheet)
}

// GetShiftRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetShiftRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetShiftRecord(r.Context(), chi.URLParam(r, "staffID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// RecomputePayroll implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecomputePayroll(w http.ResponseWriter, r *http.Request) {
	totals, err := h.attendanceService.RecomputePayroll(r.Context(), chi.URLParam(r, "branch"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll recomputed", totals)
}
