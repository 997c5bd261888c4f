package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/sodeng/branchops-backend-go/internal/domain/roster"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Checked before the sentinels below: its failures unwrap to storage errors.
	var partial *attendance.PartialWriteError
	if errors.As(err, &partial) {
		PartialFailure(w, "Some changes were not saved", partial.Targets())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, attendance.ErrAdminRequired), errors.Is(err, auth.ErrAdminPrivilege):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, staff.ErrUnknownBranch):
		NotFound(w, "Branch not found")
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrShiftNotFound):
		NotFound(w, "Shift record not found")
	case errors.Is(err, sales.ErrSalesNotFound):
		NotFound(w, "Sales record not found")

	// Conflicts
	case errors.Is(err, staff.ErrStaffNameExists), errors.Is(err, auth.ErrEmailExists):
		Conflict(w, "Staff name already registered")
	case errors.Is(err, attendance.ErrShiftConfirmed), errors.Is(err, attendance.ErrShiftOff):
		Conflict(w, err.Error())

	// Malformed input
	case errors.Is(err, worktime.ErrInvalidTimeFormat),
		errors.Is(err, worktime.ErrInvalidDateFormat),
		errors.Is(err, worktime.ErrInvalidMonth),
		errors.Is(err, worktime.ErrInvalidWeek),
		errors.Is(err, attendance.ErrUnknownAction),
		errors.Is(err, staff.ErrInvalidRole),
		errors.Is(err, staff.ErrAdminNotRosterable),
		errors.Is(err, roster.ErrCellOutsideWeek),
		errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrMissingCompensationProfile), errors.Is(err, payroll.ErrInvalidCompensationProfile):
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "COMPENSATION_PROFILE",
				Message: err.Error(),
			},
		})

	case errors.Is(err, database.ErrStorageUnavailable):
		slog.Error("Storage unavailable", "error", err)
		ServiceUnavailable(w, "Storage is unavailable, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
