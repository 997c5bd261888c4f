package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", validator.ValidationErrors{{Field: "date", Message: "required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"non admin toggle", &attendance.RowError{StaffID: "s1", Err: attendance.ErrAdminRequired}, http.StatusForbidden, "FORBIDDEN"},
		{"confirmed row", &attendance.RowError{StaffID: "s1", Err: attendance.ErrShiftConfirmed}, http.StatusConflict, "CONFLICT"},
		{"unknown staff row", &attendance.RowError{StaffID: "s9", Err: staff.ErrStaffNotFound}, http.StatusNotFound, "NOT_FOUND"},
		{"bad clock", fmt.Errorf("edit: %w", worktime.ErrInvalidTimeFormat), http.StatusBadRequest, "BAD_REQUEST"},
		{"storage", fmt.Errorf("load: %w: %w", database.ErrStorageUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_PartialWrite(t *testing.T) {
	err := &attendance.PartialWriteError{Failures: []attendance.WriteFailure{
		{Target: "shift:s1", Err: fmt.Errorf("put: %w", database.ErrStorageUnavailable)},
		{Target: "sales:2024-06-03", Err: errors.New("timeout")},
	}}

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PARTIAL_WRITE_FAILURE", body.Error.Code)
	assert.Equal(t, []string{"shift:s1", "sales:2024-06-03"}, body.Error.Failed)
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "financial-TELOK-2024-06.pdf", "application/pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="financial-TELOK-2024-06.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
