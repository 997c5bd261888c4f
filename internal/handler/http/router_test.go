package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/auth"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/report"
	"github.com/sodeng/branchops-backend-go/internal/domain/roster"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type stubAuthService struct {
	loginErr error
	events   []auth.SessionEvent
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if s.loginErr != nil {
		return auth.TokenResponse{}, s.loginErr
	}
	return auth.TokenResponse{
		AccessToken:           "access",
		AccessTokenExpiresIn:  time.Now().Add(time.Hour).Unix(),
		RefreshToken:          "refresh",
		RefreshTokenExpiresIn: time.Now().Add(24 * time.Hour).Unix(),
		Session:               auth.SessionResponse{Email: "amy@fakeemail.com", Branch: "TELOK"},
	}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

func (s *stubAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{AccessToken: "access-2"}, nil
}

func (s *stubAuthService) Me(ctx context.Context, email string) (auth.SessionResponse, error) {
	return auth.SessionResponse{Email: email}, nil
}

func (s *stubAuthService) ListNames(ctx context.Context) ([]string, error) {
	return []string{"AMY", "BOB"}, nil
}

func (s *stubAuthService) OnSessionChange(email string, fn func(auth.SessionEvent)) func() {
	for _, ev := range s.events {
		fn(ev)
	}
	return func() {}
}

type stubAttendanceService struct {
	saved   attendance.SaveDailySheetRequest
	saveErr error
}

func (s *stubAttendanceService) GetDailySheet(ctx context.Context, branch string, date string) (attendance.DailySheetResponse, error) {
	return attendance.DailySheetResponse{}, nil
}

func (s *stubAttendanceService) SaveDailySheet(ctx context.Context, req attendance.SaveDailySheetRequest) (attendance.DailySheetResponse, error) {
	s.saved = req
	return attendance.DailySheetResponse{}, s.saveErr
}

func (s *stubAttendanceService) GetShiftRecord(ctx context.Context, staffID string, date string) (attendance.ShiftRecordResponse, error) {
	return attendance.ShiftRecordResponse{}, staff.ErrStaffNotFound
}

func (s *stubAttendanceService) RecomputePayroll(ctx context.Context, branch string, date string) (payroll.DailyTotals, error) {
	return payroll.DailyTotals{}, nil
}

type stubRosterService struct{}

func (stubRosterService) GetWeek(ctx context.Context, branch string, year int, week int) (roster.WeekResponse, error) {
	return roster.WeekResponse{}, nil
}

func (stubRosterService) SaveWeek(ctx context.Context, req roster.SaveWeekRequest) (roster.WeekResponse, error) {
	return roster.WeekResponse{}, nil
}

type stubReportService struct {
	format report.Format
}

func (s *stubReportService) GetMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	return report.MonthlyReport{Branch: req.Branch, Month: req.Month}, nil
}

func (s *stubReportService) ExportMonthly(ctx context.Context, req report.MonthlyReportRequest, format report.Format) (report.Export, error) {
	s.format = format
	if format != report.FormatXLSX {
		return report.Export{}, report.ErrUnsupportedFormat
	}
	return report.Export{
		Filename:    "TELOK-" + req.Month + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("xlsx"),
	}, nil
}

type stubStaffService struct {
	listErr error
}

func (s *stubStaffService) List(ctx context.Context, branch string) ([]staff.StaffResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []staff.StaffResponse{{ID: "s-1", Name: "AMY", Branch: branch}}, nil
}

func (s *stubStaffService) Get(ctx context.Context, branch string, id string) (staff.StaffResponse, error) {
	return staff.StaffResponse{}, staff.ErrStaffNotFound
}

func (s *stubStaffService) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	return staff.StaffResponse{ID: "s-2", Name: strings.ToUpper(req.Name), Branch: req.Branch}, nil
}

func (s *stubStaffService) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	return staff.StaffResponse{ID: req.ID, Branch: req.CurrentBranch}, nil
}

func (s *stubStaffService) Delete(ctx context.Context, branch string, id string) error { return nil }

type routerFixture struct {
	router     *chi.Mux
	jwt        jwt.Service
	auth       *stubAuthService
	attendance *stubAttendanceService
	report     *stubReportService
	staff      *stubStaffService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		jwt:        jwt.NewJWTService(handlerTestSecret, "1h", "24h", false),
		auth:       &stubAuthService{},
		attendance: &stubAttendanceService{},
		report:     &stubReportService{},
		staff:      &stubStaffService{},
	}
	f.router = NewRouter(f.jwt, Handlers{
		Auth:       NewAuthHandler(f.jwt, f.auth),
		Attendance: NewAttendanceHandler(f.attendance),
		Roster:     NewRosterHandler(stubRosterService{}),
		Report:     NewReportHandler(f.report),
		Staff:      NewStaffHandler(f.staff),
	}, RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}, AppName: "branchops-test", Environment: "test"})
	return f
}

func (f *routerFixture) bearer(t *testing.T, session auth.Session) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(session)
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

var (
	adminSession = auth.Session{Email: "boss@fakeemail.com", Name: "BOSS", Branch: "TELOK", Role: staff.RoleAdmin, IsAdmin: true}
	hallSession  = auth.Session{Email: "amy@fakeemail.com", StaffID: "s-1", Name: "AMY", Branch: "TELOK", Role: staff.RoleHall}
)

func TestRouter_Login(t *testing.T) {
	t.Run("success sets refresh cookie", func(t *testing.T) {
		f := newRouterFixture(t)
		body := `{"name":"amy","password":"secret1"}`
		w := f.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		assert.True(t, resp["success"].(bool))
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "access", data["access_token"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "refresh_token", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.loginErr = auth.ErrInvalidCredentials
		body := `{"name":"amy","password":"wrong"}`
		w := f.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, decodeBody(t, w)["success"].(bool))
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newRouterFixture(t)
		w := f.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("not json")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouter_NamesIsPublic(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/names", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"AMY", "BOB"}, decodeBody(t, w)["data"])
}

func TestRouter_Authentication(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("missing token", func(t *testing.T) {
		w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/attendance/2024-03-04", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, _, err := f.jwt.GenerateRefreshToken("amy@fakeemail.com")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/attendance/2024-03-04", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		assert.Equal(t, http.StatusUnauthorized, f.do(req).Code)
	})

	t.Run("access token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/attendance/2024-03-04", nil)
		req.Header.Set("Authorization", f.bearer(t, hallSession))
		assert.Equal(t, http.StatusOK, f.do(req).Code)
	})

	t.Run("me returns the token's email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", f.bearer(t, hallSession))
		w := f.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "amy@fakeemail.com", data["email"])
	})
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"staff list", http.MethodGet, "/api/v1/branches/TELOK/staff"},
		{"monthly report", http.MethodGet, "/api/v1/branches/TELOK/reports/monthly?month=2024-03"},
		{"payroll recompute", http.MethodPost, "/api/v1/branches/TELOK/payroll/2024-03-04/recompute"},
		{"roster save", http.MethodPut, "/api/v1/branches/TELOK/roster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", f.bearer(t, hallSession))

			w := f.do(req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRouter_StaffManagement(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/staff", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		w := f.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, "TELOK", data[0].(map[string]interface{})["branch"])
	})

	t.Run("create takes branch from path", func(t *testing.T) {
		body := `{"name":"carl","password":"secret1","role":"hall"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/branches/AMOY/staff", strings.NewReader(body))
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		w := f.do(req)
		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "AMOY", data["branch"])
		assert.Equal(t, "CARL", data["name"])
	})

	t.Run("missing member", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/staff/nope", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		assert.Equal(t, http.StatusNotFound, f.do(req).Code)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		f := newRouterFixture(t)
		f.staff.listErr = errors.Join(database.ErrStorageUnavailable, errors.New("conn refused"))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/staff", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		assert.Equal(t, http.StatusServiceUnavailable, f.do(req).Code)
	})
}

func TestRouter_SaveDailySheet(t *testing.T) {
	t.Run("actor and path are applied", func(t *testing.T) {
		f := newRouterFixture(t)
		body := `{"edits":[{"staff_id":"s-1","action":"confirm"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/branches/TELOK/attendance/2024-03-04", strings.NewReader(body))
		req.Header.Set("Authorization", f.bearer(t, adminSession))

		w := f.do(req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "TELOK", f.attendance.saved.Branch)
		assert.Equal(t, "2024-03-04", f.attendance.saved.Date)
		assert.True(t, f.attendance.saved.Actor.IsAdmin)
		require.Len(t, f.attendance.saved.Edits, 1)
		assert.Equal(t, attendance.Action("confirm"), f.attendance.saved.Edits[0].Action)
	})

	t.Run("partial write lists failed targets", func(t *testing.T) {
		f := newRouterFixture(t)
		f.attendance.saveErr = &attendance.PartialWriteError{Failures: []attendance.WriteFailure{
			{Target: "shift:s-2", Err: database.ErrStorageUnavailable},
		}}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/branches/TELOK/attendance/2024-03-04", bytes.NewReader([]byte(`{"edits":[]}`)))
		req.Header.Set("Authorization", f.bearer(t, hallSession))

		w := f.do(req)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		errDetail := decodeBody(t, w)["error"].(map[string]interface{})
		assert.Equal(t, "PARTIAL_WRITE_FAILURE", errDetail["code"])
		assert.Equal(t, []interface{}{"shift:s-2"}, errDetail["failed"])
	})
}

func TestRouter_MonthlyReport(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		f := newRouterFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/reports/monthly?month=2024-03", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		w := f.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "2024-03", data["month"])
	})

	t.Run("xlsx download", func(t *testing.T) {
		f := newRouterFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/reports/monthly?month=2024-03&format=xlsx", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		w := f.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, report.FormatXLSX, f.report.format)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "TELOK-2024-03.xlsx")
		assert.Equal(t, "xlsx", w.Body.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newRouterFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/branches/TELOK/reports/monthly?month=2024-03&format=csv", nil)
		req.Header.Set("Authorization", f.bearer(t, adminSession))
		assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
	})
}

func TestRouter_ShiftRecordNotFound(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts/s-9/2024-03-04", nil)
	req.Header.Set("Authorization", f.bearer(t, hallSession))
	assert.Equal(t, http.StatusNotFound, f.do(req).Code)
}

func TestRouter_SessionStream(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.events = []auth.SessionEvent{
		{Type: auth.SessionLogin, Session: auth.SessionResponse{Email: "amy@fakeemail.com"}},
		{Type: auth.SessionLogout, Session: auth.SessionResponse{Email: "amy@fakeemail.com"}},
	}

	t.Run("rejects missing token", func(t *testing.T) {
		w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/stream", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects access token", func(t *testing.T) {
		access, _, err := f.jwt.GenerateAccessToken(hallSession)
		require.NoError(t, err)
		w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/stream?token="+access, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("streams until logout", func(t *testing.T) {
		token, _, err := f.jwt.GenerateStreamToken("amy@fakeemail.com")
		require.NoError(t, err)

		w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/stream?token="+token, nil))

		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "event: connected")
		assert.Equal(t, 2, strings.Count(body, "event: session"))
		assert.Contains(t, body, `"type":"logout"`)
	})
}
