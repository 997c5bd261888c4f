package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sodeng/branchops-backend-go/internal/domain/roster"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/middleware"
	"github.com/sodeng/branchops-backend-go/internal/handler/http/response"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type RosterHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	SaveWeek(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
	now           func() time.Time
}

func NewRosterHandler(rosterService roster.RosterService) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
		now:           time.Now,
	}
}

// GetWeek implements RosterHandler. Year and week default to the current week.
func (h *rosterHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year, week := now.Year(), worktime.CurrentWeek(now)

	query := r.URL.Query()
	if v := query.Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}
	if v := query.Get("week"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "week must be a number", nil)
			return
		}
		week = parsed
	}

	grid, err := h.rosterService.GetWeek(r.Context(), chi.URLParam(r, "branch"), year, week)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}

// SaveWeek implements RosterHandler.
func (h *rosterHandlerImpl) SaveWeek(w http.ResponseWriter, r *http.Request) {
	var req roster.SaveWeekRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("SaveWeek decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Branch = chi.URLParam(r, "branch")
	req.Actor = middleware.ActorFromContext(r.Context())

	grid, err := h.rosterService.SaveWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Roster saved", grid)
}
