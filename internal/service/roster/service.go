package roster

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/roster"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	attendancesvc "github.com/sodeng/branchops-backend-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

type RosterServiceImpl struct {
	branches  []string
	staffRepo staff.StaffRepository
	shiftRepo attendance.ShiftRepository
}

func NewRosterService(branches []string, staffRepo staff.StaffRepository, shiftRepo attendance.ShiftRepository) roster.RosterService {
	return &RosterServiceImpl{
		branches:  branches,
		staffRepo: staffRepo,
		shiftRepo: shiftRepo,
	}
}

type cellKey struct {
	staffID string
	date    string
}

type weekGrid struct {
	dates   []string
	members []staff.Member
	cells   map[cellKey]*attendance.ShiftRecord
}

func (s *RosterServiceImpl) loadWeek(ctx context.Context, branch string, year, week int) (weekGrid, error) {
	if !slices.Contains(s.branches, branch) {
		return weekGrid{}, fmt.Errorf("%s: %w", branch, staff.ErrUnknownBranch)
	}
	days, err := worktime.WeekDates(year, week)
	if err != nil {
		return weekGrid{}, err
	}
	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, worktime.FormatDate(d))
	}

	var (
		members []staff.Member
		stored  []attendance.ShiftRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.staffRepo.ListByBranches(gctx, []string{branch})
		return err
	})
	g.Go(func() error {
		var err error
		stored, err = s.shiftRepo.ListByBranchRange(gctx, branch, dates[0], dates[len(dates)-1])
		return err
	})
	if err := g.Wait(); err != nil {
		return weekGrid{}, fmt.Errorf("failed to load roster %s %d-W%02d: %w: %w", branch, year, week, database.ErrStorageUnavailable, err)
	}

	byKey := make(map[cellKey]attendance.ShiftRecord, len(stored))
	for _, rec := range stored {
		byKey[cellKey{rec.StaffID, rec.Date}] = rec
	}

	grid := weekGrid{dates: dates, members: members, cells: make(map[cellKey]*attendance.ShiftRecord)}
	for _, m := range members {
		for _, date := range dates {
			rec, ok := byKey[cellKey{m.ID, date}]
			if ok {
				rec.Normalize()
			} else {
				rec = attendance.NewUnsetRecord(m.ID, branch, date, attendancesvc.DefaultWindow(m))
			}
			grid.cells[cellKey{m.ID, date}] = &rec
		}
	}
	return grid, nil
}

func (s *RosterServiceImpl) buildResponse(branch string, year, week int, grid weekGrid, rowErrs []*attendance.RowError) roster.WeekResponse {
	prevYear, prevWeek := worktime.PreviousWeek(year, week)
	nextYear, nextWeek := worktime.NextWeek(year, week)

	rows := make([]roster.Row, 0, len(grid.members))
	for _, m := range grid.members {
		row := roster.Row{StaffID: m.ID, Name: m.Name, Role: string(m.Role), Cells: make([]roster.Cell, 0, len(grid.dates))}
		for _, date := range grid.dates {
			rec := grid.cells[cellKey{m.ID, date}]
			row.Cells = append(row.Cells, roster.Cell{
				Date:      date,
				StartTime: rec.StartTime,
				EndTime:   rec.EndTime,
				OnOff:     rec.OnOff,
				Confirmed: rec.IsConfirmed(),
			})
		}
		rows = append(rows, row)
	}

	return roster.WeekResponse{
		Branch:   branch,
		Year:     year,
		Week:     week,
		Dates:    grid.dates,
		Previous: roster.WeekRef{Year: prevYear, Week: prevWeek},
		Next:     roster.WeekRef{Year: nextYear, Week: nextWeek},
		Rows:     rows,
		Errors:   attendance.ToRowIssues(rowErrs),
	}
}

// GetWeek implements roster.RosterService.
func (s *RosterServiceImpl) GetWeek(ctx context.Context, branch string, year int, week int) (roster.WeekResponse, error) {
	grid, err := s.loadWeek(ctx, branch, year, week)
	if err != nil {
		return roster.WeekResponse{}, err
	}
	return s.buildResponse(branch, year, week, grid, nil), nil
}

// SaveWeek implements roster.RosterService.
func (s *RosterServiceImpl) SaveWeek(ctx context.Context, req roster.SaveWeekRequest) (roster.WeekResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.WeekResponse{}, err
	}

	grid, err := s.loadWeek(ctx, req.Branch, req.Year, req.Week)
	if err != nil {
		return roster.WeekResponse{}, err
	}

	rowErrs := applyToggles(grid, req.Toggles, req.Actor)
	for _, rowErr := range rowErrs {
		slog.Warn("roster toggle rejected", "branch", req.Branch, "staff_id", rowErr.StaffID, "date", rowErr.Date, "error", rowErr.Err)
	}

	if err := s.writeWeek(ctx, grid); err != nil {
		slog.Error("roster save incomplete", "branch", req.Branch, "year", req.Year, "week", req.Week, "error", err)
		return roster.WeekResponse{}, err
	}

	slog.Info("roster saved", "branch", req.Branch, "year", req.Year, "week", req.Week, "toggles", len(req.Toggles), "rejected", len(rowErrs))
	return s.buildResponse(req.Branch, req.Year, req.Week, grid, rowErrs), nil
}

// applyToggles flips the requested cells. A toggle that targets no cell of
// the week or that the cell's state rejects is flagged and skipped.
func applyToggles(grid weekGrid, toggles []roster.CellToggle, actor attendance.Actor) []*attendance.RowError {
	members := make(map[string]staff.Member, len(grid.members))
	for _, m := range grid.members {
		members[m.ID] = m
	}

	var rowErrs []*attendance.RowError
	for _, toggle := range toggles {
		rec, ok := grid.cells[cellKey{toggle.StaffID, toggle.Date}]
		if !ok {
			rowErrs = append(rowErrs, &attendance.RowError{StaffID: toggle.StaffID, Date: toggle.Date, Err: roster.ErrCellOutsideWeek})
			continue
		}

		cellActor := actor
		if toggle.On && !rec.IsOnDuty() {
			cellActor.Override = actor.IsAdmin
		}
		updated := *rec
		if err := updated.Toggle(toggle.On, cellActor, attendancesvc.DefaultWindow(members[toggle.StaffID])); err != nil {
			rowErrs = append(rowErrs, &attendance.RowError{StaffID: toggle.StaffID, Date: toggle.Date, Err: err})
			continue
		}
		*rec = updated
	}
	return rowErrs
}

func (s *RosterServiceImpl) writeWeek(ctx context.Context, grid weekGrid) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []attendance.WriteFailure
	)

	for _, rec := range grid.cells {
		patch := rec.SchedulePatch()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.shiftRepo.Put(ctx, patch); err != nil {
				mu.Lock()
				failures = append(failures, attendance.WriteFailure{Target: "shift:" + patch.StaffID + ":" + patch.Date, Err: err})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(failures) > 0 {
		return &attendance.PartialWriteError{Failures: failures}
	}
	return nil
}
