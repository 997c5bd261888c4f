package roster

import (
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type WeekRef struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

type Cell struct {
	Date      string           `json:"date"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	OnOff     attendance.OnOff `json:"on_off"`
	Confirmed bool             `json:"confirmed"`
}

type Row struct {
	StaffID string `json:"staff_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Cells   []Cell `json:"cells"`
}

type WeekResponse struct {
	Branch   string   `json:"branch"`
	Year     int      `json:"year"`
	Week     int      `json:"week"`
	Dates    []string `json:"dates"`
	Previous WeekRef  `json:"previous"`
	Next     WeekRef  `json:"next"`
	Rows     []Row    `json:"rows"`

	// Errors lists toggles that were rejected and skipped.
	Errors []attendance.RowIssue `json:"errors,omitempty"`
}

// CellToggle puts one staff member on or off duty for one date.
type CellToggle struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	On      bool   `json:"on"`
}

type SaveWeekRequest struct {
	Branch  string           `json:"-"`
	Actor   attendance.Actor `json:"-"`
	Year    int              `json:"year"`
	Week    int              `json:"week"`
	Toggles []CellToggle     `json:"toggles"`
}

func (r *SaveWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch is required",
		})
	}
	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}
	if r.Week < 1 || r.Week > worktime.WeeksPerYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "week",
			Message: "week must be between 1 and 53",
		})
	}
	for i, toggle := range r.Toggles {
		field := "toggles[" + validator.Itoa(i) + "]"
		if validator.IsEmpty(toggle.StaffID) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".staff_id",
				Message: "staff_id is required",
			})
		}
		if _, err := worktime.ParseDate(toggle.Date); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
