package staff

import (
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/pkg/validator"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
)

type CreateStaffRequest struct {
	Name               string           `json:"name"`
	Password           string           `json:"password"`
	Role               Role             `json:"role"`
	Branch             string           `json:"branch"`
	DefaultStart       string           `json:"default_start"`
	DefaultEnd         string           `json:"default_end"`
	NominalSalary      *decimal.Decimal `json:"nominal_salary,omitempty"`
	ActualSalary       *decimal.Decimal `json:"actual_salary,omitempty"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.IsValidStaffName(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name may only contain letters, digits, spaces, dots, underscores and dashes (max 50)",
		})
	}
	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters long",
		})
	}
	if validator.IsEmpty(r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch is required",
		})
	}
	if !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of hall, kitchen, part-time, admin",
		})
	}
	errs = append(errs, validateWindow(r.DefaultStart, r.DefaultEnd)...)
	errs = append(errs, ValidateCompensation(r.Role, r.NominalSalary, r.ActualSalary, r.WorkingDaysPerWeek, r.HourlyRate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStaffRequest struct {
	ID                 string           `json:"-"`
	CurrentBranch      string           `json:"-"`
	Name               *string          `json:"name,omitempty"`
	Role               *Role            `json:"role,omitempty"`
	Branch             *string          `json:"branch,omitempty"`
	DefaultStart       *string          `json:"default_start,omitempty"`
	DefaultEnd         *string          `json:"default_end,omitempty"`
	NominalSalary      *decimal.Decimal `json:"nominal_salary,omitempty"`
	ActualSalary       *decimal.Decimal `json:"actual_salary,omitempty"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && !validator.IsValidStaffName(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name may only contain letters, digits, spaces, dots, underscores and dashes (max 50)",
		})
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of hall, kitchen, part-time, admin",
		})
	}
	if r.Branch != nil && validator.IsEmpty(*r.Branch) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch",
			Message: "branch must not be empty",
		})
	}
	if r.DefaultStart != nil && !worktime.IsValidClock(*r.DefaultStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_start",
			Message: "default_start must be HH:MM",
		})
	}
	if r.DefaultEnd != nil && !worktime.IsValidClock(*r.DefaultEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_end",
			Message: "default_end must be HH:MM",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StaffResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Role               Role             `json:"role"`
	Branch             string           `json:"branch"`
	Email              string           `json:"email"`
	DefaultStart       string           `json:"default_start"`
	DefaultEnd         string           `json:"default_end"`
	ScheduledHours     float64          `json:"scheduled_hours"`
	NominalSalary      *decimal.Decimal `json:"nominal_salary,omitempty"`
	ActualSalary       *decimal.Decimal `json:"actual_salary,omitempty"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
}

func ToResponse(m Member) StaffResponse {
	resp := StaffResponse{
		ID:             m.ID,
		Name:           m.Name,
		Role:           m.Role,
		Branch:         m.Branch,
		Email:          m.Email,
		DefaultStart:   m.DefaultStart,
		DefaultEnd:     m.DefaultEnd,
		ScheduledHours: m.ScheduledHours,
	}
	switch c := m.Compensation.(type) {
	case Salaried:
		resp.NominalSalary = &c.NominalSalary
		resp.ActualSalary = &c.ActualSalary
		resp.WorkingDaysPerWeek = &c.WorkingDaysPerWeek
	case Hourly:
		resp.HourlyRate = &c.HourlyRate
	}
	return resp
}

func validateWindow(start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !worktime.IsValidClock(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_start",
			Message: "default_start must be HH:MM",
		})
	}
	if !worktime.IsValidClock(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_end",
			Message: "default_end must be HH:MM",
		})
	}
	return errs
}

// ValidateCompensation checks that the fields required by role are present.
func ValidateCompensation(role Role, nominal, actual *decimal.Decimal, days *int, hourly *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	switch {
	case role.IsSalaried():
		if nominal == nil || nominal.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "nominal_salary",
				Message: "nominal_salary is required for salaried roles",
			})
		}
		if actual == nil || actual.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "actual_salary",
				Message: "actual_salary is required for salaried roles",
			})
		}
		if days == nil || *days < 1 || *days > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days_per_week",
				Message: "working_days_per_week must be between 1 and 7",
			})
		}
	case role == RolePartTime:
		if hourly == nil || hourly.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_rate",
				Message: "hourly_rate is required for part-time staff",
			})
		}
	}
	return errs
}
