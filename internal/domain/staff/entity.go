package staff

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleHall     Role = "hall"
	RoleKitchen  Role = "kitchen"
	RolePartTime Role = "part-time"
	RoleAdmin    Role = "admin"
)

// Rank orders roles for display. Unknown roles sort first.
func (r Role) Rank() int {
	switch r {
	case RoleHall:
		return 1
	case RoleKitchen:
		return 2
	case RolePartTime:
		return 3
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleHall, RoleKitchen, RolePartTime, RoleAdmin:
		return true
	}
	return false
}

// IsSalaried reports whether members with this role are paid a monthly salary.
func (r Role) IsSalaried() bool {
	return r == RoleHall || r == RoleKitchen
}

type Member struct {
	ID             string
	Name           string
	Role           Role
	Branch         string
	Email          string
	DefaultStart   string
	DefaultEnd     string
	ScheduledHours float64
	Compensation   Compensation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Compensation is either Salaried or Hourly. Admin members carry none.
type Compensation interface {
	compensation()
}

type Salaried struct {
	NominalSalary      decimal.Decimal
	ActualSalary       decimal.Decimal
	WorkingDaysPerWeek int
}

func (Salaried) compensation() {}

type Hourly struct {
	HourlyRate decimal.Decimal
}

func (Hourly) compensation() {}

// SortByRole orders members by role rank, then name.
func SortByRole(members []Member) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := members[i].Role.Rank(), members[j].Role.Rank()
		if ri != rj {
			return ri < rj
		}
		return members[i].Name < members[j].Name
	})
}

// NewCompensation builds the compensation variant selected by role.
// Missing fields yield nil so the wage calculator reports the gap.
func NewCompensation(role Role, nominal, actual *decimal.Decimal, workingDays *int, hourlyRate *decimal.Decimal) Compensation {
	switch {
	case role.IsSalaried():
		if nominal == nil || actual == nil || workingDays == nil {
			return nil
		}
		return Salaried{NominalSalary: *nominal, ActualSalary: *actual, WorkingDaysPerWeek: *workingDays}
	case role == RolePartTime:
		if hourlyRate == nil {
			return nil
		}
		return Hourly{HourlyRate: *hourlyRate}
	}
	return nil
}
