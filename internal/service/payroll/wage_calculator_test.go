package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/payroll"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partTimer(rate int64) staff.Member {
	return staff.Member{
		ID:             "pt-1",
		Name:           "AMY",
		Role:           staff.RolePartTime,
		DefaultStart:   "09:00",
		DefaultEnd:     "18:00",
		ScheduledHours: 9,
		Compensation:   staff.Hourly{HourlyRate: decimal.NewFromInt(rate)},
	}
}

func salaried(nominal, actual int64, days int) staff.Member {
	return staff.Member{
		ID:             "hall-1",
		Name:           "BEN",
		Role:           staff.RoleHall,
		DefaultStart:   "09:00",
		DefaultEnd:     "17:00",
		ScheduledHours: 8,
		Compensation: staff.Salaried{
			NominalSalary:      decimal.NewFromInt(nominal),
			ActualSalary:       decimal.NewFromInt(actual),
			WorkingDaysPerWeek: days,
		},
	}
}

func TestCalculateDailyWage_Hourly(t *testing.T) {
	calc := NewWageCalculator()

	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"long shift loses the break", "09:00", "18:00", "75"},
		{"eight hours keeps the break", "09:00", "17:00", "80"},
		{"short shift", "10:00", "14:30", "45"},
		{"overnight shift", "22:00", "06:00", "80"},
		{"zero length", "09:00", "09:00", "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.CalculateDailyWage(partTimer(10), c.start, c.end)
			require.NoError(t, err)
			assert.True(t, got.NominalDailyWage.Equal(decimal.RequireFromString(c.want)), "nominal=%s", got.NominalDailyWage)
			assert.True(t, got.NominalDailyWage.Equal(got.ActualDailyWage))
		})
	}
}

func TestCalculateDailyWage_SalariedFullDay(t *testing.T) {
	calc := NewWageCalculator()

	got, err := calc.CalculateDailyWage(salaried(4000, 3400, 5), "09:00", "17:00")
	require.NoError(t, err)

	assert.Equal(t, "188.24", got.NominalDailyWage.StringFixed(2))
	assert.Equal(t, "160.00", got.ActualDailyWage.StringFixed(2))
}

func TestCalculateDailyWage_SalariedHalfDay(t *testing.T) {
	calc := NewWageCalculator()

	got, err := calc.CalculateDailyWage(salaried(4000, 4000, 5), "09:00", "13:00")
	require.NoError(t, err)

	assert.Equal(t, "94.12", got.NominalDailyWage.StringFixed(2))
	assert.Equal(t, "94.12", got.ActualDailyWage.StringFixed(2))
}

func TestCalculateDailyWage_SalariedThreshold(t *testing.T) {
	calc := NewWageCalculator()

	// 6h of an 8h window is exactly the full-day ratio.
	got, err := calc.CalculateDailyWage(salaried(4000, 4000, 5), "09:00", "15:00")
	require.NoError(t, err)
	assert.Equal(t, "188.24", got.NominalDailyWage.StringFixed(2))

	got, err = calc.CalculateDailyWage(salaried(4000, 4000, 5), "09:00", "14:59")
	require.NoError(t, err)
	assert.Equal(t, "94.12", got.NominalDailyWage.StringFixed(2))
}

func TestCalculateDailyWage_ProfileErrors(t *testing.T) {
	calc := NewWageCalculator()

	admin := staff.Member{ID: "adm", Role: staff.RoleAdmin, ScheduledHours: 8}
	_, err := calc.CalculateDailyWage(admin, "09:00", "17:00")
	assert.ErrorIs(t, err, payroll.ErrMissingCompensationProfile)

	noDays := salaried(4000, 4000, 0)
	_, err = calc.CalculateDailyWage(noDays, "09:00", "17:00")
	assert.ErrorIs(t, err, payroll.ErrInvalidCompensationProfile)

	noWindow := salaried(4000, 4000, 5)
	noWindow.ScheduledHours = 0
	_, err = calc.CalculateDailyWage(noWindow, "09:00", "17:00")
	assert.ErrorIs(t, err, payroll.ErrInvalidCompensationProfile)

	_, err = calc.CalculateDailyWage(partTimer(10), "9am", "17:00")
	assert.ErrorIs(t, err, worktime.ErrInvalidTimeFormat)
}
