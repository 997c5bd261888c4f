package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	payrollsvc "github.com/sodeng/branchops-backend-go/internal/service/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows_RoleRankThenName(t *testing.T) {
	members := []staff.Member{
		{ID: "1", Name: "ZOE", Role: staff.RolePartTime},
		{ID: "2", Name: "YAN", Role: staff.RoleKitchen},
		{ID: "3", Name: "XIA", Role: staff.RoleHall},
		{ID: "4", Name: "WES", Role: staff.Role("driver")},
		{ID: "5", Name: "ABE", Role: staff.RoleHall},
		{ID: "6", Name: "BEA", Role: staff.RoleKitchen},
	}
	stored := []attendance.ShiftRecord{
		{StaffID: "6", OnOff: attendance.Off},
	}

	rows := MergeRows(members, stored, "TELOK", "2024-06-03")
	onDuty, offDuty := GroupRows(rows)

	var got []string
	for _, r := range onDuty {
		got = append(got, r.Member.Name)
	}
	assert.Equal(t, []string{"WES", "ABE", "XIA", "YAN", "ZOE"}, got)
	require.Len(t, offDuty, 1)
	assert.Equal(t, "BEA", offDuty[0].Member.Name)
}

func TestMergeRows_FallbackWindow(t *testing.T) {
	rows := MergeRows([]staff.Member{{ID: "1", Name: "NEW", Role: staff.RoleHall}}, nil, "TELOK", "2024-06-03")

	require.Len(t, rows, 1)
	assert.Equal(t, "09:00", rows[0].Record.StartTime)
	assert.Equal(t, "18:00", rows[0].Record.EndTime)
	assert.Equal(t, attendance.StateUnset, rows[0].Record.State)
}

func TestReconcile_PricesOffDutyRows(t *testing.T) {
	members := testMembers()
	stored := []attendance.ShiftRecord{
		{StaffID: "pt", OnOff: attendance.Off},
		{StaffID: "kit", OnOff: attendance.Off},
	}
	rows := MergeRows(members[:3], stored, branch, day)

	totals, rowErrs := NewReconciler(payrollsvc.NewWageCalculator()).Reconcile(rows)
	assert.Empty(t, rowErrs)
	assert.Equal(t, "58.82", totals.NominalPayroll.StringFixed(2))

	for _, row := range rows {
		if row.Member.ID == "pt" {
			require.NotNil(t, row.Record.NominalDailyWage)
			assert.True(t, row.Record.NominalDailyWage.IsZero())
		}
		if row.Member.ID == "hall" {
			assert.Nil(t, row.Record.NominalDailyWage)
		}
	}
}

func TestSumStored(t *testing.T) {
	snapshot := decimal.RequireFromString("188.24")
	actual := decimal.NewFromInt(160)
	records := []attendance.ShiftRecord{
		{StaffID: "hall", Date: day, StartTime: "09:00", EndTime: "13:00", OnOff: attendance.On, State: attendance.StateConfirmed,
			NominalDailyWage: &snapshot, ActualDailyWage: &actual},
		{StaffID: "pt", Date: day, StartTime: "09:00", EndTime: "18:00", OnOff: attendance.On, State: attendance.StateConfirmed},
		{StaffID: "kit", Date: day, OnOff: attendance.Off},
		{StaffID: "nop", Date: day, StartTime: "09:00", EndTime: "17:00", OnOff: attendance.On, State: attendance.StateEditing},
		{StaffID: "gone", Date: day, StartTime: "09:00", EndTime: "17:00", OnOff: attendance.On, State: attendance.StateConfirmed},
	}

	totals, rowErrs := NewReconciler(payrollsvc.NewWageCalculator()).SumStored(records, testMembers())
	assert.Equal(t, "322.06", totals.NominalPayroll.StringFixed(2))
	assert.Equal(t, "293.82", totals.ActualPayroll.StringFixed(2))
	require.Len(t, rowErrs, 1)
	assert.Equal(t, "gone", rowErrs[0].StaffID)
	assert.ErrorIs(t, rowErrs[0], staff.ErrStaffNotFound)
}
