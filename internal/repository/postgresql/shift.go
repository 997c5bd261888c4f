package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/attendance"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) attendance.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	staff_id, branch, shift_date::text, start_time, end_time, on_off, confirmed,
	nominal_daily_wage, actual_daily_wage, updated_at`

func scanShift(row pgx.Row) (attendance.ShiftRecord, error) {
	var (
		rec             attendance.ShiftRecord
		onOff           string
		confirmed       bool
		nominal, actual decimal.NullDecimal
	)
	err := row.Scan(
		&rec.StaffID, &rec.Branch, &rec.Date, &rec.StartTime, &rec.EndTime, &onOff, &confirmed,
		&nominal, &actual, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.ShiftRecord{}, err
	}
	rec.OnOff = attendance.OnOff(onOff)
	rec.State = attendance.StateEditing
	if confirmed {
		rec.State = attendance.StateConfirmed
	}
	rec.NominalDailyWage = nullable(nominal)
	rec.ActualDailyWage = nullable(actual)
	return rec, nil
}

func (r *shiftRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.ShiftRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift records: %w", err)
	}
	defer rows.Close()

	var records []attendance.ShiftRecord
	for rows.Next() {
		rec, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift records: %w", err)
	}
	return records, nil
}

// Get implements attendance.ShiftRepository.
func (r *shiftRepository) Get(ctx context.Context, branch string, staffID string, date string) (attendance.ShiftRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + shiftColumns + `
		FROM shift_records
		WHERE branch = $1 AND staff_id = $2 AND shift_date = $3::date`
	rec, err := scanShift(q.QueryRow(ctx, query, branch, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ShiftRecord{}, attendance.ErrShiftNotFound
		}
		return attendance.ShiftRecord{}, fmt.Errorf("failed to get shift record: %w", err)
	}
	return rec, nil
}

// Put implements attendance.ShiftRepository. Nil patch fields keep the
// stored value; ClearWages nulls both wage columns.
func (r *shiftRepository) Put(ctx context.Context, patch attendance.ShiftPatch) error {
	q := GetQuerier(ctx, r.db)

	var onOff *string
	if patch.OnOff != nil {
		v := string(*patch.OnOff)
		onOff = &v
	}

	query := `
		INSERT INTO shift_records AS s (branch, staff_id, shift_date, start_time, end_time, on_off, confirmed,
			nominal_daily_wage, actual_daily_wage)
		VALUES ($1, $2, $3::date,
			COALESCE($4::text, '00:00'), COALESCE($5::text, '00:00'), COALESCE($6::text, 'on'),
			COALESCE($7::boolean, FALSE), $8::numeric, $9::numeric)
		ON CONFLICT (branch, staff_id, shift_date) DO UPDATE SET
			start_time = COALESCE($4::text, s.start_time),
			end_time = COALESCE($5::text, s.end_time),
			on_off = COALESCE($6::text, s.on_off),
			confirmed = COALESCE($7::boolean, s.confirmed),
			nominal_daily_wage = CASE WHEN $10::boolean THEN NULL
				ELSE COALESCE($8::numeric, s.nominal_daily_wage) END,
			actual_daily_wage = CASE WHEN $10::boolean THEN NULL
				ELSE COALESCE($9::numeric, s.actual_daily_wage) END,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		patch.Branch, patch.StaffID, patch.Date,
		patch.StartTime, patch.EndTime, onOff, patch.Confirmed,
		patch.NominalDailyWage, patch.ActualDailyWage, patch.ClearWages,
	)
	if err != nil {
		return fmt.Errorf("failed to put shift record: %w", err)
	}
	return nil
}

// ListByBranchDate implements attendance.ShiftRepository.
func (r *shiftRepository) ListByBranchDate(ctx context.Context, branch string, date string) ([]attendance.ShiftRecord, error) {
	query := `SELECT` + shiftColumns + `
		FROM shift_records
		WHERE branch = $1 AND shift_date = $2::date
		ORDER BY staff_id`
	return r.list(ctx, query, branch, date)
}

// ListByBranchRange implements attendance.ShiftRepository.
func (r *shiftRepository) ListByBranchRange(ctx context.Context, branch string, from string, to string) ([]attendance.ShiftRecord, error) {
	query := `SELECT` + shiftColumns + `
		FROM shift_records
		WHERE branch = $1 AND shift_date BETWEEN $2::date AND $3::date
		ORDER BY shift_date, staff_id`
	return r.list(ctx, query, branch, from, to)
}
