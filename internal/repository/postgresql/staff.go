package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `
	id, name, role, branch, email, default_start, default_end, scheduled_hours,
	nominal_salary, actual_salary, working_days_per_week, hourly_rate,
	created_at, updated_at`

const roleRankOrder = `
	CASE role WHEN 'hall' THEN 1 WHEN 'kitchen' THEN 2 WHEN 'part-time' THEN 3 ELSE 0 END, name`

func scanMember(row pgx.Row) (staff.Member, error) {
	var (
		m                       staff.Member
		role                    string
		nominal, actual, hourly decimal.NullDecimal
		days                    *int
	)
	err := row.Scan(
		&m.ID, &m.Name, &role, &m.Branch, &m.Email, &m.DefaultStart, &m.DefaultEnd, &m.ScheduledHours,
		&nominal, &actual, &days, &hourly,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.Member{}, err
	}
	m.Role = staff.Role(role)
	m.Compensation = staff.NewCompensation(m.Role, nullable(nominal), nullable(actual), days, nullable(hourly))
	return m, nil
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

// compensationArgs flattens c into the four nullable compensation columns.
func compensationArgs(c staff.Compensation) (nominal, actual *decimal.Decimal, days *int, hourly *decimal.Decimal) {
	switch v := c.(type) {
	case staff.Salaried:
		return &v.NominalSalary, &v.ActualSalary, &v.WorkingDaysPerWeek, nil
	case staff.Hourly:
		return nil, nil, nil, &v.HourlyRate
	}
	return nil, nil, nil, nil
}

func (r *staffRepository) queryMembers(ctx context.Context, query string, args ...interface{}) ([]staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var members []staff.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}
	return members, nil
}

func (r *staffRepository) getOne(ctx context.Context, query string, args ...interface{}) (staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMember(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Member{}, staff.ErrStaffNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return m, nil
}

// ListByBranches implements staff.StaffRepository.
func (r *staffRepository) ListByBranches(ctx context.Context, branches []string) ([]staff.Member, error) {
	query := `SELECT` + staffColumns + `
		FROM staff
		WHERE branch = ANY($1) AND role <> 'admin'
		ORDER BY` + roleRankOrder
	return r.queryMembers(ctx, query, branches)
}

// GetInBranch implements staff.StaffRepository.
func (r *staffRepository) GetInBranch(ctx context.Context, branch string, id string) (staff.Member, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE branch = $1 AND id = $2`
	return r.getOne(ctx, query, branch, id)
}

// FindByName implements staff.StaffRepository.
func (r *staffRepository) FindByName(ctx context.Context, branch string, name string) (staff.Member, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE branch = $1 AND name = $2`
	return r.getOne(ctx, query, branch, name)
}

// FindByEmail implements staff.StaffRepository.
func (r *staffRepository) FindByEmail(ctx context.Context, branch string, email string) (staff.Member, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE branch = $1 AND email = $2`
	return r.getOne(ctx, query, branch, email)
}

// ListNames implements staff.StaffRepository.
func (r *staffRepository) ListNames(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT name FROM staff ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect staff names: %w", err)
	}
	return names, nil
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, m staff.Member) (staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	nominal, actual, days, hourly := compensationArgs(m.Compensation)
	query := `
		INSERT INTO staff (id, name, role, branch, email, default_start, default_end, scheduled_hours,
			nominal_salary, actual_salary, working_days_per_week, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		m.ID, m.Name, string(m.Role), m.Branch, m.Email, m.DefaultStart, m.DefaultEnd, m.ScheduledHours,
		nominal, actual, days, hourly,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return staff.Member{}, staff.ErrStaffNameExists
		}
		return staff.Member{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return m, nil
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, m staff.Member) error {
	q := GetQuerier(ctx, r.db)

	nominal, actual, days, hourly := compensationArgs(m.Compensation)
	query := `
		UPDATE staff
		SET name = $3, role = $4, email = $5, default_start = $6, default_end = $7, scheduled_hours = $8,
			nominal_salary = $9, actual_salary = $10, working_days_per_week = $11, hourly_rate = $12,
			updated_at = NOW()
		WHERE branch = $1 AND id = $2
	`
	tag, err := q.Exec(ctx, query,
		m.Branch, m.ID, m.Name, string(m.Role), m.Email, m.DefaultStart, m.DefaultEnd, m.ScheduledHours,
		nominal, actual, days, hourly,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return staff.ErrStaffNameExists
		}
		return fmt.Errorf("failed to update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// Delete implements staff.StaffRepository.
func (r *staffRepository) Delete(ctx context.Context, branch string, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff WHERE branch = $1 AND id = $2`, branch, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}
