package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sodeng/branchops-backend-go/internal/domain/sales"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
)

type salesRepository struct {
	db *database.DB
}

func NewSalesRepository(db *database.DB) sales.SalesRepository {
	return &salesRepository{db: db}
}

const salesColumns = `
	branch, sales_date::text, daily_sales, cash_sales, paynow_sales, cash_on_hand,
	nominal_payroll, actual_payroll, updated_at`

func scanSales(row pgx.Row) (sales.DailyRecord, error) {
	var rec sales.DailyRecord
	err := row.Scan(
		&rec.Branch, &rec.Date, &rec.DailySales, &rec.CashSales, &rec.PayNowSales, &rec.CashOnHand,
		&rec.NominalPayroll, &rec.ActualPayroll, &rec.UpdatedAt,
	)
	return rec, err
}

// Get implements sales.SalesRepository.
func (r *salesRepository) Get(ctx context.Context, branch string, date string) (sales.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salesColumns + ` FROM daily_sales WHERE branch = $1 AND sales_date = $2::date`
	rec, err := scanSales(q.QueryRow(ctx, query, branch, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sales.DailyRecord{}, sales.ErrSalesNotFound
		}
		return sales.DailyRecord{}, fmt.Errorf("failed to get daily sales: %w", err)
	}
	return rec, nil
}

// Put implements sales.SalesRepository.
func (r *salesRepository) Put(ctx context.Context, patch sales.Patch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_sales AS d (branch, sales_date, daily_sales, cash_sales, paynow_sales, cash_on_hand,
			nominal_payroll, actual_payroll)
		VALUES ($1, $2::date,
			COALESCE($3::numeric, 0), COALESCE($4::numeric, 0), COALESCE($5::numeric, 0),
			COALESCE($6::numeric, 0), COALESCE($7::numeric, 0), COALESCE($8::numeric, 0))
		ON CONFLICT (branch, sales_date) DO UPDATE SET
			daily_sales = COALESCE($3::numeric, d.daily_sales),
			cash_sales = COALESCE($4::numeric, d.cash_sales),
			paynow_sales = COALESCE($5::numeric, d.paynow_sales),
			cash_on_hand = COALESCE($6::numeric, d.cash_on_hand),
			nominal_payroll = COALESCE($7::numeric, d.nominal_payroll),
			actual_payroll = COALESCE($8::numeric, d.actual_payroll),
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		patch.Branch, patch.Date,
		patch.DailySales, patch.CashSales, patch.PayNowSales, patch.CashOnHand,
		patch.NominalPayroll, patch.ActualPayroll,
	)
	if err != nil {
		return fmt.Errorf("failed to put daily sales: %w", err)
	}
	return nil
}

// ListByMonth implements sales.SalesRepository.
func (r *salesRepository) ListByMonth(ctx context.Context, branch string, month string) ([]sales.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + salesColumns + `
		FROM daily_sales
		WHERE branch = $1 AND to_char(sales_date, 'YYYY-MM') = $2
		ORDER BY sales_date`
	rows, err := q.Query(ctx, query, branch, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var records []sales.DailyRecord
	for rows.Next() {
		rec, err := scanSales(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily sales: %w", err)
	}
	return records, nil
}
