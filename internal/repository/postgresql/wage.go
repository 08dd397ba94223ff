package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/database"
)

// The pay_period_summaries table carries a partial unique index
//
//	uk_batch_slot ON (date_from, date_to, COALESCE(branch, ''), review_type)
//	WHERE status <> 'declined'
//
// so racing submissions for the same slot are rejected atomically; the
// resolver's eligibility check is advisory only.
type wageRepository struct {
	db *database.DB
}

func NewWageRepository(db *database.DB) wage.WageRepository {
	return &wageRepository{db: db}
}

const summaryColumns = `
	s.approval_id, s.date_from, s.date_to, s.branch, s.status, s.review_type,
	s.initiated_by, s.token, s.created_at, s.updated_at,
	COALESCE(t.total, 0), COALESCE(t.cash, 0), COALESCE(t.online, 0)
`

const summaryTotalsJoin = `
	LEFT JOIN (
		SELECT r.approval_id,
			   SUM(r.net_pay) AS total,
			   SUM(CASE WHEN e.payment_method = 'cash' THEN r.net_pay ELSE 0 END) AS cash,
			   SUM(CASE WHEN e.payment_method = 'online' THEN r.net_pay ELSE 0 END) AS online
		FROM wage_records r
		JOIN employees e ON e.id = r.employee_id
		GROUP BY r.approval_id
	) t ON t.approval_id = s.approval_id
`

func scanSummary(row pgx.Row) (wage.PayPeriodSummary, error) {
	var s wage.PayPeriodSummary
	err := row.Scan(
		&s.ApprovalID, &s.DateFrom, &s.DateTo, &s.Branch, &s.Status, &s.ReviewType,
		&s.InitiatedBy, &s.Token, &s.CreatedAt, &s.UpdatedAt,
		&s.TotalWages, &s.TotalCashWages, &s.TotalOnlineWages,
	)
	return s, err
}

func (r *wageRepository) CreateBatch(ctx context.Context, summary wage.PayPeriodSummary, records []wage.WageRecord) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		_, err := q.Exec(txCtx, `
			INSERT INTO pay_period_summaries (
				approval_id, date_from, date_to, branch, status, review_type, initiated_by, token
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, summary.ApprovalID, summary.DateFrom, summary.DateTo, summary.Branch,
			summary.Status, summary.ReviewType, summary.InitiatedBy, summary.Token)
		if err != nil {
			if isUniqueViolation(err, "uk_batch_slot") {
				return wage.ErrBatchAlreadyExists
			}
			return wrapStoreErr("failed to create approval batch", err)
		}

		for _, rec := range records {
			_, err := q.Exec(txCtx, `
				INSERT INTO wage_records (
					id, employee_id, employee_name, hourly_wage, total_hours,
					hours_worked, overtime_hours, meal_allowance, other_deductions,
					gross_pay, fnpf_deduction, net_pay, date_from, date_to, approval_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			`, rec.ID, rec.EmployeeID, rec.EmployeeName, rec.HourlyWage, rec.TotalHours,
				rec.HoursWorked, rec.OvertimeHours, rec.MealAllowance, rec.OtherDeductions,
				rec.GrossPay, rec.FNPFDeduction, rec.NetPay, rec.DateFrom, rec.DateTo, rec.ApprovalID)
			if err != nil {
				return wrapStoreErr("failed to create wage record", err)
			}
		}

		return nil
	})
}

func (r *wageRepository) GetBatchByApprovalID(ctx context.Context, approvalID string) (wage.PayPeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + ` FROM pay_period_summaries s ` + summaryTotalsJoin + ` WHERE s.approval_id = $1`

	s, err := scanSummary(q.QueryRow(ctx, query, approvalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wage.PayPeriodSummary{}, wage.ErrBatchNotFound
		}
		return wage.PayPeriodSummary{}, wrapStoreErr("failed to get approval batch", err)
	}

	return s, nil
}

func (r *wageRepository) GetBatchByToken(ctx context.Context, tok string) (wage.PayPeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + ` FROM pay_period_summaries s ` + summaryTotalsJoin + ` WHERE s.token = $1`

	s, err := scanSummary(q.QueryRow(ctx, query, tok))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wage.PayPeriodSummary{}, wage.ErrBatchNotFound
		}
		return wage.PayPeriodSummary{}, wrapStoreErr("failed to get approval batch by token", err)
	}

	return s, nil
}

func (r *wageRepository) ListBatches(ctx context.Context, filter wage.BatchFilter) ([]wage.PayPeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + ` FROM pay_period_summaries s ` + summaryTotalsJoin + ` WHERE true`
	args := []interface{}{}
	idx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND s.status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.ReviewType != nil {
		query += fmt.Sprintf(" AND s.review_type = $%d", idx)
		args = append(args, *filter.ReviewType)
		idx++
	}
	if filter.Branch != nil {
		query += fmt.Sprintf(" AND s.branch = $%d", idx)
		args = append(args, *filter.Branch)
		idx++
	}
	query += ` ORDER BY s.date_from DESC, s.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("failed to list approval batches", err)
	}
	defer rows.Close()

	var result []wage.PayPeriodSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval batch: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read approval batches", err)
	}

	return result, nil
}

func (r *wageRepository) ListBatchKeys(ctx context.Context, reviewType wage.ReviewType, statuses []wage.BatchStatus) ([]wage.BatchKey, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date_from, date_to, branch
		FROM pay_period_summaries
		WHERE review_type = $1 AND status = ANY($2)
	`

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := q.Query(ctx, query, reviewType, statusStrings)
	if err != nil {
		return nil, wrapStoreErr("failed to list batch keys", err)
	}
	defer rows.Close()

	var keys []wage.BatchKey
	for rows.Next() {
		var k wage.BatchKey
		if err := rows.Scan(&k.DateFrom, &k.DateTo, &k.Branch); err != nil {
			return nil, fmt.Errorf("failed to scan batch key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read batch keys", err)
	}

	return keys, nil
}

func (r *wageRepository) FindBatchByKey(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch, reviewType wage.ReviewType) (wage.PayPeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM pay_period_summaries s ` + summaryTotalsJoin + `
		WHERE s.date_from = $1 AND s.date_to = $2
		  AND COALESCE(s.branch, '') = COALESCE($3, '')
		  AND s.review_type = $4
		ORDER BY s.created_at DESC
		LIMIT 1
	`

	s, err := scanSummary(q.QueryRow(ctx, query, dateFrom, dateTo, branch, reviewType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wage.PayPeriodSummary{}, wage.ErrBatchNotFound
		}
		return wage.PayPeriodSummary{}, wrapStoreErr("failed to find approval batch", err)
	}

	return s, nil
}

func (r *wageRepository) ListRecordsByApprovalID(ctx context.Context, approvalID string) ([]wage.WageRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.employee_id, r.employee_name, r.hourly_wage, r.total_hours,
			   r.hours_worked, r.overtime_hours, r.meal_allowance, r.other_deductions,
			   r.gross_pay, r.fnpf_deduction, r.net_pay, r.date_from, r.date_to,
			   r.approval_id, s.status
		FROM wage_records r
		JOIN pay_period_summaries s ON s.approval_id = r.approval_id
		WHERE r.approval_id = $1
		ORDER BY r.employee_name
	`

	rows, err := q.Query(ctx, query, approvalID)
	if err != nil {
		return nil, wrapStoreErr("failed to list wage records", err)
	}
	defer rows.Close()

	var result []wage.WageRecord
	for rows.Next() {
		var rec wage.WageRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.HourlyWage, &rec.TotalHours,
			&rec.HoursWorked, &rec.OvertimeHours, &rec.MealAllowance, &rec.OtherDeductions,
			&rec.GrossPay, &rec.FNPFDeduction, &rec.NetPay, &rec.DateFrom, &rec.DateTo,
			&rec.ApprovalID, &rec.ApprovalStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wage record: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read wage records", err)
	}

	return result, nil
}

// UpdateRecords rewrites the edited records and demotes the owning batch to
// pending in the same transaction, whatever its prior status.
func (r *wageRepository) UpdateRecords(ctx context.Context, approvalID string, records []wage.WageRecord) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		for _, rec := range records {
			tag, err := q.Exec(txCtx, `
				UPDATE wage_records SET
					hours_worked = $1, overtime_hours = $2, meal_allowance = $3,
					other_deductions = $4, total_hours = $5, gross_pay = $6,
					fnpf_deduction = $7, net_pay = $8
				WHERE id = $9 AND approval_id = $10
			`, rec.HoursWorked, rec.OvertimeHours, rec.MealAllowance,
				rec.OtherDeductions, rec.TotalHours, rec.GrossPay,
				rec.FNPFDeduction, rec.NetPay, rec.ID, approvalID)
			if err != nil {
				return wrapStoreErr("failed to update wage record", err)
			}
			if tag.RowsAffected() == 0 {
				return wage.ErrRecordNotFound
			}
		}

		_, err := q.Exec(txCtx, `
			UPDATE pay_period_summaries SET status = 'pending', updated_at = NOW()
			WHERE approval_id = $1
		`, approvalID)
		if err != nil {
			return wrapStoreErr("failed to reset batch status", err)
		}

		return nil
	})
}

func (r *wageRepository) SetStatus(ctx context.Context, approvalID string, status wage.BatchStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_period_summaries SET status = $1, updated_at = NOW()
		WHERE approval_id = $2
	`, status, approvalID)
	if err != nil {
		return wrapStoreErr("failed to set batch status", err)
	}
	if tag.RowsAffected() == 0 {
		return wage.ErrBatchNotFound
	}

	return nil
}

func (r *wageRepository) ResetForResubmission(ctx context.Context, approvalID string, newToken string, initiatedBy string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_period_summaries
		SET status = 'pending', token = $1, initiated_by = $2, updated_at = NOW()
		WHERE approval_id = $3 AND status = 'declined'
	`, newToken, initiatedBy, approvalID)
	if err != nil {
		return wrapStoreErr("failed to resubmit batch", err)
	}
	if tag.RowsAffected() == 0 {
		return wage.ErrBatchNotFound
	}

	return nil
}

func (r *wageRepository) DeleteBatch(ctx context.Context, approvalID string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM wage_records WHERE approval_id = $1`, approvalID); err != nil {
			return wrapStoreErr("failed to delete wage records", err)
		}

		tag, err := q.Exec(txCtx, `DELETE FROM pay_period_summaries WHERE approval_id = $1`, approvalID)
		if err != nil {
			return wrapStoreErr("failed to delete approval batch", err)
		}
		if tag.RowsAffected() == 0 {
			return wage.ErrBatchNotFound
		}

		return nil
	})
}
