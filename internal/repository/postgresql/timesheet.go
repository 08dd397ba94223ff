package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

const entryColumns = `
	id, employee_id, branch, entry_date, day_type, leave_type,
	time_in, lunch_in, lunch_out, time_out,
	normal_hours, overtime_hours, meal_allowance, overtime_reason,
	created_at, updated_at
`

func scanEntry(row pgx.Row) (timesheet.DailyEntry, error) {
	var e timesheet.DailyEntry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Branch, &e.EntryDate, &e.DayType, &e.LeaveType,
		&e.TimeIn, &e.LunchIn, &e.LunchOut, &e.TimeOut,
		&e.NormalHours, &e.OvertimeHours, &e.MealAllowance, &e.OvertimeReason,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *timesheetRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM daily_timesheet_entries WHERE employee_id = $1 AND entry_date = $2`

	e, err := scanEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.DailyEntry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.DailyEntry{}, wrapStoreErr("failed to get timesheet entry", err)
	}

	return e, nil
}

func (r *timesheetRepository) Upsert(ctx context.Context, entry timesheet.DailyEntry) (timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_timesheet_entries (
			id, employee_id, branch, entry_date, day_type, leave_type,
			time_in, lunch_in, lunch_out, time_out,
			normal_hours, overtime_hours, meal_allowance, overtime_reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, entry_date) DO UPDATE SET
			branch = EXCLUDED.branch,
			day_type = EXCLUDED.day_type,
			leave_type = EXCLUDED.leave_type,
			time_in = EXCLUDED.time_in,
			lunch_in = EXCLUDED.lunch_in,
			lunch_out = EXCLUDED.lunch_out,
			time_out = EXCLUDED.time_out,
			normal_hours = EXCLUDED.normal_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			meal_allowance = EXCLUDED.meal_allowance,
			overtime_reason = EXCLUDED.overtime_reason,
			updated_at = NOW()
		RETURNING ` + entryColumns

	stored, err := scanEntry(q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.Branch, entry.EntryDate, entry.DayType, entry.LeaveType,
		entry.TimeIn, entry.LunchIn, entry.LunchOut, entry.TimeOut,
		entry.NormalHours, entry.OvertimeHours, entry.MealAllowance, entry.OvertimeReason,
	))
	if err != nil {
		return timesheet.DailyEntry{}, wrapStoreErr("failed to upsert timesheet entry", err)
	}

	return stored, nil
}

func (r *timesheetRepository) ListForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]timesheet.DailyEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM daily_timesheet_entries WHERE entry_date BETWEEN $1 AND $2`
	args := []interface{}{dateFrom, dateTo}
	if branch != nil {
		query += ` AND branch = $3`
		args = append(args, *branch)
	}
	query += ` ORDER BY entry_date, employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("failed to list timesheet entries", err)
	}
	defer rows.Close()

	var result []timesheet.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read timesheet entries", err)
	}

	return result, nil
}

// AggregateHoursForPeriod enforces the leave-day rule in SQL: leave days keep
// their recorded normal hours but contribute zero overtime and zero meal
// allowance regardless of what the row stores.
func (r *timesheetRepository) AggregateHoursForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]timesheet.PeriodHoursSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id,
			   COALESCE(SUM(normal_hours), 0),
			   COALESCE(SUM(CASE WHEN day_type = 'leave' THEN 0 ELSE overtime_hours END), 0),
			   COALESCE(SUM(CASE WHEN day_type = 'leave' THEN 0 ELSE meal_allowance END), 0)
		FROM daily_timesheet_entries
		WHERE entry_date BETWEEN $1 AND $2
	`
	args := []interface{}{dateFrom, dateTo}
	if branch != nil {
		query += ` AND branch = $3`
		args = append(args, *branch)
	}
	query += ` GROUP BY employee_id ORDER BY employee_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("failed to aggregate timesheet hours", err)
	}
	defer rows.Close()

	var result []timesheet.PeriodHoursSummary
	for rows.Next() {
		var s timesheet.PeriodHoursSummary
		if err := rows.Scan(&s.EmployeeID, &s.TotalNormalHours, &s.TotalOvertimeHours, &s.TotalMealAllowance); err != nil {
			return nil, fmt.Errorf("failed to scan hours summary: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read hours summaries", err)
	}

	return result, nil
}

func (r *timesheetRepository) ListDatesWithEntries(ctx context.Context, branch employee.Branch) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT entry_date FROM daily_timesheet_entries WHERE branch = $1 ORDER BY entry_date`

	rows, err := q.Query(ctx, query, branch)
	if err != nil {
		return nil, wrapStoreErr("failed to list timesheet dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan entry date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read timesheet dates", err)
	}

	return dates, nil
}
