package timesheet

import (
	"context"
	"time"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

type TimesheetRepository interface {
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (DailyEntry, error)
	// Upsert creates or replaces the entry keyed by (employee_id, entry_date)
	// and returns the stored row.
	Upsert(ctx context.Context, entry DailyEntry) (DailyEntry, error)
	ListForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]DailyEntry, error)
	// AggregateHoursForPeriod sums entries per employee over the inclusive
	// date range. Leave days contribute normal hours only. Employees with no
	// entries in range are absent from the result.
	AggregateHoursForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]PeriodHoursSummary, error)
	// ListDatesWithEntries returns the distinct entry dates recorded for a
	// branch, used to derive candidate pay weeks.
	ListDatesWithEntries(ctx context.Context, branch employee.Branch) ([]time.Time, error)
}
