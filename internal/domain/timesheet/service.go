package timesheet

import (
	"context"
	"time"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

type TimesheetService interface {
	SaveEntry(ctx context.Context, req SaveEntryRequest) (EntryResponse, error)
	GetEntry(ctx context.Context, employeeID string, date time.Time) (EntryResponse, error)
	GetWeek(ctx context.Context, branch employee.Branch, anyDateInWeek time.Time) (WeekResponse, error)
	ListWeeksWithData(ctx context.Context, branch employee.Branch) ([]WeekOption, error)
}
