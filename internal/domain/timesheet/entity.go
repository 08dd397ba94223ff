package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

// DayType tags what kind of day a timesheet entry records.
type DayType string

const (
	DayTypeWorked DayType = "worked"
	DayTypeAbsent DayType = "absent"
	DayTypeLeave  DayType = "leave"
)

func ValidDayType(d DayType) bool {
	return d == DayTypeWorked || d == DayTypeAbsent || d == DayTypeLeave
}

// DailyEntry is one attendance record per (employee, date). Upsert semantics:
// saving over an existing (employee_id, entry_date) replaces it in place.
type DailyEntry struct {
	ID         string
	EmployeeID string
	Branch     employee.Branch
	EntryDate  time.Time
	DayType    DayType
	// LeaveType names the approved-leave category when DayType is leave
	// (annual, sick, bereavement, ...).
	LeaveType *string
	// Clock fields are HH:MM strings. TimeIn is required for worked days;
	// the rest may be filled in later, in which case no hours are derived.
	TimeIn   *string
	LunchIn  *string
	LunchOut *string
	TimeOut  *string
	// Derived from the clock fields for worked days, entered directly for
	// leave days.
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	MealAllowance decimal.Decimal
	OvertimeReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PeriodHoursSummary is the per-employee aggregation of daily entries over a
// pay period. Leave days contribute their normal hours but never overtime or
// meal allowance.
type PeriodHoursSummary struct {
	EmployeeID         string
	TotalNormalHours   decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	TotalMealAllowance decimal.Decimal
}

// TotalHours is the raw sum before the weekly threshold redistribution the
// wage calculator applies.
func (s PeriodHoursSummary) TotalHours() decimal.Decimal {
	return s.TotalNormalHours.Add(s.TotalOvertimeHours)
}
