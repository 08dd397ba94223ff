package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaveEntryRequest struct {
	EmployeeID     string  `json:"employee_id"`
	Branch         string  `json:"branch"`
	EntryDate      string  `json:"entry_date"` // YYYY-MM-DD
	DayType        string  `json:"day_type"`
	LeaveType      *string `json:"leave_type,omitempty"`
	LeaveHours     *string `json:"leave_hours,omitempty"` // recorded hours for a leave day
	TimeIn         *string `json:"time_in,omitempty"`
	LunchIn        *string `json:"lunch_in,omitempty"`
	LunchOut       *string `json:"lunch_out,omitempty"`
	TimeOut        *string `json:"time_out,omitempty"`
	MealAllowance  *string `json:"meal_allowance,omitempty"`
	OvertimeReason *string `json:"overtime_reason,omitempty"`
}

type EntryResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Branch         string          `json:"branch"`
	EntryDate      string          `json:"entry_date"`
	DayType        string          `json:"day_type"`
	LeaveType      *string         `json:"leave_type,omitempty"`
	TimeIn         *string         `json:"time_in,omitempty"`
	LunchIn        *string         `json:"lunch_in,omitempty"`
	LunchOut       *string         `json:"lunch_out,omitempty"`
	TimeOut        *string         `json:"time_out,omitempty"`
	NormalHours    decimal.Decimal `json:"normal_hours"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	MealAllowance  decimal.Decimal `json:"meal_allowance"`
	OvertimeReason *string         `json:"overtime_reason,omitempty"`
}

func ToResponse(e DailyEntry) EntryResponse {
	return EntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Branch:         string(e.Branch),
		EntryDate:      e.EntryDate.Format("2006-01-02"),
		DayType:        string(e.DayType),
		LeaveType:      e.LeaveType,
		TimeIn:         e.TimeIn,
		LunchIn:        e.LunchIn,
		LunchOut:       e.LunchOut,
		TimeOut:        e.TimeOut,
		NormalHours:    e.NormalHours,
		OvertimeHours:  e.OvertimeHours,
		MealAllowance:  e.MealAllowance,
		OvertimeReason: e.OvertimeReason,
	}
}

// WeekResponse lists a branch's entries for one pay week.
type WeekResponse struct {
	DateFrom string          `json:"date_from"`
	DateTo   string          `json:"date_to"`
	Branch   string          `json:"branch"`
	Entries  []EntryResponse `json:"entries"`
}

// WeekOption is a pay week for which timesheet data exists.
type WeekOption struct {
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`
	Branch   string    `json:"branch"`
}
