package timesheet

import (
	"github.com/shopspring/decimal"

	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	wageCalc "github.com/vitilevu-hr/payroll-backend-go/internal/service/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

// derivedHours is the outcome of validating one day's clock fields.
type derivedHours struct {
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	MealAllowance decimal.Decimal
	Complete      bool
}

// validateWorkedDay enforces the timesheet clock rules and derives hours for
// a complete entry. An entry without time_out is explicitly allowed: it is
// saved incomplete with zero hours so the user can finish it later.
func validateWorkedDay(req domain.SaveEntryRequest) (derivedHours, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	var out derivedHours

	if req.TimeIn == nil || validator.IsEmpty(*req.TimeIn) {
		errs = append(errs, validator.ValidationError{Field: "time_in", Message: "is required for a worked day"})
		return out, errs
	}
	timeIn, ok := validator.ParseTimeOfDay(*req.TimeIn)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "time_in", Message: "must be a valid HH:MM time"})
	}

	if req.MealAllowance != nil && !validator.IsEmpty(*req.MealAllowance) && !validator.IsNonNegativeNumber(*req.MealAllowance) {
		errs = append(errs, validator.ValidationError{Field: "meal_allowance", Message: "must be a non-negative number"})
	}

	hasTimeOut := req.TimeOut != nil && !validator.IsEmpty(*req.TimeOut)
	if !hasTimeOut {
		// Incomplete entry: partially saved, no hours derived yet.
		if len(errs) > 0 {
			return out, errs
		}
		out.MealAllowance = parseAmount(req.MealAllowance)
		return out, nil
	}

	timeOut, ok := validator.ParseTimeOfDay(*req.TimeOut)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be a valid HH:MM time"})
	}
	if req.LunchIn == nil || validator.IsEmpty(*req.LunchIn) {
		errs = append(errs, validator.ValidationError{Field: "lunch_in", Message: "is required when time_out is set"})
	}
	if req.LunchOut == nil || validator.IsEmpty(*req.LunchOut) {
		errs = append(errs, validator.ValidationError{Field: "lunch_out", Message: "is required when time_out is set"})
	}
	if len(errs) > 0 {
		return out, errs
	}

	lunchIn, ok := validator.ParseTimeOfDay(*req.LunchIn)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "lunch_in", Message: "must be a valid HH:MM time"})
	}
	lunchOut, ok := validator.ParseTimeOfDay(*req.LunchOut)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "lunch_out", Message: "must be a valid HH:MM time"})
	}
	if len(errs) > 0 {
		return out, errs
	}

	if timeOut <= timeIn {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be after time_in"})
	}
	if lunchOut <= lunchIn {
		errs = append(errs, validator.ValidationError{Field: "lunch_out", Message: "must be after lunch_in"})
	}
	if lunchIn < timeIn || lunchOut > timeOut {
		errs = append(errs, validator.ValidationError{Field: "lunch_in", Message: "lunch must fall within the work window"})
	}

	grossMinutes := timeOut - timeIn
	lunchMinutes := lunchOut - lunchIn
	if lunchMinutes > grossMinutes {
		errs = append(errs, validator.ValidationError{Field: "lunch_out", Message: "lunch cannot exceed the work duration"})
	}
	if len(errs) > 0 {
		return out, errs
	}

	normal, overtime := wageCalc.SplitDailyHours(grossMinutes - lunchMinutes)
	out.NormalHours = normal
	out.OvertimeHours = overtime
	out.MealAllowance = parseAmount(req.MealAllowance)
	out.Complete = true
	return out, nil
}

func validateLeaveDay(req domain.SaveEntryRequest) (decimal.Decimal, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	if req.LeaveType == nil || validator.IsEmpty(*req.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required for a leave day"})
	}
	hours := decimal.Zero
	if req.LeaveHours != nil && !validator.IsEmpty(*req.LeaveHours) {
		if !validator.IsNonNegativeNumber(*req.LeaveHours) {
			errs = append(errs, validator.ValidationError{Field: "leave_hours", Message: "must be a non-negative number"})
		} else {
			hours, _ = decimal.NewFromString(*req.LeaveHours)
		}
	}

	if len(errs) > 0 {
		return decimal.Zero, errs
	}
	return hours.Round(2), nil
}

func parseAmount(s *string) decimal.Decimal {
	if s == nil || validator.IsEmpty(*s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(*s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
