package wage

import (
	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
)

var (
	overtimeMultiplier = decimal.RequireFromString("1.5")
	fnpfRate           = decimal.RequireFromString("0.08")
	dailyNormalCap     = decimal.NewFromInt(8)
	minutesPerHour     = decimal.NewFromInt(60)
)

// PeriodInput is one employee's aggregated figures for a pay period, as
// emitted by the timesheet aggregation plus the user-entered deductions.
type PeriodInput struct {
	HourlyWage      decimal.Decimal
	HoursWorked     decimal.Decimal // normal-hours total for the period
	OvertimeHours   decimal.Decimal // daily-level overtime already recorded
	MealAllowance   decimal.Decimal
	OtherDeductions decimal.Decimal
	WeeklyThreshold decimal.Decimal
	FNPFEligible    bool
}

// PeriodResult carries every derived pay component, rounded to 2dp.
type PeriodResult struct {
	NormalHoursForPay   decimal.Decimal
	OvertimeHoursForPay decimal.Decimal
	NormalPay           decimal.Decimal
	OvertimePay         decimal.Decimal
	GrossPay            decimal.Decimal
	FNPFDeduction       decimal.Decimal
	NetPay              decimal.Decimal
}

// ComputePeriod applies the weekly pay rules: hours beyond the employee's
// weekly threshold move into overtime at 1.5x, FNPF is 8% of normal pay for
// eligible employees with normal pay above zero, and net pay floors at zero.
func ComputePeriod(in PeriodInput) PeriodResult {
	threshold := in.WeeklyThreshold
	if threshold.IsZero() {
		threshold = employee.DefaultWeeklyHoursThreshold
	}

	normalHours := decimal.Min(in.HoursWorked, threshold)
	overtimeHours := in.OvertimeHours.Add(decimal.Max(in.HoursWorked.Sub(threshold), decimal.Zero))

	normalPay := in.HourlyWage.Mul(normalHours)
	overtimePay := overtimeHours.Mul(in.HourlyWage).Mul(overtimeMultiplier)
	grossPay := normalPay.Add(overtimePay).Add(in.MealAllowance)

	fnpf := decimal.Zero
	if in.FNPFEligible && normalPay.IsPositive() {
		fnpf = normalPay.Mul(fnpfRate)
	}

	netPay := decimal.Max(grossPay.Sub(fnpf).Sub(in.OtherDeductions), decimal.Zero)

	return PeriodResult{
		NormalHoursForPay:   normalHours.Round(2),
		OvertimeHoursForPay: overtimeHours.Round(2),
		NormalPay:           normalPay.Round(2),
		OvertimePay:         overtimePay.Round(2),
		GrossPay:            grossPay.Round(2),
		FNPFDeduction:       fnpf.Round(2),
		NetPay:              netPay.Round(2),
	}
}

// SplitDailyHours is the per-day variant used at timesheet-entry time: net
// worked minutes split against the fixed 8-hour daily cap. FNPF is never
// computed here; that is period-level only.
func SplitDailyHours(netWorkMinutes int) (normal, overtime decimal.Decimal) {
	netHours := decimal.NewFromInt(int64(netWorkMinutes)).Div(minutesPerHour)
	normal = decimal.Min(netHours, dailyNormalCap).Round(2)
	overtime = decimal.Max(netHours.Sub(dailyNormalCap), decimal.Zero).Round(2)
	return normal, overtime
}

// RecomputeRecord reapplies the period rules to an already-computed wage
// record after an edit. The stored hours are taken as already split, so the
// threshold input is the normal-hours figure itself; only pay components and
// totals are rederived.
func RecomputeRecord(rec domain.WageRecord, threshold decimal.Decimal, fnpfEligible bool) domain.WageRecord {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      rec.HourlyWage,
		HoursWorked:     rec.HoursWorked,
		OvertimeHours:   rec.OvertimeHours,
		MealAllowance:   rec.MealAllowance,
		OtherDeductions: rec.OtherDeductions,
		WeeklyThreshold: threshold,
		FNPFEligible:    fnpfEligible,
	})

	rec.HoursWorked = result.NormalHoursForPay
	rec.OvertimeHours = result.OvertimeHoursForPay
	rec.TotalHours = result.NormalHoursForPay.Add(result.OvertimeHoursForPay).Round(2)
	rec.GrossPay = result.GrossPay
	rec.FNPFDeduction = result.FNPFDeduction
	rec.NetPay = result.NetPay
	return rec
}
