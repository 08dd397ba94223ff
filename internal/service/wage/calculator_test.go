package wage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: want %s, got %s", label, want, got.String())
}

// Test the full weekly breakdown: 50 hours against a 45-hour threshold moves
// the excess into overtime at 1.5x, FNPF applies to normal pay only.
func TestComputePeriod_OverThreshold(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      d("10"),
		HoursWorked:     d("50"),
		OvertimeHours:   decimal.Zero,
		MealAllowance:   d("20"),
		OtherDeductions: d("5"),
		WeeklyThreshold: d("45"),
		FNPFEligible:    true,
	})

	assertDecimal(t, "45", result.NormalHoursForPay, "normal hours")
	assertDecimal(t, "5", result.OvertimeHoursForPay, "overtime hours")
	assertDecimal(t, "450", result.NormalPay, "normal pay")
	assertDecimal(t, "75", result.OvertimePay, "overtime pay")
	assertDecimal(t, "545", result.GrossPay, "gross pay")
	assertDecimal(t, "36", result.FNPFDeduction, "fnpf")
	assertDecimal(t, "504", result.NetPay, "net pay")
}

func TestComputePeriod_UnderThreshold(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      d("12.50"),
		HoursWorked:     d("38"),
		WeeklyThreshold: d("45"),
	})

	assertDecimal(t, "38", result.NormalHoursForPay, "normal hours")
	assertDecimal(t, "0", result.OvertimeHoursForPay, "overtime hours")
	assertDecimal(t, "475", result.GrossPay, "gross pay")
	assertDecimal(t, "0", result.FNPFDeduction, "fnpf")
	assertDecimal(t, "475", result.NetPay, "net pay")
}

// Recorded daily overtime stacks on top of threshold-derived overtime.
func TestComputePeriod_RecordedOvertimeAdds(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      d("10"),
		HoursWorked:     d("47"),
		OvertimeHours:   d("3"),
		WeeklyThreshold: d("45"),
	})

	assertDecimal(t, "45", result.NormalHoursForPay, "normal hours")
	assertDecimal(t, "5", result.OvertimeHoursForPay, "overtime hours")
	assertDecimal(t, "75", result.OvertimePay, "overtime pay")
}

// A zero threshold falls back to the 45-hour default.
func TestComputePeriod_ZeroThresholdDefaults(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:  d("10"),
		HoursWorked: d("48"),
	})

	assertDecimal(t, "45", result.NormalHoursForPay, "normal hours")
	assertDecimal(t, "3", result.OvertimeHoursForPay, "overtime hours")
}

// A raised per-employee threshold keeps more hours at the normal rate.
func TestComputePeriod_CustomThreshold(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      d("10"),
		HoursWorked:     d("48"),
		WeeklyThreshold: d("48"),
	})

	assertDecimal(t, "48", result.NormalHoursForPay, "normal hours")
	assertDecimal(t, "0", result.OvertimeHoursForPay, "overtime hours")
	assertDecimal(t, "480", result.GrossPay, "gross pay")
}

func TestComputePeriod_FNPF(t *testing.T) {
	tests := []struct {
		name     string
		input    PeriodInput
		wantFNPF string
	}{
		{
			name: "ineligible employee pays nothing",
			input: PeriodInput{
				HourlyWage:   d("10"),
				HoursWorked:  d("40"),
				FNPFEligible: false,
			},
			wantFNPF: "0",
		},
		{
			name: "eligible with zero normal pay skips the deduction",
			input: PeriodInput{
				HourlyWage:    d("10"),
				HoursWorked:   decimal.Zero,
				OvertimeHours: d("4"),
				FNPFEligible:  true,
			},
			wantFNPF: "0",
		},
		{
			name: "eligible with normal pay deducts 8 percent",
			input: PeriodInput{
				HourlyWage:   d("10"),
				HoursWorked:  d("40"),
				FNPFEligible: true,
			},
			wantFNPF: "32",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputePeriod(tt.input)
			assertDecimal(t, tt.wantFNPF, result.FNPFDeduction, "fnpf")
		})
	}
}

// Net pay never goes negative, no matter how large the deductions.
func TestComputePeriod_NetPayFloorsAtZero(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:      d("10"),
		HoursWorked:     d("10"),
		OtherDeductions: d("500"),
		FNPFEligible:    true,
	})

	assertDecimal(t, "100", result.GrossPay, "gross pay")
	assertDecimal(t, "0", result.NetPay, "net pay")
}

// Rounding happens once, on the final components, not on intermediates.
func TestComputePeriod_Rounding(t *testing.T) {
	result := ComputePeriod(PeriodInput{
		HourlyWage:   d("15.505"),
		HoursWorked:  d("1"),
		FNPFEligible: true,
	})

	// fnpf = 15.505 * 0.08 = 1.2404; net = 15.505 - 1.2404 = 14.2646
	assertDecimal(t, "15.51", result.NormalPay, "normal pay")
	assertDecimal(t, "1.24", result.FNPFDeduction, "fnpf")
	assertDecimal(t, "14.26", result.NetPay, "net pay")
}

func TestSplitDailyHours(t *testing.T) {
	tests := []struct {
		name         string
		minutes      int
		wantNormal   string
		wantOvertime string
	}{
		{"exactly eight hours", 480, "8", "0"},
		{"half hour over", 510, "8", "0.5"},
		{"short day", 450, "7.5", "0"},
		{"zero minutes", 0, "0", "0"},
		{"long day", 660, "8", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal, overtime := SplitDailyHours(tt.minutes)
			assertDecimal(t, tt.wantNormal, normal, "normal")
			assertDecimal(t, tt.wantOvertime, overtime, "overtime")
		})
	}
}

// Editing hours on a stored record rederives every pay component.
func TestRecomputeRecord(t *testing.T) {
	rec := domain.WageRecord{
		HourlyWage:      d("10"),
		HoursWorked:     d("45"),
		OvertimeHours:   d("5"),
		MealAllowance:   d("20"),
		OtherDeductions: d("5"),
	}

	got := RecomputeRecord(rec, d("45"), true)

	assertDecimal(t, "45", got.HoursWorked, "hours worked")
	assertDecimal(t, "5", got.OvertimeHours, "overtime hours")
	assertDecimal(t, "50", got.TotalHours, "total hours")
	assertDecimal(t, "545", got.GrossPay, "gross pay")
	assertDecimal(t, "36", got.FNPFDeduction, "fnpf")
	assertDecimal(t, "504", got.NetPay, "net pay")
}
