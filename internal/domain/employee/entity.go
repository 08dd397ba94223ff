package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Branch string

const (
	BranchLabasa Branch = "labasa"
	BranchSuva   Branch = "suva"
)

func ValidBranch(b Branch) bool {
	return b == BranchLabasa || b == BranchSuva
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// BankCodes is the fixed set of payout banks accepted on employee records.
var BankCodes = map[string]bool{
	"ANZ":  true,
	"BSP":  true,
	"WBC":  true,
	"BRED": true,
	"HFC":  true,
	"BOB":  true,
}

// Employee is the payroll master record. Employees are never deleted, only
// deactivated; historical wage records reference them by id.
type Employee struct {
	ID                string
	FullName          string
	Position          string
	HourlyWage        decimal.Decimal
	// WeeklyHoursThreshold is the weekly normal-hours cutoff above which the
	// wage calculator treats hours as overtime. Defaults to 45.
	WeeklyHoursThreshold decimal.Decimal
	FNPFNumber           *string
	TINNumber            *string
	BankCode             *string
	BankAccountNumber    *string
	PaymentMethod        PaymentMethod
	Branch               Branch
	FNPFEligible         bool
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultWeeklyHoursThreshold is applied when an employee record does not set
// its own cutoff.
var DefaultWeeklyHoursThreshold = decimal.NewFromInt(45)
