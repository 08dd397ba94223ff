package wage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

type ReviewType string

const (
	ReviewTypeTimesheet ReviewType = "timesheet_review"
	ReviewTypeFinalWage ReviewType = "final_wage"
)

type BatchStatus string

const (
	StatusPending  BatchStatus = "pending"
	StatusApproved BatchStatus = "approved"
	StatusDeclined BatchStatus = "declined"
)

func ValidBatchStatus(s BatchStatus) bool {
	return s == StatusPending || s == StatusApproved || s == StatusDeclined
}

// PayPeriodSummary is one approval batch: a Thursday-to-Wednesday period for
// a branch (nil branch means merged across both branches) moving through
// pending/approved/declined. The token is the only outward artifact; the UI
// turns it into a shareable approval link.
type PayPeriodSummary struct {
	ApprovalID  string
	DateFrom    time.Time
	DateTo      time.Time
	Branch      *employee.Branch
	Status      BatchStatus
	ReviewType  ReviewType
	InitiatedBy string
	Token       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Aggregates over member wage records, populated on reads.
	TotalWages       decimal.Decimal
	TotalCashWages   decimal.Decimal
	TotalOnlineWages decimal.Decimal
}

// WageRecord is one employee's computed pay for a batch. Employee name and
// hourly wage are snapshots taken at computation time; the record is owned by
// its batch and deleted with it.
type WageRecord struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	HourlyWage      decimal.Decimal
	TotalHours      decimal.Decimal
	HoursWorked     decimal.Decimal // normal-hours portion after threshold split
	OvertimeHours   decimal.Decimal
	MealAllowance   decimal.Decimal
	OtherDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	FNPFDeduction   decimal.Decimal
	NetPay          decimal.Decimal
	DateFrom        time.Time
	DateTo          time.Time
	ApprovalID      string
	ApprovalStatus  BatchStatus
}

// BatchKey identifies a batch's eligibility slot. An empty BranchKey stands
// for a merged (both-branch) batch.
type BatchKey struct {
	DateFrom time.Time
	DateTo   time.Time
	Branch   *employee.Branch
}

// BranchKey normalises the nullable branch for map keys.
func (k BatchKey) BranchKey() string {
	if k.Branch == nil {
		return ""
	}
	return string(*k.Branch)
}

// PeriodOption is one period the eligibility resolver offers for submission.
type PeriodOption struct {
	DateFrom time.Time        `json:"date_from"`
	DateTo   time.Time        `json:"date_to"`
	Branch   *employee.Branch `json:"branch,omitempty"`
	Merged   bool             `json:"merged"`
}
