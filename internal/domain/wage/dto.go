package wage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

type RequestReviewRequest struct {
	DateFrom      string `json:"date_from"` // YYYY-MM-DD, a Thursday
	DateTo        string `json:"date_to"`   // the following Wednesday
	Branch        string `json:"branch"`
	InitiatedBy   string `json:"initiated_by"`
	ConfirmSecret string `json:"confirm_secret"`
}

func (r *RequestReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !employee.ValidBranch(employee.Branch(r.Branch)) {
		errs = append(errs, validator.ValidationError{Field: "branch", Message: "must be 'labasa' or 'suva'"})
	}
	if validator.IsEmpty(r.InitiatedBy) {
		errs = append(errs, validator.ValidationError{Field: "initiated_by", Message: "is required"})
	}
	if validator.IsEmpty(r.ConfirmSecret) {
		errs = append(errs, validator.ValidationError{Field: "confirm_secret", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestFinalWageRequest struct {
	DateFrom    string  `json:"date_from"`
	DateTo      string  `json:"date_to"`
	Branch      *string `json:"branch,omitempty"` // nil submits a merged batch
	InitiatedBy string  `json:"initiated_by"`
	// OtherDeductions maps employee id to a user-entered deduction amount.
	OtherDeductions map[string]decimal.Decimal `json:"other_deductions,omitempty"`
	ConfirmSecret   string                     `json:"confirm_secret"`
}

func (r *RequestFinalWageRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.DateTo); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Branch != nil && !employee.ValidBranch(employee.Branch(*r.Branch)) {
		errs = append(errs, validator.ValidationError{Field: "branch", Message: "must be 'labasa' or 'suva'"})
	}
	if validator.IsEmpty(r.InitiatedBy) {
		errs = append(errs, validator.ValidationError{Field: "initiated_by", Message: "is required"})
	}
	for employeeID, amount := range r.OtherDeductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "other_deductions." + employeeID, Message: "must be non-negative"})
		}
	}
	if validator.IsEmpty(r.ConfirmSecret) {
		errs = append(errs, validator.ValidationError{Field: "confirm_secret", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordUpdate carries the editable fields of one wage record. Derived
// fields (gross, FNPF, net) are recomputed by the service, never accepted
// from the caller.
type RecordUpdate struct {
	RecordID        string           `json:"record_id"`
	HoursWorked     *decimal.Decimal `json:"hours_worked,omitempty"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours,omitempty"`
	MealAllowance   *decimal.Decimal `json:"meal_allowance,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
}

type EditBatchRequest struct {
	ApprovalID    string         `json:"-"`
	Updates       []RecordUpdate `json:"updates"`
	ConfirmSecret string         `json:"confirm_secret"`
}

func (r *EditBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Updates) == 0 {
		errs = append(errs, validator.ValidationError{Field: "updates", Message: "must not be empty"})
	}
	for _, u := range r.Updates {
		if validator.IsEmpty(u.RecordID) {
			errs = append(errs, validator.ValidationError{Field: "updates.record_id", Message: "is required"})
		}
		for field, v := range map[string]*decimal.Decimal{
			"hours_worked":     u.HoursWorked,
			"overtime_hours":   u.OvertimeHours,
			"meal_allowance":   u.MealAllowance,
			"other_deductions": u.OtherDeductions,
		} {
			if v != nil && v.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
			}
		}
	}
	if validator.IsEmpty(r.ConfirmSecret) {
		errs = append(errs, validator.ValidationError{Field: "confirm_secret", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchResponse struct {
	ApprovalID       string          `json:"approval_id"`
	DateFrom         string          `json:"date_from"`
	DateTo           string          `json:"date_to"`
	Branch           *string         `json:"branch,omitempty"`
	Status           string          `json:"status"`
	ReviewType       string          `json:"review_type"`
	InitiatedBy      string          `json:"initiated_by"`
	Token            string          `json:"token"`
	TotalWages       decimal.Decimal `json:"total_wages"`
	TotalCashWages   decimal.Decimal `json:"total_cash_wages"`
	TotalOnlineWages decimal.Decimal `json:"total_online_wages"`
	CreatedAt        time.Time       `json:"created_at"`
	Records          []RecordResponse `json:"records,omitempty"`
}

type RecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	HourlyWage      decimal.Decimal `json:"hourly_wage"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	MealAllowance   decimal.Decimal `json:"meal_allowance"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	FNPFDeduction   decimal.Decimal `json:"fnpf_deduction"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

func ToBatchResponse(s PayPeriodSummary, records []WageRecord) BatchResponse {
	resp := BatchResponse{
		ApprovalID:       s.ApprovalID,
		DateFrom:         s.DateFrom.Format("2006-01-02"),
		DateTo:           s.DateTo.Format("2006-01-02"),
		Status:           string(s.Status),
		ReviewType:       string(s.ReviewType),
		InitiatedBy:      s.InitiatedBy,
		Token:            s.Token,
		TotalWages:       s.TotalWages,
		TotalCashWages:   s.TotalCashWages,
		TotalOnlineWages: s.TotalOnlineWages,
		CreatedAt:        s.CreatedAt,
	}
	if s.Branch != nil {
		b := string(*s.Branch)
		resp.Branch = &b
	}
	for _, r := range records {
		resp.Records = append(resp.Records, RecordResponse{
			ID:              r.ID,
			EmployeeID:      r.EmployeeID,
			EmployeeName:    r.EmployeeName,
			HourlyWage:      r.HourlyWage,
			TotalHours:      r.TotalHours,
			HoursWorked:     r.HoursWorked,
			OvertimeHours:   r.OvertimeHours,
			MealAllowance:   r.MealAllowance,
			OtherDeductions: r.OtherDeductions,
			GrossPay:        r.GrossPay,
			FNPFDeduction:   r.FNPFDeduction,
			NetPay:          r.NetPay,
		})
	}
	return resp
}
