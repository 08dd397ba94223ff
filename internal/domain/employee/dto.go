package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName             string           `json:"full_name"`
	Position             string           `json:"position"`
	HourlyWage           decimal.Decimal  `json:"hourly_wage"`
	WeeklyHoursThreshold *decimal.Decimal `json:"weekly_hours_threshold,omitempty"`
	FNPFNumber           *string          `json:"fnpf_number,omitempty"`
	TINNumber            *string          `json:"tin_number,omitempty"`
	BankCode             *string          `json:"bank_code,omitempty"`
	BankAccountNumber    *string          `json:"bank_account_number,omitempty"`
	PaymentMethod        string           `json:"payment_method"`
	Branch               string           `json:"branch"`
	FNPFEligible         bool             `json:"fnpf_eligible"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be non-negative"})
	}
	if r.WeeklyHoursThreshold != nil && r.WeeklyHoursThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekly_hours_threshold", Message: "must be non-negative"})
	}
	if r.PaymentMethod != string(PaymentMethodCash) && r.PaymentMethod != string(PaymentMethodOnline) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'cash' or 'online'"})
	}
	if !ValidBranch(Branch(r.Branch)) {
		errs = append(errs, validator.ValidationError{Field: "branch", Message: "must be 'labasa' or 'suva'"})
	}
	if r.PaymentMethod == string(PaymentMethodOnline) {
		if r.BankCode == nil || validator.IsEmpty(*r.BankCode) {
			errs = append(errs, validator.ValidationError{Field: "bank_code", Message: "is required for online payment"})
		} else if !BankCodes[*r.BankCode] {
			errs = append(errs, validator.ValidationError{Field: "bank_code", Message: "is not a recognised bank code"})
		}
		if r.BankAccountNumber == nil || validator.IsEmpty(*r.BankAccountNumber) {
			errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "is required for online payment"})
		}
	} else if r.BankCode != nil && !validator.IsEmpty(*r.BankCode) && !BankCodes[*r.BankCode] {
		errs = append(errs, validator.ValidationError{Field: "bank_code", Message: "is not a recognised bank code"})
	}
	if r.FNPFEligible && (r.FNPFNumber == nil || validator.IsEmpty(*r.FNPFNumber)) {
		errs = append(errs, validator.ValidationError{Field: "fnpf_number", Message: "is required for FNPF-eligible employees"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                   string
	FullName             *string          `json:"full_name,omitempty"`
	Position             *string          `json:"position,omitempty"`
	HourlyWage           *decimal.Decimal `json:"hourly_wage,omitempty"`
	WeeklyHoursThreshold *decimal.Decimal `json:"weekly_hours_threshold,omitempty"`
	FNPFNumber           *string          `json:"fnpf_number,omitempty"`
	TINNumber            *string          `json:"tin_number,omitempty"`
	BankCode             *string          `json:"bank_code,omitempty"`
	BankAccountNumber    *string          `json:"bank_account_number,omitempty"`
	PaymentMethod        *string          `json:"payment_method,omitempty"`
	Branch               *string          `json:"branch,omitempty"`
	FNPFEligible         *bool            `json:"fnpf_eligible,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be blank"})
	}
	if r.HourlyWage != nil && r.HourlyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must be non-negative"})
	}
	if r.WeeklyHoursThreshold != nil && r.WeeklyHoursThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekly_hours_threshold", Message: "must be non-negative"})
	}
	if r.PaymentMethod != nil && *r.PaymentMethod != string(PaymentMethodCash) && *r.PaymentMethod != string(PaymentMethodOnline) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'cash' or 'online'"})
	}
	if r.Branch != nil && !ValidBranch(Branch(*r.Branch)) {
		errs = append(errs, validator.ValidationError{Field: "branch", Message: "must be 'labasa' or 'suva'"})
	}
	if r.BankCode != nil && !validator.IsEmpty(*r.BankCode) && !BankCodes[*r.BankCode] {
		errs = append(errs, validator.ValidationError{Field: "bank_code", Message: "is not a recognised bank code"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string          `json:"id"`
	FullName             string          `json:"full_name"`
	Position             string          `json:"position"`
	HourlyWage           decimal.Decimal `json:"hourly_wage"`
	WeeklyHoursThreshold decimal.Decimal `json:"weekly_hours_threshold"`
	FNPFNumber           *string         `json:"fnpf_number,omitempty"`
	TINNumber            *string         `json:"tin_number,omitempty"`
	BankCode             *string         `json:"bank_code,omitempty"`
	BankAccountNumber    *string         `json:"bank_account_number,omitempty"`
	PaymentMethod        string          `json:"payment_method"`
	Branch               string          `json:"branch"`
	FNPFEligible         bool            `json:"fnpf_eligible"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		FullName:             e.FullName,
		Position:             e.Position,
		HourlyWage:           e.HourlyWage,
		WeeklyHoursThreshold: e.WeeklyHoursThreshold,
		FNPFNumber:           e.FNPFNumber,
		TINNumber:            e.TINNumber,
		BankCode:             e.BankCode,
		BankAccountNumber:    e.BankAccountNumber,
		PaymentMethod:        string(e.PaymentMethod),
		Branch:               string(e.Branch),
		FNPFEligible:         e.FNPFEligible,
		IsActive:             e.IsActive,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}
