package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrFNPFNumberExists  = errors.New("FNPF number already registered")
	ErrTINNumberExists   = errors.New("TIN number already registered")
	ErrEmployeeInactive  = errors.New("employee is deactivated")
	ErrInvalidBranch     = errors.New("invalid branch")
	ErrInvalidBankCode   = errors.New("invalid bank code")
)
