package response

import (
	"errors"
	"net/http"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/auth"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/user"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/database"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrFNPFNumberExists):
		Conflict(w, "FNPF number already registered")
	case errors.Is(err, employee.ErrTINNumberExists):
		Conflict(w, "TIN number already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is deactivated", nil)
	case errors.Is(err, employee.ErrInvalidBranch):
		BadRequest(w, "Invalid branch", nil)
	case errors.Is(err, employee.ErrInvalidBankCode):
		BadRequest(w, "Invalid bank code", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrEmployeeNotFound):
		NotFound(w, "Employee not found for timesheet entry")

	// Wage / approval workflow errors
	case errors.Is(err, wage.ErrBatchNotFound):
		NotFound(w, "Approval batch not found")
	case errors.Is(err, wage.ErrBatchAlreadyExists):
		Conflict(w, "An approval batch already exists or is approved for this period")
	case errors.Is(err, wage.ErrEmptyBatch):
		BadRequest(w, "No wage records to submit for this period", nil)
	case errors.Is(err, wage.ErrRecordNotFound):
		NotFound(w, "Wage record not found")
	case errors.Is(err, wage.ErrConfirmationMismatch):
		Forbidden(w, "Confirmation secret does not match")
	case errors.Is(err, wage.ErrInvalidStatus):
		BadRequest(w, "Status must be 'approved' or 'declined'", nil)
	case errors.Is(err, wage.ErrPeriodNotEligible):
		Conflict(w, "Period is not eligible for submission")

	// Store connectivity
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "The data store is unavailable, try again later")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
