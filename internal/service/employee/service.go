package employee

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo domain.EmployeeRepository
}

func NewEmployeeService(employeeRepo domain.EmployeeRepository) domain.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.EmployeeResponse{}, err
	}

	threshold := domain.DefaultWeeklyHoursThreshold
	if req.WeeklyHoursThreshold != nil && !req.WeeklyHoursThreshold.IsZero() {
		threshold = *req.WeeklyHoursThreshold
	}

	emp := domain.Employee{
		ID:                   uuid.New().String(),
		FullName:             req.FullName,
		Position:             req.Position,
		HourlyWage:           req.HourlyWage.Round(2),
		WeeklyHoursThreshold: threshold,
		FNPFNumber:           req.FNPFNumber,
		TINNumber:            req.TINNumber,
		BankCode:             req.BankCode,
		BankAccountNumber:    req.BankAccountNumber,
		PaymentMethod:        domain.PaymentMethod(req.PaymentMethod),
		Branch:               domain.Branch(req.Branch),
		FNPFEligible:         req.FNPFEligible,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return domain.EmployeeResponse{}, err
	}

	return domain.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (domain.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return domain.EmployeeResponse{}, err
	}
	return domain.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, includeInactive bool) ([]domain.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	result := make([]domain.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, domain.ToResponse(e))
	}
	return result, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req domain.UpdateEmployeeRequest) (domain.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.EmployeeResponse{}, err
	}

	// Re-check the cross-field invariants against the merged record: online
	// payment requires bank details, FNPF eligibility requires an FNPF number.
	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return domain.EmployeeResponse{}, err
	}
	if err := validateMerged(current, req); err != nil {
		return domain.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return domain.EmployeeResponse{}, err
	}

	return domain.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.employeeRepo.Deactivate(ctx, id)
}

func validateMerged(current domain.Employee, req domain.UpdateEmployeeRequest) error {
	method := current.PaymentMethod
	if req.PaymentMethod != nil {
		method = domain.PaymentMethod(*req.PaymentMethod)
	}
	bankCode := current.BankCode
	if req.BankCode != nil {
		bankCode = req.BankCode
	}
	bankAccount := current.BankAccountNumber
	if req.BankAccountNumber != nil {
		bankAccount = req.BankAccountNumber
	}
	fnpfEligible := current.FNPFEligible
	if req.FNPFEligible != nil {
		fnpfEligible = *req.FNPFEligible
	}
	fnpfNumber := current.FNPFNumber
	if req.FNPFNumber != nil {
		fnpfNumber = req.FNPFNumber
	}

	creq := domain.CreateEmployeeRequest{
		FullName:          current.FullName,
		HourlyWage:        current.HourlyWage,
		PaymentMethod:     string(method),
		Branch:            string(current.Branch),
		BankCode:          bankCode,
		BankAccountNumber: bankAccount,
		FNPFEligible:      fnpfEligible,
		FNPFNumber:        fnpfNumber,
	}
	if req.FullName != nil {
		creq.FullName = *req.FullName
	}
	if req.Branch != nil {
		creq.Branch = *req.Branch
	}
	return creq.Validate()
}
