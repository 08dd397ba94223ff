package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	List(ctx context.Context, includeInactive bool) ([]Employee, error)
	ListActiveByBranch(ctx context.Context, branch *Branch) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Deactivate(ctx context.Context, id string) error
}
