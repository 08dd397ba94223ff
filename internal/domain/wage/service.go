package wage

import (
	"context"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

type WageService interface {
	// Eligibility
	EligibleReviewPeriods(ctx context.Context, branch employee.Branch) ([]PeriodOption, error)
	EligibleFinalWagePeriods(ctx context.Context) ([]PeriodOption, error)

	// Workflow
	RequestTimesheetReview(ctx context.Context, req RequestReviewRequest) (BatchResponse, error)
	RequestFinalWageApproval(ctx context.Context, req RequestFinalWageRequest) (BatchResponse, error)
	EditBatchRecords(ctx context.Context, req EditBatchRequest) (BatchResponse, error)
	DeleteBatch(ctx context.Context, approvalID string, confirmSecret string) error

	// Reads
	GetBatch(ctx context.Context, approvalID string) (BatchResponse, error)
	ListBatches(ctx context.Context, filter BatchFilter) ([]BatchResponse, error)

	// External approval-link consumer
	GetBatchByToken(ctx context.Context, token string) (BatchResponse, error)
	SetBatchStatusByToken(ctx context.Context, token string, status BatchStatus) (BatchResponse, error)
}
