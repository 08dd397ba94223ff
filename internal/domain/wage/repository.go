package wage

import (
	"context"
	"time"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
)

// BatchFilter narrows batch listings. Nil fields match everything.
type BatchFilter struct {
	Status     *BatchStatus
	ReviewType *ReviewType
	Branch     *employee.Branch
}

type WageRepository interface {
	// CreateBatch persists the summary and its member records in one
	// transaction. The storage layer carries a unique constraint on
	// (date_from, date_to, branch, review_type) over non-declined batches;
	// violations surface as ErrBatchAlreadyExists.
	CreateBatch(ctx context.Context, summary PayPeriodSummary, records []WageRecord) error
	GetBatchByApprovalID(ctx context.Context, approvalID string) (PayPeriodSummary, error)
	GetBatchByToken(ctx context.Context, tok string) (PayPeriodSummary, error)
	ListBatches(ctx context.Context, filter BatchFilter) ([]PayPeriodSummary, error)
	// ListBatchKeys returns the eligibility slots occupied by batches of the
	// given type in any of the given statuses.
	ListBatchKeys(ctx context.Context, reviewType ReviewType, statuses []BatchStatus) ([]BatchKey, error)
	// FindBatchByKey locates a batch by its exact slot and type regardless of
	// status. Declined batches are included so resubmission can reuse them.
	FindBatchByKey(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch, reviewType ReviewType) (PayPeriodSummary, error)
	ListRecordsByApprovalID(ctx context.Context, approvalID string) ([]WageRecord, error)
	// UpdateRecords rewrites the given records and resets the owning batch to
	// pending in the same transaction.
	UpdateRecords(ctx context.Context, approvalID string, records []WageRecord) error
	SetStatus(ctx context.Context, approvalID string, status BatchStatus) error
	// ResetForResubmission moves a declined batch back to pending under a
	// freshly issued token.
	ResetForResubmission(ctx context.Context, approvalID string, newToken string, initiatedBy string) error
	// DeleteBatch removes the summary and all member records.
	DeleteBatch(ctx context.Context, approvalID string) error
}
