package wage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/payweek"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/token"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

type WageServiceImpl struct {
	wageRepo      domain.WageRepository
	timesheetRepo timesheet.TimesheetRepository
	employeeRepo  employee.EmployeeRepository
	// bcrypt hash of the confirmation secret required by mutating batch
	// operations; a workflow gate, not access control.
	confirmSecretHash string
}

func NewWageService(
	wageRepo domain.WageRepository,
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	confirmSecretHash string,
) domain.WageService {
	return &WageServiceImpl{
		wageRepo:          wageRepo,
		timesheetRepo:     timesheetRepo,
		employeeRepo:      employeeRepo,
		confirmSecretHash: confirmSecretHash,
	}
}

func (s *WageServiceImpl) checkConfirmSecret(secret string) error {
	if bcrypt.CompareHashAndPassword([]byte(s.confirmSecretHash), []byte(secret)) != nil {
		return domain.ErrConfirmationMismatch
	}
	return nil
}

func parsePeriod(dateFrom, dateTo string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", dateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "date_from", Message: "must be a valid date (YYYY-MM-DD)"}}
	}
	to, err := time.Parse("2006-01-02", dateTo)
	if err != nil {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "date_to", Message: "must be a valid date (YYYY-MM-DD)"}}
	}
	week := payweek.Containing(from)
	if !week.From.Equal(payweek.Truncate(from)) || !week.To.Equal(payweek.Truncate(to)) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "date_from", Message: "must be a Thursday-to-Wednesday pay week"}}
	}
	return week.From, week.To, nil
}

// ========== ELIGIBILITY ==========

func (s *WageServiceImpl) EligibleReviewPeriods(ctx context.Context, branch employee.Branch) ([]domain.PeriodOption, error) {
	if !employee.ValidBranch(branch) {
		return nil, employee.ErrInvalidBranch
	}

	dates, err := s.timesheetRepo.ListDatesWithEntries(ctx, branch)
	if err != nil {
		return nil, err
	}

	active, err := s.wageRepo.ListBatchKeys(ctx, domain.ReviewTypeTimesheet, []domain.BatchStatus{domain.StatusPending, domain.StatusApproved})
	if err != nil {
		return nil, err
	}

	return ResolveReviewOptions(branch, dates, active), nil
}

func (s *WageServiceImpl) EligibleFinalWagePeriods(ctx context.Context) ([]domain.PeriodOption, error) {
	approvedReviews, err := s.wageRepo.ListBatchKeys(ctx, domain.ReviewTypeTimesheet, []domain.BatchStatus{domain.StatusApproved})
	if err != nil {
		return nil, err
	}

	activeFinal, err := s.wageRepo.ListBatchKeys(ctx, domain.ReviewTypeFinalWage, []domain.BatchStatus{domain.StatusPending, domain.StatusApproved})
	if err != nil {
		return nil, err
	}

	return ResolveFinalWageOptions(approvedReviews, activeFinal), nil
}

// ========== WORKFLOW ==========

func (s *WageServiceImpl) RequestTimesheetReview(ctx context.Context, req domain.RequestReviewRequest) (domain.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.BatchResponse{}, err
	}
	if err := s.checkConfirmSecret(req.ConfirmSecret); err != nil {
		return domain.BatchResponse{}, err
	}

	from, to, err := parsePeriod(req.DateFrom, req.DateTo)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	branch := employee.Branch(req.Branch)

	entries, err := s.timesheetRepo.ListForPeriod(ctx, from, to, &branch)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	if len(entries) == 0 {
		return domain.BatchResponse{}, domain.ErrPeriodNotEligible
	}

	newToken, err := token.Generate()
	if err != nil {
		return domain.BatchResponse{}, err
	}

	existing, err := s.wageRepo.FindBatchByKey(ctx, from, to, &branch, domain.ReviewTypeTimesheet)
	switch {
	case err == nil && existing.Status == domain.StatusDeclined:
		// Declined reviews are resubmitted in place under a fresh token.
		if err := s.wageRepo.ResetForResubmission(ctx, existing.ApprovalID, newToken, req.InitiatedBy); err != nil {
			return domain.BatchResponse{}, err
		}
		return s.GetBatch(ctx, existing.ApprovalID)
	case err == nil:
		return domain.BatchResponse{}, domain.ErrBatchAlreadyExists
	case !errors.Is(err, domain.ErrBatchNotFound):
		return domain.BatchResponse{}, err
	}

	summary := domain.PayPeriodSummary{
		ApprovalID:  uuid.New().String(),
		DateFrom:    from,
		DateTo:      to,
		Branch:      &branch,
		Status:      domain.StatusPending,
		ReviewType:  domain.ReviewTypeTimesheet,
		InitiatedBy: req.InitiatedBy,
		Token:       newToken,
	}
	if err := s.wageRepo.CreateBatch(ctx, summary, nil); err != nil {
		return domain.BatchResponse{}, err
	}

	return s.GetBatch(ctx, summary.ApprovalID)
}

func (s *WageServiceImpl) RequestFinalWageApproval(ctx context.Context, req domain.RequestFinalWageRequest) (domain.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.BatchResponse{}, err
	}
	if err := s.checkConfirmSecret(req.ConfirmSecret); err != nil {
		return domain.BatchResponse{}, err
	}

	from, to, err := parsePeriod(req.DateFrom, req.DateTo)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	var branch *employee.Branch
	if req.Branch != nil {
		b := employee.Branch(*req.Branch)
		branch = &b
	}

	// Advisory pre-check; the storage-level unique constraint is the real
	// guarantee against racing submissions.
	if err := s.verifyFinalWageEligible(ctx, from, to, branch); err != nil {
		return domain.BatchResponse{}, err
	}

	records, err := s.computeRecords(ctx, from, to, branch, req.OtherDeductions)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	if len(records) == 0 {
		return domain.BatchResponse{}, domain.ErrEmptyBatch
	}

	newToken, err := token.Generate()
	if err != nil {
		return domain.BatchResponse{}, err
	}

	summary := domain.PayPeriodSummary{
		ApprovalID:  uuid.New().String(),
		DateFrom:    from,
		DateTo:      to,
		Branch:      branch,
		Status:      domain.StatusPending,
		ReviewType:  domain.ReviewTypeFinalWage,
		InitiatedBy: req.InitiatedBy,
		Token:       newToken,
	}
	for i := range records {
		records[i].ApprovalID = summary.ApprovalID
	}

	if err := s.wageRepo.CreateBatch(ctx, summary, records); err != nil {
		return domain.BatchResponse{}, err
	}

	return s.GetBatch(ctx, summary.ApprovalID)
}

func (s *WageServiceImpl) verifyFinalWageEligible(ctx context.Context, from, to time.Time, branch *employee.Branch) error {
	options, err := s.EligibleFinalWagePeriods(ctx)
	if err != nil {
		return err
	}
	for _, opt := range options {
		if !opt.DateFrom.Equal(from) || !opt.DateTo.Equal(to) {
			continue
		}
		if branch == nil && opt.Merged {
			return nil
		}
		if branch != nil && opt.Branch != nil && *opt.Branch == *branch {
			return nil
		}
	}
	// Distinguish "slot already taken" from "reviews not approved yet".
	existing, err := s.wageRepo.FindBatchByKey(ctx, from, to, branch, domain.ReviewTypeFinalWage)
	if err == nil && existing.Status != domain.StatusDeclined {
		return domain.ErrBatchAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrBatchNotFound) {
		return err
	}
	return domain.ErrPeriodNotEligible
}

func (s *WageServiceImpl) computeRecords(ctx context.Context, from, to time.Time, branch *employee.Branch, otherDeductions map[string]decimal.Decimal) ([]domain.WageRecord, error) {
	summaries, err := s.timesheetRepo.AggregateHoursForPeriod(ctx, from, to, branch)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(summaries))
	for _, sum := range summaries {
		ids = append(ids, sum.EmployeeID)
	}
	employees, err := s.employeeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	var records []domain.WageRecord
	for _, sum := range summaries {
		emp, ok := byID[sum.EmployeeID]
		if !ok {
			return nil, employee.ErrEmployeeNotFound
		}

		deduction := decimal.Zero
		if otherDeductions != nil {
			if d, ok := otherDeductions[emp.ID]; ok {
				deduction = d
			}
		}

		result := ComputePeriod(PeriodInput{
			HourlyWage:      emp.HourlyWage,
			HoursWorked:     sum.TotalNormalHours,
			OvertimeHours:   sum.TotalOvertimeHours,
			MealAllowance:   sum.TotalMealAllowance,
			OtherDeductions: deduction,
			WeeklyThreshold: emp.WeeklyHoursThreshold,
			FNPFEligible:    emp.FNPFEligible,
		})

		records = append(records, domain.WageRecord{
			ID:              uuid.New().String(),
			EmployeeID:      emp.ID,
			EmployeeName:    emp.FullName,
			HourlyWage:      emp.HourlyWage,
			TotalHours:      result.NormalHoursForPay.Add(result.OvertimeHoursForPay).Round(2),
			HoursWorked:     result.NormalHoursForPay,
			OvertimeHours:   result.OvertimeHoursForPay,
			MealAllowance:   sum.TotalMealAllowance.Round(2),
			OtherDeductions: deduction.Round(2),
			GrossPay:        result.GrossPay,
			FNPFDeduction:   result.FNPFDeduction,
			NetPay:          result.NetPay,
			DateFrom:        from,
			DateTo:          to,
		})
	}

	return records, nil
}

// EditBatchRecords recomputes every derived field on the edited records and
// unconditionally demotes the batch to pending, whatever its prior status.
func (s *WageServiceImpl) EditBatchRecords(ctx context.Context, req domain.EditBatchRequest) (domain.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.BatchResponse{}, err
	}
	if err := s.checkConfirmSecret(req.ConfirmSecret); err != nil {
		return domain.BatchResponse{}, err
	}

	if _, err := s.wageRepo.GetBatchByApprovalID(ctx, req.ApprovalID); err != nil {
		return domain.BatchResponse{}, err
	}

	records, err := s.wageRepo.ListRecordsByApprovalID(ctx, req.ApprovalID)
	if err != nil {
		return domain.BatchResponse{}, err
	}
	byID := make(map[string]domain.WageRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	var updated []domain.WageRecord
	for _, u := range req.Updates {
		rec, ok := byID[u.RecordID]
		if !ok {
			return domain.BatchResponse{}, domain.ErrRecordNotFound
		}

		if u.HoursWorked != nil {
			rec.HoursWorked = *u.HoursWorked
		}
		if u.OvertimeHours != nil {
			rec.OvertimeHours = *u.OvertimeHours
		}
		if u.MealAllowance != nil {
			rec.MealAllowance = *u.MealAllowance
		}
		if u.OtherDeductions != nil {
			rec.OtherDeductions = *u.OtherDeductions
		}

		emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
		if err != nil {
			return domain.BatchResponse{}, err
		}

		updated = append(updated, RecomputeRecord(rec, emp.WeeklyHoursThreshold, emp.FNPFEligible))
	}

	if err := s.wageRepo.UpdateRecords(ctx, req.ApprovalID, updated); err != nil {
		return domain.BatchResponse{}, err
	}

	return s.GetBatch(ctx, req.ApprovalID)
}

func (s *WageServiceImpl) DeleteBatch(ctx context.Context, approvalID string, confirmSecret string) error {
	if err := s.checkConfirmSecret(confirmSecret); err != nil {
		return err
	}
	return s.wageRepo.DeleteBatch(ctx, approvalID)
}

// ========== READS ==========

func (s *WageServiceImpl) GetBatch(ctx context.Context, approvalID string) (domain.BatchResponse, error) {
	summary, err := s.wageRepo.GetBatchByApprovalID(ctx, approvalID)
	if err != nil {
		return domain.BatchResponse{}, err
	}

	records, err := s.wageRepo.ListRecordsByApprovalID(ctx, approvalID)
	if err != nil {
		return domain.BatchResponse{}, err
	}

	return domain.ToBatchResponse(summary, records), nil
}

func (s *WageServiceImpl) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.BatchResponse, error) {
	summaries, err := s.wageRepo.ListBatches(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BatchResponse, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, domain.ToBatchResponse(summary, nil))
	}
	return result, nil
}

// ========== EXTERNAL APPROVAL LINK ==========

func (s *WageServiceImpl) GetBatchByToken(ctx context.Context, tok string) (domain.BatchResponse, error) {
	summary, err := s.wageRepo.GetBatchByToken(ctx, tok)
	if err != nil {
		return domain.BatchResponse{}, err
	}

	records, err := s.wageRepo.ListRecordsByApprovalID(ctx, summary.ApprovalID)
	if err != nil {
		return domain.BatchResponse{}, err
	}

	return domain.ToBatchResponse(summary, records), nil
}

func (s *WageServiceImpl) SetBatchStatusByToken(ctx context.Context, tok string, status domain.BatchStatus) (domain.BatchResponse, error) {
	if status != domain.StatusApproved && status != domain.StatusDeclined {
		return domain.BatchResponse{}, domain.ErrInvalidStatus
	}

	summary, err := s.wageRepo.GetBatchByToken(ctx, tok)
	if err != nil {
		return domain.BatchResponse{}, err
	}

	if err := s.wageRepo.SetStatus(ctx, summary.ApprovalID, status); err != nil {
		return domain.BatchResponse{}, err
	}

	return s.GetBatch(ctx, summary.ApprovalID)
}
