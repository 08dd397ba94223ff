package wage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
)

const testConfirmSecret = "vitilevu-admin"

func testConfirmSecretHash(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testConfirmSecret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ---------- in-memory fakes ----------

type fakeWageRepo struct {
	batches map[string]domain.PayPeriodSummary
	records map[string][]domain.WageRecord
}

func newFakeWageRepo() *fakeWageRepo {
	return &fakeWageRepo{
		batches: make(map[string]domain.PayPeriodSummary),
		records: make(map[string][]domain.WageRecord),
	}
}

func (f *fakeWageRepo) CreateBatch(ctx context.Context, summary domain.PayPeriodSummary, records []domain.WageRecord) error {
	for _, existing := range f.batches {
		if existing.ReviewType == summary.ReviewType &&
			existing.Status != domain.StatusDeclined &&
			existing.DateFrom.Equal(summary.DateFrom) &&
			existing.DateTo.Equal(summary.DateTo) &&
			batchBranchKey(existing.Branch) == batchBranchKey(summary.Branch) {
			return domain.ErrBatchAlreadyExists
		}
	}
	f.batches[summary.ApprovalID] = summary
	f.records[summary.ApprovalID] = records
	return nil
}

func batchBranchKey(b *employee.Branch) string {
	if b == nil {
		return ""
	}
	return string(*b)
}

func (f *fakeWageRepo) GetBatchByApprovalID(ctx context.Context, approvalID string) (domain.PayPeriodSummary, error) {
	s, ok := f.batches[approvalID]
	if !ok {
		return domain.PayPeriodSummary{}, domain.ErrBatchNotFound
	}
	return s, nil
}

func (f *fakeWageRepo) GetBatchByToken(ctx context.Context, tok string) (domain.PayPeriodSummary, error) {
	for _, s := range f.batches {
		if s.Token == tok {
			return s, nil
		}
	}
	return domain.PayPeriodSummary{}, domain.ErrBatchNotFound
}

func (f *fakeWageRepo) ListBatches(ctx context.Context, filter domain.BatchFilter) ([]domain.PayPeriodSummary, error) {
	var out []domain.PayPeriodSummary
	for _, s := range f.batches {
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.ReviewType != nil && s.ReviewType != *filter.ReviewType {
			continue
		}
		if filter.Branch != nil && (s.Branch == nil || *s.Branch != *filter.Branch) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeWageRepo) ListBatchKeys(ctx context.Context, reviewType domain.ReviewType, statuses []domain.BatchStatus) ([]domain.BatchKey, error) {
	var out []domain.BatchKey
	for _, s := range f.batches {
		if s.ReviewType != reviewType {
			continue
		}
		for _, st := range statuses {
			if s.Status == st {
				out = append(out, domain.BatchKey{DateFrom: s.DateFrom, DateTo: s.DateTo, Branch: s.Branch})
				break
			}
		}
	}
	return out, nil
}

func (f *fakeWageRepo) FindBatchByKey(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch, reviewType domain.ReviewType) (domain.PayPeriodSummary, error) {
	for _, s := range f.batches {
		if s.ReviewType == reviewType &&
			s.DateFrom.Equal(dateFrom) &&
			s.DateTo.Equal(dateTo) &&
			batchBranchKey(s.Branch) == batchBranchKey(branch) {
			return s, nil
		}
	}
	return domain.PayPeriodSummary{}, domain.ErrBatchNotFound
}

func (f *fakeWageRepo) ListRecordsByApprovalID(ctx context.Context, approvalID string) ([]domain.WageRecord, error) {
	return f.records[approvalID], nil
}

func (f *fakeWageRepo) UpdateRecords(ctx context.Context, approvalID string, records []domain.WageRecord) error {
	byID := make(map[string]domain.WageRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	stored := f.records[approvalID]
	for i, r := range stored {
		if upd, ok := byID[r.ID]; ok {
			stored[i] = upd
		}
	}
	s := f.batches[approvalID]
	s.Status = domain.StatusPending
	f.batches[approvalID] = s
	return nil
}

func (f *fakeWageRepo) SetStatus(ctx context.Context, approvalID string, status domain.BatchStatus) error {
	s, ok := f.batches[approvalID]
	if !ok {
		return domain.ErrBatchNotFound
	}
	s.Status = status
	f.batches[approvalID] = s
	return nil
}

func (f *fakeWageRepo) ResetForResubmission(ctx context.Context, approvalID string, newToken string, initiatedBy string) error {
	s, ok := f.batches[approvalID]
	if !ok {
		return domain.ErrBatchNotFound
	}
	s.Status = domain.StatusPending
	s.Token = newToken
	s.InitiatedBy = initiatedBy
	f.batches[approvalID] = s
	return nil
}

func (f *fakeWageRepo) DeleteBatch(ctx context.Context, approvalID string) error {
	if _, ok := f.batches[approvalID]; !ok {
		return domain.ErrBatchNotFound
	}
	delete(f.batches, approvalID)
	delete(f.records, approvalID)
	return nil
}

type fakeTimesheetRepo struct {
	entries   []timesheet.DailyEntry
	summaries []timesheet.PeriodHoursSummary
	dates     []time.Time
}

func (f *fakeTimesheetRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyEntry, error) {
	return timesheet.DailyEntry{}, timesheet.ErrEntryNotFound
}

func (f *fakeTimesheetRepo) Upsert(ctx context.Context, entry timesheet.DailyEntry) (timesheet.DailyEntry, error) {
	return entry, nil
}

func (f *fakeTimesheetRepo) ListForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]timesheet.DailyEntry, error) {
	return f.entries, nil
}

func (f *fakeTimesheetRepo) AggregateHoursForPeriod(ctx context.Context, dateFrom, dateTo time.Time, branch *employee.Branch) ([]timesheet.PeriodHoursSummary, error) {
	return f.summaries, nil
}

func (f *fakeTimesheetRepo) ListDatesWithEntries(ctx context.Context, branch employee.Branch) ([]time.Time, error) {
	return f.dates, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if includeInactive || emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListActiveByBranch(ctx context.Context, branch *employee.Branch) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if !emp.IsActive {
			continue
		}
		if branch != nil && emp.Branch != *branch {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

// ---------- fixtures ----------

func newTestService(t *testing.T, wageRepo *fakeWageRepo, tsRepo *fakeTimesheetRepo, empRepo *fakeEmployeeRepo) domain.WageService {
	t.Helper()
	if wageRepo == nil {
		wageRepo = newFakeWageRepo()
	}
	if tsRepo == nil {
		tsRepo = &fakeTimesheetRepo{}
	}
	if empRepo == nil {
		empRepo = &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	}
	return NewWageService(wageRepo, tsRepo, empRepo, testConfirmSecretHash(t))
}

func workedEntry(employeeID string, branch employee.Branch, date time.Time) timesheet.DailyEntry {
	return timesheet.DailyEntry{
		ID:          "entry-" + employeeID,
		EmployeeID:  employeeID,
		Branch:      branch,
		EntryDate:   date,
		DayType:     timesheet.DayTypeWorked,
		NormalHours: d("8"),
	}
}

func reviewRequest() domain.RequestReviewRequest {
	return domain.RequestReviewRequest{
		DateFrom:      "2026-08-20",
		DateTo:        "2026-08-26",
		Branch:        "labasa",
		InitiatedBy:   "sela",
		ConfirmSecret: testConfirmSecret,
	}
}

// ---------- timesheet review workflow ----------

func TestRequestTimesheetReview_CreatesPendingBatch(t *testing.T) {
	wageRepo := newFakeWageRepo()
	tsRepo := &fakeTimesheetRepo{
		entries: []timesheet.DailyEntry{workedEntry("e1", employee.BranchLabasa, week1From)},
	}
	svc := newTestService(t, wageRepo, tsRepo, nil)

	batch, err := svc.RequestTimesheetReview(context.Background(), reviewRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), batch.Status)
	assert.Equal(t, string(domain.ReviewTypeTimesheet), batch.ReviewType)
	assert.Equal(t, "2026-08-20", batch.DateFrom)
	assert.Equal(t, "2026-08-26", batch.DateTo)
	require.NotNil(t, batch.Branch)
	assert.Equal(t, "labasa", *batch.Branch)
	assert.NotEmpty(t, batch.Token)
}

func TestRequestTimesheetReview_WrongSecret(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	req := reviewRequest()
	req.ConfirmSecret = "guess"
	_, err := svc.RequestTimesheetReview(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)
}

func TestRequestTimesheetReview_RejectsMisalignedWeek(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	req := reviewRequest()
	req.DateFrom = "2026-08-21" // friday
	req.DateTo = "2026-08-27"
	_, err := svc.RequestTimesheetReview(context.Background(), req)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConfirmationMismatch)
}

func TestRequestTimesheetReview_NoDataInPeriod(t *testing.T) {
	svc := newTestService(t, nil, &fakeTimesheetRepo{}, nil)

	_, err := svc.RequestTimesheetReview(context.Background(), reviewRequest())

	assert.ErrorIs(t, err, domain.ErrPeriodNotEligible)
}

func TestRequestTimesheetReview_DuplicateSlot(t *testing.T) {
	wageRepo := newFakeWageRepo()
	tsRepo := &fakeTimesheetRepo{
		entries: []timesheet.DailyEntry{workedEntry("e1", employee.BranchLabasa, week1From)},
	}
	svc := newTestService(t, wageRepo, tsRepo, nil)

	_, err := svc.RequestTimesheetReview(context.Background(), reviewRequest())
	require.NoError(t, err)

	_, err = svc.RequestTimesheetReview(context.Background(), reviewRequest())
	assert.ErrorIs(t, err, domain.ErrBatchAlreadyExists)
}

// A declined review is resubmitted in place: same approval id, fresh token,
// back to pending.
func TestRequestTimesheetReview_ResubmitsDeclined(t *testing.T) {
	wageRepo := newFakeWageRepo()
	tsRepo := &fakeTimesheetRepo{
		entries: []timesheet.DailyEntry{workedEntry("e1", employee.BranchLabasa, week1From)},
	}
	svc := newTestService(t, wageRepo, tsRepo, nil)

	first, err := svc.RequestTimesheetReview(context.Background(), reviewRequest())
	require.NoError(t, err)

	_, err = svc.SetBatchStatusByToken(context.Background(), first.Token, domain.StatusDeclined)
	require.NoError(t, err)

	second, err := svc.RequestTimesheetReview(context.Background(), reviewRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ApprovalID, second.ApprovalID)
	assert.Equal(t, string(domain.StatusPending), second.Status)
	assert.NotEqual(t, first.Token, second.Token)
}

// ---------- final wage workflow ----------

func approvedReview(wageRepo *fakeWageRepo, branch *employee.Branch) {
	id := "review-" + batchBranchKey(branch)
	wageRepo.batches[id] = domain.PayPeriodSummary{
		ApprovalID: id,
		DateFrom:   week1From,
		DateTo:     week1To,
		Branch:     branch,
		Status:     domain.StatusApproved,
		ReviewType: domain.ReviewTypeTimesheet,
		Token:      "tok-" + id,
	}
}

func finalWageRequest(branch *string) domain.RequestFinalWageRequest {
	return domain.RequestFinalWageRequest{
		DateFrom:      "2026-08-20",
		DateTo:        "2026-08-26",
		Branch:        branch,
		InitiatedBy:   "sela",
		ConfirmSecret: testConfirmSecret,
	}
}

func TestRequestFinalWageApproval_ComputesRecords(t *testing.T) {
	wageRepo := newFakeWageRepo()
	approvedReview(wageRepo, branchPtr(employee.BranchLabasa))
	approvedReview(wageRepo, branchPtr(employee.BranchSuva))

	tsRepo := &fakeTimesheetRepo{
		summaries: []timesheet.PeriodHoursSummary{
			{EmployeeID: "e1", TotalNormalHours: d("50"), TotalMealAllowance: d("20")},
		},
	}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {
			ID:                   "e1",
			FullName:             "Mere Tuilagi",
			HourlyWage:           d("10"),
			WeeklyHoursThreshold: d("45"),
			FNPFEligible:         true,
			IsActive:             true,
			Branch:               employee.BranchLabasa,
			PaymentMethod:        employee.PaymentMethodCash,
		},
	}}
	svc := newTestService(t, wageRepo, tsRepo, empRepo)

	req := finalWageRequest(nil)
	req.OtherDeductions = map[string]decimal.Decimal{"e1": d("5")}
	batch, err := svc.RequestFinalWageApproval(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), batch.Status)
	assert.Equal(t, string(domain.ReviewTypeFinalWage), batch.ReviewType)
	assert.Nil(t, batch.Branch)
	require.Len(t, batch.Records, 1)

	rec := batch.Records[0]
	assert.Equal(t, "Mere Tuilagi", rec.EmployeeName)
	assertDecimal(t, "45", rec.HoursWorked, "hours worked")
	assertDecimal(t, "5", rec.OvertimeHours, "overtime hours")
	assertDecimal(t, "545", rec.GrossPay, "gross pay")
	assertDecimal(t, "36", rec.FNPFDeduction, "fnpf")
	assertDecimal(t, "504", rec.NetPay, "net pay")
}

func TestRequestFinalWageApproval_NotEligibleWithoutApprovedReview(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	_, err := svc.RequestFinalWageApproval(context.Background(), finalWageRequest(nil))

	assert.ErrorIs(t, err, domain.ErrPeriodNotEligible)
}

func TestRequestFinalWageApproval_SlotAlreadyTaken(t *testing.T) {
	wageRepo := newFakeWageRepo()
	approvedReview(wageRepo, branchPtr(employee.BranchLabasa))
	approvedReview(wageRepo, branchPtr(employee.BranchSuva))

	tsRepo := &fakeTimesheetRepo{
		summaries: []timesheet.PeriodHoursSummary{
			{EmployeeID: "e1", TotalNormalHours: d("40")},
		},
	}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", FullName: "Mere Tuilagi", HourlyWage: d("10"), IsActive: true, Branch: employee.BranchLabasa},
	}}
	svc := newTestService(t, wageRepo, tsRepo, empRepo)

	_, err := svc.RequestFinalWageApproval(context.Background(), finalWageRequest(nil))
	require.NoError(t, err)

	_, err = svc.RequestFinalWageApproval(context.Background(), finalWageRequest(nil))
	assert.ErrorIs(t, err, domain.ErrBatchAlreadyExists)
}

// ---------- edits ----------

func TestEditBatchRecords_RecomputesAndResetsStatus(t *testing.T) {
	wageRepo := newFakeWageRepo()
	approvedReview(wageRepo, branchPtr(employee.BranchLabasa))
	approvedReview(wageRepo, branchPtr(employee.BranchSuva))

	tsRepo := &fakeTimesheetRepo{
		summaries: []timesheet.PeriodHoursSummary{
			{EmployeeID: "e1", TotalNormalHours: d("40")},
		},
	}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {
			ID:                   "e1",
			FullName:             "Mere Tuilagi",
			HourlyWage:           d("10"),
			WeeklyHoursThreshold: d("45"),
			FNPFEligible:         true,
			IsActive:             true,
			Branch:               employee.BranchLabasa,
		},
	}}
	svc := newTestService(t, wageRepo, tsRepo, empRepo)

	batch, err := svc.RequestFinalWageApproval(context.Background(), finalWageRequest(nil))
	require.NoError(t, err)

	// Approve first so the edit provably demotes it back to pending.
	_, err = svc.SetBatchStatusByToken(context.Background(), batch.Token, domain.StatusApproved)
	require.NoError(t, err)

	newHours := d("45")
	edited, err := svc.EditBatchRecords(context.Background(), domain.EditBatchRequest{
		ApprovalID:    batch.ApprovalID,
		Updates:       []domain.RecordUpdate{{RecordID: batch.Records[0].ID, HoursWorked: &newHours}},
		ConfirmSecret: testConfirmSecret,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), edited.Status)
	require.Len(t, edited.Records, 1)
	assertDecimal(t, "45", edited.Records[0].HoursWorked, "hours worked")
	assertDecimal(t, "450", edited.Records[0].GrossPay, "gross pay")
	assertDecimal(t, "36", edited.Records[0].FNPFDeduction, "fnpf")
	assertDecimal(t, "414", edited.Records[0].NetPay, "net pay")
}

func TestEditBatchRecords_UnknownRecord(t *testing.T) {
	wageRepo := newFakeWageRepo()
	wageRepo.batches["b1"] = domain.PayPeriodSummary{ApprovalID: "b1", Status: domain.StatusPending}
	svc := newTestService(t, wageRepo, nil, nil)

	hours := d("10")
	_, err := svc.EditBatchRecords(context.Background(), domain.EditBatchRequest{
		ApprovalID:    "b1",
		Updates:       []domain.RecordUpdate{{RecordID: "missing", HoursWorked: &hours}},
		ConfirmSecret: testConfirmSecret,
	})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

// ---------- approval link ----------

func TestSetBatchStatusByToken(t *testing.T) {
	wageRepo := newFakeWageRepo()
	wageRepo.batches["b1"] = domain.PayPeriodSummary{
		ApprovalID: "b1",
		Status:     domain.StatusPending,
		Token:      "tok-1",
	}
	svc := newTestService(t, wageRepo, nil, nil)

	t.Run("approve", func(t *testing.T) {
		batch, err := svc.SetBatchStatusByToken(context.Background(), "tok-1", domain.StatusApproved)

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusApproved), batch.Status)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		_, err := svc.SetBatchStatusByToken(context.Background(), "tok-1", domain.StatusPending)

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.SetBatchStatusByToken(context.Background(), "nope", domain.StatusApproved)

		assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	})
}

// ---------- deletion ----------

func TestDeleteBatch(t *testing.T) {
	wageRepo := newFakeWageRepo()
	wageRepo.batches["b1"] = domain.PayPeriodSummary{ApprovalID: "b1", Token: "tok-1"}
	wageRepo.records["b1"] = []domain.WageRecord{{ID: "r1", ApprovalID: "b1"}}
	svc := newTestService(t, wageRepo, nil, nil)

	t.Run("wrong secret", func(t *testing.T) {
		err := svc.DeleteBatch(context.Background(), "b1", "guess")
		assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)
	})

	t.Run("removes batch and records", func(t *testing.T) {
		err := svc.DeleteBatch(context.Background(), "b1", testConfirmSecret)

		require.NoError(t, err)
		_, err = svc.GetBatch(context.Background(), "b1")
		assert.ErrorIs(t, err, domain.ErrBatchNotFound)
		assert.Empty(t, wageRepo.records["b1"])
	})
}
