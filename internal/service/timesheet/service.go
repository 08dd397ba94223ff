package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	domain "github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/payweek"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	timesheetRepo domain.TimesheetRepository
	employeeRepo  employee.EmployeeRepository
}

func NewTimesheetService(
	timesheetRepo domain.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
) domain.TimesheetService {
	return &TimesheetServiceImpl{
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
	}
}

func (s *TimesheetServiceImpl) SaveEntry(ctx context.Context, req domain.SaveEntryRequest) (domain.EntryResponse, error) {
	var errs validator.ValidationErrors

	entryDate, ok := validator.IsValidDate(req.EntryDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "entry_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	branch := employee.Branch(req.Branch)
	if !employee.ValidBranch(branch) {
		errs = append(errs, validator.ValidationError{Field: "branch", Message: "must be 'labasa' or 'suva'"})
	}
	dayType := domain.DayType(req.DayType)
	if !domain.ValidDayType(dayType) {
		errs = append(errs, validator.ValidationError{Field: "day_type", Message: "must be 'worked', 'absent' or 'leave'"})
	}
	if len(errs) > 0 {
		return domain.EntryResponse{}, errs
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return domain.EntryResponse{}, domain.ErrEmployeeNotFound
		}
		return domain.EntryResponse{}, err
	}
	if !emp.IsActive {
		return domain.EntryResponse{}, employee.ErrEmployeeInactive
	}

	entry := domain.DailyEntry{
		EmployeeID: req.EmployeeID,
		Branch:     branch,
		EntryDate:  payweek.Truncate(entryDate),
		DayType:    dayType,
	}

	switch dayType {
	case domain.DayTypeAbsent:
		// Absent clears all time, allowance and reason fields.
		entry.NormalHours = decimal.Zero
		entry.OvertimeHours = decimal.Zero
		entry.MealAllowance = decimal.Zero

	case domain.DayTypeLeave:
		hours, verrs := validateLeaveDay(req)
		if verrs != nil {
			return domain.EntryResponse{}, verrs
		}
		entry.LeaveType = req.LeaveType
		entry.NormalHours = hours
		entry.OvertimeHours = decimal.Zero
		entry.MealAllowance = decimal.Zero

	case domain.DayTypeWorked:
		derived, verrs := validateWorkedDay(req)
		if verrs != nil {
			return domain.EntryResponse{}, verrs
		}
		entry.TimeIn = req.TimeIn
		entry.TimeOut = req.TimeOut
		entry.LunchIn = req.LunchIn
		entry.LunchOut = req.LunchOut
		entry.NormalHours = derived.NormalHours
		entry.OvertimeHours = derived.OvertimeHours
		entry.MealAllowance = derived.MealAllowance
		entry.OvertimeReason = req.OvertimeReason
	}

	// Upsert keyed by (employee_id, entry_date); a fresh id is only used
	// when no row exists yet.
	entry.ID = uuid.New().String()
	stored, err := s.timesheetRepo.Upsert(ctx, entry)
	if err != nil {
		return domain.EntryResponse{}, err
	}

	return domain.ToResponse(stored), nil
}

func (s *TimesheetServiceImpl) GetEntry(ctx context.Context, employeeID string, date time.Time) (domain.EntryResponse, error) {
	entry, err := s.timesheetRepo.GetByEmployeeDate(ctx, employeeID, payweek.Truncate(date))
	if err != nil {
		return domain.EntryResponse{}, err
	}
	return domain.ToResponse(entry), nil
}

func (s *TimesheetServiceImpl) GetWeek(ctx context.Context, branch employee.Branch, anyDateInWeek time.Time) (domain.WeekResponse, error) {
	if !employee.ValidBranch(branch) {
		return domain.WeekResponse{}, employee.ErrInvalidBranch
	}

	week := payweek.Containing(anyDateInWeek)
	entries, err := s.timesheetRepo.ListForPeriod(ctx, week.From, week.To, &branch)
	if err != nil {
		return domain.WeekResponse{}, err
	}

	resp := domain.WeekResponse{
		DateFrom: week.From.Format("2006-01-02"),
		DateTo:   week.To.Format("2006-01-02"),
		Branch:   string(branch),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, domain.ToResponse(e))
	}
	return resp, nil
}

func (s *TimesheetServiceImpl) ListWeeksWithData(ctx context.Context, branch employee.Branch) ([]domain.WeekOption, error) {
	if !employee.ValidBranch(branch) {
		return nil, employee.ErrInvalidBranch
	}

	dates, err := s.timesheetRepo.ListDatesWithEntries(ctx, branch)
	if err != nil {
		return nil, err
	}

	seen := make(map[time.Time]bool)
	var weeks []domain.WeekOption
	for _, d := range dates {
		week := payweek.Containing(d)
		if seen[week.From] {
			continue
		}
		seen[week.From] = true
		weeks = append(weeks, domain.WeekOption{
			DateFrom: week.From,
			DateTo:   week.To,
			Branch:   string(branch),
		})
	}
	return weeks, nil
}
