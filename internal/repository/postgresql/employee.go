package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, full_name, position, hourly_wage, weekly_hours_threshold,
	fnpf_number, tin_number, bank_code, bank_account_number,
	payment_method, branch, fnpf_eligible, is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Position, &e.HourlyWage, &e.WeeklyHoursThreshold,
		&e.FNPFNumber, &e.TINNumber, &e.BankCode, &e.BankAccountNumber,
		&e.PaymentMethod, &e.Branch, &e.FNPFEligible, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, full_name, position, hourly_wage, weekly_hours_threshold,
			fnpf_number, tin_number, bank_code, bank_account_number,
			payment_method, branch, fnpf_eligible, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.FullName, emp.Position, emp.HourlyWage, emp.WeeklyHoursThreshold,
		emp.FNPFNumber, emp.TINNumber, emp.BankCode, emp.BankAccountNumber,
		emp.PaymentMethod, emp.Branch, emp.FNPFEligible,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_employees_fnpf_number") {
			return employee.Employee{}, employee.ErrFNPFNumberExists
		}
		if isUniqueViolation(err, "uk_employees_tin_number") {
			return employee.Employee{}, employee.ErrTINNumberExists
		}
		return employee.Employee{}, wrapStoreErr("failed to create employee", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, wrapStoreErr("failed to get employee", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) ORDER BY full_name`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapStoreErr("failed to get employees", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) List(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr("failed to list employees", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) ListActiveByBranch(ctx context.Context, branch *employee.Branch) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active`
	args := []interface{}{}
	if branch != nil {
		query += ` AND branch = $1`
		args = append(args, *branch)
	}
	query += ` ORDER BY full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("failed to list employees by branch", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	idx := 1

	addSet := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.Position != nil {
		addSet("position", *req.Position)
	}
	if req.HourlyWage != nil {
		addSet("hourly_wage", *req.HourlyWage)
	}
	if req.WeeklyHoursThreshold != nil {
		addSet("weekly_hours_threshold", *req.WeeklyHoursThreshold)
	}
	if req.FNPFNumber != nil {
		addSet("fnpf_number", *req.FNPFNumber)
	}
	if req.TINNumber != nil {
		addSet("tin_number", *req.TINNumber)
	}
	if req.BankCode != nil {
		addSet("bank_code", *req.BankCode)
	}
	if req.BankAccountNumber != nil {
		addSet("bank_account_number", *req.BankAccountNumber)
	}
	if req.PaymentMethod != nil {
		addSet("payment_method", *req.PaymentMethod)
	}
	if req.Branch != nil {
		addSet("branch", *req.Branch)
	}
	if req.FNPFEligible != nil {
		addSet("fnpf_eligible", *req.FNPFEligible)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, req.ID)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(
		`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), idx, employeeColumns,
	)

	e, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err, "uk_employees_fnpf_number") {
			return employee.Employee{}, employee.ErrFNPFNumberExists
		}
		if isUniqueViolation(err, "uk_employees_tin_number") {
			return employee.Employee{}, employee.ErrTINNumberExists
		}
		return employee.Employee{}, wrapStoreErr("failed to update employee", err)
	}

	return e, nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return wrapStoreErr("failed to deactivate employee", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var result []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("failed to read employees", err)
	}
	return result, nil
}
