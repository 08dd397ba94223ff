package main

import (
	"fmt"
	"net/http"

	"github.com/vitilevu-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/vitilevu-hr/payroll-backend-go/internal/handler/http"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/database"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/vitilevu-hr/payroll-backend-go/internal/repository/postgresql"
	authService "github.com/vitilevu-hr/payroll-backend-go/internal/service/auth"
	employeeService "github.com/vitilevu-hr/payroll-backend-go/internal/service/employee"
	timesheetService "github.com/vitilevu-hr/payroll-backend-go/internal/service/timesheet"
	wageService "github.com/vitilevu-hr/payroll-backend-go/internal/service/wage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	wageRepo := postgresql.NewWageRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, employeeRepo)
	wageSvc := wageService.NewWageService(wageRepo, timesheetRepo, employeeRepo, cfg.Approval.ConfirmSecretHash)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	wageHandler := appHTTP.NewWageHandler(wageSvc)
	approvalHandler := appHTTP.NewApprovalHandler(wageSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		authHandler,
		employeeHandler,
		timesheetHandler,
		wageHandler,
		approvalHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
