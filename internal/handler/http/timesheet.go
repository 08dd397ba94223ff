package http

import (
	"encoding/json"
	"net/http"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/timesheet"
	"github.com/vitilevu-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	SaveEntry(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	GetWeek(w http.ResponseWriter, r *http.Request)
	ListWeeks(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.SaveEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	dateStr := r.URL.Query().Get("date")
	if employeeID == "" || dateStr == "" {
		response.BadRequest(w, "employee_id and date are required", nil)
		return
	}
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.timesheetService.GetEntry(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	dateStr := r.URL.Query().Get("date")
	if branch == "" || dateStr == "" {
		response.BadRequest(w, "branch and date are required", nil)
		return
	}
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		response.BadRequest(w, "date must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.timesheetService.GetWeek(r.Context(), employee.Branch(branch), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) ListWeeks(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	if branch == "" {
		response.BadRequest(w, "branch is required", nil)
		return
	}

	result, err := h.timesheetService.ListWeeksWithData(r.Context(), employee.Branch(branch))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
