package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/employee"
	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/handler/http/response"
)

type WageHandler interface {
	EligibleReviewPeriods(w http.ResponseWriter, r *http.Request)
	EligibleFinalWagePeriods(w http.ResponseWriter, r *http.Request)
	RequestReview(w http.ResponseWriter, r *http.Request)
	RequestFinalWage(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	EditBatchRecords(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)
}

type wageHandlerImpl struct {
	wageService wage.WageService
}

func NewWageHandler(wageService wage.WageService) WageHandler {
	return &wageHandlerImpl{wageService: wageService}
}

func (h *wageHandlerImpl) EligibleReviewPeriods(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	if branch == "" {
		response.BadRequest(w, "branch is required", nil)
		return
	}

	result, err := h.wageService.EligibleReviewPeriods(r.Context(), employee.Branch(branch))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *wageHandlerImpl) EligibleFinalWagePeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.wageService.EligibleFinalWagePeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *wageHandlerImpl) RequestReview(w http.ResponseWriter, r *http.Request) {
	var req wage.RequestReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.wageService.RequestTimesheetReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet review requested", result)
}

func (h *wageHandlerImpl) RequestFinalWage(w http.ResponseWriter, r *http.Request) {
	var req wage.RequestFinalWageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.wageService.RequestFinalWageApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Final wage approval requested", result)
}

func (h *wageHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalID")
	if approvalID == "" {
		response.BadRequest(w, "Approval ID is required", nil)
		return
	}

	result, err := h.wageService.GetBatch(r.Context(), approvalID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *wageHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	var filter wage.BatchFilter

	if v := r.URL.Query().Get("status"); v != "" {
		status := wage.BatchStatus(v)
		if !wage.ValidBatchStatus(status) {
			response.BadRequest(w, "status must be 'pending', 'approved' or 'declined'", nil)
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("review_type"); v != "" {
		reviewType := wage.ReviewType(v)
		if reviewType != wage.ReviewTypeTimesheet && reviewType != wage.ReviewTypeFinalWage {
			response.BadRequest(w, "review_type must be 'timesheet_review' or 'final_wage'", nil)
			return
		}
		filter.ReviewType = &reviewType
	}
	if v := r.URL.Query().Get("branch"); v != "" {
		branch := employee.Branch(v)
		if !employee.ValidBranch(branch) {
			response.BadRequest(w, "branch must be 'labasa' or 'suva'", nil)
			return
		}
		filter.Branch = &branch
	}

	result, err := h.wageService.ListBatches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *wageHandlerImpl) EditBatchRecords(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalID")
	if approvalID == "" {
		response.BadRequest(w, "Approval ID is required", nil)
		return
	}

	var req wage.EditBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ApprovalID = approvalID

	result, err := h.wageService.EditBatchRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch updated and reset to pending", result)
}

func (h *wageHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalID")
	if approvalID == "" {
		response.BadRequest(w, "Approval ID is required", nil)
		return
	}

	var req struct {
		ConfirmSecret string `json:"confirm_secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.wageService.DeleteBatch(r.Context(), approvalID, req.ConfirmSecret); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch deleted", nil)
}
