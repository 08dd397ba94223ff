package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/domain/wage"
	"github.com/vitilevu-hr/payroll-backend-go/internal/handler/http/response"
)

// ApprovalHandler serves the external approval link: possession of the batch
// token is the only credential, so these routes sit outside the JWT group.
type ApprovalHandler interface {
	GetByToken(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	wageService wage.WageService
}

func NewApprovalHandler(wageService wage.WageService) ApprovalHandler {
	return &approvalHandlerImpl{wageService: wageService}
}

func (h *approvalHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	result, err := h.wageService.GetBatchByToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *approvalHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.wageService.SetBatchStatusByToken(r.Context(), token, wage.BatchStatus(req.Status))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch status updated", result)
}
