package http

import (
	"encoding/json"
	"net/http"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/balance"
	"github.com/clockwise-hr/clockwise-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BalanceHandler interface {
	Adjust(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)
}

type balanceHandlerImpl struct {
	balanceService balance.Service
}

func NewBalanceHandler(balanceService balance.Service) BalanceHandler {
	return &balanceHandlerImpl{
		balanceService: balanceService,
	}
}

// Adjust implements BalanceHandler.
func (h *balanceHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	var req balance.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.balanceService.AdjustBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance adjusted", result)
}

// GetBalances implements BalanceHandler.
func (h *balanceHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.balanceService.GetBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAdjustments implements BalanceHandler.
func (h *balanceHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveTypeID := r.URL.Query().Get("leave_type_id")

	results, err := h.balanceService.ListAdjustments(r.Context(), employeeID, leaveTypeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
