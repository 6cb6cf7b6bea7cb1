package handler

import (
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	financeapp "github.com/bricksflow/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles factory rates and other expenses
type FinanceHandler struct {
	BaseHandler
	finance *financeapp.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(finance *financeapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// CreateRate godoc
// @ID           createFactoryRate
// @Summary      Add a factory rate
// @Description  Activating a rate deactivates the other rates of the same type
// @Tags         factory-rates
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateRateRequest true "Rate"
// @Success      201 {object} APIResponse[financeapp.RateResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factory-rates [post]
func (h *FinanceHandler) CreateRate(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req financeapp.CreateRateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rate, err := h.finance.CreateRate(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rate)
}

// ListRates godoc
// @ID           listFactoryRates
// @Summary      List a factory's rates
// @Tags         factory-rates
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]financeapp.RateResponse]
// @Security     BearerAuth
// @Router       /factory-rates/factory/{factory_id} [get]
func (h *FinanceHandler) ListRates(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	rates, err := h.finance.ListRates(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// UpdateRate godoc
// @ID           updateFactoryRate
// @Summary      Update a factory rate
// @Tags         factory-rates
// @Accept       json
// @Produce      json
// @Param        id path string true "Rate ID" format(uuid)
// @Param        request body financeapp.UpdateRateRequest true "Fields to change"
// @Success      200 {object} APIResponse[financeapp.RateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factory-rates/{id} [put]
func (h *FinanceHandler) UpdateRate(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateRateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rate, err := h.finance.UpdateRate(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// DeleteRate godoc
// @ID           deleteFactoryRate
// @Summary      Delete a factory rate
// @Tags         factory-rates
// @Param        id path string true "Rate ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /factory-rates/{id} [delete]
func (h *FinanceHandler) DeleteRate(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.finance.DeleteRate(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense godoc
// @ID           createOtherExpense
// @Summary      Record an expense
// @Tags         other-expenses
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /other-expenses [post]
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req financeapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.finance.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// ListExpenses godoc
// @ID           listOtherExpenses
// @Summary      List a factory's expenses
// @Tags         other-expenses
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]financeapp.ExpenseResponse]
// @Security     BearerAuth
// @Router       /other-expenses/factory/{factory_id} [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	expenses, err := h.finance.ListExpenses(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// UpdateExpense godoc
// @ID           updateOtherExpense
// @Summary      Update an expense
// @Tags         other-expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Fields to change"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /other-expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.finance.UpdateExpense(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// DeleteExpense godoc
// @ID           deleteOtherExpense
// @Summary      Delete an expense
// @Tags         other-expenses
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /other-expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.finance.DeleteExpense(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
