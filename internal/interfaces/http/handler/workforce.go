package handler

import (
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	workforceapp "github.com/bricksflow/backend/internal/application/workforce"
	"github.com/gin-gonic/gin"
)

// WorkforceHandler handles employees and their payments
type WorkforceHandler struct {
	BaseHandler
	workforce *workforceapp.WorkforceService
}

// NewWorkforceHandler creates a new WorkforceHandler
func NewWorkforceHandler(workforce *workforceapp.WorkforceService) *WorkforceHandler {
	return &WorkforceHandler{workforce: workforce}
}

// CreateEmployee godoc
// @ID           createEmployee
// @Summary      Add an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body workforceapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[workforceapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *WorkforceHandler) CreateEmployee(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req workforceapp.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.workforce.CreateEmployee(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// ListEmployees godoc
// @ID           listEmployees
// @Summary      List a factory's employees
// @Tags         employees
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]workforceapp.EmployeeResponse]
// @Security     BearerAuth
// @Router       /employees/factory/{factory_id} [get]
func (h *WorkforceHandler) ListEmployees(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	employees, err := h.workforce.ListEmployees(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employees)
}

// UpdateEmployee godoc
// @ID           updateEmployee
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body workforceapp.UpdateEmployeeRequest true "Fields to change"
// @Success      200 {object} APIResponse[workforceapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *WorkforceHandler) UpdateEmployee(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.workforce.UpdateEmployee(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// DeleteEmployee godoc
// @ID           deleteEmployee
// @Summary      Delete an employee
// @Tags         employees
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *WorkforceHandler) DeleteEmployee(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.workforce.DeleteEmployee(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePayment godoc
// @ID           createEmployeePayment
// @Summary      Record a payment to an employee
// @Tags         employee-payments
// @Accept       json
// @Produce      json
// @Param        request body workforceapp.CreatePaymentRequest true "Payment"
// @Success      201 {object} APIResponse[workforceapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employee-payments [post]
func (h *WorkforceHandler) CreatePayment(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req workforceapp.CreatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	payment, err := h.workforce.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments godoc
// @ID           listEmployeePayments
// @Summary      List a factory's employee payments
// @Tags         employee-payments
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]workforceapp.PaymentResponse]
// @Security     BearerAuth
// @Router       /employee-payments/factory/{factory_id} [get]
func (h *WorkforceHandler) ListPayments(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	payments, err := h.workforce.ListPayments(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// DeletePayment godoc
// @ID           deleteEmployeePayment
// @Summary      Delete an employee payment
// @Tags         employee-payments
// @Param        id path string true "Payment ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /employee-payments/{id} [delete]
func (h *WorkforceHandler) DeletePayment(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.workforce.DeletePayment(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
