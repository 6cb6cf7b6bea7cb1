package handler

import (
	adminapp "github.com/bricksflow/backend/internal/application/admin"
	"github.com/gin-gonic/gin"
)

// AdminPINHeader may carry the operator PIN instead of the query string
const AdminPINHeader = "X-Admin-PIN"

// AdminHandler serves the operator console
type AdminHandler struct {
	BaseHandler
	adminService *adminapp.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *adminapp.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// adminPIN reads the PIN from ?pin=, the X-Admin-PIN header or a JSON body
func adminPIN(c *gin.Context) string {
	if pin := c.Query("pin"); pin != "" {
		return pin
	}
	if pin := c.GetHeader(AdminPINHeader); pin != "" {
		return pin
	}
	var body adminapp.VerifyPINRequest
	if c.Request.ContentLength != 0 && c.ShouldBindJSON(&body) == nil {
		return body.PIN
	}
	return ""
}

// VerifyPIN godoc
// @ID           verifyAdminPIN
// @Summary      Check the operator PIN
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        pin query string false "Operator PIN"
// @Param        request body adminapp.VerifyPINRequest false "Operator PIN"
// @Success      200 {object} APIResponse[adminapp.VerifyPINResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /admin/verify-pin [post]
func (h *AdminHandler) VerifyPIN(c *gin.Context) {
	resp, err := h.adminService.VerifyPIN(c.Request.Context(), adminPIN(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListUsers godoc
// @ID           listAdminUsers
// @Summary      List every account with its factory and plan
// @Tags         admin
// @Produce      json
// @Param        pin query string false "Operator PIN"
// @Success      200 {object} APIResponse[[]adminapp.UserRow]
// @Failure      401 {object} ErrorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows, err := h.adminService.ListUsers(c.Request.Context(), adminPIN(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
