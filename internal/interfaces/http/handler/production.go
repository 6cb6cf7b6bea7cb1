package handler

import (
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	productionapp "github.com/bricksflow/backend/internal/application/production"
	"github.com/gin-gonic/gin"
)

// ProductionHandler handles production logs
type ProductionHandler struct {
	BaseHandler
	productionService *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// Create godoc
// @ID           createProductionLog
// @Summary      Log a day's production
// @Description  product_name is filled from the product definition when omitted
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body productionapp.CreateLogRequest true "Production log"
// @Success      201 {object} APIResponse[productionapp.LogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /production [post]
func (h *ProductionHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req productionapp.CreateLogRequest
	if !h.bindJSON(c, &req) {
		return
	}

	log, err := h.productionService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, log)
}

// ListByFactory godoc
// @ID           listProductionLogs
// @Summary      List a factory's production logs
// @Tags         production
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]productionapp.LogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /production/factory/{factory_id} [get]
func (h *ProductionHandler) ListByFactory(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	logs, err := h.productionService.ListByFactory(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// Get godoc
// @ID           getProductionLog
// @Summary      Get a production log
// @Tags         production
// @Produce      json
// @Param        id path string true "Production log ID" format(uuid)
// @Success      200 {object} APIResponse[productionapp.LogResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /production/{id} [get]
func (h *ProductionHandler) Get(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}

	log, err := h.productionService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// Update godoc
// @ID           updateProductionLog
// @Summary      Update a production log
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Production log ID" format(uuid)
// @Param        request body productionapp.UpdateLogRequest true "Fields to change"
// @Success      200 {object} APIResponse[productionapp.LogResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /production/{id} [put]
func (h *ProductionHandler) Update(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req productionapp.UpdateLogRequest
	if !h.bindJSON(c, &req) {
		return
	}

	log, err := h.productionService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// Delete godoc
// @ID           deleteProductionLog
// @Summary      Delete a production log
// @Tags         production
// @Param        id path string true "Production log ID" format(uuid)
// @Success      204
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /production/{id} [delete]
func (h *ProductionHandler) Delete(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}

	if err := h.productionService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
