package handler

import (
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	inventoryapp "github.com/bricksflow/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// MaterialHandler handles raw materials, their definitions, purchases and
// usage
type MaterialHandler struct {
	BaseHandler
	inventory *inventoryapp.InventoryService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(inventory *inventoryapp.InventoryService) *MaterialHandler {
	return &MaterialHandler{inventory: inventory}
}

// CreateMaterial godoc
// @ID           createMaterial
// @Summary      Add a material to stock tracking
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateMaterialRequest true "Material"
// @Success      201 {object} APIResponse[inventoryapp.MaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials [post]
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}

	material, err := h.inventory.CreateMaterial(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// ListMaterials godoc
// @ID           listMaterials
// @Summary      List a factory's materials with stock and average cost
// @Tags         materials
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]inventoryapp.MaterialResponse]
// @Security     BearerAuth
// @Router       /materials/factory/{factory_id} [get]
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	materials, err := h.inventory.ListMaterials(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// UpdateMaterial godoc
// @ID           updateMaterial
// @Summary      Update a material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        request body inventoryapp.UpdateMaterialRequest true "Fields to change"
// @Success      200 {object} APIResponse[inventoryapp.MaterialResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}

	material, err := h.inventory.UpdateMaterial(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// DeleteMaterial godoc
// @ID           deleteMaterial
// @Summary      Delete a material
// @Tags         materials
// @Param        id path string true "Material ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id} [delete]
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.DeleteMaterial(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateDefinition godoc
// @ID           createMaterialDefinition
// @Summary      Define a material name and unit
// @Tags         material-definitions
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateDefinitionRequest true "Definition"
// @Success      201 {object} APIResponse[inventoryapp.DefinitionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /material-definitions [post]
func (h *MaterialHandler) CreateDefinition(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateDefinitionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	def, err := h.inventory.CreateDefinition(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, def)
}

// ListDefinitions godoc
// @ID           listMaterialDefinitions
// @Summary      List a factory's material definitions
// @Tags         material-definitions
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]inventoryapp.DefinitionResponse]
// @Security     BearerAuth
// @Router       /material-definitions/factory/{factory_id} [get]
func (h *MaterialHandler) ListDefinitions(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	defs, err := h.inventory.ListDefinitions(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, defs)
}

// DeleteDefinition godoc
// @ID           deleteMaterialDefinition
// @Summary      Delete a material definition
// @Tags         material-definitions
// @Param        id path string true "Definition ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /material-definitions/{id} [delete]
func (h *MaterialHandler) DeleteDefinition(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.DeleteDefinition(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordPurchase godoc
// @ID           createMaterialPurchase
// @Summary      Record a material purchase
// @Description  Raises the material's stock and recomputes its weighted average cost in the same transaction
// @Tags         material-purchases
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreatePurchaseRequest true "Purchase"
// @Success      201 {object} APIResponse[inventoryapp.PurchaseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /material-purchases [post]
func (h *MaterialHandler) RecordPurchase(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req inventoryapp.CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.inventory.RecordPurchase(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// ListPurchases godoc
// @ID           listMaterialPurchases
// @Summary      List a factory's material purchases
// @Tags         material-purchases
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]inventoryapp.PurchaseResponse]
// @Security     BearerAuth
// @Router       /material-purchases/factory/{factory_id} [get]
func (h *MaterialHandler) ListPurchases(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	purchases, err := h.inventory.ListPurchases(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchases)
}

// DeletePurchase godoc
// @ID           deleteMaterialPurchase
// @Summary      Delete a purchase record
// @Description  Stock is not reversed
// @Tags         material-purchases
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /material-purchases/{id} [delete]
func (h *MaterialHandler) DeletePurchase(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.DeletePurchase(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordUsage godoc
// @ID           createMaterialUsage
// @Summary      Record material consumption
// @Description  Lowers the material's stock, never below zero
// @Tags         material-usage
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateUsageRequest true "Usage"
// @Success      201 {object} APIResponse[inventoryapp.UsageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /material-usage [post]
func (h *MaterialHandler) RecordUsage(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateUsageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	usage, err := h.inventory.RecordUsage(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, usage)
}

// ListUsage godoc
// @ID           listMaterialUsage
// @Summary      List a factory's material usage
// @Tags         material-usage
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]inventoryapp.UsageResponse]
// @Security     BearerAuth
// @Router       /material-usage/factory/{factory_id} [get]
func (h *MaterialHandler) ListUsage(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	usage, err := h.inventory.ListUsage(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, usage)
}

// DeleteUsage godoc
// @ID           deleteMaterialUsage
// @Summary      Delete a usage record
// @Tags         material-usage
// @Param        id path string true "Usage ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /material-usage/{id} [delete]
func (h *MaterialHandler) DeleteUsage(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.DeleteUsage(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
