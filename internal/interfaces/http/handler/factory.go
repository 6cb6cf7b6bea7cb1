package handler

import (
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/gin-gonic/gin"
)

// FactoryHandler handles the caller's factory
type FactoryHandler struct {
	BaseHandler
	factoryService *factoryapp.FactoryService
}

// NewFactoryHandler creates a new FactoryHandler
func NewFactoryHandler(factoryService *factoryapp.FactoryService) *FactoryHandler {
	return &FactoryHandler{factoryService: factoryService}
}

// Create godoc
// @ID           createFactory
// @Summary      Create the caller's factory
// @Description  A user owns at most one factory. The factory starts on a trial.
// @Tags         factories
// @Accept       json
// @Produce      json
// @Param        request body factoryapp.CreateFactoryRequest true "Factory"
// @Success      201 {object} APIResponse[factoryapp.FactoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factories [post]
func (h *FactoryHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req factoryapp.CreateFactoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	f, err := h.factoryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, f)
}

// List godoc
// @ID           listFactories
// @Summary      List the caller's factories
// @Tags         factories
// @Produce      json
// @Success      200 {object} APIResponse[[]factoryapp.FactoryResponse]
// @Security     BearerAuth
// @Router       /factories [get]
func (h *FactoryHandler) List(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	factories, err := h.factoryService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, factories)
}

// Get godoc
// @ID           getFactory
// @Summary      Get a factory
// @Tags         factories
// @Produce      json
// @Param        id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[factoryapp.FactoryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factories/{id} [get]
func (h *FactoryHandler) Get(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}

	f, err := h.factoryService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// Update godoc
// @ID           updateFactory
// @Summary      Update a factory
// @Tags         factories
// @Accept       json
// @Produce      json
// @Param        id path string true "Factory ID" format(uuid)
// @Param        request body factoryapp.UpdateFactoryRequest true "Fields to change"
// @Success      200 {object} APIResponse[factoryapp.FactoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factories/{id} [put]
func (h *FactoryHandler) Update(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req factoryapp.UpdateFactoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	f, err := h.factoryService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// Delete godoc
// @ID           deleteFactory
// @Summary      Delete a factory
// @Tags         factories
// @Param        id path string true "Factory ID" format(uuid)
// @Success      204
// @Failure      402 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /factories/{id} [delete]
func (h *FactoryHandler) Delete(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}

	if err := h.factoryService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
