package handler

import (
	"context"
	"io"

	partnerapp "github.com/bricksflow/backend/internal/application/partner"
	csvimport "github.com/bricksflow/backend/internal/infrastructure/import"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles the customer and supplier directories
type PartnerHandler struct {
	BaseHandler
	customers *partnerapp.CustomerService
	suppliers *partnerapp.SupplierService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(customers *partnerapp.CustomerService, suppliers *partnerapp.SupplierService) *PartnerHandler {
	return &PartnerHandler{customers: customers, suppliers: suppliers}
}

// CreateCustomer godoc
// @ID           createCustomer
// @Summary      Add a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [post]
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// ListCustomers godoc
// @ID           listCustomers
// @Summary      List a factory's customers
// @Tags         customers
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.CustomerResponse]
// @Security     BearerAuth
// @Router       /customers/factory/{factory_id} [get]
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	customers, err := h.customers.ListByFactory(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// ImportCustomers godoc
// @ID           importCustomers
// @Summary      Import customers from a CSV file
// @Description  Columns: name (required), phone, address, notes. Rows whose name is already listed are skipped.
// @Tags         customers
// @Accept       multipart/form-data
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        file formData file true "CSV file"
// @Success      200 {object} APIResponse[csvimport.Result]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/factory/{factory_id}/import [post]
func (h *PartnerHandler) ImportCustomers(c *gin.Context) {
	h.importCSV(c, h.customers.Import)
}

// UpdateCustomer godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body partnerapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *PartnerHandler) UpdateCustomer(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// DeleteCustomer godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *PartnerHandler) DeleteCustomer(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSupplier godoc
// @ID           createSupplier
// @Summary      Add a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSupplierRequest true "Supplier"
// @Success      201 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers [post]
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req partnerapp.CreateSupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}

	supplier, err := h.suppliers.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// ListSuppliers godoc
// @ID           listSuppliers
// @Summary      List a factory's suppliers
// @Tags         suppliers
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.SupplierResponse]
// @Security     BearerAuth
// @Router       /suppliers/factory/{factory_id} [get]
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	suppliers, err := h.suppliers.ListByFactory(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// ImportSuppliers godoc
// @ID           importSuppliers
// @Summary      Import suppliers from a CSV file
// @Description  Columns: name (required), contact_number, address, material_type
// @Tags         suppliers
// @Accept       multipart/form-data
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        file formData file true "CSV file"
// @Success      200 {object} APIResponse[csvimport.Result]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/factory/{factory_id}/import [post]
func (h *PartnerHandler) ImportSuppliers(c *gin.Context) {
	h.importCSV(c, h.suppliers.Import)
}

// UpdateSupplier godoc
// @ID           updateSupplier
// @Summary      Update a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Param        request body partnerapp.UpdateSupplierRequest true "Fields to change"
// @Success      200 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id} [put]
func (h *PartnerHandler) UpdateSupplier(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateSupplierRequest
	if !h.bindJSON(c, &req) {
		return
	}

	supplier, err := h.suppliers.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// DeleteSupplier godoc
// @ID           deleteSupplier
// @Summary      Delete a supplier
// @Tags         suppliers
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /suppliers/{id} [delete]
func (h *PartnerHandler) DeleteSupplier(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.suppliers.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type importFunc func(ctx context.Context, userID, factoryID uuid.UUID, file io.Reader) (*csvimport.Result, error)

// importCSV reads the "file" multipart field and hands it to run
func (h *PartnerHandler) importCSV(c *gin.Context, run importFunc) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	res, err := run(c.Request.Context(), userID, factoryID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}
