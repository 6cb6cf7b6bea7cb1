package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	printingapp "github.com/bricksflow/backend/internal/application/printing"
	tradeapp "github.com/bricksflow/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles brick sales, the customer ledger and invoices
type SaleHandler struct {
	BaseHandler
	sales    *tradeapp.SaleService
	invoices *printingapp.InvoiceService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *tradeapp.SaleService, invoices *printingapp.InvoiceService) *SaleHandler {
	return &SaleHandler{sales: sales, invoices: invoices}
}

// StoredInvoiceResponse points at an invoice uploaded to object storage
type StoredInvoiceResponse struct {
	InvoiceNumber string    `json:"invoice_number"`
	URL           string    `json:"url"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Create godoc
// @ID           createSale
// @Summary      Record a sale
// @Description  Takes the sold quantity out of the product's stock
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSaleRequest true "Sale"
// @Success      201 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req tradeapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// ListByFactory godoc
// @ID           listSales
// @Summary      List a factory's sales, newest first
// @Tags         sales
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        start_date query string false "From date (YYYY-MM-DD)"
// @Param        end_date query string false "To date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum rows"
// @Success      200 {object} APIResponse[[]tradeapp.SaleResponse]
// @Security     BearerAuth
// @Router       /sales/factory/{factory_id} [get]
func (h *SaleHandler) ListByFactory(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var query factoryapp.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	sales, err := h.sales.ListByFactory(c.Request.Context(), userID, factoryID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// Get godoc
// @ID           getSale
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update godoc
// @ID           updateSale
// @Summary      Update a sale
// @Description  Quantity changes adjust the product's stock by the difference
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body tradeapp.UpdateSaleRequest true "Fields to change"
// @Success      200 {object} APIResponse[tradeapp.SaleResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.sales.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete godoc
// @ID           deleteSale
// @Summary      Delete a sale
// @Tags         sales
// @Param        id path string true "Sale ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Customers godoc
// @ID           listSaleCustomers
// @Summary      Customer ledger
// @Description  Sales grouped by customer name with totals and balance due
// @Tags         sales
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]tradeapp.CustomerSummaryResponse]
// @Security     BearerAuth
// @Router       /sales/factory/{factory_id}/customers [get]
func (h *SaleHandler) Customers(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}

	rows, err := h.sales.Customers(c.Request.Context(), userID, factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CustomerPayment godoc
// @ID           applyCustomerPayment
// @Summary      Apply a lump-sum customer payment
// @Description  Spreads the amount over the customer's unpaid sales, oldest first
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        factory_id path string true "Factory ID" format(uuid)
// @Param        request body tradeapp.CustomerPaymentRequest true "Payment"
// @Success      200 {object} APIResponse[tradeapp.CustomerPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/factory/{factory_id}/customer-payments [post]
func (h *SaleHandler) CustomerPayment(c *gin.Context) {
	userID, factoryID, ok := h.userAndPathID(c, "factory_id")
	if !ok {
		return
	}
	var req tradeapp.CustomerPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.sales.ApplyCustomerPayment(c.Request.Context(), userID, factoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Invoice godoc
// @ID           saleInvoice
// @Summary      Sale invoice PDF
// @Description  Streams the PDF. With store=true and object storage configured the PDF is uploaded and a download link returned instead.
// @Tags         sales
// @Produce      application/pdf
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        store query bool false "Upload and return a link"
// @Success      200 {file} binary
// @Success      201 {object} APIResponse[StoredInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales/{id}/invoice [get]
func (h *SaleHandler) Invoice(c *gin.Context) {
	userID, id, ok := h.userAndPathID(c, "id")
	if !ok {
		return
	}
	store, _ := strconv.ParseBool(c.Query("store"))

	inv, err := h.invoices.Render(c.Request.Context(), userID, id, store && h.invoices.StorageEnabled())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if inv.URL != "" {
		h.Created(c, StoredInvoiceResponse{
			InvoiceNumber: inv.Number,
			URL:           inv.URL,
			ExpiresAt:     inv.ExpiresAt,
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, inv.Filename))
	c.Data(http.StatusOK, "application/pdf", inv.PDF)
}
