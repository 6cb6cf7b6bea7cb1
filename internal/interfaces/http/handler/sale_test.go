package handler

import (
	"context"
	"net/http"
	"testing"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	printingapp "github.com/bricksflow/backend/internal/application/printing"
	tradeapp "github.com/bricksflow/backend/internal/application/trade"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	infra "github.com/bricksflow/backend/internal/infrastructure/printing"
	"github.com/bricksflow/backend/internal/interfaces/http/dto"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRenderer struct{ pdf []byte }

func (r stubRenderer) Render(context.Context, *infra.RenderRequest) (*infra.RenderResult, error) {
	return &infra.RenderResult{PDFData: r.pdf, PageCount: 1}, nil
}

func (stubRenderer) Close() error { return nil }

type saleRouter struct {
	owner     uuid.UUID
	factoryID uuid.UUID
	sales     *testutil.MockSaleRepository
	products  *testutil.MockScopedRepository[catalog.ProductDefinition]
	engine    *gin.Engine
}

func newSaleRouter(renderer infra.PDFRenderer) *saleRouter {
	r := &saleRouter{
		owner:     uuid.New(),
		factoryID: uuid.New(),
		sales:     new(testutil.MockSaleRepository),
		products:  new(testutil.MockScopedRepository[catalog.ProductDefinition]),
	}
	factories := new(testutil.MockFactoryRepository)
	factories.ExpectOwnedFactory(r.factoryID, r.owner)
	guard := factoryapp.NewGuard(factories)
	r.products.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	h := NewSaleHandler(
		tradeapp.NewSaleService(r.sales, r.products, guard, nil, zap.NewNop()),
		printingapp.NewInvoiceService(r.sales, r.products, guard, renderer, nil, zap.NewNop()),
	)

	r.engine = gin.New()
	g := r.engine.Group("/api/sales", testutil.AuthAs(r.owner.String()))
	g.POST("", h.Create)
	g.GET("/factory/:factory_id", h.ListByFactory)
	g.GET("/factory/:factory_id/customers", h.Customers)
	g.POST("/factory/:factory_id/customer-payments", h.CustomerPayment)
	g.GET("/:id", h.Get)
	g.GET("/:id/invoice", h.Invoice)
	return r
}

func (r *saleRouter) sale(t *testing.T, date string, total, received int64) *trade.Sale {
	t.Helper()
	s, err := trade.NewSale(r.factoryID, trade.SaleInput{
		Date:           testutil.Date(t, date),
		CustomerName:   "Ravi Traders",
		ProductID:      uuid.New(),
		QuantitySold:   1000,
		RatePerBrick:   decimal.NewFromInt(total).Div(decimal.NewFromInt(1000)),
		TotalAmount:    decimal.NewFromInt(total),
		AmountReceived: decimal.NewFromInt(received),
		BalanceDue:     decimal.NewFromInt(total - received),
	})
	require.NoError(t, err)
	return s
}

func TestSaleHandler_Create(t *testing.T) {
	r := newSaleRouter(nil)
	r.sales.On("Save", mock.Anything, mock.AnythingOfType("*trade.Sale")).Return(nil)

	w := testutil.PerformJSON(t, r.engine, http.MethodPost, "/api/sales", map[string]any{
		"factory_id":      r.factoryID,
		"date":            "2024-06-03",
		"customer_name":   "Ravi Traders",
		"product_id":      uuid.New(),
		"quantity_sold":   2000,
		"rate_per_brick":  "7.5",
		"amount_received": "5000",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := testutil.DecodeData[tradeapp.SaleResponse](t, w)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, sale.BalanceDue.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, trade.PaymentPartial, sale.PaymentStatus)
}

func TestSaleHandler_CreateRejectsBadDate(t *testing.T) {
	r := newSaleRouter(nil)

	w := testutil.PerformJSON(t, r.engine, http.MethodPost, "/api/sales", map[string]any{
		"factory_id":    r.factoryID,
		"date":          "03/06/2024",
		"customer_name": "Ravi Traders",
		"product_id":    uuid.New(),
	}, nil)

	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	r.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleHandler_CustomerPayment(t *testing.T) {
	r := newSaleRouter(nil)
	older := r.sale(t, "2024-06-01", 3000, 0)
	newer := r.sale(t, "2024-06-05", 4000, 1000)
	r.sales.On("ApplyCustomerPayment", mock.Anything, r.factoryID, "Ravi Traders", mock.Anything).
		Return(trade.AllocateFIFO(decimal.NewFromInt(4000), []*trade.Sale{older, newer}), nil)

	path := "/api/sales/factory/" + r.factoryID.String() + "/customer-payments"
	w := testutil.PerformJSON(t, r.engine, http.MethodPost, path, map[string]any{
		"customer_name": "Ravi Traders",
		"amount":        "4000",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := testutil.DecodeData[tradeapp.CustomerPaymentResponse](t, w)
	require.Len(t, result.Allocations, 2)
	assert.Equal(t, older.ID, result.Allocations[0].SaleID)
	assert.True(t, result.Allocations[0].AmountApplied.Equal(decimal.NewFromInt(3000)))
	assert.True(t, result.Allocations[1].RemainingBalance.Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.Unapplied.IsZero())

	w = testutil.PerformJSON(t, r.engine, http.MethodPost, path, map[string]any{
		"customer_name": "Ravi Traders",
		"amount":        "0",
	}, nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
}

func TestSaleHandler_Invoice(t *testing.T) {
	t.Run("printing disabled", func(t *testing.T) {
		r := newSaleRouter(nil)
		w := testutil.PerformJSON(t, r.engine, http.MethodGet, "/api/sales/"+uuid.NewString()+"/invoice", nil, nil)
		testutil.AssertErrorResponse(t, w, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable)
	})

	t.Run("streams the pdf", func(t *testing.T) {
		r := newSaleRouter(stubRenderer{pdf: []byte("%PDF-1.7 test")})
		sale := r.sale(t, "2024-06-03", 15000, 5000)
		r.sales.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

		// store=true without object storage still streams
		w := testutil.PerformJSON(t, r.engine, http.MethodGet, "/api/sales/"+sale.ID.String()+"/invoice?store=true", nil, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), sale.InvoiceNumber()+".pdf")
		assert.Equal(t, "%PDF-1.7 test", w.Body.String())
	})
}

func TestSaleHandler_ListByFactory(t *testing.T) {
	r := newSaleRouter(nil)
	s := r.sale(t, "2024-06-03", 1000, 1000)
	r.sales.On("FindByFactory", mock.Anything, r.factoryID, mock.Anything).Return([]trade.Sale{*s}, nil)

	w := testutil.PerformJSON(t, r.engine, http.MethodGet,
		"/api/sales/factory/"+r.factoryID.String()+"?start_date=2024-06-01&end_date=2024-06-30", nil, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sales := testutil.DecodeData[[]tradeapp.SaleResponse](t, w)
	require.Len(t, sales, 1)
	assert.Equal(t, trade.PaymentPaid, sales[0].PaymentStatus)
}
