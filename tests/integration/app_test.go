package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adminapp "github.com/bricksflow/backend/internal/application/admin"
	billingapp "github.com/bricksflow/backend/internal/application/billing"
	catalogapp "github.com/bricksflow/backend/internal/application/catalog"
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	financeapp "github.com/bricksflow/backend/internal/application/finance"
	identityapp "github.com/bricksflow/backend/internal/application/identity"
	inventoryapp "github.com/bricksflow/backend/internal/application/inventory"
	partnerapp "github.com/bricksflow/backend/internal/application/partner"
	printingapp "github.com/bricksflow/backend/internal/application/printing"
	productionapp "github.com/bricksflow/backend/internal/application/production"
	reportapp "github.com/bricksflow/backend/internal/application/report"
	tradeapp "github.com/bricksflow/backend/internal/application/trade"
	workforceapp "github.com/bricksflow/backend/internal/application/workforce"
	"github.com/bricksflow/backend/internal/domain/billing"
	"github.com/bricksflow/backend/internal/infrastructure/auth"
	"github.com/bricksflow/backend/internal/infrastructure/cache"
	"github.com/bricksflow/backend/internal/infrastructure/config"
	"github.com/bricksflow/backend/internal/infrastructure/payment"
	"github.com/bricksflow/backend/internal/infrastructure/persistence"
	"github.com/bricksflow/backend/internal/interfaces/http/handler"
	"github.com/bricksflow/backend/internal/interfaces/http/middleware"
	"github.com/bricksflow/backend/internal/interfaces/http/router"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminPIN = "4321"

// testApp is the full HTTP stack over a migrated database, with the offline
// payment gateway and printing disabled
type testApp struct {
	engine *gin.Engine
	db     *TestDB
}

func newTestApp(t *testing.T, tdb *TestDB) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	log := zap.NewNop()
	db := tdb.DB

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-secret-key-at-least-32",
		RefreshSecret:          "integration-refresh-key-at-least-32",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "bricksflow-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	users := persistence.NewGormUserRepository(db)
	factories := persistence.NewGormFactoryRepository(db)
	products := persistence.NewGormProductRepository(db)
	productionLogs := persistence.NewGormProductionLogRepository(db)
	materials := persistence.NewGormMaterialRepository(db)
	purchases := persistence.NewGormMaterialPurchaseRepository(db)
	usage := persistence.NewGormMaterialUsageRepository(db)
	sales := persistence.NewGormSaleRepository(db)
	payments := persistence.NewGormEmployeePaymentRepository(db)
	rates := persistence.NewGormRateRepository(db)
	expenses := persistence.NewGormExpenseRepository(db)

	guard := factoryapp.NewGuard(factories)
	factoryService := factoryapp.NewFactoryService(factories, 14, log)
	inventory := inventoryapp.NewInventoryService(inventoryapp.Repositories{
		Materials:   materials,
		Definitions: persistence.NewGormMaterialDefinitionRepository(db),
		Purchases:   purchases,
		Usage:       usage,
		Ledger:      persistence.NewGormStockLedger(db),
	}, guard, nil, log)
	saleService := tradeapp.NewSaleService(sales, products, guard, nil, log)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Secure())

	router.Mount(router.NewRouter(engine), router.Handlers{
		System:       handler.NewSystemHandler("test", "postgresql", &persistence.Database{DB: db}, nil),
		Auth:         handler.NewAuthHandler(identityapp.NewAuthService(users, jwtService, blacklist, log)),
		Admin:        handler.NewAdminHandler(adminapp.NewAdminService(users, factories, testAdminPIN, log)),
		Factory:      handler.NewFactoryHandler(factoryService),
		Subscription: handler.NewSubscriptionHandler(billingapp.NewSubscriptionService(factories, billing.NewCatalog(30, 365, 49900, 499900), payment.NewMockGateway(), nil, log)),
		Product:      handler.NewProductHandler(catalogapp.NewProductService(products, guard, log)),
		Production:   handler.NewProductionHandler(productionapp.NewProductionService(productionLogs, products, guard, nil, log)),
		Material:     handler.NewMaterialHandler(inventory),
		Sale:         handler.NewSaleHandler(saleService, printingapp.NewInvoiceService(sales, products, guard, nil, nil, log)),
		Partner: handler.NewPartnerHandler(
			partnerapp.NewCustomerService(persistence.NewGormCustomerRepository(db), guard, log),
			partnerapp.NewSupplierService(persistence.NewGormSupplierRepository(db), guard, log),
		),
		Workforce: handler.NewWorkforceHandler(workforceapp.NewWorkforceService(persistence.NewGormEmployeeRepository(db), payments, guard, log)),
		Finance:   handler.NewFinanceHandler(financeapp.NewFinanceService(rates, expenses, guard, log)),
		Report: handler.NewReportHandler(reportapp.NewReportService(reportapp.Sources{
			Products:   products,
			Production: productionLogs,
			Sales:      sales,
			Payments:   payments,
			Materials:  materials,
			Purchases:  purchases,
			Usage:      usage,
			Expenses:   expenses,
			Rates:      rates,
		}, guard, cache.NewInMemoryStore(), time.Minute, log)),
	}, router.Guards{
		Authenticated: []gin.HandlerFunc{
			middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{JWTService: jwtService, TokenBlacklist: blacklist}),
			middleware.FactoryScope(),
		},
		WriteGate: middleware.ReadOnlyGate(middleware.ReadOnlyGateConfig{
			Checker:      factoryService,
			ExemptRoutes: []string{"POST /api/factories"},
		}),
	}).Setup()

	return &testApp{engine: engine, db: tdb}
}

// do sends a JSON request, authenticated when token is set
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httpResult {
	t.Helper()
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}
	return &httpResult{t: t, w: testutil.PerformJSON(t, a.engine, method, path, body, headers)}
}

// login signs in with the password used by CreateOwner and returns the access token
func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret-pass",
	})
	res.requireStatus(http.StatusOK)
	return testutil.DecodeData[identityapp.AuthResult](t, res.w).AccessToken
}

type httpResult struct {
	t *testing.T
	w *httptest.ResponseRecorder
}

func (r *httpResult) requireStatus(code int) *httpResult {
	r.t.Helper()
	require.Equal(r.t, code, r.w.Code, r.w.Body.String())
	return r
}

func decode[T any](r *httpResult) T {
	r.t.Helper()
	return testutil.DecodeData[T](r.t, r.w)
}
