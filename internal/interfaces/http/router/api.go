package router

import (
	"github.com/bricksflow/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers holds one handler per area of the API
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Admin        *handler.AdminHandler
	Factory      *handler.FactoryHandler
	Subscription *handler.SubscriptionHandler
	Product      *handler.ProductHandler
	Production   *handler.ProductionHandler
	Material     *handler.MaterialHandler
	Sale         *handler.SaleHandler
	Partner      *handler.PartnerHandler
	Workforce    *handler.WorkforceHandler
	Finance      *handler.FinanceHandler
	Report       *handler.ReportHandler
}

// Guards are the middleware chains protecting the groups. Nil entries are
// skipped.
type Guards struct {
	// PublicLimit throttles unauthenticated credential endpoints
	PublicLimit gin.HandlerFunc
	// Authenticated runs on every route that needs a signed-in user
	Authenticated []gin.HandlerFunc
	// WriteGate rejects writes from factories whose plan has lapsed
	WriteGate gin.HandlerFunc
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Groups builds the full route table
func Groups(h Handlers, g Guards) []*DomainGroup {
	authed := chain(g.Authenticated...)
	gated := append(chain(g.Authenticated...), chain(g.WriteGate)...)

	system := NewDomainGroup("system", "")
	system.GET("/", h.System.Root).
		GET("/health", h.System.Health).
		GET("/health/db", h.System.DatabaseHealth)

	public := NewDomainGroup("auth", "/auth").Use(chain(g.PublicLimit)...)
	public.POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "/auth").Use(authed...)
	session.GET("/me", h.Auth.Me).
		POST("/logout", h.Auth.Logout)

	// PIN checked by the handler
	admin := NewDomainGroup("admin", "/admin").Use(chain(g.PublicLimit)...)
	admin.POST("/verify-pin", h.Admin.VerifyPIN).
		GET("/users", h.Admin.ListUsers)

	plans := NewDomainGroup("plans", "/subscription")
	plans.GET("/plans", h.Subscription.Plans)

	// a lapsed factory must still be able to pay
	subscription := NewDomainGroup("subscription", "/subscription").Use(authed...)
	subscription.GET("/status", h.Subscription.Status).
		POST("/create-order", h.Subscription.CreateOrder).
		POST("/complete", h.Subscription.Complete).
		POST("/restore", h.Subscription.Restore)

	factories := NewDomainGroup("factories", "/factories").Use(gated...)
	factories.POST("", h.Factory.Create).
		GET("", h.Factory.List).
		GET("/:id", h.Factory.Get).
		PUT("/:id", h.Factory.Update).
		DELETE("/:id", h.Factory.Delete)

	groups := []*DomainGroup{system, public, session, admin, plans, subscription, factories}

	scoped := func(name, prefix string) *DomainGroup {
		dg := NewDomainGroup(name, prefix).Use(gated...)
		groups = append(groups, dg)
		return dg
	}

	scoped("products", "/products").
		POST("", h.Product.Create).
		GET("/factory/:factory_id", h.Product.ListByFactory).
		GET("/:id", h.Product.Get).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete)

	scoped("production", "/production").
		POST("", h.Production.Create).
		GET("/factory/:factory_id", h.Production.ListByFactory).
		GET("/:id", h.Production.Get).
		PUT("/:id", h.Production.Update).
		DELETE("/:id", h.Production.Delete)

	scoped("materials", "/materials").
		POST("", h.Material.CreateMaterial).
		GET("/factory/:factory_id", h.Material.ListMaterials).
		PUT("/:id", h.Material.UpdateMaterial).
		DELETE("/:id", h.Material.DeleteMaterial)

	scoped("material-definitions", "/material-definitions").
		POST("", h.Material.CreateDefinition).
		GET("/factory/:factory_id", h.Material.ListDefinitions).
		DELETE("/:id", h.Material.DeleteDefinition)

	scoped("material-purchases", "/material-purchases").
		POST("", h.Material.RecordPurchase).
		GET("/factory/:factory_id", h.Material.ListPurchases).
		DELETE("/:id", h.Material.DeletePurchase)

	scoped("material-usage", "/material-usage").
		POST("", h.Material.RecordUsage).
		GET("/factory/:factory_id", h.Material.ListUsage).
		DELETE("/:id", h.Material.DeleteUsage)

	scoped("sales", "/sales").
		POST("", h.Sale.Create).
		GET("/factory/:factory_id", h.Sale.ListByFactory).
		GET("/factory/:factory_id/customers", h.Sale.Customers).
		POST("/factory/:factory_id/customer-payments", h.Sale.CustomerPayment).
		GET("/:id", h.Sale.Get).
		GET("/:id/invoice", h.Sale.Invoice).
		PUT("/:id", h.Sale.Update).
		DELETE("/:id", h.Sale.Delete)

	scoped("customers", "/customers").
		POST("", h.Partner.CreateCustomer).
		GET("/factory/:factory_id", h.Partner.ListCustomers).
		POST("/factory/:factory_id/import", h.Partner.ImportCustomers).
		PUT("/:id", h.Partner.UpdateCustomer).
		DELETE("/:id", h.Partner.DeleteCustomer)

	scoped("suppliers", "/suppliers").
		POST("", h.Partner.CreateSupplier).
		GET("/factory/:factory_id", h.Partner.ListSuppliers).
		POST("/factory/:factory_id/import", h.Partner.ImportSuppliers).
		PUT("/:id", h.Partner.UpdateSupplier).
		DELETE("/:id", h.Partner.DeleteSupplier)

	scoped("employees", "/employees").
		POST("", h.Workforce.CreateEmployee).
		GET("/factory/:factory_id", h.Workforce.ListEmployees).
		PUT("/:id", h.Workforce.UpdateEmployee).
		DELETE("/:id", h.Workforce.DeleteEmployee)

	scoped("employee-payments", "/employee-payments").
		POST("", h.Workforce.CreatePayment).
		GET("/factory/:factory_id", h.Workforce.ListPayments).
		DELETE("/:id", h.Workforce.DeletePayment)

	scoped("factory-rates", "/factory-rates").
		POST("", h.Finance.CreateRate).
		GET("/factory/:factory_id", h.Finance.ListRates).
		PUT("/:id", h.Finance.UpdateRate).
		DELETE("/:id", h.Finance.DeleteRate)

	scoped("other-expenses", "/other-expenses").
		POST("", h.Finance.CreateExpense).
		GET("/factory/:factory_id", h.Finance.ListExpenses).
		PUT("/:id", h.Finance.UpdateExpense).
		DELETE("/:id", h.Finance.DeleteExpense)

	scoped("dashboard", "/dashboard").
		GET("/factory/:factory_id", h.Report.Dashboard)

	scoped("reports", "/reports").
		GET("/factory/:factory_id/profit-loss", h.Report.ProfitLoss)

	return groups
}

// Mount registers the full route table on r
func Mount(r *Router, h Handlers, g Guards) *Router {
	for _, dg := range Groups(h, g) {
		r.Register(dg)
	}
	return r
}
