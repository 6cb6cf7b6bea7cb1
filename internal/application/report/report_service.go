// Package report serves the factory dashboard and the profit and loss
// statement.
package report

import (
	"context"
	"io"
	"time"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/finance"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/report"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/bricksflow/backend/internal/domain/workforce"
	"github.com/bricksflow/backend/internal/infrastructure/cache"
	"github.com/bricksflow/backend/internal/infrastructure/export"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDashboardTTL is used when no TTL is configured
const DefaultDashboardTTL = 30 * time.Second

// Sources are the repositories reports read from
type Sources struct {
	Products   catalog.ProductRepository
	Production production.LogRepository
	Sales      trade.SaleRepository
	Payments   workforce.PaymentRepository
	Materials  inventory.MaterialRepository
	Purchases  inventory.PurchaseRepository
	Usage      inventory.UsageRepository
	Expenses   finance.ExpenseRepository
	Rates      finance.RateRepository
}

// ReportService computes dashboards and statements from factory records
type ReportService struct {
	src   Sources
	guard *factoryapp.Guard
	cache cache.Store
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

// NewReportService creates a new report service. A nil cache disables
// dashboard caching.
func NewReportService(src Sources, guard *factoryapp.Guard, store cache.Store, ttl time.Duration, logger *zap.Logger) *ReportService {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &ReportService{src: src, guard: guard, cache: store, ttl: ttl, log: logger, now: time.Now}
}

func dashboardKey(factoryID uuid.UUID) string {
	return "dashboard:" + factoryID.String()
}

// Dashboard returns the factory dashboard. Aggregates are cached per factory
// for the TTL; the subscription status is always current.
func (s *ReportService) Dashboard(ctx context.Context, userID, factoryID uuid.UUID) (*DashboardResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "dashboard",
		telemetry.AttrFactoryID.String(factoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	f, err := s.guard.Authorize(ctx, userID, factoryID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sub := factoryapp.ToSubscriptionResponse(f, now)

	var resp DashboardResponse
	if s.cache != nil {
		found, cerr := s.cache.Get(ctx, dashboardKey(factoryID), &resp)
		if cerr != nil {
			logger.L(ctx).Warn("Dashboard cache read failed", zap.Error(cerr))
		}
		if found {
			resp.Subscription = &sub
			return &resp, nil
		}
	}

	in, err := s.loadDashboardInput(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	resp = ToDashboardResponse(factoryID, report.BuildDashboard(in, now))

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, dashboardKey(factoryID), resp, s.ttl); cerr != nil {
			logger.L(ctx).Warn("Dashboard cache write failed", zap.Error(cerr))
		}
	}
	resp.Subscription = &sub
	return &resp, nil
}

func (s *ReportService) loadDashboardInput(ctx context.Context, factoryID uuid.UUID) (report.DashboardInput, error) {
	var in report.DashboardInput
	all := shared.ListFilter{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Products, err = s.src.Products.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		in.Production, err = s.src.Production.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		in.Sales, err = s.src.Sales.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		in.Payments, err = s.src.Payments.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		in.Materials, err = s.src.Materials.FindByFactory(gctx, factoryID, all)
		return err
	})
	return in, g.Wait()
}

// ProfitLoss computes the statement for the queried period, the current
// Monday to Sunday week by default
func (s *ReportService) ProfitLoss(ctx context.Context, userID, factoryID uuid.UUID, query ReportQuery) (*ProfitLossResponse, error) {
	pl, _, err := s.profitLoss(ctx, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	resp := ToProfitLossResponse(pl)
	return &resp, nil
}

// WriteProfitLossCSV streams the detailed statement as CSV to w and returns
// the attachment filename
func (s *ReportService) WriteProfitLossCSV(ctx context.Context, userID, factoryID uuid.UUID, query ReportQuery, w io.Writer) (string, error) {
	pl, lookups, err := s.profitLoss(ctx, userID, factoryID, query)
	if err != nil {
		return "", err
	}
	if err := export.NewCSVReportWriter(w, lookups).WriteProfitLoss(pl); err != nil {
		return "", err
	}
	return export.ProfitLossFilename(pl.Period), nil
}

// Filename returns the CSV attachment name for the queried period
func (s *ReportService) Filename(query ReportQuery) (string, error) {
	p, err := query.Period(s.now())
	if err != nil {
		return "", err
	}
	return export.ProfitLossFilename(p), nil
}

func (s *ReportService) profitLoss(ctx context.Context, userID, factoryID uuid.UUID, query ReportQuery) (report.ProfitLoss, export.Lookups, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "profit_loss",
		telemetry.AttrFactoryID.String(factoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err = s.guard.Authorize(ctx, userID, factoryID); err != nil {
		return report.ProfitLoss{}, export.Lookups{}, err
	}
	period, err := query.Period(s.now())
	if err != nil {
		return report.ProfitLoss{}, export.Lookups{}, err
	}

	in, products, err := s.loadProfitLossInput(ctx, factoryID, period)
	if err != nil {
		return report.ProfitLoss{}, export.Lookups{}, err
	}
	pl := report.BuildProfitLoss(in, period)

	lookups := export.Lookups{
		Products:  make(map[uuid.UUID]string, len(products)),
		Materials: make(map[uuid.UUID]string, len(in.Materials)),
	}
	for _, p := range products {
		lookups.Products[p.ID] = p.Name
	}
	for _, m := range in.Materials {
		lookups.Materials[m.ID] = m.MaterialName
	}

	logger.L(ctx).Debug("Profit and loss computed",
		zap.String("start", period.Start.Format(shared.DateLayout)),
		zap.String("end", period.End.Format(shared.DateLayout)),
		zap.String("net_profit", pl.NetProfit.StringFixed(2)),
	)
	return pl, lookups, nil
}

func (s *ReportService) loadProfitLossInput(ctx context.Context, factoryID uuid.UUID, period report.Period) (report.ProfitLossInput, []catalog.ProductDefinition, error) {
	var (
		in       report.ProfitLossInput
		products []catalog.ProductDefinition
	)
	dated := shared.ListFilter{From: &period.Start, To: &period.End}
	all := shared.ListFilter{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Production, err = s.src.Production.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Sales, err = s.src.Sales.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Purchases, err = s.src.Purchases.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Usage, err = s.src.Usage.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Payments, err = s.src.Payments.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Expenses, err = s.src.Expenses.FindByFactory(gctx, factoryID, dated)
		return err
	})
	g.Go(func() (err error) {
		in.Rates, err = s.src.Rates.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		in.Materials, err = s.src.Materials.FindByFactory(gctx, factoryID, all)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.src.Products.FindByFactory(gctx, factoryID, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return in, nil, err
	}

	in.ProductNames = make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		in.ProductNames[p.ID] = p.Name
	}
	return in, products, nil
}
