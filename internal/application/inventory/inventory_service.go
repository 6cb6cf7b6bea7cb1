// Package inventory manages raw materials and their stock movements.
package inventory

import (
	"context"
	"errors"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMaterialNotFound   = shared.ErrNotFound.WithMessage("Material not found")
	ErrDefinitionNotFound = shared.ErrNotFound.WithMessage("Material definition not found")
	ErrPurchaseNotFound   = shared.ErrNotFound.WithMessage("Material purchase not found")
	ErrUsageNotFound      = shared.ErrNotFound.WithMessage("Material usage not found")
	errForeignMaterial    = shared.ErrInvalidInput.WithMessage("Unknown material_id")
)

// Repositories groups the stores the inventory service writes to
type Repositories struct {
	Materials   inventory.MaterialRepository
	Definitions inventory.MaterialDefinitionRepository
	Purchases   inventory.PurchaseRepository
	Usage       inventory.UsageRepository
	Ledger      inventory.StockLedger
}

// InventoryService manages materials, material types, purchases and usage
type InventoryService struct {
	repos   Repositories
	guard   *factoryapp.Guard
	metrics *telemetry.BusinessMetrics
	logger  *zap.Logger
}

// NewInventoryService creates a new inventory service. metrics may be nil.
func NewInventoryService(repos Repositories, guard *factoryapp.Guard, metrics *telemetry.BusinessMetrics, logger *zap.Logger) *InventoryService {
	return &InventoryService{repos: repos, guard: guard, metrics: metrics, logger: logger}
}

// CreateMaterial registers a stocked material. Quantity and cost default to zero.
func (s *InventoryService) CreateMaterial(ctx context.Context, userID uuid.UUID, req CreateMaterialRequest) (*MaterialResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	qty, avg := decimal.Zero, decimal.Zero
	if req.CurrentStockQty != nil {
		qty = *req.CurrentStockQty
	}
	if req.AverageCostPerUnit != nil {
		avg = *req.AverageCostPerUnit
	}
	material, err := inventory.NewMaterial(req.FactoryID, req.MaterialName, req.Unit, qty, avg)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Materials.Save(ctx, material); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Material created",
		zap.String("material_id", material.ID.String()),
		zap.String("name", material.MaterialName),
	)
	resp := ToMaterialResponse(material)
	return &resp, nil
}

// ListMaterials lists a factory's materials by name
func (s *InventoryService) ListMaterials(ctx context.Context, userID, factoryID uuid.UUID) ([]MaterialResponse, error) {
	materials, err := factoryapp.ListOwned[inventory.Material](ctx, s.guard, s.repos.Materials, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, ToMaterialResponse(&materials[i]))
	}
	return out, nil
}

// UpdateMaterial applies a partial update. Stock fields overwrite the ledger
// values and are meant for corrections.
func (s *InventoryService) UpdateMaterial(ctx context.Context, userID, materialID uuid.UUID, req UpdateMaterialRequest) (*MaterialResponse, error) {
	material, err := factoryapp.LoadOwned[inventory.Material](ctx, s.guard, s.repos.Materials, userID, materialID, ErrMaterialNotFound)
	if err != nil {
		return nil, err
	}
	if req.MaterialName != nil {
		if err := material.SetName(*req.MaterialName); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		if err := material.SetUnit(*req.Unit); err != nil {
			return nil, err
		}
	}
	if req.CurrentStockQty != nil || req.AverageCostPerUnit != nil {
		qty, avg := material.CurrentStockQty, material.AverageCostPerUnit
		if req.CurrentStockQty != nil {
			qty = *req.CurrentStockQty
		}
		if req.AverageCostPerUnit != nil {
			avg = *req.AverageCostPerUnit
		}
		if err := material.SetStock(qty, avg); err != nil {
			return nil, err
		}
	}
	material.Touch()

	if err := s.repos.Materials.Save(ctx, material); err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(material)
	return &resp, nil
}

// DeleteMaterial removes a material
func (s *InventoryService) DeleteMaterial(ctx context.Context, userID, materialID uuid.UUID) error {
	return factoryapp.DeleteOwned[inventory.Material](ctx, s.guard, s.repos.Materials, userID, materialID, ErrMaterialNotFound)
}

// CreateDefinition names a material type
func (s *InventoryService) CreateDefinition(ctx context.Context, userID uuid.UUID, req CreateDefinitionRequest) (*DefinitionResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	def, err := inventory.NewMaterialDefinition(req.FactoryID, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Definitions.Save(ctx, def); err != nil {
		return nil, err
	}
	resp := ToDefinitionResponse(def)
	return &resp, nil
}

// ListDefinitions lists a factory's material types
func (s *InventoryService) ListDefinitions(ctx context.Context, userID, factoryID uuid.UUID) ([]DefinitionResponse, error) {
	defs, err := factoryapp.ListOwned[inventory.MaterialDefinition](ctx, s.guard, s.repos.Definitions, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]DefinitionResponse, 0, len(defs))
	for i := range defs {
		out = append(out, ToDefinitionResponse(&defs[i]))
	}
	return out, nil
}

// DeleteDefinition removes a material type
func (s *InventoryService) DeleteDefinition(ctx context.Context, userID, definitionID uuid.UUID) error {
	return factoryapp.DeleteOwned[inventory.MaterialDefinition](ctx, s.guard, s.repos.Definitions, userID, definitionID, ErrDefinitionNotFound)
}

// RecordPurchase stores a purchase and adds it to the material's stock at a
// new weighted average cost, in one transaction. A purchase of an unknown
// material is kept without touching stock.
func (s *InventoryService) RecordPurchase(ctx context.Context, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "record_purchase",
		telemetry.AttrFactoryID.String(req.FactoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err = s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err = s.checkMaterial(ctx, req.FactoryID, req.MaterialID); err != nil {
		return nil, err
	}

	purchase, err := inventory.NewMaterialPurchase(req.FactoryID, date, req.MaterialID, req.QuantityPurchased, req.UnitCost, req.PaymentMade)
	if err != nil {
		return nil, err
	}
	purchase.SupplierName = req.SupplierName
	purchase.SupplierPhone = req.SupplierPhone
	purchase.Notes = req.Notes

	material, err := s.repos.Ledger.RecordPurchase(ctx, purchase)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMaterialPurchase(ctx, purchase.FactoryID, purchase.TotalCost())

	fields := []zap.Field{
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("quantity", purchase.QuantityPurchased.String()),
		zap.String("total_cost", purchase.TotalCost().String()),
	}
	if material != nil {
		fields = append(fields,
			zap.String("stock_qty", material.CurrentStockQty.String()),
			zap.String("avg_cost", material.AverageCostPerUnit.String()))
	}
	logger.L(ctx).Info("Material purchase recorded", fields...)

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// ListPurchases lists a factory's purchases within the date range
func (s *InventoryService) ListPurchases(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]PurchaseResponse, error) {
	purchases, err := factoryapp.ListOwned[inventory.MaterialPurchase](ctx, s.guard, s.repos.Purchases, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, ToPurchaseResponse(&purchases[i]))
	}
	return out, nil
}

// DeletePurchase removes a purchase record. Stock is not reversed.
func (s *InventoryService) DeletePurchase(ctx context.Context, userID, purchaseID uuid.UUID) error {
	return factoryapp.DeleteOwned[inventory.MaterialPurchase](ctx, s.guard, s.repos.Purchases, userID, purchaseID, ErrPurchaseNotFound)
}

// RecordUsage stores a usage entry and draws the material's stock down, never
// below zero, in one transaction.
func (s *InventoryService) RecordUsage(ctx context.Context, userID uuid.UUID, req CreateUsageRequest) (*UsageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "record_usage",
		telemetry.AttrFactoryID.String(req.FactoryID.String()))
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	if _, err = s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err = s.checkMaterial(ctx, req.FactoryID, req.MaterialID); err != nil {
		return nil, err
	}

	usage, err := inventory.NewMaterialUsage(req.FactoryID, date, req.MaterialID, req.QuantityUsed, req.Purpose)
	if err != nil {
		return nil, err
	}
	material, err := s.repos.Ledger.RecordUsage(ctx, usage)
	if err != nil {
		return nil, err
	}
	if material != nil && material.CurrentStockQty.IsZero() {
		logger.L(ctx).Warn("Material stock exhausted",
			zap.String("material_id", material.ID.String()),
			zap.String("name", material.MaterialName),
		)
	}
	resp := ToUsageResponse(usage)
	return &resp, nil
}

// ListUsage lists a factory's usage entries within the date range
func (s *InventoryService) ListUsage(ctx context.Context, userID, factoryID uuid.UUID, query factoryapp.ListQuery) ([]UsageResponse, error) {
	entries, err := factoryapp.ListOwned[inventory.MaterialUsage](ctx, s.guard, s.repos.Usage, userID, factoryID, query)
	if err != nil {
		return nil, err
	}
	out := make([]UsageResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToUsageResponse(&entries[i]))
	}
	return out, nil
}

// DeleteUsage removes a usage entry. Stock is not restored.
func (s *InventoryService) DeleteUsage(ctx context.Context, userID, usageID uuid.UUID) error {
	return factoryapp.DeleteOwned[inventory.MaterialUsage](ctx, s.guard, s.repos.Usage, userID, usageID, ErrUsageNotFound)
}

// checkMaterial rejects a material that belongs to another factory. An
// unknown id is accepted; the movement is then recorded without a stock change.
func (s *InventoryService) checkMaterial(ctx context.Context, factoryID, materialID uuid.UUID) error {
	material, err := s.repos.Materials.FindByID(ctx, materialID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if material.FactoryID != factoryID {
		return errForeignMaterial
	}
	return nil
}
