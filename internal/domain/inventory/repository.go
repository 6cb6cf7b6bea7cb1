package inventory

import (
	"context"

	"github.com/bricksflow/backend/internal/domain/shared"
)

// MaterialRepository persists materials
type MaterialRepository interface {
	shared.FactoryRepository[Material]
}

// MaterialDefinitionRepository persists material definitions
type MaterialDefinitionRepository interface {
	shared.FactoryRepository[MaterialDefinition]
}

// PurchaseRepository persists material purchases
type PurchaseRepository interface {
	shared.FactoryRepository[MaterialPurchase]
}

// UsageRepository persists material usage
type UsageRepository interface {
	shared.FactoryRepository[MaterialUsage]
}

// StockLedger records a purchase or usage together with the stock change it
// causes, atomically.
type StockLedger interface {
	RecordPurchase(ctx context.Context, purchase *MaterialPurchase) (*Material, error)
	RecordUsage(ctx context.Context, usage *MaterialUsage) (*Material, error)
}
