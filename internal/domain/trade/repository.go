package trade

import (
	"context"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository persists sales
type SaleRepository interface {
	shared.FactoryRepository[Sale]
	// ApplyCustomerPayment allocates amount to the customer's sales with a
	// positive balance, oldest first, and stores the new balances. The read,
	// the allocation and the writes form one transaction.
	ApplyCustomerPayment(ctx context.Context, factoryID uuid.UUID, customerName string, amount decimal.Decimal) (AllocationResult, error)
}
