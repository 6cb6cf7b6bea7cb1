package persistence

import (
	"context"

	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	gormFactoryRepository[trade.Sale]
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{newGormFactoryRepository[trade.Sale](db, "date", orderByDate)}
}

// ApplyCustomerPayment locks the customer's unpaid sales, allocates amount
// to them oldest first and writes the new balances, all in one transaction.
// Concurrent payments for the same customer queue on the row locks.
func (r *GormSaleRepository) ApplyCustomerPayment(ctx context.Context, factoryID uuid.UUID, customerName string, amount decimal.Decimal) (trade.AllocationResult, error) {
	var result trade.AllocationResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open []trade.Sale
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("factory_id = ? AND customer_name = ? AND balance_due > 0", factoryID, customerName).
			Order("date ASC, created_at ASC").
			Find(&open).Error
		if err != nil {
			return err
		}

		ptrs := make([]*trade.Sale, len(open))
		for i := range open {
			ptrs[i] = &open[i]
		}
		result = trade.AllocateFIFO(amount, ptrs)

		touched := make(map[uuid.UUID]bool, len(result.Allocations))
		for _, a := range result.Allocations {
			touched[a.SaleID] = true
		}
		for _, s := range ptrs {
			if !touched[s.ID] {
				continue
			}
			err := tx.Model(s).Select("amount_received", "balance_due", "updated_at").Updates(s).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return trade.AllocationResult{}, err
	}
	return result, nil
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
