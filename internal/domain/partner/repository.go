package partner

import "github.com/bricksflow/backend/internal/domain/shared"

// CustomerRepository persists customers
type CustomerRepository interface {
	shared.FactoryRepository[Customer]
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	shared.FactoryRepository[Supplier]
}
