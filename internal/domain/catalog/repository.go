package catalog

import (
	"github.com/bricksflow/backend/internal/domain/shared"
)

// ProductRepository persists product definitions
type ProductRepository interface {
	shared.FactoryRepository[ProductDefinition]
}
