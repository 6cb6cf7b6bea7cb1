package catalog

import (
	"context"
	"strings"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrProductNotFound is returned for an unknown brick type
var ErrProductNotFound = shared.ErrNotFound.WithMessage("Product not found")

// ProductService manages the brick types of a factory
type ProductService struct {
	products catalog.ProductRepository
	guard    *factoryapp.Guard
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, guard *factoryapp.Guard, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, guard: guard, logger: logger}
}

// Create defines a new brick type
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	product, err := catalog.NewProductDefinition(req.FactoryID, req.Name, req.ItemsPerPunch, req.SizeDescription, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListByFactory lists a factory's brick types by name
func (s *ProductService) ListByFactory(ctx context.Context, userID, factoryID uuid.UUID) ([]ProductResponse, error) {
	products, err := factoryapp.ListOwned[catalog.ProductDefinition](ctx, s.guard, s.products, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Get returns one brick type
func (s *ProductService) Get(ctx context.Context, userID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := factoryapp.LoadOwned[catalog.ProductDefinition](ctx, s.guard, s.products, userID, productID, ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies a partial update to a brick type
func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := factoryapp.LoadOwned[catalog.ProductDefinition](ctx, s.guard, s.products, userID, productID, ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ItemsPerPunch != nil {
		if err := product.SetItemsPerPunch(req.ItemsPerPunch); err != nil {
			return nil, err
		}
	}
	if req.SizeDescription != nil {
		product.SizeDescription = strings.TrimSpace(*req.SizeDescription)
	}
	if req.Unit != nil {
		product.SetUnit(*req.Unit)
	}
	product.Touch()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a brick type
func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	return factoryapp.DeleteOwned[catalog.ProductDefinition](ctx, s.guard, s.products, userID, productID, ErrProductNotFound)
}
