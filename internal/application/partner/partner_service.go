// Package partner manages the customers and suppliers of a factory.
package partner

import (
	"context"
	"io"
	"strings"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/partner"
	"github.com/bricksflow/backend/internal/domain/shared"
	csvimport "github.com/bricksflow/backend/internal/infrastructure/import"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCustomerNotFound = shared.ErrNotFound.WithMessage("Customer not found")
	ErrSupplierNotFound = shared.ErrNotFound.WithMessage("Supplier not found")
)

// CustomerService manages customers
type CustomerService struct {
	customers partner.CustomerRepository
	guard     *factoryapp.Guard
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers partner.CustomerRepository, guard *factoryapp.Guard, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, guard: guard, logger: logger}
}

// Create adds a customer
func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(req.FactoryID, req.Name, req.Phone, req.Address, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Customer created", zap.String("customer_id", customer.ID.String()))
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ListByFactory lists customers sorted by name
func (s *CustomerService) ListByFactory(ctx context.Context, userID, factoryID uuid.UUID) ([]CustomerResponse, error) {
	customers, err := factoryapp.ListOwned[partner.Customer](ctx, s.guard, s.customers, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, ToCustomerResponse(&customers[i]))
	}
	return out, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, userID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := factoryapp.LoadOwned[partner.Customer](ctx, s.guard, s.customers, userID, customerID, ErrCustomerNotFound)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := customer.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	customer.Touch()

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer. Sales keep the customer name they were made with.
func (s *CustomerService) Delete(ctx context.Context, userID, customerID uuid.UUID) error {
	return factoryapp.DeleteOwned[partner.Customer](ctx, s.guard, s.customers, userID, customerID, ErrCustomerNotFound)
}

// Import adds customers from a CSV with a name column and optional phone,
// address and notes columns. Names already in the directory are skipped.
func (s *CustomerService) Import(ctx context.Context, userID, factoryID uuid.UUID, file io.Reader) (*csvimport.Result, error) {
	existing, err := factoryapp.ListOwned[partner.Customer](ctx, s.guard, s.customers, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[strings.ToLower(c.Name)] = true
	}

	importer := csvimport.NewImporter([]*csvimport.FieldRule{
		csvimport.Field("name").Required().MaxLength(200).Unique(),
		csvimport.Field("phone").MaxLength(50),
		csvimport.Field("address").MaxLength(500),
		csvimport.Field("notes").MaxLength(2000),
	})
	res, err := importer.Run(ctx, file, func(ctx context.Context, row *csvimport.Row) error {
		name := row.Get("name")
		if known[strings.ToLower(name)] {
			return alreadyListed(name)
		}
		customer, err := partner.NewCustomer(factoryID, name, row.Get("phone"), row.Get("address"), row.Get("notes"))
		if err != nil {
			return err
		}
		return s.customers.Save(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Customers imported",
		zap.String("factory_id", factoryID.String()),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// SupplierService manages suppliers
type SupplierService struct {
	suppliers partner.SupplierRepository
	guard     *factoryapp.Guard
	logger    *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(suppliers partner.SupplierRepository, guard *factoryapp.Guard, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, guard: guard, logger: logger}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, userID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	if _, err := s.guard.Authorize(ctx, userID, req.FactoryID); err != nil {
		return nil, err
	}
	supplier, err := partner.NewSupplier(req.FactoryID, req.Name, req.ContactNumber, req.Address, req.MaterialType)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Supplier created", zap.String("supplier_id", supplier.ID.String()))
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// ListByFactory lists suppliers sorted by name
func (s *SupplierService) ListByFactory(ctx context.Context, userID, factoryID uuid.UUID) ([]SupplierResponse, error) {
	suppliers, err := factoryapp.ListOwned[partner.Supplier](ctx, s.guard, s.suppliers, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, ToSupplierResponse(&suppliers[i]))
	}
	return out, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, userID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := factoryapp.LoadOwned[partner.Supplier](ctx, s.guard, s.suppliers, userID, supplierID, ErrSupplierNotFound)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := supplier.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactNumber != nil {
		supplier.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.MaterialType != nil {
		supplier.MaterialType = strings.TrimSpace(*req.MaterialType)
	}
	supplier.Touch()

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, userID, supplierID uuid.UUID) error {
	return factoryapp.DeleteOwned[partner.Supplier](ctx, s.guard, s.suppliers, userID, supplierID, ErrSupplierNotFound)
}

// Import adds suppliers from a CSV with a name column and optional
// contact_number, address and material_type columns
func (s *SupplierService) Import(ctx context.Context, userID, factoryID uuid.UUID, file io.Reader) (*csvimport.Result, error) {
	existing, err := factoryapp.ListOwned[partner.Supplier](ctx, s.guard, s.suppliers, userID, factoryID, factoryapp.ListQuery{})
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, sup := range existing {
		known[strings.ToLower(sup.Name)] = true
	}

	importer := csvimport.NewImporter([]*csvimport.FieldRule{
		csvimport.Field("name").Required().MaxLength(200).Unique(),
		csvimport.Field("contact_number").MaxLength(50),
		csvimport.Field("address").MaxLength(500),
		csvimport.Field("material_type").MaxLength(100),
	})
	res, err := importer.Run(ctx, file, func(ctx context.Context, row *csvimport.Row) error {
		name := row.Get("name")
		if known[strings.ToLower(name)] {
			return alreadyListed(name)
		}
		supplier, err := partner.NewSupplier(factoryID, name, row.Get("contact_number"), row.Get("address"), row.Get("material_type"))
		if err != nil {
			return err
		}
		return s.suppliers.Save(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Suppliers imported",
		zap.String("factory_id", factoryID.String()),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func alreadyListed(name string) error {
	return csvimport.RowError{Column: "name", Code: csvimport.CodeExists, Message: "already in the directory", Value: name}
}
