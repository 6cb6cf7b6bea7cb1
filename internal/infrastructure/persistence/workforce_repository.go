package persistence

import (
	"github.com/bricksflow/backend/internal/domain/workforce"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements workforce.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	gormFactoryRepository[workforce.Employee]
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{newGormFactoryRepository[workforce.Employee](db, "", orderByName)}
}

// GormEmployeePaymentRepository implements workforce.PaymentRepository using GORM
type GormEmployeePaymentRepository struct {
	gormFactoryRepository[workforce.EmployeePayment]
}

// NewGormEmployeePaymentRepository creates a new GormEmployeePaymentRepository
func NewGormEmployeePaymentRepository(db *gorm.DB) *GormEmployeePaymentRepository {
	return &GormEmployeePaymentRepository{newGormFactoryRepository[workforce.EmployeePayment](db, "date", orderByDate)}
}

var (
	_ workforce.EmployeeRepository = (*GormEmployeeRepository)(nil)
	_ workforce.PaymentRepository  = (*GormEmployeePaymentRepository)(nil)
)
