package workforce

import "github.com/bricksflow/backend/internal/domain/shared"

// EmployeeRepository persists employees
type EmployeeRepository interface {
	shared.FactoryRepository[Employee]
}

// PaymentRepository persists employee payments
type PaymentRepository interface {
	shared.FactoryRepository[EmployeePayment]
}
