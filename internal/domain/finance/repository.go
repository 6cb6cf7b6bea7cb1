package finance

import "github.com/bricksflow/backend/internal/domain/shared"

// RateRepository persists factory rates
type RateRepository interface {
	shared.FactoryRepository[FactoryRate]
}

// ExpenseRepository persists other expenses
type ExpenseRepository interface {
	shared.FactoryRepository[OtherExpense]
}
