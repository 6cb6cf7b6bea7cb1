package production

import (
	"github.com/bricksflow/backend/internal/domain/shared"
)

// LogRepository persists production logs
type LogRepository interface {
	shared.FactoryRepository[ProductionLog]
}
