package migration

import (
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.DeclineRecordModel{},
	}
}
