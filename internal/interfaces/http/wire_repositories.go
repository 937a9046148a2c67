package http

import (
	"gorm.io/gorm"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/repository"
)

// repositories holds the repository instances used by the application.
type repositories struct {
	ticketRepo  *repository.TicketRepository
	declineRepo *repository.DeclineRecordRepository
}

// newRepositories creates the repositories. Both share counts for approximate list totals.
func newRepositories(db *gorm.DB, counts repository.CountCache) *repositories {
	return &repositories{
		ticketRepo:  repository.NewTicketRepository(db, counts),
		declineRepo: repository.NewDeclineRecordRepository(db, counts),
	}
}
