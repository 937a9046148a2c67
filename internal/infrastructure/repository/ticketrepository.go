package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/mappers"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/models"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/db"
	apperrors "github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	counts CountCache
}

// NewTicketRepository returns a gorm-backed ticket store. counts may be nil, in which
// case every list runs an exact count.
func NewTicketRepository(db *gorm.DB, counts CountCache) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		counts: counts,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes every mutable column when the stored version equals expectedVersion.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket, expectedVersion int) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// a map so that nil pointers clear their columns
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"description":  model.Description,
			"facility":     model.Facility,
			"status":       model.Status,
			"assigned_to":  model.AssignedTo,
			"remarks":      model.Remarks,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
			"completed_at": model.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.TicketModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check ticket existence: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		return apperrors.NewConflictError("Ticket was modified by another request, reload and try again")
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(constants.ErrMsgTicketNotFound)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// GetByNumber returns the newest ticket carrying number. Numbers are not unique.
func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_number = ?", number).
		Order("created_at DESC").
		Order("id DESC").
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket by number: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	total, err := countWith(ctx, r.counts, filter.CountMode, TicketCountKey(filter), func(ctx context.Context) (int64, error) {
		return r.Count(ctx, filter)
	})
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}

	var rows []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.TicketModel{}).
		Scopes(ticketFilterScope(filter), db.Paginate((page-1)*filter.PageSize, filter.PageSize)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// Count runs an exact count of tickets matching filter.
func (r *TicketRepository) Count(ctx context.Context, filter ticket.TicketFilter) (int64, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.TicketModel{}).
		Scopes(ticketFilterScope(filter)).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return total, nil
}

func ticketFilterScope(filter ticket.TicketFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			q = q.Where("status IN ?", equivalentStatuses(*filter.Status))
		}
		if n := strings.TrimSpace(filter.Number); n != "" {
			q = q.Where("ticket_number = ?", n)
		}
		return q
	}
}

func equivalentStatuses(s vo.TicketStatus) []string {
	if s.IsDeclined() {
		return []string{vo.StatusDeclined.String(), vo.StatusCancelled.String()}
	}
	return []string{s.String()}
}
