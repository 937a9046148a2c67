package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/mappers"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/persistence/models"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/db"
)

// declineSearchColumns are matched by the free-text search of the decline log.
var declineSearchColumns = []string{"ticket_number", "device_type", "owner_name", "decline_reason"}

type DeclineRecordRepository struct {
	db     *gorm.DB
	mapper mappers.DeclineRecordMapper
	counts CountCache
}

func NewDeclineRecordRepository(db *gorm.DB, counts CountCache) *DeclineRecordRepository {
	return &DeclineRecordRepository{
		db:     db,
		mapper: mappers.NewDeclineRecordMapper(),
		counts: counts,
	}
}

// Create appends a record. Records are never updated.
func (r *DeclineRecordRepository) Create(ctx context.Context, record *ticket.DeclineRecord) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create decline record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *DeclineRecordRepository) List(ctx context.Context, filter ticket.DeclineRecordFilter) ([]*ticket.DeclineRecord, int64, error) {
	total, err := countWith(ctx, r.counts, filter.CountMode, DeclineCountKey(filter), func(ctx context.Context) (int64, error) {
		return r.count(ctx, filter)
	})
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}

	var rows []models.DeclineRecordModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.DeclineRecordModel{}).
		Scopes(declineFilterScope(filter), db.Paginate((page-1)*filter.PageSize, filter.PageSize)).
		Order("declined_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list decline records: %w", err)
	}

	records, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *DeclineRecordRepository) count(ctx context.Context, filter ticket.DeclineRecordFilter) (int64, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.DeclineRecordModel{}).
		Scopes(declineFilterScope(filter)).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count decline records: %w", err)
	}
	return total, nil
}

func (r *DeclineRecordRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.DeclineRecordModel{})
	if !since.IsZero() {
		query = query.Where("declined_at >= ?", since.UTC())
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count decline records: %w", err)
	}
	return total, nil
}

func (r *DeclineRecordRepository) CountByFacility(ctx context.Context) (map[string]int64, error) {
	return r.countGroupedBy(ctx, "facility")
}

func (r *DeclineRecordRepository) CountByDeclinedBy(ctx context.Context) (map[string]int64, error) {
	return r.countGroupedBy(ctx, "declined_by")
}

type groupCount struct {
	Value *string
	Total int64
}

// countGroupedBy groups on a column chosen by this package, never by request input.
func (r *DeclineRecordRepository) countGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	var rows []groupCount
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.DeclineRecordModel{}).
		Select(column + " AS value, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count decline records by %s: %w", column, err)
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := ""
		if row.Value != nil {
			key = *row.Value
		}
		result[key] += row.Total
	}
	return result, nil
}

func declineFilterScope(filter ticket.DeclineRecordFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Scopes(db.ContainsAny(filter.Search, declineSearchColumns...))
		if filter.Facility != "" {
			q = q.Where("LOWER(facility) = LOWER(?)", filter.Facility)
		}
		if filter.DeclinedBy != "" {
			q = q.Where("declined_by = ?", filter.DeclinedBy)
		}
		return q
	}
}
