package usecases

import (
	"context"
	"strings"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

type ListDeclineRecordsQuery struct {
	Search     string
	Facility   string
	DeclinedBy string
	Page       int
	PageSize   int
	Export     bool
}

type ListDeclineRecordsResult struct {
	Records  []*dto.DeclineRecordDTO
	Total    int64
	Page     int
	PageSize int
	// Filtered is true when any search or filter narrowed the result.
	Filtered bool
}

type ListDeclineRecordsUseCase struct {
	declineRepo ticket.DeclineRecordRepository
	limits      PageLimits
	logger      logger.Interface
}

func NewListDeclineRecordsUseCase(
	declineRepo ticket.DeclineRecordRepository,
	limits PageLimits,
	logger logger.Interface,
) *ListDeclineRecordsUseCase {
	if limits.Default <= 0 {
		limits.Default = constants.DefaultDeclinePageSize
	}
	if limits.Max <= 0 {
		limits.Max = constants.MaxDeclinePageSize
	}
	return &ListDeclineRecordsUseCase{
		declineRepo: declineRepo,
		limits:      limits,
		logger:      logger,
	}
}

func (uc *ListDeclineRecordsUseCase) Execute(ctx context.Context, query ListDeclineRecordsQuery) (*ListDeclineRecordsResult, error) {
	page, pageSize := uc.limits.normalize(query.Page, query.PageSize)

	filter := ticket.DeclineRecordFilter{
		Search:     strings.TrimSpace(query.Search),
		Facility:   strings.TrimSpace(query.Facility),
		DeclinedBy: strings.TrimSpace(query.DeclinedBy),
		Page:       page,
		PageSize:   pageSize,
		CountMode:  ticket.CountApproximate,
	}
	if query.Export {
		filter.Page = constants.DefaultPage
		filter.PageSize = 0
		filter.CountMode = ticket.CountExact
	}

	records, total, err := uc.declineRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list decline records", "error", err)
		return nil, err
	}

	result := &ListDeclineRecordsResult{
		Records:  dto.ToDeclineRecordDTOs(records),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Filtered: filter.IsFiltered(),
	}
	if query.Export {
		result.Page = constants.DefaultPage
		result.PageSize = len(result.Records)
	}

	return result, nil
}
