package usecases

import (
	"context"
	"strings"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	vo "github.com/HIMU202508/TicketingSystem/internal/domain/ticket/valueobjects"
	"github.com/HIMU202508/TicketingSystem/internal/shared/constants"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

type ListTicketsQuery struct {
	Status   string
	Page     int
	PageSize int
	// Export returns every matching ticket with an exact total.
	Export bool
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// PageLimits bounds the page size a list query may request.
type PageLimits struct {
	Default int
	Max     int
}

func (l PageLimits) normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = l.Default
	}
	if l.Max > 0 && pageSize > l.Max {
		pageSize = l.Max
	}
	return page, pageSize
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	limits     PageLimits
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	limits PageLimits,
	logger logger.Interface,
) *ListTicketsUseCase {
	if limits.Default <= 0 {
		limits.Default = constants.DefaultTicketPageSize
	}
	if limits.Max <= 0 {
		limits.Max = constants.MaxTicketPageSize
	}
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		limits:     limits,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	page, pageSize := uc.limits.normalize(query.Page, query.PageSize)

	filter := ticket.TicketFilter{
		Page:      page,
		PageSize:  pageSize,
		CountMode: ticket.CountApproximate,
	}
	if query.Export {
		filter.Page = constants.DefaultPage
		filter.PageSize = 0
		filter.CountMode = ticket.CountExact
	}

	if s := strings.TrimSpace(query.Status); s != "" {
		status, err := vo.NewTicketStatus(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid status", err.Error())
		}
		filter.Status = &status
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	result := &ListTicketsResult{
		Tickets:  dto.ToTicketDTOs(tickets),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if query.Export {
		result.Page = constants.DefaultPage
		result.PageSize = len(result.Tickets)
	}

	return result, nil
}
