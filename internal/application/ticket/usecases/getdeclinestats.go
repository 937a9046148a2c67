package usecases

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

// UnknownBucket groups decline records whose grouping column is blank.
const UnknownBucket = "Unknown"

type GetDeclineStatsUseCase struct {
	declineRepo ticket.DeclineRecordRepository
	logger      logger.Interface
	now         func() time.Time
}

func NewGetDeclineStatsUseCase(
	declineRepo ticket.DeclineRecordRepository,
	logger logger.Interface,
) *GetDeclineStatsUseCase {
	return &GetDeclineStatsUseCase{
		declineRepo: declineRepo,
		logger:      logger,
		now:         biztime.NowUTC,
	}
}

func (uc *GetDeclineStatsUseCase) Execute(ctx context.Context) (*dto.DeclineStatsDTO, error) {
	var (
		stats        ticket.DeclineStats
		byFacility   map[string]int64
		byDeclinedBy map[string]int64
	)
	startOfDay := biztime.StartOfDayUTC(uc.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.declineRepo.CountSince(gctx, time.Time{})
		stats.Total = n
		return err
	})
	g.Go(func() error {
		n, err := uc.declineRepo.CountSince(gctx, startOfDay)
		stats.Today = n
		return err
	})
	g.Go(func() error {
		m, err := uc.declineRepo.CountByFacility(gctx)
		byFacility = m
		return err
	})
	g.Go(func() error {
		m, err := uc.declineRepo.CountByDeclinedBy(gctx)
		byDeclinedBy = m
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to compute decline stats", "error", err)
		return nil, err
	}

	stats.ByFacility = foldBlankKeys(byFacility)
	stats.ByDeclinedBy = foldBlankKeys(byDeclinedBy)

	return dto.ToDeclineStatsDTO(&stats), nil
}

func foldBlankKeys(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		if strings.TrimSpace(k) == "" {
			k = UnknownBucket
		}
		out[k] += v
	}
	return out
}
