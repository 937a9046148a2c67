package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/dto"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/errors"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

type GenerateTicketNumberQuery struct {
	DeviceType string
}

// GenerateTicketNumberUseCase proposes a ticket number for the submission form.
// Nothing is reserved; the number only becomes a ticket when it is submitted.
type GenerateTicketNumberUseCase struct {
	numberGen ticket.NumberGenerator
	logger    logger.Interface
	now       func() time.Time
}

func NewGenerateTicketNumberUseCase(numberGen ticket.NumberGenerator, logger logger.Interface) *GenerateTicketNumberUseCase {
	return &GenerateTicketNumberUseCase{
		numberGen: numberGen,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *GenerateTicketNumberUseCase) Execute(_ context.Context, query GenerateTicketNumberQuery) (*dto.TicketNumberDTO, error) {
	deviceType := strings.TrimSpace(query.DeviceType)
	if deviceType == "" {
		return nil, errors.NewValidationError("device is required")
	}

	number := uc.numberGen.Generate(deviceType, uc.now())
	uc.logger.Debugw("ticket number generated", "device_type", deviceType, "ticket_number", number)

	return &dto.TicketNumberDTO{TicketNumber: number}, nil
}
