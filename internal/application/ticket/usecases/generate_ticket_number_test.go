package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/HIMU202508/TicketingSystem/internal/shared/errors"
)

func TestGenerateTicketNumberUseCase_Execute(t *testing.T) {
	gen := &mockNumberGenerator{number: "MO20250302005"}
	uc := NewGenerateTicketNumberUseCase(gen, &mockLogger{})
	uc.now = fixedClock

	result, err := uc.Execute(context.Background(), GenerateTicketNumberQuery{DeviceType: "  Monitor "})

	require.NoError(t, err)
	assert.Equal(t, "MO20250302005", result.TicketNumber)
	assert.Equal(t, "Monitor", gen.device)
	assert.Equal(t, testNow, gen.at)
}

func TestGenerateTicketNumberUseCase_Execute_RequiresDevice(t *testing.T) {
	uc := NewGenerateTicketNumberUseCase(&mockNumberGenerator{number: "unused"}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GenerateTicketNumberQuery{DeviceType: " "})

	assert.Nil(t, result)
	assert.True(t, apperrors.IsValidationError(err))
}
