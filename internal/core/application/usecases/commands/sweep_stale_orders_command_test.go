package commands_test

import (
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSweepStaleOrdersCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewSweepStaleOrdersCommand(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cmd.PaymentWindow())
}

func TestNewSweepStaleOrdersCommand_NonPositiveWindow(t *testing.T) {
	_, err := commands.NewSweepStaleOrdersCommand(0)
	require.ErrorIs(t, err, commands.ErrPaymentWindowIsInvalid)

	_, err = commands.NewSweepStaleOrdersCommand(-time.Minute)
	require.ErrorIs(t, err, commands.ErrPaymentWindowIsInvalid)
}

func TestSweepStaleOrdersCommand_Validate_ZeroValue(t *testing.T) {
	cmd := commands.SweepStaleOrdersCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrSweepStaleOrdersCommandIsNotConstructed)
}
