package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
)

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "0", formatUnits(0))
	assert.Equal(t, "999", formatUnits(999))
	assert.Equal(t, "25.000", formatUnits(25000))
	assert.Equal(t, "1.000.000", formatUnits(1000000))
	assert.Equal(t, "-2.500", formatUnits(-2500))
	assert.Equal(t, "+30", signed(30))
	assert.Equal(t, "-30", signed(-30))
}

func TestRenderLedger_GeneraPDF(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	history := &dto.MovementHistoryResponse{
		Movements: []dto.LedgerEntryResponse{
			{
				MovementResponse: dto.MovementResponse{ID: "b", MovementType: "OUTBOUND", Quantity: 30, CreatedAt: now.Add(time.Minute)},
				Direction:        "OUTBOUND", BalanceChange: -30, RunningBalance: 70,
			},
			{
				MovementResponse: dto.MovementResponse{ID: "a", MovementType: "INBOUND", Quantity: 100, CreatedAt: now},
				Direction:        "INBOUND", BalanceChange: 100, RunningBalance: 100,
			},
		},
		Summary: dto.LedgerSummary{TotalMovements: 2, FinalBalance: 70, TotalInbound: 100, TotalOutbound: 30},
		Page:    dto.NewPageMeta(1, 20, 2),
	}

	out, err := NewMarotoLedgerGenerator().RenderLedger(context.Background(), ports.LedgerReport{
		InventoryItemID: "42",
		History:         history,
		GeneratedAt:     now,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderLedger_SinHistorial(t *testing.T) {
	_, err := NewMarotoLedgerGenerator().RenderLedger(context.Background(), ports.LedgerReport{})
	assert.Error(t, err)
}
