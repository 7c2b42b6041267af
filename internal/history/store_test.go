package history

import (
	"strings"
	"testing"

	"rizzk-go/internal/database"
	"rizzk-go/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDatabase("file::memory:?cache=shared")
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.Clear())
	return store
}

func mustCompute(t *testing.T, in risk.TradeInput) risk.TradeResult {
	t.Helper()
	result, err := risk.Compute(in)
	require.NoError(t, err)
	return result
}

func TestStoreSaveAndList(t *testing.T) {
	store := setupStore(t)

	long := risk.TradeInput{
		AccountSize: 10000,
		RiskMode:    risk.RiskModePercent,
		RiskValue:   1,
		Direction:   risk.DirectionLong,
		EntryPrice:  100,
		StopPrice:   95,
	}
	short := risk.TradeInput{
		AccountSize: 10000,
		RiskMode:    risk.RiskModePercent,
		RiskValue:   1,
		Direction:   risk.DirectionShort,
		EntryPrice:  95,
		StopPrice:   100,
	}

	_, err := store.Save("AAPL", long, mustCompute(t, long))
	require.NoError(t, err)
	_, err = store.Save("", short, mustCompute(t, short))
	require.NoError(t, err)

	records, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first
	assert.Equal(t, risk.DirectionShort, records[0].Direction)
	assert.Equal(t, "AAPL", records[1].Symbol)
	assert.Equal(t, int64(20), records[1].PositionSize)
	assert.InDelta(t, 105, records[1].ProfitTarget1R, 1e-9)

	limited, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, records[0].ID, limited[0].ID)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStoreClear(t *testing.T) {
	store := setupStore(t)

	in := risk.TradeInput{
		AccountSize: 5000,
		RiskMode:    risk.RiskModeFixed,
		RiskValue:   50,
		Direction:   risk.DirectionLong,
		EntryPrice:  20,
		StopPrice:   19,
	}
	_, err := store.Save("", in, mustCompute(t, in))
	require.NoError(t, err)

	require.NoError(t, store.Clear())

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWriteCSV(t *testing.T) {
	store := setupStore(t)

	in := risk.TradeInput{
		AccountSize: 10000,
		RiskMode:    risk.RiskModePercent,
		RiskValue:   1,
		Direction:   risk.DirectionLong,
		EntryPrice:  100,
		StopPrice:   95,
	}
	_, err := store.Save("TSLA", in, mustCompute(t, in))
	require.NoError(t, err)

	records, err := store.List(0)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, records))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "time,symbol,direction,account_size"))
	assert.Contains(t, lines[1], "TSLA")
	assert.Contains(t, lines[1], "LONG")
	assert.Contains(t, lines[1], ",20,")  // position size
	assert.Contains(t, lines[1], ",105,") // 1:1 target
}

func TestWriteCSVEmptyHistory(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, nil))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 1) // header only
}
