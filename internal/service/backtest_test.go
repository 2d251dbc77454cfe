package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/logger"
)

// declineBounceCloses builds a flat shelf, a 3%-per-bar decline deep enough
// to floor the RSI, then a bounce that flips the MACD histogram positive.
// The first bar satisfying both entry conditions is the final one.
func declineBounceCloses() []float64 {
	var closes []float64
	price := 100.0
	for i := 0; i < 49; i++ {
		closes = append(closes, price)
	}
	for i := 0; i < 20; i++ {
		price *= 0.97
		closes = append(closes, price)
	}
	for i := 0; i < 4; i++ {
		price *= 1.02
		closes = append(closes, price)
	}
	return closes
}

func TestBacktestService_Run_InputValidation(t *testing.T) {
	svc := NewBacktestService(testConfig(), logger.NewNop())

	_, err := svc.Run(context.Background(), dto.BacktestRequest{Symbol: "BTCUSDT"})
	assert.Error(t, err)

	_, err = svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:  "BTCUSDT",
		Candles: candlesFromCloses(make([]float64, 50)),
	})
	assert.Error(t, err)
}

func TestBacktestService_Run_ForceCloseAtEnd(t *testing.T) {
	candles := candlesFromCloses(declineBounceCloses())
	svc := NewBacktestService(testConfig(), logger.NewNop())

	result, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:  "BTCUSDT",
		Candles: candles,
	})
	require.NoError(t, err)

	// The only qualifying entry fires on the last candle, so the open
	// position is flattened at that candle's close.
	require.Len(t, result.Trades, 2)
	assert.Equal(t, dto.TradeBuy, result.Trades[0].Type)
	assert.Equal(t, dto.TradeSell, result.Trades[1].Type)
	assert.Equal(t, "RSI oversold + MACD bullish", result.Trades[0].Reason)
	assert.Equal(t, "End of backtest", result.Trades[1].Reason)
	assert.Equal(t, result.Trades[0].Timestamp, result.Trades[1].Timestamp)

	// Entry and exit share a price, so capital is conserved exactly.
	assert.InDelta(t, result.InitialCapital, result.FinalCapital, 1e-9)
	require.NotNil(t, result.Trades[1].PnL)
	assert.InDelta(t, 0.0, *result.Trades[1].PnL, 1e-9)

	assert.Len(t, result.EquityCurve, len(candles)-50)
}

func TestBacktestService_Run_StopLossOnIntracandleLow(t *testing.T) {
	closes := declineBounceCloses()
	candles := candlesFromCloses(closes)
	entryClose := closes[len(closes)-1]

	// One more bar whose low pierces the 5% stop while the close stays
	// above it. The exit must fill at the stop price, not the close.
	candles = append(candles, dto.Candle{
		Timestamp: int64(len(candles)) * 86_400_000,
		Open:      entryClose,
		High:      entryClose,
		Low:       entryClose * 0.92,
		Close:     entryClose * 0.93,
		Volume:    1000,
	})

	svc := NewBacktestService(testConfig(), logger.NewNop())
	result, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:  "BTCUSDT",
		Candles: candles,
	})
	require.NoError(t, err)

	require.Len(t, result.Trades, 2)
	sell := result.Trades[1]
	assert.Equal(t, "Stop Loss", sell.Reason)
	assert.InDelta(t, entryClose*0.95, sell.Price, 1e-9)

	assert.Equal(t, 2, result.TotalTrades)
	assert.Equal(t, 0, result.WinningTrades)
	assert.Equal(t, 1, result.LosingTrades)
	assert.InDelta(t, 0.0, result.WinRate, 1e-9)

	// Full position at 5% stop loses exactly 5% of capital.
	assert.InDelta(t, 9_500.0, result.FinalCapital, 1e-6)
	assert.InDelta(t, -500.0, result.TotalReturn, 1e-6)
	assert.InDelta(t, -5.0, result.TotalReturnPct, 1e-9)
	assert.GreaterOrEqual(t, result.MaxDrawdownPct, 5.0)

	// A single realized trade is not enough for a Sharpe estimate.
	assert.InDelta(t, 0.0, result.SharpeRatio, 1e-12)

	assert.Len(t, result.EquityCurve, len(candles)-50)
}

func TestBacktestService_Run_TruncationDoesNotChangeEarlierDecisions(t *testing.T) {
	closes := declineBounceCloses()
	full := candlesFromCloses(closes)
	full = append(full, dto.Candle{
		Timestamp: int64(len(full)) * 86_400_000,
		Open:      closes[len(closes)-1],
		High:      closes[len(closes)-1] * 1.01,
		Low:       closes[len(closes)-1] * 0.99,
		Close:     closes[len(closes)-1],
		Volume:    1000,
	})
	truncated := full[:len(full)-1]

	svc := NewBacktestService(testConfig(), logger.NewNop())

	fullResult, err := svc.Run(context.Background(), dto.BacktestRequest{Symbol: "BTCUSDT", Candles: full})
	require.NoError(t, err)
	truncResult, err := svc.Run(context.Background(), dto.BacktestRequest{Symbol: "BTCUSDT", Candles: truncated})
	require.NoError(t, err)

	// The entry decision on the shared prefix is identical whether or not
	// the extra candle exists.
	require.NotEmpty(t, fullResult.Trades)
	require.NotEmpty(t, truncResult.Trades)
	assert.Equal(t, truncResult.Trades[0].Timestamp, fullResult.Trades[0].Timestamp)
	assert.Equal(t, truncResult.Trades[0].Price, fullResult.Trades[0].Price)
	assert.Equal(t, truncResult.Trades[0].Quantity, fullResult.Trades[0].Quantity)

	assert.Equal(t, truncResult.EquityCurve, fullResult.EquityCurve[:len(truncResult.EquityCurve)])
}

func TestBacktestService_Run_CapitalConservation(t *testing.T) {
	closes := declineBounceCloses()
	// Extend with another swing so more than one round trip can happen.
	price := closes[len(closes)-1]
	for i := 0; i < 30; i++ {
		price *= 1.015
		closes = append(closes, price)
	}
	for i := 0; i < 15; i++ {
		price *= 0.97
		closes = append(closes, price)
	}
	for i := 0; i < 5; i++ {
		price *= 1.02
		closes = append(closes, price)
	}
	candles := candlesFromCloses(closes)

	svc := NewBacktestService(testConfig(), logger.NewNop())
	result, err := svc.Run(context.Background(), dto.BacktestRequest{Symbol: "BTCUSDT", Candles: candles})
	require.NoError(t, err)

	var pnlSum float64
	sells := 0
	for _, trade := range result.Trades {
		if trade.Type == dto.TradeSell {
			require.NotNil(t, trade.PnL)
			pnlSum += *trade.PnL
			sells++
		}
	}
	assert.Greater(t, sells, 0)
	assert.InDelta(t, result.InitialCapital+pnlSum, result.FinalCapital, 1e-6)
	assert.Equal(t, sells, result.WinningTrades+result.LosingTrades)
	assert.Len(t, result.EquityCurve, len(candles)-50)
}

func TestBacktestService_Run_RequestOverridesDefaults(t *testing.T) {
	closes := declineBounceCloses()
	candles := candlesFromCloses(closes)

	svc := NewBacktestService(testConfig(), logger.NewNop())
	result, err := svc.Run(context.Background(), dto.BacktestRequest{
		Symbol:         "ETHUSDT",
		Candles:        candles,
		InitialCapital: 5_000,
	})
	require.NoError(t, err)

	assert.Equal(t, "ETHUSDT", result.Symbol)
	assert.InDelta(t, 5_000.0, result.InitialCapital, 1e-9)
}
