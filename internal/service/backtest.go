package service

import (
	"context"
	"fmt"
	"math"

	"crypto-scanner/config"
	"crypto-scanner/internal/dto"
	"crypto-scanner/internal/indicator"
	"crypto-scanner/pkg/logger"
)

const (
	backtestWarmup = 50
	// Annualization constant for daily bars.
	sharpeAnnualization = 252
)

// BacktestService replays the indicator pipeline candle by candle against
// historical data and simulates a rule-based long-only strategy.
type BacktestService interface {
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
}

type backtestService struct {
	cfg *config.Config
	log *logger.Logger
}

func NewBacktestService(cfg *config.Config, log *logger.Logger) BacktestService {
	return &backtestService{cfg: cfg, log: log}
}

type openPosition struct {
	entryPrice float64
	quantity   float64
	stopLoss   float64
	takeProfit float64
}

func (s *backtestService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	req = s.applyDefaults(req)
	candles := req.Candles

	if len(candles) == 0 {
		return nil, fmt.Errorf("cannot run backtest on empty candle series")
	}
	if len(candles) <= backtestWarmup {
		return nil, fmt.Errorf("insufficient history for backtest: need more than %d candles, got %d", backtestWarmup, len(candles))
	}

	closes := dto.Closes(candles)
	ind := s.cfg.Indicator

	// RSI and MACD are forward recurrences, so the value at index i depends
	// only on candles[0..i]. Computing the full series once is equivalent to
	// recomputing per truncation and keeps the loop free of lookahead.
	rsiSeries := indicator.RSISeries(closes, ind.RSIPeriod)
	_, _, histogram := indicator.MACDSeries(closes, ind.MACDFastPeriod, ind.MACDSlowPeriod, ind.MACDSignalPeriod)

	var (
		cash        = req.InitialCapital
		position    *openPosition
		trades      []dto.BacktestTrade
		equityCurve = make([]dto.EquityPoint, 0, len(candles)-backtestWarmup)
		peakEquity  = req.InitialCapital
		maxDrawdown float64
	)

	for i := backtestWarmup; i < len(candles); i++ {
		candle := candles[i]
		rsi := rsiSeries[i]
		hist := histogram[i]

		if position != nil {
			switch {
			// Intracandle touches are checked against low/high, not close.
			// Stop loss wins when both levels are touched in one candle.
			case candle.Low <= position.stopLoss:
				cash += s.closePosition(&trades, position, candle.Timestamp, position.stopLoss, "Stop Loss")
				position = nil
			case candle.High >= position.takeProfit:
				cash += s.closePosition(&trades, position, candle.Timestamp, position.takeProfit, "Take Profit")
				position = nil
			case indicator.Valid(rsi) && rsi > req.RSIOverbought:
				cash += s.closePosition(&trades, position, candle.Timestamp, candle.Close, "RSI Overbought")
				position = nil
			case indicator.Valid(hist) && hist < 0:
				cash += s.closePosition(&trades, position, candle.Timestamp, candle.Close, "MACD Bearish")
				position = nil
			}
		} else if indicator.Valid(rsi) && rsi < req.RSIOversold && indicator.Valid(hist) && hist > 0 {
			// Entry demands both conditions at once. This is stricter than
			// the scanner's weighted score on purpose: the backtest is the
			// conservative rule set.
			quantity := cash * req.PositionPercent / 100 / candle.Close
			if quantity > 0 {
				cash -= quantity * candle.Close
				position = &openPosition{
					entryPrice: candle.Close,
					quantity:   quantity,
					stopLoss:   candle.Close * (1 - req.StopLossPercent/100),
					takeProfit: candle.Close * (1 + req.TakeProfitPercent/100),
				}
				trades = append(trades, dto.BacktestTrade{
					Type:      dto.TradeBuy,
					Timestamp: candle.Timestamp,
					Price:     candle.Close,
					Quantity:  quantity,
					Total:     quantity * candle.Close,
					Reason:    "RSI oversold + MACD bullish",
				})
			}
		}

		equity := cash
		if position != nil {
			equity += position.quantity * candle.Close
		}
		equityCurve = append(equityCurve, dto.EquityPoint{Timestamp: candle.Timestamp, Value: equity})

		if equity > peakEquity {
			peakEquity = equity
		}
		if peakEquity > 0 {
			drawdown := (peakEquity - equity) / peakEquity
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	if position != nil {
		last := candles[len(candles)-1]
		cash += s.closePosition(&trades, position, last.Timestamp, last.Close, "End of backtest")
		position = nil
	}

	result := s.buildResult(req, cash, trades, equityCurve, maxDrawdown)
	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("symbol", req.Symbol),
		logger.IntField("total_trades", result.TotalTrades),
		logger.Float64Field("total_return_pct", result.TotalReturnPct))
	return result, nil
}

// closePosition appends the SELL log entry and returns the cash proceeds.
func (s *backtestService) closePosition(trades *[]dto.BacktestTrade, pos *openPosition, timestamp int64, exitPrice float64, reason string) float64 {
	pnl := (exitPrice - pos.entryPrice) * pos.quantity
	pnlPercent := (exitPrice - pos.entryPrice) / pos.entryPrice * 100

	*trades = append(*trades, dto.BacktestTrade{
		Type:       dto.TradeSell,
		Timestamp:  timestamp,
		Price:      exitPrice,
		Quantity:   pos.quantity,
		Total:      pos.quantity * exitPrice,
		Reason:     reason,
		PnL:        &pnl,
		PnLPercent: &pnlPercent,
	})
	return pos.quantity * exitPrice
}

func (s *backtestService) buildResult(req dto.BacktestRequest, finalCapital float64, trades []dto.BacktestTrade, equityCurve []dto.EquityPoint, maxDrawdown float64) *dto.BacktestResult {
	result := &dto.BacktestResult{
		Symbol:         req.Symbol,
		InitialCapital: req.InitialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    finalCapital - req.InitialCapital,
		TotalTrades:    len(trades),
		MaxDrawdownPct: maxDrawdown * 100,
		Trades:         trades,
		EquityCurve:    equityCurve,
	}
	if req.InitialCapital > 0 {
		result.TotalReturnPct = result.TotalReturn / req.InitialCapital * 100
	}

	var tradeReturns []float64
	for _, trade := range trades {
		if trade.Type != dto.TradeSell || trade.PnL == nil {
			continue
		}
		if *trade.PnL > 0 {
			result.WinningTrades++
		} else {
			result.LosingTrades++
		}
		tradeReturns = append(tradeReturns, *trade.PnLPercent)
	}

	closed := result.WinningTrades + result.LosingTrades
	if closed > 0 {
		result.WinRate = float64(result.WinningTrades) / float64(closed) * 100
	}
	result.SharpeRatio = sharpeRatio(tradeReturns)

	return result
}

// sharpeRatio computes mean/stddev of per-trade returns annualized by
// sqrt(252), or 0 with fewer than 2 realized trades.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(returns)))
	if stddev == 0 {
		return 0
	}
	return mean / stddev * math.Sqrt(sharpeAnnualization)
}

func (s *backtestService) applyDefaults(req dto.BacktestRequest) dto.BacktestRequest {
	bt := s.cfg.Backtest
	if req.InitialCapital == 0 {
		req.InitialCapital = bt.InitialCapital
	}
	if req.PositionPercent == 0 {
		req.PositionPercent = bt.PositionPercent
	}
	if req.RSIOversold == 0 {
		req.RSIOversold = bt.RSIOversold
	}
	if req.RSIOverbought == 0 {
		req.RSIOverbought = bt.RSIOverbought
	}
	if req.StopLossPercent == 0 {
		req.StopLossPercent = bt.StopLossPercent
	}
	if req.TakeProfitPercent == 0 {
		req.TakeProfitPercent = bt.TakeProfitPercent
	}
	if req.Interval == "" {
		req.Interval = s.cfg.Scanner.Interval
	}
	return req
}
