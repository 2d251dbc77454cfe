package dto

// BacktestRequest defines the parameters for one backtest run. Zero values
// fall back to the configured defaults.
type BacktestRequest struct {
	Symbol            string   `json:"symbol" validate:"required"`
	Interval          string   `json:"interval"`
	Candles           []Candle `json:"-"`
	InitialCapital    float64  `json:"initial_capital" validate:"gte=0"`
	PositionPercent   float64  `json:"position_percent" validate:"gte=0,lte=100"`
	RSIOversold       float64  `json:"rsi_oversold" validate:"gte=0,lte=100"`
	RSIOverbought     float64  `json:"rsi_overbought" validate:"gte=0,lte=100"`
	StopLossPercent   float64  `json:"stop_loss_percent" validate:"gte=0"`
	TakeProfitPercent float64  `json:"take_profit_percent" validate:"gte=0"`
}

// BacktestTrade is one immutable entry in the simulated trade log. PnL and
// PnLPercent are set only on SELL entries.
type BacktestTrade struct {
	Type       TradeType `json:"type"`
	Timestamp  int64     `json:"timestamp"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Total      float64   `json:"total"`
	Reason     string    `json:"reason"`
	PnL        *float64  `json:"pnl,omitempty"`
	PnLPercent *float64  `json:"pnl_percent,omitempty"`
}

// EquityPoint is one mark-to-market sample of the equity curve.
type EquityPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// BacktestResult aggregates the trade log with summary statistics. The
// equity curve has one point per simulated candle past warmup.
type BacktestResult struct {
	Symbol         string          `json:"symbol"`
	InitialCapital float64         `json:"initial_capital"`
	FinalCapital   float64         `json:"final_capital"`
	TotalReturn    float64         `json:"total_return"`
	TotalReturnPct float64         `json:"total_return_pct"`
	TotalTrades    int             `json:"total_trades"`
	WinningTrades  int             `json:"winning_trades"`
	LosingTrades   int             `json:"losing_trades"`
	WinRate        float64         `json:"win_rate"`
	MaxDrawdownPct float64         `json:"max_drawdown_pct"`
	SharpeRatio    float64         `json:"sharpe_ratio"`
	Trades         []BacktestTrade `json:"trades"`
	EquityCurve    []EquityPoint   `json:"equity_curve"`
}
