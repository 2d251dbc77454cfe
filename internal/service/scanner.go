package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"crypto-scanner/config"
	"crypto-scanner/internal/dto"
	"crypto-scanner/internal/indicator"
	"crypto-scanner/internal/repository"
	"crypto-scanner/pkg/logger"
	"crypto-scanner/pkg/ratelimit"
	"crypto-scanner/pkg/utils"
)

// scannerWarmup is the minimum candle history an instrument needs before
// it can be scored.
const scannerWarmup = 50

// Confidence contributions per fired trigger, capped at 1.0.
const (
	confidenceRSIOversold    = 0.3
	confidenceBelowBollinger = 0.25
	confidenceMACDPositive   = 0.25
	confidenceNearSupport    = 0.2
)

// ScannerService runs the indicator pipeline across the symbol universe
// and ranks the matches.
type ScannerService interface {
	Scan(ctx context.Context, req dto.ScanRequest) ([]dto.ScanOpportunity, error)
}

type scannerService struct {
	cfg        *config.Config
	log        *logger.Logger
	analysis   AnalysisService
	marketRepo repository.MarketRepository
	limiter    *ratelimit.TokenLimiter
}

func NewScannerService(
	cfg *config.Config,
	log *logger.Logger,
	analysis AnalysisService,
	marketRepo repository.MarketRepository,
) ScannerService {
	return &scannerService{
		cfg:        cfg,
		log:        log,
		analysis:   analysis,
		marketRepo: marketRepo,
		limiter:    ratelimit.NewTokenLimiter(cfg.Binance.MaxRequestPerMinute),
	}
}

func (s *scannerService) Scan(ctx context.Context, req dto.ScanRequest) ([]dto.ScanOpportunity, error) {
	req = s.applyDefaults(req)

	symbols, err := s.marketRepo.GetSymbols(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get symbol universe", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to get symbol universe: %w", err)
	}

	newCtx, cancel := context.WithTimeout(ctx, s.cfg.Scanner.Timeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(newCtx)
	g.SetLimit(s.cfg.Scanner.MaxConcurrency)

	var (
		mu            sync.Mutex
		opportunities []dto.ScanOpportunity
	)

	s.log.DebugContext(ctx, "Start scanning symbols", logger.IntField("total_symbols", len(symbols)))

	for _, symbol := range symbols {
		if !utils.ShouldContinue(gCtx, s.log) {
			s.log.Info("Received stop signal, scan stopped")
			break
		}

		symbol := symbol
		g.Go(func() error {
			// Pace candle fetches against the external API budget.
			if err := s.limiter.Wait(gCtx, 1); err != nil {
				return err
			}

			opp, err := s.scanSymbol(gCtx, symbol, req)
			if err != nil {
				// One bad instrument never fails the whole scan.
				s.log.WarnContext(gCtx, "Failed to scan symbol",
					logger.ErrorField(err),
					logger.StringField("symbol", symbol.Symbol))
				return nil
			}
			if opp == nil {
				return nil
			}

			mu.Lock()
			opportunities = append(opportunities, *opp)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Score descending, symbol as the deterministic tie-break.
	sort.Slice(opportunities, func(i, j int) bool {
		if opportunities[i].Snapshot.SignalScore != opportunities[j].Snapshot.SignalScore {
			return opportunities[i].Snapshot.SignalScore > opportunities[j].Snapshot.SignalScore
		}
		return opportunities[i].Symbol < opportunities[j].Symbol
	})

	if req.Limit > 0 && len(opportunities) > req.Limit {
		opportunities = opportunities[:req.Limit]
	}

	s.log.InfoContext(ctx, "Scan completed",
		logger.IntField("total_symbols", len(symbols)),
		logger.IntField("opportunities", len(opportunities)),
		logger.IntField("rate_tokens_remaining", s.limiter.GetRemaining()))
	return opportunities, nil
}

func (s *scannerService) applyDefaults(req dto.ScanRequest) dto.ScanRequest {
	if req.MaxRSI == 0 {
		req.MaxRSI = 100
	}
	if req.Limit == 0 {
		req.Limit = s.cfg.Scanner.DefaultLimit
	}
	return req
}

func (s *scannerService) scanSymbol(ctx context.Context, symbol dto.SymbolInfo, req dto.ScanRequest) (*dto.ScanOpportunity, error) {
	candles, err := s.marketRepo.GetCandles(ctx, symbol.Symbol, s.cfg.Scanner.Interval, s.cfg.Scanner.CandleLimit)
	if err != nil {
		return nil, err
	}
	if len(candles) < scannerWarmup {
		return nil, nil
	}

	snapshot, err := s.analysis.Snapshot(ctx, candles)
	if err != nil {
		return nil, err
	}

	if snapshot.RSI != nil && (*snapshot.RSI < req.MinRSI || *snapshot.RSI > req.MaxRSI) {
		return nil, nil
	}
	if len(req.Signals) > 0 && !containsSignal(req.Signals, snapshot.Signal) {
		return nil, nil
	}

	triggers, confidence := s.evaluateTriggers(candles, snapshot)

	return &dto.ScanOpportunity{
		Symbol:     symbol.Symbol,
		Market:     symbol,
		Snapshot:   *snapshot,
		Confidence: confidence,
		Triggers:   triggers,
	}, nil
}

// evaluateTriggers assembles the human-readable reasons the instrument was
// retained and a bounded confidence from the same conditions.
func (s *scannerService) evaluateTriggers(candles []dto.Candle, snapshot *dto.IndicatorSnapshot) ([]string, float64) {
	var triggers []string
	confidence := 0.0
	price := candles[len(candles)-1].Close

	if snapshot.RSI != nil && *snapshot.RSI < 30 {
		triggers = append(triggers, fmt.Sprintf("RSI oversold (%.1f)", *snapshot.RSI))
		confidence += confidenceRSIOversold
	}
	if snapshot.Bollinger.Lower != nil && price < *snapshot.Bollinger.Lower {
		triggers = append(triggers, "Price below lower Bollinger band")
		confidence += confidenceBelowBollinger
	}
	if snapshot.MACD.Histogram != nil && *snapshot.MACD.Histogram > 0 {
		triggers = append(triggers, "MACD histogram positive")
		confidence += confidenceMACDPositive
	}

	levels := indicator.DetectLevels(candles, s.cfg.Indicator.LevelLookback, s.cfg.Indicator.LevelMergeThreshold)
	nearest := indicator.NearestLevels(levels, price)
	if nearest.Support != nil && nearest.SupportDistance < levelProximityPct {
		triggers = append(triggers, fmt.Sprintf("Near support %.4f", nearest.Support.Price))
		confidence += confidenceNearSupport
	}

	if confidence > 1 {
		confidence = 1
	}
	return triggers, confidence
}

func containsSignal(signals []dto.Signal, signal dto.Signal) bool {
	for _, s := range signals {
		if s == signal {
			return true
		}
	}
	return false
}
