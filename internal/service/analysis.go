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

// Signal-score weights and thresholds. The asymmetric sell-side thresholds
// are deliberate for a spot-only (no-short) book: entries need conviction,
// exits fire earlier.
const (
	weightRSI       = 4
	weightMACD      = 3
	weightBollinger = 2
	weightSMACross  = 2
	weightPriceSMA  = 1
	weightVolume    = 3

	bearMarketPenalty     = -6
	bullMarketBonus       = 4
	nearSupportBase       = 2
	nearResistancePenalty = -5
	levelProximityPct     = 1.5

	strongBuyThreshold  = 22
	buyThreshold        = 10
	sellThreshold       = -10
	strongSellThreshold = -22
)

// AnalysisService computes the indicator snapshot and support/resistance
// levels for one candle series.
type AnalysisService interface {
	Snapshot(ctx context.Context, candles []dto.Candle) (*dto.IndicatorSnapshot, error)
	Levels(ctx context.Context, candles []dto.Candle) (*dto.SupportResistanceLevels, error)
}

type analysisService struct {
	cfg *config.Config
	log *logger.Logger
}

func NewAnalysisService(cfg *config.Config, log *logger.Logger) AnalysisService {
	return &analysisService{cfg: cfg, log: log}
}

func (s *analysisService) Snapshot(ctx context.Context, candles []dto.Candle) (*dto.IndicatorSnapshot, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("cannot build snapshot from empty candle series")
	}

	ind := s.cfg.Indicator
	closes := dto.Closes(candles)
	volumes := dto.Volumes(candles)
	price := closes[len(closes)-1]

	rsi := indicator.RSIValue(closes, ind.RSIPeriod)

	macdLine, signalLine, histogram := indicator.MACDSeries(closes, ind.MACDFastPeriod, ind.MACDSlowPeriod, ind.MACDSignalPeriod)
	hist := indicator.Last(histogram)
	prevHist := prevValue(histogram)

	upperBand, middleBand, lowerBand, width := indicator.Bollinger(closes, ind.BollingerPeriod, ind.BollingerMultiplier)
	upper, lower := indicator.Last(upperBand), indicator.Last(lowerBand)

	mas := indicator.MovingAverages(closes)

	atr := indicator.Last(indicator.ATRSeries(dto.Highs(candles), dto.Lows(candles), closes, ind.ATRPeriod))

	volSMA := indicator.Last(indicator.SMA(volumes, 20))
	volRatio := indicator.Last(indicator.VolumeRatioSeries(volumes, 20))

	priceDelta := 0.0
	if len(closes) > 1 {
		priceDelta = price - closes[len(closes)-2]
	}

	levels := indicator.DetectLevels(candles, ind.LevelLookback, ind.LevelMergeThreshold)
	nearest := indicator.NearestLevels(levels, price)

	score := scoreSnapshot(scoreInput{
		price:      price,
		priceDelta: priceDelta,
		rsi:        rsi,
		histogram:  hist,
		prevHist:   prevHist,
		upperBand:  upper,
		lowerBand:  lower,
		mas:        mas,
		volRatio:   volRatio,
		nearest:    nearest,
	})

	snapshot := &dto.IndicatorSnapshot{
		RSI: ptr(rsi),
		MACD: dto.MACDData{
			MACD:      ptr(indicator.Last(macdLine)),
			Signal:    ptr(indicator.Last(signalLine)),
			Histogram: ptr(hist),
		},
		Bollinger: dto.BollingerData{
			Upper:  ptr(upper),
			Middle: ptr(indicator.Last(middleBand)),
			Lower:  ptr(lower),
			Width:  ptr(indicator.Last(width)),
		},
		MovingAverages: dto.MovingAverageData{
			SMA20:  ptr(mas.SMA20),
			SMA50:  ptr(mas.SMA50),
			SMA200: ptr(mas.SMA200),
			EMA20:  ptr(mas.EMA20),
			EMA50:  ptr(mas.EMA50),
			EMA200: ptr(mas.EMA200),
		},
		Volume: dto.VolumeData{
			SMA20: ptr(volSMA),
			Ratio: ptr(volRatio),
		},
		ATR:         ptr(atr),
		Trend:       indicator.Trend(price, mas.EMA20, mas.EMA50),
		Signal:      classifyScore(score),
		SignalScore: score,
	}

	return snapshot, nil
}

func (s *analysisService) Levels(ctx context.Context, candles []dto.Candle) (*dto.SupportResistanceLevels, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("cannot detect levels from empty candle series")
	}
	levels := indicator.DetectLevels(candles, s.cfg.Indicator.LevelLookback, s.cfg.Indicator.LevelMergeThreshold)
	return &levels, nil
}

type scoreInput struct {
	price      float64
	priceDelta float64
	rsi        float64
	histogram  float64
	prevHist   float64
	upperBand  float64
	lowerBand  float64
	mas        indicator.MovingAverageBundle
	volRatio   float64
	nearest    dto.NearestLevels
}

// scoreSnapshot is the weighted multi-factor aggregator. Contribution
// weights and the long-term trend context values are fixed policy.
func scoreSnapshot(in scoreInput) int {
	score := 0

	rsiStrength, _ := indicator.ClassifyRSI(in.rsi)
	score += rsiStrength * weightRSI

	score += indicator.ClassifyMACD(in.histogram, in.prevHist, in.price) * weightMACD

	score += indicator.ClassifyBollinger(in.price, in.upperBand, in.lowerBand) * weightBollinger

	if indicator.Valid(in.mas.SMA20) && indicator.Valid(in.mas.SMA50) {
		if in.mas.SMA20 > in.mas.SMA50 {
			score += weightSMACross
		} else if in.mas.SMA20 < in.mas.SMA50 {
			score -= weightSMACross
		}
	}
	if indicator.Valid(in.mas.SMA50) && indicator.Valid(in.mas.SMA200) {
		if in.mas.SMA50 > in.mas.SMA200 {
			score += weightSMACross
		} else if in.mas.SMA50 < in.mas.SMA200 {
			score -= weightSMACross
		}
	}
	if indicator.Valid(in.mas.SMA20) {
		if in.price > in.mas.SMA20 {
			score += weightPriceSMA
		} else if in.price < in.mas.SMA20 {
			score -= weightPriceSMA
		}
	}

	score += indicator.ClassifyVolume(in.volRatio, in.priceDelta) * weightVolume

	// Long-term trend context: the bear-market penalty is heavier than the
	// bull-market bonus.
	if indicator.Valid(in.mas.EMA200) {
		if in.price < in.mas.EMA200 {
			score += bearMarketPenalty
		} else if in.price > in.mas.EMA200 {
			score += bullMarketBonus
		}
	}

	if in.nearest.Support != nil && in.nearest.SupportDistance < levelProximityPct {
		score += nearSupportBase + in.nearest.Support.Strength
	}
	if in.nearest.Resistance != nil && in.nearest.ResistanceDistance < levelProximityPct {
		score += nearResistancePenalty
	}

	return score
}

func classifyScore(score int) dto.Signal {
	switch {
	case score >= strongBuyThreshold:
		return dto.SignalStrongBuy
	case score >= buyThreshold:
		return dto.SignalBuy
	case score <= strongSellThreshold:
		return dto.SignalStrongSell
	case score <= sellThreshold:
		return dto.SignalSell
	default:
		return dto.SignalNeutral
	}
}

// ptr converts a series value to its serialized form: nil for warmup NaN,
// a pointer otherwise.
func ptr(v float64) *float64 {
	if !indicator.Valid(v) {
		return nil
	}
	return &v
}

// prevValue returns the second-to-last value of a series.
func prevValue(series []float64) float64 {
	if len(series) < 2 {
		return math.NaN()
	}
	return series[len(series)-2]
}
