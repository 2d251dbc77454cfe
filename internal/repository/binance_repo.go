package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"crypto-scanner/config"
	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/cache"
	"crypto-scanner/pkg/httpclient"
	"crypto-scanner/pkg/logger"
)

const candleCacheTTL = time.Minute

type binanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	cache          cache.Cache
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewBinanceRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) MarketRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Binance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &binanceRepository{
		httpClient:     httpclient.New(cfg.Binance.BaseURL, cfg.Binance.Timeout),
		cfg:            cfg,
		cache:          inmemoryCache,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *binanceRepository) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error) {
	cacheKey := fmt.Sprintf("candles:%s:%s:%d", symbol, interval, limit)
	if cached, found := r.cache.Get(cacheKey); found {
		if candles, ok := cached.([]dto.Candle); ok {
			return candles, nil
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/api/v3/klines"
	queryParams := map[string]string{
		"symbol":   symbol,
		"interval": interval,
		"limit":    strconv.Itoa(limit),
	}

	var klines [][]interface{}
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &klines)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Binance API returned Non-OK status for klines",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	candles := make([]dto.Candle, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			continue
		}
		openTime, _ := k[0].(float64)
		open, _ := parseKlineFloat(k[1])
		high, _ := parseKlineFloat(k[2])
		low, _ := parseKlineFloat(k[3])
		closePrice, _ := parseKlineFloat(k[4])
		volume, _ := parseKlineFloat(k[5])

		candles = append(candles, dto.Candle{
			Timestamp: int64(openTime),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
		})
	}

	r.cache.Set(cacheKey, candles, candleCacheTTL)
	return candles, nil
}

type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	QuoteVolume        string `json:"quoteVolume"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// GetSymbols returns the scan universe: 24h tickers filtered by quote asset
// and minimum quote volume.
func (r *binanceRepository) GetSymbols(ctx context.Context) ([]dto.SymbolInfo, error) {
	cacheKey := "symbols:" + r.cfg.Binance.QuoteAsset
	if cached, found := r.cache.Get(cacheKey); found {
		if symbols, ok := cached.([]dto.SymbolInfo); ok {
			return symbols, nil
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	var tickers []binanceTicker
	resp, err := r.httpClient.Get(ctx, "/api/v3/ticker/24hr", nil, nil, &tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickers from binance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Binance API returned Non-OK status for tickers",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("binance api returned status: %d", resp.StatusCode)
	}

	var symbols []dto.SymbolInfo
	for _, t := range tickers {
		if !strings.HasSuffix(t.Symbol, r.cfg.Binance.QuoteAsset) {
			continue
		}
		quoteVolume, _ := strconv.ParseFloat(t.QuoteVolume, 64)
		if quoteVolume < r.cfg.Binance.MinQuoteVolume {
			continue
		}
		lastPrice, _ := strconv.ParseFloat(t.LastPrice, 64)
		changePct, _ := strconv.ParseFloat(t.PriceChangePercent, 64)

		symbols = append(symbols, dto.SymbolInfo{
			Symbol:             t.Symbol,
			LastPrice:          lastPrice,
			QuoteVolume:        quoteVolume,
			PriceChangePercent: changePct,
		})
	}

	r.cache.Set(cacheKey, symbols, candleCacheTTL)
	return symbols, nil
}

func parseKlineFloat(v interface{}) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected kline field type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}
