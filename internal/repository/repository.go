package repository

import (
	"context"

	"crypto-scanner/config"
	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/cache"
	"crypto-scanner/pkg/logger"
)

// MarketRepository supplies normalized candle series and the tradable
// symbol universe. Implementations own all rate limiting and caching; the
// analysis core never talks to an exchange directly.
type MarketRepository interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]dto.Candle, error)
	GetSymbols(ctx context.Context) ([]dto.SymbolInfo, error)
}

type Repository struct {
	MarketRepo MarketRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		MarketRepo: NewBinanceRepository(cfg, inmemoryCache, log),
	}
}
