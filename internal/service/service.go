package service

import (
	"crypto-scanner/config"
	"crypto-scanner/internal/repository"
	"crypto-scanner/pkg/logger"
)

type Service struct {
	AnalysisService  AnalysisService
	ScannerService   ScannerService
	BacktestService  BacktestService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	analysisService := NewAnalysisService(cfg, log)
	scannerService := NewScannerService(cfg, log, analysisService, repo.MarketRepo)
	backtestService := NewBacktestService(cfg, log)
	schedulerService := NewSchedulerService(cfg, log, scannerService)

	return &Service{
		AnalysisService:  analysisService,
		ScannerService:   scannerService,
		BacktestService:  backtestService,
		SchedulerService: schedulerService,
	}
}
