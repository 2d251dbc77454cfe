package service

import (
	"context"

	"github.com/robfig/cron/v3"

	"crypto-scanner/config"
	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/logger"
	"crypto-scanner/pkg/utils"
)

// SchedulerService runs the market scan on a cron schedule and logs the top
// opportunities. Delivery of alerts is out of scope here; consumers poll
// the HTTP API.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg     *config.Config
	log     *logger.Logger
	scanner ScannerService
	cron    *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, scanner ScannerService) SchedulerService {
	return &schedulerService{
		cfg:     cfg,
		log:     log,
		scanner: scanner,
		cron:    cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if !s.cfg.Scheduler.Enabled {
		s.log.Info("Scan scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.ScanCron, func() {
		// A panicking scan must not take down the cron runner.
		utils.GoSafe(func() {
			s.runScan(ctx)
		})
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scan scheduler started", logger.StringField("cron", s.cfg.Scheduler.ScanCron))
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scan scheduler stopped")
}

func (s *schedulerService) runScan(ctx context.Context) {
	opportunities, err := s.scanner.Scan(ctx, dto.ScanRequest{
		Signals: []dto.Signal{dto.SignalBuy, dto.SignalStrongBuy},
		Limit:   s.cfg.Scanner.DefaultLimit,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Scheduled scan failed", logger.ErrorField(err))
		return
	}

	for _, opp := range opportunities {
		s.log.InfoContext(ctx, "Scan opportunity",
			logger.StringField("symbol", opp.Symbol),
			logger.StringField("signal", string(opp.Snapshot.Signal)),
			logger.IntField("score", opp.Snapshot.SignalScore),
			logger.Float64Field("confidence", opp.Confidence),
			logger.Field("triggers", opp.Triggers))
	}
}
