package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/utils"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.Interval == "" {
		req.Interval = dto.Interval1Day
	}
	if !utils.ContainsString(dto.SupportedIntervals, req.Interval) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported interval: " + req.Interval})
	}
	candles, err := h.repo.MarketRepo.GetCandles(ctx, req.Symbol, req.Interval, 500)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to fetch market data"})
	}
	req.Candles = candles

	result, err := h.service.BacktestService.Run(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}
