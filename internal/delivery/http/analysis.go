package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crypto-scanner/internal/dto"
	"crypto-scanner/pkg/utils"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	analysisGroup := base.Group("/analysis")
	analysisGroup.GET("/:symbol", h.getAnalysis)
	analysisGroup.GET("/:symbol/levels", h.getLevels)
}

func (h *HttpAPIHandler) getAnalysis(c echo.Context) error {
	ctx := c.Request().Context()

	candles, err := h.fetchCandles(c)
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to fetch market data"})
	}

	snapshot, err := h.service.AnalysisService.Snapshot(ctx, candles)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, snapshot)
}

func (h *HttpAPIHandler) getLevels(c echo.Context) error {
	ctx := c.Request().Context()

	candles, err := h.fetchCandles(c)
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to fetch market data"})
	}

	levels, err := h.service.AnalysisService.Levels(ctx, candles)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, levels)
}

func (h *HttpAPIHandler) fetchCandles(c echo.Context) ([]dto.Candle, error) {
	interval := c.QueryParam("interval")
	if interval == "" {
		interval = dto.Interval1Day
	}
	if !utils.ContainsString(dto.SupportedIntervals, interval) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unsupported interval: "+interval)
	}
	return h.repo.MarketRepo.GetCandles(c.Request().Context(), c.Param("symbol"), interval, 250)
}
