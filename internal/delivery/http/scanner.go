package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crypto-scanner/internal/dto"
)

func (h *HttpAPIHandler) SetupScanner(base *echo.Group) {
	scannerGroup := base.Group("/scanner")
	scannerGroup.GET("", h.runScan)
}

func (h *HttpAPIHandler) runScan(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.ScanRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query parameters"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	opportunities, err := h.service.ScannerService.Scan(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run scan"})
	}

	return c.JSON(http.StatusOK, opportunities)
}
