package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getRates godoc
// @Summary Get the loaded exchange rate table
// @Description Returns the per-EUR rate table, or available=false when the startup fetch failed
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) getRates(c *gin.Context) {
	rates, available := h.rateService.Rates()
	c.JSON(http.StatusOK, dto.ToRatesResponse(rates, h.rateService.FetchedAt(), available))
}

// refreshRates godoc
// @Summary Re-fetch the exchange rate table
// @Description Fetches fresh rates from the external provider; the previous table is kept on failure
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Failure 502 {object} ErrorResponse "Rate provider unreachable"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateService.RefreshRates(c.Request.Context()); err != nil {
		logger.Warn("Rate refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to fetch exchange rates"})
		return
	}

	logger.Info("Exchange rates refreshed")
	rates, available := h.rateService.Rates()
	c.JSON(http.StatusOK, dto.ToRatesResponse(rates, h.rateService.FetchedAt(), available))
}
