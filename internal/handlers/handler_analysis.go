package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/middleware"
	"github.com/ktraore/devis_manager_app/internal/platform/config"
)

// analysisHandler handles HTTP requests for the AI quote analysis.
type analysisHandler struct {
	analysisService portssvc.AnalysisSvcFacade
}

func newAnalysisHandler(as portssvc.AnalysisSvcFacade) *analysisHandler {
	return &analysisHandler{
		analysisService: as,
	}
}

// registerAnalysisRoutes registers the analysis route. The endpoint calls
// an external model, so it gets its own rate limit.
func registerAnalysisRoutes(rg *gin.RouterGroup, cfg *config.Config, analysisService portssvc.AnalysisSvcFacade) {
	h := newAnalysisHandler(analysisService)

	rate, err := limiter.NewRateFromFormatted(cfg.AnalysisRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	rg.POST("/analysis", middleware.RateLimit(ipLimiter), h.analyzeQuotes)
}

// analyzeQuotes godoc
// @Summary Analyze all stored quotes
// @Description Reduces every quote to a fact sheet in the requested currency and asks the external model for a comparison; degrades to a fixed message when the model is unreachable
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeQuotesRequest true "Analysis parameters"
// @Success 200 {object} dto.AnalysisResult
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analysis [post]
func (h *analysisHandler) analyzeQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AnalyzeQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AnalyzeQuotes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.analysisService.AnalyzeQuotes(c.Request.Context(), req.Currency, req.Instruction)
	if err != nil {
		logger.Error("Failed to analyze quotes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to analyze quotes"})
		return
	}

	if result.Degraded {
		logger.Warn("Analysis degraded to fallback message")
	}
	c.JSON(http.StatusOK, result)
}
