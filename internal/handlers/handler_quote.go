package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/middleware"
)

// quoteHandler handles HTTP requests related to quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// RegisterQuoteRoutes registers routes related to quotes.
func RegisterQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.GET("", h.listQuotes)
		quotes.POST("", h.createQuote)
		quotes.DELETE("", h.clearQuotes)
		quotes.GET("/:id", h.getQuoteByID)
		quotes.PUT("/:id", h.updateQuote)
		quotes.DELETE("/:id", h.deleteQuote)
		quotes.GET("/:id/breakdown", h.getBreakdown)
		quotes.GET("/:id/editable", h.getEditable)
		quotes.GET("/:id/report", h.getReportFacts)
	}
}

// displayCurrencyFromQuery reads the optional ?display= query parameter.
// An empty value means "use the quote's native currency".
func displayCurrencyFromQuery(c *gin.Context) (domain.Currency, bool) {
	raw := c.Query("display")
	if raw == "" {
		return "", true
	}
	display := domain.Currency(raw)
	if !display.Valid() {
		return "", false
	}
	return display, true
}

// listQuotes godoc
// @Summary List all quotes
// @Description Retrieves every stored supplier quote, most recent first
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	quotes, err := h.quoteService.ListQuotes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list quotes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list quotes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListQuoteResponse(quotes))
}

// createQuote godoc
// @Summary Create a new quote
// @Description Stores a new supplier quote; the chosen currency becomes the quote's immutable native currency
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.quoteService.CreateQuote(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create quote in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create quote"})
		}
		return
	}

	logger.Info("Quote created successfully", slog.String("quote_id", created.QuoteID))
	c.JSON(http.StatusCreated, dto.ToQuoteResponse(created))
}

// getQuoteByID godoc
// @Summary Get a quote by ID
// @Description Retrieves a single quote with its stored, native-currency amounts
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *quoteHandler) getQuoteByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		} else {
			logger.Error("Failed to get quote from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// updateQuote godoc
// @Summary Update a quote
// @Description Full-record replace; submitted amounts are converted from the form currency back to the quote's native currency
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param quote body dto.UpdateQuoteRequest true "Updated quote details"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 503 {object} ErrorResponse "Exchange rates unavailable"
// @Security BearerAuth
// @Router /quotes/{id} [put]
func (h *quoteHandler) updateQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.quoteService.UpdateQuote(c.Request.Context(), quoteID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Quote not found for update", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrRatesUnavailable):
			logger.Warn("Update rejected: rates unavailable for cross-currency form", slog.String("quote_id", quoteID))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Exchange rates unavailable; submit amounts in the quote's native currency"})
		default:
			logger.Error("Failed to update quote in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update quote"})
		}
		return
	}

	logger.Info("Quote updated successfully", slog.String("quote_id", quoteID))
	c.JSON(http.StatusOK, dto.ToQuoteResponse(updated))
}

// deleteQuote godoc
// @Summary Delete a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *quoteHandler) deleteQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	if err := h.quoteService.DeleteQuote(c.Request.Context(), quoteID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found for deletion", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		} else {
			logger.Error("Failed to delete quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete quote"})
		}
		return
	}

	logger.Info("Quote deleted", slog.String("quote_id", quoteID))
	c.Status(http.StatusNoContent)
}

// clearQuotes godoc
// @Summary Delete all quotes
// @Description Removes every stored quote. Irreversible.
// @Tags quotes
// @Produce json
// @Success 204 "No Content"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes [delete]
func (h *quoteHandler) clearQuotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.quoteService.ClearQuotes(c.Request.Context()); err != nil {
		logger.Error("Failed to clear quotes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear quotes"})
		return
	}

	logger.Info("All quotes cleared")
	c.Status(http.StatusNoContent)
}

// getBreakdown godoc
// @Summary Get the cost breakdown of a quote
// @Description Aggregates the quote's costs per shipping option in the requested display currency
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Param display query string false "Display currency (EUR, USD or XOF); defaults to the quote's native currency"
// @Success 200 {object} dto.BreakdownResponse
// @Failure 400 {object} ErrorResponse "Unknown display currency"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes/{id}/breakdown [get]
func (h *quoteHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	display, ok := displayCurrencyFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown display currency"})
		return
	}

	breakdown, err := h.quoteService.GetBreakdown(c.Request.Context(), quoteID, display)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found for breakdown", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		} else {
			logger.Error("Failed to compute breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute breakdown"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBreakdownResponse(breakdown))
}

// getEditable godoc
// @Summary Get the editable projection of a quote
// @Description Projects the quote's native amounts into the display currency for form editing
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Param display query string false "Form currency; defaults to the quote's native currency"
// @Success 200 {object} dto.EditableQuoteResponse
// @Failure 400 {object} ErrorResponse "Unknown display currency"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 503 {object} ErrorResponse "Exchange rates unavailable"
// @Security BearerAuth
// @Router /quotes/{id}/editable [get]
func (h *quoteHandler) getEditable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	display, ok := displayCurrencyFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown display currency"})
		return
	}

	editable, err := h.quoteService.GetEditable(c.Request.Context(), quoteID, display)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Quote not found for editable view", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		case errors.Is(err, apperrors.ErrRatesUnavailable):
			logger.Warn("Editable view rejected: rates unavailable", slog.String("quote_id", quoteID))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Exchange rates unavailable; edit in the quote's native currency"})
		default:
			logger.Error("Failed to build editable view", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build editable view"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEditableQuoteResponse(editable))
}

// getReportFacts godoc
// @Summary Get the report fact sheet of a quote
// @Description Reduces the quote and its breakdown to labeled, stably-ordered report lines
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Param display query string false "Display currency; defaults to the quote's native currency"
// @Success 200 {object} dto.FactSheetResponse
// @Failure 400 {object} ErrorResponse "Unknown display currency"
// @Failure 404 {object} ErrorResponse "Quote not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /quotes/{id}/report [get]
func (h *quoteHandler) getReportFacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID := c.Param("id")

	display, ok := displayCurrencyFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown display currency"})
		return
	}

	facts, err := h.quoteService.GetReportFacts(c.Request.Context(), quoteID, display)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Quote not found for report", slog.String("quote_id", quoteID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Quote not found"})
		} else {
			logger.Error("Failed to build report facts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report facts"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFactSheetResponse(facts))
}
