package services

import (
	"context"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// QuoteSvcFacade exposes quote CRUD plus the derived cost views.
type QuoteSvcFacade interface {
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
	GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, quoteID string) error
	ClearQuotes(ctx context.Context) error

	GetBreakdown(ctx context.Context, quoteID string, display domain.Currency) (*domain.CostBreakdown, error)
	GetEditable(ctx context.Context, quoteID string, display domain.Currency) (*costing.EditableQuote, error)
	GetReportFacts(ctx context.Context, quoteID string, display domain.Currency) (*costing.FactSheet, error)
}
