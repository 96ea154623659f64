package repositories

import (
	"context"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
)

// QuoteRepository is the keyed record store for quotes. Each call acts on
// one record or the whole collection atomically from the core's point of
// view; no partial-write handling is expected of callers.
type QuoteRepository interface {
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)
	SaveQuote(ctx context.Context, quote domain.Quote) error
	ReplaceQuote(ctx context.Context, quote domain.Quote) error
	DeleteQuote(ctx context.Context, quoteID string) error
	ClearQuotes(ctx context.Context) error
}
