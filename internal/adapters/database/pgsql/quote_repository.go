package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	"github.com/ktraore/devis_manager_app/internal/models"
	"github.com/ktraore/devis_manager_app/internal/utils/mapping"
)

// PgxQuoteRepository stores quotes in PostgreSQL.
type PgxQuoteRepository struct {
	BaseRepository
}

// NewQuoteRepository creates a new repository for quote data.
func NewQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepository {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.QuoteRepository = (*PgxQuoteRepository)(nil)

const quoteColumns = `quote_id, supplier_name, product_name, unit_price, weight_kg, quantity, currency_code, shipping_options, local_transport, created_at, last_updated_at`

// ListQuotes retrieves all quotes, newest first.
func (r *PgxQuoteRepository) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	modelQuotes, err := pgx.CollectRows(rows, scanQuoteRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Quote{}, nil
		}
		return nil, fmt.Errorf("failed to scan quotes: %w", err)
	}

	return mapping.ToDomainQuoteSlice(modelQuotes)
}

// FindQuoteByID retrieves one quote by its id.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE quote_id = $1;`

	rows, err := r.Pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote %s: %w", quoteID, err)
	}
	defer rows.Close()

	modelQuote, err := pgx.CollectOneRow(rows, scanQuoteRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find quote by id %s: %w", quoteID, err)
	}

	domainQuote, err := mapping.ToDomainQuote(modelQuote)
	if err != nil {
		return nil, err
	}
	return &domainQuote, nil
}

// SaveQuote inserts a new quote.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	modelQuote, err := mapping.ToModelQuote(quote)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelQuote.QuoteID,
		modelQuote.SupplierName,
		modelQuote.ProductName,
		modelQuote.UnitPrice,
		modelQuote.WeightKg,
		modelQuote.Quantity,
		modelQuote.CurrencyCode,
		modelQuote.ShippingOptions,
		modelQuote.LocalTransport,
		modelQuote.CreatedAt,
		modelQuote.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quote %s: %w", modelQuote.QuoteID, err)
	}
	return nil
}

// ReplaceQuote updates an existing quote as a full-record replace.
func (r *PgxQuoteRepository) ReplaceQuote(ctx context.Context, quote domain.Quote) error {
	modelQuote, err := mapping.ToModelQuote(quote)
	if err != nil {
		return err
	}

	query := `
		UPDATE quotes SET
			supplier_name = $2,
			product_name = $3,
			unit_price = $4,
			weight_kg = $5,
			quantity = $6,
			currency_code = $7,
			shipping_options = $8,
			local_transport = $9,
			last_updated_at = $10
		WHERE quote_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelQuote.QuoteID,
		modelQuote.SupplierName,
		modelQuote.ProductName,
		modelQuote.UnitPrice,
		modelQuote.WeightKg,
		modelQuote.Quantity,
		modelQuote.CurrencyCode,
		modelQuote.ShippingOptions,
		modelQuote.LocalTransport,
		modelQuote.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace quote %s: %w", modelQuote.QuoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteQuote removes one quote.
func (r *PgxQuoteRepository) DeleteQuote(ctx context.Context, quoteID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM quotes WHERE quote_id = $1;`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to delete quote %s: %w", quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearQuotes removes every quote.
func (r *PgxQuoteRepository) ClearQuotes(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM quotes;`); err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}
	return nil
}

func scanQuoteRow(row pgx.CollectableRow) (models.Quote, error) {
	var quote models.Quote
	err := row.Scan(
		&quote.QuoteID,
		&quote.SupplierName,
		&quote.ProductName,
		&quote.UnitPrice,
		&quote.WeightKg,
		&quote.Quantity,
		&quote.CurrencyCode,
		&quote.ShippingOptions,
		&quote.LocalTransport,
		&quote.CreatedAt,
		&quote.LastUpdatedAt,
	)
	return quote, err
}
