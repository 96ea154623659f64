// Package sqlite stores quotes in an embedded, CGO-free SQLite database.
// It backs the local single-user mode; the pgsql adapter backs server mode.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	"github.com/ktraore/devis_manager_app/internal/models"
	"github.com/ktraore/devis_manager_app/internal/utils/mapping"
)

// QuoteRepository stores quotes in SQLite through database/sql.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new repository for quote data.
func NewQuoteRepository(db *sql.DB) portsrepo.QuoteRepository {
	return &QuoteRepository{db: db}
}

// Ensure implementation matches interface
var _ portsrepo.QuoteRepository = (*QuoteRepository)(nil)

const quoteColumns = `quote_id, supplier_name, product_name, unit_price, weight_kg, quantity, currency_code, shipping_options, local_transport, created_at, last_updated_at`

// ListQuotes retrieves all quotes, newest first.
func (r *QuoteRepository) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var modelQuotes []models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote row: %w", err)
		}
		modelQuotes = append(modelQuotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	return mapping.ToDomainQuoteSlice(modelQuotes)
}

// FindQuoteByID retrieves one quote by its id.
func (r *QuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE quote_id = ?`, quoteID)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find quote by id %s: %w", quoteID, err)
	}

	domainQuote, err := mapping.ToDomainQuote(quote)
	if err != nil {
		return nil, err
	}
	return &domainQuote, nil
}

// SaveQuote inserts a new quote.
func (r *QuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	modelQuote, err := mapping.ToModelQuote(quote)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
func (r *QuoteRepository) ReplaceQuote(ctx context.Context, quote domain.Quote) error {
	modelQuote, err := mapping.ToModelQuote(quote)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE quotes SET
			supplier_name = ?,
			product_name = ?,
			unit_price = ?,
			weight_kg = ?,
			quantity = ?,
			currency_code = ?,
			shipping_options = ?,
			local_transport = ?,
			last_updated_at = ?
		WHERE quote_id = ?`,
		modelQuote.SupplierName,
		modelQuote.ProductName,
		modelQuote.UnitPrice,
		modelQuote.WeightKg,
		modelQuote.Quantity,
		modelQuote.CurrencyCode,
		modelQuote.ShippingOptions,
		modelQuote.LocalTransport,
		modelQuote.LastUpdatedAt,
		modelQuote.QuoteID,
	)
	if err != nil {
		return fmt.Errorf("failed to replace quote %s: %w", modelQuote.QuoteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read replace result for quote %s: %w", modelQuote.QuoteID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteQuote removes one quote.
func (r *QuoteRepository) DeleteQuote(ctx context.Context, quoteID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE quote_id = ?`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to delete quote %s: %w", quoteID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for quote %s: %w", quoteID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearQuotes removes every quote.
func (r *QuoteRepository) ClearQuotes(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quotes`); err != nil {
		return fmt.Errorf("failed to clear quotes: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (models.Quote, error) {
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
