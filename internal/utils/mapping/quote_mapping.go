package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/models"
)

// ToModelQuote converts a domain quote to its storage shape, serializing
// the variable-size parts as JSON.
func ToModelQuote(q domain.Quote) (models.Quote, error) {
	options, err := json.Marshal(q.ShippingOptions)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to marshal shipping options: %w", err)
	}
	legs, err := json.Marshal(q.LocalTransport)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to marshal local transport legs: %w", err)
	}
	return models.Quote{
		QuoteID:         q.QuoteID,
		SupplierName:    q.SupplierName,
		ProductName:     q.ProductName,
		UnitPrice:       q.UnitPrice,
		WeightKg:        q.WeightKg,
		Quantity:        q.Quantity,
		CurrencyCode:    string(q.Currency),
		ShippingOptions: options,
		LocalTransport:  legs,
		CreatedAt:       q.CreatedAt,
		LastUpdatedAt:   q.LastUpdatedAt,
	}, nil
}

// ToDomainQuote converts a storage row back to the domain entity.
func ToDomainQuote(m models.Quote) (domain.Quote, error) {
	q := domain.Quote{
		QuoteID:      m.QuoteID,
		SupplierName: m.SupplierName,
		ProductName:  m.ProductName,
		UnitPrice:    m.UnitPrice,
		WeightKg:     m.WeightKg,
		Quantity:     m.Quantity,
		Currency:     domain.Currency(m.CurrencyCode),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if len(m.ShippingOptions) > 0 {
		if err := json.Unmarshal(m.ShippingOptions, &q.ShippingOptions); err != nil {
			return domain.Quote{}, fmt.Errorf("failed to unmarshal shipping options for quote %s: %w", m.QuoteID, err)
		}
	}
	if len(m.LocalTransport) > 0 {
		if err := json.Unmarshal(m.LocalTransport, &q.LocalTransport); err != nil {
			return domain.Quote{}, fmt.Errorf("failed to unmarshal local transport legs for quote %s: %w", m.QuoteID, err)
		}
	}
	return q, nil
}

// ToDomainQuoteSlice converts storage rows to domain entities.
func ToDomainQuoteSlice(rows []models.Quote) ([]domain.Quote, error) {
	quotes := make([]domain.Quote, 0, len(rows))
	for _, row := range rows {
		q, err := ToDomainQuote(row)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
