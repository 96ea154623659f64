package dto

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// FactResponse is one labeled report line. Currency is empty for
// dimensionless facts such as the quantity or the total weight.
type FactResponse struct {
	Label    string          `json:"label"`
	Value    string          `json:"value"`
	Currency domain.Currency `json:"currency,omitempty"`
}

// FactSheetResponse is the report view of a single quote.
type FactSheetResponse struct {
	QuoteID      string          `json:"quoteID"`
	SupplierName string          `json:"supplierName"`
	ProductName  string          `json:"productName"`
	Currency     domain.Currency `json:"currency"`
	Facts        []FactResponse  `json:"facts"`
}

// ToFactSheetResponse converts a fact sheet to its response DTO, rounding
// monetary values to their currency's display precision.
func ToFactSheetResponse(f *costing.FactSheet) FactSheetResponse {
	resp := FactSheetResponse{
		QuoteID:      f.QuoteID,
		SupplierName: f.SupplierName,
		ProductName:  f.ProductName,
		Currency:     f.Currency,
		Facts:        make([]FactResponse, 0, len(f.Facts)),
	}
	for _, fact := range f.Facts {
		value := fact.Value.String()
		if fact.Currency != "" {
			value = utils.FormatWithCurrencyPrecision(fact.Value, fact.Currency)
		}
		resp.Facts = append(resp.Facts, FactResponse{
			Label:    fact.Label,
			Value:    value,
			Currency: fact.Currency,
		})
	}
	return resp
}
