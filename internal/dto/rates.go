package dto

import (
	"time"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
)

// RatesResponse reports the currently loaded exchange rate table.
// Available false means the startup fetch failed and conversion is
// disabled; the UI shows a persistent, dismissable notice.
type RatesResponse struct {
	Available bool              `json:"available"`
	Pivot     domain.Currency   `json:"pivot"`
	Rates     map[string]string `json:"rates,omitempty"`
	FetchedAt *time.Time        `json:"fetchedAt,omitempty"`
}

// ToRatesResponse converts a rate table to its response DTO.
func ToRatesResponse(rates domain.RateTable, fetchedAt time.Time, available bool) RatesResponse {
	resp := RatesResponse{
		Available: available,
		Pivot:     domain.PivotCurrency,
	}
	if !available {
		return resp
	}
	resp.Rates = make(map[string]string, len(rates))
	for currency, rate := range rates {
		resp.Rates[string(currency)] = rate.String()
	}
	resp.FetchedAt = &fetchedAt
	return resp
}
