package dto

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils"
)

// OptionBreakdownResponse is one shipping option's cost rollup, formatted
// to the display currency's canonical precision.
type OptionBreakdownResponse struct {
	Method              domain.ShippingMethod `json:"method"`
	Label               string                `json:"label"`
	PricePerKg          string                `json:"pricePerKg"`
	VariableWeightCost  string                `json:"variableWeightCost"`
	ShippingCost        string                `json:"shippingCost"`
	DeliveryCost        string                `json:"deliveryCost"`
	LogisticsCost       string                `json:"logisticsCost"`
	SubtotalBeforeLocal string                `json:"subtotalBeforeLocal"`
	FinalTotal          string                `json:"finalTotal"`
	// PerUnitCost is null when quantity is zero (not applicable).
	PerUnitCost *string `json:"perUnitCost"`
}

// BreakdownResponse is the full landed-cost breakdown of one quote in a
// single display currency.
type BreakdownResponse struct {
	Currency            domain.Currency           `json:"currency"`
	BaseCost            string                    `json:"baseCost"`
	TotalWeightKg       string                    `json:"totalWeightKg"`
	Options             []OptionBreakdownResponse `json:"options"`
	LocalTransportTotal string                    `json:"localTransportTotal"`
	FallbackTotal       string                    `json:"fallbackTotal"`
	FallbackPerUnit     *string                   `json:"fallbackPerUnit"`
}

// ToBreakdownResponse formats a domain breakdown for display. Rounding
// happens here and only here; the aggregator keeps full precision.
func ToBreakdownResponse(b *domain.CostBreakdown) BreakdownResponse {
	resp := BreakdownResponse{
		Currency:            b.Currency,
		BaseCost:            utils.FormatWithCurrencyPrecision(b.BaseCost, b.Currency),
		TotalWeightKg:       b.TotalWeightKg.String(),
		LocalTransportTotal: utils.FormatWithCurrencyPrecision(b.LocalTransportTotal, b.Currency),
		FallbackTotal:       utils.FormatWithCurrencyPrecision(b.FallbackTotal, b.Currency),
	}
	if b.FallbackPerUnit != nil {
		formatted := utils.FormatWithCurrencyPrecision(*b.FallbackPerUnit, b.Currency)
		resp.FallbackPerUnit = &formatted
	}
	for _, opt := range b.Options {
		optResp := OptionBreakdownResponse{
			Method:              opt.Method,
			Label:               opt.Label,
			PricePerKg:          utils.FormatWithCurrencyPrecision(opt.PricePerKg, b.Currency),
			VariableWeightCost:  utils.FormatWithCurrencyPrecision(opt.VariableWeightCost, b.Currency),
			ShippingCost:        utils.FormatWithCurrencyPrecision(opt.ShippingCost, b.Currency),
			DeliveryCost:        utils.FormatWithCurrencyPrecision(opt.DeliveryCost, b.Currency),
			LogisticsCost:       utils.FormatWithCurrencyPrecision(opt.LogisticsCost, b.Currency),
			SubtotalBeforeLocal: utils.FormatWithCurrencyPrecision(opt.SubtotalBeforeLocal, b.Currency),
			FinalTotal:          utils.FormatWithCurrencyPrecision(opt.FinalTotal, b.Currency),
		}
		if opt.PerUnitCost != nil {
			formatted := utils.FormatWithCurrencyPrecision(*opt.PerUnitCost, b.Currency)
			optResp.PerUnitCost = &formatted
		}
		resp.Options = append(resp.Options, optResp)
	}
	return resp
}
