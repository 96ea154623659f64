package costing

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Aggregate computes the full landed-cost breakdown of a quote in the
// requested display currency.
//
// When rates is nil, conversion is impossible and the display currency is
// forced to the quote's native currency; the breakdown then equals the
// native one. The stages run in a fixed order: base cost, total weight,
// per-option logistics, local-transport total, final totals. A shipping
// option may combine flat fees and a per-kg price; the components are
// additive, never either/or.
func Aggregate(q domain.Quote, display domain.Currency, rates domain.RateTable) domain.CostBreakdown {
	if rates == nil {
		display = q.Currency
	}

	convert := func(amount decimal.Decimal) decimal.Decimal {
		return Convert(amount, q.Currency, display, rates)
	}

	quantity := decimal.NewFromInt(q.Quantity)
	baseCost := convert(q.UnitPrice).Mul(quantity)
	totalWeight := q.TotalWeightKg()

	localTotal := decimal.Zero
	for _, leg := range q.LocalTransport {
		localTotal = localTotal.Add(convert(leg.Cost))
	}

	perUnit := func(total decimal.Decimal) *decimal.Decimal {
		if q.Quantity == 0 {
			return nil
		}
		v := total.Div(quantity)
		return &v
	}

	breakdown := domain.CostBreakdown{
		Currency:            display,
		BaseCost:            baseCost,
		TotalWeightKg:       totalWeight,
		LocalTransportTotal: localTotal,
		FallbackTotal:       baseCost.Add(localTotal),
	}
	breakdown.FallbackPerUnit = perUnit(breakdown.FallbackTotal)

	for _, method := range q.ProvidedOptions() {
		opt := q.ShippingOptions[method]

		shipping := convert(opt.ShippingCost)
		delivery := convert(opt.DeliveryCost)
		pricePerKg := decimal.Zero
		if opt.PricePerKg != nil {
			pricePerKg = convert(*opt.PricePerKg)
		}

		variable := decimal.Zero
		if pricePerKg.IsPositive() {
			variable = pricePerKg.Mul(totalWeight)
		}

		logistics := shipping.Add(variable).Add(delivery)
		subtotal := baseCost.Add(logistics)
		final := subtotal.Add(localTotal)

		breakdown.Options = append(breakdown.Options, domain.OptionBreakdown{
			Method:              method,
			Label:               method.Label(),
			PricePerKg:          pricePerKg,
			VariableWeightCost:  variable,
			ShippingCost:        shipping,
			DeliveryCost:        delivery,
			LogisticsCost:       logistics,
			SubtotalBeforeLocal: subtotal,
			FinalTotal:          final,
			PerUnitCost:         perUnit(final),
		})
	}

	return breakdown
}
