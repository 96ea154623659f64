package costing

import (
	"fmt"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Fact is one labeled number from a cost breakdown. Currency is empty for
// non-monetary values such as weights and counts.
type Fact struct {
	Label    string          `json:"label"`
	Value    decimal.Decimal `json:"value"`
	Currency domain.Currency `json:"currency,omitempty"`
}

// FactSheet is the flat, stably-ordered reduction of a quote plus its
// breakdown, suitable both for human display and as structured input to
// the external summarizer.
type FactSheet struct {
	QuoteID      string          `json:"quoteID"`
	SupplierName string          `json:"supplierName"`
	ProductName  string          `json:"productName"`
	Currency     domain.Currency `json:"currency"`
	Facts        []Fact          `json:"facts"`
}

// BuildFacts reduces a quote and its aggregated breakdown into a fact
// sheet. It performs no arithmetic of its own beyond selecting and
// labeling aggregator output. Per shipping option, the variable-weight
// line appears only when a per-kg price was actually supplied, and
// per-unit lines are omitted when the quantity is zero (not applicable).
func BuildFacts(q domain.Quote, breakdown domain.CostBreakdown) FactSheet {
	cur := breakdown.Currency
	sheet := FactSheet{
		QuoteID:      q.QuoteID,
		SupplierName: q.SupplierName,
		ProductName:  q.ProductName,
		Currency:     cur,
	}

	add := func(label string, value decimal.Decimal, currency domain.Currency) {
		sheet.Facts = append(sheet.Facts, Fact{Label: label, Value: value, Currency: currency})
	}

	add("Quantité", decimal.NewFromInt(q.Quantity), "")
	add("Poids total (kg)", breakdown.TotalWeightKg, "")
	add("Coût de base", breakdown.BaseCost, cur)

	for _, opt := range breakdown.Options {
		if opt.PricePerKg.IsPositive() {
			add(fmt.Sprintf("%s : Prix/kg × poids total", opt.Label), opt.VariableWeightCost, cur)
		}
		add(fmt.Sprintf("%s : Forfait expédition", opt.Label), opt.ShippingCost, cur)
		add(fmt.Sprintf("%s : Frais de livraison", opt.Label), opt.DeliveryCost, cur)
		add(fmt.Sprintf("%s : Coût logistique", opt.Label), opt.LogisticsCost, cur)
		add(fmt.Sprintf("%s : Base + logistique", opt.Label), opt.SubtotalBeforeLocal, cur)
	}

	add("Total transport local", breakdown.LocalTransportTotal, cur)

	if len(breakdown.Options) > 0 {
		for _, opt := range breakdown.Options {
			add(fmt.Sprintf("%s : Coût total (tout inclus)", opt.Label), opt.FinalTotal, cur)
			if opt.PerUnitCost != nil {
				add(fmt.Sprintf("%s : Coût / pièce", opt.Label), *opt.PerUnitCost, cur)
			}
		}
	} else {
		add("Coût total (base + local)", breakdown.FallbackTotal, cur)
		if breakdown.FallbackPerUnit != nil {
			add("Coût / pièce", *breakdown.FallbackPerUnit, cur)
		}
	}

	return sheet
}
