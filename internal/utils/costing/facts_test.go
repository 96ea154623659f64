package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

func labels(sheet costing.FactSheet) []string {
	out := make([]string, 0, len(sheet.Facts))
	for _, f := range sheet.Facts {
		out = append(out, f.Label)
	}
	return out
}

func factByLabel(t *testing.T, sheet costing.FactSheet, label string) costing.Fact {
	t.Helper()
	for _, f := range sheet.Facts {
		if f.Label == label {
			return f
		}
	}
	t.Fatalf("fact %q not found", label)
	return costing.Fact{}
}

func TestBuildFacts_StableOrder(t *testing.T) {
	q := fullQuote()
	b := costing.Aggregate(q, domain.EUR, testRates())

	sheet := costing.BuildFacts(q, b)

	assert.Equal(t, q.QuoteID, sheet.QuoteID)
	assert.Equal(t, q.SupplierName, sheet.SupplierName)
	assert.Equal(t, domain.EUR, sheet.Currency)

	want := []string{
		"Quantité",
		"Poids total (kg)",
		"Coût de base",
		"Direct par avion : Prix/kg × poids total",
		"Direct par avion : Forfait expédition",
		"Direct par avion : Frais de livraison",
		"Direct par avion : Coût logistique",
		"Direct par avion : Base + logistique",
		"Transitaire Standard : Forfait expédition",
		"Transitaire Standard : Frais de livraison",
		"Transitaire Standard : Coût logistique",
		"Transitaire Standard : Base + logistique",
		"Total transport local",
		"Direct par avion : Coût total (tout inclus)",
		"Direct par avion : Coût / pièce",
		"Transitaire Standard : Coût total (tout inclus)",
		"Transitaire Standard : Coût / pièce",
	}
	assert.Equal(t, want, labels(sheet))
}

func TestBuildFacts_Values(t *testing.T) {
	q := fullQuote()
	b := costing.Aggregate(q, domain.EUR, testRates())

	sheet := costing.BuildFacts(q, b)

	quantity := factByLabel(t, sheet, "Quantité")
	assert.True(t, decimal.NewFromInt(1000).Equal(quantity.Value))
	assert.Empty(t, quantity.Currency, "quantity is dimensionless")

	weight := factByLabel(t, sheet, "Poids total (kg)")
	assert.True(t, decimal.NewFromInt(30).Equal(weight.Value))
	assert.Empty(t, weight.Currency)

	base := factByLabel(t, sheet, "Coût de base")
	assert.True(t, decimal.NewFromInt(5000).Equal(base.Value))
	assert.Equal(t, domain.EUR, base.Currency)

	total := factByLabel(t, sheet, "Direct par avion : Coût total (tout inclus)")
	assert.True(t, decimal.NewFromInt(5350).Equal(total.Value))

	perUnit := factByLabel(t, sheet, "Direct par avion : Coût / pièce")
	assert.True(t, decimal.NewFromFloat(5.35).Equal(perUnit.Value))
}

func TestBuildFacts_NoPerKgLineWithoutPerKgPrice(t *testing.T) {
	q := fullQuote()
	b := costing.Aggregate(q, domain.EUR, testRates())

	sheet := costing.BuildFacts(q, b)

	assert.NotContains(t, labels(sheet), "Transitaire Standard : Prix/kg × poids total")
}

func TestBuildFacts_ZeroQuantityOmitsPerUnitLines(t *testing.T) {
	q := fullQuote()
	q.Quantity = 0
	b := costing.Aggregate(q, domain.EUR, testRates())

	sheet := costing.BuildFacts(q, b)

	for _, label := range labels(sheet) {
		assert.NotContains(t, label, "Coût / pièce")
	}
}

func TestBuildFacts_FallbackLinesWithoutOptions(t *testing.T) {
	q := fullQuote()
	q.ShippingOptions = nil
	b := costing.Aggregate(q, domain.EUR, testRates())

	sheet := costing.BuildFacts(q, b)

	fallback := factByLabel(t, sheet, "Coût total (base + local)")
	assert.True(t, decimal.NewFromInt(5100).Equal(fallback.Value))

	perUnit := factByLabel(t, sheet, "Coût / pièce")
	assert.True(t, decimal.NewFromFloat(5.1).Equal(perUnit.Value))

	require.NotContains(t, labels(sheet), "Direct par avion : Coût total (tout inclus)")
}
