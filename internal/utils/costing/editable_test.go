package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

func TestToEditable_NativeCurrencyIsIdentity(t *testing.T) {
	q := fullQuote()

	fields, err := costing.ToEditable(q, domain.EUR, testRates())

	require.NoError(t, err)
	assert.Equal(t, domain.EUR, fields.Currency)
	assert.Equal(t, domain.EUR, fields.NativeCurrency)
	assert.True(t, q.UnitPrice.Equal(fields.UnitPrice))
	require.Len(t, fields.ShippingOptions, 2)
	air := fields.ShippingOptions[domain.DirectAir]
	assert.True(t, decimal.NewFromInt(60).Equal(air.ShippingCost))
	require.NotNil(t, air.PricePerKg)
	assert.True(t, decimal.NewFromInt(5).Equal(*air.PricePerKg))
	require.Len(t, fields.LocalTransport, 2)
	assert.Equal(t, "Douane", fields.LocalTransport[0].Name)
}

func TestToEditable_RoundsToDisplayPrecision(t *testing.T) {
	q := fullQuote()
	q.UnitPrice = decimal.NewFromFloat(5.333)

	fields, err := costing.ToEditable(q, domain.USD, testRates())

	require.NoError(t, err)
	// 5.333 × 1.10 = 5.8663, shown as 5.87 USD.
	assert.True(t, decimal.NewFromFloat(5.87).Equal(fields.UnitPrice), "unit price: %s", fields.UnitPrice)
}

func TestToEditable_XOFDisplayHasNoDecimals(t *testing.T) {
	q := fullQuote()

	fields, err := costing.ToEditable(q, domain.XOF, testRates())

	require.NoError(t, err)
	// 5 EUR × 655.957 = 3279.785, shown as 3280 XOF.
	assert.True(t, decimal.NewFromInt(3280).Equal(fields.UnitPrice), "unit price: %s", fields.UnitPrice)
}

func TestToEditable_NilRatesCrossCurrencyFails(t *testing.T) {
	q := fullQuote()

	_, err := costing.ToEditable(q, domain.USD, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRatesUnavailable)
}

func TestToEditable_NilRatesNativeCurrencySucceeds(t *testing.T) {
	q := fullQuote()

	fields, err := costing.ToEditable(q, domain.EUR, nil)

	require.NoError(t, err)
	assert.True(t, q.UnitPrice.Equal(fields.UnitPrice))
}

func TestFromEditable_NilRatesCrossCurrencyFails(t *testing.T) {
	fields := costing.EditableQuote{Currency: domain.USD}

	_, err := costing.FromEditable(fields, domain.EUR, domain.USD, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRatesUnavailable)
}

func TestFromEditable_RoundsToNativePrecision(t *testing.T) {
	fields := costing.EditableQuote{
		QuoteID:   "q-1",
		UnitPrice: decimal.NewFromFloat(11.11),
		Quantity:  10,
		Currency:  domain.USD,
	}

	q, err := costing.FromEditable(fields, domain.EUR, domain.USD, testRates())

	require.NoError(t, err)
	assert.Equal(t, domain.EUR, q.Currency)
	// 11.11 / 1.10 = 10.1 EUR exactly at two decimals.
	assert.True(t, decimal.NewFromFloat(10.1).Equal(q.UnitPrice), "unit price: %s", q.UnitPrice)
	assert.Equal(t, int32(-2), q.UnitPrice.Exponent())
}

func TestEditableRoundTrip_WithinNativeRoundingUnit(t *testing.T) {
	// A full projection into USD and back must land within one cent of
	// the stored EUR amounts.
	q := fullQuote()
	q.UnitPrice = decimal.NewFromFloat(5.37)
	rates := testRates()

	fields, err := costing.ToEditable(q, domain.USD, rates)
	require.NoError(t, err)

	back, err := costing.FromEditable(fields, q.Currency, domain.USD, rates)
	require.NoError(t, err)

	unit := q.Currency.RoundingUnit()
	assert.True(t, q.UnitPrice.Sub(back.UnitPrice).Abs().LessThanOrEqual(unit),
		"unit price drifted: %s vs %s", q.UnitPrice, back.UnitPrice)

	for _, method := range q.ProvidedOptions() {
		orig := q.ShippingOptions[method]
		got, ok := back.ShippingOptions[method]
		require.True(t, ok, "option %s lost in round trip", method)
		assert.True(t, orig.ShippingCost.Sub(got.ShippingCost).Abs().LessThanOrEqual(unit))
		assert.True(t, orig.DeliveryCost.Sub(got.DeliveryCost).Abs().LessThanOrEqual(unit))
	}

	require.Len(t, back.LocalTransport, len(q.LocalTransport))
	for i, leg := range q.LocalTransport {
		assert.True(t, leg.Cost.Sub(back.LocalTransport[i].Cost).Abs().LessThanOrEqual(unit))
		assert.Equal(t, leg.LegID, back.LocalTransport[i].LegID)
	}
}

func TestEditableRoundTrip_SameCurrencyIsExact(t *testing.T) {
	q := fullQuote()
	q.UnitPrice = decimal.NewFromFloat(5.37)

	fields, err := costing.ToEditable(q, domain.EUR, testRates())
	require.NoError(t, err)

	back, err := costing.FromEditable(fields, q.Currency, domain.EUR, testRates())
	require.NoError(t, err)

	assert.True(t, q.UnitPrice.Equal(back.UnitPrice))
}
