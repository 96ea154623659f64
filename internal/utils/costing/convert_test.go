package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

func testRates() domain.RateTable {
	return domain.RateTable{
		domain.EUR: decimal.NewFromInt(1),
		domain.USD: decimal.NewFromFloat(1.10),
		domain.XOF: domain.XOFPerEUR,
	}
}

func TestConvert_IdentityShortCircuit(t *testing.T) {
	amount := decimal.NewFromFloat(123.45)

	// A corrupt rate table must not perturb a same-currency conversion.
	corrupt := domain.RateTable{
		domain.USD: decimal.NewFromFloat(0.5),
	}

	got := costing.Convert(amount, domain.USD, domain.USD, corrupt)
	assert.True(t, amount.Equal(got), "expected %s, got %s", amount, got)

	got = costing.Convert(amount, domain.EUR, domain.EUR, nil)
	assert.True(t, amount.Equal(got))
}

func TestConvert_ThroughPivot(t *testing.T) {
	rates := testRates()

	tests := []struct {
		name   string
		amount decimal.Decimal
		from   domain.Currency
		to     domain.Currency
		want   decimal.Decimal
	}{
		{
			name:   "EUR to USD",
			amount: decimal.NewFromInt(100),
			from:   domain.EUR,
			to:     domain.USD,
			want:   decimal.NewFromInt(110),
		},
		{
			name:   "USD to EUR",
			amount: decimal.NewFromInt(110),
			from:   domain.USD,
			to:     domain.EUR,
			want:   decimal.NewFromInt(100),
		},
		{
			name:   "EUR to XOF uses the peg",
			amount: decimal.NewFromInt(10),
			from:   domain.EUR,
			to:     domain.XOF,
			want:   decimal.NewFromFloat(6559.57),
		},
		{
			name:   "zero amount stays zero",
			amount: decimal.Zero,
			from:   domain.USD,
			to:     domain.XOF,
			want:   decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costing.Convert(tt.amount, tt.from, tt.to, rates)
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestConvert_MissingRateFallsBackToOne(t *testing.T) {
	// A table without a USD entry treats USD as 1:1 with the pivot.
	rates := domain.RateTable{
		domain.EUR: decimal.NewFromInt(1),
	}
	amount := decimal.NewFromInt(50)

	got := costing.Convert(amount, domain.USD, domain.EUR, rates)
	assert.True(t, amount.Equal(got))
}

func TestConvert_NonPositiveRateFallsBackToOne(t *testing.T) {
	// Zero or negative rates would make division blow up or flip signs;
	// Rate() treats them as absent.
	rates := domain.RateTable{
		domain.EUR: decimal.NewFromInt(1),
		domain.USD: decimal.Zero,
	}
	amount := decimal.NewFromInt(75)

	got := costing.Convert(amount, domain.USD, domain.EUR, rates)
	assert.True(t, amount.Equal(got))
}

func TestConvert_RoundTripIsExactWithoutRounding(t *testing.T) {
	rates := testRates()
	amount := decimal.NewFromFloat(42.37)

	there := costing.Convert(amount, domain.EUR, domain.USD, rates)
	back := costing.Convert(there, domain.USD, domain.EUR, rates)

	assert.True(t, amount.Equal(back), "expected %s, got %s", amount, back)
}
