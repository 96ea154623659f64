// Package costing is the pure cost-aggregation and currency-normalization
// engine: conversion, the multi-path landed-cost rollup, the bidirectional
// edit projection, and the report fact sheet. Every function is stateless
// and referentially transparent, which is what makes the engine safe to
// call repeatedly and speculatively during interactive editing.
package costing

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Convert converts amount from one currency to another using a
// pivot-relative rate table.
//
// The from == to identity is a required short-circuit, not an
// optimization: a currency-stable quote must never be perturbed by
// conversion noise, regardless of what the rate table contains.
// A missing rate entry falls back to 1 (see domain.RateTable.Rate);
// callers must not rely on that fallback for currencies lacking real
// rates. No rounding happens here.
func Convert(amount decimal.Decimal, from, to domain.Currency, rates domain.RateTable) decimal.Decimal {
	if from == to {
		return amount
	}
	inPivot := amount.Div(rates.Rate(from))
	return inPivot.Mul(rates.Rate(to))
}
