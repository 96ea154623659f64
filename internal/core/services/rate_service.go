package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// RateService fetches the pivot-relative exchange rate table once at
// startup and keeps it in memory. There is no automatic refresh; the user
// triggers a re-fetch explicitly. While no table is loaded the service is
// in degraded mode: conversion is skipped and cross-currency editing is
// disabled by the callers.
type RateService struct {
	provider portsproviders.RateProvider

	mu        sync.RWMutex
	rates     domain.RateTable
	fetchedAt time.Time
}

// NewRateService creates a new RateService. No fetch happens here; call
// RefreshRates once the process is up.
func NewRateService(provider portsproviders.RateProvider) *RateService {
	return &RateService{provider: provider}
}

// RefreshRates fetches a fresh table from the remote source, validates
// it, and installs it. The previous table (if any) stays in place when
// the fetch fails, so a transient outage never degrades an already
// working process.
func (s *RateService) RefreshRates(ctx context.Context) error {
	fetched, err := s.provider.FetchRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	table := sanitizeRates(fetched)
	if len(table) == 0 {
		return fmt.Errorf("exchange rate source returned no usable rates")
	}

	s.mu.Lock()
	s.rates = table
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Rates returns the current table and whether one is loaded.
func (s *RateService) Rates() (domain.RateTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rates == nil {
		return nil, false
	}
	return s.rates, true
}

// FetchedAt returns when the current table was installed; zero when none.
func (s *RateService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// sanitizeRates drops non-positive entries, forces the pivot rate to 1,
// and injects the fixed XOF peg. The remote source does not reliably
// carry XOF and must never override the peg.
func sanitizeRates(fetched domain.RateTable) domain.RateTable {
	table := make(domain.RateTable, len(fetched)+2)
	for currency, rate := range fetched {
		if rate.IsPositive() {
			table[currency] = rate
		}
	}
	table[domain.PivotCurrency] = decimal.NewFromInt(1)
	table[domain.XOF] = domain.XOFPerEUR
	return table
}
