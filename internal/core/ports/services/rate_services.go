package services

import (
	"context"
	"time"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
)

// RateSvcFacade holds the exchange rate table fetched at startup.
// Rates returns (nil, false) while no table is loaded; callers then skip
// conversion and disable cross-currency editing rather than erroring.
type RateSvcFacade interface {
	RefreshRates(ctx context.Context) error
	Rates() (domain.RateTable, bool)
	FetchedAt() time.Time
}
