// Package providers declares the ports for the two external collaborators
// the core may suspend on: exchange-rate retrieval and the natural-language
// summarization call. Both are single in-flight requests; callers disable
// the triggering action while a request is outstanding rather than the
// implementation enforcing mutual exclusion.
package providers

import (
	"context"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
)

// RateProvider fetches the pivot-relative exchange rate table from a
// remote source. The zero-decimal currency's rate is not guaranteed
// present in the response; the rate service injects its fixed peg.
type RateProvider interface {
	FetchRates(ctx context.Context) (domain.RateTable, error)
}

// Summarizer turns a serialized fact-sheet payload plus a free-text
// instruction into a markdown analysis. Implementations may fail or be
// unreachable; callers degrade to a fixed fallback message.
type Summarizer interface {
	Summarize(ctx context.Context, payload string, instruction string) (string, error)
}
