// Package rates fetches the pivot-relative exchange rate table from a
// frankfurter-style HTTP endpoint.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.frankfurter.app"
	defaultTimeout = 10 * time.Second
)

// HTTPProvider fetches EUR-pivot rates over HTTP. The response is the
// frankfurter shape: {"base":"EUR","rates":{"USD":1.08,...}}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// Ensure implementation matches interface
var _ portsproviders.RateProvider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a rate provider against baseURL; an empty
// baseURL selects the default public endpoint.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates retrieves the latest pivot-relative table. Unsupported
// currencies in the response are ignored; the caller injects the XOF peg
// and the pivot's own rate.
func (p *HTTPProvider) FetchRates(ctx context.Context) (domain.RateTable, error) {
	url := fmt.Sprintf("%s/latest?from=%s", p.baseURL, domain.PivotCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rate source returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	table := make(domain.RateTable, len(parsed.Rates))
	for code, rate := range parsed.Rates {
		currency := domain.Currency(code)
		if currency.Valid() {
			table[currency] = rate
		}
	}
	return table, nil
}
