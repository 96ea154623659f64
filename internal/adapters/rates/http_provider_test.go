package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktraore/devis_manager_app/internal/adapters/rates"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
)

func TestFetchRates_ParsesFrankfurterResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"EUR","date":"2024-03-01","rates":{"USD":1.0837,"GBP":0.8561}}`))
	}))
	defer server.Close()

	provider := rates.NewHTTPProvider(server.URL, time.Second)
	table, err := provider.FetchRates(context.Background())

	require.NoError(t, err)
	require.NotNil(t, table)
	assert.True(t, decimal.NewFromFloat(1.0837).Equal(table[domain.USD]))

	// Currencies outside the supported set are dropped.
	_, hasGBP := table[domain.Currency("GBP")]
	assert.False(t, hasGBP)
}

func TestFetchRates_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := rates.NewHTTPProvider(server.URL, time.Second)
	table, err := provider.FetchRates(context.Background())

	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchRates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := rates.NewHTTPProvider(server.URL, time.Second)
	_, err := provider.FetchRates(context.Background())

	require.Error(t, err)
}

func TestFetchRates_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := rates.NewHTTPProvider(server.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.FetchRates(ctx)
	require.Error(t, err)
}
