package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the storage shape of a quote row. The variable-size parts
// (shipping options, local transport legs) are stored as JSON documents;
// the record store is keyed, not relational, from the core's standpoint.
type Quote struct {
	QuoteID         string          `json:"quoteID"`
	SupplierName    string          `json:"supplierName"`
	ProductName     string          `json:"productName"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	WeightKg        decimal.Decimal `json:"weightKg"`
	Quantity        int64           `json:"quantity"`
	CurrencyCode    string          `json:"currencyCode"`
	ShippingOptions []byte          `json:"shippingOptions"` // JSON object keyed by method tag
	LocalTransport  []byte          `json:"localTransport"`  // JSON array, ordered
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}
