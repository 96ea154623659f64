package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShippingMethod is one of the closed set of international shipping
// method tags a quote may carry at most one ShippingOption for.
type ShippingMethod string

const (
	DirectAir         ShippingMethod = "direct-air"
	ForwarderStandard ShippingMethod = "forwarder-standard"
	ForwarderExpress  ShippingMethod = "forwarder-express"
)

// ShippingMethods returns the methods in their fixed display order.
func ShippingMethods() []ShippingMethod {
	return []ShippingMethod{DirectAir, ForwarderStandard, ForwarderExpress}
}

// Valid reports whether m is one of the supported shipping method tags.
func (m ShippingMethod) Valid() bool {
	switch m {
	case DirectAir, ForwarderStandard, ForwarderExpress:
		return true
	}
	return false
}

// Label returns the human-readable French label for the method.
func (m ShippingMethod) Label() string {
	switch m {
	case DirectAir:
		return "Direct par avion"
	case ForwarderStandard:
		return "Transitaire Standard"
	case ForwarderExpress:
		return "Transitaire Express"
	}
	return string(m)
}

// ShippingOption is the cost structure of one international shipping
// method, expressed in the quote's native currency. All fields default
// to zero; a nil PricePerKg means the option is not billed by weight.
// Flat fees and a per-kg price are additive when both are present.
type ShippingOption struct {
	ShippingCost decimal.Decimal  `json:"shippingCost"`
	DeliveryCost decimal.Decimal  `json:"deliveryCost"`
	PricePerKg   *decimal.Decimal `json:"pricePerKg,omitempty"`
}

// IsProvided reports whether the option carries any meaningful value.
// An option with all of flat shipping fee, flat delivery fee, and per-kg
// price zero or absent is treated as not provided and is excluded from
// aggregation, editing, and reporting. This is the single implementation
// of that test; consumers must not re-derive the zero-check.
func (o ShippingOption) IsProvided() bool {
	if o.ShippingCost.IsPositive() || o.DeliveryCost.IsPositive() {
		return true
	}
	return o.PricePerKg != nil && o.PricePerKg.IsPositive()
}

// LocalTransportLeg is a user-named local-transport cost line item in the
// quote's native currency. Legs are ordered and not associated with any
// particular shipping option; their sum applies uniformly to every option.
type LocalTransportLeg struct {
	LegID string          `json:"legID"`
	Name  string          `json:"name"`
	Cost  decimal.Decimal `json:"cost"`
}

// Quote is a supplier price quote. Every monetary field is expressed in
// Currency, which is fixed at creation and never changed by editing.
type Quote struct {
	QuoteID         string                            `json:"quoteID"`
	SupplierName    string                            `json:"supplierName"`
	ProductName     string                            `json:"productName"`
	UnitPrice       decimal.Decimal                   `json:"unitPrice"`
	WeightKg        decimal.Decimal                   `json:"weightKg"`
	Quantity        int64                             `json:"quantity"`
	Currency        Currency                          `json:"currency"`
	ShippingOptions map[ShippingMethod]ShippingOption `json:"shippingOptions"`
	LocalTransport  []LocalTransportLeg               `json:"localTransport"`
	AuditFields
}

// TotalWeightKg is the derived shipment weight. It is never stored.
func (q Quote) TotalWeightKg() decimal.Decimal {
	return q.WeightKg.Mul(decimal.NewFromInt(q.Quantity))
}

// ProvidedOptions returns the quote's meaningful shipping options keyed
// by method, in the fixed method order.
func (q Quote) ProvidedOptions() []ShippingMethod {
	var provided []ShippingMethod
	for _, m := range ShippingMethods() {
		if opt, ok := q.ShippingOptions[m]; ok && opt.IsProvided() {
			provided = append(provided, m)
		}
	}
	return provided
}

// Validate checks the quote's structural invariants: supported currency,
// supported method tags, and non-negative numeric fields.
func (q Quote) Validate() error {
	if !q.Currency.Valid() {
		return fmt.Errorf("unsupported currency %q", q.Currency)
	}
	if q.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price must not be negative")
	}
	if q.WeightKg.IsNegative() {
		return fmt.Errorf("unit weight must not be negative")
	}
	if q.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	for method, opt := range q.ShippingOptions {
		if !method.Valid() {
			return fmt.Errorf("unsupported shipping method %q", method)
		}
		if opt.ShippingCost.IsNegative() || opt.DeliveryCost.IsNegative() {
			return fmt.Errorf("shipping option %s: fees must not be negative", method)
		}
		if opt.PricePerKg != nil && opt.PricePerKg.IsNegative() {
			return fmt.Errorf("shipping option %s: price per kg must not be negative", method)
		}
	}
	for _, leg := range q.LocalTransport {
		if leg.Cost.IsNegative() {
			return fmt.Errorf("local transport leg %q: cost must not be negative", leg.Name)
		}
	}
	return nil
}
