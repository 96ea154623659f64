package domain

import "github.com/shopspring/decimal"

// OptionBreakdown is the cost rollup of one provided shipping option,
// expressed in the breakdown's display currency.
type OptionBreakdown struct {
	Method             ShippingMethod   `json:"method"`
	Label              string           `json:"label"`
	PricePerKg         decimal.Decimal  `json:"pricePerKg"`
	VariableWeightCost decimal.Decimal  `json:"variableWeightCost"`
	ShippingCost       decimal.Decimal  `json:"shippingCost"`
	DeliveryCost       decimal.Decimal  `json:"deliveryCost"`
	LogisticsCost      decimal.Decimal  `json:"logisticsCost"`
	SubtotalBeforeLocal decimal.Decimal `json:"subtotalBeforeLocal"`
	FinalTotal         decimal.Decimal  `json:"finalTotal"`
	// PerUnitCost is nil when the quote's quantity is zero: the per-unit
	// cost is then not applicable rather than infinite.
	PerUnitCost *decimal.Decimal `json:"perUnitCost,omitempty"`
}

// CostBreakdown is the full landed-cost rollup of one quote in a single
// display currency. Internal arithmetic is full precision; rounding is
// deferred to display formatting.
type CostBreakdown struct {
	Currency            Currency          `json:"currency"`
	BaseCost            decimal.Decimal   `json:"baseCost"`
	TotalWeightKg       decimal.Decimal   `json:"totalWeightKg"`
	Options             []OptionBreakdown `json:"options"`
	LocalTransportTotal decimal.Decimal   `json:"localTransportTotal"`
	// FallbackTotal is base cost plus local transport; it is the final
	// total when the quote carries no provided shipping option.
	FallbackTotal   decimal.Decimal  `json:"fallbackTotal"`
	FallbackPerUnit *decimal.Decimal `json:"fallbackPerUnit,omitempty"`
}
