package dto

import (
	"time"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ShippingOptionRequest carries the optional cost structure of one
// shipping method. Amounts are expressed in the request's form currency.
type ShippingOptionRequest struct {
	ShippingCost decimal.Decimal  `json:"shippingCost"`
	DeliveryCost decimal.Decimal  `json:"deliveryCost"`
	PricePerKg   *decimal.Decimal `json:"pricePerKg,omitempty"`
}

// LocalTransportLegRequest is one named local-transport line item.
// LegID is blank for legs added in the form; the service assigns one.
type LocalTransportLegRequest struct {
	LegID string          `json:"legID,omitempty"`
	Name  string          `json:"name" binding:"required"`
	Cost  decimal.Decimal `json:"cost"`
}

// CreateQuoteRequest defines the data needed to create a new quote.
// Amounts are in the freely chosen quote currency, which becomes the
// quote's immutable native currency.
type CreateQuoteRequest struct {
	SupplierName    string                                           `json:"supplierName" binding:"required"`
	ProductName     string                                           `json:"productName" binding:"required"`
	UnitPrice       decimal.Decimal                                  `json:"unitPrice"`
	WeightKg        decimal.Decimal                                  `json:"weightKg"`
	Quantity        int64                                            `json:"quantity" binding:"min=0"`
	Currency        domain.Currency                                  `json:"currency" binding:"required,currencycode"`
	ShippingOptions map[domain.ShippingMethod]ShippingOptionRequest  `json:"shippingOptions"`
	LocalTransport  []LocalTransportLegRequest                       `json:"localTransport"`
}

// UpdateQuoteRequest is a full-record replace. FormCurrency names the
// currency the submitted amounts are expressed in (the global display
// currency in edit mode); the service converts them back to the quote's
// native currency before persisting. The native currency itself cannot
// be edited.
type UpdateQuoteRequest struct {
	SupplierName    string                                           `json:"supplierName" binding:"required"`
	ProductName     string                                           `json:"productName" binding:"required"`
	UnitPrice       decimal.Decimal                                  `json:"unitPrice"`
	WeightKg        decimal.Decimal                                  `json:"weightKg"`
	Quantity        int64                                            `json:"quantity" binding:"min=0"`
	FormCurrency    domain.Currency                                  `json:"formCurrency" binding:"required,currencycode"`
	ShippingOptions map[domain.ShippingMethod]ShippingOptionRequest  `json:"shippingOptions"`
	LocalTransport  []LocalTransportLegRequest                       `json:"localTransport"`
}

// ShippingOptionResponse mirrors domain.ShippingOption.
type ShippingOptionResponse struct {
	ShippingCost decimal.Decimal  `json:"shippingCost"`
	DeliveryCost decimal.Decimal  `json:"deliveryCost"`
	PricePerKg   *decimal.Decimal `json:"pricePerKg,omitempty"`
}

// LocalTransportLegResponse mirrors domain.LocalTransportLeg.
type LocalTransportLegResponse struct {
	LegID string          `json:"legID"`
	Name  string          `json:"name"`
	Cost  decimal.Decimal `json:"cost"`
}

// QuoteResponse defines the data returned for a quote; monetary fields
// are in the quote's native currency.
type QuoteResponse struct {
	QuoteID         string                                            `json:"quoteID"`
	SupplierName    string                                            `json:"supplierName"`
	ProductName     string                                            `json:"productName"`
	UnitPrice       decimal.Decimal                                   `json:"unitPrice"`
	WeightKg        decimal.Decimal                                   `json:"weightKg"`
	Quantity        int64                                             `json:"quantity"`
	Currency        domain.Currency                                   `json:"currency"`
	ShippingOptions map[domain.ShippingMethod]ShippingOptionResponse  `json:"shippingOptions"`
	LocalTransport  []LocalTransportLegResponse                       `json:"localTransport"`
	CreatedAt       time.Time                                         `json:"createdAt"`
	LastUpdatedAt   time.Time                                         `json:"lastUpdatedAt"`
}

// ToQuoteResponse converts a domain.Quote to its response DTO.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		QuoteID:       q.QuoteID,
		SupplierName:  q.SupplierName,
		ProductName:   q.ProductName,
		UnitPrice:     q.UnitPrice,
		WeightKg:      q.WeightKg,
		Quantity:      q.Quantity,
		Currency:      q.Currency,
		CreatedAt:     q.CreatedAt,
		LastUpdatedAt: q.LastUpdatedAt,
	}
	if len(q.ShippingOptions) > 0 {
		resp.ShippingOptions = make(map[domain.ShippingMethod]ShippingOptionResponse, len(q.ShippingOptions))
		for method, opt := range q.ShippingOptions {
			resp.ShippingOptions[method] = ShippingOptionResponse{
				ShippingCost: opt.ShippingCost,
				DeliveryCost: opt.DeliveryCost,
				PricePerKg:   opt.PricePerKg,
			}
		}
	}
	for _, leg := range q.LocalTransport {
		resp.LocalTransport = append(resp.LocalTransport, LocalTransportLegResponse{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  leg.Cost,
		})
	}
	return resp
}

// ToListQuoteResponse converts a slice of quotes to response DTOs.
func ToListQuoteResponse(quotes []domain.Quote) []QuoteResponse {
	res := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		res[i] = ToQuoteResponse(&quotes[i])
	}
	return res
}
