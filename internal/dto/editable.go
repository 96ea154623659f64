package dto

import (
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/utils"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// EditableOptionResponse carries one shipping option's form values,
// formatted to the form currency's precision.
type EditableOptionResponse struct {
	ShippingCost string  `json:"shippingCost"`
	DeliveryCost string  `json:"deliveryCost"`
	PricePerKg   *string `json:"pricePerKg,omitempty"`
}

// EditableLegResponse carries one local-transport leg's form values.
type EditableLegResponse struct {
	LegID string `json:"legID"`
	Name  string `json:"name"`
	Cost  string `json:"cost"`
}

// EditableQuoteResponse is the edit projection of a quote: every monetary
// field converted into the form currency and formatted to its canonical
// precision. NativeCurrency is informational; editing never changes it.
type EditableQuoteResponse struct {
	QuoteID         string                                           `json:"quoteID"`
	SupplierName    string                                           `json:"supplierName"`
	ProductName     string                                           `json:"productName"`
	UnitPrice       string                                           `json:"unitPrice"`
	WeightKg        string                                           `json:"weightKg"`
	Quantity        int64                                            `json:"quantity"`
	Currency        domain.Currency                                  `json:"currency"`
	NativeCurrency  domain.Currency                                  `json:"nativeCurrency"`
	ShippingOptions map[domain.ShippingMethod]EditableOptionResponse `json:"shippingOptions"`
	LocalTransport  []EditableLegResponse                            `json:"localTransport"`
}

// ToEditableQuoteResponse formats an edit projection for the form.
func ToEditableQuoteResponse(f *costing.EditableQuote) EditableQuoteResponse {
	resp := EditableQuoteResponse{
		QuoteID:        f.QuoteID,
		SupplierName:   f.SupplierName,
		ProductName:    f.ProductName,
		UnitPrice:      utils.FormatWithCurrencyPrecision(f.UnitPrice, f.Currency),
		WeightKg:       f.WeightKg.String(),
		Quantity:       f.Quantity,
		Currency:       f.Currency,
		NativeCurrency: f.NativeCurrency,
	}
	if len(f.ShippingOptions) > 0 {
		resp.ShippingOptions = make(map[domain.ShippingMethod]EditableOptionResponse, len(f.ShippingOptions))
		for method, opt := range f.ShippingOptions {
			optResp := EditableOptionResponse{
				ShippingCost: utils.FormatWithCurrencyPrecision(opt.ShippingCost, f.Currency),
				DeliveryCost: utils.FormatWithCurrencyPrecision(opt.DeliveryCost, f.Currency),
			}
			if opt.PricePerKg != nil {
				formatted := utils.FormatWithCurrencyPrecision(*opt.PricePerKg, f.Currency)
				optResp.PricePerKg = &formatted
			}
			resp.ShippingOptions[method] = optResp
		}
	}
	for _, leg := range f.LocalTransport {
		resp.LocalTransport = append(resp.LocalTransport, EditableLegResponse{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  utils.FormatWithCurrencyPrecision(leg.Cost, f.Currency),
		})
	}
	return resp
}
