package costing

import (
	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EditableOption mirrors domain.ShippingOption with values expressed in
// the form currency.
type EditableOption struct {
	ShippingCost decimal.Decimal
	DeliveryCost decimal.Decimal
	PricePerKg   *decimal.Decimal
}

// EditableLeg mirrors domain.LocalTransportLeg with the cost expressed in
// the form currency. A blank LegID marks a leg added during editing.
type EditableLeg struct {
	LegID string
	Name  string
	Cost  decimal.Decimal
}

// EditableQuote is the projection of a quote into the currency currently
// shown on the edit form. Currency names the currency every monetary
// value is expressed in; NativeCurrency is the quote's storage currency,
// which editing never changes.
type EditableQuote struct {
	QuoteID         string
	SupplierName    string
	ProductName     string
	UnitPrice       decimal.Decimal
	WeightKg        decimal.Decimal
	Quantity        int64
	Currency        domain.Currency
	NativeCurrency  domain.Currency
	ShippingOptions map[domain.ShippingMethod]EditableOption
	LocalTransport  []EditableLeg
}

// ToEditable projects a stored quote into editable display-currency
// values, each rounded to the display currency's canonical precision.
//
// When rates is nil and the display currency differs from the quote's
// native currency, editing must be disabled entirely: presenting
// unconverted numbers as if converted is the one correctness failure this
// projection exists to prevent, so apperrors.ErrRatesUnavailable is
// returned instead of a silently degraded projection.
func ToEditable(q domain.Quote, display domain.Currency, rates domain.RateTable) (EditableQuote, error) {
	if rates == nil && display != q.Currency {
		return EditableQuote{}, apperrors.ErrRatesUnavailable
	}

	project := func(amount decimal.Decimal) decimal.Decimal {
		return Convert(amount, q.Currency, display, rates).Round(display.Precision())
	}

	fields := EditableQuote{
		QuoteID:        q.QuoteID,
		SupplierName:   q.SupplierName,
		ProductName:    q.ProductName,
		UnitPrice:      project(q.UnitPrice),
		WeightKg:       q.WeightKg,
		Quantity:       q.Quantity,
		Currency:       display,
		NativeCurrency: q.Currency,
	}

	for _, method := range q.ProvidedOptions() {
		opt := q.ShippingOptions[method]
		editable := EditableOption{
			ShippingCost: project(opt.ShippingCost),
			DeliveryCost: project(opt.DeliveryCost),
		}
		if opt.PricePerKg != nil {
			perKg := project(*opt.PricePerKg)
			editable.PricePerKg = &perKg
		}
		if fields.ShippingOptions == nil {
			fields.ShippingOptions = make(map[domain.ShippingMethod]EditableOption)
		}
		fields.ShippingOptions[method] = editable
	}

	for _, leg := range q.LocalTransport {
		fields.LocalTransport = append(fields.LocalTransport, EditableLeg{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  project(leg.Cost),
		})
	}

	return fields, nil
}

// FromEditable converts edited form values back into the quote's native
// currency for storage. The form currency is explicit and threaded in by
// the caller: in add mode it is the freely chosen quote currency, in edit
// mode the global display currency. The native currency tag itself is
// never changed by editing.
//
// Converted amounts are rounded to the native currency's precision before
// storage, so FromEditable(ToEditable(q, d, r), q.Currency, d, r)
// reproduces q's monetary fields within the native currency's rounding
// unit whenever the table carries real rates.
func FromEditable(fields EditableQuote, native, formCurrency domain.Currency, rates domain.RateTable) (domain.Quote, error) {
	if rates == nil && formCurrency != native {
		return domain.Quote{}, apperrors.ErrRatesUnavailable
	}

	store := func(amount decimal.Decimal) decimal.Decimal {
		return Convert(amount, formCurrency, native, rates).Round(native.Precision())
	}

	q := domain.Quote{
		QuoteID:      fields.QuoteID,
		SupplierName: fields.SupplierName,
		ProductName:  fields.ProductName,
		UnitPrice:    store(fields.UnitPrice),
		WeightKg:     fields.WeightKg,
		Quantity:     fields.Quantity,
		Currency:     native,
	}

	for method, opt := range fields.ShippingOptions {
		stored := domain.ShippingOption{
			ShippingCost: store(opt.ShippingCost),
			DeliveryCost: store(opt.DeliveryCost),
		}
		if opt.PricePerKg != nil {
			perKg := store(*opt.PricePerKg)
			stored.PricePerKg = &perKg
		}
		if q.ShippingOptions == nil {
			q.ShippingOptions = make(map[domain.ShippingMethod]domain.ShippingOption)
		}
		q.ShippingOptions[method] = stored
	}

	for _, leg := range fields.LocalTransport {
		q.LocalTransport = append(q.LocalTransport, domain.LocalTransportLeg{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  store(leg.Cost),
		})
	}

	return q, nil
}
