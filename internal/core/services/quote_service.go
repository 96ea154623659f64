package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// QuoteService provides business logic for quotes and their derived cost
// views. Persistence is applied before any derived state is served, so a
// storage failure leaves nothing divergent to roll back.
type QuoteService struct {
	quoteRepo portsrepo.QuoteRepository
	rateSvc   portssvc.RateSvcFacade
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(quoteRepo portsrepo.QuoteRepository, rateSvc portssvc.RateSvcFacade) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		rateSvc:   rateSvc,
	}
}

// ListQuotes returns every stored quote.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes in service: %w", err)
	}
	if quotes == nil {
		return []domain.Quote{}, nil
	}
	return quotes, nil
}

// GetQuoteByID retrieves a single quote.
func (s *QuoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote by id in service: %w", err)
	}
	return quote, nil
}

// CreateQuote handles add-mode submission: amounts arrive in the freely
// chosen quote currency, which becomes the quote's immutable native
// currency, so no conversion happens here.
func (s *QuoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error) {
	now := time.Now()
	quote := domain.Quote{
		QuoteID:         uuid.NewString(),
		SupplierName:    req.SupplierName,
		ProductName:     req.ProductName,
		UnitPrice:       req.UnitPrice,
		WeightKg:        req.WeightKg,
		Quantity:        req.Quantity,
		Currency:        req.Currency,
		ShippingOptions: toDomainOptions(req.ShippingOptions),
		LocalTransport:  toDomainLegs(req.LocalTransport),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := quote.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote in service: %w", err)
	}
	return &quote, nil
}

// UpdateQuote handles edit-mode submission as a full-record replace.
// The submitted amounts are in req.FormCurrency (the currency the edit
// form was showing); they are converted back into the quote's native
// currency before persisting. When no rates are loaded and the form
// currency differs from the native one, the edit is rejected with
// apperrors.ErrRatesUnavailable rather than stored unconverted.
func (s *QuoteService) UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error) {
	existing, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote for update: %w", err)
	}

	rates := s.currentRates()
	fields := costing.EditableQuote{
		QuoteID:         existing.QuoteID,
		SupplierName:    req.SupplierName,
		ProductName:     req.ProductName,
		UnitPrice:       req.UnitPrice,
		WeightKg:        req.WeightKg,
		Quantity:        req.Quantity,
		Currency:        req.FormCurrency,
		NativeCurrency:  existing.Currency,
		ShippingOptions: toEditableOptions(req.ShippingOptions),
		LocalTransport:  toEditableLegs(req.LocalTransport),
	}

	updated, err := costing.FromEditable(fields, existing.Currency, req.FormCurrency, rates)
	if err != nil {
		return nil, err
	}

	updated.ShippingOptions = pruneOptions(updated.ShippingOptions)
	assignLegIDs(updated.LocalTransport)
	updated.CreatedAt = existing.CreatedAt
	updated.LastUpdatedAt = time.Now()

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.quoteRepo.ReplaceQuote(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update quote in service: %w", err)
	}
	return &updated, nil
}

// DeleteQuote removes one quote.
func (s *QuoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	if err := s.quoteRepo.DeleteQuote(ctx, quoteID); err != nil {
		return fmt.Errorf("failed to delete quote in service: %w", err)
	}
	return nil
}

// ClearQuotes removes every stored quote.
func (s *QuoteService) ClearQuotes(ctx context.Context) error {
	if err := s.quoteRepo.ClearQuotes(ctx); err != nil {
		return fmt.Errorf("failed to clear quotes in service: %w", err)
	}
	return nil
}

// GetBreakdown aggregates one quote's landed cost in the display
// currency. With no rates loaded the aggregation falls back to the
// quote's native currency; that is a degraded view, not an error.
func (s *QuoteService) GetBreakdown(ctx context.Context, quoteID string, display domain.Currency) (*domain.CostBreakdown, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote for breakdown: %w", err)
	}
	breakdown := costing.Aggregate(*quote, s.effectiveDisplay(display, quote.Currency), s.currentRates())
	return &breakdown, nil
}

// GetEditable projects a quote into editable display-currency values.
func (s *QuoteService) GetEditable(ctx context.Context, quoteID string, display domain.Currency) (*costing.EditableQuote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote for editing: %w", err)
	}
	fields, err := costing.ToEditable(*quote, s.effectiveDisplay(display, quote.Currency), s.currentRates())
	if err != nil {
		return nil, err
	}
	return &fields, nil
}

// GetReportFacts builds the labeled fact sheet for one quote.
func (s *QuoteService) GetReportFacts(ctx context.Context, quoteID string, display domain.Currency) (*costing.FactSheet, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote for report: %w", err)
	}
	breakdown := costing.Aggregate(*quote, s.effectiveDisplay(display, quote.Currency), s.currentRates())
	sheet := costing.BuildFacts(*quote, breakdown)
	return &sheet, nil
}

func (s *QuoteService) currentRates() domain.RateTable {
	rates, ok := s.rateSvc.Rates()
	if !ok {
		return nil
	}
	return rates
}

func (s *QuoteService) effectiveDisplay(display, native domain.Currency) domain.Currency {
	if !display.Valid() {
		return native
	}
	return display
}

func toDomainOptions(reqs map[domain.ShippingMethod]dto.ShippingOptionRequest) map[domain.ShippingMethod]domain.ShippingOption {
	var options map[domain.ShippingMethod]domain.ShippingOption
	for method, opt := range reqs {
		candidate := domain.ShippingOption{
			ShippingCost: opt.ShippingCost,
			DeliveryCost: opt.DeliveryCost,
			PricePerKg:   opt.PricePerKg,
		}
		if !candidate.IsProvided() {
			continue
		}
		if options == nil {
			options = make(map[domain.ShippingMethod]domain.ShippingOption)
		}
		options[method] = candidate
	}
	return options
}

func toDomainLegs(reqs []dto.LocalTransportLegRequest) []domain.LocalTransportLeg {
	var legs []domain.LocalTransportLeg
	for _, leg := range reqs {
		legs = append(legs, domain.LocalTransportLeg{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  leg.Cost,
		})
	}
	assignLegIDs(legs)
	return legs
}

func toEditableOptions(reqs map[domain.ShippingMethod]dto.ShippingOptionRequest) map[domain.ShippingMethod]costing.EditableOption {
	var options map[domain.ShippingMethod]costing.EditableOption
	for method, opt := range reqs {
		if options == nil {
			options = make(map[domain.ShippingMethod]costing.EditableOption)
		}
		options[method] = costing.EditableOption{
			ShippingCost: opt.ShippingCost,
			DeliveryCost: opt.DeliveryCost,
			PricePerKg:   opt.PricePerKg,
		}
	}
	return options
}

func toEditableLegs(reqs []dto.LocalTransportLegRequest) []costing.EditableLeg {
	var legs []costing.EditableLeg
	for _, leg := range reqs {
		legs = append(legs, costing.EditableLeg{
			LegID: leg.LegID,
			Name:  leg.Name,
			Cost:  leg.Cost,
		})
	}
	return legs
}

// pruneOptions drops entries that carry no meaningful value so that
// "not provided" options never reach storage.
func pruneOptions(options map[domain.ShippingMethod]domain.ShippingOption) map[domain.ShippingMethod]domain.ShippingOption {
	for method, opt := range options {
		if !opt.IsProvided() {
			delete(options, method)
		}
	}
	if len(options) == 0 {
		return nil
	}
	return options
}

// assignLegIDs fills in ids for legs added on the form. Uniqueness is the
// only property callers rely on.
func assignLegIDs(legs []domain.LocalTransportLeg) {
	for i := range legs {
		if legs[i].LegID == "" {
			legs[i].LegID = uuid.NewString()
		}
	}
}
