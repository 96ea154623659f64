package services

import (
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateProvider portsproviders.RateProvider, summarizer portsproviders.Summarizer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate service first since the quote and analysis services read it.
	container.Rate = NewRateService(rateProvider)
	container.Quote = NewQuoteService(repos.QuoteRepo, container.Rate)
	container.Analysis = NewAnalysisService(repos.QuoteRepo, container.Rate, summarizer)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.QuoteSvcFacade    = (*QuoteService)(nil)
	_ portssvc.RateSvcFacade     = (*RateService)(nil)
	_ portssvc.AnalysisSvcFacade = (*AnalysisService)(nil)
)
