package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	portsrepo "github.com/ktraore/devis_manager_app/internal/core/ports/repositories"
	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// Fixed user-visible messages. The summarizer is an optional collaborator;
// its failure must never surface as an error or touch stored data.
const (
	noQuotesMessage = "Aucun devis à analyser. Veuillez d'abord ajouter quelques devis."
	fallbackMessage = "Une erreur est survenue lors de l'analyse des devis. Veuillez réessayer plus tard."
)

// defaultInstruction is the analyst prompt handed to the summarizer when
// the caller does not supply one.
const defaultInstruction = `En tant qu'expert en analyse commerciale et en chaîne d'approvisionnement, analyse les données de devis suivantes provenant de fournisseurs.
Fournis une analyse concise et exploitable en français pour m'aider à prendre une décision.

L'analyse doit inclure :
1. Un résumé global des options disponibles.
2. Identification du devis le plus rentable au total.
3. Identification du devis le plus cher au total.
4. Une recommandation sur le meilleur rapport qualité-prix, en tenant compte non seulement du coût total mais aussi du coût par unité.
5. Formate ta réponse en utilisant Markdown pour une meilleure lisibilité (titres, listes à puces).`

// analysisPayload is the serialized structure handed to the summarizer:
// every quote's fact sheet in a single display currency, plus a note
// naming that currency.
type analysisPayload struct {
	Note   string             `json:"note"`
	Quotes []costing.FactSheet `json:"quotes"`
}

// AnalysisService reduces the stored quotes to pre-aggregated numeric
// facts and calls the external summarizer with them.
type AnalysisService struct {
	quoteRepo  portsrepo.QuoteRepository
	rateSvc    portssvc.RateSvcFacade
	summarizer portsproviders.Summarizer
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(quoteRepo portsrepo.QuoteRepository, rateSvc portssvc.RateSvcFacade, summarizer portsproviders.Summarizer) *AnalysisService {
	return &AnalysisService{
		quoteRepo:  quoteRepo,
		rateSvc:    rateSvc,
		summarizer: summarizer,
	}
}

// AnalyzeQuotes aggregates every stored quote into the display currency
// (native currencies when no rates are loaded), serializes the fact
// sheets, and asks the summarizer for a markdown analysis. A summarizer
// failure degrades to the fixed fallback message; only a persistence
// failure is an error.
func (s *AnalysisService) AnalyzeQuotes(ctx context.Context, display domain.Currency, instruction string) (dto.AnalysisResult, error) {
	quotes, err := s.quoteRepo.ListQuotes(ctx)
	if err != nil {
		return dto.AnalysisResult{}, fmt.Errorf("failed to list quotes for analysis: %w", err)
	}
	if len(quotes) == 0 {
		return dto.AnalysisResult{Analysis: noQuotesMessage, Currency: display}, nil
	}

	rates, ok := s.rateSvc.Rates()
	if !ok {
		rates = nil
	}
	if !display.Valid() {
		display = domain.PivotCurrency
	}

	payload := analysisPayload{
		Note: fmt.Sprintf("Tous les montants sont exprimés en %s, sauf indication contraire.", display),
	}
	for i := range quotes {
		breakdown := costing.Aggregate(quotes[i], display, rates)
		payload.Quotes = append(payload.Quotes, costing.BuildFacts(quotes[i], breakdown))
		if rates == nil {
			// without rates each sheet stays in its native currency
			payload.Note = "Taux de change indisponibles : chaque devis est exprimé dans sa devise d'origine."
		}
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return dto.AnalysisResult{}, fmt.Errorf("failed to serialize analysis payload: %w", err)
	}

	if instruction == "" {
		instruction = defaultInstruction
	}

	if s.summarizer == nil {
		slog.Warn("No summarizer configured, returning fallback message")
		return dto.AnalysisResult{Analysis: fallbackMessage, Currency: display, Degraded: true}, nil
	}

	analysis, err := s.summarizer.Summarize(ctx, string(serialized), instruction)
	if err != nil {
		slog.Warn("Summarizer call failed, returning fallback message", slog.String("error", err.Error()))
		return dto.AnalysisResult{Analysis: fallbackMessage, Currency: display, Degraded: true}, nil
	}

	return dto.AnalysisResult{Analysis: analysis, Currency: display}, nil
}
