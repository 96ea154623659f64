package services

import (
	"context"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	"github.com/ktraore/devis_manager_app/internal/dto"
)

// AnalysisSvcFacade reduces the stored quotes to fact sheets and hands
// them to the external summarizer. Summarizer failure degrades to a fixed
// fallback message instead of an error.
type AnalysisSvcFacade interface {
	AnalyzeQuotes(ctx context.Context, display domain.Currency, instruction string) (dto.AnalysisResult, error)
}
