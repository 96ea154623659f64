package dto

import "github.com/ktraore/devis_manager_app/internal/core/domain"

// AnalyzeQuotesRequest triggers a natural-language analysis of every
// stored quote in the given display currency. Instruction overrides the
// default analyst prompt when set.
type AnalyzeQuotesRequest struct {
	Currency    domain.Currency `json:"currency" binding:"omitempty,currencycode"`
	Instruction string          `json:"instruction"`
}

// AnalysisResult is the summarizer's markdown output. Degraded true means
// the external summarizer failed and Analysis holds the fixed fallback
// message; stored data is unaffected either way.
type AnalysisResult struct {
	Analysis string          `json:"analysis"`
	Currency domain.Currency `json:"currency"`
	Degraded bool            `json:"degraded"`
}
