package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	"github.com/ktraore/devis_manager_app/internal/core/services"
)

// --- Mock Summarizer ---
type MockSummarizer struct {
	mock.Mock
}

var _ portsproviders.Summarizer = (*MockSummarizer)(nil)

func (m *MockSummarizer) Summarize(ctx context.Context, payload string, instruction string) (string, error) {
	args := m.Called(ctx, payload, instruction)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type AnalysisServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockQuoteRepository
	mockRateSvc    *MockRateService
	mockSummarizer *MockSummarizer
	service        *services.AnalysisService
}

func (suite *AnalysisServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockQuoteRepository)
	suite.mockRateSvc = new(MockRateService)
	suite.mockSummarizer = new(MockSummarizer)
	suite.service = services.NewAnalysisService(suite.mockRepo, suite.mockRateSvc, suite.mockSummarizer)
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_EmptyStore() {
	ctx := context.Background()

	suite.mockRepo.On("ListQuotes", ctx).Return([]domain.Quote{}, nil).Once()

	result, err := suite.service.AnalyzeQuotes(ctx, domain.EUR, "")

	suite.Require().NoError(err)
	suite.False(result.Degraded)
	suite.Contains(result.Analysis, "Aucun devis")
	suite.mockSummarizer.AssertNotCalled(suite.T(), "Summarize")
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_Success() {
	ctx := context.Background()
	quotes := []domain.Quote{*storedQuote()}

	suite.mockRepo.On("ListQuotes", ctx).Return(quotes, nil).Once()
	suite.mockRateSvc.On("Rates").Return(testRates(), true).Once()

	var capturedPayload string
	suite.mockSummarizer.On("Summarize", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			capturedPayload = args.String(1)
		}).
		Return("## Comparaison des devis", nil).Once()

	result, err := suite.service.AnalyzeQuotes(ctx, domain.EUR, "")

	suite.Require().NoError(err)
	suite.False(result.Degraded)
	suite.Equal("## Comparaison des devis", result.Analysis)
	suite.Equal(domain.EUR, result.Currency)

	// The payload is valid JSON carrying one fact sheet per quote.
	suite.True(json.Valid([]byte(capturedPayload)), "payload must be JSON")
	suite.Contains(capturedPayload, "Shenzhen Electronics Co")
	suite.Contains(capturedPayload, "Coût de base")
	suite.mockSummarizer.AssertExpectations(suite.T())
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_CustomInstructionPassedThrough() {
	ctx := context.Background()
	quotes := []domain.Quote{*storedQuote()}
	instruction := "Classe les fournisseurs du moins cher au plus cher."

	suite.mockRepo.On("ListQuotes", ctx).Return(quotes, nil).Once()
	suite.mockRateSvc.On("Rates").Return(testRates(), true).Once()
	suite.mockSummarizer.On("Summarize", ctx, mock.AnythingOfType("string"), instruction).
		Return("ok", nil).Once()

	_, err := suite.service.AnalyzeQuotes(ctx, domain.EUR, instruction)

	suite.Require().NoError(err)
	suite.mockSummarizer.AssertExpectations(suite.T())
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_SummarizerFailureDegrades() {
	ctx := context.Background()
	quotes := []domain.Quote{*storedQuote()}

	suite.mockRepo.On("ListQuotes", ctx).Return(quotes, nil).Once()
	suite.mockRateSvc.On("Rates").Return(testRates(), true).Once()
	suite.mockSummarizer.On("Summarize", ctx, mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()

	result, err := suite.service.AnalyzeQuotes(ctx, domain.EUR, "")

	// A model failure is a degraded result, never an error.
	suite.Require().NoError(err)
	suite.True(result.Degraded)
	suite.NotEmpty(result.Analysis)
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_RepoFailureIsAnError() {
	ctx := context.Background()

	suite.mockRepo.On("ListQuotes", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.AnalyzeQuotes(ctx, domain.EUR, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AnalysisServiceTestSuite) TestAnalyzeQuotes_NoRatesUsesNativeCurrencies() {
	ctx := context.Background()
	quotes := []domain.Quote{*storedQuote()}

	suite.mockRepo.On("ListQuotes", ctx).Return(quotes, nil).Once()
	suite.mockRateSvc.On("Rates").Return(nil, false).Once()

	var capturedPayload string
	suite.mockSummarizer.On("Summarize", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			capturedPayload = args.String(1)
		}).
		Return("ok", nil).Once()

	_, err := suite.service.AnalyzeQuotes(ctx, domain.USD, "")

	suite.Require().NoError(err)
	// The stored quote is EUR-native; without rates its sheet stays EUR.
	suite.Contains(capturedPayload, `"currency": "EUR"`)
}

func TestAnalysisService(t *testing.T) {
	suite.Run(t, new(AnalysisServiceTestSuite))
}
