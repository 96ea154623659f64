package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ktraore/devis_manager_app/internal/apperrors"
	"github.com/ktraore/devis_manager_app/internal/core/domain"
	portssvc "github.com/ktraore/devis_manager_app/internal/core/ports/services"
	"github.com/ktraore/devis_manager_app/internal/dto"
	"github.com/ktraore/devis_manager_app/internal/handlers"
	"github.com/ktraore/devis_manager_app/internal/middleware"
	"github.com/ktraore/devis_manager_app/internal/utils/costing"
)

// --- Mock QuoteService ---
type MockQuoteService struct {
	mock.Mock
}

var _ portssvc.QuoteSvcFacade = (*MockQuoteService)(nil)

func (m *MockQuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockQuoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockQuoteService) ClearQuotes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQuoteService) GetBreakdown(ctx context.Context, quoteID string, display domain.Currency) (*domain.CostBreakdown, error) {
	args := m.Called(ctx, quoteID, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostBreakdown), args.Error(1)
}

func (m *MockQuoteService) GetEditable(ctx context.Context, quoteID string, display domain.Currency) (*costing.EditableQuote, error) {
	args := m.Called(ctx, quoteID, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.EditableQuote), args.Error(1)
}

func (m *MockQuoteService) GetReportFacts(ctx context.Context, quoteID string, display domain.Currency) (*costing.FactSheet, error) {
	args := m.Called(ctx, quoteID, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.FactSheet), args.Error(1)
}

// --- Test Suite ---
type QuoteHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockQuoteService *MockQuoteService
	jwtSecret        string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *QuoteHandlerTestSuite) generateTestToken(username string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dma-test",
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockQuoteService = new(MockQuoteService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterQuoteRoutes(v1, suite.mockQuoteService)
}

func (suite *QuoteHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("admin"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *QuoteHandlerTestSuite) TestListQuotes_Success() {
	quotes := []domain.Quote{
		{QuoteID: "q-1", SupplierName: "Fournisseur A", Currency: domain.EUR},
		{QuoteID: "q-2", SupplierName: "Fournisseur B", Currency: domain.USD},
	}
	suite.mockQuoteService.On("ListQuotes", mock.Anything).Return(quotes, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/quotes", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal("q-1", resp[0].QuoteID)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestListQuotes_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockQuoteService.AssertNotCalled(suite.T(), "ListQuotes")
}

func (suite *QuoteHandlerTestSuite) TestCreateQuote_Success() {
	body := dto.CreateQuoteRequest{
		SupplierName: "Fournisseur A",
		ProductName:  "Produit",
		UnitPrice:    decimal.NewFromInt(5),
		Quantity:     100,
		Currency:     domain.EUR,
	}
	created := &domain.Quote{QuoteID: "q-new", SupplierName: body.SupplierName, Currency: domain.EUR}

	suite.mockQuoteService.On("CreateQuote", mock.Anything, mock.AnythingOfType("dto.CreateQuoteRequest")).
		Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/quotes", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.QuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("q-new", resp.QuoteID)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestCreateQuote_UnknownCurrencyRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/quotes", map[string]any{
		"supplierName": "Fournisseur A",
		"productName":  "Produit",
		"quantity":     10,
		"currency":     "GBP",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQuoteService.AssertNotCalled(suite.T(), "CreateQuote")
}

func (suite *QuoteHandlerTestSuite) TestGetQuote_NotFound() {
	suite.mockQuoteService.On("GetQuoteByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/quotes/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestUpdateQuote_RatesUnavailable() {
	body := dto.UpdateQuoteRequest{
		SupplierName: "Fournisseur A",
		ProductName:  "Produit",
		UnitPrice:    decimal.NewFromInt(5),
		Quantity:     100,
		FormCurrency: domain.USD,
	}

	suite.mockQuoteService.On("UpdateQuote", mock.Anything, "q-1", mock.AnythingOfType("dto.UpdateQuoteRequest")).
		Return(nil, apperrors.ErrRatesUnavailable).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/quotes/q-1", body)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestGetBreakdown_PassesDisplayCurrency() {
	breakdown := &domain.CostBreakdown{
		Currency: domain.USD,
		BaseCost: decimal.NewFromInt(5500),
	}

	suite.mockQuoteService.On("GetBreakdown", mock.Anything, "q-1", domain.USD).
		Return(breakdown, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/quotes/q-1/breakdown?display=USD", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BreakdownResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.USD, resp.Currency)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestGetBreakdown_UnknownDisplayCurrency() {
	w := suite.doRequest(http.MethodGet, "/api/v1/quotes/q-1/breakdown?display=GBP", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockQuoteService.AssertNotCalled(suite.T(), "GetBreakdown")
}

func (suite *QuoteHandlerTestSuite) TestGetEditable_RatesUnavailable() {
	suite.mockQuoteService.On("GetEditable", mock.Anything, "q-1", domain.USD).
		Return(nil, apperrors.ErrRatesUnavailable).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/quotes/q-1/editable?display=USD", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *QuoteHandlerTestSuite) TestDeleteQuote_Success() {
	suite.mockQuoteService.On("DeleteQuote", mock.Anything, "q-1").Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/quotes/q-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func (suite *QuoteHandlerTestSuite) TestClearQuotes_Success() {
	suite.mockQuoteService.On("ClearQuotes", mock.Anything).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/quotes", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockQuoteService.AssertExpectations(suite.T())
}

func TestQuoteHandler(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}
