package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/SscSPs/six_jars_app/internal/handlers"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/SscSPs/six_jars_app/internal/platform/config"
	"github.com/SscSPs/six_jars_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var verifiedUser = domain.Identity{UserID: "google-sub-1", Verified: true}

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	ledger    *MockLedgerService
	transfer  *MockTransferService
	groups    *MockGroupService
	stats     *MockStatsService
	settings  *MockSettingsService
	assistant *MockAssistantService
	export    *MockExportService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.ledger = new(MockLedgerService)
	suite.transfer = new(MockTransferService)
	suite.groups = new(MockGroupService)
	suite.stats = new(MockStatsService)
	suite.settings = new(MockSettingsService)
	suite.assistant = new(MockAssistantService)
	suite.export = new(MockExportService)

	container := &portssvc.ServiceContainer{
		Ledger:    suite.ledger,
		Transfer:  suite.transfer,
		Group:     suite.groups,
		Stats:     suite.stats,
		Settings:  suite.settings,
		Assistant: suite.assistant,
		Export:    suite.export,
	}
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}

	aiLimiter, err := middleware.NewMemoryLimiter("2-M")
	suite.Require().NoError(err)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(suite.router, cfg, container, aiLimiter)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.transfer.AssertExpectations(suite.T())
	suite.groups.AssertExpectations(suite.T())
	suite.stats.AssertExpectations(suite.T())
	suite.settings.AssertExpectations(suite.T())
	suite.assistant.AssertExpectations(suite.T())
	suite.export.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) token(id domain.Identity) string {
	token, err := utils.GenerateJWT(id, suite.jwtSecret, time.Hour, "six-jars-test")
	suite.Require().NoError(err)
	return token
}

// do sends a request as the verified test user.
func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	return suite.doAs(verifiedUser, method, url, body)
}

func (suite *HandlerTestSuite) doAs(id domain.Identity, method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.token(id))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func sampleTxn(id string) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Type:        domain.Expense,
		Amount:      decimal.NewFromInt(50000),
		Description: "lunch",
		JarType:     domain.JarPlay.Ptr(),
		Timestamp:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealthAndPingArePublic() {
	for _, path := range []string{"/health", "/api/v1/ping"} {
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		suite.Equal(http.StatusOK, w.Code, path)
	}
}

func (suite *HandlerTestSuite) TestMissingTokenIsRejected() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_Success() {
	suite.ledger.On("ListTransactions", mock.Anything, verifiedUser, 2, "abc").
		Return([]domain.Transaction{sampleTxn("tx-2"), sampleTxn("tx-1")}, "next-token", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=2&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Transactions, 2)
	suite.Equal("tx-2", resp.Transactions[0].ID)
	suite.Equal("PLAY", resp.Transactions[0].JarType)
	suite.Equal("next-token", resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransaction_ParsesJar() {
	created := sampleTxn("tx-1")
	suite.ledger.On("AddTransaction", mock.Anything, verifiedUser, mock.MatchedBy(func(in domain.TransactionInput) bool {
		return in.JarType != nil && *in.JarType == domain.JarPlay &&
			in.Amount.Equal(decimal.NewFromInt(50000)) && in.Timestamp.IsZero()
	})).Return(&created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "expense", "amount": 50000, "description": "lunch", "jarType": "play",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Equal("tx-1", resp.ID)
}

func (suite *HandlerTestSuite) TestCreateTransaction_AutoJar() {
	created := sampleTxn("tx-1")
	created.JarType = nil
	suite.ledger.On("AddTransaction", mock.Anything, verifiedUser, mock.MatchedBy(func(in domain.TransactionInput) bool {
		return in.JarType == nil
	})).Return(&created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"type": "income", "amount": "1000", "description": "salary", "jarType": "AUTO",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Equal("AUTO", resp.JarType)
}

func (suite *HandlerTestSuite) TestCreateTransaction_RejectedBeforeService() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown jar", map[string]any{"type": "expense", "amount": 1, "description": "x", "jarType": "CAR"}},
		{"bad type", map[string]any{"type": "refund", "amount": 1, "description": "x"}},
		{"missing description", map[string]any{"type": "expense", "amount": 1}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/transactions", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.ledger.AssertNotCalled(suite.T(), "AddTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestErrorMapping() {
	unverified := domain.Identity{UserID: "google-sub-2"}
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), http.StatusBadRequest},
		{"unverified", apperrors.ErrUnverified, http.StatusForbidden},
		{"not loaded", fmt.Errorf("%w: timeout", apperrors.ErrLedgerNotLoaded), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.ledger.On("AddTransaction", mock.Anything, unverified, mock.Anything).Return(nil, tt.err).Once()

			w := suite.doAs(unverified, http.MethodPost, "/api/v1/transactions", map[string]any{
				"type": "expense", "amount": 1, "description": "x",
			})
			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestInternalErrorsDoNotLeak() {
	suite.ledger.On("GetBalances", mock.Anything, verifiedUser).Return(nil, fmt.Errorf("pg: password authentication failed")).Once()

	w := suite.do(http.MethodGet, "/api/v1/balances", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestUpdateTransaction_UnknownIsNotFound() {
	suite.ledger.On("EditTransaction", mock.Anything, verifiedUser, "nope", mock.Anything).Return(nil, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/nope", map[string]any{
		"type": "expense", "amount": 1, "description": "x",
	})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction_ReturnsRemoved() {
	suite.ledger.On("DeleteTransaction", mock.Anything, verifiedUser, "tx-1").
		Return([]domain.Transaction{sampleTxn("tx-1"), sampleTxn("tx-2")}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/tx-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var removed []dto.TransactionResponse
	suite.decode(w, &removed)
	suite.Len(removed, 2)
}

func (suite *HandlerTestSuite) TestReconcile_ReportsConsistency() {
	balances := domain.NewJarBalance()
	balances[domain.JarNecessities] = decimal.NewFromInt(550)
	suite.ledger.On("Reconcile", mock.Anything, verifiedUser).Return(balances, false, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/balances/reconcile", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalancesResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.Consistent)
	suite.False(*resp.Consistent)
	suite.True(resp.Total.Equal(decimal.NewFromInt(550)))
}

func (suite *HandlerTestSuite) TestTransfer() {
	suite.transfer.On("Transfer", mock.Anything, verifiedUser, mock.MatchedBy(func(req ledger.TransferRequest) bool {
		return req.From == domain.JarNecessities && req.To == domain.JarPlay && req.Amount.Equal(decimal.NewFromInt(300))
	})).Return([]domain.Transaction{sampleTxn("out"), sampleTxn("in")}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", map[string]any{"from": "NEC", "to": "PLAY", "amount": 300})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/transfers", map[string]any{"from": "AUTO", "to": "PLAY", "amount": 300})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGroupRoutes_UseTheirKind() {
	committed := &domain.CommittedGroup{GroupID: "g1", Kind: domain.FutureGroup, TargetJar: domain.JarLongTerm.Ptr()}
	suite.groups.On("Commit", mock.Anything, verifiedUser, domain.FutureGroup, "g1", mock.MatchedBy(func(j *domain.JarType) bool {
		return j != nil && *j == domain.JarLongTerm
	})).Return(committed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/futures/g1/commit", map[string]any{"targetJar": "LTS"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CommittedGroupResponse
	suite.decode(w, &resp)
	suite.Equal("LTS", resp.TargetJar)

	event := &domain.CommittedGroup{GroupID: "e1", Kind: domain.EventGroup}
	suite.groups.On("Commit", mock.Anything, verifiedUser, domain.EventGroup, "e1", (*domain.JarType)(nil)).Return(event, nil).Once()

	w = suite.do(http.MethodPost, "/api/v1/events/e1/commit", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGroupCommit_TargetAppliesToEvents() {
	event := &domain.CommittedGroup{GroupID: "e2", Kind: domain.EventGroup, TargetJar: domain.JarGive.Ptr()}
	suite.groups.On("Commit", mock.Anything, verifiedUser, domain.EventGroup, "e2", mock.MatchedBy(func(j *domain.JarType) bool {
		return j != nil && *j == domain.JarGive
	})).Return(event, nil).Once()
	future := &domain.CommittedGroup{GroupID: "f2", Kind: domain.FutureGroup}
	suite.groups.On("Commit", mock.Anything, verifiedUser, domain.FutureGroup, "f2", (*domain.JarType)(nil)).Return(future, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/events/e2/commit", map[string]any{"targetJar": "GIVE"})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CommittedGroupResponse
	suite.decode(w, &resp)
	suite.Equal("GIVE", resp.TargetJar)

	w = suite.do(http.MethodPost, "/api/v1/futures/f2/commit", map[string]any{"targetJar": "AUTO"})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Equal("AUTO", resp.TargetJar)
}

func (suite *HandlerTestSuite) TestGroupList() {
	group := domain.StagedGroup{ID: "e1", Kind: domain.EventGroup, Name: "Birthday", Entries: []domain.Transaction{
		{ID: "a", Type: domain.Income, Amount: decimal.NewFromInt(500), Description: "gifts"},
		{ID: "b", Type: domain.Expense, Amount: decimal.NewFromInt(200), Description: "cake"},
	}}
	suite.groups.On("ListGroups", mock.Anything, verifiedUser, domain.EventGroup).Return([]domain.StagedGroup{group}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/events", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.GroupResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.True(resp[0].TotalIncome.Equal(decimal.NewFromInt(500)))
	suite.True(resp[0].TotalExpense.Equal(decimal.NewFromInt(200)))
}

func (suite *HandlerTestSuite) TestSummary_FormatsDisplayCurrency() {
	settings := domain.DefaultSettings()
	settings.Currency = "USD"
	suite.settings.On("GetSettings", mock.Anything, verifiedUser).Return(&settings, nil).Once()
	suite.stats.On("Summary", mock.Anything, verifiedUser).Return(&domain.LedgerSummary{
		TotalBalance: decimal.NewFromInt(250000),
		NetWorth:     decimal.NewFromInt(250000),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/stats/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SummaryResponse
	suite.decode(w, &resp)
	suite.Equal("USD", resp.Currency)
	suite.Equal("10", resp.Display["totalBalance"])
	suite.True(resp.TotalBalance.Equal(decimal.NewFromInt(250000)))
}

func (suite *HandlerTestSuite) TestSeries_DefaultsToMonth() {
	suite.stats.On("Series", mock.Anything, verifiedUser, domain.PeriodMonth).Return([]domain.SeriesBucket{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/stats/series", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/stats/series?period=decade", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSettings_HidePinHash() {
	settings := domain.DefaultSettings()
	settings.PinHash = "$2a$10$secret"
	settings.PinEnabled = true
	suite.settings.On("GetSettings", mock.Anything, verifiedUser).Return(&settings, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/settings", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "secret")
	var resp dto.SettingsResponse
	suite.decode(w, &resp)
	suite.True(resp.PinEnabled)
}

func (suite *HandlerTestSuite) TestVerifyPIN() {
	suite.settings.On("VerifyPIN", mock.Anything, verifiedUser, "1234").Return(true, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/settings/pin/verify", map[string]any{"pin": "1234"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VerifyPINResponse
	suite.decode(w, &resp)
	suite.True(resp.Valid)
}

func (suite *HandlerTestSuite) TestAssistantParse() {
	recorded := sampleTxn("tx-9")
	suite.assistant.On("ParseAndRecord", mock.Anything, verifiedUser, "lunch 50k").Return(&portssvc.ParseResult{
		Parsed:      gateways.ParsedTransaction{Action: gateways.ActionAdd, Amount: decimal.NewFromInt(50000), JarType: "PLAY", IsExpense: true},
		Transaction: &recorded,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/assistant/parse", map[string]any{"text": "lunch 50k"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ParseMessageResponse
	suite.decode(w, &resp)
	suite.True(resp.Recorded)
	suite.Require().NotNil(resp.Transaction)
	suite.Equal("tx-9", resp.Transaction.ID)
}

func (suite *HandlerTestSuite) TestAssistantErrors() {
	suite.assistant.On("Advice", mock.Anything, verifiedUser, "").
		Return("", fmt.Errorf("%w: 429", apperrors.ErrAIQuotaExceeded)).Once()
	w := suite.do(http.MethodPost, "/api/v1/assistant/advice", nil)
	suite.Equal(http.StatusTooManyRequests, w.Code)

	suite.assistant.On("ImportDocument", mock.Anything, verifiedUser, "receipt").
		Return(nil, fmt.Errorf("%w: not json", apperrors.ErrAIParse)).Once()
	w = suite.do(http.MethodPost, "/api/v1/assistant/import", map[string]any{"document": "receipt"})
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestAssistantIsRateLimited() {
	suite.assistant.On("Advice", mock.Anything, verifiedUser, "").Return("save more", nil).Twice()

	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, "/api/v1/assistant/advice", nil)
		suite.Equal(http.StatusOK, w.Code)
	}
	w := suite.do(http.MethodPost, "/api/v1/assistant/advice", nil)
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func (suite *HandlerTestSuite) TestExportCSV() {
	suite.export.On("ExportCSV", mock.Anything, verifiedUser, mock.Anything).Return("id,type\n", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/export/csv", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), ".csv")
	suite.Equal("id,type\n", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportFailureKeepsErrorStatus() {
	suite.export.On("ExportXLSX", mock.Anything, verifiedUser, mock.Anything).Return("partial", fmt.Errorf("boom")).Once()

	w := suite.do(http.MethodGet, "/api/v1/export/xlsx", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "partial")
}
