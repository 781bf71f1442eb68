package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	"github.com/SscSPs/six_jars_app/internal/core/ports/gateways"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

var verified = domain.Identity{UserID: "google-sub-1", Verified: true}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock() services.ServiceOption {
	return services.WithClock(func() time.Time { return testNow })
}

func seqIDs() ledger.Option {
	n := 0
	return ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	})
}

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, userID)
	var snap *domain.Snapshot
	if args.Get(0) != nil {
		snap = args.Get(0).(*domain.Snapshot)
	}
	return snap, args.Error(1)
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, userID string, snap domain.Snapshot) error {
	args := m.Called(ctx, userID, snap)
	return args.Error(0)
}

// --- Mock AssistantGateway ---
type MockAssistantGateway struct {
	mock.Mock
}

func (m *MockAssistantGateway) ParseTransaction(ctx context.Context, text string, recent []domain.Transaction) (*gateways.ParsedTransaction, error) {
	args := m.Called(ctx, text, recent)
	var parsed *gateways.ParsedTransaction
	if args.Get(0) != nil {
		parsed = args.Get(0).(*gateways.ParsedTransaction)
	}
	return parsed, args.Error(1)
}

func (m *MockAssistantGateway) ExtractTransactions(ctx context.Context, document string) ([]gateways.ParsedEntry, error) {
	args := m.Called(ctx, document)
	var entries []gateways.ParsedEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]gateways.ParsedEntry)
	}
	return entries, args.Error(1)
}

func (m *MockAssistantGateway) Advise(ctx context.Context, req gateways.AdviceRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// newTestSessions returns a store whose saves only happen on Flush, backed by a mock
// repository that starts every user with an empty ledger.
func newTestSessions(repo *MockSnapshotRepository) *services.SessionStore {
	repo.On("LoadSnapshot", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	return services.NewSessionStore(repo,
		services.WithSnapshotDebounce(time.Hour),
		services.WithBookOptions(seqIDs()))
}

func incomeInput(amount string, jar *domain.JarType) domain.TransactionInput {
	return domain.TransactionInput{Type: domain.Income, Amount: dec(amount), Description: "salary", JarType: jar, Timestamp: testNow}
}

func expenseInput(amount string, jar *domain.JarType) domain.TransactionInput {
	return domain.TransactionInput{Type: domain.Expense, Amount: dec(amount), Description: "groceries", JarType: jar, Timestamp: testNow}
}
