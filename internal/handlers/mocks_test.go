package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, id domain.Identity, limit int, pageToken string) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, id, limit, pageToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}
func (m *MockLedgerService) GetTransaction(ctx context.Context, id domain.Identity, txID string) (*domain.Transaction, error) {
	args := m.Called(ctx, id, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) GetBalances(ctx context.Context, id domain.Identity) (domain.JarBalance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.JarBalance), args.Error(1)
}
func (m *MockLedgerService) Reconcile(ctx context.Context, id domain.Identity) (domain.JarBalance, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(domain.JarBalance), args.Bool(1), args.Error(2)
}
func (m *MockLedgerService) AddTransaction(ctx context.Context, id domain.Identity, in domain.TransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) EditTransaction(ctx context.Context, id domain.Identity, txID string, in domain.TransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, id, txID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) DeleteTransaction(ctx context.Context, id domain.Identity, txID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, id, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, id domain.Identity, req ledger.TransferRequest) ([]domain.Transaction, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.TransferSvc = (*MockTransferService)(nil)

// --- Mock GroupService ---
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) ListGroups(ctx context.Context, id domain.Identity, kind domain.GroupKind) ([]domain.StagedGroup, error) {
	args := m.Called(ctx, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagedGroup), args.Error(1)
}
func (m *MockGroupService) GetGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) (*domain.StagedGroup, error) {
	args := m.Called(ctx, id, kind, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagedGroup), args.Error(1)
}
func (m *MockGroupService) CreateGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, in domain.GroupInput) (*domain.StagedGroup, error) {
	args := m.Called(ctx, id, kind, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagedGroup), args.Error(1)
}
func (m *MockGroupService) AddEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, in domain.TransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, id, kind, groupID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockGroupService) RemoveEntry(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID, entryID string) error {
	return m.Called(ctx, id, kind, groupID, entryID).Error(0)
}
func (m *MockGroupService) DiscardGroup(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string) error {
	return m.Called(ctx, id, kind, groupID).Error(0)
}
func (m *MockGroupService) Commit(ctx context.Context, id domain.Identity, kind domain.GroupKind, groupID string, target *domain.JarType) (*domain.CommittedGroup, error) {
	args := m.Called(ctx, id, kind, groupID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommittedGroup), args.Error(1)
}

var _ portssvc.GroupSvcFacade = (*MockGroupService)(nil)

// --- Mock StatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Summary(ctx context.Context, id domain.Identity) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}
func (m *MockStatsService) Series(ctx context.Context, id domain.Identity, period domain.StatsPeriod) ([]domain.SeriesBucket, error) {
	args := m.Called(ctx, id, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeriesBucket), args.Error(1)
}

var _ portssvc.StatsSvc = (*MockStatsService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context, id domain.Identity) (*domain.Settings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsService) UpdateSettings(ctx context.Context, id domain.Identity, u domain.SettingsUpdate) (*domain.Settings, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsService) UpdateRatios(ctx context.Context, id domain.Identity, ratios domain.JarRatios) (domain.JarRatios, error) {
	args := m.Called(ctx, id, ratios)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.JarRatios), args.Error(1)
}
func (m *MockSettingsService) SetPIN(ctx context.Context, id domain.Identity, pin string) error {
	return m.Called(ctx, id, pin).Error(0)
}
func (m *MockSettingsService) ClearPIN(ctx context.Context, id domain.Identity) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSettingsService) VerifyPIN(ctx context.Context, id domain.Identity, pin string) (bool, error) {
	args := m.Called(ctx, id, pin)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock AssistantService ---
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) ParseAndRecord(ctx context.Context, id domain.Identity, text string) (*portssvc.ParseResult, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ParseResult), args.Error(1)
}
func (m *MockAssistantService) ImportDocument(ctx context.Context, id domain.Identity, document string) (*portssvc.ImportResult, error) {
	args := m.Called(ctx, id, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ImportResult), args.Error(1)
}
func (m *MockAssistantService) Advice(ctx context.Context, id domain.Identity, question string) (string, error) {
	args := m.Called(ctx, id, question)
	return args.String(0), args.Error(1)
}

var _ portssvc.AssistantSvc = (*MockAssistantService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportCSV(ctx context.Context, id domain.Identity, w io.Writer) error {
	args := m.Called(ctx, id, w)
	if body := args.String(0); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}
func (m *MockExportService) ExportXLSX(ctx context.Context, id domain.Identity, w io.Writer) error {
	args := m.Called(ctx, id, w)
	if body := args.String(0); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}

var _ portssvc.ExportSvc = (*MockExportService)(nil)
