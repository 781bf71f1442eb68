package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type GroupServiceTestSuite struct {
	suite.Suite
	ledger  portssvc.LedgerSvcFacade
	service portssvc.GroupSvcFacade
	ctx     context.Context
}

func (suite *GroupServiceTestSuite) SetupTest() {
	sessions := newTestSessions(new(MockSnapshotRepository))
	suite.ledger = services.NewLedgerService(sessions, fixedClock())
	suite.service = services.NewGroupService(sessions, fixedClock())
	suite.ctx = context.Background()
}

func (suite *GroupServiceTestSuite) stage(kind domain.GroupKind, name string, entries ...domain.TransactionInput) *domain.StagedGroup {
	group, err := suite.service.CreateGroup(suite.ctx, verified, kind, domain.GroupInput{Name: name})
	suite.Require().NoError(err)
	for _, in := range entries {
		_, err := suite.service.AddEntry(suite.ctx, verified, kind, group.ID, in)
		suite.Require().NoError(err)
	}
	return group
}

func (suite *GroupServiceTestSuite) TestEventCommit() {
	group := suite.stage(domain.EventGroup, "Birthday", incomeInput("500", nil), expenseInput("200", nil))

	balances, err := suite.ledger.GetBalances(suite.ctx, verified)
	suite.Require().NoError(err)
	suite.True(balances.Total().IsZero(), "staged entries have no balance effect")

	receipt, err := suite.service.Commit(suite.ctx, verified, domain.EventGroup, group.ID, domain.JarPlay.Ptr())
	suite.Require().NoError(err)
	suite.Require().Len(receipt.Transactions, 1)
	txn := receipt.Transactions[0]
	suite.Equal(domain.Income, txn.Type)
	suite.Equal("300", txn.Amount.String())
	suite.Equal("Birthday", txn.Description)
	suite.Equal(testNow, txn.Timestamp)

	_, err = suite.service.Commit(suite.ctx, verified, domain.EventGroup, group.ID, nil)
	suite.ErrorIs(err, apperrors.ErrNotFound, "a committed group is consumed")

	groups, err := suite.service.ListGroups(suite.ctx, verified, domain.EventGroup)
	suite.Require().NoError(err)
	suite.Empty(groups)
}

func (suite *GroupServiceTestSuite) TestFutureCommit() {
	group := suite.stage(domain.FutureGroup, "Trip", expenseInput("120", nil), expenseInput("80", nil))

	receipt, err := suite.service.Commit(suite.ctx, verified, domain.FutureGroup, group.ID, domain.JarPlay.Ptr())
	suite.Require().NoError(err)
	suite.Len(receipt.Transactions, 2)

	balances, err := suite.ledger.GetBalances(suite.ctx, verified)
	suite.Require().NoError(err)
	suite.Equal("-200", balances.Get(domain.JarPlay).String())
}

func (suite *GroupServiceTestSuite) TestEntriesAndDiscard() {
	group := suite.stage(domain.EventGroup, "Wedding", incomeInput("50", nil))

	got, err := suite.service.GetGroup(suite.ctx, verified, domain.EventGroup, group.ID)
	suite.Require().NoError(err)
	suite.Require().Len(got.Entries, 1)

	suite.Require().NoError(suite.service.RemoveEntry(suite.ctx, verified, domain.EventGroup, group.ID, got.Entries[0].ID))
	got, err = suite.service.GetGroup(suite.ctx, verified, domain.EventGroup, group.ID)
	suite.Require().NoError(err)
	suite.Empty(got.Entries)

	suite.Require().NoError(suite.service.DiscardGroup(suite.ctx, verified, domain.EventGroup, group.ID))
	_, err = suite.service.GetGroup(suite.ctx, verified, domain.EventGroup, group.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestValidation() {
	_, err := suite.service.ListGroups(suite.ctx, verified, "PARTY")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateGroup(suite.ctx, verified, domain.EventGroup, domain.GroupInput{})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.AddEntry(suite.ctx, verified, domain.EventGroup, "missing", incomeInput("1", nil))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
