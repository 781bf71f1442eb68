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

type LoanServiceTestSuite struct {
	suite.Suite
	ledger  portssvc.LedgerSvcFacade
	service portssvc.LoanSvcFacade
	ctx     context.Context
}

func (suite *LoanServiceTestSuite) SetupTest() {
	sessions := newTestSessions(new(MockSnapshotRepository))
	suite.ledger = services.NewLedgerService(sessions, fixedClock())
	suite.service = services.NewLoanService(sessions, fixedClock())
	suite.ctx = context.Background()
}

func (suite *LoanServiceTestSuite) borrow(principal string) *domain.Loan {
	loan, err := suite.service.CreateLoan(suite.ctx, verified, domain.LoanInput{
		Type:       domain.Borrow,
		LenderName: "Minh",
		Principal:  dec(principal),
		LoanJar:    domain.JarNecessities.Ptr(),
	})
	suite.Require().NoError(err)
	return loan
}

func (suite *LoanServiceTestSuite) necBalance() string {
	balances, err := suite.ledger.GetBalances(suite.ctx, verified)
	suite.Require().NoError(err)
	return balances.Get(domain.JarNecessities).String()
}

func (suite *LoanServiceTestSuite) TestCreateLoan() {
	loan := suite.borrow("1000")

	suite.Equal("id-001", loan.ID)
	suite.Equal("id-002", loan.OriginTransactionID)
	suite.Equal(testNow, loan.StartDate, "missing start date defaults to now")
	suite.Equal("1000", suite.necBalance())
}

func (suite *LoanServiceTestSuite) TestCreateLoan_Validation() {
	_, err := suite.service.CreateLoan(suite.ctx, verified, domain.LoanInput{Type: "GIFT", LenderName: "x", Principal: dec("1")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateLoan(suite.ctx, verified, domain.LoanInput{Type: domain.Lend, LenderName: "x", Principal: dec("0")})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestPayLoan_Lifecycle() {
	loan := suite.borrow("1000")

	updated, payment, err := suite.service.PayLoan(suite.ctx, verified, loan.ID, domain.LoanPayment{Amount: dec("400")})
	suite.Require().NoError(err)
	suite.Equal(domain.Expense, payment.Type)
	suite.Equal(testNow, payment.Timestamp)
	suite.Equal("400", updated.PaidAmount.String())
	suite.Equal(domain.LoanOpen, updated.Status())
	suite.Equal("600", suite.necBalance())

	_, _, err = suite.service.PayLoan(suite.ctx, verified, loan.ID, domain.LoanPayment{Amount: dec("700")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	updated, _, err = suite.service.PayLoan(suite.ctx, verified, loan.ID, domain.LoanPayment{Amount: dec("600")})
	suite.Require().NoError(err)
	suite.Equal(domain.LoanSettled, updated.Status())

	_, _, err = suite.service.PayLoan(suite.ctx, verified, loan.ID, domain.LoanPayment{Amount: dec("1")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	got, txns, err := suite.service.GetLoan(suite.ctx, verified, loan.ID)
	suite.Require().NoError(err)
	suite.Equal("1000", got.PaidAmount.String())
	suite.Len(txns, 3)
}

func (suite *LoanServiceTestSuite) TestPayLoan_Unknown() {
	_, _, err := suite.service.PayLoan(suite.ctx, verified, "missing", domain.LoanPayment{Amount: dec("1")})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestEditLoan() {
	loan := suite.borrow("1000")

	edited, err := suite.service.EditLoan(suite.ctx, verified, loan.ID, domain.LoanInput{
		Type:       domain.Borrow,
		LenderName: "Minh",
		Principal:  dec("1500"),
		LoanJar:    domain.JarNecessities.Ptr(),
	})
	suite.Require().NoError(err)
	suite.Equal("1500", edited.Principal.String())
	suite.Equal(loan.StartDate, edited.StartDate, "edit without start date keeps the original")
	suite.Equal("1500", suite.necBalance())

	missing, err := suite.service.EditLoan(suite.ctx, verified, "missing", domain.LoanInput{Type: domain.Borrow, LenderName: "x", Principal: dec("1")})
	suite.NoError(err)
	suite.Nil(missing)
}

func (suite *LoanServiceTestSuite) TestDeleteLoan() {
	loan := suite.borrow("1000")
	_, _, err := suite.service.PayLoan(suite.ctx, verified, loan.ID, domain.LoanPayment{Amount: dec("250")})
	suite.Require().NoError(err)

	removed, err := suite.service.DeleteLoan(suite.ctx, verified, loan.ID)
	suite.Require().NoError(err)
	suite.Len(removed, 2)
	suite.Equal("0", suite.necBalance())

	loans, err := suite.service.ListLoans(suite.ctx, verified)
	suite.Require().NoError(err)
	suite.Empty(loans)

	_, _, err = suite.service.GetLoan(suite.ctx, verified, loan.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
