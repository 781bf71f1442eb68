package dto

import (
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// TransactionRequest creates or replaces a transaction.
type TransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal        `json:"amount" swaggertype:"string" example:"150000"`
	Description string                 `json:"description" binding:"required"`
	JarType     string                 `json:"jarType" example:"AUTO"` // Jar code, or AUTO/empty to split by ratios
	Timestamp   *time.Time             `json:"timestamp"`              // Defaults to now on create; kept on edit
	Note        *string                `json:"note"`
	Image       *string                `json:"image"`
}

// ToInput converts the request into a domain input.
func (r TransactionRequest) ToInput() (domain.TransactionInput, error) {
	jar, err := parseJar(r.JarType)
	if err != nil {
		return domain.TransactionInput{}, err
	}
	return domain.TransactionInput{
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		JarType:     jar,
		Timestamp:   timeOrZero(r.Timestamp),
		Note:        r.Note,
		Image:       r.Image,
	}, nil
}

// ListTransactionsParams are the query parameters of the transaction list.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=0,max=500"`
	NextToken string `form:"nextToken"`
}

// TransactionResponse is a ledger transaction as clients see it.
type TransactionResponse struct {
	ID              string                 `json:"id"`
	Type            domain.TransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount" swaggertype:"string"`
	Description     string                 `json:"description"`
	JarType         string                 `json:"jarType"`
	Timestamp       time.Time              `json:"timestamp"`
	Note            *string                `json:"note,omitempty"`
	Image           *string                `json:"image,omitempty"`
	LoanID          *string                `json:"loanId,omitempty"`
	TransferGroupID *string                `json:"transferGroupId,omitempty"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// BalancesResponse carries jar balances and, for reconcile, whether they matched history.
type BalancesResponse struct {
	Balances   domain.JarBalance `json:"balances"`
	Total      decimal.Decimal   `json:"total" swaggertype:"string"`
	Consistent *bool             `json:"consistent,omitempty"`
}

// ToTransactionResponse converts a domain transaction.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Type:            t.Type,
		Amount:          t.Amount,
		Description:     t.Description,
		JarType:         domain.JarLabel(t.JarType),
		Timestamp:       t.Timestamp,
		Note:            t.Note,
		Image:           t.Image,
		LoanID:          t.LoanID,
		TransferGroupID: t.TransferGroupID,
	}
}

// ToTransactionResponses converts a slice, never returning nil.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// TransferRequest moves money between two jars.
type TransferRequest struct {
	From      string          `json:"from" binding:"required"`
	To        string          `json:"to" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Timestamp *time.Time      `json:"timestamp"`
	Note      *string         `json:"note"`
}

// ToRequest converts the body into a ledger transfer; both jars must be specific.
func (r TransferRequest) ToRequest() (ledger.TransferRequest, error) {
	from, err := requireJar(r.From)
	if err != nil {
		return ledger.TransferRequest{}, err
	}
	to, err := requireJar(r.To)
	if err != nil {
		return ledger.TransferRequest{}, err
	}
	return ledger.TransferRequest{
		From:      from,
		To:        to,
		Amount:    r.Amount,
		Timestamp: timeOrZero(r.Timestamp),
		Note:      r.Note,
	}, nil
}
