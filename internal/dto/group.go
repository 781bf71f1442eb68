package dto

import (
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GroupRequest creates an event or a future group.
type GroupRequest struct {
	Name string     `json:"name" binding:"required"`
	Date *time.Time `json:"date"`
}

func (r GroupRequest) ToInput() domain.GroupInput {
	return domain.GroupInput{Name: r.Name, Date: timeOrZero(r.Date)}
}

// CommitGroupRequest commits a group of either kind into TargetJar. An empty target or
// "AUTO" commits into AUTO.
type CommitGroupRequest struct {
	TargetJar string `json:"targetJar"`
}

// Target parses the target jar; nil when none was given.
func (r CommitGroupRequest) Target() (*domain.JarType, error) {
	return parseJar(r.TargetJar)
}

type GroupResponse struct {
	ID           string                `json:"id"`
	Kind         domain.GroupKind      `json:"kind"`
	Name         string                `json:"name"`
	Date         time.Time             `json:"date"`
	TotalIncome  decimal.Decimal       `json:"totalIncome" swaggertype:"string"`
	TotalExpense decimal.Decimal       `json:"totalExpense" swaggertype:"string"`
	Entries      []TransactionResponse `json:"entries"`
}

type CommittedGroupResponse struct {
	GroupID      string                `json:"groupId"`
	Kind         domain.GroupKind      `json:"kind"`
	Name         string                `json:"name"`
	TargetJar    string                `json:"targetJar"`
	CommittedAt  time.Time             `json:"committedAt"`
	Transactions []TransactionResponse `json:"transactions"`
}

func ToGroupResponse(g domain.StagedGroup) GroupResponse {
	income, expense := g.Totals()
	return GroupResponse{
		ID:           g.ID,
		Kind:         g.Kind,
		Name:         g.Name,
		Date:         g.Date,
		TotalIncome:  income,
		TotalExpense: expense,
		Entries:      ToTransactionResponses(g.Entries),
	}
}

func ToGroupResponses(groups []domain.StagedGroup) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, ToGroupResponse(g))
	}
	return out
}

func ToCommittedGroupResponse(c domain.CommittedGroup) CommittedGroupResponse {
	return CommittedGroupResponse{
		GroupID:      c.GroupID,
		Kind:         c.Kind,
		Name:         c.Name,
		TargetJar:    domain.JarLabel(c.TargetJar),
		CommittedAt:  c.CommittedAt,
		Transactions: ToTransactionResponses(c.Transactions),
	}
}
