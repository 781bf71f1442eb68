package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
)

// Groups returns copies of the staged groups of the given kind.
func (b *Book) Groups(kind domain.GroupKind) []domain.StagedGroup {
	list := b.groupList(kind)
	if list == nil {
		return nil
	}
	out := make([]domain.StagedGroup, 0, len(*list))
	for _, g := range *list {
		out = append(out, g.Clone())
	}
	return out
}

// Group looks up a staged group.
func (b *Book) Group(kind domain.GroupKind, id string) (domain.StagedGroup, bool) {
	list := b.groupList(kind)
	if list == nil {
		return domain.StagedGroup{}, false
	}
	if i := groupIndexOf(*list, id); i >= 0 {
		return (*list)[i].Clone(), true
	}
	return domain.StagedGroup{}, false
}

// CreateGroup opens an empty staging group.
func (b *Book) CreateGroup(kind domain.GroupKind, in domain.GroupInput) (domain.StagedGroup, error) {
	list := b.groupList(kind)
	if list == nil {
		return domain.StagedGroup{}, fmt.Errorf("%w: unknown group kind %q", apperrors.ErrValidation, kind)
	}
	if err := in.Validate(); err != nil {
		return domain.StagedGroup{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	g := domain.StagedGroup{
		ID:   b.newID(),
		Kind: kind,
		Name: strings.TrimSpace(in.Name),
		Date: in.Date,
	}
	*list = append([]domain.StagedGroup{g}, *list...)
	b.touch()
	return g.Clone(), nil
}

// AddEntry appends a transaction-shaped entry to a staged group. Entries never touch the
// jar balances.
func (b *Book) AddEntry(kind domain.GroupKind, groupID string, in domain.TransactionInput) (domain.Transaction, error) {
	g, err := b.stagedGroup(kind, groupID)
	if err != nil {
		return domain.Transaction{}, err
	}
	entry := in.ToTransaction(b.newID())
	if err := entry.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	g.Entries = append(g.Entries, entry)
	b.touch()
	return entry, nil
}

// RemoveEntry drops an entry from a staged group. An unknown entry is a no-op.
func (b *Book) RemoveEntry(kind domain.GroupKind, groupID, entryID string) (bool, error) {
	g, err := b.stagedGroup(kind, groupID)
	if err != nil {
		return false, err
	}
	for i := range g.Entries {
		if g.Entries[i].ID == entryID {
			g.Entries = append(g.Entries[:i], g.Entries[i+1:]...)
			b.touch()
			return true, nil
		}
	}
	return false, nil
}

// DiscardGroup drops a staged group without committing it.
func (b *Book) DiscardGroup(kind domain.GroupKind, groupID string) bool {
	list := b.groupList(kind)
	if list == nil {
		return false
	}
	i := groupIndexOf(*list, groupID)
	if i < 0 {
		return false
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	b.touch()
	return true
}

// CommitEvent turns an event group into a single net transaction on target (nil for AUTO)
// and removes the group. The net is income when staged income covers staged expense.
// A group that nets to zero is consumed without a transaction.
func (b *Book) CommitEvent(groupID string, target *domain.JarType, at time.Time) (domain.CommittedGroup, error) {
	g, err := b.takeGroup(domain.EventGroup, groupID, target)
	if err != nil {
		return domain.CommittedGroup{}, err
	}

	receipt := domain.CommittedGroup{
		GroupID:     g.ID,
		Kind:        g.Kind,
		Name:        g.Name,
		TargetJar:   target,
		CommittedAt: at,
	}

	income, expense := g.Totals()
	net := income.Sub(expense)
	if net.IsZero() {
		return receipt, nil
	}
	typ := domain.Income
	if net.IsNegative() {
		typ = domain.Expense
	}
	txn := b.record(domain.Transaction{
		ID:          b.newID(),
		Type:        typ,
		Amount:      net.Abs(),
		Description: g.Name,
		JarType:     target,
		Timestamp:   at,
	})
	receipt.Transactions = []domain.Transaction{txn}
	return receipt, nil
}

// CommitFuture re-emits every staged entry as its own ledger transaction, keeping its type,
// amount, description and note, retargeted to target (nil for AUTO) and stamped at. The
// group is removed.
func (b *Book) CommitFuture(groupID string, target *domain.JarType, at time.Time) (domain.CommittedGroup, error) {
	g, err := b.takeGroup(domain.FutureGroup, groupID, target)
	if err != nil {
		return domain.CommittedGroup{}, err
	}

	receipt := domain.CommittedGroup{
		GroupID:      g.ID,
		Kind:         g.Kind,
		Name:         g.Name,
		TargetJar:    target,
		CommittedAt:  at,
		Transactions: make([]domain.Transaction, 0, len(g.Entries)),
	}
	for _, e := range g.Entries {
		txn := b.record(domain.Transaction{
			ID:          b.newID(),
			Type:        e.Type,
			Amount:      e.Amount,
			Description: e.Description,
			JarType:     target,
			Timestamp:   at,
			Note:        e.Note,
			Image:       e.Image,
		})
		receipt.Transactions = append(receipt.Transactions, txn)
	}
	return receipt, nil
}

// takeGroup validates the commit target and removes the group from its list.
func (b *Book) takeGroup(kind domain.GroupKind, groupID string, target *domain.JarType) (domain.StagedGroup, error) {
	if target != nil && !target.IsValid() {
		return domain.StagedGroup{}, fmt.Errorf("%w: unknown jar %q", apperrors.ErrValidation, *target)
	}
	list := b.groupList(kind)
	i := groupIndexOf(*list, groupID)
	if i < 0 {
		return domain.StagedGroup{}, fmt.Errorf("%w: %s group %s", apperrors.ErrNotFound, strings.ToLower(string(kind)), groupID)
	}
	g := (*list)[i]
	*list = append((*list)[:i], (*list)[i+1:]...)
	b.touch()
	return g, nil
}

func (b *Book) stagedGroup(kind domain.GroupKind, groupID string) (*domain.StagedGroup, error) {
	list := b.groupList(kind)
	if list == nil {
		return nil, fmt.Errorf("%w: unknown group kind %q", apperrors.ErrValidation, kind)
	}
	i := groupIndexOf(*list, groupID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s group %s", apperrors.ErrNotFound, strings.ToLower(string(kind)), groupID)
	}
	return &(*list)[i], nil
}

func (b *Book) groupList(kind domain.GroupKind) *[]domain.StagedGroup {
	switch kind {
	case domain.EventGroup:
		return &b.events
	case domain.FutureGroup:
		return &b.futures
	}
	return nil
}

func groupIndexOf(list []domain.StagedGroup, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
