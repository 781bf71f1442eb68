package domain

// Snapshot is the whole persisted state of one user's ledger. It is loaded once per
// session and written back, debounced, after mutations.
type Snapshot struct {
	Balances           JarBalance          `json:"balances"`
	Transactions       []Transaction       `json:"transactions"` // Most recent first
	Loans              []Loan              `json:"loans"`
	RecurringTemplates []RecurringTemplate `json:"recurringTemplates"`
	Events             []StagedGroup       `json:"events"`
	FutureGroups       []StagedGroup       `json:"futureGroups"`
	Settings           *Settings           `json:"settings"`
}

// Identity is the authenticated principal handed to the ledger by the identity provider.
type Identity struct {
	UserID   string
	Verified bool
}
