package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// CodePrefix returns the leading digit used when generating account codes
// for this type (Asset=1 ... Expense=5). Returns 0 for an unknown type.
func (t AccountType) CodePrefix() int {
	switch t {
	case Asset:
		return 1
	case Liability:
		return 2
	case Equity:
		return 3
	case Revenue:
		return 4
	case Expense:
		return 5
	}
	return 0
}

// DebitNormal reports whether a debit increases the balance of this account type.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	return t.CodePrefix() != 0
}

// Account is a node in a boarding house's chart of accounts. Category
// accounts group leaf accounts and cannot receive postings directly.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	BoardingHouseID string      `json:"boardingHouseID"` // FK -> boarding_houses.boarding_house_id (NON-NULL)
	Code            string      `json:"code"`            // Generated ledger code, e.g. "1000", "100010"
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc. Immutable after creation.
	IsCategory      bool        `json:"isCategory"`      // Categories cannot receive postings
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields

	// Children is populated only when accounts are returned as a tree.
	Children []Account `json:"children,omitempty"`
}
