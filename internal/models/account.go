package models

// AccountType enumerates the Firefly III account types the importer cares
// about.
type AccountType string

const (
	AccountAsset   AccountType = "asset"
	AccountExpense AccountType = "expense"
	AccountRevenue AccountType = "revenue"
	AccountCash    AccountType = "cash"
)

// Account is a ledger account as registered in Firefly III. The id is
// assigned by the ledger and opaque to the importer.
type Account struct {
	ID   string
	Name string
	Type AccountType
	IBAN string
}

// IsAsset reports whether the account is a tracked asset account. Only a
// movement between two asset accounts qualifies as a transfer.
func (a Account) IsAsset() bool {
	return a.Type == AccountAsset
}
