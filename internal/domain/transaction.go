package domain

import "github.com/shopspring/decimal"

// TransactionType determines the sign of a transaction's effect on the
// referenced account's balance.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction records a single income or expense against one account.
// Date is an ISO-8601 timestamp string, as stored by the backend.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	AccountID   string
	Date        string
	OwnerID     string
}
