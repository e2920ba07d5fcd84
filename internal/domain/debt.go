package domain

import "github.com/shopspring/decimal"

// DebtType distinguishes money the user owes from money owed to the user.
type DebtType string

const (
	DebtIOwe    DebtType = "i_owe"
	DebtTheyOwe DebtType = "they_owe"
)

// IsValid reports whether t is one of the known debt types.
func (t DebtType) IsValid() bool {
	return t == DebtIOwe || t == DebtTheyOwe
}

// Debt is an informal IOU tracked outside any account balance.
// IsPaid only ever flips false to true, via the mark-paid operation.
type Debt struct {
	ID          string
	Amount      decimal.Decimal
	Type        DebtType
	Person      string
	Description string
	Date        string
	IsPaid      bool
	OwnerID     string
}
