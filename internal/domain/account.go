package domain

import "github.com/shopspring/decimal"

// AccountType classifies where the money lives.
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank_account"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeSavings, AccountTypeCreditCard:
		return true
	}
	return false
}

// DefaultCurrency is assigned to accounts created without an explicit currency.
const DefaultCurrency = "S/"

// Account is a money container owned by exactly one user.
type Account struct {
	ID          string
	Name        string
	Type        AccountType
	Balance     decimal.Decimal
	Currency    string
	Institution string
	Icon        string
	OwnerID     string
}

// ApplyIncome returns the balance after crediting amount.
func (a *Account) ApplyIncome(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyExpense returns the balance after debiting amount.
func (a *Account) ApplyExpense(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
