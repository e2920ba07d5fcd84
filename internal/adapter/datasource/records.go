// Package datasource defines the wire-level contract with the hosted backend:
// the transfer-record row shapes and the auth and row-storage sub-interfaces.
// Implementations log every failure they catch and return it as a wrapped
// error; they never panic across this boundary.
package datasource

// Table names used by the row-storage backend.
const (
	TableAccounts     = "accounts"
	TableTransactions = "transactions"
	TableDebts        = "debts"
)

// AccountRecord mirrors a row in the accounts table.
type AccountRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
	Currency    string  `json:"currency"`
	Institution *string `json:"institution,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	OwnerID     string  `json:"owner_id"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// TransactionRecord mirrors a row in the transactions table.
type TransactionRecord struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	AccountID   string  `json:"account_id"`
	Date        string  `json:"date"`
	OwnerID     string  `json:"owner_id"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// DebtRecord mirrors a row in the debts table.
type DebtRecord struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Person      string  `json:"person"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	IsPaid      bool    `json:"is_paid"`
	OwnerID     string  `json:"owner_id"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// UserRecord mirrors the auth provider's user shape.
type UserRecord struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}
