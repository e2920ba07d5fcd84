package domain

// User is an authenticated owner of accounts, transactions and debts.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt string
}
