package datasource

import "context"

// Auth is the authentication sub-interface of the backend.
//
// CurrentUser returns (nil, nil) when no session is active. AuthStateChanges
// is the one genuinely continuous stream in the system: the returned channel
// receives the new user on sign-in/sign-up and nil on sign-out, for the
// lifetime of the data source.
type Auth interface {
	SignUp(ctx context.Context, email, password string) (*UserRecord, error)
	SignIn(ctx context.Context, email, password string) (*UserRecord, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*UserRecord, error)
	AuthStateChanges() <-chan *UserRecord
}

// Rows is the row-storage sub-interface of the backend, one method group per
// table. Get* methods return (nil, nil) when the row does not exist; deletes
// succeed whether or not the row existed.
type Rows interface {
	ListAccounts(ctx context.Context, ownerID string) ([]AccountRecord, error)
	GetAccount(ctx context.Context, id string) (*AccountRecord, error)
	InsertAccount(ctx context.Context, rec AccountRecord) (*AccountRecord, error)
	UpdateAccount(ctx context.Context, rec AccountRecord) (*AccountRecord, error)
	DeleteAccount(ctx context.Context, id string) error

	ListTransactions(ctx context.Context, ownerID string) ([]TransactionRecord, error)
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]TransactionRecord, error)
	GetTransaction(ctx context.Context, id string) (*TransactionRecord, error)
	InsertTransaction(ctx context.Context, rec TransactionRecord) (*TransactionRecord, error)
	DeleteTransaction(ctx context.Context, id string) error

	ListDebts(ctx context.Context, ownerID string) ([]DebtRecord, error)
	ListDebtsByType(ctx context.Context, ownerID, debtType string) ([]DebtRecord, error)
	InsertDebt(ctx context.Context, rec DebtRecord) (*DebtRecord, error)
	UpdateDebt(ctx context.Context, rec DebtRecord) (*DebtRecord, error)
	MarkDebtPaid(ctx context.Context, id string) error
	DeleteDebt(ctx context.Context, id string) error
}

// AtomicRows is an optional capability for backends that can write a
// transaction row and the resulting account balance inside one storage
// transaction, closing the partial-failure window of the two-step write.
type AtomicRows interface {
	InsertTransactionApplyingBalance(ctx context.Context, rec TransactionRecord, accountID string, newBalance float64) (*TransactionRecord, error)
	DeleteTransactionApplyingBalance(ctx context.Context, id, accountID string, newBalance float64) error
}
