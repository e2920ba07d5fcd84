// Package memory is an in-process datasource implementation backed by maps.
// It serves the demo backend and the repository and store tests; CallCount
// lets tests assert exactly how often the backend was contacted.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/domain"
)

// Store keeps every table in memory. All methods are safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	users        map[string]userEntry // keyed by email
	accounts     map[string]datasource.AccountRecord
	transactions map[string]datasource.TransactionRecord
	debts        map[string]datasource.DebtRecord

	current *datasource.UserRecord
	changes chan *datasource.UserRecord

	calls map[string]int

	nextUserID int
}

type userEntry struct {
	record   datasource.UserRecord
	password string
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]userEntry),
		accounts:     make(map[string]datasource.AccountRecord),
		transactions: make(map[string]datasource.TransactionRecord),
		debts:        make(map[string]datasource.DebtRecord),
		changes:      make(chan *datasource.UserRecord, 8),
		calls:        make(map[string]int),
	}
}

// CallCount reports how many times the named operation ran.
func (s *Store) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls reports how many backend operations ran in total.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Store) record(op string) {
	s.calls[op]++
}

func newID(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

// SignUp registers a user keyed by email.
func (s *Store) SignUp(ctx context.Context, email, password string) (*datasource.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("sign_up")

	if _, exists := s.users[email]; exists {
		return nil, domain.ErrEmailTaken
	}

	s.nextUserID++
	user := datasource.UserRecord{ID: newID("user", s.nextUserID), Email: email}
	s.users[email] = userEntry{record: user, password: password}
	s.current = &user
	s.push(&user)
	return &user, nil
}

// SignIn checks the stored password.
func (s *Store) SignIn(ctx context.Context, email, password string) (*datasource.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("sign_in")

	entry, exists := s.users[email]
	if !exists || entry.password != password {
		return nil, domain.ErrInvalidLogin
	}

	user := entry.record
	s.current = &user
	s.push(&user)
	return &user, nil
}

// SignOut drops the session.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("sign_out")

	s.current = nil
	s.push(nil)
	return nil
}

// CurrentUser returns the session user, (nil, nil) when signed out.
func (s *Store) CurrentUser(ctx context.Context) (*datasource.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("current_user")
	return s.current, nil
}

// AuthStateChanges returns the session transition stream.
func (s *Store) AuthStateChanges() <-chan *datasource.UserRecord {
	return s.changes
}

func (s *Store) push(user *datasource.UserRecord) {
	select {
	case s.changes <- user:
	default:
	}
}

// ListAccounts returns the owner's account rows.
func (s *Store) ListAccounts(ctx context.Context, ownerID string) ([]datasource.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_accounts")

	var out []datasource.AccountRecord
	for _, rec := range s.accounts {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetAccount returns one account row, or (nil, nil) when absent.
func (s *Store) GetAccount(ctx context.Context, id string) (*datasource.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get_account")

	if rec, ok := s.accounts[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

// InsertAccount stores an account row.
func (s *Store) InsertAccount(ctx context.Context, rec datasource.AccountRecord) (*datasource.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("insert_account")

	s.accounts[rec.ID] = rec
	return &rec, nil
}

// UpdateAccount rewrites an account row, (nil, nil) when absent.
func (s *Store) UpdateAccount(ctx context.Context, rec datasource.AccountRecord) (*datasource.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("update_account")

	if _, ok := s.accounts[rec.ID]; !ok {
		return nil, nil
	}
	s.accounts[rec.ID] = rec
	return &rec, nil
}

// DeleteAccount removes an account row, absent ids included.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete_account")

	delete(s.accounts, id)
	return nil
}

// ListTransactions returns the owner's transaction rows.
func (s *Store) ListTransactions(ctx context.Context, ownerID string) ([]datasource.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_transactions")

	var out []datasource.TransactionRecord
	for _, rec := range s.transactions {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListTransactionsByAccount returns the rows referencing one account.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string) ([]datasource.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_transactions_by_account")

	var out []datasource.TransactionRecord
	for _, rec := range s.transactions {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetTransaction returns one transaction row, or (nil, nil) when absent.
func (s *Store) GetTransaction(ctx context.Context, id string) (*datasource.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get_transaction")

	if rec, ok := s.transactions[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

// InsertTransaction stores a transaction row.
func (s *Store) InsertTransaction(ctx context.Context, rec datasource.TransactionRecord) (*datasource.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("insert_transaction")

	s.transactions[rec.ID] = rec
	return &rec, nil
}

// DeleteTransaction removes a transaction row, absent ids included.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete_transaction")

	delete(s.transactions, id)
	return nil
}

// ListDebts returns the owner's debt rows.
func (s *Store) ListDebts(ctx context.Context, ownerID string) ([]datasource.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_debts")

	var out []datasource.DebtRecord
	for _, rec := range s.debts {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListDebtsByType returns the owner's debt rows of one type.
func (s *Store) ListDebtsByType(ctx context.Context, ownerID, debtType string) ([]datasource.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list_debts_by_type")

	var out []datasource.DebtRecord
	for _, rec := range s.debts {
		if rec.OwnerID == ownerID && rec.Type == debtType {
			out = append(out, rec)
		}
	}
	return out, nil
}

// InsertDebt stores a debt row.
func (s *Store) InsertDebt(ctx context.Context, rec datasource.DebtRecord) (*datasource.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("insert_debt")

	s.debts[rec.ID] = rec
	return &rec, nil
}

// UpdateDebt rewrites a debt row, (nil, nil) when absent.
func (s *Store) UpdateDebt(ctx context.Context, rec datasource.DebtRecord) (*datasource.DebtRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("update_debt")

	if _, ok := s.debts[rec.ID]; !ok {
		return nil, nil
	}
	s.debts[rec.ID] = rec
	return &rec, nil
}

// MarkDebtPaid flips the paid flag, absent ids included.
func (s *Store) MarkDebtPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("mark_debt_paid")

	if rec, ok := s.debts[id]; ok {
		rec.IsPaid = true
		s.debts[id] = rec
	}
	return nil
}

// DeleteDebt removes a debt row, absent ids included.
func (s *Store) DeleteDebt(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete_debt")

	delete(s.debts, id)
	return nil
}

var (
	_ datasource.Auth = (*Store)(nil)
	_ datasource.Rows = (*Store)(nil)
)
