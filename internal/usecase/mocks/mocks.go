// Package mocks provides hand-written fakes for the usecase interfaces.
// Each mock is a working in-memory implementation whose methods can be
// overridden per test through the *Func fields, and counts every call so
// tests can assert that validation short-circuits before any data access.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	calls    int

	GetAllFunc  func(ctx context.Context, ownerID string) result.Result[[]domain.Account]
	GetByIDFunc func(ctx context.Context, id string) result.Result[domain.Account]
	CreateFunc  func(ctx context.Context, account domain.Account) result.Result[domain.Account]
	UpdateFunc  func(ctx context.Context, account domain.Account) result.Result[domain.Account]
	DeleteFunc  func(ctx context.Context, id string) result.Result[result.Unit]
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]domain.Account)}
}

// Calls reports how many repository methods have been invoked.
func (m *MockAccountRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockAccountRepository) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockAccountRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Account] {
	m.record()
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return result.Success(out)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) result.Result[domain.Account] {
	m.record()
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return result.Success(a)
	}
	return result.Error[domain.Account](domain.ErrAccountNotFound, "The selected account does not exist")
}

func (m *MockAccountRepository) Create(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	m.record()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return result.Success(account)
}

func (m *MockAccountRepository) Update(ctx context.Context, account domain.Account) result.Result[domain.Account] {
	m.record()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return result.Success(account)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	m.record()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return result.Success(result.Unit{})
}

func (m *MockAccountRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Account {
	out := make(chan []domain.Account, 1)
	res := m.GetAll(ctx, ownerID)
	if res.IsSuccess() {
		out <- res.Value()
	}
	close(out)
	return out
}

// Seed inserts an account without counting the call.
func (m *MockAccountRepository) Seed(account domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

// Stored returns the stored account state, for post-condition checks.
func (m *MockAccountRepository) Stored(id string) (domain.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	return a, ok
}

// MockTransactionRepository is a mock implementation of usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.Mutex
	transactions map[string]domain.Transaction
	calls        int

	Atomic                    bool
	GetAllFunc                func(ctx context.Context, ownerID string) result.Result[[]domain.Transaction]
	GetByAccountFunc          func(ctx context.Context, accountID string) result.Result[[]domain.Transaction]
	GetByIDFunc               func(ctx context.Context, id string) result.Result[domain.Transaction]
	CreateFunc                func(ctx context.Context, tx domain.Transaction) result.Result[domain.Transaction]
	DeleteFunc                func(ctx context.Context, id string) result.Result[result.Unit]
	CreateAndApplyBalanceFunc func(ctx context.Context, tx domain.Transaction, newBalance decimal.Decimal) result.Result[domain.Transaction]
	DeleteAndApplyBalanceFunc func(ctx context.Context, id, accountID string, newBalance decimal.Decimal) result.Result[result.Unit]
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]domain.Transaction)}
}

func (m *MockTransactionRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockTransactionRepository) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockTransactionRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Transaction] {
	m.record()
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.transactions {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return result.Success(out)
}

func (m *MockTransactionRepository) GetByAccount(ctx context.Context, accountID string) result.Result[[]domain.Transaction] {
	m.record()
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return result.Success(out)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) result.Result[domain.Transaction] {
	m.record()
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.transactions[id]; ok {
		return result.Success(t)
	}
	return result.Error[domain.Transaction](domain.ErrTransactionNotFound, "The transaction does not exist")
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx domain.Transaction) result.Result[domain.Transaction] {
	m.record()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
	return result.Success(tx)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	m.record()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return result.Success(result.Unit{})
}

func (m *MockTransactionRepository) CanApplyAtomically() bool {
	return m.Atomic
}

func (m *MockTransactionRepository) CreateAndApplyBalance(ctx context.Context, tx domain.Transaction, newBalance decimal.Decimal) result.Result[domain.Transaction] {
	m.record()
	if m.CreateAndApplyBalanceFunc != nil {
		return m.CreateAndApplyBalanceFunc(ctx, tx, newBalance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
	return result.Success(tx)
}

func (m *MockTransactionRepository) DeleteAndApplyBalance(ctx context.Context, id, accountID string, newBalance decimal.Decimal) result.Result[result.Unit] {
	m.record()
	if m.DeleteAndApplyBalanceFunc != nil {
		return m.DeleteAndApplyBalanceFunc(ctx, id, accountID, newBalance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return result.Success(result.Unit{})
}

func (m *MockTransactionRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Transaction {
	out := make(chan []domain.Transaction, 1)
	res := m.GetAll(ctx, ownerID)
	if res.IsSuccess() {
		out <- res.Value()
	}
	close(out)
	return out
}

// Seed inserts a transaction without counting the call.
func (m *MockTransactionRepository) Seed(tx domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
}

// Stored returns the stored transaction state, for post-condition checks.
func (m *MockTransactionRepository) Stored(id string) (domain.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	return t, ok
}

// MockDebtRepository is a mock implementation of usecase.DebtRepository.
type MockDebtRepository struct {
	mu    sync.Mutex
	debts map[string]domain.Debt
	calls int

	GetAllFunc    func(ctx context.Context, ownerID string) result.Result[[]domain.Debt]
	GetByTypeFunc func(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[[]domain.Debt]
	CreateFunc    func(ctx context.Context, debt domain.Debt) result.Result[domain.Debt]
	UpdateFunc    func(ctx context.Context, debt domain.Debt) result.Result[domain.Debt]
	MarkPaidFunc  func(ctx context.Context, id string) result.Result[result.Unit]
	DeleteFunc    func(ctx context.Context, id string) result.Result[result.Unit]
}

func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{debts: make(map[string]domain.Debt)}
}

func (m *MockDebtRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockDebtRepository) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockDebtRepository) GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Debt] {
	m.record()
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Debt
	for _, d := range m.debts {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return result.Success(out)
}

func (m *MockDebtRepository) GetByType(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[[]domain.Debt] {
	m.record()
	if m.GetByTypeFunc != nil {
		return m.GetByTypeFunc(ctx, ownerID, debtType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Debt
	for _, d := range m.debts {
		if d.OwnerID == ownerID && d.Type == debtType {
			out = append(out, d)
		}
	}
	return result.Success(out)
}

func (m *MockDebtRepository) Create(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	m.record()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return result.Success(debt)
}

func (m *MockDebtRepository) Update(ctx context.Context, debt domain.Debt) result.Result[domain.Debt] {
	m.record()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return result.Success(debt)
}

func (m *MockDebtRepository) MarkPaid(ctx context.Context, id string) result.Result[result.Unit] {
	m.record()
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.debts[id]; ok {
		d.IsPaid = true
		m.debts[id] = d
	}
	return result.Success(result.Unit{})
}

func (m *MockDebtRepository) Delete(ctx context.Context, id string) result.Result[result.Unit] {
	m.record()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.debts, id)
	return result.Success(result.Unit{})
}

func (m *MockDebtRepository) Snapshots(ctx context.Context, ownerID string) <-chan []domain.Debt {
	out := make(chan []domain.Debt, 1)
	res := m.GetAll(ctx, ownerID)
	if res.IsSuccess() {
		out <- res.Value()
	}
	close(out)
	return out
}

// Seed inserts a debt without counting the call.
func (m *MockDebtRepository) Seed(debt domain.Debt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
}

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mu      sync.Mutex
	calls   int
	current *domain.User
	changes chan *domain.User

	SignUpFunc  func(ctx context.Context, email, password string) result.Result[domain.User]
	SignInFunc  func(ctx context.Context, email, password string) result.Result[domain.User]
	SignOutFunc func(ctx context.Context) result.Result[result.Unit]
	CurrentFunc func(ctx context.Context) result.Result[*domain.User]
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{changes: make(chan *domain.User, 8)}
}

func (m *MockUserRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockUserRepository) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockUserRepository) SignUp(ctx context.Context, email, password string) result.Result[domain.User] {
	m.record()
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password)
	}
	user := domain.User{ID: "user-1", Email: email}
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	m.changes <- &user
	return result.Success(user)
}

func (m *MockUserRepository) SignIn(ctx context.Context, email, password string) result.Result[domain.User] {
	m.record()
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	user := domain.User{ID: "user-1", Email: email}
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	m.changes <- &user
	return result.Success(user)
}

func (m *MockUserRepository) SignOut(ctx context.Context) result.Result[result.Unit] {
	m.record()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.changes <- nil
	return result.Success(result.Unit{})
}

func (m *MockUserRepository) Current(ctx context.Context) result.Result[*domain.User] {
	m.record()
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return result.Success(m.current)
}

func (m *MockUserRepository) AuthStateChanges() <-chan *domain.User {
	return m.changes
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a mock implementation of usecase.Clock pinned to a fixed time.
type MockClock struct {
	Fixed time.Time
}

func NewMockClock(fixed time.Time) *MockClock {
	return &MockClock{Fixed: fixed}
}

func (m *MockClock) Now() time.Time {
	return m.Fixed
}
