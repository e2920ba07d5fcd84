package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/result"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Account]
	GetByID(ctx context.Context, id string) result.Result[domain.Account]
	Create(ctx context.Context, account domain.Account) result.Result[domain.Account]
	Update(ctx context.Context, account domain.Account) result.Result[domain.Account]
	Delete(ctx context.Context, id string) result.Result[result.Unit]
	Snapshots(ctx context.Context, ownerID string) <-chan []domain.Account
}

// TransactionRepository defines data access for transactions.
//
// CanApplyAtomically advertises whether the backend can combine the
// transaction write with the account balance update; when it cannot, the
// use case falls back to the two-step write and its documented
// partial-failure window.
type TransactionRepository interface {
	GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Transaction]
	GetByAccount(ctx context.Context, accountID string) result.Result[[]domain.Transaction]
	GetByID(ctx context.Context, id string) result.Result[domain.Transaction]
	Create(ctx context.Context, tx domain.Transaction) result.Result[domain.Transaction]
	Delete(ctx context.Context, id string) result.Result[result.Unit]
	CanApplyAtomically() bool
	CreateAndApplyBalance(ctx context.Context, tx domain.Transaction, newBalance decimal.Decimal) result.Result[domain.Transaction]
	DeleteAndApplyBalance(ctx context.Context, id, accountID string, newBalance decimal.Decimal) result.Result[result.Unit]
	Snapshots(ctx context.Context, ownerID string) <-chan []domain.Transaction
}

// DebtRepository defines data access for debts.
type DebtRepository interface {
	GetAll(ctx context.Context, ownerID string) result.Result[[]domain.Debt]
	GetByType(ctx context.Context, ownerID string, debtType domain.DebtType) result.Result[[]domain.Debt]
	Create(ctx context.Context, debt domain.Debt) result.Result[domain.Debt]
	Update(ctx context.Context, debt domain.Debt) result.Result[domain.Debt]
	MarkPaid(ctx context.Context, id string) result.Result[result.Unit]
	Delete(ctx context.Context, id string) result.Result[result.Unit]
	Snapshots(ctx context.Context, ownerID string) <-chan []domain.Debt
}

// UserRepository defines access to the auth provider.
type UserRepository interface {
	SignUp(ctx context.Context, email, password string) result.Result[domain.User]
	SignIn(ctx context.Context, email, password string) result.Result[domain.User]
	SignOut(ctx context.Context) result.Result[result.Unit]
	Current(ctx context.Context) result.Result[*domain.User]
	AuthStateChanges() <-chan *domain.User
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time in the application time zone. Day-bucketed
// aggregations depend on it so tests can pin the calendar day.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a SystemClock in loc (UTC when nil).
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}

	return &SystemClock{loc: loc}
}

// Now returns the current time in the clock's location.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
