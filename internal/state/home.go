package state

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/usecase"
)

const recentTransactionCount = 5

// HomeState is the dashboard snapshot.
type HomeState struct {
	Loading       bool
	TotalBalance  decimal.Decimal
	TodayIncome   decimal.Decimal
	TodayExpenses decimal.Decimal
	Accounts      []domain.Account
	Recent        []domain.Transaction
	Error         string
}

// HomeStore drives the dashboard. Load performs five sequential fetches;
// failures of the day totals are tolerated silently, everything else
// surfaces as the screen error.
type HomeStore struct {
	*Store[HomeState]

	accounts     *usecase.AccountUseCase
	transactions *usecase.TransactionUseCase
}

func NewHomeStore(
	accounts *usecase.AccountUseCase,
	transactions *usecase.TransactionUseCase,
	log zerolog.Logger,
	onCommand func(string),
) *HomeStore {
	return &HomeStore{
		Store:        NewStore(HomeState{}, log.With().Str("store", "home").Logger(), onCommand),
		accounts:     accounts,
		transactions: transactions,
	}
}

// Load refreshes every dashboard figure.
func (st *HomeStore) Load(ownerID string) {
	st.dispatch("load_home", func(ctx context.Context) {
		st.update(func(s HomeState) HomeState {
			s.Loading = true
			s.Error = ""
			return s
		})

		if res := st.accounts.TotalBalance(ctx, ownerID); res.IsSuccess() {
			st.update(func(s HomeState) HomeState {
				s.TotalBalance = res.Value()
				return s
			})
		} else if res.IsError() {
			st.update(func(s HomeState) HomeState {
				s.Error = res.Message()
				return s
			})
		}

		if res := st.accounts.GetAccounts(ctx, ownerID); res.IsSuccess() {
			st.update(func(s HomeState) HomeState {
				s.Accounts = res.Value()
				return s
			})
		} else if res.IsError() {
			st.update(func(s HomeState) HomeState {
				s.Error = res.Message()
				return s
			})
		}

		if res := st.transactions.GetTransactions(ctx, ownerID); res.IsSuccess() {
			recent := res.Value()
			sortByDateDesc(recent)
			if len(recent) > recentTransactionCount {
				recent = recent[:recentTransactionCount]
			}
			st.update(func(s HomeState) HomeState {
				s.Recent = recent
				return s
			})
		} else if res.IsError() {
			st.update(func(s HomeState) HomeState {
				s.Error = res.Message()
				return s
			})
		}

		if res := st.transactions.TodayIncome(ctx, ownerID); res.IsSuccess() {
			st.update(func(s HomeState) HomeState {
				s.TodayIncome = res.Value()
				return s
			})
		}

		if res := st.transactions.TodayExpenses(ctx, ownerID); res.IsSuccess() {
			st.update(func(s HomeState) HomeState {
				s.TodayExpenses = res.Value()
				return s
			})
		}

		st.update(func(s HomeState) HomeState {
			s.Loading = false
			return s
		})
	})
}

// Refresh is an alias for Load, kept for the pull-to-refresh gesture.
func (st *HomeStore) Refresh(ownerID string) {
	st.Load(ownerID)
}

// ClearMessages resets the transient error text.
func (st *HomeStore) ClearMessages() {
	st.dispatch("clear_messages", func(context.Context) {
		st.update(func(s HomeState) HomeState {
			s.Error = ""
			return s
		})
	})
}
