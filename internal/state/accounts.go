package state

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/usecase"
)

// AccountsState is the accounts screen snapshot.
type AccountsState struct {
	Loading  bool
	Accounts []domain.Account
	Error    string
	Success  string
}

// AccountsStore drives the accounts list screen. Every successful mutation
// re-fetches the list from the backend; there is no optimistic patching.
type AccountsStore struct {
	*Store[AccountsState]

	accounts *usecase.AccountUseCase
	ids      usecase.IDGenerator
}

func NewAccountsStore(
	accounts *usecase.AccountUseCase,
	ids usecase.IDGenerator,
	log zerolog.Logger,
	onCommand func(string),
) *AccountsStore {
	return &AccountsStore{
		Store:    NewStore(AccountsState{}, log.With().Str("store", "accounts").Logger(), onCommand),
		accounts: accounts,
		ids:      ids,
	}
}

// Load fetches the owner's accounts.
func (st *AccountsStore) Load(ownerID string) {
	st.dispatch("load_accounts", func(ctx context.Context) {
		st.load(ctx, ownerID)
	})
}

// Create builds a new account from the form fields.
func (st *AccountsStore) Create(
	ownerID, name string,
	accountType domain.AccountType,
	balance decimal.Decimal,
	institution string,
) {
	st.dispatch("create_account", func(ctx context.Context) {
		st.beginMutation()

		account := domain.Account{
			ID:          st.ids.Generate(),
			Name:        name,
			Type:        accountType,
			Balance:     balance,
			Currency:    domain.DefaultCurrency,
			Institution: institution,
			OwnerID:     ownerID,
		}

		res := st.accounts.CreateAccount(ctx, account)
		st.settle(ctx, ownerID, "Cuenta creada exitosamente", res.IsSuccess(), res.Message())
	})
}

// Update saves edits to an existing account.
func (st *AccountsStore) Update(ownerID string, account domain.Account) {
	st.dispatch("update_account", func(ctx context.Context) {
		st.beginMutation()

		res := st.accounts.UpdateAccount(ctx, account)
		st.settle(ctx, ownerID, "Cuenta actualizada exitosamente", res.IsSuccess(), res.Message())
	})
}

// Delete removes an account.
func (st *AccountsStore) Delete(ownerID, accountID string) {
	st.dispatch("delete_account", func(ctx context.Context) {
		st.beginMutation()

		res := st.accounts.DeleteAccount(ctx, accountID)
		st.settle(ctx, ownerID, "Cuenta eliminada exitosamente", res.IsSuccess(), res.Message())
	})
}

// ClearMessages resets the transient error and success text.
func (st *AccountsStore) ClearMessages() {
	st.dispatch("clear_messages", func(context.Context) {
		st.update(func(s AccountsState) AccountsState {
			s.Error = ""
			s.Success = ""
			return s
		})
	})
}

func (st *AccountsStore) load(ctx context.Context, ownerID string) {
	st.update(func(s AccountsState) AccountsState {
		s.Loading = true
		s.Error = ""
		return s
	})

	fold(st.accounts.GetAccounts(ctx, ownerID),
		func(accounts []domain.Account) {
			st.update(func(s AccountsState) AccountsState {
				s.Accounts = accounts
				s.Loading = false
				return s
			})
		},
		func(message string) {
			st.update(func(s AccountsState) AccountsState {
				s.Error = message
				s.Loading = false
				return s
			})
		},
		func() {
			st.update(func(s AccountsState) AccountsState {
				s.Loading = true
				return s
			})
		},
	)
}

func (st *AccountsStore) beginMutation() {
	st.update(func(s AccountsState) AccountsState {
		s.Loading = true
		s.Error = ""
		return s
	})
}

// settle finishes a mutation command: a success records the message and
// re-fetches the list, a failure surfaces the error as-is.
func (st *AccountsStore) settle(ctx context.Context, ownerID, successMsg string, ok bool, errMsg string) {
	if ok {
		st.update(func(s AccountsState) AccountsState {
			s.Success = successMsg
			s.Loading = false
			return s
		})
		st.load(ctx, ownerID)
		return
	}

	st.update(func(s AccountsState) AccountsState {
		s.Error = errMsg
		s.Loading = false
		return s
	})
}
