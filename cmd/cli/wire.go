package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/adapter/datasource/memory"
	dspostgres "github.com/vecopay/vecopay/internal/adapter/datasource/postgres"
	"github.com/vecopay/vecopay/internal/adapter/datasource/supabase"
	"github.com/vecopay/vecopay/internal/adapter/repository"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/infrastructure/config"
	"github.com/vecopay/vecopay/internal/infrastructure/logger"
	"github.com/vecopay/vecopay/internal/infrastructure/metrics"
	"github.com/vecopay/vecopay/internal/infrastructure/postgres"
	"github.com/vecopay/vecopay/internal/state"
	"github.com/vecopay/vecopay/internal/usecase"
)

// app wires the full stack for one CLI invocation: data source, repositories,
// use cases and the per-screen stores, all running until Close.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	users *usecase.UserUseCase

	Auth     *state.AuthStore
	Accounts *state.AccountsStore
	History  *state.HistoryStore
	Debts    *state.DebtsStore
	Home     *state.HomeStore

	pool   *pgxpool.Pool
	cancel context.CancelFunc
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	m := metrics.New(prometheus.NewRegistry())

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", cfg.Timezone, err)
	}

	a := &app{cfg: cfg, log: log}

	var (
		auth datasource.Auth
		rows datasource.Rows
	)
	switch cfg.Backend {
	case config.BackendSupabase:
		client := supabase.NewClient(supabase.Config{
			BaseURL:         cfg.SupabaseURL,
			AnonKey:         cfg.SupabaseAnonKey,
			SessionFile:     cfg.SessionFile,
			Timeout:         cfg.HTTPTimeout,
			RetryMaxElapsed: cfg.RetryMaxElapsed,
		}, log, m)
		auth, rows = client, client

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
			pool.Close()
			return nil, err
		}
		store := dspostgres.NewStore(pool, log, m)
		auth, rows = store, store
		a.pool = pool

	case config.BackendMemory:
		store := memory.NewStore()
		auth, rows = store, store
	}

	userRepo := repository.NewUserRepository(auth)
	accountRepo := repository.NewAccountRepository(rows)
	transactionRepo := repository.NewTransactionRepository(rows)
	debtRepo := repository.NewDebtRepository(rows)

	idGen := repository.NewUUIDGenerator()
	clock := usecase.NewSystemClock(loc)

	userUC := usecase.NewUserUseCase(userRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, accountRepo, clock, log)
	transactionUC.OnBalanceFailure(m.BalanceUpdateFailures.Inc)
	debtUC := usecase.NewDebtUseCase(debtRepo)

	onCommand := func(name string) {
		m.StoreCommands.WithLabelValues(name).Inc()
	}

	a.users = userUC
	a.Auth = state.NewAuthStore(userUC, log, onCommand)
	a.Accounts = state.NewAccountsStore(accountUC, idGen, log, onCommand)
	a.History = state.NewHistoryStore(transactionUC, idGen, clock, log, onCommand)
	a.Debts = state.NewDebtsStore(debtUC, idGen, clock, log, onCommand)
	a.Home = state.NewHomeStore(accountUC, transactionUC, log, onCommand)

	storeCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.Auth.Start(storeCtx)
	a.Accounts.Start(storeCtx)
	a.History.Start(storeCtx)
	a.Debts.Start(storeCtx)
	a.Home.Start(storeCtx)

	return a, nil
}

// CurrentUser resolves the signed-in user or fails with a sign-in hint.
func (a *app) CurrentUser(ctx context.Context) (*domain.User, error) {
	res := a.users.CurrentUser(ctx)
	if res.IsError() {
		return nil, fmt.Errorf("%s", res.Message())
	}
	if !res.IsSuccess() || res.Value() == nil {
		return nil, fmt.Errorf("%w, run: vecopay login <email> <password>", domain.ErrNotSignedIn)
	}
	return res.Value(), nil
}

func (a *app) Close() {
	a.cancel()
	if a.pool != nil {
		a.pool.Close()
	}
}
