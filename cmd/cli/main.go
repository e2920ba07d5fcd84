package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/state"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vecopay",
		Short:        "VecoPay personal finance CLI",
		Long:         `Track accounts, transactions and debts against a VecoPay backend.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		signupCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		accountsCmd(),
		txCmd(),
		debtsCmd(),
		summaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <email> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Auth.SignUp(args[0], args[1])
			app.Auth.Flush()

			s := app.Auth.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}
			fmt.Printf("Signed up as %s\n", s.User.Email)
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Auth.SignIn(args[0], args[1])
			app.Auth.Flush()

			s := app.Auth.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}
			fmt.Printf("Signed in as %s\n", s.User.Email)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Auth.SignOut()
			app.Auth.Flush()

			if s := app.Auth.State(); s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
}

func accountsCmd() *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Accounts.Load(user.ID)
			app.Accounts.Flush()

			s := app.Accounts.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}
			for _, a := range s.Accounts {
				fmt.Printf("%s  %-20s %-12s %s %s\n", a.ID, a.Name, a.Type, a.Currency, a.Balance.StringFixed(2))
			}
			return nil
		},
	}

	var (
		name        string
		accountType string
		balance     string
		institution string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			opening, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("invalid balance %q", balance)
			}

			app.Accounts.Create(user.ID, name, domain.AccountType(accountType), opening, institution)
			app.Accounts.Flush()

			return reportMutation(app.Accounts.State().Error, app.Accounts.State().Success)
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "account name")
	addCmd.Flags().StringVar(&accountType, "type", string(domain.AccountTypeCash), "account type (cash, bank_account, savings, credit_card)")
	addCmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	addCmd.Flags().StringVar(&institution, "institution", "", "institution name")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Accounts.Delete(user.ID, args[0])
			app.Accounts.Flush()

			return reportMutation(app.Accounts.State().Error, app.Accounts.State().Success)
		},
	}

	accountsCmd.AddCommand(listCmd, addCmd, rmCmd)
	return accountsCmd
}

func txCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.History.Load(user.ID)
			app.History.SetFilter(state.TransactionFilter(filter))
			app.History.Flush()

			s := app.History.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}
			for _, t := range s.Filtered {
				sign := "+"
				if t.Type == domain.TransactionExpense {
					sign = "-"
				}
				fmt.Printf("%s  %s  %s%s  %-10s %s\n", t.ID, t.Date, sign, t.Amount.StringFixed(2), t.Category, t.Description)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&filter, "filter", string(state.FilterAll), "all, income or expense")

	var (
		amount      string
		txType      string
		category    string
		description string
		accountID   string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			app.History.Create(user.ID, value, domain.TransactionType(txType), category, description, accountID)
			app.History.Flush()

			return reportMutation(app.History.State().Error, app.History.State().Success)
		},
	}
	addCmd.Flags().StringVar(&amount, "amount", "", "amount, strictly positive")
	addCmd.Flags().StringVar(&txType, "type", string(domain.TransactionExpense), "income or expense")
	addCmd.Flags().StringVar(&category, "category", "", "category label")
	addCmd.Flags().StringVar(&description, "description", "", "description")
	addCmd.Flags().StringVar(&accountID, "account", "", "account id")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.History.Delete(user.ID, args[0])
			app.History.Flush()

			return reportMutation(app.History.State().Error, app.History.State().Success)
		},
	}

	txCmd.AddCommand(listCmd, addCmd, rmCmd)
	return txCmd
}

func debtsCmd() *cobra.Command {
	debtsCmd := &cobra.Command{
		Use:   "debts",
		Short: "Debt operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List debts and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Debts.Load(user.ID)
			app.Debts.Flush()

			s := app.Debts.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}

			fmt.Printf("I owe (total %s):\n", s.TotalIOwe.StringFixed(2))
			printDebts(s.IOwe)
			fmt.Printf("They owe me (total %s):\n", s.TotalTheyOwe.StringFixed(2))
			printDebts(s.TheyOwe)
			return nil
		},
	}

	var (
		amount      string
		debtType    string
		person      string
		description string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a debt",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}

			app.Debts.Create(user.ID, value, domain.DebtType(debtType), person, description)
			app.Debts.Flush()

			return reportMutation(app.Debts.State().Error, app.Debts.State().Success)
		},
	}
	addCmd.Flags().StringVar(&amount, "amount", "", "amount, strictly positive")
	addCmd.Flags().StringVar(&debtType, "type", string(domain.DebtIOwe), "i_owe or they_owe")
	addCmd.Flags().StringVar(&person, "person", "", "the other party")
	addCmd.Flags().StringVar(&description, "description", "", "description")

	paidCmd := &cobra.Command{
		Use:   "paid <id>",
		Short: "Mark a debt as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Debts.MarkPaid(user.ID, args[0])
			app.Debts.Flush()

			return reportMutation(app.Debts.State().Error, app.Debts.State().Success)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Debts.Delete(user.ID, args[0])
			app.Debts.Flush()

			return reportMutation(app.Debts.State().Error, app.Debts.State().Success)
		},
	}

	debtsCmd.AddCommand(listCmd, addCmd, paidCmd, rmCmd)
	return debtsCmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard: balance, today's activity, recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			app.Home.Load(user.ID)
			app.Home.Flush()

			s := app.Home.State()
			if s.Error != "" {
				return fmt.Errorf("%s", s.Error)
			}

			fmt.Printf("Total balance:  %s\n", s.TotalBalance.StringFixed(2))
			fmt.Printf("Today income:   %s\n", s.TodayIncome.StringFixed(2))
			fmt.Printf("Today expenses: %s\n", s.TodayExpenses.StringFixed(2))
			fmt.Println("Accounts:")
			for _, a := range s.Accounts {
				fmt.Printf("  %-20s %s %s\n", a.Name, a.Currency, a.Balance.StringFixed(2))
			}
			fmt.Println("Recent transactions:")
			for _, t := range s.Recent {
				fmt.Printf("  %s  %-8s %s  %s\n", t.Date, t.Type, t.Amount.StringFixed(2), t.Description)
			}
			return nil
		},
	}
}

func printDebts(debts []domain.Debt) {
	for _, d := range debts {
		paid := ""
		if d.IsPaid {
			paid = " (paid)"
		}
		fmt.Printf("  %s  %-15s %s  %s%s\n", d.ID, d.Person, d.Amount.StringFixed(2), d.Description, paid)
	}
}

func reportMutation(errMsg, successMsg string) error {
	if errMsg != "" {
		return fmt.Errorf("%s", errMsg)
	}
	fmt.Println(successMsg)
	return nil
}
