// Command console is the terminal front end for the Kampo Mido backend. It
// wires the session store, the shared API client, and the resource façades,
// then dispatches one subcommand per invocation. The session file keeps the
// bearer token between runs, so "console login" once and query after.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kampomido/internal/api"
	"kampomido/internal/auth"
	"kampomido/internal/customers"
	"kampomido/internal/dashboard"
	"kampomido/internal/deposits"
	"kampomido/internal/goldrate"
	"kampomido/internal/kyc"
	"kampomido/internal/notifications"
	"kampomido/internal/platform/config"
	"kampomido/internal/platform/logger"
	"kampomido/internal/platform/metrics"
	"kampomido/internal/reports"
	"kampomido/internal/session"
	"kampomido/internal/statements"
	"kampomido/internal/toast"
	"kampomido/internal/users"
	"kampomido/internal/view"
	"kampomido/internal/withdrawals"
	dErrors "kampomido/pkg/domain-errors"
)

const usage = `usage: console <command> [args]

  login <email> <password>       sign in and persist the session
  logout                         sign out and clear the session
  whoami                         show the signed-in user
  theme <light|dark>             set the display theme
  summary [watch]                admin dashboard summary, optionally polling
  customers                      list customers
  users                          list back-office users
  deposits [status]              list deposits, optionally by status
  deposit-delete <id> <status>   delete a deposit
  withdrawals [status]           list withdrawals, optionally by status
  kyc [status]                   list kyc requests
  gold-rate [set <rate>]         show or update the gold rate
  notifications [read-all]       list notifications or mark all read
  statements                     list the customer's statements
  statement-dl <id> <format>     download a statement (pdf or excel)
  ledger [status]                transaction ledger report
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.FromEnv()
	log := logger.New()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if addr := os.Getenv("KAMPO_METRICS_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("metrics listener failed", "error", err)
			}
		}()
	}

	sess := session.NewStore(cfg.SessionFile)
	if _, ok := sess.User(); !ok {
		sess.SetTheme(cfg.Theme)
	}

	toasts := toast.NewCenter(toast.WithOnChange(renderToasts))
	defer toasts.Close()

	client := api.New(cfg.APIBaseURL, sess,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
		api.WithMetrics(m),
		api.WithOnUnauthorized(func() {
			toasts.Error("Session expired, please sign in again")
		}),
	)

	app := &app{
		cfg:           cfg,
		sess:          sess,
		toasts:        toasts,
		auth:          auth.NewService(client, sess, log),
		users:         users.NewService(client),
		customers:     customers.NewService(client),
		deposits:      deposits.NewService(client),
		withdrawals:   withdrawals.NewService(client),
		kyc:           kyc.NewService(client),
		goldRate:      goldrate.NewService(client),
		notifications: notifications.NewService(client, audienceFor(sess), log),
		statements:    statements.NewService(client, log),
		reports:       reports.NewService(client),
		dashboard:     dashboard.NewService(client, log),
	}

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, dErrors.UserMessage(err, "Something went wrong"))
		os.Exit(1)
	}
}

func audienceFor(sess *session.Store) notifications.Audience {
	if u, ok := sess.User(); ok && u.Role == "admin" {
		return notifications.AudienceAdmin
	}
	return notifications.AudienceCustomer
}

func renderToasts(active []toast.Toast) {
	for _, t := range active {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", t.Type, t.Message)
	}
}

type app struct {
	cfg           config.Client
	sess          *session.Store
	toasts        *toast.Center
	auth          *auth.Service
	users         *users.Service
	customers     *customers.Service
	deposits      *deposits.Service
	withdrawals   *withdrawals.Service
	kyc           *kyc.Service
	goldRate      *goldrate.Service
	notifications *notifications.Service
	statements    *statements.Service
	reports       *reports.Service
	dashboard     *dashboard.Service
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		if len(args) < 2 {
			return dErrors.New(dErrors.CodeValidation, "login needs an email and a password")
		}
		user, err := a.auth.Login(ctx, auth.Credentials{Email: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		a.toasts.Success("Signed in as " + user.Name)
		return nil

	case "logout":
		if err := a.auth.Logout(ctx); err != nil {
			return err
		}
		a.toasts.Info("Signed out")
		return nil

	case "whoami":
		user, ok := a.sess.User()
		if !ok {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		if exp, ok := a.sess.TokenExpiry(); ok {
			fmt.Printf("token expires %s\n", exp.Format(time.RFC3339))
		}
		return nil

	case "theme":
		if len(args) < 1 {
			fmt.Println(a.sess.Theme())
			return nil
		}
		return a.sess.SetTheme(args[0])

	case "summary":
		if len(args) > 0 && args[0] == "watch" {
			a.dashboard.Poll(ctx, a.cfg.DashboardPoll, printSummary)
			return nil
		}
		snap, err := a.dashboard.Summary(ctx)
		if err != nil {
			return err
		}
		printSummary(snap)
		return nil

	case "customers":
		return listPage(ctx, a.toasts, func(ctx context.Context) ([]customers.ViewModel, error) {
			records, err := a.customers.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			return customers.ViewModels(records), nil
		}, "Could not load customers", "ID\tNAME\tEMAIL\tGOLD (g)\tKYC", func(tw *tabwriter.Writer, vm customers.ViewModel) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", vm.ID, vm.Name, vm.Email, vm.GoldBalance, vm.KYCStatus)
		})

	case "users":
		return listPage(ctx, a.toasts, func(ctx context.Context) ([]users.ViewModel, error) {
			records, err := a.users.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			return users.ViewModels(records), nil
		}, "Could not load users", "ID\tNAME\tEMAIL\tROLE", func(tw *tabwriter.Writer, vm users.ViewModel) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", vm.ID, vm.Name, vm.Email, vm.Role)
		})

	case "deposits":
		filters := deposits.ListFilters{}
		if len(args) > 0 {
			filters.Status = args[0]
		}
		return listPage(ctx, a.toasts, func(ctx context.Context) ([]deposits.ViewModel, error) {
			records, err := a.deposits.GetAll(ctx, filters)
			if err != nil {
				return nil, err
			}
			return deposits.ViewModels(records), nil
		}, "Could not load deposits", "ID\tCUSTOMER\tAMOUNT\tGOLD (g)\tSTATUS", func(tw *tabwriter.Writer, vm deposits.ViewModel) {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.3f\t%s\n", vm.ID, vm.CustomerName, vm.Amount, vm.Gold, vm.StatusLabel)
		})

	case "deposit-delete":
		if len(args) < 2 {
			return dErrors.New(dErrors.CodeValidation, "deposit-delete needs an id and the current status")
		}
		if err := a.deposits.Delete(ctx, args[0], args[1]); err != nil {
			return err
		}
		a.toasts.Success("Deposit deleted")
		return nil

	case "withdrawals":
		filters := withdrawals.ListFilters{}
		if len(args) > 0 {
			filters.Status = args[0]
		}
		return listPage(ctx, a.toasts, func(ctx context.Context) ([]withdrawals.ViewModel, error) {
			records, err := a.withdrawals.GetAll(ctx, filters)
			if err != nil {
				return nil, err
			}
			return withdrawals.ViewModels(records), nil
		}, "Could not load withdrawals", "ID\tCUSTOMER\tAMOUNT\tGOLD (g)\tSTATUS", func(tw *tabwriter.Writer, vm withdrawals.ViewModel) {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.3f\t%s\n", vm.ID, vm.CustomerName, vm.Amount, vm.Gold, vm.StatusLabel)
		})

	case "kyc":
		status := ""
		if len(args) > 0 {
			status = args[0]
		}
		return listPage(ctx, a.toasts, func(ctx context.Context) ([]kyc.ViewModel, error) {
			records, err := a.kyc.GetAll(ctx, status)
			if err != nil {
				return nil, err
			}
			return kyc.ViewModels(records), nil
		}, "Could not load kyc requests", "ID\tCUSTOMER\tDOCS\tSTATUS", func(tw *tabwriter.Writer, vm kyc.ViewModel) {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", vm.ID, vm.CustomerName, vm.Documents, vm.StatusLabel)
		})

	case "gold-rate":
		if len(args) >= 2 && args[0] == "set" {
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return dErrors.New(dErrors.CodeValidation, "rate must be a number")
			}
			updated, err := a.goldRate.Update(ctx, rate)
			if err != nil {
				return err
			}
			a.toasts.Success("Gold rate updated")
			fmt.Printf("%.2f per gram\n", updated.PerGram())
			return nil
		}
		rate, err := a.goldRate.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f per gram (updated %s)\n", rate.PerGram(), rate.UpdatedAt)
		return nil

	case "notifications":
		if len(args) > 0 && args[0] == "read-all" {
			if err := a.notifications.MarkAllAsRead(ctx); err != nil {
				return err
			}
			a.toasts.Success("All notifications marked read")
			return nil
		}
		items, err := a.notifications.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, n := range items {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s [%s] %s: %s\n", marker, n.Type, n.Title, n.Message)
		}
		return nil

	case "statements":
		items, err := a.statements.GetAll(ctx)
		if err != nil {
			return err
		}
		tw := newTable()
		fmt.Fprintln(tw, "ID\tPERIOD\tOPENING (g)\tCLOSING (g)")
		for _, vm := range items {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\n", vm.ID, vm.Period, vm.OpeningGold, vm.ClosingGold)
		}
		return tw.Flush()

	case "statement-dl":
		if len(args) < 2 {
			return dErrors.New(dErrors.CodeValidation, "statement-dl needs an id and a format")
		}
		dl, err := a.statements.Download(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		saved, err := dl.SaveTo(a.cfg.DownloadDir)
		if err != nil {
			return err
		}
		fmt.Println("saved", saved)
		return nil

	case "ledger":
		filters := reports.LedgerFilters{}
		if len(args) > 0 {
			filters.Status = args[0]
		}
		entries, err := a.reports.Ledger(ctx, filters)
		if err != nil {
			return err
		}
		tw := newTable()
		fmt.Fprintln(tw, "DATE\tTYPE\tCUSTOMER\tAMOUNT\tGOLD (g)\tSTATUS")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.3f\t%s\n", e.Date, e.Type, e.CustomerName, e.Amount, e.Gold, e.StatusLabel)
		}
		return tw.Flush()

	default:
		fmt.Fprint(os.Stderr, usage)
		return dErrors.New(dErrors.CodeValidation, "unknown command "+command)
	}
}

// listPage drives a table command through the shared page lifecycle: the
// fetch settles into success, empty, or error, and rendering branches on the
// page state instead of on the raw error.
func listPage[T any](ctx context.Context, toasts toast.Sink, fetch func(context.Context) ([]T, error), failureMessage, header string, row func(tw *tabwriter.Writer, vm T)) error {
	page := view.NewPage[T](toasts)
	page.Load(ctx, fetch, failureMessage)

	switch page.State() {
	case view.StateError:
		return errors.New(page.ErrorMessage())
	case view.StateEmpty:
		fmt.Println("(none)")
		return nil
	}

	tw := newTable()
	fmt.Fprintln(tw, header)
	for _, vm := range page.Items() {
		row(tw, vm)
	}
	return tw.Flush()
}

func printSummary(snap dashboard.Snapshot) {
	s := snap.Summary
	fmt.Printf("customers %d | pending deposits %d | pending withdrawals %d | pending kyc %d\n",
		s.TotalCustomers, s.PendingDeposits, s.PendingWithdrawals, s.PendingKYC)
	fmt.Printf("gold held %.3fg | rate %.2f/g", s.TotalGoldHeld, s.GoldRate)
	if snap.Stale {
		fmt.Print(" (stale)")
	}
	fmt.Println()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
