package main

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/coordinator"
	"FinTrack/internal/entity"
	"FinTrack/pkg/client"
	websocketPkg "FinTrack/pkg/websocket"
	"errors"
	"flag"
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", os.Getenv("FINTRACK_PASSWORD"), "Password (or FINTRACK_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return errors.New("usage: fintrack register -name NAME -email EMAIL -password PASSWORD")
	}

	user, err := a.api.Register(ctx, auth.CreateUserRequest{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s. Sign in with 'fintrack login -email %s'.\n", user.Email, user.Email)
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", os.Getenv("FINTRACK_PASSWORD"), "Password (or FINTRACK_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("usage: fintrack login -email EMAIL -password PASSWORD")
	}

	res, err := a.api.Login(ctx, auth.LoginUserRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := a.state.SetSession(res.AccessToken, strings.ToLower(strings.TrimSpace(*email))); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(a.out, "Signed in. Session valid for %.0f minutes.\n", res.ExpiresInMinutes)
	return nil
}

func (a *app) runLogout(ctx context.Context, args []string) error {
	if err := a.flagSet("logout").Parse(args); err != nil {
		return err
	}

	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	if err := a.state.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) runWorkplaces(ctx context.Context, args []string) error {
	if err := a.flagSet("workplaces").Parse(args); err != nil {
		return err
	}

	workplaces, err := a.api.Workplaces(ctx)
	if err != nil {
		return err
	}
	if len(workplaces) == 0 {
		fmt.Fprintln(a.out, "No workplaces yet. Create one with 'fintrack create-workplace -name NAME'.")
		return nil
	}

	saved, _ := a.state.Load()
	current, _ := entity.PickCurrent(workplaces, saved)
	if current.ID != saved {
		if err := a.state.Save(current.ID); err != nil {
			a.log.WithError(err).Warn("Failed to save current workplace")
		}
	}

	if email := a.state.Email(); email != "" {
		fmt.Fprintf(a.out, "Signed in as %s\n", email)
	}
	printWorkplaces(a.out, workplaces, current.ID)
	return nil
}

func (a *app) runCreateWorkplace(ctx context.Context, args []string) error {
	fs := a.flagSet("create-workplace")
	name := fs.String("name", "", "Workplace name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" && fs.NArg() > 0 {
		*name = strings.Join(fs.Args(), " ")
	}
	if strings.TrimSpace(*name) == "" {
		return errors.New("usage: fintrack create-workplace -name NAME")
	}

	w, err := a.api.CreateWorkplace(ctx, *name)
	if err != nil {
		return err
	}

	// The first workplace becomes current.
	if saved, _ := a.state.Load(); saved == "" {
		if err := a.state.Save(w.ID); err != nil {
			a.log.WithError(err).Warn("Failed to save current workplace")
		}
	}

	fmt.Fprintf(a.out, "Created workplace %s (%s).\n", w.Name, w.ID)
	return nil
}

func (a *app) runDeactivate(ctx context.Context, args []string) error {
	fs := a.flagSet("deactivate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: fintrack deactivate <workplace id or name>")
	}

	workplaces, err := a.api.Workplaces(ctx)
	if err != nil {
		return err
	}
	target, ok := resolveWorkplace(workplaces, fs.Arg(0))
	if !ok {
		return fmt.Errorf("no active workplace %q", fs.Arg(0))
	}

	if err := a.api.DeactivateWorkplace(ctx, target.ID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deactivated %s. Its history is kept.\n", target.Name)
	return nil
}

func (a *app) runSwitch(ctx context.Context, args []string) error {
	fs := a.flagSet("switch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: fintrack switch <workplace id or name>")
	}

	c, err := a.mount(ctx)
	if err != nil {
		return err
	}

	target, ok := resolveWorkplace(c.View().Workplaces, fs.Arg(0))
	if !ok {
		return fmt.Errorf("no active workplace %q", fs.Arg(0))
	}

	done, err := c.SwitchWorkplace(ctx, target.ID)
	if err != nil {
		return err
	}
	if err := await(ctx, done); err != nil {
		return err
	}

	printView(a.out, c.View())
	return nil
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	kind := fs.String("type", "", "income or expense")
	method := fs.String("method", string(entity.PaymentMethodCash), "Cash or Online")
	amount := fs.String("amount", "", "Amount, e.g. 12.50")
	date := fs.String("date", "", "Day of the transaction, YYYY-MM-DD (default today)")
	note := fs.String("note", "", "Optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kind == "" || *amount == "" {
		return errors.New("usage: fintrack add -type income|expense -amount AMOUNT [-method Cash|Online] [-date YYYY-MM-DD] [-note TEXT]")
	}

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", *amount)
	}
	if *date == "" {
		*date = a.now().In(a.location).Format(transaction.DateLayout)
	}

	current, err := a.currentWorkplace(ctx)
	if err != nil {
		return err
	}

	tx, err := a.api.AddTransaction(ctx, transaction.CreateTransactionRequest{
		WorkplaceID: current.ID,
		Type:        strings.ToLower(*kind),
		Method:      normalizeMethod(*method),
		Amount:      value,
		Note:        *note,
		Date:        *date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s %s %s to %s on %s (%s).\n",
		tx.Type, tx.Method, tx.Amount.StringFixed(2), current.Name,
		tx.OccurredAt.In(a.location).Format(transaction.DateLayout), tx.ID)
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	yes := fs.Bool("yes", false, "Confirm the deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: fintrack delete -yes <transaction id>")
	}
	if !*yes {
		return errors.New("deleting a transaction cannot be undone, pass -yes to confirm")
	}

	if err := a.api.DeleteTransaction(ctx, fs.Arg(0)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted transaction %s.\n", fs.Arg(0))
	return nil
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	year := fs.Int("year", 0, "Year (default current)")
	month := fs.Int("month", 0, "Only this month, 1-12")
	from := fs.String("from", "", "First day of a custom range, YYYY-MM-DD")
	to := fs.String("to", "", "Last day of a custom range, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*from == "") != (*to == "") {
		return errors.New("-from and -to go together")
	}

	current, err := a.currentWorkplace(ctx)
	if err != nil {
		return err
	}

	res, err := a.api.ListTransactions(ctx, transaction.ListTransactionsQuery{
		WorkplaceID: current.ID,
		Year:        *year,
		Month:       *month,
		From:        *from,
		To:          *to,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %d transaction(s)\n", current.Name, res.Count)
	printTransactionResponses(a.out, res.Transactions, a.location)
	return nil
}

func (a *app) runSummary(ctx context.Context, args []string) error {
	fs := a.flagSet("summary")
	year := fs.Int("year", 0, "Year (default current)")
	month := fs.Int("month", 0, "Month 1-12 (default: latest month with data)")
	date := fs.String("date", "", "A single day, YYYY-MM-DD")
	remote := fs.Bool("remote", false, "Let the server compute the totals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *month != 0 && *date != "" {
		return errors.New("-month and -date are mutually exclusive")
	}

	var day time.Time
	if *date != "" {
		d, err := time.ParseInLocation(transaction.DateLayout, *date, a.location)
		if err != nil {
			return fmt.Errorf("invalid date %q", *date)
		}
		day = d
		if *year == 0 {
			*year = d.Year()
		}
	}

	if *remote {
		return a.remoteSummary(ctx, *year, *month, *date)
	}

	c, err := a.mount(ctx)
	if err != nil {
		return err
	}

	if *year != 0 && *year != c.View().Year {
		if err := await(ctx, c.SetYear(ctx, *year)); err != nil {
			return err
		}
	}

	var done <-chan struct{}
	switch {
	case *month != 0:
		done, err = c.SelectMonth(ctx, *month)
	case !day.IsZero():
		done, err = c.SelectDate(ctx, day)
	}
	if err != nil {
		return err
	}
	if err := await(ctx, done); err != nil {
		return err
	}

	v := c.View()
	if v.State == coordinator.StateFailed {
		return v.Err
	}
	printView(a.out, v)
	return nil
}

func (a *app) remoteSummary(ctx context.Context, year, month int, date string) error {
	current, err := a.currentWorkplace(ctx)
	if err != nil {
		return err
	}

	res, err := a.api.Summary(ctx, transaction.SummaryQuery{
		WorkplaceID: current.ID,
		Year:        year,
		Month:       month,
		Date:        date,
	})
	if err != nil {
		return err
	}

	printSummary(a.out, current.Name, res)
	return nil
}

func (a *app) runWatch(ctx context.Context, args []string) error {
	if err := a.flagSet("watch").Parse(args); err != nil {
		return err
	}

	c := a.newCoordinator()
	c.Subscribe(func(v coordinator.View) {
		switch v.State {
		case coordinator.StateLoading:
			fmt.Fprintln(a.out, "Loading...")
		case coordinator.StateReady:
			printView(a.out, v)
		case coordinator.StateFailed:
			fmt.Fprintf(a.errOut, "Load failed: %v\n", v.Err)
		}
	})

	done, err := c.Mount(ctx)
	if err != nil {
		return err
	}
	if err := await(ctx, done); err != nil {
		return err
	}

	workplaceID := c.View().Workplace.ID
	return a.api.Watch(ctx, workplaceID, func(event websocketPkg.Event) {
		a.printEvent(event)
		c.NotifyMutation(ctx, event.WorkplaceID)
	})
}

func (a *app) runReport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: fintrack report monthly|annual|custom [options]")
	}

	kind := args[0]
	fs := a.flagSet("report " + kind)
	now := a.now().In(a.location)
	year := fs.Int("year", now.Year(), "Year")
	month := fs.Int("month", int(now.Month()), "Month 1-12 (monthly only)")
	from := fs.String("from", "", "First day, YYYY-MM-DD (custom only)")
	to := fs.String("to", "", "Last day, YYYY-MM-DD (custom only)")
	outDir := fs.String("out", ".", "Directory the PDF is saved in")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	current, err := a.currentWorkplace(ctx)
	if err != nil {
		return err
	}

	var rep client.Report
	switch kind {
	case "monthly":
		rep, err = a.api.MonthlyReport(ctx, current.ID, *year, *month)
	case "annual":
		rep, err = a.api.AnnualReport(ctx, current.ID, *year)
	case "custom":
		if *from == "" || *to == "" {
			return errors.New("usage: fintrack report custom -from YYYY-MM-DD -to YYYY-MM-DD")
		}
		rep, err = a.api.CustomReport(ctx, current.ID, *from, *to)
	default:
		return fmt.Errorf("unknown report %q, want monthly, annual or custom", kind)
	}
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, rep.Filename)
	if err := writeFileAtomic(path, rep.Data, 0o644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes).\n", path, len(rep.Data))
	return nil
}

func normalizeMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "cash":
		return string(entity.PaymentMethodCash)
	case "online":
		return string(entity.PaymentMethodOnline)
	default:
		return method
	}
}
