package main

import (
	"FinTrack/internal/coordinator"
	"FinTrack/internal/entity"
	"FinTrack/pkg/client"
	"FinTrack/pkg/utils"
	websocketPkg "FinTrack/pkg/websocket"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"net/http"
	"time"
)

var errUnknownCommand = errors.New("unknown command")

type app struct {
	api      *client.Client
	state    *stateFile
	log      *logrus.Logger
	location *time.Location
	now      func() time.Time
	out      io.Writer
	errOut   io.Writer
}

func newApp(apiURL string, state *stateFile, log *logrus.Logger, out, errOut io.Writer) *app {
	return &app{
		api:      client.New(apiURL, state.Token(), log),
		state:    state,
		log:      log,
		location: utils.AppLocation(),
		now:      time.Now,
		out:      out,
		errOut:   errOut,
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "register":
		err = a.runRegister(ctx, args)
	case "login":
		err = a.runLogin(ctx, args)
	case "logout":
		err = a.runLogout(ctx, args)
	case "workplaces":
		err = a.runWorkplaces(ctx, args)
	case "create-workplace":
		err = a.runCreateWorkplace(ctx, args)
	case "deactivate":
		err = a.runDeactivate(ctx, args)
	case "switch":
		err = a.runSwitch(ctx, args)
	case "add":
		err = a.runAdd(ctx, args)
	case "delete":
		err = a.runDelete(ctx, args)
	case "list":
		err = a.runList(ctx, args)
	case "summary":
		err = a.runSummary(ctx, args)
	case "watch":
		err = a.runWatch(ctx, args)
	case "report":
		err = a.runReport(ctx, args)
	default:
		return errUnknownCommand
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("%w (run 'fintrack login' again)", err)
	}
	if errors.Is(err, client.ErrNotLoggedIn) {
		return fmt.Errorf("%w: run 'fintrack login' first", err)
	}
	return err
}

func (a *app) newCoordinator() *coordinator.Coordinator {
	return coordinator.New(a.api, a.state, a.log, coordinator.WithClock(func() time.Time {
		return a.now().In(a.location)
	}))
}

// mount loads the current workplace view and waits for the first result.
func (a *app) mount(ctx context.Context) (*coordinator.Coordinator, error) {
	c := a.newCoordinator()
	done, err := c.Mount(ctx)
	if errors.Is(err, coordinator.ErrNoWorkplace) {
		return nil, fmt.Errorf("%w: create one with 'fintrack create-workplace'", err)
	}
	if err != nil {
		return nil, err
	}
	if err := await(ctx, done); err != nil {
		return nil, err
	}
	return c, nil
}

// currentWorkplace resolves the current workplace without loading transactions.
func (a *app) currentWorkplace(ctx context.Context) (entity.Workplace, error) {
	workplaces, err := a.api.Workplaces(ctx)
	if err != nil {
		return entity.Workplace{}, err
	}

	saved, _ := a.state.Load()
	current, ok := entity.PickCurrent(workplaces, saved)
	if !ok {
		return entity.Workplace{}, fmt.Errorf("%w: create one with 'fintrack create-workplace'", coordinator.ErrNoWorkplace)
	}
	if current.ID != saved {
		if err := a.state.Save(current.ID); err != nil {
			a.log.WithError(err).Warn("Failed to save current workplace")
		}
	}
	return current, nil
}

// resolveWorkplace accepts an id or a name among the active workplaces.
func resolveWorkplace(workplaces []entity.Workplace, ref string) (entity.Workplace, bool) {
	name := entity.NormalizeWorkplaceName(ref)
	for _, w := range workplaces {
		if !w.IsActive {
			continue
		}
		if w.ID == ref || w.Name == name {
			return w, true
		}
	}
	return entity.Workplace{}, false
}

func await(ctx context.Context, done <-chan struct{}) error {
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *app) printEvent(event websocketPkg.Event) {
	fmt.Fprintf(a.errOut, "%s %s in %d-%02d\n",
		event.At.In(a.location).Format("15:04:05"), event.Type, event.Year, event.Month)
}
