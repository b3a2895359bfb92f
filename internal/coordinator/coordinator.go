// Package coordinator drives the fetch and aggregate cycle behind a workplace view.
//
// Every change of workplace, year, selection or data starts a new load tagged
// with a generation number. Results are applied only if their generation is
// still current, so a slow response for an old workplace never overwrites a
// newer one.
package coordinator

import (
	"FinTrack/internal/aggregate"
	"FinTrack/internal/entity"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"sync"
	"time"
)

var ErrNoWorkplace = errors.New("no active workplace")

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Fetcher reads workplaces and transactions for the signed-in user.
type Fetcher interface {
	Workplaces(ctx context.Context) ([]entity.Workplace, error)
	Transactions(ctx context.Context, workplaceID string, year int) ([]entity.Transaction, error)
}

// PointerStore persists the current workplace id between sessions.
type PointerStore interface {
	Load() (string, error)
	Save(workplaceID string) error
}

// View is a snapshot of what should be displayed. Totals are only meaningful in
// StateReady; they are cleared on every transition into StateLoading.
type View struct {
	State        State
	Generation   uint64
	Workplaces   []entity.Workplace
	Workplace    entity.Workplace
	Year         int
	Selection    aggregate.Selection
	Months       []int
	Transactions []entity.Transaction
	Totals       aggregate.Totals
	Err          error
}

type Coordinator struct {
	fetcher Fetcher
	pointer PointerStore
	log     *logrus.Logger
	now     func() time.Time

	mu          sync.Mutex
	view        View
	requested   aggregate.Selection
	generation  uint64
	cancel      context.CancelFunc
	subscribers []func(View)

	// publishMu orders delivery. Views older than published are dropped.
	publishMu  sync.Mutex
	published  uint64
	pending    []View
	delivering bool
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func New(fetcher Fetcher, pointer PointerStore, log *logrus.Logger, options ...Option) *Coordinator {
	c := &Coordinator{
		fetcher: fetcher,
		pointer: pointer,
		log:     log,
		now:     time.Now,
	}

	for _, option := range options {
		option(c)
	}

	c.view.Year = c.now().Year()
	c.view.Totals = aggregate.Zero()

	return c
}

// Subscribe registers fn to receive every new view. fn runs outside the
// coordinator's lock and may call back into it.
func (c *Coordinator) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Mount loads the workplace list, restores the saved pointer (falling back to the
// first active workplace) and starts loading the current year.
func (c *Coordinator) Mount(ctx context.Context) (<-chan struct{}, error) {
	workplaces, err := c.fetcher.Workplaces(ctx)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to load workplaces")
		return nil, err
	}

	savedID, err := c.pointer.Load()
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to read saved workplace")
	}

	current, ok := entity.PickCurrent(workplaces, savedID)
	if !ok {
		c.mu.Lock()
		c.view.Workplaces = workplaces
		c.view.State = StateIdle
		snapshot := c.view
		c.mu.Unlock()
		c.publish(snapshot)
		return nil, ErrNoWorkplace
	}

	if current.ID != savedID {
		c.savePointer(current.ID)
	}

	c.mu.Lock()
	c.view.Workplaces = workplaces
	c.view.Workplace = current
	c.view.Year = c.now().Year()
	c.requested = aggregate.Default()
	c.mu.Unlock()

	return c.reload(ctx), nil
}

// SwitchWorkplace makes id current, persists it and resets the selection.
func (c *Coordinator) SwitchWorkplace(ctx context.Context, id string) (<-chan struct{}, error) {
	c.mu.Lock()
	var target *entity.Workplace
	for i := range c.view.Workplaces {
		if c.view.Workplaces[i].ID == id && c.view.Workplaces[i].IsActive {
			target = &c.view.Workplaces[i]
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return nil, ErrNoWorkplace
	}
	c.view.Workplace = *target
	c.requested = aggregate.Default()
	c.mu.Unlock()

	c.savePointer(id)

	return c.reload(ctx), nil
}

// SetYear changes the year and resets the selection.
func (c *Coordinator) SetYear(ctx context.Context, year int) <-chan struct{} {
	c.mu.Lock()
	c.view.Year = year
	c.requested = aggregate.Default()
	c.mu.Unlock()

	return c.reload(ctx)
}

func (c *Coordinator) SelectMonth(ctx context.Context, month int) (<-chan struct{}, error) {
	return c.selectWith(ctx, aggregate.Month(month))
}

func (c *Coordinator) SelectDate(ctx context.Context, date time.Time) (<-chan struct{}, error) {
	return c.selectWith(ctx, aggregate.Date(date))
}

// ClearSelection returns to the default month.
func (c *Coordinator) ClearSelection(ctx context.Context) <-chan struct{} {
	done, _ := c.selectWith(ctx, aggregate.Default())
	return done
}

// NotifyMutation reloads when a transaction of the current workplace was added or
// deleted. Mutations of other workplaces are ignored.
func (c *Coordinator) NotifyMutation(ctx context.Context, workplaceID string) <-chan struct{} {
	c.mu.Lock()
	current := c.view.Workplace.ID
	c.mu.Unlock()

	if workplaceID != current {
		done := make(chan struct{})
		close(done)
		return done
	}

	return c.reload(ctx)
}

func (c *Coordinator) selectWith(ctx context.Context, sel aggregate.Selection) (<-chan struct{}, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.requested = sel
	c.mu.Unlock()

	return c.reload(ctx), nil
}

// reload moves the view into StateLoading under a new generation and fetches in the
// background. The returned channel closes once the result was applied or discarded.
func (c *Coordinator) reload(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	generation := c.generation
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.view.State = StateLoading
	c.view.Generation = generation
	c.view.Transactions = nil
	c.view.Totals = aggregate.Zero()
	c.view.Selection = c.requested
	c.view.Months = aggregate.AvailableMonths(c.view.Year, c.now())
	c.view.Err = nil

	workplaceID := c.view.Workplace.ID
	year := c.view.Year
	snapshot := c.view
	c.mu.Unlock()

	c.publish(snapshot)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		txs, err := c.fetcher.Transactions(reqCtx, workplaceID, year)
		c.apply(generation, txs, err)
	}()

	return done
}

func (c *Coordinator) apply(generation uint64, txs []entity.Transaction, err error) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		c.log.WithFields(logrus.Fields{
			"generation": generation,
		}).Debug("Discarding stale response")
		return
	}

	if err != nil {
		c.view.State = StateFailed
		c.view.Err = err
		snapshot := c.view
		c.mu.Unlock()

		c.log.WithFields(logrus.Fields{
			"generation":   generation,
			"workplace_id": snapshot.Workplace.ID,
			"error":        err.Error(),
		}).Error("Failed to load transactions")
		c.publish(snapshot)
		return
	}

	resolved, subset := aggregate.Select(txs, c.requested, c.view.Year, c.now())
	c.view.State = StateReady
	c.view.Selection = resolved
	c.view.Transactions = subset
	c.view.Totals = aggregate.Sum(subset)
	snapshot := c.view
	c.mu.Unlock()

	c.publish(snapshot)
}

func (c *Coordinator) savePointer(id string) {
	if err := c.pointer.Save(id); err != nil {
		c.log.WithFields(logrus.Fields{
			"workplace_id": id,
			"error":        err.Error(),
		}).Warn("Failed to save current workplace")
	}
}

// publish delivers v unless a newer generation was already published. Only one
// goroutine delivers at a time; a view published meanwhile, including from inside a
// subscriber, is queued and delivered by it in order.
func (c *Coordinator) publish(v View) {
	c.publishMu.Lock()
	if v.Generation < c.published {
		c.publishMu.Unlock()
		return
	}
	c.published = v.Generation
	c.pending = append(c.pending, v)
	if c.delivering {
		c.publishMu.Unlock()
		return
	}
	c.delivering = true
	c.publishMu.Unlock()

	for {
		c.publishMu.Lock()
		if len(c.pending) == 0 {
			c.delivering = false
			c.publishMu.Unlock()
			return
		}
		next := c.pending[0]
		c.pending = c.pending[1:]
		stale := next.Generation < c.published
		c.publishMu.Unlock()

		if stale {
			continue
		}

		c.mu.Lock()
		subscribers := make([]func(View), len(c.subscribers))
		copy(subscribers, c.subscribers)
		c.mu.Unlock()

		for _, fn := range subscribers {
			fn(next)
		}
	}
}
