package websocketPkg

import (
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

type EventType string

const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionDeleted EventType = "transaction.deleted"
)

// Event tells subscribers of a workplace that its transactions changed.
type Event struct {
	Type          EventType `json:"type"`
	WorkplaceID   string    `json:"workplace_id"`
	TransactionID string    `json:"transaction_id"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	At            time.Time `json:"at"`
}

type IHub interface {
	// Subscribe returns a channel of events for one owner's workplace and a function
	// that releases it. The channel is closed on release.
	Subscribe(ownerID, workplaceID string) (<-chan Event, func())
	Publish(ownerID string, event Event)
	Subscribers(ownerID, workplaceID string) int
	Close()
}

type hubKey struct {
	ownerID     string
	workplaceID string
}

type subscriber struct {
	ch   chan Event
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

type hub struct {
	mu         sync.Mutex
	subs       map[hubKey]map[*subscriber]struct{}
	bufferSize int
	closed     bool
	log        *logrus.Logger
}

func NewHub(log *logrus.Logger) IHub {
	return &hub{
		subs:       make(map[hubKey]map[*subscriber]struct{}),
		bufferSize: 16,
		log:        log,
	}
}

func (h *hub) Subscribe(ownerID, workplaceID string) (<-chan Event, func()) {
	key := hubKey{ownerID: ownerID, workplaceID: workplaceID}
	sub := &subscriber{ch: make(chan Event, h.bufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscriber]struct{})
	}
	h.subs[key][sub] = struct{}{}
	h.mu.Unlock()

	release := func() {
		h.mu.Lock()
		if set, ok := h.subs[key]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
		sub.close()
	}

	return sub.ch, release
}

// Publish never blocks. A subscriber whose buffer is full misses the event; the next
// one still tells it to reload.
func (h *hub) Publish(ownerID string, event Event) {
	key := hubKey{ownerID: ownerID, workplaceID: event.WorkplaceID}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[key] {
		select {
		case sub.ch <- event:
		default:
			h.log.WithFields(logrus.Fields{
				"workplace_id": event.WorkplaceID,
				"event":        event.Type,
			}).Warn("Dropping event for slow subscriber")
		}
	}
}

func (h *hub) Subscribers(ownerID, workplaceID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[hubKey{ownerID: ownerID, workplaceID: workplaceID}])
}

func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for key, set := range h.subs {
		for sub := range set {
			sub.close()
		}
		delete(h.subs, key)
	}
}
