package websocketPkg

import (
	"github.com/sirupsen/logrus"
	"io"
	"testing"
	"time"
)

func newTestHub() IHub {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHub(logger)
}

func TestPublishReachesOnlyMatchingSubscribers(t *testing.T) {
	h := newTestHub()

	home, releaseHome := h.Subscribe("u1", "home")
	defer releaseHome()
	clinic, releaseClinic := h.Subscribe("u1", "clinic")
	defer releaseClinic()
	other, releaseOther := h.Subscribe("u2", "home")
	defer releaseOther()

	h.Publish("u1", Event{Type: EventTransactionCreated, WorkplaceID: "home", TransactionID: "t1"})

	select {
	case ev := <-home:
		if ev.TransactionID != "t1" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("home subscriber got nothing")
	}

	select {
	case ev := <-clinic:
		t.Errorf("clinic got %+v", ev)
	case ev := <-other:
		t.Errorf("other owner got %+v", ev)
	default:
	}
}

func TestReleaseClosesChannel(t *testing.T) {
	h := newTestHub()

	ch, release := h.Subscribe("u1", "home")
	if got := h.Subscribers("u1", "home"); got != 1 {
		t.Fatalf("Subscribers = %d, want 1", got)
	}

	release()
	release()

	if _, ok := <-ch; ok {
		t.Error("channel still open after release")
	}
	if got := h.Subscribers("u1", "home"); got != 0 {
		t.Errorf("Subscribers = %d, want 0", got)
	}
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	h := newTestHub()
	_, release := h.Subscribe("u1", "home")
	defer release()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish("u1", Event{WorkplaceID: "home"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
}

func TestCloseReleasesEveryone(t *testing.T) {
	h := newTestHub()
	ch, release := h.Subscribe("u1", "home")
	h.Close()
	release()

	if _, ok := <-ch; ok {
		t.Error("channel open after Close")
	}

	late, _ := h.Subscribe("u1", "home")
	if _, ok := <-late; ok {
		t.Error("subscription after Close should be closed")
	}
}
