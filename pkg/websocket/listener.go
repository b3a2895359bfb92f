package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type Listener struct {
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	log          *logrus.Logger
}

func NewListener(log *logrus.Logger) *Listener {
	return &Listener{
		pingInterval: 30 * time.Second,
		readTimeout:  60 * time.Second,
		writeTimeout: 5 * time.Second,
		log:          log,
	}
}

// Listen dials url and calls fn for every event until ctx is done or the
// connection drops. It returns nil only when ctx ends the session.
func (l *Listener) Listen(ctx context.Context, url string, header http.Header, fn func(Event)) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(l.writeTimeout)); err != nil {
			l.log.WithError(err).Debug("Error sending pong")
		}
		return conn.SetReadDeadline(time.Now().Add(l.readTimeout))
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(l.readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go l.keepAlive(ctx, conn, done)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(l.readTimeout)); err != nil {
			return err
		}

		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				return nil
			}
			return fmt.Errorf("error reading event: %w", err)
		}

		fn(event)
	}
}

func (l *Listener) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(l.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(l.writeTimeout))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(l.writeTimeout)); err != nil {
				l.log.WithError(err).Warn("Ping failed, closing connection")
				_ = conn.Close()
				return
			}
		}
	}
}
