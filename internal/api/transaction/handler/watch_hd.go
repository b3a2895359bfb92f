package transactionHandler

import (
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/handlerUtil"
	jwtPkg "FinTrack/pkg/jwt"
	websocketPkg "FinTrack/pkg/websocket"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const (
	localsEvents  = "watch_events"
	localsRelease = "watch_release"
)

// PrepareWatch subscribes before the upgrade so that an unknown workplace is
// reported as a plain HTTP error.
func (h *TransactionHandler) PrepareWatch(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	workplaceID := ctx.Query("workplace_id")
	if workplaceID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("workplace_id is required"), ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	events, release, err := h.transactionService.Watch(c, userData.ID, workplaceID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "watch_transactions")
	}

	ctx.Locals(localsEvents, events)
	ctx.Locals(localsRelease, release)

	return ctx.Next()
}

// upgradeWatch releases the subscription taken by PrepareWatch when the handshake
// fails, since handleWatch never runs in that case.
func (h *TransactionHandler) upgradeWatch() fiber.Handler {
	upgrade := websocket.New(h.handleWatch)

	return func(ctx *fiber.Ctx) error {
		err := upgrade(ctx)
		if err != nil {
			if release, ok := ctx.Locals(localsRelease).(func()); ok {
				release()
			}
			h.log.WithFields(logrus.Fields{
				"request_id": h.middleware.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Watch upgrade failed")
		}
		return err
	}
}

func (h *TransactionHandler) handleWatch(c *websocket.Conn) {
	events, _ := c.Locals(localsEvents).(<-chan websocketPkg.Event)
	release, _ := c.Locals(localsRelease).(func())
	if events == nil || release == nil {
		_ = c.Close()
		return
	}
	defer release()

	h.log.Info("Transaction watch client connected")
	defer h.log.Info("Transaction watch client disconnected")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Errorf("Watch WebSocket error: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				_ = c.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(5*time.Second))
				return
			}

			if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
				h.log.Errorf("Error setting write deadline: %v", err)
				return
			}
			if err := c.WriteJSON(event); err != nil {
				h.log.Errorf("Error writing event: %v", err)
				return
			}
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
