package transactionHandler

import (
	transactionService "FinTrack/internal/api/transaction/service"
	"FinTrack/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type TransactionHandler struct {
	log                *logrus.Logger
	validator          *validator.Validate
	middleware         middleware.Middleware
	transactionService transactionService.ITransactionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	transactionService transactionService.ITransactionService,
) *TransactionHandler {
	return &TransactionHandler{
		log:                log,
		validator:          validate,
		middleware:         middleware,
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	transactions := srv.Group("/transactions", h.middleware.NewTokenMiddleware)

	transactions.Post("/", h.CreateTransaction)
	transactions.Get("/", h.ListTransactions)
	transactions.Get("/summary", h.GetSummary)
	transactions.Use("/ws", wsMiddleware)
	transactions.Get("/ws", h.PrepareWatch, h.upgradeWatch())
	transactions.Delete("/:id", h.DeleteTransaction)
}
